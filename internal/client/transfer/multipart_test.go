package transfer

import (
	"context"
	"crypto/md5"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrijs2005/mediaup/internal/client/models"
	"github.com/dmitrijs2005/mediaup/internal/client/repositories/kv"
	"github.com/dmitrijs2005/mediaup/internal/common"
)

// partEndpoint stores parts PUT to /part/<n> and answers with an MD5 ETag.
type partEndpoint struct {
	mu       sync.Mutex
	parts    map[int32][]byte
	attempts map[int32]int
	ranged   int
	// failAlways lists part numbers that always get a 500.
	failAlways map[int32]bool
	// noETagOnce lists part numbers answered without an ETag once.
	noETagOnce map[int32]bool
}

func newPartEndpoint(t *testing.T) (*partEndpoint, *httptest.Server) {
	e := &partEndpoint{
		parts:      map[int32][]byte{},
		attempts:   map[int32]int{},
		failAlways: map[int32]bool{},
		noETagOnce: map[int32]bool{},
	}
	ts := httptest.NewServer(e)
	t.Cleanup(ts.Close)
	return e, ts
}

func (e *partEndpoint) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	body, _ := io.ReadAll(r.Body)
	n, err := strconv.Atoi(strings.TrimPrefix(r.URL.Path, "/part/"))
	if err != nil {
		w.WriteHeader(http.StatusNotFound)
		return
	}
	num := int32(n)

	e.mu.Lock()
	defer e.mu.Unlock()
	e.attempts[num]++
	if r.Header.Get(common.HeaderContentRange) != "" {
		e.ranged++
	}
	if e.failAlways[num] {
		w.WriteHeader(http.StatusInternalServerError)
		return
	}
	e.parts[num] = body
	if !(e.noETagOnce[num] && e.attempts[num] == 1) {
		w.Header().Set("ETag", etagOf(body))
	}
	w.WriteHeader(http.StatusOK)
}

func etagOf(b []byte) string {
	sum := md5.Sum(b)
	return `"` + hex.EncodeToString(sum[:]) + `"`
}

func (e *partEndpoint) Attempts(n int32) int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.attempts[n]
}

// assembled joins parts 1..count.
func (e *partEndpoint) assembled(count int) []byte {
	e.mu.Lock()
	defer e.mu.Unlock()
	var out []byte
	for n := 1; n <= count; n++ {
		out = append(out, e.parts[int32(n)]...)
	}
	return out
}

type fakeParts struct {
	mu       sync.Mutex
	base     string
	ttl      time.Duration
	now      func() time.Time
	err      error
	requests []models.PartsRequest
}

func (f *fakeParts) PresignParts(ctx context.Context, req models.PartsRequest) (models.PartsGrant, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.requests = append(f.requests, req)
	if f.err != nil {
		return models.PartsGrant{}, f.err
	}

	id := req.UploadID
	if id == "" {
		id = fmt.Sprintf("mp-%d", len(f.requests))
	}
	numbers := req.PartNumbers
	if len(numbers) == 0 {
		count := (req.TotalSize + req.ChunkSize - 1) / req.ChunkSize
		for n := int32(1); n <= int32(count); n++ {
			numbers = append(numbers, n)
		}
	}
	g := models.PartsGrant{UploadID: id, ExpiresAt: f.now().Add(f.ttl)}
	for _, n := range numbers {
		g.Parts = append(g.Parts, models.PartTarget{Number: n, URL: fmt.Sprintf("%s/part/%d", f.base, n)})
	}
	return g, nil
}

func (f *fakeParts) calls() []models.PartsRequest {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]models.PartsRequest(nil), f.requests...)
}

type clock struct {
	mu sync.Mutex
	t  time.Time
}

func (c *clock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.t
}

func (c *clock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.t = c.t.Add(d)
}

func newMultipart(t *testing.T, store kv.Store) (*ChunkedUploader, *fakeParts, *partEndpoint, *clock) {
	ep, ts := newPartEndpoint(t)
	clk := &clock{t: time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)}
	parts := &fakeParts{base: ts.URL, ttl: 5 * time.Minute, now: clk.Now}
	u := NewChunkedUploader(store, parts, Config{ChunkSize: 100, RetryBase: time.Millisecond, Now: clk.Now})
	return u, parts, ep, clk
}

func TestChunkedMultipart_UploadsEveryPart(t *testing.T) {
	data := payload(1050)
	store := kv.NewMemoryRepository()
	u, parts, ep, _ := newMultipart(t, store)
	f := testFile("big.jpg", data)

	s, err := u.Upload(context.Background(), f, data, models.DestinationSlot{TransferURL: "unused", Token: "tok-1"}, nil)
	require.NoError(t, err)

	assert.True(t, s.Completed)
	assert.Equal(t, "mp-1", s.UploadID)
	assert.Equal(t, data, ep.assembled(11))
	assert.Zero(t, ep.ranged, "parts carry no Content-Range")

	calls := parts.calls()
	require.Len(t, calls, 1)
	assert.Equal(t, "tok-1", calls[0].Token)
	assert.Empty(t, calls[0].UploadID)
	assert.Empty(t, calls[0].PartNumbers)
	assert.Equal(t, int64(1050), calls[0].TotalSize)
	assert.Equal(t, int64(100), calls[0].ChunkSize)

	done := s.CompletedParts()
	require.Len(t, done, 11)
	for i, p := range done {
		assert.Equal(t, int32(i+1), p.Number)
		assert.Equal(t, etagOf(data[i*100:min((i+1)*100, len(data))]), p.ETag)
	}

	stored, err := u.Load(context.Background(), f.Identity())
	require.NoError(t, err)
	assert.Equal(t, "mp-1", stored.UploadID)
	assert.Equal(t, done, stored.CompletedParts())
}

func TestChunkedMultipart_MissingETagIsRetried(t *testing.T) {
	data := payload(300)
	u, _, ep, _ := newMultipart(t, kv.NewMemoryRepository())
	ep.noETagOnce[2] = true

	s, err := u.Upload(context.Background(), testFile("e.jpg", data), data, models.DestinationSlot{Token: "tok"}, nil)
	require.NoError(t, err)
	assert.Equal(t, 2, ep.Attempts(2))
	assert.NotEmpty(t, s.Chunks[1].ETag)
}

func TestChunkedMultipart_ResumeSignsExpiredParts(t *testing.T) {
	data := payload(1000)
	store := kv.NewMemoryRepository()
	u, parts, ep, clk := newMultipart(t, store)
	ep.failAlways[5] = true
	f := testFile("r.jpg", data)

	_, err := u.Upload(context.Background(), f, data, models.DestinationSlot{Token: "tok"}, nil)
	require.Error(t, err)

	ep.mu.Lock()
	ep.failAlways = map[int32]bool{}
	ep.mu.Unlock()
	clk.Advance(time.Hour)

	s, err := u.Load(context.Background(), f.Identity())
	require.NoError(t, err)
	require.True(t, u.Resumable(s, time.Minute), "part URLs are signed again")

	s, err = u.Resume(context.Background(), s, f, data, nil)
	require.NoError(t, err)
	assert.True(t, s.Completed)
	assert.Equal(t, data, ep.assembled(10))

	calls := parts.calls()
	require.Len(t, calls, 2)
	assert.Equal(t, "mp-1", calls[1].UploadID)
	assert.Equal(t, []int32{5, 7, 8, 9, 10}, calls[1].PartNumbers)
	assert.Equal(t, 1, ep.Attempts(1), "stored parts are not sent again")
	assert.Len(t, s.CompletedParts(), 10)
}

func TestChunkedMultipart_FreshPartsAreNotSignedAgain(t *testing.T) {
	data := payload(1000)
	u, parts, ep, _ := newMultipart(t, kv.NewMemoryRepository())
	ep.failAlways[5] = true
	f := testFile("n.jpg", data)

	s, err := u.Upload(context.Background(), f, data, models.DestinationSlot{Token: "tok"}, nil)
	require.Error(t, err)

	ep.mu.Lock()
	ep.failAlways = map[int32]bool{}
	ep.mu.Unlock()

	_, err = u.Resume(context.Background(), s, f, data, nil)
	require.NoError(t, err)
	assert.Len(t, parts.calls(), 1)
}

func TestChunkedMultipart_PresignFailure(t *testing.T) {
	data := payload(300)
	store := kv.NewMemoryRepository()
	u, parts, _, _ := newMultipart(t, store)
	parts.err = errors.New("token expired")
	f := testFile("p.jpg", data)

	_, err := u.Upload(context.Background(), f, data, models.DestinationSlot{Token: "tok"}, nil)
	assert.ErrorIs(t, err, common.ErrDestination)

	stored, err := u.Load(context.Background(), f.Identity())
	require.NoError(t, err)
	assert.Nil(t, stored, "nothing to resume")
}

func TestChunkedUpload_NeedsRangesOrParts(t *testing.T) {
	data := payload(300)
	u := newTestChunked(kv.NewMemoryRepository())

	assert.False(t, u.Supports(models.DestinationSlot{}))
	assert.True(t, u.Supports(models.DestinationSlot{AcceptsRanges: true}))

	_, err := u.Upload(context.Background(), testFile("x.jpg", data), data, models.DestinationSlot{TransferURL: "http://x"}, nil)
	assert.ErrorIs(t, err, common.ErrDestination)
}

func TestChunkedUploader_Resumable(t *testing.T) {
	now := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	cfg := Config{Now: func() time.Time { return now }}
	ranged := NewChunkedUploader(kv.NewMemoryRepository(), nil, cfg)
	multi := NewChunkedUploader(kv.NewMemoryRepository(), &fakeParts{}, cfg)

	expired := models.DestinationSlot{TransferURL: "u", ExpiresAt: now.Add(-time.Minute)}
	fresh := models.DestinationSlot{TransferURL: "u", ExpiresAt: now.Add(time.Hour)}

	tests := []struct {
		name string
		u    *ChunkedUploader
		s    Session
		want bool
	}{
		{"completed with expired url", ranged, Session{Completed: true, Destination: expired}, true},
		{"ranged and fresh", ranged, Session{Destination: fresh}, true},
		{"ranged and expired", ranged, Session{Destination: expired}, false},
		{"multipart with issuer", multi, Session{UploadID: "mp", Destination: expired}, true},
		{"multipart without issuer", ranged, Session{UploadID: "mp", Destination: fresh}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.u.Resumable(&tt.s, time.Minute))
		})
	}
}
