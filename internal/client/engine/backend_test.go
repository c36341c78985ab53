package engine

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

	"github.com/dmitrijs2005/mediaup/internal/client/models"
	"github.com/dmitrijs2005/mediaup/internal/common"
)

// backend fakes the upload service and the storage it signs URLs for.
type backend struct {
	ts *httptest.Server

	mu      sync.Mutex
	objects map[string][]byte
	puts    map[string]int
	chunks  map[string]map[int]int
	batches [][]models.ConfirmItem
	issued  int

	// failChunk makes chunk idx of the named object fail.
	failChunk map[string]int
	// confirmFailures rejects that many Confirm calls before accepting.
	confirmFailures int
	// hold blocks storage requests until closed when non-nil.
	hold    chan struct{}
	started chan struct{}
	// issueHold blocks Issue until closed when non-nil.
	issueHold chan struct{}
	// layout is the total and chunk size of multipart objects by name.
	layout map[string][2]int64
}

func newBackend(t *testing.T) *backend {
	b := &backend{
		objects:   map[string][]byte{},
		puts:      map[string]int{},
		chunks:    map[string]map[int]int{},
		failChunk: map[string]int{},
		started:   make(chan struct{}, 1),
		layout:    map[string][2]int64{},
	}
	b.ts = httptest.NewServer(http.HandlerFunc(b.serve))
	t.Cleanup(b.ts.Close)
	return b
}

func (b *backend) Issue(ctx context.Context, files []models.IssueRequest) ([]models.DestinationSlot, error) {
	b.mu.Lock()
	hold := b.issueHold
	b.mu.Unlock()
	if hold != nil {
		select {
		case <-hold:
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}

	b.mu.Lock()
	defer b.mu.Unlock()
	b.issued += len(files)

	out := make([]models.DestinationSlot, len(files))
	for i, f := range files {
		out[i] = models.DestinationSlot{
			LocalID:     f.LocalID,
			StoragePath: "users/1/" + f.Filename,
			TransferURL: b.ts.URL + "/objects/" + f.Filename,
			Token:       "tok-" + f.LocalID,
			ExpiresAt:   time.Now().Add(5 * time.Minute),
			// the fake storage assembles Content-Range chunks
			AcceptsRanges: true,
		}
	}
	return out, nil
}

func (b *backend) Confirm(ctx context.Context, uploads []models.ConfirmItem) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.confirmFailures > 0 {
		b.confirmFailures--
		return errors.New("metadata store unavailable")
	}
	b.batches = append(b.batches, append([]models.ConfirmItem(nil), uploads...))
	return nil
}

func (b *backend) serve(w http.ResponseWriter, r *http.Request) {
	select {
	case b.started <- struct{}{}:
	default:
	}

	b.mu.Lock()
	hold := b.hold
	b.mu.Unlock()
	if hold != nil {
		select {
		case <-hold:
		case <-r.Context().Done():
			return
		}
	}

	body, _ := io.ReadAll(r.Body)
	if strings.HasPrefix(r.URL.Path, "/parts/") {
		b.servePart(w, r, body)
		return
	}
	name := strings.TrimPrefix(r.URL.Path, "/objects/")

	b.mu.Lock()
	defer b.mu.Unlock()

	idxHeader := r.Header.Get(common.HeaderChunkIndex)
	if idxHeader == "" {
		b.puts[name]++
		b.objects[name] = body
		w.WriteHeader(http.StatusOK)
		return
	}

	idx, _ := strconv.Atoi(idxHeader)
	if b.chunks[name] == nil {
		b.chunks[name] = map[int]int{}
	}
	b.chunks[name][idx]++
	if bad, ok := b.failChunk[name]; ok && bad == idx {
		w.WriteHeader(http.StatusInternalServerError)
		return
	}

	var start, end, total int64
	if _, err := fmt.Sscanf(r.Header.Get(common.HeaderContentRange), "bytes %d-%d/%d", &start, &end, &total); err != nil {
		w.WriteHeader(http.StatusBadRequest)
		return
	}
	obj := b.objects[name]
	if int64(len(obj)) != total {
		obj = make([]byte, total)
	}
	copy(obj[start:], body)
	b.objects[name] = obj
	w.Header().Set(common.HeaderChunkChecksum, r.Header.Get(common.HeaderChunkChecksum))
	w.WriteHeader(http.StatusOK)
}

// servePart stores part n of /parts/<name>/<n> at its offset and answers
// with the MD5 ETag of the body.
func (b *backend) servePart(w http.ResponseWriter, r *http.Request, body []byte) {
	name, num, _ := strings.Cut(strings.TrimPrefix(r.URL.Path, "/parts/"), "/")
	n, err := strconv.Atoi(num)

	b.mu.Lock()
	defer b.mu.Unlock()
	layout, ok := b.layout[name]
	if err != nil || !ok || r.Header.Get(common.HeaderContentRange) != "" {
		w.WriteHeader(http.StatusBadRequest)
		return
	}
	if b.chunks[name] == nil {
		b.chunks[name] = map[int]int{}
	}
	b.chunks[name][n-1]++

	obj := b.objects[name]
	if int64(len(obj)) != layout[0] {
		obj = make([]byte, layout[0])
	}
	copy(obj[int64(n-1)*layout[1]:], body)
	b.objects[name] = obj
	w.Header().Set("ETag", etagOf(body))
	w.WriteHeader(http.StatusOK)
}

func etagOf(body []byte) string {
	sum := md5.Sum(body)
	return `"` + hex.EncodeToString(sum[:]) + `"`
}

// partBackend hands out slots that take no ranges and signs multipart parts
// for them instead.
type partBackend struct {
	*backend
}

func (p *partBackend) Issue(ctx context.Context, files []models.IssueRequest) ([]models.DestinationSlot, error) {
	slots, err := p.backend.Issue(ctx, files)
	for i := range slots {
		slots[i].AcceptsRanges = false
		slots[i].TransferURL = p.ts.URL + "/no-ranges"
	}
	return slots, err
}

func (p *partBackend) PresignParts(ctx context.Context, req models.PartsRequest) (models.PartsGrant, error) {
	name := strings.TrimPrefix(req.Token, "tok-")

	p.mu.Lock()
	defer p.mu.Unlock()
	p.layout[name] = [2]int64{req.TotalSize, req.ChunkSize}

	id := req.UploadID
	if id == "" {
		id = "mp-" + name
	}
	numbers := req.PartNumbers
	if len(numbers) == 0 {
		for n := int64(1); (n-1)*req.ChunkSize < req.TotalSize; n++ {
			numbers = append(numbers, int32(n))
		}
	}
	grant := models.PartsGrant{UploadID: id, ExpiresAt: time.Now().Add(5 * time.Minute)}
	for _, n := range numbers {
		grant.Parts = append(grant.Parts, models.PartTarget{
			Number: n,
			URL:    fmt.Sprintf("%s/parts/%s/%d", p.ts.URL, name, n),
		})
	}
	return grant, nil
}

func (b *backend) confirmed() []models.ConfirmItem {
	b.mu.Lock()
	defer b.mu.Unlock()
	var out []models.ConfirmItem
	for _, batch := range b.batches {
		out = append(out, batch...)
	}
	return out
}

func (b *backend) batchSizes() []int {
	b.mu.Lock()
	defer b.mu.Unlock()
	out := make([]int, len(b.batches))
	for i, batch := range b.batches {
		out[i] = len(batch)
	}
	return out
}

func (b *backend) object(name string) []byte {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.objects[name]
}

func (b *backend) putCount(name string) int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.puts[name]
}

func (b *backend) chunkAttempts(name string, idx int) int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.chunks[name][idx]
}

func (b *backend) storageHits() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	n := 0
	for _, c := range b.puts {
		n += c
	}
	for _, m := range b.chunks {
		for _, c := range m {
			n += c
		}
	}
	return n
}
