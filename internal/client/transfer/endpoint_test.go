package transfer

import (
	"crypto/sha256"
	"encoding/base64"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strconv"
	"sync"
	"testing"

	"github.com/dmitrijs2005/mediaup/internal/common"
)

// chunkEndpoint is a content-range aware PUT target that assembles the
// payload and echoes chunk checksums.
type chunkEndpoint struct {
	t *testing.T

	mu       sync.Mutex
	data     []byte
	attempts map[int]int
	ranges   map[int]string
	// failAlways lists chunk indices that always get a 500.
	failAlways map[int]bool
	// failOnce lists chunk indices that fail their first attempt.
	failOnce map[int]bool
	// badEcho lists chunk indices whose echoed checksum is wrong once.
	badEcho map[int]bool
	status  int
}

func newChunkEndpoint(t *testing.T, size int) (*chunkEndpoint, *httptest.Server) {
	e := &chunkEndpoint{
		t:          t,
		data:       make([]byte, size),
		attempts:   map[int]int{},
		ranges:     map[int]string{},
		failAlways: map[int]bool{},
		failOnce:   map[int]bool{},
		badEcho:    map[int]bool{},
	}
	ts := httptest.NewServer(e)
	t.Cleanup(ts.Close)
	return e, ts
}

func (e *chunkEndpoint) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	body, _ := io.ReadAll(r.Body)

	e.mu.Lock()
	defer e.mu.Unlock()

	if e.status != 0 {
		w.WriteHeader(e.status)
		return
	}

	idxHeader := r.Header.Get(common.HeaderChunkIndex)
	if idxHeader == "" {
		e.attempts[-1]++
		copy(e.data, body)
		w.WriteHeader(http.StatusOK)
		return
	}

	idx, _ := strconv.Atoi(idxHeader)
	e.attempts[idx]++
	e.ranges[idx] = r.Header.Get(common.HeaderContentRange)

	if e.failAlways[idx] || (e.failOnce[idx] && e.attempts[idx] == 1) {
		w.WriteHeader(http.StatusInternalServerError)
		return
	}

	digest := sha256.Sum256(body)
	sum := base64.StdEncoding.EncodeToString(digest[:])
	if sum != r.Header.Get(common.HeaderChunkChecksum) {
		w.WriteHeader(http.StatusBadRequest)
		return
	}

	var start, end, total int64
	_, err := fmt.Sscanf(e.ranges[idx], "bytes %d-%d/%d", &start, &end, &total)
	if err != nil || int(end-start+1) != len(body) {
		w.WriteHeader(http.StatusBadRequest)
		return
	}
	copy(e.data[start:], body)

	if e.badEcho[idx] && e.attempts[idx] == 1 {
		sum = "bogus"
	}
	w.Header().Set(common.HeaderChunkChecksum, sum)
	w.WriteHeader(http.StatusOK)
}

func (e *chunkEndpoint) Attempts(idx int) int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.attempts[idx]
}

func (e *chunkEndpoint) Data() []byte {
	e.mu.Lock()
	defer e.mu.Unlock()
	return append([]byte(nil), e.data...)
}
