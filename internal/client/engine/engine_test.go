package engine

import (
	"context"
	"fmt"
	"math/rand"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrijs2005/mediaup/internal/client/compress"
	"github.com/dmitrijs2005/mediaup/internal/client/models"
	"github.com/dmitrijs2005/mediaup/internal/client/preflight"
	"github.com/dmitrijs2005/mediaup/internal/client/repositories/kv"
	"github.com/dmitrijs2005/mediaup/internal/client/transfer"
	"github.com/dmitrijs2005/mediaup/internal/common"
)

const (
	smallSize = 600
	largeSize = 2000
)

func newTestEngine(t *testing.T, b *backend, mutate func(*Config)) *Engine {
	t.Helper()
	return newEngineWith(t, b, b, kv.NewMemoryRepository(), mutate)
}

func newEngineWith(t *testing.T, issuer models.Issuer, confirmer models.Confirmer, store kv.Store, mutate func(*Config)) *Engine {
	t.Helper()
	cfg := Config{
		Compress:  compress.Config{Workers: 2, SkipThreshold: 1 << 30},
		Preflight: preflight.Config{Pacing: time.Millisecond, Backoff: 10 * time.Millisecond},
		Transfer: transfer.Config{
			ChunkSize:          256,
			MaxAttempts:        2,
			SingleShotAttempts: 2,
			RetryBase:          time.Millisecond,
		},
		ChunkThreshold: 1024,
	}
	if mutate != nil {
		mutate(&cfg)
	}
	e := New(cfg, issuer, confirmer, store)
	t.Cleanup(e.Close)
	return e
}

func testFiles(prefix string, n, size int) ([]models.File, map[string][]byte) {
	files := make([]models.File, n)
	data := make(map[string][]byte, n)
	for i := range files {
		name := fmt.Sprintf("%s-%02d.jpg", prefix, i)
		b := make([]byte, size)
		rand.New(rand.NewSource(int64(i + size))).Read(b)
		files[i] = models.NewMemFile(name, "image/jpeg", b)
		files[i].ID = name
		data[name] = b
	}
	return files, data
}

func waitRun(t *testing.T, e *Engine) {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	require.NoError(t, e.Wait(ctx))
}

func waitHandles(t *testing.T, handles []*Handle) []error {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	errs := make([]error, len(handles))
	for i, h := range handles {
		errs[i] = h.Wait(ctx)
		require.NotErrorIs(t, errs[i], context.DeadlineExceeded)
	}
	return errs
}

func TestEngine_CommittedSizeMatchesTransferred(t *testing.T) {
	b := newBackend(t)
	e := newTestEngine(t, b, nil)

	small, data := testFiles("small", 5, smallSize)
	large, largeData := testFiles("large", 2, largeSize)
	for k, v := range largeData {
		data[k] = v
	}

	handles := e.AddFiles(append(small, large...))
	require.Len(t, handles, 7)
	for _, err := range waitHandles(t, handles) {
		assert.NoError(t, err)
	}
	waitRun(t, e)

	items := b.confirmed()
	require.Len(t, items, 7)
	for _, it := range items {
		obj := b.object(it.Filename)
		assert.Equal(t, int64(len(obj)), it.FileSize, it.Filename)
		assert.Equal(t, data[it.Filename], obj, it.Filename)
		assert.Equal(t, "users/1/"+it.Filename, it.StoragePath)
	}
	assert.Equal(t, []int{7}, b.batchSizes())

	for _, s := range e.Tasks() {
		assert.Equal(t, models.StatusCompleted, s.Status)
		assert.Equal(t, 1.0, s.Progress)
		assert.Equal(t, s.OriginalSize > 1024, s.Chunked, s.Name)
	}

	stats := e.Stats()
	assert.Equal(t, 7, stats.Completed)
	assert.Equal(t, stats.TotalBytes, stats.UploadedBytes)
	assert.False(t, stats.Running)

	sessions, err := e.Sessions(context.Background())
	require.NoError(t, err)
	assert.Empty(t, sessions)
}

func TestEngine_ChunkFailureIsolatedToOneFile(t *testing.T) {
	b := newBackend(t)
	e := newTestEngine(t, b, nil)

	small, _ := testFiles("photo", 8, smallSize)
	large, _ := testFiles("video", 2, largeSize)
	b.failChunk["video-01.jpg"] = 1

	handles := e.AddFiles(append(small, large...))
	errs := waitHandles(t, handles)
	waitRun(t, e)

	var failed []string
	for i, err := range errs {
		if err != nil {
			failed = append(failed, handles[i].ID())
			assert.ErrorIs(t, err, common.ErrTransfer)
		}
	}
	assert.Equal(t, []string{"video-01.jpg"}, failed)

	stats := e.Stats()
	assert.Equal(t, 9, stats.Completed)
	assert.Equal(t, 1, stats.Failed)
	assert.Len(t, b.confirmed(), 9)
	assert.Equal(t, 2, b.chunkAttempts("video-01.jpg", 1))

	sessions, err := e.Sessions(context.Background())
	require.NoError(t, err)
	require.Len(t, sessions, 1)
	assert.Equal(t, "video-01.jpg", sessions[0].FileName)
	assert.Equal(t, []int{1}, sessions[0].FailedChunks)
}

func TestEngine_RetryResumesChunkSession(t *testing.T) {
	b := newBackend(t)
	e := newTestEngine(t, b, nil)

	large, data := testFiles("clip", 1, largeSize)
	b.failChunk["clip-00.jpg"] = 3

	h := e.AddFiles(large)[0]
	assert.Error(t, waitHandles(t, []*Handle{h})[0])
	waitRun(t, e)

	b.mu.Lock()
	delete(b.failChunk, "clip-00.jpg")
	b.mu.Unlock()

	assert.Equal(t, 1, e.RetryFailed())
	require.NoError(t, waitHandles(t, []*Handle{h})[0])
	waitRun(t, e)

	assert.Equal(t, data["clip-00.jpg"], b.object("clip-00.jpg"))
	assert.Equal(t, 1, b.chunkAttempts("clip-00.jpg", 0), "uploaded chunks are not sent again")
	assert.Equal(t, 3, b.chunkAttempts("clip-00.jpg", 3))
	assert.Equal(t, 1, h.Snapshot().Retries)
}

func TestEngine_SingleCommitWhenUpstreamDrains(t *testing.T) {
	b := newBackend(t)
	e := newTestEngine(t, b, nil)

	files, _ := testFiles("img", 37, smallSize)
	errs := waitHandles(t, e.AddFiles(files))
	waitRun(t, e)

	for _, err := range errs {
		assert.NoError(t, err)
	}
	assert.Equal(t, []int{37}, b.batchSizes())
}

func TestEngine_ConfirmBatchesAreBounded(t *testing.T) {
	b := newBackend(t)
	e := newTestEngine(t, b, func(c *Config) { c.ConfirmBatchSize = 5 })

	files, _ := testFiles("img", 12, smallSize)
	waitHandles(t, e.AddFiles(files))
	waitRun(t, e)

	seen := map[string]bool{}
	for _, it := range b.confirmed() {
		assert.False(t, seen[it.Filename], "duplicate commit of %s", it.Filename)
		seen[it.Filename] = true
	}
	assert.Len(t, seen, 12)
	for _, n := range b.batchSizes() {
		assert.LessOrEqual(t, n, 5)
	}
}

func TestEngine_PauseResume(t *testing.T) {
	b := newBackend(t)
	e := newTestEngine(t, b, nil)

	e.Pause()
	files, _ := testFiles("img", 6, smallSize)
	handles := e.AddFiles(files)

	time.Sleep(50 * time.Millisecond)
	stats := e.Stats()
	assert.True(t, stats.IsPaused)
	assert.Equal(t, 6, stats.Paused)
	assert.Zero(t, b.storageHits())
	assert.Empty(t, b.confirmed())

	e.Resume()
	for _, err := range waitHandles(t, handles) {
		assert.NoError(t, err)
	}
	waitRun(t, e)

	seen := map[string]int{}
	for _, it := range b.confirmed() {
		seen[it.Filename]++
	}
	assert.Len(t, seen, 6)
	for name, n := range seen {
		assert.Equal(t, 1, n, name)
		assert.Equal(t, 1, b.putCount(name), name)
	}
}

func TestEngine_PauseHoldsCommit(t *testing.T) {
	b := newBackend(t)
	b.hold = make(chan struct{})
	e := newTestEngine(t, b, nil)

	files, _ := testFiles("img", 3, smallSize)
	handles := e.AddFiles(files)

	select {
	case <-b.started:
	case <-time.After(5 * time.Second):
		t.Fatal("no transfer started")
	}
	e.Pause()
	close(b.hold)

	require.Eventually(t, func() bool {
		s := e.Stats()
		return s.Uploading == 0 && s.Compressing == 0
	}, 5*time.Second, 5*time.Millisecond)
	time.Sleep(30 * time.Millisecond)
	assert.Empty(t, b.confirmed())

	e.Resume()
	for _, err := range waitHandles(t, handles) {
		assert.NoError(t, err)
	}
	assert.Len(t, b.confirmed(), 3)
}

func TestEngine_Cancel(t *testing.T) {
	b := newBackend(t)
	b.hold = make(chan struct{})
	defer close(b.hold)
	e := newTestEngine(t, b, nil)

	files, _ := testFiles("img", 4, smallSize)
	handles := e.AddFiles(files)

	select {
	case <-b.started:
	case <-time.After(5 * time.Second):
		t.Fatal("no transfer started")
	}
	e.Cancel()

	for _, err := range waitHandles(t, handles) {
		assert.ErrorIs(t, err, common.ErrCancelled)
	}
	waitRun(t, e)

	stats := e.Stats()
	assert.Equal(t, 4, stats.Cancelled)
	assert.Zero(t, stats.Active())
	assert.Empty(t, b.confirmed())
}

func TestEngine_RetryAfterConfirmFailure(t *testing.T) {
	b := newBackend(t)
	b.confirmFailures = 1
	e := newTestEngine(t, b, nil)

	files, _ := testFiles("img", 4, smallSize)
	handles := e.AddFiles(files)
	for _, err := range waitHandles(t, handles) {
		assert.ErrorIs(t, err, common.ErrConfirm)
	}
	waitRun(t, e)
	assert.NotEmpty(t, e.Stats().LastError)

	assert.Equal(t, 4, e.RetryFailed())
	for _, err := range waitHandles(t, handles) {
		assert.NoError(t, err)
	}
	waitRun(t, e)

	assert.Len(t, b.confirmed(), 4)
	for _, f := range files {
		assert.Equal(t, 1, b.putCount(f.Name), "bytes are not sent twice")
	}
	assert.Empty(t, e.Stats().LastError)
}

func TestEngine_OnCompleteAndReset(t *testing.T) {
	b := newBackend(t)
	got := make(chan models.Stats, 4)
	e := newTestEngine(t, b, func(c *Config) {
		c.OnComplete = func(s models.Stats) { got <- s }
	})

	files, _ := testFiles("img", 3, smallSize)
	e.AddFiles(files)

	select {
	case s := <-got:
		assert.Equal(t, 3, s.Completed)
		assert.False(t, s.Running)
	case <-time.After(10 * time.Second):
		t.Fatal("OnComplete not called")
	}
	<-e.Done()

	e.Reset()
	assert.Empty(t, e.Tasks())
	assert.Zero(t, e.Stats().TotalFiles)

	more, _ := testFiles("next", 2, smallSize)
	waitHandles(t, e.AddFiles(more))
	select {
	case s := <-got:
		assert.Equal(t, 2, s.Completed)
	case <-time.After(10 * time.Second):
		t.Fatal("second run did not complete")
	}
}

func TestEngine_UpdatesLatestWins(t *testing.T) {
	b := newBackend(t)
	e := newTestEngine(t, b, nil)

	files, _ := testFiles("img", 5, smallSize)
	waitHandles(t, e.AddFiles(files))
	waitRun(t, e)

	var last models.Stats
	select {
	case last = <-e.Updates():
	case <-time.After(time.Second):
		t.Fatal("no update")
	}
	assert.Equal(t, 5, last.Completed)
	assert.False(t, last.Running)
}

func TestEngine_ClosedRejectsFiles(t *testing.T) {
	b := newBackend(t)
	e := newTestEngine(t, b, nil)
	e.Close()

	files, _ := testFiles("img", 1, smallSize)
	assert.Nil(t, e.AddFiles(files))
	assert.Zero(t, e.RetryFailed())
}
