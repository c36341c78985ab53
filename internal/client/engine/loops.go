package engine

import (
	"context"
	"errors"
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/dmitrijs2005/mediaup/internal/client/compress"
	"github.com/dmitrijs2005/mediaup/internal/client/models"
	"github.com/dmitrijs2005/mediaup/internal/client/transfer"
	"github.com/dmitrijs2005/mediaup/internal/common"
)

// compressLookahead bounds the upload backlog, in multiples of the upload
// limit, that compression may build up.
const compressLookahead = 2

// wait blocks on wake with e.mu released. It reports false once the run is
// over.
func (e *Engine) waitLocked(r *run, wake chan struct{}) bool {
	e.mu.Unlock()
	select {
	case <-wake:
	case <-r.ctx.Done():
	}
	e.mu.Lock()
	return r.ctx.Err() == nil
}

func (e *Engine) compressLoop(r *run, g *errgroup.Group) error {
	for {
		t, ok := e.nextCompress(r)
		if !ok {
			return nil
		}
		g.Go(func() error {
			e.compressTask(r, t)
			return nil
		})
	}
}

func (e *Engine) nextCompress(r *run) (*task, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()

	for r.ctx.Err() == nil {
		backlog := len(e.uploadQ) + e.activeCompress
		if !e.paused && len(e.compressQ) > 0 && e.activeCompress < e.pool.Size() &&
			backlog < compressLookahead*e.controller.Limit() {
			t := e.compressQ[0]
			e.compressQ = e.compressQ[1:]
			e.activeCompress++
			e.setStatusLocked(t, models.StatusCompressing)
			t.progress = progressCompressing
			e.emitLocked(true)
			return t, true
		}
		if !e.waitLocked(r, r.compressWake) {
			break
		}
	}
	return nil, false
}

func (e *Engine) compressTask(r *run, t *task) {
	data, err := t.file.ReadAll()
	var res compress.Result
	if err == nil {
		res, err = e.pool.Compress(r.ctx, compress.Job{Data: data, MimeType: t.file.MimeType, Options: e.cfg.Image})
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	defer e.settleLocked()
	e.activeCompress--

	if t.status == models.StatusCancelled {
		return
	}
	if err != nil {
		if r.ctx.Err() != nil {
			return
		}
		e.failLocked(t, err)
		return
	}
	if res.Err != nil {
		e.log.Warn(r.ctx, "sending original bytes", "file", t.file.Name, "error", res.Err)
	}

	t.payload = res.Payload
	t.payloadSize = int64(len(res.Payload))
	t.result = res
	t.result.Payload = nil
	t.compressed = true
	t.progress = progressUploadStart
	e.uploadQ = append(e.uploadQ, t)
	e.admitLocked(t, models.StatusAwaitingDestination)
	e.emitLocked(true)
}

func (e *Engine) uploadLoop(r *run, g *errgroup.Group) error {
	for {
		t, payload, ok := e.nextUpload(r)
		if !ok {
			return nil
		}
		g.Go(func() error {
			e.uploadTask(r, t, payload)
			return nil
		})
	}
}

func (e *Engine) nextUpload(r *run) (*task, []byte, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()

	for r.ctx.Err() == nil {
		if !e.paused && len(e.uploadQ) > 0 && e.activeUpload < e.controller.Limit() {
			t := e.uploadQ[0]
			e.uploadQ = e.uploadQ[1:]
			e.activeUpload++
			e.setStatusLocked(t, models.StatusAwaitingDestination)
			t.sent = 0
			t.progress = progressUploadStart
			notify(r.compressWake)
			e.emitLocked(true)
			return t, t.payload, true
		}
		if !e.waitLocked(r, r.uploadWake) {
			break
		}
	}
	return nil, nil, false
}

func (e *Engine) uploadTask(r *run, t *task, payload []byte) {
	ctx := r.ctx
	total := int64(len(payload))
	progress := func(n int64) { e.onProgress(r, t, n, total) }

	start := e.cfg.Now()
	item, sent, err := e.transfer(ctx, t, payload, progress)
	if ctx.Err() == nil && sent && (err == nil || !errors.Is(err, common.ErrDestination)) {
		e.controller.RecordOutcome(err == nil, total, e.cfg.Now().Sub(start))
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	defer e.settleLocked()
	e.activeUpload--

	if t.status == models.StatusCancelled {
		return
	}
	if err != nil {
		if ctx.Err() != nil {
			return
		}
		if errors.Is(err, common.ErrDestination) {
			e.lastErr = err
		}
		e.failLocked(t, err)
		return
	}

	t.sent = total
	t.payload = nil
	item.Filename = t.file.Name
	item.FileSize = total
	item.MimeType = t.result.MimeType
	item.Width = t.result.Width
	item.Height = t.result.Height
	t.confirm = &item
	t.progress = progressConfirming
	e.confirmQ = append(e.confirmQ, t)
	e.admitLocked(t, models.StatusConfirming)
	e.emitLocked(true)
}

// markUploading moves t to uploading once it has a destination. A non-empty
// sessionKey marks the transfer chunked.
func (e *Engine) markUploading(t *task, dest models.DestinationSlot, sessionKey string) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if t.status == models.StatusCancelled {
		return
	}
	t.dest = dest
	if sessionKey != "" {
		t.chunked = true
		t.sessionKey = sessionKey
	}
	e.setStatusLocked(t, models.StatusUploading)
	e.emitLocked(true)
}

// transfer puts payload into storage and returns the confirm item fields
// that locate it. It reports whether any bytes were sent.
//
// Payloads above ChunkThreshold continue a stored session when one can be
// continued; a completed one goes straight to confirmation. Otherwise they
// are chunked when the destination allows it.
func (e *Engine) transfer(ctx context.Context, t *task, payload []byte, progress func(int64)) (models.ConfirmItem, bool, error) {
	total := int64(len(payload))
	if total > e.cfg.ChunkThreshold {
		if s := e.storedSession(ctx, t, total); s != nil {
			e.cache.Invalidate(t.id)
			e.markUploading(t, s.Destination, s.Key)
			if s.Completed {
				e.log.Info(ctx, "stored session already complete", "key", s.Key)
				return sessionItem(s), false, nil
			}

			resumed, err := e.chunked.Resume(ctx, s, t.file, payload, progress)
			if err == nil {
				return sessionItem(resumed), true, nil
			}
			if !s.Multipart() || !errors.Is(err, common.ErrDestination) || ctx.Err() != nil {
				return models.ConfirmItem{}, true, err
			}
			e.log.Warn(ctx, "stored parts could not be signed, starting over", "key", s.Key, "error", err)
		}
	}

	dest, err := e.cache.GetSignedDestination(ctx, t.file)
	if err != nil {
		return models.ConfirmItem{}, false, err
	}

	if total > e.cfg.ChunkThreshold && e.chunked.Supports(dest) {
		e.markUploading(t, dest, t.file.Identity())
		s, err := e.chunked.Upload(ctx, t.file, payload, dest, progress)
		if err != nil {
			return models.ConfirmItem{}, true, err
		}
		e.cache.Consume(t.id)
		return sessionItem(s), true, nil
	}

	e.markUploading(t, dest, "")
	if err := e.single.Upload(ctx, payload, dest, progress); err != nil {
		e.cache.Invalidate(t.id)
		return models.ConfirmItem{}, true, err
	}
	e.cache.Consume(t.id)
	return models.ConfirmItem{StoragePath: dest.StoragePath, Token: dest.Token}, true, nil
}

// storedSession returns the persisted session for t's file when it still
// matches the payload and can be continued.
func (e *Engine) storedSession(ctx context.Context, t *task, total int64) *transfer.Session {
	key := t.file.Identity()
	s, err := e.chunked.Load(ctx, key)
	if err != nil {
		e.log.Warn(ctx, "stored session unreadable, starting over", "key", key, "error", err)
		return nil
	}
	if s == nil {
		return nil
	}
	if err := s.Matches(t.file, total); err != nil {
		e.log.Info(ctx, "stored session does not match, starting over", "key", key, "error", err)
		return nil
	}
	if !e.chunked.Resumable(s, e.cfg.Preflight.ExpiryBuffer) {
		e.log.Info(ctx, "stored session expired, starting over", "key", key)
		return nil
	}
	return s
}

func sessionItem(s *transfer.Session) models.ConfirmItem {
	return models.ConfirmItem{
		StoragePath: s.Destination.StoragePath,
		Token:       s.Destination.Token,
		UploadID:    s.UploadID,
		Parts:       s.CompletedParts(),
	}
}

func (e *Engine) onProgress(r *run, t *task, n, total int64) {
	e.mu.Lock()
	defer e.mu.Unlock()

	n = min(n, total)
	if n <= t.sent {
		return
	}
	r.sent += n - t.sent
	t.sent = n
	if total > 0 {
		t.progress = progressUploadStart + (progressUploadEnd-progressUploadStart)*float64(n)/float64(total)
	}
	e.emitLocked(false)
}

func (e *Engine) confirmLoop(r *run) error {
	for {
		batch, items, ok := e.nextConfirmBatch(r)
		if !ok {
			return nil
		}
		e.commit(r, batch, items)
	}
}

// nextConfirmBatch waits for a full batch, or for any pending items once
// nothing upstream can add more.
func (e *Engine) nextConfirmBatch(r *run) ([]*task, []models.ConfirmItem, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()

	for r.ctx.Err() == nil {
		ready := len(e.confirmQ) >= e.cfg.ConfirmBatchSize ||
			(len(e.confirmQ) > 0 && e.upstreamIdleLocked())
		if !e.paused && e.activeConfirm == 0 && ready {
			n := min(len(e.confirmQ), e.cfg.ConfirmBatchSize)
			batch := append([]*task(nil), e.confirmQ[:n]...)
			e.confirmQ = e.confirmQ[n:]
			e.activeConfirm++

			items := make([]models.ConfirmItem, n)
			for i, t := range batch {
				e.setStatusLocked(t, models.StatusConfirming)
				items[i] = *t.confirm
			}
			e.emitLocked(true)
			return batch, items, true
		}
		if !e.waitLocked(r, r.confirmWake) {
			break
		}
	}
	return nil, nil, false
}

func (e *Engine) commit(r *run, batch []*task, items []models.ConfirmItem) {
	ctx := r.ctx
	err := e.confirmer.Confirm(ctx, items)
	if err != nil && ctx.Err() == nil {
		err = wrapStage(common.ErrConfirm, err)
		e.log.Error(ctx, "confirm batch rejected", "size", len(items), "error", err)
	}

	if err == nil {
		for _, t := range batch {
			if !t.chunked {
				continue
			}
			key := t.sessionKey
			if ferr := e.chunked.Finalize(context.WithoutCancel(ctx), key); ferr != nil {
				e.log.Warn(ctx, "session cleanup failed", "key", key, "error", ferr)
			}
		}
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	defer e.settleLocked()
	e.activeConfirm--

	if err != nil && ctx.Err() == nil {
		e.lastErr = err
	}
	for _, t := range batch {
		if t.status == models.StatusCancelled {
			continue
		}
		if err != nil {
			if ctx.Err() != nil {
				continue
			}
			e.failLocked(t, fmt.Errorf("commit %s: %w", t.file.Name, err))
			continue
		}
		e.setStatusLocked(t, models.StatusCompleted)
		t.progress = 1
		close(t.done)
	}
	e.emitLocked(true)
}
