package engine

import (
	"time"

	"github.com/dmitrijs2005/mediaup/internal/client/models"
)

// emitInterval throttles progress-only updates.
const emitInterval = 100 * time.Millisecond

// Stats returns the current aggregate snapshot.
func (e *Engine) Stats() models.Stats {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.statsLocked()
}

func (e *Engine) statsLocked() models.Stats {
	s := models.Stats{TotalFiles: len(e.tasks)}

	var remaining int64
	for _, t := range e.tasks {
		switch t.status {
		case models.StatusQueued, models.StatusAwaitingDestination:
			s.Queued++
		case models.StatusCompressing:
			s.Compressing++
		case models.StatusUploading:
			s.Uploading++
		case models.StatusConfirming:
			s.Confirming++
		case models.StatusCompleted:
			s.Completed++
		case models.StatusFailed:
			s.Failed++
		case models.StatusPaused:
			s.Paused++
		case models.StatusCancelled:
			s.Cancelled++
			continue
		}

		s.TotalBytes += t.size()
		s.UploadedBytes += t.sent
		if t.compressed {
			s.BandwidthSaved += t.result.Saved()
		}
		if !t.status.Terminal() {
			remaining += max(t.size()-t.sent, 0)
		}
	}

	s.CurrentConcurrency = e.controller.Limit()
	s.IsPaused = e.paused
	if r := e.run; r != nil && r.ctx.Err() == nil {
		s.Running = true
		elapsed := e.cfg.Now().Sub(r.started).Seconds()
		if elapsed > 0 && r.sent > 0 {
			bps := float64(r.sent) / elapsed
			s.SpeedMBps = bps / (1 << 20)
			s.ETASeconds = float64(remaining) / bps
		}
	}

	switch {
	case e.lastErr != nil:
		s.LastError = e.lastErr.Error()
	case e.cache.LastError() != nil:
		s.LastError = e.cache.LastError().Error()
	}
	return s
}

// emitLocked publishes the current stats on the updates channel, keeping
// only the newest value. Unforced updates are rate limited.
func (e *Engine) emitLocked(force bool) {
	now := e.cfg.Now()
	if !force && now.Sub(e.lastEmit) < emitInterval {
		return
	}
	e.lastEmit = now

	s := e.statsLocked()
	select {
	case e.updates <- s:
		return
	default:
	}
	select {
	case <-e.updates:
	default:
	}
	select {
	case e.updates <- s:
	default:
	}
}
