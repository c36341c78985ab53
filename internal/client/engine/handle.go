package engine

import (
	"context"

	"github.com/dmitrijs2005/mediaup/internal/client/models"
	"github.com/dmitrijs2005/mediaup/internal/common"
)

// Handle observes one file added to the engine.
type Handle struct {
	e *Engine
	t *task
}

func (h *Handle) ID() string {
	return h.t.id
}

func (h *Handle) Snapshot() models.TaskSnapshot {
	h.e.mu.Lock()
	defer h.e.mu.Unlock()
	return h.t.snapshot()
}

// Wait blocks until the task is completed, failed or cancelled. It returns
// nil for completed, the task error for failed and common.ErrCancelled for
// cancelled.
func (h *Handle) Wait(ctx context.Context) error {
	for {
		h.e.mu.Lock()
		status, err, done := h.t.status, h.t.err, h.t.done
		h.e.mu.Unlock()

		switch status {
		case models.StatusCompleted:
			return nil
		case models.StatusFailed:
			return err
		case models.StatusCancelled:
			return common.ErrCancelled
		}

		select {
		case <-done:
		case <-ctx.Done():
			return ctx.Err()
		}
	}
}
