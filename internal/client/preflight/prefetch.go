package preflight

import (
	"context"
	"time"

	"github.com/dmitrijs2005/mediaup/internal/client/models"
)

// Run drains the prefetch queue until ctx ends. Failed batches go back to
// the front of the queue after a fixed backoff.
func (c *Cache) Run(ctx context.Context) error {
	for {
		reqs, b := c.nextBatch()
		if reqs == nil {
			select {
			case <-c.wake:
				continue
			case <-ctx.Done():
				return nil
			}
		}

		slots, err := c.issuer.Issue(ctx, reqs)
		if ctx.Err() != nil {
			c.requeue(reqs, b, nil)
			return nil
		}
		if err != nil {
			c.requeue(reqs, b, err)
			if !sleep(ctx, c.cfg.Backoff) {
				return nil
			}
			continue
		}

		more := c.store(reqs, b, slots)
		if more && !sleep(ctx, c.cfg.Pacing) {
			return nil
		}
	}
}

// nextBatch takes up to BatchSize requests off the queue. It returns nil
// when the queue is empty or the loop is parked.
func (c *Cache) nextBatch() ([]models.IssueRequest, *batch) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.parked || len(c.queue) == 0 {
		return nil, nil
	}

	n := min(len(c.queue), c.cfg.BatchSize)
	reqs := make([]models.IssueRequest, n)
	copy(reqs, c.queue[:n])
	c.queue = c.queue[n:]

	b := &batch{done: make(chan struct{})}
	for _, r := range reqs {
		delete(c.queued, r.LocalID)
		c.inflight[r.LocalID] = b
	}
	return reqs, b
}

func (c *Cache) store(reqs []models.IssueRequest, b *batch, slots []models.DestinationSlot) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	for _, s := range slots {
		c.slots[s.LocalID] = s
	}
	for _, r := range reqs {
		delete(c.inflight, r.LocalID)
	}
	if len(slots) < len(reqs) {
		c.cfg.Logger.Warn(context.Background(), "issuer returned fewer slots than requested",
			"requested", len(reqs), "issued", len(slots))
	}
	c.failures = 0
	c.lastErr = nil
	close(b.done)

	return len(c.queue) > 0
}

// requeue puts a failed batch back at the front of the queue. Ids that were
// resolved on demand meanwhile are not requeued.
func (c *Cache) requeue(reqs []models.IssueRequest, b *batch, err error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	back := make([]models.IssueRequest, 0, len(reqs)+len(c.queue))
	for _, r := range reqs {
		delete(c.inflight, r.LocalID)
		if _, ok := c.freshLocked(r.LocalID); ok {
			continue
		}
		if _, ok := c.queued[r.LocalID]; ok {
			continue
		}
		back = append(back, r)
		c.queued[r.LocalID] = struct{}{}
	}
	c.queue = append(back, c.queue...)
	close(b.done)

	if err == nil {
		return
	}
	c.failures++
	c.lastErr = err
	c.cfg.Logger.Warn(context.Background(), "prefetch batch failed",
		"size", len(reqs), "failures", c.failures, "error", err)
	if c.failures >= c.cfg.MaxConsecutiveFailures {
		c.parked = true
		c.cfg.Logger.Error(context.Background(), "prefetch parked after repeated failures", "error", err)
	}
}

func sleep(ctx context.Context, d time.Duration) bool {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-t.C:
		return true
	case <-ctx.Done():
		return false
	}
}
