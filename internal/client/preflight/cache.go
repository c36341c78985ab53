package preflight

import (
	"context"
	"fmt"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"

	"github.com/dmitrijs2005/mediaup/internal/client/models"
	"github.com/dmitrijs2005/mediaup/internal/common"
	"github.com/dmitrijs2005/mediaup/internal/logging"
)

// Config holds cache tunables. Zero values take the defaults.
type Config struct {
	BatchSize    int
	Backoff      time.Duration
	Pacing       time.Duration
	ExpiryBuffer time.Duration
	// FetchTimeout bounds an on-demand Issue call shared by several callers.
	FetchTimeout time.Duration
	// MaxConsecutiveFailures parks the prefetch loop after that many failed
	// batches in a row. New work or a successful on-demand fetch unparks it.
	MaxConsecutiveFailures int
	Logger                 logging.Logger
	Now                    func() time.Time
}

func (c *Config) defaults() {
	if c.BatchSize <= 0 {
		c.BatchSize = 200
	}
	if c.Backoff <= 0 {
		c.Backoff = 2 * time.Second
	}
	if c.Pacing <= 0 {
		c.Pacing = 100 * time.Millisecond
	}
	if c.ExpiryBuffer <= 0 {
		c.ExpiryBuffer = 60 * time.Second
	}
	if c.FetchTimeout <= 0 {
		c.FetchTimeout = 30 * time.Second
	}
	if c.MaxConsecutiveFailures <= 0 {
		c.MaxConsecutiveFailures = 5
	}
	if c.Logger == nil {
		c.Logger = logging.Noop
	}
	c.Logger = c.Logger.With("module", "preflight")
	if c.Now == nil {
		c.Now = time.Now
	}
}

// batch is a set of ids handed to one Issue call by the prefetch loop.
type batch struct {
	done chan struct{}
}

// Cache is the destination cache. It is safe for concurrent use; Run must be
// running for queued prefetches to be served.
type Cache struct {
	cfg    Config
	issuer models.Issuer
	group  singleflight.Group

	mu       sync.Mutex
	slots    map[string]models.DestinationSlot
	queue    []models.IssueRequest
	queued   map[string]struct{}
	inflight map[string]*batch
	failures int
	parked   bool
	lastErr  error

	wake chan struct{}
}

// New returns an empty cache backed by issuer.
func New(issuer models.Issuer, cfg Config) *Cache {
	cfg.defaults()
	return &Cache{
		cfg:      cfg,
		issuer:   issuer,
		slots:    make(map[string]models.DestinationSlot),
		queued:   make(map[string]struct{}),
		inflight: make(map[string]*batch),
		wake:     make(chan struct{}, 1),
	}
}

// RequestFor builds the issuing request for a file.
func RequestFor(f models.File) models.IssueRequest {
	return models.IssueRequest{
		LocalID:  f.ID,
		MimeType: f.MimeType,
		FileSize: f.Size,
		Filename: f.Name,
	}
}

// QueueForPrefetch schedules files whose destination is not cached yet.
func (c *Cache) QueueForPrefetch(files []models.File) {
	c.mu.Lock()
	added := 0
	for _, f := range files {
		if c.knownLocked(f.ID) {
			continue
		}
		c.queue = append(c.queue, RequestFor(f))
		c.queued[f.ID] = struct{}{}
		added++
	}
	if added > 0 && c.parked {
		c.parked = false
		c.failures = 0
	}
	c.mu.Unlock()

	if added > 0 {
		c.signal()
	}
}

// knownLocked reports whether id is cached fresh, queued or being fetched.
func (c *Cache) knownLocked(id string) bool {
	if s, ok := c.slots[id]; ok && s.FreshFor(c.cfg.Now(), c.cfg.ExpiryBuffer) {
		return true
	}
	if _, ok := c.queued[id]; ok {
		return true
	}
	_, ok := c.inflight[id]
	return ok
}

// GetSignedDestination returns a fresh destination for f, waiting for an
// in-flight prefetch that covers it or fetching it on demand. Concurrent
// calls for the same id share one request, which outlives the caller that
// started it.
func (c *Cache) GetSignedDestination(ctx context.Context, f models.File) (models.DestinationSlot, error) {
	for {
		c.mu.Lock()
		if s, ok := c.freshLocked(f.ID); ok {
			c.mu.Unlock()
			return s, nil
		}
		if b, ok := c.inflight[f.ID]; ok {
			c.mu.Unlock()
			select {
			case <-b.done:
				continue
			case <-ctx.Done():
				return models.DestinationSlot{}, ctx.Err()
			}
		}
		c.dequeueLocked(f.ID)
		c.mu.Unlock()

		ch := c.group.DoChan(f.ID, func() (any, error) {
			fctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), c.cfg.FetchTimeout)
			defer cancel()
			slots, err := c.fetch(fctx, []models.IssueRequest{RequestFor(f)})
			if err != nil {
				return nil, err
			}
			return slots[f.ID], nil
		})

		select {
		case r := <-ch:
			if r.Err != nil {
				return models.DestinationSlot{}, r.Err
			}
			return r.Val.(models.DestinationSlot), nil
		case <-ctx.Done():
			return models.DestinationSlot{}, ctx.Err()
		}
	}
}

// GetSignedDestinationsBatch resolves destinations for files, in order. All
// ids missing from the cache and not already being fetched are requested
// with a single Issue call.
func (c *Cache) GetSignedDestinationsBatch(ctx context.Context, files []models.File) ([]models.DestinationSlot, error) {
	out := make([]models.DestinationSlot, len(files))
	var (
		missing []models.IssueRequest
		waiting []int
	)

	c.mu.Lock()
	for i, f := range files {
		if s, ok := c.freshLocked(f.ID); ok {
			out[i] = s
			continue
		}
		if _, ok := c.inflight[f.ID]; ok {
			waiting = append(waiting, i)
			continue
		}
		c.dequeueLocked(f.ID)
		missing = append(missing, RequestFor(f))
	}
	c.mu.Unlock()

	if len(missing) > 0 {
		got, err := c.fetch(ctx, missing)
		if err != nil {
			return nil, err
		}
		for i, f := range files {
			if s, ok := got[f.ID]; ok {
				out[i] = s
			}
		}
	}

	for _, i := range waiting {
		s, err := c.GetSignedDestination(ctx, files[i])
		if err != nil {
			return nil, err
		}
		out[i] = s
	}
	return out, nil
}

// fetch issues reqs on demand and caches the result. Every requested id must
// come back.
func (c *Cache) fetch(ctx context.Context, reqs []models.IssueRequest) (map[string]models.DestinationSlot, error) {
	slots, err := c.issuer.Issue(ctx, reqs)
	if err != nil {
		c.mu.Lock()
		c.lastErr = err
		c.mu.Unlock()
		return nil, fmt.Errorf("%w: %w", common.ErrDestination, err)
	}

	got := make(map[string]models.DestinationSlot, len(slots))
	c.mu.Lock()
	for _, s := range slots {
		c.slots[s.LocalID] = s
		got[s.LocalID] = s
	}
	wasParked := c.parked
	c.failures = 0
	c.parked = false
	c.lastErr = nil
	c.mu.Unlock()

	if wasParked {
		c.signal()
	}

	for _, r := range reqs {
		if _, ok := got[r.LocalID]; !ok {
			return nil, fmt.Errorf("%w: no destination issued for %s", common.ErrDestination, r.LocalID)
		}
	}
	return got, nil
}

func (c *Cache) freshLocked(id string) (models.DestinationSlot, bool) {
	s, ok := c.slots[id]
	if !ok {
		return models.DestinationSlot{}, false
	}
	if !s.FreshFor(c.cfg.Now(), c.cfg.ExpiryBuffer) {
		delete(c.slots, id)
		return models.DestinationSlot{}, false
	}
	return s, true
}

func (c *Cache) dequeueLocked(id string) {
	if _, ok := c.queued[id]; !ok {
		return
	}
	delete(c.queued, id)
	for i, r := range c.queue {
		if r.LocalID == id {
			c.queue = append(c.queue[:i], c.queue[i+1:]...)
			return
		}
	}
}

// Consume drops a slot after a successful transfer to it.
func (c *Cache) Consume(id string) {
	c.mu.Lock()
	delete(c.slots, id)
	c.mu.Unlock()
}

// Invalidate forgets everything about id: a cached slot and a queued
// prefetch.
func (c *Cache) Invalidate(id string) {
	c.mu.Lock()
	delete(c.slots, id)
	c.dequeueLocked(id)
	c.mu.Unlock()
}

// Len is the number of cached slots, fresh or not.
func (c *Cache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.slots)
}

// Pending is the number of ids waiting for the prefetch loop.
func (c *Cache) Pending() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.queue)
}

// LastError is the most recent issuing failure, cleared by the next success.
func (c *Cache) LastError() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.lastErr
}

// Parked reports whether the prefetch loop gave up after repeated failures.
func (c *Cache) Parked() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.parked
}

func (c *Cache) signal() {
	select {
	case c.wake <- struct{}{}:
	default:
	}
}
