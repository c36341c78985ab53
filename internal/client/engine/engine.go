package engine

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/dmitrijs2005/mediaup/internal/client/compress"
	"github.com/dmitrijs2005/mediaup/internal/client/concurrency"
	"github.com/dmitrijs2005/mediaup/internal/client/models"
	"github.com/dmitrijs2005/mediaup/internal/client/preflight"
	"github.com/dmitrijs2005/mediaup/internal/client/repositories/kv"
	"github.com/dmitrijs2005/mediaup/internal/client/transfer"
	"github.com/dmitrijs2005/mediaup/internal/logging"
)

// Config configures an Engine and the components it owns.
type Config struct {
	Compress    compress.Config
	Image       compress.Options
	Preflight   preflight.Config
	Concurrency concurrency.Config
	Transfer    transfer.Config

	// ChunkThreshold routes larger payloads through the chunked uploader.
	ChunkThreshold   int64
	ConfirmBatchSize int

	Logger logging.Logger
	// OnComplete is called with the final stats each time a run ends.
	OnComplete func(models.Stats)
	Now        func() time.Time
}

func (c *Config) defaults() {
	if c.Image == (compress.Options{}) {
		c.Image = compress.DefaultOptions()
	}
	if c.ChunkThreshold <= 0 {
		c.ChunkThreshold = 10 << 20
	}
	if c.ConfirmBatchSize <= 0 {
		c.ConfirmBatchSize = 50
	}
	if c.Preflight.ExpiryBuffer <= 0 {
		c.Preflight.ExpiryBuffer = 60 * time.Second
	}
	if c.Logger == nil {
		c.Logger = logging.Noop
	}
	if c.Now == nil {
		c.Now = time.Now
	}
	for _, l := range []*logging.Logger{&c.Compress.Logger, &c.Preflight.Logger, &c.Concurrency.Logger, &c.Transfer.Logger} {
		if *l == nil {
			*l = c.Logger
		}
	}
	if c.Preflight.Now == nil {
		c.Preflight.Now = c.Now
	}
	if c.Transfer.Now == nil {
		c.Transfer.Now = c.Now
	}
}

// run is one activation of the stage loops.
type run struct {
	ctx     context.Context
	cancel  context.CancelFunc
	done    chan struct{}
	started time.Time
	sent    int64

	compressWake chan struct{}
	uploadWake   chan struct{}
	confirmWake  chan struct{}
}

func (r *run) wakeAll() {
	notify(r.compressWake)
	notify(r.uploadWake)
	notify(r.confirmWake)
}

func notify(ch chan struct{}) {
	select {
	case ch <- struct{}{}:
	default:
	}
}

// Engine is the upload pipeline. All methods are safe for concurrent use.
type Engine struct {
	cfg       Config
	log       logging.Logger
	confirmer models.Confirmer

	pool       *compress.Pool
	cache      *preflight.Cache
	controller *concurrency.Controller
	single     *transfer.Uploader
	chunked    *transfer.ChunkedUploader

	mu        sync.Mutex
	tasks     []*task
	compressQ []*task
	uploadQ   []*task
	confirmQ  []*task

	activeCompress int
	activeUpload   int
	activeConfirm  int

	paused   bool
	lastErr  error
	run      *run
	lastDone chan struct{}
	closed   bool

	updates  chan models.Stats
	lastEmit time.Time
}

// New builds an engine with its own compression pool, destination cache,
// concurrency controller and uploaders. Chunk sessions are persisted in
// store. An issuer that also implements models.PartIssuer enables multipart
// chunking for slots that take no ranges.
func New(cfg Config, issuer models.Issuer, confirmer models.Confirmer, store kv.Store) *Engine {
	cfg.defaults()
	parts, _ := issuer.(models.PartIssuer)

	done := make(chan struct{})
	close(done)

	return &Engine{
		cfg:        cfg,
		log:        cfg.Logger.With("module", "engine"),
		confirmer:  confirmer,
		pool:       compress.NewPool(cfg.Compress),
		cache:      preflight.New(issuer, cfg.Preflight),
		controller: concurrency.New(cfg.Concurrency),
		single:     transfer.NewUploader(cfg.Transfer),
		chunked:    transfer.NewChunkedUploader(store, parts, cfg.Transfer),
		lastDone:   done,
		updates:    make(chan models.Stats, 1),
	}
}

// Sessions lists persisted chunk sessions.
func (e *Engine) Sessions(ctx context.Context) ([]*transfer.Session, error) {
	return e.chunked.List(ctx)
}

// AddFiles queues files and starts processing if the engine is idle.
func (e *Engine) AddFiles(files []models.File) []*Handle {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.closed || len(files) == 0 {
		return nil
	}

	now := e.cfg.Now()
	handles := make([]*Handle, 0, len(files))
	prefetch := make([]models.File, 0, len(files))
	for _, f := range files {
		if f.ID == "" {
			f.ID = uuid.NewString()
		}
		t := &task{
			id:        f.ID,
			file:      f,
			status:    models.StatusQueued,
			updatedAt: now,
			done:      make(chan struct{}),
		}
		if e.paused {
			t.status = models.StatusPaused
		}
		e.tasks = append(e.tasks, t)
		e.compressQ = append(e.compressQ, t)
		handles = append(handles, &Handle{e: e, t: t})
		prefetch = append(prefetch, f)
	}

	e.cache.QueueForPrefetch(prefetch)
	e.ensureRunLocked()
	notify(e.run.compressWake)
	e.emitLocked(true)

	e.log.Info(context.Background(), "files added", "count", len(files))
	return handles
}

// Pause lets in-flight operations finish and stops new ones from starting.
func (e *Engine) Pause() {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.paused {
		return
	}
	e.paused = true
	for _, q := range [][]*task{e.compressQ, e.uploadQ, e.confirmQ} {
		for _, t := range q {
			e.setStatusLocked(t, models.StatusPaused)
		}
	}
	e.emitLocked(true)
}

// Resume re-admits paused tasks at queued.
func (e *Engine) Resume() {
	e.mu.Lock()
	defer e.mu.Unlock()

	if !e.paused {
		return
	}
	e.paused = false
	for _, t := range e.tasks {
		if t.status == models.StatusPaused {
			e.setStatusLocked(t, models.StatusQueued)
		}
	}
	if e.run != nil {
		e.run.wakeAll()
	}
	e.emitLocked(true)
}

// RetryFailed re-queues every failed task at the stage it failed in and
// returns how many were re-queued. Tasks whose bytes already reached storage
// go straight back to confirmation.
func (e *Engine) RetryFailed() int {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.closed {
		return 0
	}

	n := 0
	for _, t := range e.tasks {
		if t.status != models.StatusFailed {
			continue
		}
		e.setStatusLocked(t, models.StatusQueued)
		t.retries++
		t.err = nil
		t.done = make(chan struct{})
		if e.paused {
			e.setStatusLocked(t, models.StatusPaused)
		}

		switch {
		case t.confirm != nil:
			t.progress = progressConfirming
			e.confirmQ = append(e.confirmQ, t)
		case t.compressed:
			t.progress = progressUploadStart
			e.uploadQ = append(e.uploadQ, t)
		default:
			t.progress = 0
			e.compressQ = append(e.compressQ, t)
		}
		n++
	}
	if n == 0 {
		return 0
	}

	e.lastErr = nil
	e.ensureRunLocked()
	e.run.wakeAll()
	e.emitLocked(true)
	return n
}

// Cancel clears all queues, marks every unfinished task cancelled and aborts
// in-flight requests.
func (e *Engine) Cancel() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.cancelLocked()
}

func (e *Engine) cancelLocked() {
	for _, t := range e.tasks {
		if !t.status.Terminal() {
			e.setStatusLocked(t, models.StatusCancelled)
			e.cache.Invalidate(t.id)
			t.payload = nil
			close(t.done)
		}
	}
	e.compressQ, e.uploadQ, e.confirmQ = nil, nil, nil
	e.paused = false
	if e.run != nil {
		e.run.cancel()
	}
	e.emitLocked(true)
}

// Done is closed when the current run ends. With no run it is already
// closed.
func (e *Engine) Done() <-chan struct{} {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.run != nil {
		return e.run.done
	}
	return e.lastDone
}

// Wait blocks until the current run ends or ctx is done.
func (e *Engine) Wait(ctx context.Context) error {
	select {
	case <-e.Done():
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Reset cancels any run, waits for it to stop and forgets every task. The
// concurrency limit goes back to its start value.
func (e *Engine) Reset() {
	e.mu.Lock()
	e.cancelLocked()
	done := e.lastDone
	if e.run != nil {
		done = e.run.done
	}
	e.mu.Unlock()

	<-done

	e.mu.Lock()
	defer e.mu.Unlock()
	e.tasks = nil
	e.lastErr = nil
	e.controller.Reset()
	e.emitLocked(true)
}

// Close cancels any run and stops the compression workers. The engine
// accepts no files afterwards.
func (e *Engine) Close() {
	e.mu.Lock()
	if e.closed {
		e.mu.Unlock()
		return
	}
	e.closed = true
	e.cancelLocked()
	done := e.lastDone
	if e.run != nil {
		done = e.run.done
	}
	e.mu.Unlock()

	<-done
	e.pool.Close()
}

// Tasks returns snapshots of all tasks in insertion order.
func (e *Engine) Tasks() []models.TaskSnapshot {
	e.mu.Lock()
	defer e.mu.Unlock()
	out := make([]models.TaskSnapshot, len(e.tasks))
	for i, t := range e.tasks {
		out[i] = t.snapshot()
	}
	return out
}

// Updates delivers the latest stats after state changes. Slow readers only
// miss intermediate snapshots.
func (e *Engine) Updates() <-chan models.Stats {
	return e.updates
}

// ensureRunLocked starts the stage loops unless they are running.
func (e *Engine) ensureRunLocked() {
	if e.run != nil && e.run.ctx.Err() == nil {
		return
	}
	ctx, cancel := context.WithCancel(context.Background())
	r := &run{
		ctx:          ctx,
		cancel:       cancel,
		done:         make(chan struct{}),
		started:      e.cfg.Now(),
		compressWake: make(chan struct{}, 1),
		uploadWake:   make(chan struct{}, 1),
		confirmWake:  make(chan struct{}, 1),
	}
	e.run = r

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error { return e.cache.Run(gctx) })
	g.Go(func() error { return e.compressLoop(r, g) })
	g.Go(func() error { return e.uploadLoop(r, g) })
	g.Go(func() error { return e.confirmLoop(r) })

	go func() {
		if err := g.Wait(); err != nil && !errors.Is(err, context.Canceled) {
			e.log.Error(context.Background(), "pipeline stopped", "error", err)
		}
		e.finishRun(r)
	}()
}

func (e *Engine) finishRun(r *run) {
	r.cancel()

	e.mu.Lock()
	if e.run == r {
		e.run = nil
	}
	e.lastDone = r.done
	stats := e.statsLocked()
	e.emitLocked(true)
	e.mu.Unlock()

	close(r.done)
	e.log.Info(context.Background(), "run finished",
		"completed", stats.Completed, "failed", stats.Failed, "cancelled", stats.Cancelled)
	if e.cfg.OnComplete != nil {
		e.cfg.OnComplete(stats)
	}
}

// drainedLocked reports whether no stage has queued or active work.
func (e *Engine) drainedLocked() bool {
	return len(e.compressQ) == 0 && len(e.uploadQ) == 0 && len(e.confirmQ) == 0 &&
		e.activeCompress == 0 && e.activeUpload == 0 && e.activeConfirm == 0
}

// upstreamIdleLocked reports whether nothing can still reach the confirm
// queue.
func (e *Engine) upstreamIdleLocked() bool {
	return len(e.compressQ) == 0 && len(e.uploadQ) == 0 &&
		e.activeCompress == 0 && e.activeUpload == 0
}

// settleLocked runs after a stage gives work back. It ends the current run
// when all work is done, otherwise wakes the loops that may be waiting on
// free capacity or on upstream going idle.
func (e *Engine) settleLocked() {
	r := e.run
	if r == nil {
		return
	}
	if e.drainedLocked() {
		r.cancel()
		return
	}
	r.wakeAll()
}

func (e *Engine) setStatusLocked(t *task, s models.Status) {
	if t.status == s {
		return
	}
	if !t.status.CanTransition(s) {
		e.log.Error(context.Background(), "illegal task transition", "task", t.id, "from", t.status, "to", s)
		return
	}
	t.status = s
	t.updatedAt = e.cfg.Now()
}

func (e *Engine) failLocked(t *task, err error) {
	e.setStatusLocked(t, models.StatusFailed)
	t.err = err
	close(t.done)
	e.log.Warn(context.Background(), "task failed", "task", t.id, "file", t.file.Name, "error", err)
}

// admitLocked puts t on q as it leaves a stage, paused if the engine is.
func (e *Engine) admitLocked(t *task, next models.Status) {
	if e.paused {
		e.setStatusLocked(t, models.StatusPaused)
		return
	}
	e.setStatusLocked(t, next)
}

func wrapStage(sentinel error, err error) error {
	if errors.Is(err, sentinel) {
		return err
	}
	return fmt.Errorf("%w: %w", sentinel, err)
}
