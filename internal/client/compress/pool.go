package compress

import (
	"context"
	"errors"
	"runtime"
	"sync"
	"sync/atomic"

	"github.com/dmitrijs2005/mediaup/internal/logging"
)

// ErrPoolClosed is returned by Compress after Close.
var ErrPoolClosed = errors.New("compression pool closed")

// Config configures a Pool.
type Config struct {
	// Workers is the pool size. Zero means min(runtime.NumCPU(), Ceiling).
	Workers int
	// Ceiling caps the detected size. Defaults to 8.
	Ceiling int
	// SkipThreshold is the size below which files are passed through.
	// Defaults to 500 KiB; negative disables the size check.
	SkipThreshold int64
	Logger        logging.Logger
}

func (c *Config) defaults() {
	if c.Ceiling <= 0 {
		c.Ceiling = 8
	}
	if c.Workers <= 0 {
		c.Workers = min(runtime.NumCPU(), c.Ceiling)
	}
	if c.SkipThreshold == 0 {
		c.SkipThreshold = 500 * 1024
	}
	if c.Logger == nil {
		c.Logger = logging.Noop
	}
	c.Logger = c.Logger.With("module", "compress")
}

type pendingJob struct {
	ctx   context.Context
	id    uint64
	job   Job
	reply chan Result
}

// Pool is a fixed-size compression worker pool.
type Pool struct {
	cfg     Config
	workers []*worker
	submit  chan *pendingJob
	replies chan reply
	quit    chan struct{}
	stopped chan struct{}

	nextID     atomic.Uint64
	dispatched atomic.Int64
	closeOnce  sync.Once
}

// NewPool starts the workers and the dispatcher.
func NewPool(cfg Config) *Pool {
	cfg.defaults()

	p := &Pool{
		cfg:     cfg,
		submit:  make(chan *pendingJob),
		replies: make(chan reply, cfg.Workers),
		quit:    make(chan struct{}),
		stopped: make(chan struct{}),
	}

	for i := 0; i < cfg.Workers; i++ {
		w := &worker{id: i, inbox: make(chan request, 1), replies: p.replies}
		p.workers = append(p.workers, w)
		go w.run()
	}
	go p.dispatch()

	return p
}

// Size is the number of workers.
func (p *Pool) Size() int {
	return len(p.workers)
}

// Dispatched is the number of jobs handed to workers so far.
func (p *Pool) Dispatched() int64 {
	return p.dispatched.Load()
}

// ShouldCompress reports whether a file of this size and type would be
// dispatched to a worker.
func (p *Pool) ShouldCompress(size int64, mimeType string) bool {
	if !Supported(mimeType) {
		return false
	}
	return p.cfg.SkipThreshold < 0 || size >= p.cfg.SkipThreshold
}

// Compress runs job on the next free worker, queueing FIFO behind earlier
// jobs when all workers are busy. It returns an error only when ctx ends or
// the pool is closed; compression failures come back as a pass-through
// Result with Err set.
func (p *Pool) Compress(ctx context.Context, job Job) (Result, error) {
	if !p.ShouldCompress(int64(len(job.Data)), job.MimeType) {
		res := passthrough(job, nil)
		res.Skipped = true
		return res, nil
	}

	pj := &pendingJob{
		ctx:   ctx,
		id:    p.nextID.Add(1),
		job:   job,
		reply: make(chan Result, 1),
	}

	select {
	case p.submit <- pj:
	case <-p.quit:
		return Result{}, ErrPoolClosed
	case <-ctx.Done():
		return Result{}, ctx.Err()
	}

	select {
	case res := <-pj.reply:
		return res, nil
	case <-p.stopped:
		return Result{}, ErrPoolClosed
	case <-ctx.Done():
		return Result{}, ctx.Err()
	}
}

// Close stops the dispatcher and the workers. Jobs still queued are abandoned.
func (p *Pool) Close() {
	p.closeOnce.Do(func() {
		close(p.quit)
		<-p.stopped
	})
}

func (p *Pool) dispatch() {
	defer close(p.stopped)

	idle := make([]int, 0, len(p.workers))
	for _, w := range p.workers {
		idle = append(idle, w.id)
	}
	var queue []*pendingJob
	inflight := make(map[uint64]*pendingJob)

	for {
		select {
		case pj := <-p.submit:
			queue = append(queue, pj)

		case msg := <-p.replies:
			idle = append(idle, msg.workerID())
			switch m := msg.(type) {
			case compressDone:
				if pj, ok := inflight[m.id]; ok {
					delete(inflight, m.id)
					pj.reply <- m.result
				}
			case compressFailed:
				if pj, ok := inflight[m.id]; ok {
					delete(inflight, m.id)
					p.cfg.Logger.Warn(pj.ctx, "compression failed, sending original", "error", m.err)
					pj.reply <- passthrough(pj.job, m.err)
				}
			}

		case <-p.quit:
			for _, w := range p.workers {
				w.inbox <- stopRequest{}
			}
			return
		}

		for len(idle) > 0 && len(queue) > 0 {
			pj := queue[0]
			queue = queue[1:]
			if pj.ctx.Err() != nil {
				continue
			}

			w := p.workers[idle[len(idle)-1]]
			idle = idle[:len(idle)-1]

			inflight[pj.id] = pj
			p.dispatched.Add(1)
			w.inbox <- compressRequest{id: pj.id, job: pj.job}
		}
	}
}
