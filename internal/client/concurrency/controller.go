package concurrency

import (
	"context"
	"math"
	"runtime"
	"sync"
	"time"

	"github.com/dmitrijs2005/mediaup/internal/logging"
)

// Config holds the controller tunables. Zero values take the defaults.
type Config struct {
	Min      int
	Max      int
	Start    int
	Step     int
	Cooldown time.Duration
	// Window is the number of outcomes and throughput samples kept.
	Window int
	Logger logging.Logger
	// Now is the clock, replaceable in tests.
	Now func() time.Time
}

const (
	minSamples      = 5
	throughputSpan  = 5
	decreaseFactor  = 0.6
	failureRate     = 0.8
	stableSpeedRate = 0.9
)

func (c *Config) defaults() {
	if c.Min <= 0 {
		c.Min = 3
	}
	if c.Max <= 0 {
		c.Max = 24
	}
	c.Max = min(c.Max, runtime.NumCPU()*3)
	c.Max = max(c.Max, c.Min)
	if c.Start <= 0 {
		c.Start = 8
	}
	if c.Step <= 0 {
		c.Step = 2
	}
	if c.Cooldown <= 0 {
		c.Cooldown = 2 * time.Second
	}
	if c.Window <= 0 {
		c.Window = 20
	}
	if c.Logger == nil {
		c.Logger = logging.Noop
	}
	c.Logger = c.Logger.With("module", "concurrency")
	if c.Now == nil {
		c.Now = time.Now
	}
}

// Controller tunes the number of parallel transfers from observed success
// rate and throughput. It is safe for concurrent use.
type Controller struct {
	cfg Config

	mu         sync.Mutex
	limit      int
	outcomes   *ring[bool]
	throughput *ring[float64]
	lastAdjust time.Time
}

// New returns a controller at its start limit.
func New(cfg Config) *Controller {
	cfg.defaults()
	c := &Controller{cfg: cfg}
	c.reset()
	return c
}

// Bounds returns the effective [min, max] range.
func (c *Controller) Bounds() (int, int) {
	return c.cfg.Min, c.cfg.Max
}

// Limit is the current number of transfers allowed in flight.
func (c *Controller) Limit() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.limit
}

// Reset drops all history and returns the limit to the start value.
func (c *Controller) Reset() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.reset()
}

func (c *Controller) reset() {
	c.limit = clamp(c.cfg.Start, c.cfg.Min, c.cfg.Max)
	c.outcomes = newRing[bool](c.cfg.Window)
	c.throughput = newRing[float64](c.cfg.Window)
	c.lastAdjust = time.Time{}
}

// RecordOutcome feeds one finished transfer into the controller and
// re-evaluates the limit when enough samples exist and the cooldown has
// passed. It returns the limit after evaluation.
func (c *Controller) RecordOutcome(success bool, bytes int64, d time.Duration) int {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.outcomes.push(success)
	if success && bytes > 0 && d > 0 {
		c.throughput.push(float64(bytes) / d.Seconds())
	}

	now := c.cfg.Now()
	if c.outcomes.len() < minSamples {
		return c.limit
	}
	if !c.lastAdjust.IsZero() && now.Sub(c.lastAdjust) < c.cfg.Cooldown {
		return c.limit
	}

	next := c.evaluate()
	if next != c.limit {
		c.cfg.Logger.Debug(context.Background(), "concurrency adjusted", "from", c.limit, "to", next)
		c.limit = next
		c.lastAdjust = now
	}
	return c.limit
}

func (c *Controller) evaluate() int {
	ok := 0
	flags := c.outcomes.values()
	for _, f := range flags {
		if f {
			ok++
		}
	}
	rate := float64(ok) / float64(len(flags))

	switch {
	case rate < failureRate:
		return max(c.cfg.Min, int(math.Floor(float64(c.limit)*decreaseFactor)))
	case rate == 1 && c.throughput.len() >= throughputSpan && c.speedStable():
		return min(c.cfg.Max, c.limit+c.cfg.Step)
	}
	return c.limit
}

// speedStable compares the latest samples against the window before them.
// With no older window the speed counts as stable.
func (c *Controller) speedStable() bool {
	samples := c.throughput.values()
	n := len(samples)
	recent := samples[n-throughputSpan:]
	older := samples[max(0, n-2*throughputSpan) : n-throughputSpan]
	if len(older) == 0 {
		return true
	}
	return mean(recent) >= stableSpeedRate*mean(older)
}

func mean(xs []float64) float64 {
	var sum float64
	for _, x := range xs {
		sum += x
	}
	return sum / float64(len(xs))
}

func clamp(v, lo, hi int) int {
	return min(max(v, lo), hi)
}
