package transfer

import (
	"net/http"
	"time"

	"github.com/sethvargo/go-retry"

	"github.com/dmitrijs2005/mediaup/internal/logging"
)

// Config holds transfer tunables. Zero values take the defaults.
type Config struct {
	ChunkSize      int64
	ParallelChunks int
	// MaxAttempts is the number of tries per chunk, first one included.
	MaxAttempts int
	RetryBase   time.Duration
	// SingleShotAttempts is the number of tries for a whole-file PUT.
	SingleShotAttempts int
	// ExpiryBuffer is how long part URLs must stay valid before they are
	// used; older ones are signed again.
	ExpiryBuffer time.Duration
	HTTPClient   *http.Client
	Logger       logging.Logger
	Now          func() time.Time
}

// DefaultChunkSize is 5 MiB.
const DefaultChunkSize int64 = 5 << 20

func (c *Config) defaults() {
	if c.ChunkSize <= 0 {
		c.ChunkSize = DefaultChunkSize
	}
	if c.ParallelChunks <= 0 {
		c.ParallelChunks = 3
	}
	if c.MaxAttempts <= 0 {
		c.MaxAttempts = 3
	}
	if c.RetryBase <= 0 {
		c.RetryBase = 2 * time.Second
	}
	if c.SingleShotAttempts <= 0 {
		c.SingleShotAttempts = 3
	}
	if c.ExpiryBuffer <= 0 {
		c.ExpiryBuffer = 30 * time.Second
	}
	if c.HTTPClient == nil {
		c.HTTPClient = http.DefaultClient
	}
	if c.Logger == nil {
		c.Logger = logging.Noop
	}
	c.Logger = c.Logger.With("module", "transfer")
	if c.Now == nil {
		c.Now = time.Now
	}
}

func backoff(attempts int, base time.Duration) retry.Backoff {
	return retry.WithMaxRetries(uint64(attempts-1), retry.NewExponential(base))
}
