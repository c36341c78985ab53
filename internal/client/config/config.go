package config

import "time"

// Config holds runtime settings for the mediaup client.
type Config struct {
	ServerEndpointAddr string
	AccessToken        string
	// DataDir holds the chunk session database, relative to the working
	// directory.
	DataDir          string
	Interactive      bool
	Verbose          bool
	ProgressInterval time.Duration

	CompressWorkers int
	SkipThreshold   int64
	MaxWidth        int
	MaxHeight       int
	Quality         float64

	PrefetchBatchSize int
	ChunkSize         int64
	ChunkThreshold    int64
	ParallelChunks    int
	MaxAttempts       int
	ConfirmBatchSize  int

	MinConcurrency   int
	MaxConcurrency   int
	StartConcurrency int

	// Files are the positional arguments.
	Files []string
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.ServerEndpointAddr = "127.0.0.1:50051"
	c.DataDir = ".mediaup"
	c.ProgressInterval = time.Second

	c.SkipThreshold = 500 * 1024
	c.MaxWidth = 4096
	c.MaxHeight = 4096
	c.Quality = 0.85

	c.PrefetchBatchSize = 200
	c.ChunkSize = 5 << 20
	c.ChunkThreshold = 10 << 20
	c.ParallelChunks = 3
	c.MaxAttempts = 3
	c.ConfirmBatchSize = 50

	c.MinConcurrency = 3
	c.MaxConcurrency = 24
	c.StartConcurrency = 8
}

// LoadConfig constructs a Config, applies defaults, then overlays values from
// the config file (if any) and command-line flags. Later sources take
// precedence over earlier ones.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseFile(cfg)
	parseFlags(cfg)
	return cfg
}
