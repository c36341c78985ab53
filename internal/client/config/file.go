package config

import (
	"github.com/dmitrijs2005/mediaup/internal/flagx"
	"github.com/dmitrijs2005/mediaup/internal/timex"
)

// FileConfig is the DTO decoded from a JSON or YAML config file. Zero values
// leave the current setting untouched.
type FileConfig struct {
	ServerEndpointAddr string         `json:"server_endpoint_addr" yaml:"server_endpoint_addr"`
	AccessToken        string         `json:"access_token" yaml:"access_token"`
	DataDir            string         `json:"data_dir" yaml:"data_dir"`
	ProgressInterval   timex.Duration `json:"progress_interval" yaml:"progress_interval"`

	CompressWorkers int     `json:"compress_workers" yaml:"compress_workers"`
	SkipThreshold   int64   `json:"skip_threshold" yaml:"skip_threshold"`
	MaxWidth        int     `json:"max_width" yaml:"max_width"`
	MaxHeight       int     `json:"max_height" yaml:"max_height"`
	Quality         float64 `json:"jpeg_quality" yaml:"jpeg_quality"`

	PrefetchBatchSize int   `json:"prefetch_batch_size" yaml:"prefetch_batch_size"`
	ChunkSize         int64 `json:"chunk_size" yaml:"chunk_size"`
	ChunkThreshold    int64 `json:"chunk_threshold" yaml:"chunk_threshold"`
	ParallelChunks    int   `json:"parallel_chunks" yaml:"parallel_chunks"`
	MaxAttempts       int   `json:"max_attempts" yaml:"max_attempts"`
	ConfirmBatchSize  int   `json:"confirm_batch_size" yaml:"confirm_batch_size"`

	MinConcurrency   int `json:"min_concurrency" yaml:"min_concurrency"`
	MaxConcurrency   int `json:"max_concurrency" yaml:"max_concurrency"`
	StartConcurrency int `json:"start_concurrency" yaml:"start_concurrency"`
}

// parseFile overlays cfg with the file named by -c/-config. It panics when
// the file cannot be read or decoded.
func parseFile(cfg *Config) {
	path := flagx.ConfigFileFlag()
	if path == "" {
		return
	}

	var fc FileConfig
	if err := flagx.DecodeConfigFile(path, &fc); err != nil {
		panic(err)
	}
	fc.apply(cfg)
}

func (fc *FileConfig) apply(cfg *Config) {
	setString(&cfg.ServerEndpointAddr, fc.ServerEndpointAddr)
	setString(&cfg.AccessToken, fc.AccessToken)
	setString(&cfg.DataDir, fc.DataDir)
	if fc.ProgressInterval.Duration > 0 {
		cfg.ProgressInterval = fc.ProgressInterval.Duration
	}

	setPositive(&cfg.CompressWorkers, fc.CompressWorkers)
	setPositive(&cfg.SkipThreshold, fc.SkipThreshold)
	setPositive(&cfg.MaxWidth, fc.MaxWidth)
	setPositive(&cfg.MaxHeight, fc.MaxHeight)
	setPositive(&cfg.Quality, fc.Quality)

	setPositive(&cfg.PrefetchBatchSize, fc.PrefetchBatchSize)
	setPositive(&cfg.ChunkSize, fc.ChunkSize)
	setPositive(&cfg.ChunkThreshold, fc.ChunkThreshold)
	setPositive(&cfg.ParallelChunks, fc.ParallelChunks)
	setPositive(&cfg.MaxAttempts, fc.MaxAttempts)
	setPositive(&cfg.ConfirmBatchSize, fc.ConfirmBatchSize)

	setPositive(&cfg.MinConcurrency, fc.MinConcurrency)
	setPositive(&cfg.MaxConcurrency, fc.MaxConcurrency)
	setPositive(&cfg.StartConcurrency, fc.StartConcurrency)
}

func setString(dst *string, v string) {
	if v != "" {
		*dst = v
	}
}

func setPositive[T int | int64 | float64](dst *T, v T) {
	if v > 0 {
		*dst = v
	}
}
