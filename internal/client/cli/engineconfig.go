package cli

import (
	"github.com/dmitrijs2005/mediaup/internal/client/compress"
	"github.com/dmitrijs2005/mediaup/internal/client/concurrency"
	"github.com/dmitrijs2005/mediaup/internal/client/config"
	"github.com/dmitrijs2005/mediaup/internal/client/engine"
	"github.com/dmitrijs2005/mediaup/internal/client/models"
	"github.com/dmitrijs2005/mediaup/internal/client/preflight"
	"github.com/dmitrijs2005/mediaup/internal/client/transfer"
	"github.com/dmitrijs2005/mediaup/internal/logging"
)

func engineConfig(c *config.Config, logger logging.Logger, onComplete func(models.Stats)) engine.Config {
	return engine.Config{
		Compress: compress.Config{
			Workers:       c.CompressWorkers,
			SkipThreshold: c.SkipThreshold,
		},
		Image: compress.Options{
			MaxWidth:  c.MaxWidth,
			MaxHeight: c.MaxHeight,
			Quality:   c.Quality,
		},
		Preflight: preflight.Config{
			BatchSize: c.PrefetchBatchSize,
		},
		Concurrency: concurrency.Config{
			Min:   c.MinConcurrency,
			Max:   c.MaxConcurrency,
			Start: c.StartConcurrency,
		},
		Transfer: transfer.Config{
			ChunkSize:      c.ChunkSize,
			ParallelChunks: c.ParallelChunks,
			MaxAttempts:    c.MaxAttempts,
		},
		ChunkThreshold:   c.ChunkThreshold,
		ConfirmBatchSize: c.ConfirmBatchSize,
		Logger:           logger,
		OnComplete:       onComplete,
	}
}
