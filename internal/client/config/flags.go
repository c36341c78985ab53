package config

import (
	"flag"
	"io"
	"os"
	"time"
)

// parseFlags populates Config fields from command-line flags and collects
// the remaining arguments as files.
//
// Supported flags:
//
//	-a string   address and port of the upload service
//	-t string   access token
//	-d string   data directory for resumable sessions
//	-w int      compression workers (0 = number of CPUs, at most 8)
//	-q float    JPEG quality in (0, 1]
//	-s int      chunk size in MiB
//	-b int      confirm batch size
//	-p int      progress interval (in seconds)
//	-repl       start the interactive shell
//	-v          debug logging
//	-c, -config config file (read earlier by parseFile)
//
// It panics on malformed flags.
func parseFlags(cfg *Config) {
	fs := flag.NewFlagSet("mediaup", flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	var configFile string
	fs.StringVar(&configFile, "c", "", "config file")
	fs.StringVar(&configFile, "config", "", "config file")

	fs.StringVar(&cfg.ServerEndpointAddr, "a", cfg.ServerEndpointAddr, "address and port of the upload service")
	fs.StringVar(&cfg.AccessToken, "t", cfg.AccessToken, "access token")
	fs.StringVar(&cfg.DataDir, "d", cfg.DataDir, "data directory")
	fs.IntVar(&cfg.CompressWorkers, "w", cfg.CompressWorkers, "compression workers")
	fs.Float64Var(&cfg.Quality, "q", cfg.Quality, "JPEG quality")
	chunkMiB := fs.Int64("s", cfg.ChunkSize>>20, "chunk size (in MiB)")
	fs.IntVar(&cfg.ConfirmBatchSize, "b", cfg.ConfirmBatchSize, "confirm batch size")
	progress := fs.Int("p", int(cfg.ProgressInterval.Seconds()), "progress interval (in seconds)")
	fs.BoolVar(&cfg.Interactive, "repl", cfg.Interactive, "interactive shell")
	fs.BoolVar(&cfg.Verbose, "v", cfg.Verbose, "debug logging")

	if err := fs.Parse(os.Args[1:]); err != nil {
		panic(err)
	}

	cfg.ChunkSize = *chunkMiB << 20
	cfg.ProgressInterval = time.Duration(*progress) * time.Second
	cfg.Files = fs.Args()
}
