package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/oklog/run"
	"golang.org/x/term"

	"github.com/dmitrijs2005/mediaup/internal/client/client"
	"github.com/dmitrijs2005/mediaup/internal/client/config"
	"github.com/dmitrijs2005/mediaup/internal/client/engine"
	"github.com/dmitrijs2005/mediaup/internal/client/models"
	"github.com/dmitrijs2005/mediaup/internal/client/repositories/kv"
	"github.com/dmitrijs2005/mediaup/internal/common"
	"github.com/dmitrijs2005/mediaup/internal/filex"
	"github.com/dmitrijs2005/mediaup/internal/logging"
)

const sessionsDBName = "sessions.db"

var (
	errNoFiles     = errors.New("no files to upload")
	errInterrupted = errors.New("interrupted")
)

type App struct {
	config *config.Config
	logger logging.Logger
	api    client.Client
	repos  *client.Repositories
	engine *engine.Engine

	in    io.Reader
	out   io.Writer
	isTTY bool
}

// NewApp opens the session store, dials the upload service and builds the
// engine.
func NewApp(c *config.Config) (*App, error) {
	level := slog.LevelInfo
	if c.Verbose {
		level = slog.LevelDebug
	}
	logger := logging.NewText(os.Stderr, level)

	dir, err := filex.EnsureSubdDir(c.DataDir)
	if err != nil {
		return nil, err
	}

	repos, err := client.InitDatabase(context.Background(), filepath.Join(dir, sessionsDBName))
	if err != nil {
		return nil, fmt.Errorf("error initializing database: %w", err)
	}

	apiClient, err := client.NewUploadClient(c.ServerEndpointAddr, c.AccessToken)
	if err != nil {
		_ = repos.Close()
		return nil, err
	}

	a := newApp(c, logger, apiClient, repos.Sessions, os.Stdin, os.Stdout)
	a.repos = repos
	a.isTTY = term.IsTerminal(int(os.Stdout.Fd()))
	return a, nil
}

func newApp(c *config.Config, logger logging.Logger, api client.Client, store kv.Store, in io.Reader, out io.Writer) *App {
	a := &App{config: c, logger: logger, api: api, in: in, out: out}
	a.engine = engine.New(engineConfig(c, logger, a.onComplete), api, api, store)
	return a
}

func (a *App) onComplete(s models.Stats) {
	a.logger.Info(context.Background(), "batch finished",
		"completed", s.Completed, "failed", s.Failed, "cancelled", s.Cancelled,
		"saved", s.BandwidthSaved)
}

// Run executes the configured mode until it finishes or a termination signal
// arrives, and returns the process exit code.
func (a *App) Run(ctx context.Context) int {
	defer a.close()

	var g run.Group

	// OS signals.
	{
		sigCtx, cancel := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
		defer cancel()
		g.Add(
			func() error {
				<-sigCtx.Done()
				return errInterrupted
			},
			func(_ error) {
				cancel()
			},
		)
	}

	// Main actor.
	{
		ctx, cancel := context.WithCancel(ctx)
		defer cancel()
		if a.config.Interactive {
			g.Add(
				func() error {
					return a.interactive(ctx)
				},
				func(_ error) {
					cancel()
				},
			)
		} else {
			g.Add(
				func() error {
					return a.upload(ctx, a.config.Files)
				},
				func(_ error) {
					cancel()
				},
			)
		}
	}

	// Progress output.
	if !a.config.Interactive {
		ctx, cancel := context.WithCancel(ctx)
		g.Add(
			func() error {
				a.printProgress(ctx)
				return nil
			},
			func(_ error) {
				cancel()
			},
		)
	}

	err := g.Run()
	switch {
	case err == nil:
		return 0
	case errors.Is(err, errInterrupted), errors.Is(err, common.ErrCancelled):
		a.logger.Warn(ctx, "upload interrupted; chunked transfers resume on the next run")
		return 130
	default:
		a.logger.Error(ctx, err.Error())
		return 1
	}
}

// upload sends paths and waits for the run to end. Cancelling ctx cancels
// the run.
func (a *App) upload(ctx context.Context, paths []string) error {
	files, err := filex.LoadFiles(paths)
	if err != nil {
		return err
	}
	if len(files) == 0 {
		return errNoFiles
	}

	a.engine.AddFiles(files)

	select {
	case <-a.engine.Done():
	case <-ctx.Done():
		a.engine.Cancel()
		<-a.engine.Done()
	}

	s := a.engine.Stats()
	printlnFn(formatSummary(s))
	switch {
	case s.Failed > 0:
		return fmt.Errorf("%d of %d file(s) failed", s.Failed, s.TotalFiles)
	case s.Cancelled > 0:
		return common.ErrCancelled
	}
	return nil
}

func (a *App) interactive(ctx context.Context) error {
	printlnFn("mediaup shell (type 'help' for commands)")
	runREPL(ctx, a, a.status, scanLines(ctx, a.in))
	a.engine.Cancel()
	return nil
}

func (a *App) close() {
	a.engine.Close()
	if err := a.api.Close(); err != nil {
		a.logger.Warn(context.Background(), "closing client", "error", err)
	}
	if a.repos != nil {
		if err := a.repos.Close(); err != nil {
			a.logger.Warn(context.Background(), "closing database", "error", err)
		}
	}
}
