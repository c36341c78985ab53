package cli

import (
	"bytes"
	"context"
	"fmt"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/dustin/go-humanize"

	"github.com/dmitrijs2005/mediaup/internal/filex"
)

func (a *App) status() string {
	s := a.engine.Stats()
	switch {
	case s.IsPaused:
		return fmt.Sprintf("(paused %d/%d)", s.Completed, s.TotalFiles)
	case s.Running:
		return fmt.Sprintf("(running %d/%d)", s.Completed, s.TotalFiles)
	case s.Failed > 0:
		return fmt.Sprintf("(%d failed)", s.Failed)
	}
	return ""
}

func (a *App) Add(ctx context.Context, paths []string) error {
	files, err := filex.LoadFiles(paths)
	if err != nil {
		return err
	}
	if len(files) == 0 {
		return errNoFiles
	}
	handles := a.engine.AddFiles(files)
	printlnFn(fmt.Sprintf("queued %d file(s)", len(handles)))
	return nil
}

func (a *App) Pause(ctx context.Context) error {
	a.engine.Pause()
	printlnFn("paused; in-flight transfers will finish")
	return nil
}

func (a *App) Resume(ctx context.Context) error {
	a.engine.Resume()
	printlnFn("resumed")
	return nil
}

func (a *App) Retry(ctx context.Context) error {
	n := a.engine.RetryFailed()
	printlnFn(fmt.Sprintf("re-queued %d file(s)", n))
	return nil
}

func (a *App) Cancel(ctx context.Context) error {
	a.engine.Cancel()
	printlnFn("cancelled")
	return nil
}

func (a *App) Wait(ctx context.Context) error {
	if err := a.engine.Wait(ctx); err != nil {
		return err
	}
	printlnFn(formatSummary(a.engine.Stats()))
	return nil
}

func (a *App) Stats(ctx context.Context) error {
	s := a.engine.Stats()
	printlnFn(formatStats(s))
	printlnFn(fmt.Sprintf("queued %d, compressing %d, uploading %d, confirming %d, paused %d",
		s.Queued, s.Compressing, s.Uploading, s.Confirming, s.Paused))
	if s.LastError != "" {
		printlnFn("last error:", s.LastError)
	}
	return nil
}

func (a *App) List(ctx context.Context) error {
	tasks := a.engine.Tasks()
	if len(tasks) == 0 {
		printlnFn("no files")
		return nil
	}

	var buf bytes.Buffer
	tw := tabwriter.NewWriter(&buf, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "NAME\tSTATUS\tPROGRESS\tSIZE\tSENT AS\tERROR")
	for _, t := range tasks {
		sent := "-"
		if t.CompressedSize > 0 {
			sent = humanize.IBytes(uint64(t.CompressedSize))
			if t.Chunked {
				sent += " (chunked)"
			}
		}
		fmt.Fprintf(tw, "%s\t%s\t%3.0f%%\t%s\t%s\t%s\n",
			t.Name, t.Status, t.Progress*100, humanize.IBytes(uint64(t.OriginalSize)), sent, t.Error)
	}
	_ = tw.Flush()
	printlnFn(strings.TrimRight(buf.String(), "\n"))
	return nil
}

func (a *App) Sessions(ctx context.Context) error {
	sessions, err := a.engine.Sessions(ctx)
	if err != nil {
		return err
	}
	if len(sessions) == 0 {
		printlnFn("no stored sessions")
		return nil
	}

	var buf bytes.Buffer
	tw := tabwriter.NewWriter(&buf, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "FILE\tUPLOADED\tCHUNKS\tFAILED\tUPDATED")
	for _, s := range sessions {
		done := len(s.Chunks) - len(s.Pending())
		fmt.Fprintf(tw, "%s\t%s / %s\t%d/%d\t%v\t%s\n",
			s.FileName,
			humanize.IBytes(uint64(s.UploadedBytes())), humanize.IBytes(uint64(s.TotalBytes)),
			done, len(s.Chunks), s.FailedChunks,
			humanize.RelTime(s.LastUpdated, time.Now(), "ago", "from now"))
	}
	_ = tw.Flush()
	printlnFn(strings.TrimRight(buf.String(), "\n"))
	return nil
}
