package cli

import (
	"context"
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/dustin/go-humanize"

	"github.com/dmitrijs2005/mediaup/internal/client/models"
)

const barWidth = 24

// printProgress renders a live line on a terminal and periodic log lines
// otherwise.
func (a *App) printProgress(ctx context.Context) {
	interval := a.config.ProgressInterval
	if interval <= 0 {
		interval = time.Second
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	var (
		latest models.Stats
		seen   bool
	)
	for {
		select {
		case <-ctx.Done():
			if a.isTTY && seen {
				fmt.Fprintln(a.out)
			}
			return
		case s := <-a.engine.Updates():
			latest, seen = s, true
			if a.isTTY {
				fmt.Fprintf(a.out, "\r\033[K%s", formatStats(s))
			}
		case <-ticker.C:
			if !a.isTTY && seen && latest.Running {
				a.logger.Info(ctx, "progress",
					"completed", latest.Completed, "total", latest.TotalFiles, "failed", latest.Failed,
					"sent", latest.UploadedBytes, "of", latest.TotalBytes,
					"mbps", fmt.Sprintf("%.2f", latest.SpeedMBps), "concurrency", latest.CurrentConcurrency)
			}
		}
	}
}

func formatStats(s models.Stats) string {
	frac := 0.0
	if s.TotalBytes > 0 {
		frac = math.Min(float64(s.UploadedBytes)/float64(s.TotalBytes), 1)
	}
	filled := int(frac * barWidth)

	var b strings.Builder
	fmt.Fprintf(&b, "[%s%s] %3.0f%% %d/%d done",
		strings.Repeat("#", filled), strings.Repeat(".", barWidth-filled), frac*100,
		s.Completed, s.TotalFiles)
	if s.Failed > 0 {
		fmt.Fprintf(&b, ", %d failed", s.Failed)
	}
	if s.IsPaused {
		b.WriteString(" (paused)")
	}
	fmt.Fprintf(&b, " | %.2f MB/s | ETA %s | x%d", s.SpeedMBps, formatETA(s.ETASeconds), s.CurrentConcurrency)
	return b.String()
}

func formatETA(sec float64) string {
	if sec <= 0 || math.IsInf(sec, 0) || math.IsNaN(sec) {
		return "--"
	}
	return (time.Duration(sec) * time.Second).Round(time.Second).String()
}

func formatSummary(s models.Stats) string {
	line := fmt.Sprintf("%d completed, %d failed, %d cancelled of %d file(s)",
		s.Completed, s.Failed, s.Cancelled, s.TotalFiles)
	if s.BandwidthSaved > 0 {
		line += fmt.Sprintf("; compression saved %s", humanize.IBytes(uint64(s.BandwidthSaved)))
	}
	return line
}
