package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"
)

// printlnFn is a test seam for user-facing output. In tests, replace it with a stub.
var printlnFn = fmt.Println

// execIface defines the command surface the REPL needs. The real App
// satisfies it; tests provide a lightweight stub.
type execIface interface {
	Add(ctx context.Context, paths []string) error
	Pause(ctx context.Context) error
	Resume(ctx context.Context) error
	Retry(ctx context.Context) error
	Cancel(ctx context.Context) error
	Wait(ctx context.Context) error
	Stats(ctx context.Context) error
	List(ctx context.Context) error
	Sessions(ctx context.Context) error
}

const helpText = `Available commands:
  add <path>...  queue files or directories
  pause          stop starting new work
  resume         continue paused work
  retry          re-queue failed files
  cancel         cancel everything unfinished
  wait           block until the current batch ends
  stats          show progress
  list           show every file
  sessions       show resumable chunked uploads
  exit | quit    leave the program`

// scanLines feeds lines from r until EOF or ctx ends.
func scanLines(ctx context.Context, r io.Reader) <-chan string {
	lines := make(chan string)
	go func() {
		defer close(lines)
		scanner := bufio.NewScanner(r)
		for scanner.Scan() {
			select {
			case lines <- scanner.Text():
			case <-ctx.Done():
				return
			}
		}
	}()
	return lines
}

// runREPL reads commands until input ends, ctx is done, or the user types
// exit. Command errors are printed and the loop keeps going.
func runREPL(ctx context.Context, a execIface, statusFn func() string, lines <-chan string) {
	for {
		printlnFn(fmt.Sprintf("mediaup %s> ", statusFn()))

		var line string
		select {
		case <-ctx.Done():
			return
		case l, ok := <-lines:
			if !ok {
				return
			}
			line = l
		}

		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}
		cmd, args := parts[0], parts[1:]

		var err error
		switch cmd {
		case "help":
			printlnFn(helpText)
		case "add":
			if len(args) == 0 {
				printlnFn("Usage: add <path>...")
				continue
			}
			err = a.Add(ctx, args)
		case "pause":
			err = a.Pause(ctx)
		case "resume":
			err = a.Resume(ctx)
		case "retry":
			err = a.Retry(ctx)
		case "cancel":
			err = a.Cancel(ctx)
		case "wait":
			err = a.Wait(ctx)
		case "stats":
			err = a.Stats(ctx)
		case "l", "list":
			err = a.List(ctx)
		case "sessions":
			err = a.Sessions(ctx)
		case "exit", "quit":
			printlnFn("Bye!")
			return
		default:
			printlnFn("Unknown command:", cmd)
		}
		if err != nil {
			printlnFn("error:", err)
		}
	}
}
