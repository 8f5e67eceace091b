package logs

import (
	"context"
	"io"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/hpcloud/tail"
	"github.com/pkg/errors"
)

// Printer writes diagnostic log lines, highlighting warnings and errors
type Printer struct {
	Out io.Writer
}

// Print writes a single line. Blank lines are skipped.
func (p Printer) Print(line string) {
	line = strings.TrimRight(line, "\r\n")
	if strings.TrimSpace(line) == "" {
		return
	}

	c := color.New(color.Reset)
	switch {
	case strings.Contains(line, "Error") || strings.Contains(line, "failed"):
		c = color.New(color.FgRed)
	case strings.Contains(line, "timeout") || strings.Contains(line, "stale"):
		c = color.New(color.FgYellow)
	case strings.Contains(line, "=== "):
		c = color.New(color.FgHiYellow)
	}
	c.Fprintln(p.Out, line)
}

// Follow prints the log file at path from the beginning. When follow is set it keeps
// printing lines as they are appended, across rotations, until ctx is done.
func Follow(ctx context.Context, path string, follow bool, p Printer) error {
	if _, err := os.Stat(path); err != nil {
		return errors.Wrap(err, "could not open log")
	}

	t, err := tail.TailFile(path, tail.Config{
		Follow: follow,
		ReOpen: follow,
		Logger: tail.DiscardingLogger,
		Location: &tail.SeekInfo{
			Offset: 0,
			Whence: io.SeekStart,
		},
	})
	if err != nil {
		return errors.WithStack(err)
	}
	defer t.Cleanup()

	for {
		select {
		case line, ok := <-t.Lines:
			if !ok {
				return nil
			}
			if line.Err != nil {
				return errors.WithStack(line.Err)
			}
			p.Print(line.Text)
		case <-ctx.Done():
			return errors.WithStack(t.Stop())
		}
	}
}
