package server

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"
	"github.com/pkg/errors"
	"github.com/yext/hellod/common"
)

// Bootstrap wires the router, listening socket and cancellation source together.
type Bootstrap struct {
	Config Config

	// Output receives the "listening on" line. Defaults to os.Stdout.
	Output io.Writer
	// Logger receives diagnostic logs, including the per-request access log.
	Logger common.Logger

	// Signals registers the cancellation source. If nil, only ctx triggers shutdown.
	Signals SignalSource

	// Hooks are run once in-flight requests have drained.
	Hooks []func() error
}

// Run binds the socket, announces the bound address and serves until the
// cancellation source fires or ctx is done. A bind failure is returned
// without anything being written to Output. If the cancellation source cannot
// be registered, a warning is written and the server runs without it.
func (b *Bootstrap) Run(ctx context.Context) error {
	logger := common.MaskLogger(b.Logger)
	out := b.Output
	if out == nil {
		out = os.Stdout
	}

	srv := New(b.Config, NewRouter(logger), logger)
	addr, err := srv.Listen()
	if err != nil {
		return errors.WithStack(err)
	}
	fmt.Fprintf(out, "listening on %v\n", addr)

	for _, hook := range b.Hooks {
		srv.OnShutdown(hook)
	}

	var fired <-chan struct{}
	if b.Signals != nil {
		fired, err = b.Signals()
		if err != nil {
			logger.Printf("failed to install signal handler: %+v\n", err)
			color.New(color.FgYellow).Fprintf(out, "failed to install signal handler: %v\n", err)
			fired = nil
		}
	}

	shutdown := make(chan struct{})
	done := make(chan struct{})
	defer close(done)
	go func() {
		select {
		case <-fired:
			logger.Printf("received interrupt\n")
		case <-ctx.Done():
			logger.Printf("context done: %v\n", ctx.Err())
		case <-done:
			return
		}
		close(shutdown)
	}()

	return errors.WithStack(srv.Serve(shutdown))
}
