package server

import (
	"os"
	"os/signal"
)

// SignalSource registers a cancellation source, returning a channel that is
// closed when it fires.
type SignalSource func() (<-chan struct{}, error)

// Interrupt is a SignalSource firing on the process interrupt signal (Ctrl-C).
// Handling is removed once it fires, so a second interrupt terminates the
// process immediately.
func Interrupt() (<-chan struct{}, error) {
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, os.Interrupt)

	fired := make(chan struct{})
	go func() {
		<-sigs
		signal.Stop(sigs)
		close(fired)
	}()
	return fired, nil
}
