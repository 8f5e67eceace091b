//go:build !windows

package server

import (
	"os"
	"syscall"
	"testing"
	"time"
)

func TestInterrupt(t *testing.T) {
	fired, err := Interrupt()
	if err != nil {
		t.Fatal(err)
	}

	select {
	case <-fired:
		t.Fatal("fired before any signal was sent")
	default:
	}

	if err := syscall.Kill(os.Getpid(), syscall.SIGINT); err != nil {
		t.Fatal(err)
	}

	select {
	case <-fired:
	case <-time.After(5 * time.Second):
		t.Fatal("interrupt was not observed")
	}
}
