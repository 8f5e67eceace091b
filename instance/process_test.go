//go:build linux

package instance

import (
	"os"
	"path/filepath"
	"syscall"
	"testing"

	"github.com/theothertomelliott/must"
)

func TestSystemProcesses(t *testing.T) {
	procs := systemProcesses{}
	pid := os.Getpid()

	exists, err := procs.PidExists(pid)
	must.BeNoError(t, err)
	must.BeEqual(t, true, exists, "own pid exists")

	matches, err := procs.PidCommandMatches(pid, filepath.Base(os.Args[0]))
	must.BeNoError(t, err)
	must.BeEqual(t, true, matches, "own command line matches")

	matches, err = procs.PidCommandMatches(pid, "not-the-test-binary")
	must.BeNoError(t, err)
	must.BeEqual(t, false, matches, "other command line")

	// Signal 0 checks deliverability without affecting the process
	must.BeNoError(t, procs.SendSignal(pid, syscall.Signal(0)))
}
