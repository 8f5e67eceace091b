package instance

import (
	"os"
	"path/filepath"
	"strings"
	"sync"
	"syscall"
	"testing"
	"time"

	"github.com/pkg/errors"
	"github.com/theothertomelliott/must"
)

// fakeProcesses simulates a process table where a signalled process exits
// after a number of existence checks.
type fakeProcesses struct {
	mtx       sync.Mutex
	running   map[int]string
	exitAfter int
	signals   []syscall.Signal
	signalErr error
}

func (f *fakeProcesses) SendSignal(pid int, signal syscall.Signal) error {
	f.mtx.Lock()
	defer f.mtx.Unlock()
	if f.signalErr != nil {
		return f.signalErr
	}
	f.signals = append(f.signals, signal)
	return nil
}

func (f *fakeProcesses) PidExists(pid int) (bool, error) {
	f.mtx.Lock()
	defer f.mtx.Unlock()
	if _, ok := f.running[pid]; !ok {
		return false, nil
	}
	if len(f.signals) > 0 && f.exitAfter >= 0 {
		if f.exitAfter == 0 {
			delete(f.running, pid)
			return false, nil
		}
		f.exitAfter--
	}
	return true, nil
}

func (f *fakeProcesses) PidCommandMatches(pid int, value string) (bool, error) {
	f.mtx.Lock()
	defer f.mtx.Unlock()
	name, ok := f.running[pid]
	return ok && name == value, nil
}

func newTestInstance(t *testing.T, procs *fakeProcesses) *Instance {
	i := New(filepath.Join(t.TempDir(), "hellod.pid"), "hellod", nil)
	i.processes = procs
	return i
}

func TestRecordAndClear(t *testing.T) {
	procs := &fakeProcesses{running: map[int]string{42: "hellod"}}
	i := newTestInstance(t, procs)

	pid, err := i.Pid()
	must.BeNoError(t, err)
	must.BeEqual(t, 0, pid, "no pid file")

	must.BeNoError(t, i.Record(42))
	pid, err = i.Pid()
	must.BeNoError(t, err)
	must.BeEqual(t, 42, pid, "recorded pid")

	must.BeNoError(t, i.Clear())
	if _, err := os.Stat(i.PidFile); !os.IsNotExist(err) {
		t.Errorf("expected pid file to be removed, got %v", err)
	}
	must.BeNoError(t, i.Clear(), "clearing twice")
}

func TestPidIgnoresOtherProcesses(t *testing.T) {
	procs := &fakeProcesses{running: map[int]string{42: "bash"}}
	i := newTestInstance(t, procs)
	must.BeNoError(t, i.Record(42))

	pid, err := i.Pid()
	must.BeNoError(t, err)
	must.BeEqual(t, 0, pid)
}

func TestPidInvalidFile(t *testing.T) {
	i := newTestInstance(t, &fakeProcesses{})
	if err := os.WriteFile(i.PidFile, []byte("not a pid"), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := i.Pid(); err == nil {
		t.Error("expected an error reading an invalid pid file")
	}
}

func TestStop(t *testing.T) {
	var tests = []struct {
		name            string
		running         map[int]string
		record          int
		exitAfter       int
		signalErr       error
		expectedSignals []syscall.Signal
		err             error
		errContains     string
	}{
		{
			name:            "stops promptly",
			running:         map[int]string{42: "hellod"},
			record:          42,
			exitAfter:       0,
			expectedSignals: []syscall.Signal{syscall.SIGINT},
		},
		{
			name:            "stops after draining",
			running:         map[int]string{42: "hellod"},
			record:          42,
			exitAfter:       2,
			expectedSignals: []syscall.Signal{syscall.SIGINT},
		},
		{
			name: "no pid file",
			err:  ErrNotRunning,
		},
		{
			name:   "stale pid file",
			record: 42,
			err:    ErrNotRunning,
		},
		{
			name:            "never exits",
			running:         map[int]string{42: "hellod"},
			record:          42,
			exitAfter:       -1,
			expectedSignals: []syscall.Signal{syscall.SIGINT},
			errContains:     "still running",
		},
		{
			name:        "signal fails",
			running:     map[int]string{42: "hellod"},
			record:      42,
			signalErr:   errors.New("operation not permitted"),
			errContains: "could not interrupt pid 42",
		},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			procs := &fakeProcesses{
				running:   test.running,
				exitAfter: test.exitAfter,
				signalErr: test.signalErr,
			}
			i := newTestInstance(t, procs)
			if test.record != 0 {
				must.BeNoError(t, i.Record(test.record))
			}

			err := i.Stop(300 * time.Millisecond)
			switch {
			case test.err != nil:
				if errors.Cause(err) != test.err {
					t.Errorf("expected %v, got %v", test.err, err)
				}
			case test.errContains != "":
				if err == nil || !strings.Contains(err.Error(), test.errContains) {
					t.Errorf("expected error containing %q, got %v", test.errContains, err)
				}
			default:
				must.BeNoError(t, err)
			}
			must.BeEqual(t, test.expectedSignals, procs.signals, "signals sent")
		})
	}
}
