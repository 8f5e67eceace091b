package instance

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"syscall"
	"time"

	"github.com/pkg/errors"
	"github.com/yext/hellod/common"
)

// ErrNotRunning is returned by Stop when no running server is recorded.
var ErrNotRunning = errors.New("hellod is not running")

// Processes provides the process operations needed to manage a running server
type Processes interface {
	SendSignal(pid int, signal syscall.Signal) error
	PidExists(pid int) (bool, error)
	PidCommandMatches(pid int, value string) (bool, error)
}

// Instance tracks a running server through its pid file
type Instance struct {
	PidFile string
	// Name expected in the command line of the recorded process
	Name string

	Logger    common.Logger
	processes Processes
}

// New creates an Instance for the pid file at path
func New(pidFile string, name string, logger common.Logger) *Instance {
	return &Instance{
		PidFile:   pidFile,
		Name:      name,
		Logger:    common.MaskLogger(logger),
		processes: systemProcesses{},
	}
}

// Record writes pid to the pid file, replacing any previous value.
func (i *Instance) Record(pid int) error {
	err := os.WriteFile(i.PidFile, []byte(fmt.Sprintf("%d\n", pid)), 0644)
	if err != nil {
		return errors.Wrap(err, "could not write pid file")
	}
	i.Logger.Printf("recorded pid %d in %v\n", pid, i.PidFile)
	return nil
}

// Clear removes the pid file. A missing pid file is not an error.
func (i *Instance) Clear() error {
	err := os.Remove(i.PidFile)
	if err != nil && !os.IsNotExist(err) {
		return errors.Wrap(err, "could not remove pid file")
	}
	return nil
}

// Pid returns the recorded pid, or 0 if none is recorded or the recorded
// process is no longer running.
func (i *Instance) Pid() (int, error) {
	content, err := os.ReadFile(i.PidFile)
	if os.IsNotExist(err) {
		return 0, nil
	}
	if err != nil {
		return 0, errors.Wrap(err, "could not read pid file")
	}
	pid, err := strconv.Atoi(strings.TrimSpace(string(content)))
	if err != nil {
		return 0, errors.Wrapf(err, "invalid pid file %v", i.PidFile)
	}

	matches, err := i.processes.PidCommandMatches(pid, i.Name)
	if err != nil {
		return 0, errors.WithStack(err)
	}
	if !matches {
		i.Logger.Printf("pid %d is not a running %v process, ignoring stale pid file\n", pid, i.Name)
		return 0, nil
	}
	return pid, nil
}

// Stop sends an interrupt to the recorded server and waits up to timeout for it to exit.
func (i *Instance) Stop(timeout time.Duration) error {
	pid, err := i.Pid()
	if err != nil {
		return errors.WithStack(err)
	}
	if pid == 0 {
		return errors.WithStack(i.clearNotRunning())
	}

	i.Logger.Printf("interrupting pid %d\n", pid)
	if err := i.processes.SendSignal(pid, syscall.SIGINT); err != nil {
		return errors.Wrapf(err, "could not interrupt pid %d", pid)
	}

	stopped, err := i.waitForTerm(pid, timeout)
	if err != nil {
		return errors.WithStack(err)
	}
	if !stopped {
		return errors.Errorf("pid %d still running after %v", pid, timeout)
	}
	return nil
}

func (i *Instance) clearNotRunning() error {
	if err := i.Clear(); err != nil {
		return err
	}
	return ErrNotRunning
}

func (i *Instance) waitForTerm(pid int, timeout time.Duration) (bool, error) {
	const interval = 100 * time.Millisecond
	for elapsed := time.Duration(0); elapsed <= timeout; elapsed += interval {
		exists, err := i.processes.PidExists(pid)
		if err != nil {
			return false, errors.WithStack(err)
		}
		if !exists {
			i.Logger.Printf("pid %d no longer exists\n", pid)
			return true, nil
		}
		time.Sleep(interval)
	}
	return false, nil
}
