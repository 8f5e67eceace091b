package instance

import (
	"strings"
	"syscall"

	"github.com/pkg/errors"
	"github.com/theothertomelliott/gopsutil-nocgo/process"
)

// systemProcesses implements Processes against the operating system's process table.
type systemProcesses struct{}

var _ Processes = systemProcesses{}

// lookup returns the process for pid, or nil if there is no such process.
func (systemProcesses) lookup(pid int) (*process.Process, error) {
	exists, err := process.PidExists(int32(pid))
	if err != nil {
		return nil, errors.Wrapf(err, "looking up pid %d", pid)
	}
	if !exists {
		return nil, nil
	}
	proc, err := process.NewProcess(int32(pid))
	return proc, errors.Wrapf(err, "looking up pid %d", pid)
}

func (s systemProcesses) SendSignal(pid int, signal syscall.Signal) error {
	proc, err := s.lookup(pid)
	if err != nil {
		return err
	}
	if proc == nil {
		return errors.Errorf("no process with pid %d", pid)
	}
	return errors.WithStack(proc.SendSignal(signal))
}

func (s systemProcesses) PidExists(pid int) (bool, error) {
	proc, err := s.lookup(pid)
	return proc != nil, err
}

// PidCommandMatches reports whether pid is running with name in its command line.
func (s systemProcesses) PidCommandMatches(pid int, name string) (bool, error) {
	proc, err := s.lookup(pid)
	if err != nil || proc == nil {
		return false, err
	}
	cmdline, err := proc.Cmdline()
	if err != nil {
		return false, errors.Wrapf(err, "reading command line of pid %d", pid)
	}
	return strings.Contains(cmdline, name), nil
}
