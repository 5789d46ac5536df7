package tracker

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"syscall"
)

var errNotRunning = errors.New(
	"tracking is not running: start it with 'tempo start'",
)

// WritePIDFile records the current process ID so a later invocation
// can find and stop the tracker.
func WritePIDFile(path string) error {
	return os.WriteFile(
		path,
		[]byte(strconv.Itoa(os.Getpid())),
		0o644,
	)
}

// Running reports whether the process recorded in the PID file is
// still alive. A stale or unreadable PID file is removed.
func Running(path string) bool {
	pid, err := readPID(path)
	if err != nil {
		return false
	}

	proc, err := os.FindProcess(pid)
	if err != nil {
		_ = os.Remove(path)
		return false
	}

	if err := proc.Signal(syscall.Signal(0)); err != nil {
		_ = os.Remove(path)
		return false
	}

	return true
}

// StopDaemon signals the recorded tracker process to terminate and
// removes the PID file.
func StopDaemon(path string) error {
	pid, err := readPID(path)
	if err != nil {
		return errNotRunning
	}

	proc, err := os.FindProcess(pid)
	if err != nil {
		_ = os.Remove(path)
		return errNotRunning
	}

	if err := proc.Signal(syscall.SIGTERM); err != nil {
		_ = os.Remove(path)
		return errNotRunning
	}

	return os.Remove(path)
}

func readPID(path string) (int, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return 0, err
	}

	pid, err := strconv.Atoi(strings.TrimSpace(string(b)))
	if err != nil {
		_ = os.Remove(path)
		return 0, fmt.Errorf("invalid PID file %s: %w", path, err)
	}

	return pid, nil
}
