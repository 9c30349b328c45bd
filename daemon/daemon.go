package daemon

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"syscall"

	"github.com/sevlyar/go-daemon"
)

const (
	// DaemonEnvVar is the environment variable that marks a daemon child process
	DaemonEnvVar = "REMOTEPAD_DAEMON_CHILD"
)

// PidFile is where the background session records its process id.
func PidFile() string {
	return filepath.Join(os.TempDir(), "remotepad.pid")
}

// LogFile receives the background session's output.
func LogFile() string {
	return filepath.Join(os.TempDir(), "remotepad.log")
}

func newContext() *daemon.Context {
	workDir, err := os.Getwd()
	if err != nil {
		workDir = "/"
	}

	return &daemon.Context{
		PidFileName: PidFile(),
		PidFilePerm: 0o644,
		LogFileName: LogFile(),
		LogFilePerm: 0o640,
		WorkDir:     workDir,
		Umask:       027,
		Args:        os.Args,
		Env:         append(os.Environ(), fmt.Sprintf("%s=1", DaemonEnvVar)),
	}
}

// current is the context of this process, set by Daemonize.
var current *daemon.Context

// Daemonize detaches the process and returns the child process handle.
// Both the parent and the re-executed child call it.
// If the returned process is nil, this is the child process
// If the returned process is non-nil, this is the parent process
func Daemonize() (*os.Process, error) {
	if !IsChild() {
		if pid, err := daemon.ReadPidFile(PidFile()); err == nil && processAlive(pid) {
			return nil, fmt.Errorf("a background session is already running (pid %d)", pid)
		}
	}

	ctx := newContext()
	child, err := ctx.Reborn()
	if err != nil {
		return nil, fmt.Errorf("failed to daemonize: %w", err)
	}

	if child == nil {
		current = ctx
	}
	return child, nil
}

// IsChild returns true if this is the daemon child process
func IsChild() bool {
	return os.Getenv(DaemonEnvVar) == "1"
}

// Release unlocks and removes the pid file. The child calls it on exit.
func Release() error {
	if current != nil {
		return current.Release()
	}
	err := os.Remove(PidFile())
	if errors.Is(err, os.ErrNotExist) {
		return nil
	}
	return err
}

// Stop sends SIGTERM to the background session and returns its pid.
func Stop() (int, error) {
	pid, err := daemon.ReadPidFile(PidFile())
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return 0, fmt.Errorf("no background session is running")
		}
		return 0, fmt.Errorf("failed to read pid file: %w", err)
	}

	if !processAlive(pid) {
		_ = Release()
		return 0, fmt.Errorf("background session (pid %d) is not running", pid)
	}

	proc, err := os.FindProcess(pid)
	if err != nil {
		return 0, err
	}
	if err := proc.Signal(syscall.SIGTERM); err != nil {
		return 0, fmt.Errorf("failed to stop pid %d: %w", pid, err)
	}
	return pid, nil
}

func processAlive(pid int) bool {
	proc, err := os.FindProcess(pid)
	if err != nil {
		return false
	}
	return proc.Signal(syscall.Signal(0)) == nil
}
