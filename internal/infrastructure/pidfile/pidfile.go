package pidfile

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"syscall"
)

// ErrNotRunning is returned by Signal when no live bot owns the file
var ErrNotRunning = errors.New("bot is not running")

// PIDFile keeps a single bot instance per profile, since two bots would
// submit conflicting transactions for the same fleets
type PIDFile struct {
	path string
}

func New(path string) *PIDFile {
	return &PIDFile{path: path}
}

func (p *PIDFile) Path() string { return p.path }

// Acquire writes the current PID. A file left by a dead or unparsable
// process is replaced; a live owner is an error.
func (p *PIDFile) Acquire() error {
	if pid, err := p.Read(); err == nil && pid != os.Getpid() && isProcessRunning(pid) {
		return fmt.Errorf("bot is already running (PID %d)", pid)
	}

	if err := os.MkdirAll(filepath.Dir(p.path), 0o755); err != nil {
		return fmt.Errorf("failed to create PID directory: %w", err)
	}

	// Write to a temp file and rename so readers never see a partial PID
	tmp := p.path + ".tmp"
	if err := os.WriteFile(tmp, []byte(strconv.Itoa(os.Getpid())+"\n"), 0o644); err != nil {
		return fmt.Errorf("failed to write PID file: %w", err)
	}
	if err := os.Rename(tmp, p.path); err != nil {
		_ = os.Remove(tmp)
		return fmt.Errorf("failed to write PID file: %w", err)
	}
	return nil
}

// Read returns the PID stored in the file
func (p *PIDFile) Read() (int, error) {
	data, err := os.ReadFile(p.path)
	if err != nil {
		return 0, err
	}
	pid, err := strconv.Atoi(strings.TrimSpace(string(data)))
	if err != nil {
		return 0, fmt.Errorf("corrupt PID file %s: %w", p.path, err)
	}
	return pid, nil
}

// Running returns the owner's PID and whether that process is alive
func (p *PIDFile) Running() (int, bool) {
	pid, err := p.Read()
	if err != nil {
		return 0, false
	}
	return pid, isProcessRunning(pid)
}

// Signal sends sig to the running owner
func (p *PIDFile) Signal(sig syscall.Signal) (int, error) {
	pid, running := p.Running()
	if !running {
		return 0, ErrNotRunning
	}
	if err := syscall.Kill(pid, sig); err != nil {
		return pid, fmt.Errorf("failed to signal PID %d: %w", pid, err)
	}
	return pid, nil
}

// Release removes the file if it still belongs to this process
func (p *PIDFile) Release() error {
	if pid, err := p.Read(); err == nil && pid != os.Getpid() {
		return nil
	}
	if err := os.Remove(p.path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to remove PID file: %w", err)
	}
	return nil
}

// isProcessRunning checks pid with signal 0
func isProcessRunning(pid int) bool {
	if pid <= 0 {
		return false
	}
	err := syscall.Kill(pid, syscall.Signal(0))
	// EPERM: the process exists but belongs to someone else
	return err == nil || errors.Is(err, syscall.EPERM)
}
