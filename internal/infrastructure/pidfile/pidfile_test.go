package pidfile_test

import (
	"os"
	"path/filepath"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/andrescamacho/basedbot-go/internal/infrastructure/pidfile"
)

func TestAcquireAndRelease(t *testing.T) {
	path := filepath.Join(t.TempDir(), "run", "basedbot.pid")
	p := pidfile.New(path)

	require.NoError(t, p.Acquire())

	pid, running := p.Running()
	assert.Equal(t, os.Getpid(), pid)
	assert.True(t, running)

	require.NoError(t, p.Release())
	_, err := os.Stat(path)
	assert.True(t, os.IsNotExist(err))
}

func TestAcquire_ReplacesStaleFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "basedbot.pid")
	// PIDs are capped well below this on Linux
	require.NoError(t, os.WriteFile(path, []byte("999999999\n"), 0o644))
	p := pidfile.New(path)

	require.NoError(t, p.Acquire())

	pid, err := p.Read()
	require.NoError(t, err)
	assert.Equal(t, os.Getpid(), pid)
}

func TestAcquire_ReplacesCorruptFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "basedbot.pid")
	require.NoError(t, os.WriteFile(path, []byte("garbage"), 0o644))

	require.NoError(t, pidfile.New(path).Acquire())
}

func TestAcquire_FailsWhenOwnerAlive(t *testing.T) {
	path := filepath.Join(t.TempDir(), "basedbot.pid")
	// PID 1 always exists
	require.NoError(t, os.WriteFile(path, []byte(strconv.Itoa(1)), 0o644))

	err := pidfile.New(path).Acquire()

	require.Error(t, err)
	assert.Contains(t, err.Error(), "already running (PID 1)")
}

func TestRelease_KeepsForeignFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "basedbot.pid")
	require.NoError(t, os.WriteFile(path, []byte("1"), 0o644))

	require.NoError(t, pidfile.New(path).Release())

	_, err := os.Stat(path)
	assert.NoError(t, err)
}

func TestSignal_NotRunning(t *testing.T) {
	p := pidfile.New(filepath.Join(t.TempDir(), "missing.pid"))

	_, err := p.Signal(0)

	assert.ErrorIs(t, err, pidfile.ErrNotRunning)
}
