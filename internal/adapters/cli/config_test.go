package cli

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func executeRoot(t *testing.T, args ...string) (string, error) {
	t.Helper()
	t.Cleanup(func() {
		configPath = ""
		verbose = false
	})

	var out bytes.Buffer
	root := NewRootCommand()
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs(args)
	err := root.Execute()
	return out.String(), err
}

func TestConfigInit_WritesSample(t *testing.T) {
	// Arrange
	path := filepath.Join(t.TempDir(), "config.yaml")

	// Act
	out, err := executeRoot(t, "config", "init", "--output", path)

	// Assert
	require.NoError(t, err)
	assert.Contains(t, out, path)

	content, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(content), "profile_key")
	assert.Contains(t, string(content), "Hauler One")
}

func TestConfigInit_RefusesToOverwrite(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("bot: {}\n"), 0o644))

	_, err := executeRoot(t, "config", "init", "--output", path)
	require.Error(t, err)

	_, err = executeRoot(t, "config", "init", "--output", path, "--force")
	require.NoError(t, err)
}

func TestConfigShow_RedactsSecrets(t *testing.T) {
	// Arrange
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	_, err := executeRoot(t, "config", "init", "--output", path)
	require.NoError(t, err)
	t.Setenv("BASEDBOT_GATEWAY_API_KEY", "super-secret")

	// Act
	out, err := executeRoot(t, "--config", path, "config", "show")

	// Assert
	require.NoError(t, err)
	assert.NotContains(t, out, "super-secret")
	assert.Contains(t, out, "********")
	assert.Contains(t, out, "Hauler One")
}
