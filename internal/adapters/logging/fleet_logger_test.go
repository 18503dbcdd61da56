package logging_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/andrescamacho/basedbot-go/internal/adapters/logging"
	"github.com/andrescamacho/basedbot-go/internal/adapters/persistence"
	"github.com/andrescamacho/basedbot-go/internal/application/common"
	"github.com/andrescamacho/basedbot-go/test/helpers"
)

func TestFleetLogger_JSONWithFleetScope(t *testing.T) {
	// Arrange
	var buf bytes.Buffer
	repo := helpers.NewMockFleetLogRepository()
	root := logging.NewFleetLogger(logging.Options{Level: "info", Format: "json", Writer: &buf}, "profile-1", repo)

	// Act
	ctx := common.WithFleetLogger(common.WithLogger(context.Background(), root), "Hauler")
	common.LoggerFromContext(ctx).Log(common.LevelWarning, "Hauler need self destruction", map[string]interface{}{"cycle_id": "c1"})

	// Assert
	var record map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &record))
	assert.Equal(t, "WARN", record["level"])
	assert.Equal(t, "Hauler need self destruction", record["msg"])
	assert.Equal(t, "Hauler", record["fleet"])
	assert.Equal(t, "c1", record["cycle_id"])

	entries := repo.Entries()
	require.Len(t, entries, 1)
	assert.Equal(t, "profile-1", entries[0].ProfileKey)
	assert.Equal(t, "Hauler", entries[0].FleetName)
	assert.Equal(t, common.LevelWarning, entries[0].Level)
}

func TestFleetLogger_LevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	repo := helpers.NewMockFleetLogRepository()
	logger := logging.NewFleetLogger(logging.Options{Level: "warn", Format: "text", Writer: &buf}, "profile-1", repo)

	logger.Log(common.LevelDebug, "debug line", nil)
	logger.Log(common.LevelInfo, "info line", nil)
	logger.Log(common.LevelError, "error line", nil)

	out := buf.String()
	assert.NotContains(t, out, "debug line")
	assert.NotContains(t, out, "info line")
	assert.Contains(t, out, "error line")

	// persistence keeps INFO and above regardless of the console level
	messages := make([]string, 0)
	for _, e := range repo.Entries() {
		messages = append(messages, e.Message)
	}
	assert.Equal(t, []string{"info line", "error line"}, messages)
}

func TestFleetLogger_PersistFailureIsReported(t *testing.T) {
	var buf bytes.Buffer
	repo := helpers.NewMockFleetLogRepository()
	repo.LogErr = errors.New("disk full")
	logger := logging.NewFleetLogger(logging.Options{Level: "info", Writer: &buf}, "p", repo)

	logger.Log(common.LevelInfo, "hello", nil)

	assert.True(t, strings.Contains(buf.String(), "failed to persist log entry: disk full"))
}

func TestFleetLogger_WithoutRepository(t *testing.T) {
	var buf bytes.Buffer
	var repo persistence.FleetLogRepository
	logger := logging.NewFleetLogger(logging.Options{Writer: &buf}, "p", repo)

	logger.Log(common.LevelInfo, "hello", nil)

	assert.Contains(t, buf.String(), "hello")
}
