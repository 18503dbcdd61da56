package persistence_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/andrescamacho/basedbot-go/internal/adapters/persistence"
	"github.com/andrescamacho/basedbot-go/internal/domain/shared"
	"github.com/andrescamacho/basedbot-go/test/helpers"
)

func TestFleetLogRepository_DeduplicatesWithinWindow(t *testing.T) {
	// Arrange
	db := helpers.NewTestDB(t)
	clock := shared.NewMockClock(time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC))
	repo := persistence.NewGormFleetLogRepository(db, clock)
	ctx := context.Background()

	// Act
	require.NoError(t, repo.Log(ctx, "p1", "Hauler", "INFO", "Arrival in 5 minutes", nil))
	clock.Advance(30 * time.Second)
	require.NoError(t, repo.Log(ctx, "p1", "Hauler", "INFO", "Arrival in 5 minutes", nil))
	require.NoError(t, repo.Log(ctx, "p1", "Miner", "INFO", "Arrival in 5 minutes", nil))
	clock.Advance(31 * time.Second)
	require.NoError(t, repo.Log(ctx, "p1", "Hauler", "INFO", "Arrival in 5 minutes", nil))

	// Assert
	hauler, err := repo.GetLogs(ctx, persistence.LogFilter{ProfileKey: "p1", FleetName: "Hauler"})
	require.NoError(t, err)
	assert.Len(t, hauler, 2)

	all, err := repo.GetLogs(ctx, persistence.LogFilter{ProfileKey: "p1"})
	require.NoError(t, err)
	assert.Len(t, all, 3)
}

func TestFleetLogRepository_FiltersAndOrders(t *testing.T) {
	// Arrange
	db := helpers.NewTestDB(t)
	clock := shared.NewMockClock(time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC))
	repo := persistence.NewGormFleetLogRepository(db, clock)
	ctx := context.Background()

	require.NoError(t, repo.Log(ctx, "p1", "Hauler", "INFO", "first", map[string]interface{}{"cycle_id": "c1"}))
	clock.Advance(time.Second)
	require.NoError(t, repo.Log(ctx, "p1", "Hauler", "ERROR", "second", nil))
	clock.Advance(time.Second)
	require.NoError(t, repo.Log(ctx, "p1", "Hauler", "INFO", "third", nil))

	// Act
	infos, err := repo.GetLogs(ctx, persistence.LogFilter{ProfileKey: "p1", Level: "INFO"})
	require.NoError(t, err)
	latest, err := repo.GetLogs(ctx, persistence.LogFilter{ProfileKey: "p1", Limit: 1})
	require.NoError(t, err)
	paged, err := repo.GetLogs(ctx, persistence.LogFilter{ProfileKey: "p1", Limit: 1, Offset: 2})
	require.NoError(t, err)

	// Assert
	require.Len(t, infos, 2)
	assert.Equal(t, "third", infos[0].Message)
	assert.Equal(t, "first", infos[1].Message)
	assert.Equal(t, "c1", infos[1].Metadata["cycle_id"])

	require.Len(t, latest, 1)
	assert.Equal(t, "third", latest[0].Message)

	require.Len(t, paged, 1)
	assert.Equal(t, "first", paged[0].Message)
}

func TestFleetLogRepository_Since(t *testing.T) {
	// Arrange
	db := helpers.NewTestDB(t)
	start := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	clock := shared.NewMockClock(start)
	repo := persistence.NewGormFleetLogRepository(db, clock)
	ctx := context.Background()

	require.NoError(t, repo.Log(ctx, "p1", "", "INFO", "old", nil))
	clock.Advance(time.Hour)
	require.NoError(t, repo.Log(ctx, "p1", "", "INFO", "new", nil))

	// Act
	since := start.Add(time.Minute)
	entries, err := repo.GetLogs(ctx, persistence.LogFilter{ProfileKey: "p1", Since: &since})

	// Assert
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "new", entries[0].Message)
}
