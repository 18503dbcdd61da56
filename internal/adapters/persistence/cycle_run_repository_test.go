package persistence_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/andrescamacho/basedbot-go/internal/adapters/persistence"
	"github.com/andrescamacho/basedbot-go/internal/application/common"
	"github.com/andrescamacho/basedbot-go/test/helpers"
)

func TestCycleRunRepository_RecentNewestFirst(t *testing.T) {
	// Arrange
	db := helpers.NewTestDB(t)
	repo := persistence.NewGormCycleRunRepository(db)
	ctx := context.Background()
	start := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)

	for i, id := range []string{"cycle-a", "cycle-b", "cycle-c"} {
		require.NoError(t, repo.Record(ctx, common.CycleRecord{
			CycleID:    id,
			ProfileKey: "p1",
			StartedAt:  start.Add(time.Duration(i) * time.Minute),
			Duration:   1500 * time.Millisecond,
			Observed:   3,
			Ticked:     2,
			Failures:   i,
		}))
	}
	require.NoError(t, repo.Record(ctx, common.CycleRecord{CycleID: "other", ProfileKey: "p2", StartedAt: start}))

	// Act
	records, err := repo.Recent(ctx, "p1", 2)

	// Assert
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, "cycle-c", records[0].CycleID)
	assert.Equal(t, "cycle-b", records[1].CycleID)
	assert.Equal(t, 1500*time.Millisecond, records[0].Duration)
	assert.Equal(t, 2, records[0].Failures)
}
