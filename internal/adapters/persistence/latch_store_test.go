package persistence_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/andrescamacho/basedbot-go/internal/adapters/persistence"
	"github.com/andrescamacho/basedbot-go/internal/domain/shared"
	domainTransport "github.com/andrescamacho/basedbot-go/internal/domain/transport"
	"github.com/andrescamacho/basedbot-go/test/helpers"
)

func TestGormLatchStore_DefaultsToInitialDirection(t *testing.T) {
	// Arrange
	db := helpers.NewTestDB(t)
	store := persistence.NewGormLatchStore(db, "profile-1", nil)
	key := domainTransport.NewRouteKey("Hauler", shared.NewCoordinates(0, -39), shared.NewCoordinates(40, 30))

	// Act
	direction, err := store.Get(context.Background(), key)

	// Assert
	require.NoError(t, err)
	assert.Equal(t, domainTransport.InitialDirection, direction)
}

func TestGormLatchStore_SetOverwrites(t *testing.T) {
	// Arrange
	db := helpers.NewTestDB(t)
	clock := shared.NewMockClock(time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC))
	store := persistence.NewGormLatchStore(db, "profile-1", clock)
	key := domainTransport.NewRouteKey("Hauler", shared.NewCoordinates(0, -39), shared.NewCoordinates(40, 30))
	ctx := context.Background()

	// Act
	require.NoError(t, store.Set(ctx, key, domainTransport.DirectionInbound))
	clock.Advance(time.Minute)
	require.NoError(t, store.Set(ctx, key, domainTransport.DirectionOutbound))

	// Assert
	direction, err := store.Get(ctx, key)
	require.NoError(t, err)
	assert.Equal(t, domainTransport.DirectionOutbound, direction)

	latches, err := store.List(ctx)
	require.NoError(t, err)
	require.Len(t, latches, 1)
	assert.Equal(t, "Hauler", latches[0].FleetName)
	assert.True(t, latches[0].UpdatedAt.Equal(clock.Now()))
}

func TestGormLatchStore_ScopedByProfile(t *testing.T) {
	// Arrange
	db := helpers.NewTestDB(t)
	mine := persistence.NewGormLatchStore(db, "profile-1", nil)
	other := persistence.NewGormLatchStore(db, "profile-2", nil)
	key := domainTransport.NewRouteKey("Hauler", shared.NewCoordinates(0, -39), shared.NewCoordinates(40, 30))
	ctx := context.Background()

	// Act
	require.NoError(t, mine.Set(ctx, key, domainTransport.DirectionInbound))

	// Assert
	direction, err := other.Get(ctx, key)
	require.NoError(t, err)
	assert.Equal(t, domainTransport.InitialDirection, direction)
}

func TestGormLatchStore_CorruptValue(t *testing.T) {
	// Arrange
	db := helpers.NewTestDB(t)
	store := persistence.NewGormLatchStore(db, "profile-1", nil)
	require.NoError(t, db.Create(&persistence.RouteLatchModel{
		RouteKey:   "Hauler|x",
		ProfileKey: "profile-1",
		FleetName:  "Hauler",
		Direction:  "sideways",
		UpdatedAt:  time.Now(),
	}).Error)

	// Act
	_, err := store.Get(context.Background(), "Hauler|x")

	// Assert
	require.Error(t, err)
	assert.Contains(t, err.Error(), "corrupt latch")
}
