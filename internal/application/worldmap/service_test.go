package worldmap_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/andrescamacho/basedbot-go/internal/application/common"
	"github.com/andrescamacho/basedbot-go/internal/application/worldmap"
	"github.com/andrescamacho/basedbot-go/internal/domain/shared"
	"github.com/andrescamacho/basedbot-go/internal/domain/world"
	"github.com/andrescamacho/basedbot-go/test/helpers"
)

func TestService_Load_BuildsMapFromAllCollections(t *testing.T) {
	src := helpers.TestWorldSource()
	svc := worldmap.NewService(src)

	m, err := svc.Load(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 4, src.Fetches())
	assert.Len(t, m.Starbases(), 2)

	mineables, found := m.MineablesAt(helpers.TargetSector)
	require.True(t, found)
	require.Len(t, mineables, 1)
	assert.Equal(t, helpers.OreMint, mineables[0].MineItem.Mint)
}

func TestService_Load_FetchFailureFailsWholeLoad(t *testing.T) {
	src := helpers.TestWorldSource()
	src.Err = errors.New("rpc unavailable")

	m, err := worldmap.NewService(src).Load(context.Background())
	require.Error(t, err)
	assert.Nil(t, m)
	assert.Contains(t, err.Error(), "rpc unavailable")
}

func TestService_Load_MissingMineItemIsStructuralError(t *testing.T) {
	src := helpers.TestWorldSource()
	src.MineItems = nil

	_, err := worldmap.NewService(src).Load(context.Background())
	require.Error(t, err)

	var inconsistent *world.StructuralInconsistencyError
	assert.True(t, errors.As(err, &inconsistent))
}

func TestMineablesAt_NoStarbaseLogsWarningAndReturnsEmpty(t *testing.T) {
	logger := helpers.NewRecordingLogger()
	ctx := common.WithLogger(context.Background(), logger)
	m := helpers.TestWorldMap(t)

	mineables := worldmap.MineablesAt(ctx, m, shared.NewCoordinates(99, 99))

	assert.NotNil(t, mineables)
	assert.Empty(t, mineables)
	assert.True(t, logger.Contains(common.LevelWarning, "No starbase found at (99,99)"))
}

func TestListMineablesHandler_ResolvesQuery(t *testing.T) {
	handler := worldmap.NewListMineablesHandler(worldmap.NewService(helpers.TestWorldSource()))

	resp, err := handler.Handle(context.Background(), &worldmap.ListMineablesQuery{Coordinates: helpers.TargetSector})
	require.NoError(t, err)

	result := resp.(*worldmap.ListMineablesResponse)
	require.Len(t, result.Mineables, 1)
	assert.Equal(t, helpers.AsteroidKey, result.Mineables[0].Planet.Key)
	assert.Equal(t, helpers.TargetStarbaseKey, result.Mineables[0].Starbase.Key)
}
