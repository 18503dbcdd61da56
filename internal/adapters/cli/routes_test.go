package cli

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/andrescamacho/basedbot-go/internal/application/fleet"
	"github.com/andrescamacho/basedbot-go/internal/domain/shared"
	"github.com/andrescamacho/basedbot-go/internal/infrastructure/config"
)

func TestRouteSpecs_ConvertsRoutes(t *testing.T) {
	// Arrange
	routes := []config.RouteConfig{
		{
			Fleet:      "Hauler One",
			Home:       [2]int64{0, -39},
			Target:     [2]int64{40, 30},
			Resources:  []string{"mintA", "mintB"},
			TravelMode: "subwarp",
		},
		{
			Fleet:     "Miner",
			Goal:      "mine",
			Target:    [2]int64{40, 30},
			Resources: []string{"mintA"},
		},
	}

	// Act
	specs, err := routeSpecs(routes)

	// Assert
	require.NoError(t, err)
	require.Len(t, specs, 2)

	assert.Equal(t, "Hauler One", specs[0].Fleet)
	assert.Equal(t, fleet.GoalTransport, specs[0].Goal)
	assert.Equal(t, shared.NewCoordinates(0, -39), specs[0].Home)
	assert.Equal(t, shared.NewCoordinates(40, 30), specs[0].Target)
	assert.Equal(t, []shared.EntityID{"mintA", "mintB"}, specs[0].Resources)
	require.NotNil(t, specs[0].TravelMode)
	assert.Equal(t, shared.TravelModeSubwarp, *specs[0].TravelMode)

	assert.Equal(t, fleet.GoalMine, specs[1].Goal)
	assert.Nil(t, specs[1].TravelMode)
}

func TestRouteSpecs_RejectsBadTravelMode(t *testing.T) {
	routes := []config.RouteConfig{
		{Fleet: "Hauler One", Resources: []string{"mintA"}, TravelMode: "hyperspace"},
	}

	_, err := routeSpecs(routes)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "Hauler One")
}

func TestRouteSpecs_RejectsEmptyMint(t *testing.T) {
	routes := []config.RouteConfig{
		{Fleet: "Hauler One", Resources: []string{""}},
	}

	_, err := routeSpecs(routes)

	require.Error(t, err)
}
