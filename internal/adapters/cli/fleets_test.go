package cli

import (
	"bytes"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	domainFleet "github.com/andrescamacho/basedbot-go/internal/domain/fleet"
	"github.com/andrescamacho/basedbot-go/test/helpers"
)

func TestPrintFleets(t *testing.T) {
	// Arrange
	now := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	docked := helpers.NewFleet("Hauler One").
		DockedAt(helpers.HomeStarbaseKey, helpers.HomeSector).
		WithFuel(400).
		Build(t)
	warping := helpers.NewFleet("Hauler Two").
		InState(helpers.Warping(helpers.HomeSector, helpers.TargetSector, now.Add(2*time.Hour))).
		Build(t)
	var out bytes.Buffer

	// Act
	printFleets(&out, []*domainFleet.FleetInfo{docked, warping}, map[string]string{"Hauler One": "transport/inbound"}, now)

	// Assert
	text := out.String()
	assert.Contains(t, text, "Hauler One")
	assert.Contains(t, text, "transport/inbound")
	assert.Contains(t, text, "400/1000")
	assert.Contains(t, text, "docked at "+helpers.HomeStarbaseKey.Short())
	assert.Contains(t, text, "2 hours from now")
	assert.Contains(t, text, "Total: 2 fleets")
}

func TestStateDetail_Unknown(t *testing.T) {
	assert.Empty(t, stateDetail(domainFleet.Unknown{Name: "Fighting"}, time.Now()))
}
