package fleet

import "context"

// FleetReader loads fresh fleet snapshots for a player profile
type FleetReader interface {
	// ListFleets returns every fleet owned by the profile
	ListFleets(ctx context.Context, profileKey string) ([]*FleetInfo, error)

	// GetFleet returns a single fleet by its label
	GetFleet(ctx context.Context, profileKey, fleetName string) (*FleetInfo, error)
}
