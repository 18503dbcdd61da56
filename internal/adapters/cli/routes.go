package cli

import (
	"github.com/andrescamacho/basedbot-go/internal/application/fleet"
	"github.com/andrescamacho/basedbot-go/internal/infrastructure/config"
)

// routeSpecs converts configured routes into application route specs
func routeSpecs(routes []config.RouteConfig) ([]fleet.RouteSpec, error) {
	specs := make([]fleet.RouteSpec, 0, len(routes))
	for _, r := range routes {
		mints, err := r.Mints()
		if err != nil {
			return nil, err
		}
		mode, err := r.Mode()
		if err != nil {
			return nil, err
		}

		goal := r.Goal
		if goal == "" {
			goal = fleet.GoalTransport
		}

		specs = append(specs, fleet.RouteSpec{
			Fleet:      r.Fleet,
			Goal:       goal,
			Home:       r.HomeSector(),
			Target:     r.TargetSector(),
			Resources:  mints,
			TravelMode: mode,
		})
	}
	return specs, nil
}
