package config

import (
	"fmt"
	"time"

	"github.com/andrescamacho/basedbot-go/internal/domain/shared"
)

// BotConfig holds the fleet automation settings
type BotConfig struct {
	// SAGE player profile the bot acts for
	ProfileKey string `mapstructure:"profile_key" yaml:"profile_key"`

	// Time between two cycles
	CycleInterval time.Duration `mapstructure:"cycle_interval" yaml:"cycle_interval" validate:"required"`

	// Fleets ticked concurrently inside a cycle; 0 means unlimited
	MaxConcurrency int `mapstructure:"max_concurrency" yaml:"max_concurrency" validate:"min=0"`

	Routes []RouteConfig `mapstructure:"routes" yaml:"routes" validate:"unique=Fleet,dive"`
}

// RouteConfig assigns a goal to one fleet.
// For the mine goal, target is the mine base and resources[0] the mint.
type RouteConfig struct {
	Fleet      string   `mapstructure:"fleet" yaml:"fleet" validate:"required"`
	Goal       string   `mapstructure:"goal" yaml:"goal,omitempty" validate:"omitempty,oneof=transport mine"`
	Home       [2]int64 `mapstructure:"home" yaml:"home,flow"`
	Target     [2]int64 `mapstructure:"target" yaml:"target,flow"`
	Resources  []string `mapstructure:"resources" yaml:"resources" validate:"dive,required"`
	TravelMode string   `mapstructure:"travel_mode" yaml:"travel_mode,omitempty" validate:"omitempty,oneof=auto warp subwarp"`
}

// SameBase reports a transport route that starts and ends at the same sector
func (r RouteConfig) SameBase() bool {
	return r.Goal != "mine" && r.Home == r.Target
}

// MisconfiguredRoutes lists the fleets whose transport route can never move cargo
func (b BotConfig) MisconfiguredRoutes() []string {
	var fleets []string
	for _, r := range b.Routes {
		if r.SameBase() {
			fleets = append(fleets, r.Fleet)
		}
	}
	return fleets
}

func (r RouteConfig) HomeSector() shared.Coordinates {
	return shared.CoordinatesFromSector(r.Home)
}

func (r RouteConfig) TargetSector() shared.Coordinates {
	return shared.CoordinatesFromSector(r.Target)
}

// Mints converts the configured resource mint addresses
func (r RouteConfig) Mints() ([]shared.EntityID, error) {
	mints := make([]shared.EntityID, 0, len(r.Resources))
	for _, raw := range r.Resources {
		id, err := shared.NewEntityID(raw)
		if err != nil {
			return nil, fmt.Errorf("fleet %s: %w", r.Fleet, err)
		}
		mints = append(mints, id)
	}
	return mints, nil
}

// Mode returns the configured travel mode, nil when unset so the default applies
func (r RouteConfig) Mode() (*shared.TravelMode, error) {
	if r.TravelMode == "" {
		return nil, nil
	}
	mode, err := shared.ParseTravelMode(r.TravelMode)
	if err != nil {
		return nil, fmt.Errorf("fleet %s: %w", r.Fleet, err)
	}
	return &mode, nil
}
