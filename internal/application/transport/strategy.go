package transport

import (
	"context"

	"github.com/andrescamacho/basedbot-go/internal/application/strategy"
	"github.com/andrescamacho/basedbot-go/internal/domain/fleet"
	"github.com/andrescamacho/basedbot-go/internal/domain/player"
	domainTransport "github.com/andrescamacho/basedbot-go/internal/domain/transport"
)

// StrategyName is the registry name of the transport strategy
const StrategyName = "transport"

// Strategy adapts a Controller to the strategy.Strategy interface
type Strategy struct {
	controller *Controller
	config     domainTransport.GoalConfig
}

// NewStrategy creates a transport strategy bound to one route
func NewStrategy(
	config domainTransport.GoalConfig,
	p *player.Player,
	game *player.Game,
	deps Dependencies,
) *Strategy {
	return &Strategy{
		controller: NewController(config, p, game, deps),
		config:     config,
	}
}

func (s *Strategy) Name() string { return StrategyName }

func (s *Strategy) Config() domainTransport.GoalConfig { return s.config }

func (s *Strategy) Apply(ctx context.Context, f *fleet.FleetInfo) (strategy.Decision, error) {
	return s.controller.Transition(ctx, f)
}

var _ strategy.Strategy = (*Strategy)(nil)
