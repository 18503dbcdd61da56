package helpers

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"

	"github.com/andrescamacho/basedbot-go/internal/domain/fleet"
	"github.com/andrescamacho/basedbot-go/internal/domain/player"
	"github.com/andrescamacho/basedbot-go/internal/domain/shared"
	"github.com/andrescamacho/basedbot-go/internal/domain/world"
)

// MockWorldSource is an in-memory world.Source
type MockWorldSource struct {
	Starbases []world.Starbase
	Planets   []world.Planet
	MineItems []world.MineItem
	Resources []world.Resource

	// Err is returned by every fetch when set
	Err error

	fetches atomic.Int32
}

// NewMockWorldSource creates an empty world source
func NewMockWorldSource() *MockWorldSource {
	return &MockWorldSource{}
}

// Fetches returns how many collection fetches were served
func (m *MockWorldSource) Fetches() int {
	return int(m.fetches.Load())
}

func (m *MockWorldSource) ListStarbases(ctx context.Context) ([]world.Starbase, error) {
	m.fetches.Add(1)
	return m.Starbases, m.Err
}

func (m *MockWorldSource) ListPlanets(ctx context.Context) ([]world.Planet, error) {
	m.fetches.Add(1)
	return m.Planets, m.Err
}

func (m *MockWorldSource) ListMineItems(ctx context.Context) ([]world.MineItem, error) {
	m.fetches.Add(1)
	return m.MineItems, m.Err
}

func (m *MockWorldSource) ListResources(ctx context.Context) ([]world.Resource, error) {
	m.fetches.Add(1)
	return m.Resources, m.Err
}

// MockGameGateway is an in-memory fleet.FleetReader, player.GameReader and
// player.StarbasePlayerResolver
type MockGameGateway struct {
	mu sync.RWMutex

	Game   *player.Game
	Player *player.Player
	fleets []*fleet.FleetInfo

	ListErr     error
	ResolverErr error
}

// NewMockGameGateway creates a gateway serving the fixture game and player
func NewMockGameGateway() *MockGameGateway {
	return &MockGameGateway{
		Game:   TestGame(),
		Player: TestPlayer(),
	}
}

// SetFleets replaces the observed fleets
func (m *MockGameGateway) SetFleets(fleets ...*fleet.FleetInfo) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.fleets = fleets
}

func (m *MockGameGateway) ListFleets(ctx context.Context, profileKey string) ([]*fleet.FleetInfo, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.ListErr != nil {
		return nil, m.ListErr
	}
	return append([]*fleet.FleetInfo(nil), m.fleets...), nil
}

func (m *MockGameGateway) GetFleet(ctx context.Context, profileKey, fleetName string) (*fleet.FleetInfo, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, f := range m.fleets {
		if f.Name() == fleetName {
			return f, nil
		}
	}
	return nil, shared.NewFleetError(fleetName, "fleet not found")
}

func (m *MockGameGateway) GetGame(ctx context.Context) (*player.Game, error) {
	return m.Game, nil
}

func (m *MockGameGateway) GetPlayer(ctx context.Context, profileKey string) (*player.Player, error) {
	if m.Player == nil || string(m.Player.ProfileKey) != profileKey {
		return nil, fmt.Errorf("player %s not found", profileKey)
	}
	return m.Player, nil
}

func (m *MockGameGateway) StarbasePlayer(ctx context.Context, p *player.Player, starbase shared.EntityID) (*player.StarbasePlayer, error) {
	if m.ResolverErr != nil {
		return nil, m.ResolverErr
	}
	return &player.StarbasePlayer{
		Key:      shared.EntityID("sbp-" + string(starbase)),
		Starbase: starbase,
		Profile:  p.ProfileKey,
	}, nil
}
