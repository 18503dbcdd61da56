package strategy

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/andrescamacho/basedbot-go/internal/domain/fleet"
	"github.com/andrescamacho/basedbot-go/internal/domain/world"
)

// Strategy advances one goal for a fleet. Apply is invoked once per fleet per
// cycle with a fresh observation and issues at most one step.
type Strategy interface {
	// Name identifies the goal type, e.g. "transport"
	Name() string

	// Apply decides and issues the next step for fleetInfo
	Apply(ctx context.Context, fleetInfo *fleet.FleetInfo) (Decision, error)
}

// Registry maps fleet names to the strategy driving them
type Registry struct {
	mu         sync.RWMutex
	strategies map[string]Strategy
}

func NewRegistry() *Registry {
	return &Registry{strategies: make(map[string]Strategy)}
}

// Register assigns s to fleetName. A fleet runs at most one strategy.
func (r *Registry) Register(fleetName string, s Strategy) error {
	if s == nil {
		return fmt.Errorf("strategy cannot be nil")
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.strategies[fleetName]; exists {
		return fmt.Errorf("fleet %s already has a strategy", fleetName)
	}
	r.strategies[fleetName] = s
	return nil
}

// Get returns the strategy for fleetName
func (r *Registry) Get(fleetName string) (Strategy, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	s, ok := r.strategies[fleetName]
	return s, ok
}

// FleetNames returns the registered fleet names, sorted
func (r *Registry) FleetNames() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	names := make([]string, 0, len(r.strategies))
	for name := range r.strategies {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Len returns the number of registered fleets
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.strategies)
}

// Builder creates the strategies for one cycle against a freshly built world
// map
type Builder interface {
	Build(ctx context.Context, worldMap *world.WorldMap) (*Registry, error)
}
