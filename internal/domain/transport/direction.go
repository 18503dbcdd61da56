package transport

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/andrescamacho/basedbot-go/internal/domain/shared"
)

// Direction records which leg of a round trip is in progress
type Direction string

const (
	// DirectionOutbound - home to target, carrying the route's resources
	DirectionOutbound Direction = "outbound"
	// DirectionInbound - target back to home
	DirectionInbound Direction = "inbound"
)

// InitialDirection is the latch value of a route that has never moved
const InitialDirection = DirectionOutbound

// ParseDirection validates a stored direction value
func ParseDirection(s string) (Direction, error) {
	switch Direction(s) {
	case DirectionOutbound, DirectionInbound:
		return Direction(s), nil
	default:
		return "", fmt.Errorf("invalid direction: %q", s)
	}
}

// RouteKey identifies one fleet on one route. Each key owns its own latch.
type RouteKey string

// NewRouteKey builds the latch key for fleetName shuttling home <-> target
func NewRouteKey(fleetName string, home, target shared.Coordinates) RouteKey {
	return RouteKey(fmt.Sprintf("%s|%s->%s", fleetName, home, target))
}

// FleetName returns the fleet part of the key
func (k RouteKey) FleetName() string {
	name, _, _ := strings.Cut(string(k), "|")
	return name
}

// LatchStore persists the direction latch per route
type LatchStore interface {
	// Get returns the route's direction, InitialDirection if never set
	Get(ctx context.Context, key RouteKey) (Direction, error)

	// Set records the route's direction
	Set(ctx context.Context, key RouteKey, direction Direction) error
}

// MemoryLatchStore keeps latches in process memory
type MemoryLatchStore struct {
	mu      sync.RWMutex
	latches map[RouteKey]Direction
}

func NewMemoryLatchStore() *MemoryLatchStore {
	return &MemoryLatchStore{latches: make(map[RouteKey]Direction)}
}

func (s *MemoryLatchStore) Get(_ context.Context, key RouteKey) (Direction, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if d, ok := s.latches[key]; ok {
		return d, nil
	}
	return InitialDirection, nil
}

func (s *MemoryLatchStore) Set(_ context.Context, key RouteKey, direction Direction) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.latches[key] = direction
	return nil
}
