package fleet

import (
	"sort"
	"sync"
	"time"
)

// FleetStatus is the outcome of the last tick of one fleet
type FleetStatus struct {
	Fleet     string    `json:"fleet"`
	Strategy  string    `json:"strategy"`
	State     string    `json:"state"`
	Location  string    `json:"location"`
	Reason    string    `json:"reason"`
	Actions   []string  `json:"actions"`
	Error     string    `json:"error,omitempty"`
	CycleID   string    `json:"cycle_id"`
	TickID    string    `json:"tick_id"`
	UpdatedAt time.Time `json:"updated_at"`
}

// StatusBoard keeps the last FleetStatus per fleet. Safe for concurrent use.
type StatusBoard struct {
	mu       sync.RWMutex
	statuses map[string]FleetStatus
}

func NewStatusBoard() *StatusBoard {
	return &StatusBoard{statuses: make(map[string]FleetStatus)}
}

func (b *StatusBoard) Update(status FleetStatus) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.statuses[status.Fleet] = status
}

func (b *StatusBoard) Get(fleetName string) (FleetStatus, bool) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	s, ok := b.statuses[fleetName]
	return s, ok
}

// Snapshot returns every status sorted by fleet name
func (b *StatusBoard) Snapshot() []FleetStatus {
	b.mu.RLock()
	defer b.mu.RUnlock()

	out := make([]FleetStatus, 0, len(b.statuses))
	for _, s := range b.statuses {
		out = append(out, s)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Fleet < out[j].Fleet })
	return out
}

// States maps fleet name to last observed state name
func (b *StatusBoard) States() map[string]string {
	b.mu.RLock()
	defer b.mu.RUnlock()

	out := make(map[string]string, len(b.statuses))
	for name, s := range b.statuses {
		out[name] = s.State
	}
	return out
}
