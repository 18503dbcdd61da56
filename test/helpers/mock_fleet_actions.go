package helpers

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/andrescamacho/basedbot-go/internal/domain/fleet"
	"github.com/andrescamacho/basedbot-go/internal/domain/player"
	"github.com/andrescamacho/basedbot-go/internal/domain/shared"
	"github.com/andrescamacho/basedbot-go/internal/domain/world"
)

// RecordedCall is one instruction captured by MockFleetActions
type RecordedCall struct {
	Op       string
	Fleet    string
	Target   shared.Coordinates
	Mode     shared.TravelMode
	Mint     shared.EntityID
	Amount   int
	Resource shared.EntityID
}

func (c RecordedCall) String() string {
	switch c.Op {
	case "move":
		return fmt.Sprintf("move(%s,%s)", c.Target, c.Mode)
	case "dock", "undock":
		return fmt.Sprintf("%s(%s)", c.Op, c.Target)
	case "load", "unload":
		return fmt.Sprintf("%s(%s,%d)", c.Op, c.Mint, c.Amount)
	case "start_mining":
		return fmt.Sprintf("start_mining(%s)", c.Resource)
	}
	return c.Op
}

// MockFleetActions is a recording test double for common.FleetActions and
// common.BalanceReader. Calls may arrive concurrently.
type MockFleetActions struct {
	mu sync.Mutex

	calls    []RecordedCall
	balances map[shared.EntityID]map[shared.EntityID]int // hold -> mint -> amount

	// Error injection keyed by op name ("dock", "load", ...)
	errors map[string]error
	// Error injection for transfers of a specific mint
	mintErrors map[shared.EntityID]error
	balanceErr error
}

// NewMockFleetActions creates a new recording fleet action double
func NewMockFleetActions() *MockFleetActions {
	return &MockFleetActions{
		balances:   make(map[shared.EntityID]map[shared.EntityID]int),
		errors:     make(map[string]error),
		mintErrors: make(map[shared.EntityID]error),
	}
}

// SetBalance sets the amount of mint held in hold
func (m *MockFleetActions) SetBalance(hold, mint shared.EntityID, amount int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.balances[hold] == nil {
		m.balances[hold] = make(map[shared.EntityID]int)
	}
	m.balances[hold][mint] = amount
}

// FailOn makes every call of op return err
func (m *MockFleetActions) FailOn(op string, err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.errors[op] = err
}

// FailTransferOf makes load and unload of mint return err
func (m *MockFleetActions) FailTransferOf(mint shared.EntityID, err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.mintErrors[mint] = err
}

// FailBalances makes every balance query return err
func (m *MockFleetActions) FailBalances(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.balanceErr = err
}

// Calls returns a copy of every recorded call in arrival order
func (m *MockFleetActions) Calls() []RecordedCall {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]RecordedCall, len(m.calls))
	copy(out, m.calls)
	return out
}

// CallStrings renders the recorded calls, sorting the concurrent transfers
// so assertions do not depend on goroutine scheduling
func (m *MockFleetActions) CallStrings() []string {
	calls := m.Calls()
	out := make([]string, len(calls))
	for i, c := range calls {
		out[i] = c.String()
	}
	sortTransferRuns(out)
	return out
}

// CallsOf returns recorded calls of a single op
func (m *MockFleetActions) CallsOf(op string) []RecordedCall {
	var out []RecordedCall
	for _, c := range m.Calls() {
		if c.Op == op {
			out = append(out, c)
		}
	}
	return out
}

// Reset clears recorded calls but keeps balances and injected errors
func (m *MockFleetActions) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls = nil
}

func (m *MockFleetActions) record(call RecordedCall) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls = append(m.calls, call)
	if err, ok := m.mintErrors[call.Mint]; ok && call.Mint != "" {
		return err
	}
	return m.errors[call.Op]
}

func (m *MockFleetActions) Dock(ctx context.Context, f *fleet.FleetInfo, coordinates shared.Coordinates, p *player.Player) error {
	return m.record(RecordedCall{Op: "dock", Fleet: f.Name(), Target: coordinates})
}

func (m *MockFleetActions) Undock(ctx context.Context, f *fleet.FleetInfo, coordinates shared.Coordinates, p *player.Player) error {
	return m.record(RecordedCall{Op: "undock", Fleet: f.Name(), Target: coordinates})
}

func (m *MockFleetActions) Move(ctx context.Context, f *fleet.FleetInfo, target shared.Coordinates, mode shared.TravelMode, p *player.Player) error {
	return m.record(RecordedCall{Op: "move", Fleet: f.Name(), Target: target, Mode: mode})
}

func (m *MockFleetActions) LoadCargo(ctx context.Context, f *fleet.FleetInfo, p *player.Player, mint shared.EntityID, amount int) error {
	return m.record(RecordedCall{Op: "load", Fleet: f.Name(), Mint: mint, Amount: amount})
}

func (m *MockFleetActions) UnloadCargo(ctx context.Context, f *fleet.FleetInfo, p *player.Player, mint shared.EntityID, amount int) error {
	return m.record(RecordedCall{Op: "unload", Fleet: f.Name(), Mint: mint, Amount: amount})
}

func (m *MockFleetActions) StartMining(
	ctx context.Context,
	f *fleet.FleetInfo,
	p *player.Player,
	mineable world.Mineable,
	starbasePlayer *player.StarbasePlayer,
) error {
	return m.record(RecordedCall{Op: "start_mining", Fleet: f.Name(), Resource: mineable.Resource.Key})
}

func (m *MockFleetActions) TokenBalance(ctx context.Context, hold, mint shared.EntityID) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.balanceErr != nil {
		return 0, m.balanceErr
	}
	return m.balances[hold][mint], nil
}

// sortTransferRuns sorts each maximal run of consecutive load or unload
// entries in place
func sortTransferRuns(calls []string) {
	isTransfer := func(s string) bool {
		return len(s) > 5 && (s[:5] == "load(" || (len(s) > 7 && s[:7] == "unload("))
	}
	start := -1
	for i := 0; i <= len(calls); i++ {
		if i < len(calls) && isTransfer(calls[i]) {
			if start < 0 {
				start = i
			}
			continue
		}
		if start >= 0 {
			sort.Strings(calls[start:i])
			start = -1
		}
	}
}
