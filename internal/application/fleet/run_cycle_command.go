package fleet

import (
	"context"
	"fmt"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/andrescamacho/basedbot-go/internal/adapters/metrics"
	"github.com/andrescamacho/basedbot-go/internal/application/common"
	"github.com/andrescamacho/basedbot-go/internal/application/mediator"
	"github.com/andrescamacho/basedbot-go/internal/application/strategy"
	"github.com/andrescamacho/basedbot-go/internal/application/worldmap"
	domainFleet "github.com/andrescamacho/basedbot-go/internal/domain/fleet"
	"github.com/andrescamacho/basedbot-go/internal/domain/shared"
	"github.com/andrescamacho/basedbot-go/pkg/utils"
)

// RunCycleCommand runs one tick for every fleet of the profile
type RunCycleCommand struct {
	ProfileKey string
}

// FleetResult is the outcome of one fleet's tick
type FleetResult struct {
	Fleet    string
	Strategy string
	Decision strategy.Decision
	Err      error
}

// RunCycleResponse summarises a cycle
type RunCycleResponse struct {
	CycleID  string
	Observed int // fleets returned by the gateway
	Ticked   int // fleets with a registered strategy
	Failures int
	Results  []FleetResult
	Duration time.Duration
}

// RunCycleHandler refreshes the world map, rebuilds strategies and applies
// them to every observed fleet. Fleets tick concurrently; a failing fleet is
// logged and never aborts the others.
type RunCycleHandler struct {
	worlds         *worldmap.Service
	fleets         domainFleet.FleetReader
	builder        strategy.Builder
	board          *StatusBoard
	clock          shared.Clock
	maxConcurrency int
	history        common.CycleHistory
}

// NewRunCycleHandler creates a cycle handler. maxConcurrency <= 0 means no limit.
func NewRunCycleHandler(
	worlds *worldmap.Service,
	fleets domainFleet.FleetReader,
	builder strategy.Builder,
	board *StatusBoard,
	clock shared.Clock,
	maxConcurrency int,
) *RunCycleHandler {
	if clock == nil {
		clock = shared.NewRealClock()
	}
	if board == nil {
		board = NewStatusBoard()
	}
	return &RunCycleHandler{
		worlds:         worlds,
		fleets:         fleets,
		builder:        builder,
		board:          board,
		clock:          clock,
		maxConcurrency: maxConcurrency,
	}
}

// WithHistory stores a summary of every finished cycle in history
func (h *RunCycleHandler) WithHistory(history common.CycleHistory) *RunCycleHandler {
	h.history = history
	return h
}

func (h *RunCycleHandler) Handle(ctx context.Context, request mediator.Request) (mediator.Response, error) {
	cmd, ok := request.(*RunCycleCommand)
	if !ok {
		return nil, fmt.Errorf("invalid request type")
	}

	logger := common.LoggerFromContext(ctx)
	start := h.clock.Now()
	cycleID := utils.GenerateRunID("cycle")

	worldMap, err := h.worlds.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("cycle %s: %w", cycleID, err)
	}

	registry, err := h.builder.Build(ctx, worldMap)
	if err != nil {
		return nil, fmt.Errorf("cycle %s: failed to build strategies: %w", cycleID, err)
	}

	observed, err := h.fleets.ListFleets(ctx, cmd.ProfileKey)
	if err != nil {
		return nil, fmt.Errorf("cycle %s: failed to list fleets: %w", cycleID, err)
	}

	logger.Log(common.LevelInfo, fmt.Sprintf("Cycle %s: %d fleets observed, %d strategies", cycleID, len(observed), registry.Len()), map[string]interface{}{
		"cycle_id": cycleID,
	})

	results := h.tickAll(ctx, cycleID, registry, observed)
	h.warnUnobserved(ctx, registry, observed)

	resp := &RunCycleResponse{
		CycleID:  cycleID,
		Observed: len(observed),
		Results:  results,
		Duration: h.clock.Now().Sub(start),
	}
	for _, r := range results {
		resp.Ticked++
		if r.Err != nil {
			resp.Failures++
		}
	}

	metrics.RecordCycle(resp.Duration, resp.Ticked, resp.Failures)
	if h.history != nil {
		record := common.CycleRecord{
			CycleID:    cycleID,
			ProfileKey: cmd.ProfileKey,
			StartedAt:  start,
			Duration:   resp.Duration,
			Observed:   resp.Observed,
			Ticked:     resp.Ticked,
			Failures:   resp.Failures,
		}
		if err := h.history.Record(ctx, record); err != nil {
			logger.Log(common.LevelWarning, fmt.Sprintf("Failed to record cycle %s: %v", cycleID, err), nil)
		}
	}
	logger.Log(common.LevelInfo, fmt.Sprintf("Cycle %s finished: %d ticked, %d failed", cycleID, resp.Ticked, resp.Failures), nil)

	return resp, nil
}

func (h *RunCycleHandler) tickAll(
	ctx context.Context,
	cycleID string,
	registry *strategy.Registry,
	observed []*domainFleet.FleetInfo,
) []FleetResult {
	logger := common.LoggerFromContext(ctx)
	slots := make([]*FleetResult, len(observed))

	var g errgroup.Group
	if h.maxConcurrency > 0 {
		g.SetLimit(h.maxConcurrency)
	}

	for i, f := range observed {
		s, ok := registry.Get(f.Name())
		if !ok {
			logger.Log(common.LevelDebug, fmt.Sprintf("%s has no configured goal, skipping", f.Name()), nil)
			continue
		}

		g.Go(func() error {
			fleetCtx := common.WithFleetLogger(ctx, f.Name())
			decision, err := s.Apply(fleetCtx, f)
			slots[i] = &FleetResult{Fleet: f.Name(), Strategy: s.Name(), Decision: decision, Err: err}
			h.record(fleetCtx, cycleID, f, s.Name(), decision, err)
			return nil
		})
	}
	_ = g.Wait()

	results := make([]FleetResult, 0, len(slots))
	for _, r := range slots {
		if r != nil {
			results = append(results, *r)
		}
	}
	return results
}

func (h *RunCycleHandler) record(
	ctx context.Context,
	cycleID string,
	f *domainFleet.FleetInfo,
	strategyName string,
	decision strategy.Decision,
	err error,
) {
	actions := make([]string, len(decision.Actions))
	for i, a := range decision.Actions {
		actions[i] = string(a.Kind)
	}

	tickID := utils.GenerateFleetRunID("tick", f.Name())
	status := FleetStatus{
		Fleet:     f.Name(),
		Strategy:  strategyName,
		State:     string(f.State().Type()),
		Location:  f.Location().String(),
		Reason:    string(decision.Reason),
		Actions:   actions,
		CycleID:   cycleID,
		TickID:    tickID,
		UpdatedAt: h.clock.Now(),
	}

	if err != nil {
		status.Error = err.Error()
		common.LoggerFromContext(ctx).Log(common.LevelError, fmt.Sprintf("%s tick failed: %v", f.Name(), err), map[string]interface{}{
			"fleet":    f.Name(),
			"cycle_id": cycleID,
			"tick_id":  tickID,
			"decision": decision.String(),
		})
	}

	h.board.Update(status)
	metrics.RecordDecision(f.Name(), strategyName, string(decision.Reason), actions, err != nil)
}

func (h *RunCycleHandler) warnUnobserved(ctx context.Context, registry *strategy.Registry, observed []*domainFleet.FleetInfo) {
	seen := make(map[string]bool, len(observed))
	for _, f := range observed {
		seen[f.Name()] = true
	}
	for _, name := range registry.FleetNames() {
		if !seen[name] {
			common.LoggerFromContext(ctx).Log(common.LevelWarning, fmt.Sprintf("Configured fleet %s was not found for this profile", name), nil)
		}
	}
}
