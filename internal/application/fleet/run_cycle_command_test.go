package fleet_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/andrescamacho/basedbot-go/internal/application/common"
	"github.com/andrescamacho/basedbot-go/internal/application/fleet"
	"github.com/andrescamacho/basedbot-go/internal/application/mediator"
	"github.com/andrescamacho/basedbot-go/internal/application/strategy"
	"github.com/andrescamacho/basedbot-go/internal/application/worldmap"
	"github.com/andrescamacho/basedbot-go/internal/domain/shared"
	domainTransport "github.com/andrescamacho/basedbot-go/internal/domain/transport"
	"github.com/andrescamacho/basedbot-go/test/helpers"
)

type cycleFixture struct {
	ctx     context.Context
	gateway *helpers.MockGameGateway
	actions *helpers.MockFleetActions
	source  *helpers.MockWorldSource
	board   *fleet.StatusBoard
	logger  *helpers.RecordingLogger
	handler *fleet.RunCycleHandler
}

func newCycleFixture(routes ...fleet.RouteSpec) *cycleFixture {
	f := &cycleFixture{
		gateway: helpers.NewMockGameGateway(),
		actions: helpers.NewMockFleetActions(),
		source:  helpers.TestWorldSource(),
		board:   fleet.NewStatusBoard(),
		logger:  helpers.NewRecordingLogger(),
	}
	f.ctx = common.WithLogger(context.Background(), f.logger)

	builder := fleet.NewRouteBuilder(string(f.gateway.Player.ProfileKey), routes, fleet.RouteBuilderDeps{
		Games:    f.gateway,
		Resolver: f.gateway,
		Actions:  f.actions,
		Balances: f.actions,
		Latches:  domainTransport.NewMemoryLatchStore(),
		Clock:    shared.NewMockClock(time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)),
	})
	f.handler = fleet.NewRunCycleHandler(worldmap.NewService(f.source), f.gateway, builder, f.board, nil, 2)
	return f
}

func (f *cycleFixture) run(t *testing.T) *fleet.RunCycleResponse {
	t.Helper()
	resp, err := f.handler.Handle(f.ctx, &fleet.RunCycleCommand{ProfileKey: string(f.gateway.Player.ProfileKey)})
	require.NoError(t, err)
	return resp.(*fleet.RunCycleResponse)
}

func haulRoute(name string) fleet.RouteSpec {
	return fleet.RouteSpec{
		Fleet:     name,
		Goal:      fleet.GoalTransport,
		Home:      helpers.HomeSector,
		Target:    helpers.TargetSector,
		Resources: []shared.EntityID{helpers.OreMint},
	}
}

func TestRunCycle_TicksEveryConfiguredFleet(t *testing.T) {
	f := newCycleFixture(haulRoute("alpha"), haulRoute("bravo"))
	f.gateway.SetFleets(
		helpers.NewFleet("alpha").IdleAt(helpers.TargetSector).Build(t),
		helpers.NewFleet("bravo").IdleAt(helpers.HomeSector).Build(t),
		helpers.NewFleet("unmanaged").IdleAt(helpers.HomeSector).Build(t),
	)

	resp := f.run(t)

	assert.Equal(t, 3, resp.Observed)
	assert.Equal(t, 2, resp.Ticked)
	assert.Equal(t, 0, resp.Failures)
	assert.Len(t, f.actions.CallsOf("move"), 2)
	assert.NotEmpty(t, resp.CycleID)

	status, ok := f.board.Get("alpha")
	require.True(t, ok)
	assert.Equal(t, string(strategy.ReasonReturnHome), status.Reason)
	assert.Equal(t, []string{"move"}, status.Actions)
	assert.Equal(t, "Idle", status.State)
	assert.Equal(t, resp.CycleID, status.CycleID)

	_, ok = f.board.Get("unmanaged")
	assert.False(t, ok)
}

func TestRunCycle_FailingFleetDoesNotAbortOthers(t *testing.T) {
	f := newCycleFixture(haulRoute("alpha"), haulRoute("bravo"))
	f.actions.FailOn("dock", errors.New("transaction rejected"))
	f.gateway.SetFleets(
		helpers.NewFleet("alpha").IdleAt(helpers.HomeSector).WithFuel(1).Build(t),
		helpers.NewFleet("bravo").IdleAt(helpers.TargetSector).Build(t),
	)

	resp := f.run(t)

	assert.Equal(t, 2, resp.Ticked)
	assert.Equal(t, 1, resp.Failures)

	alpha, _ := f.board.Get("alpha")
	assert.Contains(t, alpha.Error, "transaction rejected")
	bravo, _ := f.board.Get("bravo")
	assert.Empty(t, bravo.Error)
	assert.True(t, f.logger.Contains(common.LevelError, "alpha tick failed"))
}

func TestRunCycle_WarnsAboutConfiguredFleetsNotObserved(t *testing.T) {
	f := newCycleFixture(haulRoute("ghost"))

	resp := f.run(t)

	assert.Equal(t, 0, resp.Ticked)
	assert.True(t, f.logger.Contains(common.LevelWarning, "Configured fleet ghost was not found"))
}

func TestRunCycle_WorldLoadFailureFailsCycle(t *testing.T) {
	f := newCycleFixture(haulRoute("alpha"))
	f.source.Err = errors.New("rpc down")

	_, err := f.handler.Handle(f.ctx, &fleet.RunCycleCommand{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "rpc down")
}

func TestRunCycle_ListFailureFailsCycle(t *testing.T) {
	f := newCycleFixture(haulRoute("alpha"))
	f.gateway.ListErr = errors.New("gateway unavailable")

	_, err := f.handler.Handle(f.ctx, &fleet.RunCycleCommand{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "gateway unavailable")
}

func TestRunCycle_InvalidRouteFailsBuild(t *testing.T) {
	f := newCycleFixture(fleet.RouteSpec{Fleet: "alpha", Goal: "salvage"})

	_, err := f.handler.Handle(f.ctx, &fleet.RunCycleCommand{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), `unknown goal "salvage"`)
}

func TestRunCycle_MineRouteStartsMining(t *testing.T) {
	f := newCycleFixture(fleet.RouteSpec{
		Fleet:     "digger",
		Goal:      fleet.GoalMine,
		Target:    helpers.TargetSector,
		Resources: []shared.EntityID{helpers.OreMint},
	})
	f.gateway.SetFleets(helpers.NewFleet("digger").IdleAt(helpers.TargetSector).Build(t))

	resp := f.run(t)

	require.Len(t, resp.Results, 1)
	assert.Equal(t, "mine", resp.Results[0].Strategy)
	assert.Len(t, f.actions.CallsOf("start_mining"), 1)
}

func TestRunCycle_InvalidRequestType(t *testing.T) {
	f := newCycleFixture()
	_, err := f.handler.Handle(f.ctx, "not a command")
	assert.Error(t, err)
}

func TestPoller_RunsRequestedCycles(t *testing.T) {
	f := newCycleFixture(haulRoute("alpha"))
	f.gateway.SetFleets(helpers.NewFleet("alpha").IdleAt(helpers.TargetSector).Build(t))

	m := mediator.NewMediator()
	require.NoError(t, mediator.RegisterHandler[*fleet.RunCycleCommand](m, f.handler))

	poller := fleet.NewPoller(m, string(f.gateway.Player.ProfileKey), time.Millisecond)
	require.NoError(t, poller.Run(f.ctx, 3))

	assert.Len(t, f.actions.CallsOf("move"), 3)
}

func TestPoller_StopsOnContextCancel(t *testing.T) {
	f := newCycleFixture()
	m := mediator.NewMediator()
	require.NoError(t, mediator.RegisterHandler[*fleet.RunCycleCommand](m, f.handler))

	ctx, cancel := context.WithCancel(f.ctx)
	cancel()

	err := fleet.NewPoller(m, "", time.Hour).Run(ctx, 0)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestPoller_FailedCycleIsLoggedAndPollingContinues(t *testing.T) {
	f := newCycleFixture()
	f.source.Err = errors.New("rpc down")
	m := mediator.NewMediator()
	require.NoError(t, mediator.RegisterHandler[*fleet.RunCycleCommand](m, f.handler))

	require.NoError(t, fleet.NewPoller(m, "", time.Millisecond).Run(f.ctx, 2))

	assert.True(t, f.logger.Contains(common.LevelError, "Cycle failed"))
	assert.Equal(t, 8, f.source.Fetches())
}

type memoryHistory struct {
	records []common.CycleRecord
}

func (h *memoryHistory) Record(_ context.Context, r common.CycleRecord) error {
	h.records = append(h.records, r)
	return nil
}

func (h *memoryHistory) Recent(_ context.Context, _ string, _ int) ([]common.CycleRecord, error) {
	return h.records, nil
}

func TestRunCycle_RecordsHistory(t *testing.T) {
	f := newCycleFixture(haulRoute("alpha"))
	f.gateway.SetFleets(helpers.NewFleet("alpha").IdleAt(helpers.TargetSector).Build(t))
	history := &memoryHistory{}
	f.handler.WithHistory(history)

	resp := f.run(t)

	require.Len(t, history.records, 1)
	record := history.records[0]
	assert.Equal(t, resp.CycleID, record.CycleID)
	assert.Equal(t, string(f.gateway.Player.ProfileKey), record.ProfileKey)
	assert.Equal(t, 1, record.Observed)
	assert.Equal(t, 1, record.Ticked)
	assert.Equal(t, 0, record.Failures)
}
