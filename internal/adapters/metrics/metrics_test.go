package metrics

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/andrescamacho/basedbot-go/internal/application/mediator"
)

type sampleCommand struct{}

// value reads the current value of a counter or gauge
func value(t *testing.T, metric prometheus.Metric) float64 {
	t.Helper()
	m := &dto.Metric{}
	require.NoError(t, metric.Write(m))
	if m.Counter != nil {
		return m.GetCounter().GetValue()
	}
	return m.GetGauge().GetValue()
}

func TestFleetMetricsCollector_RecordDecision(t *testing.T) {
	c := NewFleetMetricsCollector(nil)

	c.RecordDecision("hauler", "transport", "load_cargo", []string{"load_cargo", "load_cargo", "undock"}, false)
	c.RecordDecision("hauler", "transport", "refuel", []string{"load_cargo"}, true)

	assert.Equal(t, 1.0, value(t, c.decisionsTotal.WithLabelValues("hauler", "transport", "load_cargo", "success")))
	assert.Equal(t, 1.0, value(t, c.decisionsTotal.WithLabelValues("hauler", "transport", "refuel", "error")))
	assert.Equal(t, 3.0, value(t, c.actionsTotal.WithLabelValues("hauler", "load_cargo")))
	assert.Equal(t, 1.0, value(t, c.actionsTotal.WithLabelValues("hauler", "undock")))
}

func TestFleetMetricsCollector_RecordCycleStatus(t *testing.T) {
	c := NewFleetMetricsCollector(nil)

	c.RecordCycle(time.Second, 3, 0)
	c.RecordCycle(time.Second, 3, 1)
	c.RecordCycle(time.Second, 3, 3)

	assert.Equal(t, 1.0, value(t, c.cyclesTotal.WithLabelValues("success")))
	assert.Equal(t, 1.0, value(t, c.cyclesTotal.WithLabelValues("partial")))
	assert.Equal(t, 1.0, value(t, c.cyclesTotal.WithLabelValues("error")))
	assert.Equal(t, 3.0, value(t, c.fleetFailures))
}

func TestFleetMetricsCollector_UpdateFleetStates(t *testing.T) {
	c := NewFleetMetricsCollector(func() map[string]string {
		return map[string]string{"a": "Idle", "b": "Idle", "c": "MoveWarp"}
	})

	c.updateFleetStates()

	assert.Equal(t, 2.0, value(t, c.fleetsByState.WithLabelValues("Idle")))
	assert.Equal(t, 1.0, value(t, c.fleetsByState.WithLabelValues("MoveWarp")))
}

func TestFleetMetricsCollector_RegisterWithoutRegistryIsNoop(t *testing.T) {
	Registry = nil
	assert.NoError(t, NewFleetMetricsCollector(nil).Register())
}

func TestFleetMetricsCollector_RegistersOnGlobalRegistry(t *testing.T) {
	InitRegistry()
	defer func() { Registry = nil }()

	require.NoError(t, NewFleetMetricsCollector(nil).Register())
	require.NoError(t, NewGatewayMetricsCollector().Register())
	require.NoError(t, NewCommandMetricsCollector().Register())
	assert.True(t, IsEnabled())
}

func TestGlobalRecordersWithoutCollectorDoNotPanic(t *testing.T) {
	SetGlobalFleetCollector(nil)
	assert.NotPanics(t, func() {
		RecordDecision("hauler", "transport", "arrived", nil, false)
		RecordCycle(time.Second, 1, 0)
	})
}

func TestGatewayMetricsCollector(t *testing.T) {
	c := NewGatewayMetricsCollector()

	c.RecordRequest("POST", "/fleets/dock", 200, 1.5)
	c.RecordRetry("POST", "/fleets/dock", "server_error")
	c.RecordCircuitState(true)

	assert.Equal(t, 1.0, value(t, c.requestsTotal.WithLabelValues("POST", "/fleets/dock", "200")))
	assert.Equal(t, 1.0, value(t, c.retries.WithLabelValues("POST", "/fleets/dock", "server_error")))
	assert.Equal(t, 1.0, value(t, c.circuitOpen))

	c.RecordCircuitState(false)
	assert.Equal(t, 0.0, value(t, c.circuitOpen))
}

func TestPrometheusMiddleware_RecordsOutcome(t *testing.T) {
	c := NewCommandMetricsCollector()
	mw := PrometheusMiddleware(c)

	ok := func(ctx context.Context, r mediator.Request) (mediator.Response, error) { return "ok", nil }
	fail := func(ctx context.Context, r mediator.Request) (mediator.Response, error) { return nil, errors.New("boom") }

	_, err := mw(context.Background(), &sampleCommand{}, ok)
	require.NoError(t, err)
	_, err = mw(context.Background(), &sampleCommand{}, fail)
	require.Error(t, err)

	assert.Equal(t, 1.0, value(t, c.commandsTotal.WithLabelValues("sampleCommand", "success")))
	assert.Equal(t, 1.0, value(t, c.commandsTotal.WithLabelValues("sampleCommand", "error")))
	assert.Equal(t, 0.0, value(t, c.inFlight.WithLabelValues("sampleCommand")))
}

func TestPrometheusMiddleware_NilCollectorPassesThrough(t *testing.T) {
	mw := PrometheusMiddleware(nil)
	resp, err := mw(context.Background(), &sampleCommand{}, func(ctx context.Context, r mediator.Request) (mediator.Response, error) {
		return "ok", nil
	})
	require.NoError(t, err)
	assert.Equal(t, "ok", resp)
}

func TestExtractCommandName(t *testing.T) {
	assert.Equal(t, "sampleCommand", extractCommandName(&sampleCommand{}))
	assert.Equal(t, "UnknownCommand", extractCommandName(nil))
}
