package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/andrescamacho/basedbot-go/internal/domain/fleet"
	"github.com/andrescamacho/basedbot-go/internal/domain/player"
	"github.com/andrescamacho/basedbot-go/internal/domain/shared"
	"github.com/andrescamacho/basedbot-go/internal/domain/world"
)

type recorderStub struct {
	requests int
	retries  []string
	circuit  []bool
}

func (r *recorderStub) RecordRequest(method, endpoint string, statusCode int, duration float64) {
	r.requests++
}
func (r *recorderStub) RecordRetry(method, endpoint, reason string) {
	r.retries = append(r.retries, reason)
}
func (r *recorderStub) RecordRateLimitWait(method, endpoint string, duration float64) {}
func (r *recorderStub) RecordCircuitState(open bool) {
	r.circuit = append(r.circuit, open)
}

func newTestClient(t *testing.T, handler http.HandlerFunc) (*GatewayClient, *recorderStub) {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	recorder := &recorderStub{}
	clock := shared.NewMockClock(time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC))
	client := NewGatewayClient(ClientConfig{
		BaseURL:            server.URL,
		APIKey:             "secret",
		MaxRetries:         2,
		BackoffBase:        10 * time.Millisecond,
		RateLimit:          1000,
		RateBurst:          100,
		CircuitMaxFailures: 2,
		CircuitTimeout:     time.Minute,
	}, clock, recorder)
	return client, recorder
}

func writeData(t *testing.T, w http.ResponseWriter, data interface{}) {
	t.Helper()
	w.Header().Set("Content-Type", "application/json")
	require.NoError(t, json.NewEncoder(w).Encode(map[string]interface{}{"data": data}))
}

func TestListStarbases_ConvertsSectors(t *testing.T) {
	client, recorder := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/starbases", r.URL.Path)
		assert.Equal(t, "Bearer secret", r.Header.Get("Authorization"))
		writeData(t, w, []StarbaseDTO{
			{Key: "sb-1", Name: "MRZ-1", Sector: [2]int64{0, -39}},
			{Key: "sb-2", Name: "MRZ-2", Sector: [2]int64{40, 30}},
		})
	})

	starbases, err := client.ListStarbases(t.Context())

	require.NoError(t, err)
	assert.Equal(t, []world.Starbase{
		{Key: "sb-1", Name: "MRZ-1", Sector: shared.NewCoordinates(0, -39)},
		{Key: "sb-2", Name: "MRZ-2", Sector: shared.NewCoordinates(40, 30)},
	}, starbases)
	assert.Equal(t, 1, recorder.requests)
}

func TestRequest_RetriesServerErrorsOnReads(t *testing.T) {
	var calls int32
	client, recorder := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if atomic.AddInt32(&calls, 1) < 3 {
			w.WriteHeader(http.StatusBadGateway)
			return
		}
		writeData(t, w, GameDTO{Key: "game-1"})
	})

	game, err := client.GetGame(t.Context())

	require.NoError(t, err)
	assert.Equal(t, shared.EntityID("game-1"), game.Key)
	assert.Equal(t, int32(3), atomic.LoadInt32(&calls))
	assert.Equal(t, []string{"server_error", "server_error"}, recorder.retries)
}

func TestRequest_GivesUpAfterMaxRetries(t *testing.T) {
	var calls int32
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		w.Header().Set("Retry-After", "1")
		w.WriteHeader(http.StatusTooManyRequests)
	})

	_, err := client.ListPlanets(t.Context())

	require.Error(t, err)
	assert.Contains(t, err.Error(), "max retries exceeded")
	assert.Contains(t, err.Error(), "rate limited")
	assert.Equal(t, int32(3), atomic.LoadInt32(&calls))
}

func TestRequest_ClientErrorIsNotRetried(t *testing.T) {
	var calls int32
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte(`{"error":{"code":"fleet_not_found","message":"no such fleet"}}`))
	})

	_, err := client.GetFleet(t.Context(), "profile-1", "Ghost")

	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrNotFound))
	assert.Contains(t, err.Error(), "fleet_not_found: no such fleet")
	assert.Equal(t, int32(1), atomic.LoadInt32(&calls))
}

func TestActions_ServerErrorIsNotRetried(t *testing.T) {
	var calls int32
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		w.WriteHeader(http.StatusInternalServerError)
	})
	f := testFleet(t)

	err := client.Undock(t.Context(), f, shared.NewCoordinates(0, -39), testPlayer())

	require.Error(t, err)
	var apiErr *APIError
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, http.StatusInternalServerError, apiErr.StatusCode)
	assert.Equal(t, int32(1), atomic.LoadInt32(&calls))
}

func TestActions_MovePostsTargetAndMode(t *testing.T) {
	var got moveRequest
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/v1/fleets/fleet-key/move", r.URL.Path)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		writeData(t, w, ActionResultDTO{Signature: "sig"})
	})

	err := client.Move(t.Context(), testFleet(t), shared.NewCoordinates(40, 30), shared.TravelModeWarp, testPlayer())

	require.NoError(t, err)
	assert.Equal(t, moveRequest{Profile: "profile-1", Target: [2]int64{40, 30}, Mode: "warp"}, got)
}

func TestActions_LoadAndUnloadCargo(t *testing.T) {
	var paths []string
	var bodies []cargoRequest
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		var body cargoRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		paths = append(paths, r.URL.Path)
		bodies = append(bodies, body)
		writeData(t, w, ActionResultDTO{Signature: "sig"})
	})
	f := testFleet(t)

	require.NoError(t, client.LoadCargo(t.Context(), f, testPlayer(), "ore", 500))
	require.NoError(t, client.UnloadCargo(t.Context(), f, testPlayer(), "ore", 0))

	assert.Equal(t, []string{"/v1/fleets/fleet-key/cargo/load", "/v1/fleets/fleet-key/cargo/unload"}, paths)
	assert.Equal(t, 500, bodies[0].Amount)
	assert.Equal(t, 0, bodies[1].Amount)
}

func TestTokenBalance(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/token-accounts/hold-1/balances/ore", r.URL.Path)
		writeData(t, w, BalanceDTO{Owner: "hold-1", Mint: "ore", Amount: 640})
	})

	amount, err := client.TokenBalance(t.Context(), "hold-1", "ore")

	require.NoError(t, err)
	assert.Equal(t, 640, amount)
}

func TestListFleets_DecodesStateVariants(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/profiles/profile-1/fleets", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"data":[
			{"key":"f1","name":"Hauler","location":[0,-39],
			 "state":{"type":"StarbaseLoadingBay","data":{"starbase":"sb-1"}},
			 "cargo":{"ore":12},"fuel":100,"ammo":5,
			 "cargo_stats":{"cargo_capacity":1000,"fuel_capacity":1000,"ammo_capacity":100},
			 "cargo_hold":"h1","fuel_tank":"t1","ammo_bank":"a1"},
			{"key":"f2","name":"Drifter","location":[3,3],
			 "state":{"type":"MoveWarp","data":{"from_sector":[0,0],"to_sector":[3,3],"warp_finish":1709294400}},
			 "cargo_stats":{"cargo_capacity":1,"fuel_capacity":1,"ammo_capacity":1}},
			{"key":"f3","name":"Oddity","location":[1,1],"state":{"type":"Teleport"},
			 "cargo_stats":{"cargo_capacity":1,"fuel_capacity":1,"ammo_capacity":1}}
		]}`))
	})

	fleets, err := client.ListFleets(t.Context(), "profile-1")

	require.NoError(t, err)
	require.Len(t, fleets, 3)
	assert.Equal(t, fleet.StarbaseLoadingBay{Starbase: "sb-1"}, fleets[0].State())
	assert.Equal(t, 12, fleets[0].CargoLevels().Units("ore"))
	assert.Equal(t, shared.EntityID("t1"), fleets[0].Holds().FuelTank)

	warp, ok := fleets[1].State().(fleet.MoveWarp)
	require.True(t, ok)
	assert.Equal(t, time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC), warp.WarpFinish)

	assert.Equal(t, fleet.Unknown{Name: "Teleport"}, fleets[2].State())
}

func TestCircuitOpensAfterRepeatedFailures(t *testing.T) {
	var calls int32
	client, recorder := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		w.WriteHeader(http.StatusServiceUnavailable)
	})

	_, err := client.ListResources(t.Context())
	require.Error(t, err)
	_, err = client.ListResources(t.Context())
	require.Error(t, err)
	callsBeforeOpen := atomic.LoadInt32(&calls)

	_, err = client.ListResources(t.Context())

	assert.True(t, errors.Is(err, ErrCircuitOpen))
	assert.Equal(t, callsBeforeOpen, atomic.LoadInt32(&calls))
	assert.Equal(t, CircuitOpen, client.Breaker().State())
	assert.Equal(t, []bool{true}, recorder.circuit)
}

func testPlayer() *player.Player {
	return player.NewPlayer("profile-1", "faction-1", "Tester", 0)
}

func testFleet(t *testing.T) *fleet.FleetInfo {
	t.Helper()
	f, err := fleet.NewFleetInfo(
		"fleet-key", "Hauler", shared.NewCoordinates(0, -39),
		fleet.StarbaseLoadingBay{Starbase: "sb-1"},
		fleet.CargoLevels{}, fleet.CargoStats{CargoCapacity: 1000, FuelCapacity: 1000, AmmoCapacity: 1000},
		fleet.Holds{CargoHold: "h1", FuelTank: "t1", AmmoBank: "a1"},
	)
	require.NoError(t, err)
	return f
}
