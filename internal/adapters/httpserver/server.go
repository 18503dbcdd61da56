package httpserver

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/andrescamacho/basedbot-go/internal/application/common"
	"github.com/andrescamacho/basedbot-go/internal/application/fleet"
)

// StatusSource exposes the last known status of every fleet
type StatusSource interface {
	Snapshot() []fleet.FleetStatus
	Get(fleetName string) (fleet.FleetStatus, bool)
}

// HealthFunc reports component health; a non-nil error marks the bot degraded
type HealthFunc func() error

// Options configures the status server
type Options struct {
	Address     string
	MetricsPath string
	Registry    *prometheus.Registry // nil disables /metrics
	Health      map[string]HealthFunc
}

// Server serves the bot status endpoints
type Server struct {
	httpServer *http.Server
	router     *mux.Router
	board      StatusSource
	health     map[string]HealthFunc
}

func NewServer(opts Options, board StatusSource) *Server {
	s := &Server{
		router: mux.NewRouter(),
		board:  board,
		health: opts.Health,
	}

	s.router.HandleFunc("/healthz", s.handleHealth).Methods(http.MethodGet)
	s.router.HandleFunc("/fleets", s.handleFleets).Methods(http.MethodGet)
	s.router.HandleFunc("/fleets/{name}", s.handleFleet).Methods(http.MethodGet)

	if opts.Registry != nil {
		path := opts.MetricsPath
		if path == "" {
			path = "/metrics"
		}
		s.router.Handle(path, promhttp.HandlerFor(opts.Registry, promhttp.HandlerOpts{})).Methods(http.MethodGet)
	}

	s.httpServer = &http.Server{
		Addr:              opts.Address,
		Handler:           s.router,
		ReadHeaderTimeout: 5 * time.Second,
	}
	return s
}

// Handler returns the router, for tests and embedding
func (s *Server) Handler() http.Handler {
	return s.router
}

// Run serves until ctx is done, then shuts down within shutdownTimeout
func (s *Server) Run(ctx context.Context, shutdownTimeout time.Duration) error {
	logger := common.LoggerFromContext(ctx)
	errCh := make(chan error, 1)

	go func() {
		logger.Log(common.LevelInfo, fmt.Sprintf("Status server listening on %s", s.httpServer.Addr), nil)
		if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err, ok := <-errCh:
		if ok {
			return fmt.Errorf("status server failed: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := s.httpServer.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("status server shutdown: %w", err)
	}
	return nil
}

type healthResponse struct {
	Status     string            `json:"status"`
	Components map[string]string `json:"components,omitempty"`
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	resp := healthResponse{Status: "ok"}
	code := http.StatusOK

	if len(s.health) > 0 {
		resp.Components = make(map[string]string, len(s.health))
		for name, check := range s.health {
			if err := check(); err != nil {
				resp.Components[name] = err.Error()
				resp.Status = "degraded"
				code = http.StatusServiceUnavailable
				continue
			}
			resp.Components[name] = "ok"
		}
	}

	writeJSON(w, code, resp)
}

func (s *Server) handleFleets(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.board.Snapshot())
}

func (s *Server) handleFleet(w http.ResponseWriter, r *http.Request) {
	name := mux.Vars(r)["name"]
	status, ok := s.board.Get(name)
	if !ok {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": fmt.Sprintf("fleet %s has not been observed", name)})
		return
	}
	writeJSON(w, http.StatusOK, status)
}

func writeJSON(w http.ResponseWriter, code int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(body)
}
