package cli

import (
	"context"
	"fmt"
	"io"
	"os"

	"gorm.io/gorm"

	"github.com/andrescamacho/basedbot-go/internal/adapters/api"
	"github.com/andrescamacho/basedbot-go/internal/adapters/logging"
	"github.com/andrescamacho/basedbot-go/internal/adapters/metrics"
	"github.com/andrescamacho/basedbot-go/internal/adapters/persistence"
	"github.com/andrescamacho/basedbot-go/internal/application/common"
	"github.com/andrescamacho/basedbot-go/internal/application/fleet"
	"github.com/andrescamacho/basedbot-go/internal/application/mediator"
	"github.com/andrescamacho/basedbot-go/internal/application/worldmap"
	"github.com/andrescamacho/basedbot-go/internal/infrastructure/config"
	"github.com/andrescamacho/basedbot-go/internal/infrastructure/database"
)

// app holds the wired components shared by the commands
type app struct {
	cfg      *config.Config
	db       *gorm.DB
	gateway  *api.GatewayClient
	mediator mediator.Mediator
	board    *fleet.StatusBoard
	logger   *logging.FleetLogger
	logFile  io.Closer

	fleetMetrics *metrics.FleetMetricsCollector
}

type appOptions struct {
	// withBot registers the cycle handler; needs a profile and routes
	withBot bool
	// withMetrics creates the Prometheus registry and collectors
	withMetrics bool
}

func loadConfig() (*config.Config, error) {
	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	if verbose {
		cfg.Logging.Level = "debug"
	}
	return cfg, nil
}

func newApp(cfg *config.Config, opts appOptions) (*app, error) {
	a := &app{
		cfg:      cfg,
		mediator: mediator.NewMediator(),
		board:    fleet.NewStatusBoard(),
	}

	db, err := database.NewConnection(&cfg.Database)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	if err := database.AutoMigrate(db); err != nil {
		_ = database.Close(db)
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}
	a.db = db

	if err := a.initLogger(); err != nil {
		a.Close()
		return nil, err
	}

	var recorder api.RequestRecorder
	if opts.withMetrics && cfg.Metrics.Enabled {
		r, err := a.initMetrics()
		if err != nil {
			a.Close()
			return nil, err
		}
		recorder = r
	}

	a.gateway = api.NewGatewayClient(api.ClientConfig{
		BaseURL:            cfg.Gateway.BaseURL,
		APIKey:             cfg.Gateway.APIKey,
		Timeout:            cfg.Gateway.Timeout,
		MaxRetries:         cfg.Gateway.Retry.MaxAttempts,
		BackoffBase:        cfg.Gateway.Retry.BackoffBase,
		RateLimit:          float64(cfg.Gateway.RateLimit.Requests),
		RateBurst:          cfg.Gateway.RateLimit.Burst,
		CircuitMaxFailures: cfg.Gateway.CircuitBreaker.MaxFailures,
		CircuitTimeout:     cfg.Gateway.CircuitBreaker.Cooldown,
	}, nil, recorder)

	worlds := worldmap.NewService(a.gateway)
	if err := mediator.RegisterHandler[*worldmap.ListMineablesQuery](a.mediator, worldmap.NewListMineablesHandler(worlds)); err != nil {
		a.Close()
		return nil, err
	}

	if opts.withBot {
		if err := a.registerBot(worlds); err != nil {
			a.Close()
			return nil, err
		}
	}

	return a, nil
}

func (a *app) initLogger() error {
	var w io.Writer
	switch a.cfg.Logging.Output {
	case "stderr":
		w = os.Stderr
	case "file":
		f, err := os.OpenFile(a.cfg.Logging.FilePath, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
		if err != nil {
			return fmt.Errorf("failed to open log file: %w", err)
		}
		w = f
		a.logFile = f
	default:
		w = os.Stdout
	}

	var repo persistence.FleetLogRepository
	if a.cfg.Logging.Persist {
		repo = persistence.NewGormFleetLogRepository(a.db, nil)
	}

	a.logger = logging.NewFleetLogger(logging.Options{
		Level:  a.cfg.Logging.Level,
		Format: a.cfg.Logging.Format,
		Writer: w,
	}, a.cfg.Bot.ProfileKey, repo)
	return nil
}

func (a *app) initMetrics() (api.RequestRecorder, error) {
	metrics.InitRegistry()

	commandCollector := metrics.NewCommandMetricsCollector()
	if err := commandCollector.Register(); err != nil {
		return nil, fmt.Errorf("failed to register command metrics: %w", err)
	}
	a.mediator.RegisterMiddleware(metrics.PrometheusMiddleware(commandCollector))

	a.fleetMetrics = metrics.NewFleetMetricsCollector(a.board.States)
	if err := a.fleetMetrics.Register(); err != nil {
		return nil, fmt.Errorf("failed to register fleet metrics: %w", err)
	}
	metrics.SetGlobalFleetCollector(a.fleetMetrics)

	gatewayCollector := metrics.NewGatewayMetricsCollector()
	if err := gatewayCollector.Register(); err != nil {
		return nil, fmt.Errorf("failed to register gateway metrics: %w", err)
	}
	return gatewayCollector, nil
}

func (a *app) registerBot(worlds *worldmap.Service) error {
	routes, err := routeSpecs(a.cfg.Bot.Routes)
	if err != nil {
		return err
	}

	builder := fleet.NewRouteBuilder(a.cfg.Bot.ProfileKey, routes, fleet.RouteBuilderDeps{
		Games:    a.gateway,
		Resolver: a.gateway,
		Actions:  a.gateway,
		Balances: a.gateway,
		Latches:  persistence.NewGormLatchStore(a.db, a.cfg.Bot.ProfileKey, nil),
	})

	handler := fleet.NewRunCycleHandler(worlds, a.gateway, builder, a.board, nil, a.cfg.Bot.MaxConcurrency).
		WithHistory(persistence.NewGormCycleRunRepository(a.db))
	return mediator.RegisterHandler[*fleet.RunCycleCommand](a.mediator, handler)
}

// context returns ctx carrying the app logger
func (a *app) context(ctx context.Context) context.Context {
	return common.WithLogger(ctx, a.logger)
}

func (a *app) Close() {
	if a.fleetMetrics != nil {
		a.fleetMetrics.Stop()
	}
	if a.db != nil {
		_ = database.Close(a.db)
	}
	if a.logFile != nil {
		_ = a.logFile.Close()
	}
}
