package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/andrescamacho/basedbot-go/internal/adapters/api"
	"github.com/andrescamacho/basedbot-go/internal/adapters/httpserver"
	"github.com/andrescamacho/basedbot-go/internal/adapters/metrics"
	"github.com/andrescamacho/basedbot-go/internal/application/common"
	"github.com/andrescamacho/basedbot-go/internal/application/fleet"
	"github.com/andrescamacho/basedbot-go/internal/infrastructure/config"
	"github.com/andrescamacho/basedbot-go/internal/infrastructure/pidfile"
)

// NewRunCommand creates the run command
func NewRunCommand() *cobra.Command {
	var (
		cycles int
		force  bool
	)

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Run the fleet automation loop",
		Long: `Run cycles until interrupted. Each cycle reloads the world map, reads
every fleet of the profile and applies the goal configured for it.

Examples:
  basedbot run
  basedbot run --cycles 1
  basedbot run --force`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			if err := config.ValidateForRun(cfg); err != nil {
				return err
			}

			pf := pidfile.New(cfg.Daemon.PIDFile)
			if err := acquirePIDFile(pf, force); err != nil {
				return err
			}
			defer func() { _ = pf.Release() }()

			a, err := newApp(cfg, appOptions{withBot: true, withMetrics: true})
			if err != nil {
				return err
			}
			defer a.Close()

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			return runBot(a.context(ctx), a, cycles)
		},
	}

	cmd.Flags().IntVar(&cycles, "cycles", 0, "Stop after this many cycles (0 runs until interrupted)")
	cmd.Flags().BoolVar(&force, "force", false, "Stop an already running bot first")

	return cmd
}

func acquirePIDFile(pf *pidfile.PIDFile, force bool) error {
	err := pf.Acquire()
	if err == nil || !force {
		return err
	}

	pid, sigErr := pf.Signal(syscall.SIGTERM)
	if sigErr != nil && !errors.Is(sigErr, pidfile.ErrNotRunning) {
		return sigErr
	}
	fmt.Printf("Sent SIGTERM to running bot (PID %d), waiting for it to exit...\n", pid)

	for i := 0; i < 50; i++ {
		if _, running := pf.Running(); !running {
			return pf.Acquire()
		}
		time.Sleep(200 * time.Millisecond)
	}
	return fmt.Errorf("bot (PID %d) did not exit", pid)
}

func runBot(ctx context.Context, a *app, cycles int) error {
	logger := common.LoggerFromContext(ctx)
	cfg := a.cfg

	runCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	if a.fleetMetrics != nil {
		a.fleetMetrics.Start(runCtx, cfg.Metrics.UpdateInterval)
	}

	g, gctx := errgroup.WithContext(runCtx)

	if cfg.Daemon.StatusAddress != "" {
		server := httpserver.NewServer(httpserver.Options{
			Address:     cfg.Daemon.StatusAddress,
			MetricsPath: cfg.Metrics.Path,
			Registry:    metrics.GetRegistry(),
			Health: map[string]httpserver.HealthFunc{
				"gateway": func() error {
					if a.gateway.Breaker().State() == api.CircuitOpen {
						return api.ErrCircuitOpen
					}
					return nil
				},
			},
		}, a.board)
		g.Go(func() error {
			return server.Run(gctx, cfg.Daemon.ShutdownTimeout)
		})
	}

	g.Go(func() error {
		defer cancel()
		logger.Log(common.LevelInfo, fmt.Sprintf("Starting bot for profile %s: %d routes, cycle every %s",
			cfg.Bot.ProfileKey, len(cfg.Bot.Routes), cfg.Bot.CycleInterval), nil)
		for _, name := range cfg.Bot.MisconfiguredRoutes() {
			logger.Log(common.LevelWarning, fmt.Sprintf("Route for fleet %s has the same home and target, it will stay idle", name),
				map[string]interface{}{"fleet": name})
		}

		err := fleet.NewPoller(a.mediator, cfg.Bot.ProfileKey, cfg.Bot.CycleInterval).Run(gctx, cycles)
		if errors.Is(err, context.Canceled) {
			logger.Log(common.LevelInfo, "Bot stopped", nil)
			return nil
		}
		return err
	})

	return g.Wait()
}
