package logging

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/andrescamacho/basedbot-go/internal/adapters/persistence"
	"github.com/andrescamacho/basedbot-go/internal/application/common"
)

// Options configures the slog handler behind a FleetLogger
type Options struct {
	Level  string // debug, info, warn, error
	Format string // json, text
	Writer io.Writer
}

// FleetLogger implements common.ContainerLogger. Entries go to slog and,
// when a repository is set, to the fleet_logs table.
type FleetLogger struct {
	slog       *slog.Logger
	repo       persistence.FleetLogRepository
	profileKey string
	fleetName  string
}

// NewFleetLogger creates a profile-level logger. repo may be nil.
func NewFleetLogger(opts Options, profileKey string, repo persistence.FleetLogRepository) *FleetLogger {
	return &FleetLogger{
		slog:       slog.New(newHandler(opts)),
		repo:       repo,
		profileKey: profileKey,
	}
}

func newHandler(opts Options) slog.Handler {
	w := opts.Writer
	if w == nil {
		w = os.Stdout
	}
	handlerOpts := &slog.HandlerOptions{Level: parseLevel(opts.Level)}
	if opts.Format == "json" {
		return slog.NewJSONHandler(w, handlerOpts)
	}
	return slog.NewTextHandler(w, handlerOpts)
}

func parseLevel(level string) slog.Level {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// toSlogLevel maps the bot's level names onto slog levels
func toSlogLevel(level string) slog.Level {
	switch level {
	case common.LevelDebug:
		return slog.LevelDebug
	case common.LevelWarning:
		return slog.LevelWarn
	case common.LevelError:
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// ForFleet returns a logger whose entries carry fleetName
func (l *FleetLogger) ForFleet(fleetName string) common.ContainerLogger {
	return &FleetLogger{
		slog:       l.slog.With("fleet", fleetName),
		repo:       l.repo,
		profileKey: l.profileKey,
		fleetName:  fleetName,
	}
}

func (l *FleetLogger) Log(level, message string, metadata map[string]interface{}) {
	slogLevel := toSlogLevel(level)
	ctx := context.Background()

	if l.slog.Enabled(ctx, slogLevel) {
		attrs := make([]any, 0, len(metadata)*2)
		for k, v := range metadata {
			if k == "fleet" && l.fleetName != "" {
				continue
			}
			attrs = append(attrs, k, v)
		}
		l.slog.Log(ctx, slogLevel, message, attrs...)
	}

	// Debug chatter stays out of the database
	if l.repo == nil || slogLevel < slog.LevelInfo {
		return
	}
	if err := l.repo.Log(ctx, l.profileKey, l.fleetName, level, message, metadata); err != nil {
		l.slog.Warn(fmt.Sprintf("failed to persist log entry: %v", err))
	}
}

var (
	_ common.ContainerLogger = (*FleetLogger)(nil)
	_ common.FleetScoper     = (*FleetLogger)(nil)
)
