package config_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/andrescamacho/basedbot-go/internal/domain/shared"
	"github.com/andrescamacho/basedbot-go/internal/infrastructure/config"
)

const validYAML = `
gateway:
  base_url: http://gateway:8899
  retry:
    max_attempts: 5
bot:
  profile_key: profile-1
  cycle_interval: 30s
  max_concurrency: 4
  routes:
    - fleet: Hauler One
      home: [0, -39]
      target: [40, 30]
      resources: [ore-mint, tool-mint]
      travel_mode: warp
    - fleet: Digger
      goal: mine
      target: [40, 30]
      resources: [ore-mint]
`

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoadConfig_FileAndDefaults(t *testing.T) {
	// Arrange
	path := writeConfig(t, validYAML)

	// Act
	cfg, err := config.LoadConfig(path)

	// Assert
	require.NoError(t, err)
	assert.Equal(t, "http://gateway:8899", cfg.Gateway.BaseURL)
	assert.Equal(t, 5, cfg.Gateway.Retry.MaxAttempts)
	assert.Equal(t, 90*time.Second, cfg.Gateway.Timeout)
	assert.Equal(t, 30*time.Second, cfg.Bot.CycleInterval)
	assert.Equal(t, 4, cfg.Bot.MaxConcurrency)
	assert.Equal(t, "sqlite", cfg.Database.Type)
	assert.Equal(t, "/metrics", cfg.Metrics.Path)

	require.Len(t, cfg.Bot.Routes, 2)
	hauler := cfg.Bot.Routes[0]
	assert.Equal(t, "transport", hauler.Goal)
	assert.Equal(t, shared.NewCoordinates(0, -39), hauler.HomeSector())
	assert.Equal(t, shared.NewCoordinates(40, 30), hauler.TargetSector())

	mints, err := hauler.Mints()
	require.NoError(t, err)
	assert.Equal(t, []shared.EntityID{"ore-mint", "tool-mint"}, mints)

	mode, err := hauler.Mode()
	require.NoError(t, err)
	require.NotNil(t, mode)
	assert.Equal(t, shared.TravelModeWarp, *mode)

	mode, err = cfg.Bot.Routes[1].Mode()
	require.NoError(t, err)
	assert.Nil(t, mode)

	assert.NoError(t, config.ValidateForRun(cfg))
}

func TestLoadConfig_EnvironmentOverrides(t *testing.T) {
	// Arrange
	path := writeConfig(t, validYAML)
	t.Setenv("BASEDBOT_BOT_PROFILE_KEY", "from-env")
	t.Setenv("BASEDBOT_GATEWAY_API_KEY", "secret")

	// Act
	cfg, err := config.LoadConfig(path)

	// Assert
	require.NoError(t, err)
	assert.Equal(t, "from-env", cfg.Bot.ProfileKey)
	assert.Equal(t, "secret", cfg.Gateway.APIKey)
}

func TestLoadConfig_RejectsInvalidRoutes(t *testing.T) {
	tests := []struct {
		name    string
		routes  string
		message string
	}{
		{
			name: "duplicate fleet",
			routes: `
    - {fleet: A, home: [0, 0], target: [1, 1], resources: [x]}
    - {fleet: A, home: [0, 0], target: [2, 2], resources: [x]}`,
			message: "unique",
		},
		{
			name: "mine without mint",
			routes: `
    - {fleet: A, goal: mine, target: [1, 1]}`,
			message: "mine_needs_mint",
		},
		{
			name: "unknown travel mode",
			routes: `
    - {fleet: A, home: [0, 0], target: [1, 1], travel_mode: hyperjump}`,
			message: "oneof",
		},
		{
			name: "unknown goal",
			routes: `
    - {fleet: A, goal: trade, home: [0, 0], target: [1, 1]}`,
			message: "oneof",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeConfig(t, "bot:\n  routes:"+tt.routes+"\n")

			_, err := config.LoadConfig(path)

			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.message)
		})
	}
}

func TestLoadConfig_SameBaseRouteLoadsAlongsideGoodRoute(t *testing.T) {
	// Arrange
	path := writeConfig(t, `
bot:
  profile_key: profile-1
  routes:
    - {fleet: Good, home: [0, 0], target: [1, 1], resources: [x]}
    - {fleet: Loop, home: [2, 2], target: [2, 2], resources: [x]}
    - {fleet: Digger, goal: mine, target: [2, 2], resources: [x]}
`)

	// Act
	cfg, err := config.LoadConfig(path)

	// Assert
	require.NoError(t, err)
	require.Len(t, cfg.Bot.Routes, 3)
	assert.NoError(t, config.ValidateForRun(cfg))
	assert.False(t, cfg.Bot.Routes[0].SameBase())
	assert.True(t, cfg.Bot.Routes[1].SameBase())
	assert.Equal(t, []string{"Loop"}, cfg.Bot.MisconfiguredRoutes())
}

func TestValidateForRun(t *testing.T) {
	cfg := config.Sample()
	cfg.Bot.ProfileKey = ""
	assert.ErrorContains(t, config.ValidateForRun(cfg), "profile_key")

	cfg.Bot.ProfileKey = "p"
	cfg.Bot.Routes = nil
	assert.ErrorContains(t, config.ValidateForRun(cfg), "nothing to run")
}

func TestWriteSample_LoadsBack(t *testing.T) {
	// Arrange
	path := filepath.Join(t.TempDir(), "config.yaml")

	// Act
	require.NoError(t, config.WriteSample(path, false))
	cfg, err := config.LoadConfig(path)

	// Assert
	require.NoError(t, err)
	assert.Equal(t, config.Sample().Bot.Routes, cfg.Bot.Routes)
	assert.Equal(t, config.Sample().Bot.CycleInterval, cfg.Bot.CycleInterval)
	assert.Error(t, config.WriteSample(path, false), "existing file is not overwritten")
	assert.NoError(t, config.WriteSample(path, true))
}

func TestRedacted(t *testing.T) {
	cfg := config.Sample()
	cfg.Gateway.APIKey = "secret"
	cfg.Database.Password = "hunter2"

	redacted := config.Redacted(cfg)

	assert.Equal(t, "********", redacted.Gateway.APIKey)
	assert.Equal(t, "********", redacted.Database.Password)
	assert.Equal(t, "secret", cfg.Gateway.APIKey)
}
