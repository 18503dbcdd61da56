package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Sample returns a complete configuration with one example route
func Sample() *Config {
	cfg := &Config{
		Bot: BotConfig{
			ProfileKey: "<player profile key>",
			Routes: []RouteConfig{
				{
					Fleet:     "Hauler One",
					Goal:      "transport",
					Home:      [2]int64{0, -39},
					Target:    [2]int64{40, 30},
					Resources: []string{"<resource mint>"},
				},
			},
		},
	}
	SetDefaults(cfg)
	return cfg
}

// Marshal renders cfg as YAML
func Marshal(cfg *Config) ([]byte, error) {
	out, err := yaml.Marshal(cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal config: %w", err)
	}
	return out, nil
}

// WriteSample writes the sample configuration to path, refusing to
// overwrite an existing file unless force is set
func WriteSample(path string, force bool) error {
	if !force {
		if _, err := os.Stat(path); err == nil {
			return fmt.Errorf("%s already exists", path)
		}
	}

	out, err := Marshal(Sample())
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, out, 0o600); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return nil
}

// Redacted returns a copy of cfg with secrets masked, for display
func Redacted(cfg *Config) *Config {
	c := *cfg
	if c.Database.Password != "" {
		c.Database.Password = "********"
	}
	if c.Database.URL != "" {
		c.Database.URL = "********"
	}
	if c.Gateway.APIKey != "" {
		c.Gateway.APIKey = "********"
	}
	return &c
}
