package config

import (
	"os"

	"github.com/m-mizutani/goerr/v2"
	"github.com/pelletier/go-toml/v2"
)

// AppConfig holds the tunable analysis parameters, loaded from an
// optional TOML file. Zero values fall back to the built-in defaults.
type AppConfig struct {
	Capacity CapacityConfig `toml:"capacity"`
	Agent    AgentConfig    `toml:"agent"`
}

// CapacityConfig tunes the capacity utilization metric
type CapacityConfig struct {
	SprintWindow  int `toml:"sprint_window"`
	AssumedPoints int `toml:"assumed_points"`
}

// Validate checks if the CapacityConfig is valid
func (c *CapacityConfig) Validate() error {
	if c.SprintWindow < 0 {
		return goerr.New("capacity sprint_window must not be negative", goerr.V("sprint_window", c.SprintWindow))
	}
	if c.AssumedPoints < 0 {
		return goerr.New("capacity assumed_points must not be negative", goerr.V("assumed_points", c.AssumedPoints))
	}
	return nil
}

// AgentConfig tunes the conversation loop
type AgentConfig struct {
	TurnLimit  int `toml:"turn_limit"`
	RetryLimit int `toml:"retry_limit"`
}

// Validate checks if the AgentConfig is valid
func (a *AgentConfig) Validate() error {
	if a.TurnLimit < 0 {
		return goerr.New("agent turn_limit must not be negative", goerr.V("turn_limit", a.TurnLimit))
	}
	if a.RetryLimit < 0 {
		return goerr.New("agent retry_limit must not be negative", goerr.V("retry_limit", a.RetryLimit))
	}
	return nil
}

// Validate checks if the AppConfig is valid
func (a *AppConfig) Validate() error {
	if err := a.Capacity.Validate(); err != nil {
		return goerr.Wrap(err, "invalid capacity configuration")
	}
	if err := a.Agent.Validate(); err != nil {
		return goerr.Wrap(err, "invalid agent configuration")
	}
	return nil
}

// LoadAppConfiguration loads the analysis parameters from a TOML file.
// An empty path returns the zero configuration.
func LoadAppConfiguration(path string) (*AppConfig, error) {
	var config AppConfig
	if path == "" {
		return &config, nil
	}

	// #nosec G304 - path is expected to be provided by CLI argument
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to read config file", goerr.V("path", path))
	}

	if err := toml.Unmarshal(data, &config); err != nil {
		return nil, goerr.Wrap(err, "failed to parse TOML config", goerr.V("path", path))
	}

	if err := config.Validate(); err != nil {
		return nil, goerr.Wrap(err, "config validation failed", goerr.V("path", path))
	}

	return &config, nil
}
