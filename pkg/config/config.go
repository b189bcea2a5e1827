package config

import (
	"github.com/bmad-code/agent-teams/pkg/errors"
	"github.com/bmad-code/agent-teams/pkg/installer"
)

// Color modes accepted by output.color.
const (
	ColorAuto   = "auto"
	ColorAlways = "always"
	ColorNever  = "never"
)

// Config is the effective configuration.
type Config struct {
	Install InstallConfig `koanf:"install" toml:"install"`
	Output  OutputConfig  `koanf:"output" toml:"output"`
	Logging LoggingConfig `koanf:"logging" toml:"logging"`

	// Sources lists the configuration files that were loaded, in order.
	Sources []string `koanf:"-" toml:"-"`
}

type InstallConfig struct {
	Force  bool `koanf:"force" toml:"force"`
	Yes    bool `koanf:"yes" toml:"yes"`
	DryRun bool `koanf:"dry_run" toml:"dry_run"`
	Lock   bool `koanf:"lock" toml:"lock"`
}

type OutputConfig struct {
	Color     string `koanf:"color" toml:"color"`
	Banner    bool   `koanf:"banner" toml:"banner"`
	NextSteps bool   `koanf:"next_steps" toml:"next_steps"`
}

type LoggingConfig struct {
	Verbosity int `koanf:"verbosity" toml:"verbosity"`
}

// ToOptions returns the installer options for this configuration.
func (c *Config) ToOptions() installer.Options {
	return installer.Options{
		Force:  c.Install.Force,
		DryRun: c.Install.DryRun,
	}
}

// Validate checks values that decoding alone cannot.
func (c *Config) Validate() error {
	switch c.Output.Color {
	case ColorAuto, ColorAlways, ColorNever:
	default:
		return errors.Newf(errors.ErrConfigParse, "output.color must be auto, always or never, got %q", c.Output.Color)
	}
	if c.Logging.Verbosity < 0 {
		return errors.Newf(errors.ErrConfigParse, "logging.verbosity must not be negative, got %d", c.Logging.Verbosity)
	}
	return nil
}
