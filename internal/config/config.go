// Package config loads and validates the noteforge TOML configuration.
package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
)

// Load reads a TOML config file, applies defaults and expands ${VAR}
// references in secret-bearing fields.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var cfg Config
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	applyDefaults(&cfg)
	expandEnvVars(&cfg)

	return &cfg, nil
}

// Validate returns every configuration problem found, not just the first.
func (c *Config) Validate() []error {
	var errs []error

	validLevels := map[string]bool{"debug": true, "info": true, "warn": true, "error": true}
	if !validLevels[strings.ToLower(c.Logging.Level)] {
		errs = append(errs, fmt.Errorf("invalid logging.level: %s (expected: debug, info, warn, error)", c.Logging.Level))
	}
	validFormats := map[string]bool{"json": true, "text": true}
	if !validFormats[strings.ToLower(c.Logging.Format)] {
		errs = append(errs, fmt.Errorf("invalid logging.format: %s (expected: json, text)", c.Logging.Format))
	}
	if c.Logging.Output == "" {
		errs = append(errs, fmt.Errorf("logging.output is required"))
	}

	if c.Generator.APIKey == "" {
		errs = append(errs, fmt.Errorf("generator.api_key is required"))
	}
	if c.Generator.TimeoutSeconds < 0 {
		errs = append(errs, fmt.Errorf("generator.timeout_seconds must not be negative"))
	}

	if c.Vault.Dir == "" {
		errs = append(errs, fmt.Errorf("vault.dir is required"))
	}

	if c.Git.Enabled && c.Git.RepoPath == "" {
		errs = append(errs, fmt.Errorf("git.repo_path is required when git is enabled"))
	}

	switch c.Schedule.Mode {
	case "", "daily", "interval":
	default:
		errs = append(errs, fmt.Errorf("invalid schedule.mode: %s (expected: daily, interval)", c.Schedule.Mode))
	}
	if c.Schedule.Mode == "daily" && c.Schedule.Time == "" {
		errs = append(errs, fmt.Errorf("schedule.time is required when schedule.mode is 'daily'"))
	}
	if c.Schedule.Mode == "interval" {
		if c.Schedule.Interval == "" {
			errs = append(errs, fmt.Errorf("schedule.interval is required when schedule.mode is 'interval'"))
		} else if _, err := time.ParseDuration(c.Schedule.Interval); err != nil {
			errs = append(errs, fmt.Errorf("invalid schedule.interval: %w", err))
		}
	}
	if c.Schedule.Mode != "" {
		if c.Schedule.BatchSize < 1 {
			errs = append(errs, fmt.Errorf("schedule.batch_size must be at least 1"))
		}
		if len(c.Schedule.Topics) == 0 {
			errs = append(errs, fmt.Errorf("schedule.topics cannot be empty when a schedule mode is set"))
		}
	}

	if c.Notify.Telegram.Enabled {
		if c.Notify.Telegram.Token == "" {
			errs = append(errs, fmt.Errorf("notify.telegram.token is required when telegram is enabled"))
		}
		if c.Notify.Telegram.ChatID == 0 {
			errs = append(errs, fmt.Errorf("notify.telegram.chat_id is required when telegram is enabled"))
		}
	}

	if c.Metrics.Enabled && c.Metrics.Listen == "" {
		errs = append(errs, fmt.Errorf("metrics.listen is required when metrics are enabled"))
	}

	return errs
}
