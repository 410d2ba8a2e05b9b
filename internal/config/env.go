package config

import (
	"os"
	"strings"
)

// expandEnvVars resolves ${VAR} references in fields that commonly carry
// secrets, so keys can live in the environment instead of the config file.
func expandEnvVars(cfg *Config) {
	cfg.Generator.APIKey = os.ExpandEnv(cfg.Generator.APIKey)
	cfg.Notify.Telegram.Token = os.ExpandEnv(cfg.Notify.Telegram.Token)
	cfg.Git.Token = os.ExpandEnv(cfg.Git.Token)
}

// LoadEnv reads KEY=VALUE pairs from a .env style file into the process
// environment. Empty lines and lines starting with # are skipped.
func LoadEnv(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}

	for _, line := range strings.Split(string(data), "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		parts := strings.SplitN(line, "=", 2)
		if len(parts) != 2 {
			continue
		}

		key := strings.TrimSpace(parts[0])
		value := strings.TrimSpace(parts[1])
		if key != "" {
			os.Setenv(key, value)
		}
	}

	return nil
}

// LoadEnvOptional loads a .env file if it exists and is a no-op otherwise.
func LoadEnvOptional(path string) error {
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return err
	}
	return LoadEnv(path)
}
