package config

func applyDefaults(cfg *Config) {
	if cfg.Logging.Level == "" {
		cfg.Logging.Level = "info"
	}
	if cfg.Logging.Format == "" {
		cfg.Logging.Format = "text"
	}
	if cfg.Logging.Output == "" {
		cfg.Logging.Output = "stdout"
	}

	if cfg.Generator.TimeoutSeconds == 0 {
		cfg.Generator.TimeoutSeconds = 60
	}
	if cfg.Generator.Language == "" {
		cfg.Generator.Language = "English"
	}
	if cfg.Generator.Style == "" {
		cfg.Generator.Style = "detailed tutorial"
	}
	if cfg.Generator.MaxRetries == 0 {
		cfg.Generator.MaxRetries = 3
	}

	if cfg.Vault.FilenameFormat == "" {
		cfg.Vault.FilenameFormat = "{date}_{topic}"
	}

	if cfg.Git.Remote == "" {
		cfg.Git.Remote = "origin"
	}
	if cfg.Git.Branch == "" {
		cfg.Git.Branch = "main"
	}
	if cfg.Git.MessageTemplate == "" {
		cfg.Git.MessageTemplate = "docs: add generated notes - {date}"
	}
	if cfg.Git.AuthorName == "" {
		cfg.Git.AuthorName = "noteforge"
	}
	if cfg.Git.AuthorEmail == "" {
		cfg.Git.AuthorEmail = "noteforge@localhost"
	}
	if cfg.Git.StageTimeoutSeconds == 0 {
		cfg.Git.StageTimeoutSeconds = 30
	}
	if cfg.Git.PushTimeoutSeconds == 0 {
		cfg.Git.PushTimeoutSeconds = 60
	}

	if cfg.Schedule.BatchSize == 0 {
		cfg.Schedule.BatchSize = 1
	}

	if cfg.Metrics.Listen == "" {
		cfg.Metrics.Listen = ":9091"
	}
}
