package config

// Config is the root of the TOML configuration file.
type Config struct {
	Logging   LoggingConfig   `toml:"logging"`
	Generator GeneratorConfig `toml:"generator"`
	Vault     VaultConfig     `toml:"vault"`
	Git       GitConfig       `toml:"git"`
	Schedule  ScheduleConfig  `toml:"schedule"`
	Notify    NotifyConfig    `toml:"notify"`
	Metrics   MetricsConfig   `toml:"metrics"`
}

// LoggingConfig controls structured log output.
type LoggingConfig struct {
	Level  string `toml:"level"`
	Format string `toml:"format"`
	Output string `toml:"output"`
}

// GeneratorConfig configures the chat-completions note generator.
type GeneratorConfig struct {
	BaseURL        string  `toml:"base_url"`
	APIKey         string  `toml:"api_key"`
	Model          string  `toml:"model"`
	Language       string  `toml:"language"`
	Style          string  `toml:"style"`
	TimeoutSeconds int     `toml:"timeout_seconds"`
	MaxTokens      int     `toml:"max_tokens"`
	Temperature    float64 `toml:"temperature"`
	MaxRetries     int     `toml:"max_retries"`
}

// VaultConfig configures where generated notes are written.
type VaultConfig struct {
	Dir            string   `toml:"dir"`
	FilenameFormat string   `toml:"filename_format"`
	Frontmatter    bool     `toml:"frontmatter"`
	Tags           []string `toml:"tags"`
	Category       string   `toml:"category"`
}

// GitConfig configures publishing artifacts to a git remote.
type GitConfig struct {
	Enabled             bool   `toml:"enabled"`
	RepoPath            string `toml:"repo_path"`
	Remote              string `toml:"remote"`
	Branch              string `toml:"branch"`
	AutoPush            bool   `toml:"auto_push"`
	MessageTemplate     string `toml:"message_template"`
	AuthorName          string `toml:"author_name"`
	AuthorEmail         string `toml:"author_email"`
	Username            string `toml:"username"`
	Token               string `toml:"token"`
	StageTimeoutSeconds int    `toml:"stage_timeout_seconds"`
	PushTimeoutSeconds  int    `toml:"push_timeout_seconds"`
}

// ScheduleConfig configures the recurring generation job armed at startup.
type ScheduleConfig struct {
	Mode      string   `toml:"mode"`     // "daily", "interval" or "" (no job)
	Time      string   `toml:"time"`     // daily anchor, "HH:MM"
	Interval  string   `toml:"interval"` // interval period, e.g. "90m", "6h"
	BatchSize int      `toml:"batch_size"`
	Topics    []string `toml:"topics"`
}

// NotifyConfig configures batch-completion notifications.
type NotifyConfig struct {
	Telegram TelegramConfig `toml:"telegram"`
}

// TelegramConfig configures the Telegram notifier.
type TelegramConfig struct {
	Enabled bool   `toml:"enabled"`
	Token   string `toml:"token"`
	ChatID  int64  `toml:"chat_id"`
}

// MetricsConfig configures the Prometheus endpoint.
type MetricsConfig struct {
	Enabled bool   `toml:"enabled"`
	Listen  string `toml:"listen"`
}
