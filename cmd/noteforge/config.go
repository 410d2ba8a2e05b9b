package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/noteforge/noteforge/internal/config"
	"github.com/noteforge/noteforge/internal/logger"
)

// configCmd represents the config command
var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage configuration",
	Long:  `Validate and inspect Noteforge configuration.`,
}

// configValidateCmd represents the config validate command
var configValidateCmd = &cobra.Command{
	Use:   "validate [config-file]",
	Short: "Validate configuration file",
	Long:  `Validate the configuration file and check for errors.`,
	Args:  cobra.MaximumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		log, err := logger.New(logger.Config{
			Level:  "info",
			Format: "text",
			Output: "stdout",
		})
		if err != nil {
			fmt.Fprintf(os.Stderr, "Failed to initialize logger: %v\n", err)
			os.Exit(1)
		}

		configPath := "./config.toml"
		if len(args) > 0 {
			configPath = args[0]
		}

		log.Info("Validating configuration", logger.Field{Key: "path", Value: configPath})

		cfg, err := config.Load(configPath)
		if err != nil {
			log.Error("Failed to load config", err)
			os.Exit(1)
		}

		errors := cfg.Validate()
		if len(errors) > 0 {
			log.Error("Config validation failed", fmt.Errorf("%d errors", len(errors)))
			for _, e := range errors {
				log.Error("Validation error", e)
			}
			os.Exit(1)
		}

		log.Info("Configuration is valid")
	},
}

// configShowCmd represents the config show command
var configShowCmd = &cobra.Command{
	Use:   "show [config-file]",
	Short: "Show effective configuration",
	Long:  `Print the effective configuration with defaults applied and secrets masked.`,
	Args:  cobra.MaximumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		configPath := "./config.toml"
		if len(args) > 0 {
			configPath = args[0]
		}

		cfg, err := config.Load(configPath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
			os.Exit(1)
		}

		fmt.Printf("Logging:   level=%s format=%s output=%s\n",
			cfg.Logging.Level, cfg.Logging.Format, cfg.Logging.Output)
		fmt.Printf("Generator: model=%s language=%s style=%q api_key=%s\n",
			cfg.Generator.Model, cfg.Generator.Language, cfg.Generator.Style,
			config.MaskSecret(cfg.Generator.APIKey))
		fmt.Printf("Vault:     dir=%s filename=%s frontmatter=%t\n",
			cfg.Vault.Dir, cfg.Vault.FilenameFormat, cfg.Vault.Frontmatter)
		fmt.Printf("Git:       enabled=%t remote=%s branch=%s auto_push=%t token=%s\n",
			cfg.Git.Enabled, cfg.Git.Remote, cfg.Git.Branch, cfg.Git.AutoPush,
			config.MaskSecret(cfg.Git.Token))
		fmt.Printf("Schedule:  mode=%s time=%s interval=%s batch_size=%d topics=%d\n",
			cfg.Schedule.Mode, cfg.Schedule.Time, cfg.Schedule.Interval,
			cfg.Schedule.BatchSize, len(cfg.Schedule.Topics))
		fmt.Printf("Telegram:  enabled=%t chat_id=%d token=%s\n",
			cfg.Notify.Telegram.Enabled, cfg.Notify.Telegram.ChatID,
			config.MaskSecret(cfg.Notify.Telegram.Token))
		fmt.Printf("Metrics:   enabled=%t listen=%s\n",
			cfg.Metrics.Enabled, cfg.Metrics.Listen)
	},
}

func init() {
	configCmd.AddCommand(configValidateCmd)
	configCmd.AddCommand(configShowCmd)
}
