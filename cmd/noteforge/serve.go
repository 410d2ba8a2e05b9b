package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"

	"github.com/noteforge/noteforge/internal/config"
	"github.com/noteforge/noteforge/internal/generate"
	"github.com/noteforge/noteforge/internal/logger"
	"github.com/noteforge/noteforge/internal/notify"
	"github.com/noteforge/noteforge/internal/publish"
	"github.com/noteforge/noteforge/internal/schedule"
	"github.com/noteforge/noteforge/internal/vault"
)

var (
	serveConfigPath string
	serveLogLevel   string
)

// serveCmd represents the serve command
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the Noteforge scheduler (main command)",
	Long: `Start the Noteforge scheduler with the specified configuration.
This arms the configured job, generates note batches when it fires and
handles graceful shutdown.

The serve command is the main entry point for running Noteforge.`,
	Run: serveHandler,
}

func serveHandler(cmd *cobra.Command, args []string) {
	// Load .env file if exists
	if err := config.LoadEnvOptional("./.env"); err != nil {
		fmt.Printf("❌ Failed to load .env file: %v\n", err)
		os.Exit(1)
	}

	configPath := serveConfigPath
	if configPath == "" {
		configPath = "./config.toml"
	}

	cfg, err := config.Load(configPath)
	if err != nil {
		fmt.Printf("❌ Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	if serveLogLevel != "" {
		cfg.Logging.Level = serveLogLevel
	}

	if errors := cfg.Validate(); len(errors) > 0 {
		fmt.Printf("❌ Configuration validation failed:\n")
		for _, e := range errors {
			fmt.Printf("  - %v\n", e)
		}
		os.Exit(1)
	}

	log, err := logger.New(logger.Config{
		Level:  cfg.Logging.Level,
		Format: cfg.Logging.Format,
		Output: cfg.Logging.Output,
	})
	if err != nil {
		fmt.Printf("❌ Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	logger.SetDefault(log)

	log.Info("🚀 Starting Noteforge",
		logger.Field{Key: "version", Value: Version},
		logger.Field{Key: "git_commit", Value: GitCommit},
		logger.Field{Key: "config", Value: configPath},
		logger.Field{Key: "vault", Value: cfg.Vault.Dir},
		logger.Field{Key: "schedule_mode", Value: cfg.Schedule.Mode},
	)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	scheduler, err := buildScheduler(cfg, log)
	if err != nil {
		log.Error("Failed to build pipeline", err)
		os.Exit(1)
	}

	var metricsSrv *http.Server
	if cfg.Metrics.Enabled {
		scheduler.SetMetrics(schedule.InitMetrics("noteforge", nil))

		mux := http.NewServeMux()
		mux.Handle("/metrics", promhttp.Handler())
		metricsSrv = &http.Server{Addr: cfg.Metrics.Listen, Handler: mux}
		go func() {
			log.Info("📊 Metrics endpoint listening",
				logger.Field{Key: "addr", Value: cfg.Metrics.Listen})
			if err := metricsSrv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
				log.Error("Metrics server failed", err)
			}
		}()
	}

	if err := scheduler.Start(ctx); err != nil {
		log.Error("Failed to start scheduler", err)
		os.Exit(1)
	}

	switch cfg.Schedule.Mode {
	case "daily":
		err = scheduler.SetupDaily(cfg.Schedule.Time, cfg.Schedule.BatchSize, cfg.Schedule.Topics)
	case "interval":
		var period time.Duration
		period, err = time.ParseDuration(cfg.Schedule.Interval)
		if err == nil {
			err = scheduler.SetupInterval(period, cfg.Schedule.BatchSize, cfg.Schedule.Topics)
		}
	case "":
		log.Warn("No schedule mode configured, no job armed")
	default:
		err = fmt.Errorf("unknown schedule mode: %s", cfg.Schedule.Mode)
	}
	if err != nil {
		log.Error("Failed to arm schedule", err)
		os.Exit(1)
	}

	log.Info("✅ Noteforge is running")

	sig := <-sigChan
	log.Info("⏳ Received shutdown signal",
		logger.Field{Key: "signal", Value: sig.String()})

	log.Info("🛑 Shutting down Noteforge...")
	cancel()

	if err := scheduler.Stop(); err != nil {
		log.Error("Failed to stop scheduler", err)
	}
	if metricsSrv != nil {
		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer shutdownCancel()
		if err := metricsSrv.Shutdown(shutdownCtx); err != nil {
			log.Error("Failed to stop metrics server", err)
		}
	}

	log.Info("👋 Noteforge stopped gracefully")
}

// buildScheduler wires the generator, vault, publisher and notifiers into
// a scheduler from the loaded configuration.
func buildScheduler(cfg *config.Config, log *logger.Logger) (*schedule.Scheduler, error) {
	gen := generate.NewChatProvider(generate.Config{
		BaseURL:        cfg.Generator.BaseURL,
		APIKey:         cfg.Generator.APIKey,
		Model:          cfg.Generator.Model,
		Language:       cfg.Generator.Language,
		Style:          cfg.Generator.Style,
		TimeoutSeconds: cfg.Generator.TimeoutSeconds,
		MaxTokens:      cfg.Generator.MaxTokens,
		Temperature:    cfg.Generator.Temperature,
		MaxRetries:     cfg.Generator.MaxRetries,
	}, log)

	store, err := vault.NewDirStore(vault.Config{
		Dir:            cfg.Vault.Dir,
		FilenameFormat: cfg.Vault.FilenameFormat,
		Frontmatter:    cfg.Vault.Frontmatter,
		Tags:           cfg.Vault.Tags,
		Category:       cfg.Vault.Category,
	}, log)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize vault: %w", err)
	}

	var pub schedule.Publisher
	if cfg.Git.Enabled {
		repoDir := cfg.Git.RepoPath
		if repoDir == "" {
			repoDir = cfg.Vault.Dir
		}
		gitPub, err := publish.NewGitPublisher(publish.Config{
			RepoDir:         repoDir,
			RemoteName:      cfg.Git.Remote,
			Branch:          cfg.Git.Branch,
			MessageTemplate: cfg.Git.MessageTemplate,
			AuthorName:      cfg.Git.AuthorName,
			AuthorEmail:     cfg.Git.AuthorEmail,
			Username:        cfg.Git.Username,
			Token:           cfg.Git.Token,
			StageTimeout:    time.Duration(cfg.Git.StageTimeoutSeconds) * time.Second,
			PushTimeout:     time.Duration(cfg.Git.PushTimeoutSeconds) * time.Second,
			AutoPush:        cfg.Git.AutoPush,
		}, log)
		if err != nil {
			return nil, fmt.Errorf("failed to initialize git publisher: %w", err)
		}
		pub = publish.NewAdapter(gitPub, log)
		log.Info("✅ Git publisher initialized",
			logger.Field{Key: "repo", Value: repoDir},
			logger.Field{Key: "auto_push", Value: cfg.Git.AutoPush})
	} else {
		log.Warn("Git publishing is disabled")
	}

	var notifiers []notify.Notifier
	if cfg.Notify.Telegram.Enabled {
		tg, err := notify.NewTelegram(notify.TelegramConfig{
			Token:  cfg.Notify.Telegram.Token,
			ChatID: cfg.Notify.Telegram.ChatID,
		}, log)
		if err != nil {
			return nil, fmt.Errorf("failed to initialize telegram notifier: %w", err)
		}
		notifiers = append(notifiers, tg)
		log.Info("📱 Telegram notifier initialized")
	}

	var onComplete schedule.CompletionFunc
	if len(notifiers) > 0 {
		multi := notify.NewMulti(log, notifiers...)
		onComplete = func(summary schedule.Summary) {
			notifyCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
			defer cancel()
			_ = multi.BatchFinished(notifyCtx, summary)
		}
	}

	return schedule.NewScheduler(log, gen, store, pub, onComplete), nil
}

func init() {
	serveCmd.Flags().StringVarP(&serveConfigPath, "config", "c", "", "Path to configuration file (default: ./config.toml)")
	serveCmd.Flags().StringVarP(&serveLogLevel, "log-level", "l", "", "Override log level (debug, info, warn, error)")
}
