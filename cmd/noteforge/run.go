package main

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/noteforge/noteforge/internal/config"
	"github.com/noteforge/noteforge/internal/logger"
	"github.com/noteforge/noteforge/internal/schedule"
)

var (
	runConfigPath string
	runBatchSize  int
	runTopics     string
	runDebug      bool
)

// runCmd represents the run command
var runCmd = &cobra.Command{
	Use:   "run [topic...]",
	Short: "Generate one batch of notes and exit",
	Long: `Generate a single batch of notes immediately, without arming a
schedule. Topics default to the configured pool and can be overridden
with positional arguments or --topics.`,
	Run: runHandler,
}

func runHandler(cmd *cobra.Command, args []string) {
	if err := config.LoadEnvOptional("./.env"); err != nil {
		fmt.Printf("❌ Failed to load .env file: %v\n", err)
		os.Exit(1)
	}

	configPath := runConfigPath
	if configPath == "" {
		configPath = "./config.toml"
	}

	cfg, err := config.Load(configPath)
	if err != nil {
		fmt.Printf("❌ Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	if runDebug {
		cfg.Logging.Level = "debug"
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

	topics := cfg.Schedule.Topics
	if len(args) > 0 {
		topics = args
	} else if runTopics != "" {
		topics = nil
		for _, t := range strings.Split(runTopics, ",") {
			if t = strings.TrimSpace(t); t != "" {
				topics = append(topics, t)
			}
		}
	}
	if len(topics) == 0 {
		fmt.Printf("❌ No topics configured; set schedule.topics or pass --topics\n")
		os.Exit(1)
	}

	batchSize := runBatchSize
	if batchSize == 0 {
		batchSize = cfg.Schedule.BatchSize
	}

	scheduler, err := buildScheduler(cfg, log)
	if err != nil {
		log.Error("Failed to build pipeline", err)
		os.Exit(1)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if err := scheduler.Start(ctx); err != nil {
		log.Error("Failed to start scheduler", err)
		os.Exit(1)
	}

	res, err := scheduler.ExecuteNowWith(ctx, batchSize, topics)
	if err != nil {
		log.Error("Batch execution failed", err)
		os.Exit(1)
	}

	if err := scheduler.Stop(); err != nil {
		log.Error("Failed to stop scheduler", err)
	}

	printBatchResult(res)
	if res.FailedCount > 0 && res.SuccessCount == 0 {
		os.Exit(1)
	}
}

func printBatchResult(res schedule.BatchResult) {
	fmt.Printf("Batch %s finished in %s\n", res.ID, res.FinishedAt.Sub(res.StartedAt).Round(time.Millisecond))
	for _, o := range res.Outcomes {
		if o.Status == schedule.StatusSuccess {
			fmt.Printf("  ✅ %s -> %s\n", o.Topic, o.ArtifactPath)
		} else {
			fmt.Printf("  ❌ %s: %s\n", o.Topic, o.Err)
		}
	}
	fmt.Printf("Total: %d, succeeded: %d, failed: %d\n",
		len(res.Outcomes), res.SuccessCount, res.FailedCount)
}

func init() {
	runCmd.Flags().StringVarP(&runConfigPath, "config", "c", "", "Path to configuration file (default: ./config.toml)")
	runCmd.Flags().IntVarP(&runBatchSize, "batch-size", "n", 0, "Number of topics to generate (default: from config)")
	runCmd.Flags().StringVarP(&runTopics, "topics", "t", "", "Comma-separated topic pool overriding the config")
	runCmd.Flags().BoolVarP(&runDebug, "debug", "d", false, "Enable debug logging")
}
