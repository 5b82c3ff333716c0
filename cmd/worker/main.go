package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/de-tools/arch-atlas/pkg/config"
	"github.com/de-tools/arch-atlas/pkg/queue"
	"github.com/de-tools/arch-atlas/pkg/services/advisor"
	"github.com/de-tools/arch-atlas/pkg/services/inspector"
	"github.com/de-tools/arch-atlas/pkg/services/pipeline"
	"github.com/de-tools/arch-atlas/pkg/services/worker"
	"github.com/de-tools/arch-atlas/pkg/store/duckdb"
	duckdbreview "github.com/de-tools/arch-atlas/pkg/store/duckdb/review"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

var cfgPath string

func main() {
	var rootCmd = &cobra.Command{
		Use:   "worker",
		Short: "Start the review worker",
		RunE:  runWorker,
	}

	rootCmd.Flags().StringVarP(&cfgPath, "config", "c", "",
		"Path to a config file (environment variables take precedence)")

	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func runWorker(cmd *cobra.Command, _ []string) error {
	logger := zerolog.New(os.Stdout).With().Timestamp().Logger()

	cfg, err := config.Load(cfgPath)
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	ctx = logger.WithContext(ctx)

	db, err := duckdb.NewDB(duckdb.Settings{
		DbPath: cfg.DBPath,
	})
	if err != nil {
		return fmt.Errorf("failed to create DuckDB instance: %w", err)
	}
	defer db.Close()

	reviewStore, err := duckdbreview.NewStore(db)
	if err != nil {
		return fmt.Errorf("failed to create review store: %w", err)
	}

	q, err := queue.NewRedisClient(queue.RedisOptions{URL: cfg.RedisURL})
	if err != nil {
		return fmt.Errorf("failed to connect to Redis: %w", err)
	}
	defer q.Close()

	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(cfg.AWSRegion))
	if err != nil {
		return fmt.Errorf("failed to load AWS config: %w", err)
	}

	driver := advisor.NewCLIDriver(cfg.Advisor.Command, cfg.Advisor.Model)
	if err := driver.HealthCheck(ctx); err != nil {
		logger.Warn().Err(err).Msg("advisor CLI not available, reviews will fail until it is")
	}

	p := pipeline.NewPipeline(reviewStore, inspector.NewAWSInspector(awsCfg), advisor.NewEngine(driver))
	dispatcher := pipeline.NewGoDispatcher(p)

	w := worker.NewWorker(q, worker.NewProcessor(reviewStore, dispatcher), worker.Config{
		BatchSize:    cfg.Worker.BatchSize,
		PollInterval: cfg.Worker.PollInterval,
	})

	logger.Info().Msg("worker started")
	if err := w.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}

	// Let in-flight reviews reach a terminal state before exiting.
	logger.Info().Msg("draining in-flight reviews")
	dispatcher.Wait()

	return nil
}
