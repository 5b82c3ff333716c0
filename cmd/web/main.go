package main

import (
	"fmt"
	"net"
	"os"

	"github.com/de-tools/arch-atlas/pkg/config"
	"github.com/de-tools/arch-atlas/pkg/queue"
	"github.com/de-tools/arch-atlas/pkg/server"
	reviewsvc "github.com/de-tools/arch-atlas/pkg/services/review"
	"github.com/de-tools/arch-atlas/pkg/store/duckdb"
	duckdbreview "github.com/de-tools/arch-atlas/pkg/store/duckdb/review"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

var cfgPath string

func main() {
	var rootCmd = &cobra.Command{
		Use:   "web",
		Short: "Start the review API server",
		RunE:  runServer,
	}

	rootCmd.Flags().StringVarP(&cfgPath, "config", "c", "",
		"Path to a config file (environment variables take precedence)")

	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func runServer(_ *cobra.Command, _ []string) error {
	logger := zerolog.New(os.Stdout).With().Timestamp().Logger()

	cfg, err := config.Load(cfgPath)
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

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

	reviews := reviewsvc.NewService(reviewStore, q, cfg.AWSRegion)

	api := server.NewWebAPI(logger, server.Config{
		Addr: net.JoinHostPort(cfg.ServerHost, cfg.ServerPort),
		Dependencies: server.Dependencies{
			Reviews: reviews,
		},
	})

	return api.Start()
}
