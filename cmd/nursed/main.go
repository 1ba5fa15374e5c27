package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"

	"nurse-directory/config"
	"nurse-directory/internal/api"
	"nurse-directory/internal/db"
	"nurse-directory/internal/logging"
	"nurse-directory/internal/model"
	"nurse-directory/internal/store"
)

func main() {
	var (
		configPath string
		seed       bool
	)

	rootCmd := &cobra.Command{
		Use:   "nursed",
		Short: "Development server for the nurse/ HTTP API",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServer(configPath, seed)
		},
		SilenceUsage: true,
	}
	rootCmd.Flags().StringVar(&configPath, "config", defaultConfigPath(), "Path to the YAML config file")
	rootCmd.Flags().BoolVar(&seed, "seed", false, "Load the demo roster into an empty database")

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func defaultConfigPath() string {
	if p := os.Getenv("CONFIG_PATH"); p != "" {
		return p
	}
	return "./config/config.yaml"
}

func runServer(configPath string, seed bool) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return fmt.Errorf("failed to load configuration from %s: %w", configPath, err)
	}

	logger := logging.New(cfg.Log, os.Stdout)
	log := logging.Component(logger, "nursed")
	log.Info().Str("path", configPath).Msg("configuration loaded")

	gormDB, err := db.Init(&cfg.Database, logging.Component(logger, "db"))
	if err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}

	appStore := store.NewGormStore(gormDB, store.WithHashCost(cfg.Server.BcryptCost))
	if seed {
		added, err := appStore.Seed(context.Background(), model.DemoNurses())
		if err != nil {
			return fmt.Errorf("failed to seed demo roster: %w", err)
		}
		log.Info().Int("added", added).Msg("demo roster seeded")
	}

	if cfg.Log.Level != "debug" {
		gin.SetMode(gin.ReleaseMode)
	}
	router := api.NewRouter(appStore, cfg.Server, logging.Component(logger, "http"))
	server := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.Server.Port),
		Handler: router,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info().Int("port", cfg.Server.Port).Msg("HTTP server starting")
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	// Setup signal handling for graceful shutdown
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	select {
	case <-stop:
		log.Info().Msg("shutdown signal received, stopping server")
	case err := <-errCh:
		return fmt.Errorf("HTTP server ListenAndServe: %w", err)
	}

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("HTTP server Shutdown: %w", err)
	}

	log.Info().Msg("server gracefully stopped")
	return nil
}
