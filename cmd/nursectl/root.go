package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"nurse-directory/config"
	"nurse-directory/internal/logging"
	"nurse-directory/internal/model"
	"nurse-directory/internal/nurseapi"
	"nurse-directory/internal/viewmodel"
)

type globalFlags struct {
	configPath string
	baseURL    string
	mock       bool
}

func newRootCmd() *cobra.Command {
	var g globalFlags

	rootCmd := &cobra.Command{
		Use:          "nursectl",
		Short:        "Browse and manage the nurse directory",
		SilenceUsage: true,
	}
	rootCmd.PersistentFlags().StringVar(&g.configPath, "config", os.Getenv("CONFIG_PATH"), "Path to the YAML config file")
	rootCmd.PersistentFlags().StringVar(&g.baseURL, "url", "", "Base URL of the nurse API (overrides config)")
	rootCmd.PersistentFlags().BoolVar(&g.mock, "mock", false, "Use the built-in demo roster instead of the API")

	rootCmd.AddCommand(
		listCmd(&g),
		searchCmd(&g),
		showCmd(&g),
		lookupCmd(&g),
		loginCmd(&g),
		registerCmd(&g),
		updateCmd(&g),
		deleteCmd(&g),
	)
	return rootCmd
}

// newViewModel wires the configured client into a fresh view model.
func newViewModel(g *globalFlags) (*viewmodel.NurseViewModel, error) {
	cfg := config.Default()
	if g.configPath != "" {
		loaded, err := config.Load(g.configPath)
		if err != nil {
			return nil, fmt.Errorf("failed to load configuration from %s: %w", g.configPath, err)
		}
		cfg = loaded
	}
	if g.baseURL != "" {
		cfg.Client.BaseURL = g.baseURL
	}
	if g.mock {
		cfg.Client.Mode = config.ModeMock
	}

	logger := logging.New(cfg.Log, os.Stderr)

	var client nurseapi.Client
	switch cfg.Client.Mode {
	case config.ModeMock:
		client = nurseapi.NewMockClient(model.DemoNurses())
	default:
		client = nurseapi.NewHTTPClient(&cfg.Client, logging.Component(logger, "nurseapi"))
	}

	return viewmodel.New(client,
		viewmodel.WithLogger(logging.Component(logger, "viewmodel")),
		viewmodel.WithEventBuffer(cfg.Client.EventBuffer),
	), nil
}
