// Package main implements the planterm CLI, a terminal client for the
// plant-care AI backend.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/saessak-labs/planterm/internal/api"
	"github.com/saessak-labs/planterm/internal/config"
	"github.com/saessak-labs/planterm/internal/logging"
	"github.com/saessak-labs/planterm/internal/schedule"
	"github.com/saessak-labs/planterm/internal/session"
)

var (
	// serverURL overrides the configured backend base URL
	serverURL string
	// configPath overrides the default config file location
	configPath string
	// logLevel overrides the configured log level
	logLevel string
	// version information
	version = "dev"
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "planterm",
	Short: "Terminal client for the plant-care AI backend",
	Long: `planterm is a terminal client for the plant-care AI backend.
It identifies plants from photos, shows care guides and growth
predictions, diagnoses leaf diseases and keeps a watering journal.

Run without a subcommand reference below, or start the full
interactive UI with "planterm tui".`,
	Version:       version,
	SilenceUsage:  true,
	SilenceErrors: false,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&serverURL, "server", "", "backend server URL (overrides config)")
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "config file path (default ~/.config/planterm/config.yaml)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "log level: debug|info|warn|error (overrides config)")

	rootCmd.AddCommand(identifyCmd)
	rootCmd.AddCommand(careCmd)
	rootCmd.AddCommand(growthCmd)
	rootCmd.AddCommand(scheduleCmd)
	rootCmd.AddCommand(diseaseCmd)
	rootCmd.AddCommand(healthCmd)
	rootCmd.AddCommand(tuiCmd)
	rootCmd.AddCommand(guideCmd)
}

// services bundles everything a subcommand needs.
type services struct {
	cfg       *config.Config
	log       *logging.Logger
	client    *api.Client
	store     *session.Store
	schedules *schedule.Manager
}

// setup loads config, applies flag overrides and wires the shared
// services. Every subcommand starts here.
func setup() (*services, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, err
	}
	if serverURL != "" {
		cfg.Server.BaseURL = serverURL
	}
	if logLevel != "" {
		cfg.Logging.Level = logLevel
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	log, err := logging.New(cfg.Logging.Level, cfg.Logging.Format)
	if err != nil {
		return nil, err
	}

	store, err := session.Open(cfg.Storage.DataDir, log)
	if err != nil {
		return nil, fmt.Errorf("failed to open session store: %w", err)
	}

	return &services{
		cfg:       cfg,
		log:       log,
		client:    api.New(cfg, log),
		store:     store,
		schedules: schedule.NewManager(store),
	}, nil
}
