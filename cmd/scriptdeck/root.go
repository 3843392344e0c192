package main

import (
	"fmt"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/scriptdeck/scriptdeck/internal/config"
	"github.com/scriptdeck/scriptdeck/internal/logging"
	"github.com/scriptdeck/scriptdeck/internal/plugin"
	"github.com/scriptdeck/scriptdeck/internal/storage"
)

var (
	configPath string
	dataDir    string
	logLevel   string

	cfg    config.Config
	logger *logrus.Logger
)

var rootCmd = &cobra.Command{
	Use:   "scriptdeck",
	Short: "scriptdeck hosts user-authored Lua plugins",
	Long: `scriptdeck manages a persisted library of small Lua plugins and runs
them with a scoped capability bundle: host state, UI state, logging, and a
drawable surface. A broken plugin is recorded and surfaced, never fatal.`,
	SilenceUsage:  true,
	SilenceErrors: false,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		cfg, err = config.Load(configPath)
		if err != nil {
			return err
		}
		if dataDir != "" {
			cfg.DataDir = dataDir
		}
		if logLevel != "" {
			cfg.LogLevel = logLevel
		}
		logger = logging.New(cfg.LogLevel)
		return nil
	},
}

// Execute runs the CLI.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "scriptdeck.toml", "path to configuration file")
	rootCmd.PersistentFlags().StringVar(&dataDir, "data-dir", "", "override the data directory")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "override the log level (debug, info, warn, error)")
}

// newHost wires the lifecycle controller with file-backed collaborators
// and loads the library.
func newHost(cmd *cobra.Command) (*plugin.Host, error) {
	uiState, err := storage.OpenStateFile(cfg.UIStatePath(), logger)
	if err != nil {
		return nil, fmt.Errorf("opening UI state: %w", err)
	}
	hostState, err := storage.OpenStateFile(cfg.HostStatePath(), logger)
	if err != nil {
		return nil, fmt.Errorf("opening host state: %w", err)
	}

	store := storage.NewFileStore(cfg.LibraryPath())
	host := plugin.NewHost(store, hostState, uiState, logger)

	if err := host.Load(cmd.Context()); err != nil {
		return nil, err
	}
	return host, nil
}
