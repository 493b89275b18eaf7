package cmd

import (
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	config "task-assign-system.com/task-assign-system/internal/configs"
)

var logLevel string

var rootCmd = &cobra.Command{
	Use:           "taskassign",
	Short:         "Task assignment service",
	SilenceUsage:  true,
	SilenceErrors: true,
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		config.NewLogger(logLevel).Error(err)
		os.Exit(1)
	}
}

// loadConfig reads .env when present and applies command-line overrides.
func loadConfig() (config.Config, error) {
	envLoaded := godotenv.Load() == nil

	cfg, err := config.Load()
	if err != nil {
		return cfg, err
	}
	if logLevel != "" {
		cfg.LogLevel = logLevel
	}

	if !envLoaded {
		config.NewLogger(cfg.LogLevel).Debug(".env file not found, using environment variables")
	}
	return cfg, nil
}

func init() {
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "log level (debug, info, warn, error); overrides LOG_LEVEL")
}
