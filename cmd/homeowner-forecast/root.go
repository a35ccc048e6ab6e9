package main

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"time"

	"github.com/iwvelando/homeowner-forecast/internal/config"
	"github.com/iwvelando/homeowner-forecast/pkg/constants"
	"github.com/iwvelando/homeowner-forecast/pkg/validation"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

type rootFlags struct {
	config       string
	outputFormat string
	logLevel     string
	seed         int64
}

// session is the state shared by every simulation command.
type session struct {
	conf         *config.Configuration
	logger       *zap.Logger
	outputFormat string
}

func newRootCmd() *cobra.Command {
	flags := &rootFlags{}

	rootCmd := &cobra.Command{
		Use:          "homeowner-forecast",
		Short:        "Forecast net worth as a homeowner or a renter",
		Long:         "Simulate month by month how a homeowner's or renter's net worth evolves under random job loss, market returns and home value drift.",
		Version:      version,
		SilenceUsage: true,
	}

	rootCmd.PersistentFlags().StringVarP(&flags.config, "config", "c", constants.DefaultConfigFile, "Path to configuration file")
	rootCmd.PersistentFlags().StringVarP(&flags.outputFormat, "output-format", "o", "", "Output format override: pretty, csv, json, yaml")
	rootCmd.PersistentFlags().StringVar(&flags.logLevel, "log-level", "", "Log level override (debug, info, warn, error)")
	rootCmd.PersistentFlags().Int64Var(&flags.seed, "seed", 0, "Random seed override; 0 picks one")

	runCmd := newRunCmd(flags)
	rootCmd.RunE = runCmd.RunE
	rootCmd.Flags().AddFlagSet(runCmd.Flags())

	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(newBatchCmd(flags))
	rootCmd.AddCommand(newScheduleCmd(flags))
	rootCmd.AddCommand(newServeCmd(flags))

	return rootCmd
}

// configPath resolves the config flag. The default file is optional; an explicit
// path must exist.
func configPath(cmd *cobra.Command, path string) string {
	if cmd.Flags().Changed("config") {
		return path
	}
	if _, err := os.Stat(path); errors.Is(err, fs.ErrNotExist) {
		return ""
	}
	return path
}

// loadSession loads configuration, builds the logger and resolves the output format.
func loadSession(cmd *cobra.Command, flags *rootFlags) (*session, error) {
	path := configPath(cmd, flags.config)
	conf, err := config.LoadConfiguration(path)
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration at %s: %w", path, err)
	}

	logger, err := initializeLogger(conf.Logging, flags.logLevel)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}

	if err := conf.Normalize(time.Now()); err != nil {
		_ = logger.Sync()
		return nil, err
	}
	if flags.seed != 0 {
		conf.Simulation.Seed = flags.seed
	}

	outputFormat := conf.Output.Format
	if flags.outputFormat != "" {
		outputFormat = flags.outputFormat
	}
	if err := validation.ValidateOutputFormat(outputFormat); err != nil {
		_ = logger.Sync()
		return nil, err
	}

	if path == "" {
		logger.Debug("no configuration file found, using defaults",
			zap.String("op", "main.loadSession"),
		)
	}
	logWarnings(logger, conf)

	return &session{conf: conf, logger: logger, outputFormat: outputFormat}, nil
}

func logWarnings(logger *zap.Logger, conf *config.Configuration) {
	for _, warning := range conf.ValidateConfiguration() {
		logger.Warn("Configuration warning: "+warning,
			zap.String("op", "main"),
		)
	}
}

func (s *session) close() {
	_ = s.logger.Sync()
}
