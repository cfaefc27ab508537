package cmd

import (
	"errors"
	"fmt"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/robert-at-pretension-io/reggen/internal/config"
	"github.com/robert-at-pretension-io/reggen/internal/logging"
)

var (
	// Global flags
	configPath string
	verbose    bool
	logLevel   string
	logFormat  string

	cfg *config.Config
	log *logrus.Logger
)

// errReported marks a failure that has already been logged.
var errReported = errors.New("failed")

var rootCmd = &cobra.Command{
	Use:   "reggen",
	Short: "SystemVerilog register generator",
	Long: `Generate SystemVerilog register packages and register-access modules
from IP block descriptions (JSON, CUE or YAML).

Examples:
  reggen gen -o rtl uart.json                # Generate uart_reg_pkg.sv and uart_reg_top.sv
  reggen plan data/*.json                    # List the files gen would write
  reggen facts -o facts.json uart.json       # Dump the plan as fact tables`,
	SilenceUsage:      true,
	SilenceErrors:     true,
	PersistentPreRunE: setup,
}

// Execute runs the root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		if !errors.Is(err, errReported) {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		}
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "config file (default: search reggen.json, .reggen.json, reggen.toml)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output (debug logging)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "log level: debug, info, warn, error")
	rootCmd.PersistentFlags().StringVar(&logFormat, "log-format", "", "log format: text or json")
}

// setup loads the configuration and builds the logger before any
// subcommand runs.
func setup(cmd *cobra.Command, args []string) error {
	var err error
	if configPath != "" {
		cfg, err = config.LoadFile(configPath)
		if err != nil {
			return fmt.Errorf("loading config %s: %w", configPath, err)
		}
	} else {
		cfg, err = config.Load(".")
		if err != nil {
			return fmt.Errorf("loading config: %w", err)
		}
	}

	logCfg := cfg.Log
	if logLevel != "" {
		logCfg.Level = logLevel
	}
	if verbose {
		logCfg.Level = "debug"
	}
	if logFormat != "" {
		logCfg.Format = logFormat
	}
	log, err = logging.New(logCfg, cmd.ErrOrStderr())
	if err != nil {
		return err
	}
	return nil
}
