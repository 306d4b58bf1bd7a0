// =============================================================================
// Ventas BI - Root Command
// =============================================================================
//
// This file defines the root command for the Cobra CLI. The root command is
// the base command that all other commands are attached to.
//
// COBRA CLI STRUCTURE:
//   rootCmd (ventas)
//   ├── processCmd (ventas process)
//   └── versionCmd (ventas version)
//
// CONFIGURATION:
//   The root command is responsible for:
//   1. Setting up global flags (--config, --verbose)
//   2. Loading the configuration before any subcommand runs
//   3. Setting up logging
//
// =============================================================================

package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/ginjaninja78/ventas-bi/internal/config"
	"github.com/ginjaninja78/ventas-bi/internal/logger"
)

// =============================================================================
// GLOBAL VARIABLES
// =============================================================================

// defaultConfigFile is used when --config is not given.
const defaultConfigFile = "config.yaml"

// cfgFile holds the path to the main configuration file.
var cfgFile string

// verbose enables debug logging when set to true.
var verbose bool

// appConfig and appLogger are set by loadRuntime before a subcommand runs.
var (
	appConfig *config.MainConfig
	appLogger *logger.Logger
)

// =============================================================================
// ROOT COMMAND DEFINITION
// =============================================================================

// rootCmd represents the base command when called without any subcommands.
var rootCmd = &cobra.Command{
	Use:   "ventas",
	Short: "Ventas BI - Clean and summarize restaurant sales exports",
	Long: `Ventas BI reads comma-separated sales exports, validates and normalizes
every row, removes exact duplicates and summarizes the cleaned set.

Key Features:
  - Date, time slot, category, units and price validation
  - Case-insensitive time slot and category matching
  - Exact duplicate removal
  - Sales totals, top products, sales per time slot and category
  - Export of the cleaned set as CSV, XLSX or XML

Example Usage:
  ventas process --file ventas_raw.csv     # Clean one file
  ventas process                           # Clean every CSV in the input directory
  ventas process --format csv --format xlsx`,

	SilenceUsage: true,

	Run: func(cmd *cobra.Command, args []string) {
		cmd.Help()
	},
}

// =============================================================================
// EXECUTE FUNCTION
// =============================================================================

// Execute runs the root command. It is called by main.main().
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// =============================================================================
// INITIALIZATION
// =============================================================================

func init() {
	rootCmd.PersistentFlags().StringVar(
		&cfgFile,
		"config",
		defaultConfigFile,
		"Path to the main configuration file",
	)

	rootCmd.PersistentFlags().BoolVarP(
		&verbose,
		"verbose",
		"v",
		false,
		"Enable verbose output for debugging",
	)
}

// loadRuntime loads the configuration and builds the logger.
// A missing default config file means environment overrides plus built-in
// defaults; a missing file passed explicitly with --config is an error.
func loadRuntime(cmd *cobra.Command) error {
	cfg, err := loadConfig(cmd.Flags().Changed("config"))
	if err != nil {
		return err
	}

	if verbose {
		cfg.LogLevel = "debug"
	}

	log, err := logger.New(cfg.LogMode, cfg.LogLevel)
	if err != nil {
		return fmt.Errorf("failed to create logger: %w", err)
	}

	appConfig = cfg
	appLogger = log
	return nil
}

func loadConfig(explicit bool) (*config.MainConfig, error) {
	if !explicit {
		if _, err := os.Stat(cfgFile); os.IsNotExist(err) {
			cfg, err := config.FromEnv()
			if err != nil {
				return nil, fmt.Errorf("failed to load main config: %w", err)
			}
			return cfg, nil
		}
	}

	cfg, err := config.LoadMainConfig(cfgFile)
	if err != nil {
		return nil, fmt.Errorf("failed to load main config: %w", err)
	}
	return cfg, nil
}
