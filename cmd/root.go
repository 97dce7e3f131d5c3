// =============================================================================
// Points Directory - Root Command
// =============================================================================
//
// This file defines the root command for the Cobra CLI and the pieces every
// subcommand shares: configuration loading with flag overrides and logger
// construction.
//
// COBRA CLI STRUCTURE:
//   rootCmd (points)
//   ├── renderCmd   (points render)
//   ├── validateCmd (points validate)
//   └── versionCmd  (points version)
//
// CONFIGURATION PRECEDENCE:
//   1. Command-line flags (--input, --output, --template, --format)
//   2. The configuration file (--config, default config.yaml)
//   3. Built-in defaults
//
// =============================================================================

package cmd

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/ginjaninja78/points-directory/internal/config"
	"github.com/ginjaninja78/points-directory/internal/observability"
)

// =============================================================================
// GLOBAL VARIABLES
// =============================================================================

// cfgFile holds the path to the main configuration file.
var cfgFile string

// verbose forces debug logging.
var verbose bool

// =============================================================================
// ROOT COMMAND DEFINITION
// =============================================================================

// rootCmd represents the base command when called without any subcommands.
var rootCmd = &cobra.Command{
	Use:   "points",
	Short: "Points Directory - Build the top-up points HTML page from a spreadsheet export",
	Long: `Points Directory reads the spreadsheet export of top-up and sale points,
groups the points by voivodeship and city, and writes a single HTML page.

Key Features:
  - SpreadsheetML (XML Spreadsheet 2003), XLSX and CSV input
  - Fail-fast validation: a malformed row aborts the run
  - Atomic output: a failed run never leaves a partial page
  - Optional Prometheus textfile metrics

Example Usage:
  points render                         # punkty.xml -> points_lista1.html
  points render --input export.xlsx     # read a workbook instead
  points validate --json                # check the input and dump the directory`,

	SilenceUsage:  true,
	SilenceErrors: true,

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
		config.DefaultPath,
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

// =============================================================================
// SHARED HELPERS
// =============================================================================

// inputFlags are the per-command overrides of configuration values.
type inputFlags struct {
	input    string
	output   string
	template string
	format   string
}

// register adds the override flags to cmd.
func (f *inputFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.input, "input", "", "Input spreadsheet (overrides input_file)")
	cmd.Flags().StringVar(&f.output, "output", "", "Output HTML file (overrides output_file)")
	cmd.Flags().StringVar(&f.template, "template", "", "Page template (overrides template_file)")
	cmd.Flags().StringVar(&f.format, "format", "", "Input format: auto, xml, xlsx or csv (overrides input_format)")
}

// loadConfig reads the configuration file and applies flag overrides.
func loadConfig(flags *inputFlags) (*config.MainConfig, error) {
	cfg, err := config.LoadMainConfig(cfgFile)
	if err != nil {
		return nil, fmt.Errorf("failed to load main config: %w", err)
	}

	if flags.input != "" {
		cfg.InputFile = flags.input
	}
	if flags.output != "" {
		cfg.OutputFile = flags.output
	}
	if flags.template != "" {
		cfg.TemplateFile = flags.template
	}
	if flags.format != "" {
		cfg.InputFormat = flags.format
	}
	if verbose {
		cfg.LogLevel = "debug"
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

// newLogger builds the run logger writing to w.
func newLogger(cfg *config.MainConfig, w io.Writer) *slog.Logger {
	return observability.NewLogger(cfg.LogLevel, cfg.LogFormat, w)
}
