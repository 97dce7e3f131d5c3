// =============================================================================
// Points Directory - Render Command
// =============================================================================
//
// This file defines the 'render' command, which runs the whole pipeline and
// writes the HTML page.
//
// COMMAND USAGE:
//   points render [flags]
//
// FLAGS:
//   --input     : Input spreadsheet
//   --output    : Output HTML file
//   --template  : Page template
//   --format    : Input format (auto, xml, xlsx, csv)
//
// EXIT STATUS:
//   0 when the page was written, 1 otherwise. Unrecognized regions are
//   printed as warnings and do not change the exit status.
//
// =============================================================================

package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ginjaninja78/points-directory/internal/converter"
	"github.com/ginjaninja78/points-directory/internal/validation"
)

var renderFlags inputFlags

// renderCmd represents the 'render' command.
var renderCmd = &cobra.Command{
	Use:   "render",
	Short: "Build the points directory page",
	Long: `The render command reads the points export, groups the points by region
and city, renders the page template and replaces the output file.

On error:
  - Nothing is written and an existing output file is left untouched
  - The first malformed row is reported with its row and column`,

	RunE: func(cmd *cobra.Command, args []string) error {
		return runRender(cmd)
	},
}

func init() {
	rootCmd.AddCommand(renderCmd)
	renderFlags.register(renderCmd)
}

// runRender loads the configuration and runs the converter.
func runRender(cmd *cobra.Command) error {
	cfg, err := loadConfig(&renderFlags)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	conv := converter.New(cfg, converter.WithLogger(newLogger(cfg, cmd.ErrOrStderr())))

	fmt.Fprintln(out, "=== Points Directory ===")
	fmt.Fprintf(out, "Input:  %s\n", cfg.InputFile)

	result := conv.Run()

	if len(result.Warnings) > 0 {
		fmt.Fprintln(out, "\nUnrecognized regions:")
		fmt.Fprint(out, validation.FormatErrors(result.Warnings))
	}

	if !result.Success {
		return result.Error
	}

	fmt.Fprintf(out, "Output: %s\n", result.OutputFile)
	printStats(cmd, result.Stats)
	fmt.Fprintf(out, "Time elapsed:    %s\n", result.Stats.Duration)

	return nil
}

// printStats writes the run statistics in the summary layout.
func printStats(cmd *cobra.Command, stats converter.Stats) {
	out := cmd.OutOrStdout()
	fmt.Fprintln(out, "\n=== Summary ===")
	fmt.Fprintf(out, "Rows read:       %d\n", stats.RowsRead)
	fmt.Fprintf(out, "Blank rows:      %d\n", stats.BlankRowsSkipped)
	fmt.Fprintf(out, "Points:          %d\n", stats.Records)
	fmt.Fprintf(out, "Regions:         %d\n", stats.Regions)
	fmt.Fprintf(out, "Cities:          %d\n", stats.Cities)
	if stats.UnrecognizedRegionRecords > 0 {
		fmt.Fprintf(out, "Unknown region:  %d point(s)\n", stats.UnrecognizedRegionRecords)
	}
}
