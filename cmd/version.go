// =============================================================================
// Points Directory - Version Command
// =============================================================================
//
// This file defines the 'version' command, which displays the application
// version and build information.
//
// COMMAND USAGE:
//   points version
//
// OUTPUT:
//   Points Directory
//   Version:    1.0.0
//   Build Date: 2024-01-01
//   Go Version: go1.22.0
//   Inputs:     SpreadsheetML (.xml), XLSX (.xlsx), CSV (.csv)
//
// =============================================================================

package cmd

import (
	"fmt"
	"runtime"
	"strings"

	"github.com/spf13/cobra"

	"github.com/ginjaninja78/points-directory/internal/config"
)

// =============================================================================
// VERSION INFORMATION
// =============================================================================
// These variables are set at build time using ldflags.
// Example build command:
//   go build -ldflags "-X 'github.com/ginjaninja78/points-directory/cmd.Version=1.2.0'"

// Version is the application version.
// Set at build time using ldflags.
var Version = "dev"

// BuildDate is the date the application was built.
// Set at build time using ldflags.
var BuildDate = "unknown"

// =============================================================================
// VERSION COMMAND DEFINITION
// =============================================================================

// versionCmd represents the 'version' command.
var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Display the application version",
	Long:  `Display the application version, build date, Go runtime version and the input formats the reader understands.`,
	Run: func(cmd *cobra.Command, args []string) {
		out := cmd.OutOrStdout()
		fmt.Fprintln(out, "Points Directory")
		fmt.Fprintf(out, "Version:    %s\n", Version)
		fmt.Fprintf(out, "Build Date: %s\n", BuildDate)
		fmt.Fprintf(out, "Go Version: %s\n", runtime.Version())
		fmt.Fprintf(out, "Inputs:     %s\n", strings.Join(inputFormats(), ", "))
	},
}

// inputFormats describes the readers selectable with input_format.
func inputFormats() []string {
	formats := make([]string, 0, 3)
	for _, f := range []struct{ name, format string }{
		{"SpreadsheetML", config.FormatXML},
		{"XLSX", config.FormatXLSX},
		{"CSV", config.FormatCSV},
	} {
		formats = append(formats, fmt.Sprintf("%s (.%s)", f.name, f.format))
	}
	return formats
}

// =============================================================================
// INITIALIZATION
// =============================================================================

// init registers the version command with the root command.
func init() {
	rootCmd.AddCommand(versionCmd)
}
