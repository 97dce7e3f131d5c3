// =============================================================================
// Points Directory - Main Entry Point
// =============================================================================
//
// This is the main entry point for the points directory CLI. It delegates
// command execution to the cmd package.
//
// USAGE:
//   points render      - Build the HTML page from the spreadsheet export
//   points validate    - Check the export without writing the page
//   points version     - Display the application version
//
// ARCHITECTURE:
//   - cmd/           : CLI command definitions (Cobra)
//   - internal/      : Readers, mapping, grouping and rendering
//   - pkg/           : Shared file utilities
//
// =============================================================================

package main

import (
	"github.com/ginjaninja78/points-directory/cmd"
)

func main() {
	cmd.Execute()
}
