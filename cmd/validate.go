// =============================================================================
// Points Directory - Validate Command
// =============================================================================
//
// This file defines the 'validate' command. It reads, maps and groups the
// input exactly as 'render' does but never renders or writes the page.
//
// COMMAND USAGE:
//   points validate [--json] [flags]
//
// With --json the grouped directory is printed as JSON:
//
//   [{"id": "pl7", "label": "Mazowieckie", "cities": [
//      {"name": "Warszawa", "slug": "warszawa", "points": [
//         {"centrala": "...", "nom": "...", "telefon": null, ...}]}]}]
//
// =============================================================================

package cmd

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ginjaninja78/points-directory/internal/converter"
	"github.com/ginjaninja78/points-directory/internal/types"
	"github.com/ginjaninja78/points-directory/internal/validation"
)

var (
	validateFlags inputFlags
	jsonOutput    bool
)

// validateCmd represents the 'validate' command.
var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Check the input without writing the page",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runValidate(cmd)
	},
}

func init() {
	rootCmd.AddCommand(validateCmd)
	validateFlags.register(validateCmd)

	validateCmd.Flags().BoolVar(&jsonOutput, "json", false, "Print the grouped directory as JSON")
}

func runValidate(cmd *cobra.Command) error {
	cfg, err := loadConfig(&validateFlags)
	if err != nil {
		return err
	}

	conv := converter.New(cfg, converter.WithLogger(newLogger(cfg, cmd.ErrOrStderr())))
	report, err := conv.Build()
	if err != nil {
		return err
	}

	if jsonOutput {
		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		enc.SetEscapeHTML(false)
		return enc.Encode(project(report.Directory))
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "%s is valid.\n", cfg.InputFile)
	printStats(cmd, report.Stats)
	if len(report.Warnings) > 0 {
		fmt.Fprintln(out, "\nUnrecognized regions:")
		fmt.Fprint(out, validation.FormatErrors(report.Warnings))
	}
	return nil
}

// =============================================================================
// JSON PROJECTION
// =============================================================================

type regionJSON struct {
	ID     string     `json:"id"`
	Label  string     `json:"label"`
	Cities []cityJSON `json:"cities"`
}

type cityJSON struct {
	Name   string            `json:"name"`
	Slug   string            `json:"slug"`
	Points []types.PointView `json:"points"`
}

func project(dir *types.Directory) []regionJSON {
	out := make([]regionJSON, 0, len(dir.Regions))
	for _, r := range dir.Regions {
		region := regionJSON{ID: r.Key.ID, Label: r.Key.Label, Cities: make([]cityJSON, 0, len(r.Cities))}
		for _, c := range r.Cities {
			city := cityJSON{Name: c.Key.Name, Slug: c.Key.Slug, Points: make([]types.PointView, 0, len(c.Points))}
			for _, p := range c.Points {
				city.Points = append(city.Points, p.View())
			}
			region.Cities = append(region.Cities, city)
		}
		out = append(out, region)
	}
	return out
}
