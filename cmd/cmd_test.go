package cmd

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ginjaninja78/points-directory/internal/config"
	"github.com/ginjaninja78/points-directory/internal/validation"
)

const pointsXML = `<?xml version="1.0" encoding="UTF-8"?>
<Workbook xmlns="urn:schemas-microsoft-com:office:spreadsheet" xmlns:ss="urn:schemas-microsoft-com:office:spreadsheet">
<Worksheet ss:Name="Punkty"><Table>
<Row><Cell><Data ss:Type="String">Centrala</Data></Cell></Row>
<Row>
 <Cell><Data ss:Type="String">C1</Data></Cell><Cell><Data ss:Type="String">Kiosk</Data></Cell>
 <Cell><Data ss:Type="String">Kwiatowa 1</Data></Cell><Cell><Data ss:Type="String">00-001</Data></Cell>
 <Cell><Data ss:Type="String">warszawa</Data></Cell><Cell><Data ss:Type="String">mazowieckie</Data></Cell>
 <Cell><Data ss:Type="String">22 555 11 22</Data></Cell><Cell><Data ss:Type="String">kiosk@example.pl</Data></Cell>
 <Cell><Data ss:Type="Number">1</Data></Cell><Cell><Data ss:Type="Number">0</Data></Cell>
</Row>
<Row>
 <Cell><Data ss:Type="String">C2</Data></Cell><Cell><Data ss:Type="String">Sklep</Data></Cell>
 <Cell><Data ss:Type="String">Rynek 1</Data></Cell><Cell><Data ss:Type="String">31-001</Data></Cell>
 <Cell><Data ss:Type="String">kraków</Data></Cell><Cell><Data ss:Type="String">malopolskie</Data></Cell>
 <Cell/><Cell><Data ss:Type="String">sklep@example.pl</Data></Cell>
 <Cell><Data ss:Type="Number">0</Data></Cell><Cell><Data ss:Type="Number">1</Data></Cell>
</Row>
</Table></Worksheet>
</Workbook>
`

// workspace writes the input and a config file into a temp dir and returns
// the dir and config path.
func workspace(t *testing.T, input string) (string, string) {
	t.Helper()
	dir := t.TempDir()

	require.NoError(t, os.WriteFile(filepath.Join(dir, "punkty.xml"), []byte(input), 0o644))

	cfg := "input_file: " + filepath.Join(dir, "punkty.xml") + "\n" +
		"output_file: " + filepath.Join(dir, "points_lista1.html") + "\n" +
		"log_level: error\n"
	cfgPath := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(cfgPath, []byte(cfg), 0o644))

	return dir, cfgPath
}

// execute runs the root command with fresh flag state.
func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()

	renderFlags = inputFlags{}
	validateFlags = inputFlags{}
	jsonOutput = false
	verbose = false

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&bytes.Buffer{})
	rootCmd.SetArgs(args)
	defer rootCmd.SetArgs(nil)

	err := rootCmd.Execute()
	return out.String(), err
}

func TestRenderCommand(t *testing.T) {
	dir, cfgPath := workspace(t, pointsXML)

	out, err := execute(t, "render", "--config", cfgPath)
	require.NoError(t, err)

	assert.Contains(t, out, "Points:          2")
	assert.Contains(t, out, "Regions:         2")

	page, err := os.ReadFile(filepath.Join(dir, "points_lista1.html"))
	require.NoError(t, err)
	assert.Contains(t, string(page), `id="pl7-warszawa"`)
	assert.Contains(t, string(page), `id="pl6-krakow"`)
}

func TestRenderCommandOverrides(t *testing.T) {
	dir, cfgPath := workspace(t, pointsXML)
	output := filepath.Join(dir, "other.html")

	_, err := execute(t, "render", "--config", cfgPath, "--output", output)
	require.NoError(t, err)

	assert.FileExists(t, output)
	assert.NoFileExists(t, filepath.Join(dir, "points_lista1.html"))
}

func TestRenderCommandFailure(t *testing.T) {
	dir, cfgPath := workspace(t, `<Workbook><Worksheet><Table><Row/><Row><Cell><Data>C1</Data></Cell></Row></Table></Worksheet></Workbook>`)

	_, err := execute(t, "render", "--config", cfgPath)
	assert.ErrorIs(t, err, validation.ErrMalformedRow)
	assert.NoFileExists(t, filepath.Join(dir, "points_lista1.html"))
}

func TestRenderCommandBadFormat(t *testing.T) {
	_, cfgPath := workspace(t, pointsXML)

	_, err := execute(t, "render", "--config", cfgPath, "--format", "ods")
	assert.ErrorContains(t, err, "invalid configuration")
}

func TestFormatFlagHelpListsEveryFormat(t *testing.T) {
	usage := renderCmd.Flags().Lookup("format").Usage
	for _, format := range []string{config.FormatAuto, config.FormatXML, config.FormatXLSX, config.FormatCSV} {
		assert.Contains(t, usage, format)
	}
	assert.Contains(t, rootCmd.Long, "CSV input")
}

func TestValidateCommand(t *testing.T) {
	dir, cfgPath := workspace(t, pointsXML)

	out, err := execute(t, "validate", "--config", cfgPath)
	require.NoError(t, err)
	assert.Contains(t, out, "is valid.")
	assert.Contains(t, out, "Points:          2")
	assert.NoFileExists(t, filepath.Join(dir, "points_lista1.html"))
}

func TestValidateCommandJSON(t *testing.T) {
	_, cfgPath := workspace(t, pointsXML)

	out, err := execute(t, "validate", "--config", cfgPath, "--json")
	require.NoError(t, err)

	var regions []map[string]any
	require.NoError(t, json.Unmarshal([]byte(out), &regions))
	require.Len(t, regions, 2)

	assert.Equal(t, "pl7", regions[0]["id"])
	assert.Equal(t, "Mazowieckie", regions[0]["label"])

	cities := regions[1]["cities"].([]any)
	require.Len(t, cities, 1)
	city := cities[0].(map[string]any)
	assert.Equal(t, "Kraków", city["name"])
	assert.Equal(t, "krakow", city["slug"])

	point := city["points"].([]any)[0].(map[string]any)
	assert.Equal(t, "C2", point["centrala"])
	assert.Equal(t, "Sklep", point["nom"])
	assert.Nil(t, point["telefon"])
	assert.Equal(t, "sklep@example.pl", point["email"])
	assert.Equal(t, false, point["doladowanie"])
	assert.Equal(t, true, point["sprzedaz"])
}

func TestVersionCommand(t *testing.T) {
	out, err := execute(t, "version")
	require.NoError(t, err)
	assert.Contains(t, out, "Points Directory")
	assert.Contains(t, out, "Version:    "+Version)
	assert.Contains(t, out, "Inputs:     SpreadsheetML (.xml), XLSX (.xlsx), CSV (.csv)")
}
