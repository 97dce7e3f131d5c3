// =============================================================================
// Points Directory - Configuration Module
// =============================================================================
//
// This module loads the main configuration file (config.yaml by default) and
// fills in defaults for everything the file leaves out. Running with no
// configuration file at all is valid: the defaults reproduce the classic
// behaviour of reading punkty.xml and writing points_lista1.html in the
// working directory.
//
// =============================================================================

package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// DefaultPath is the configuration file looked up when --config is not given.
const DefaultPath = "config.yaml"

// Input formats.
const (
	FormatAuto = "auto"
	FormatXML  = "xml"
	FormatXLSX = "xlsx"
	FormatCSV  = "csv"
)

// Unknown region policies.
const (
	// UnknownRegionLabel keeps an unrecognized region under its own label.
	UnknownRegionLabel = "label"

	// UnknownRegionBucket collapses all unrecognized regions into a single
	// region labelled UnknownRegionLabel.
	UnknownRegionBucket = "bucket"
)

// =============================================================================
// MAIN CONFIGURATION STRUCTURE
// =============================================================================

// MainConfig holds the application configuration.
type MainConfig struct {
	// =========================================================================
	// INPUT SETTINGS
	// =========================================================================

	// InputFile is the spreadsheet export to read.
	// Default: "punkty.xml"
	InputFile string `yaml:"input_file"`

	// InputFormat selects the reader: "auto", "xml" (SpreadsheetML), "xlsx"
	// or "csv". "auto" picks by file extension.
	// Default: "auto"
	InputFormat string `yaml:"input_format"`

	// SheetName selects the worksheet. Empty means the first one with data.
	SheetName string `yaml:"sheet_name"`

	// HeaderRows is the number of leading rows to skip.
	// Default: 1
	HeaderRows int `yaml:"header_rows"`

	// CSVDelimiter is the field separator of CSV input.
	// Default: ";"
	CSVDelimiter string `yaml:"csv_delimiter"`

	// InputEncoding is the character set of CSV input, e.g. "windows-1250".
	// SpreadsheetML declares its own encoding and XLSX is always UTF-8.
	// Default: "utf-8"
	InputEncoding string `yaml:"input_encoding"`

	// =========================================================================
	// OUTPUT SETTINGS
	// =========================================================================

	// TemplateFile is an html/template file for the page. Empty means the
	// built-in template.
	TemplateFile string `yaml:"template_file"`

	// OutputFile is the HTML page to write. It is replaced atomically.
	// Default: "points_lista1.html"
	OutputFile string `yaml:"output_file"`

	// SortOutput orders regions and cities alphabetically (Polish collation)
	// on the page instead of first-seen order.
	SortOutput bool `yaml:"sort_output"`

	// =========================================================================
	// GROUPING SETTINGS
	// =========================================================================

	// UnknownRegion is the policy for regions missing from the registry:
	// "label" or "bucket".
	// Default: "label"
	UnknownRegion string `yaml:"unknown_region"`

	// UnknownRegionLabel is the label of the shared bucket when
	// UnknownRegion is "bucket".
	// Default: "Nieznane województwo"
	UnknownRegionLabel string `yaml:"unknown_region_label"`

	// =========================================================================
	// LOGGING AND METRICS
	// =========================================================================

	// LogLevel: "debug", "info", "warn", "error".
	// Default: "info"
	LogLevel string `yaml:"log_level"`

	// LogFormat: "text" or "json".
	// Default: "text"
	LogFormat string `yaml:"log_format"`

	// MetricsFile, when set, receives the run metrics in the Prometheus
	// text exposition format after every run.
	MetricsFile string `yaml:"metrics_file"`
}

// =============================================================================
// CONFIGURATION LOADING FUNCTIONS
// =============================================================================

// Default returns a configuration with every default applied.
func Default() *MainConfig {
	var config MainConfig
	applyMainConfigDefaults(&config)
	return &config
}

// LoadMainConfig loads the configuration from a YAML file.
//
// A missing file is only tolerated when configPath is DefaultPath; in that
// case the defaults are returned. An explicitly named file must exist.
func LoadMainConfig(configPath string) (*MainConfig, error) {
	data, err := os.ReadFile(configPath)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) && configPath == DefaultPath {
			return Default(), nil
		}
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var config MainConfig
	if err := yaml.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	applyMainConfigDefaults(&config)

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &config, nil
}

// applyMainConfigDefaults sets default values for any unset configuration options.
func applyMainConfigDefaults(config *MainConfig) {
	if config.InputFile == "" {
		config.InputFile = "punkty.xml"
	}
	if config.InputFormat == "" {
		config.InputFormat = FormatAuto
	}
	if config.HeaderRows == 0 {
		config.HeaderRows = 1
	}
	if config.CSVDelimiter == "" {
		config.CSVDelimiter = ";"
	}
	if config.InputEncoding == "" {
		config.InputEncoding = "utf-8"
	}
	if config.OutputFile == "" {
		config.OutputFile = "points_lista1.html"
	}
	if config.UnknownRegion == "" {
		config.UnknownRegion = UnknownRegionLabel
	}
	if config.UnknownRegionLabel == "" {
		config.UnknownRegionLabel = "Nieznane województwo"
	}
	if config.LogLevel == "" {
		config.LogLevel = "info"
	}
	if config.LogFormat == "" {
		config.LogFormat = "text"
	}
}

// Validate checks enumerated settings. It is called by LoadMainConfig and
// again by commands after flag overrides are applied.
func (c *MainConfig) Validate() error {
	c.InputFormat = strings.ToLower(c.InputFormat)
	switch c.InputFormat {
	case FormatAuto, FormatXML, FormatXLSX, FormatCSV:
	default:
		return fmt.Errorf("unknown input_format %q", c.InputFormat)
	}

	switch c.UnknownRegion {
	case UnknownRegionLabel, UnknownRegionBucket:
	default:
		return fmt.Errorf("unknown unknown_region policy %q", c.UnknownRegion)
	}

	switch strings.ToLower(c.LogLevel) {
	case "debug", "info", "warn", "warning", "error":
	default:
		return fmt.Errorf("unknown log_level %q", c.LogLevel)
	}

	switch strings.ToLower(c.LogFormat) {
	case "text", "json":
	default:
		return fmt.Errorf("unknown log_format %q", c.LogFormat)
	}

	if c.HeaderRows < 0 {
		return fmt.Errorf("header_rows must not be negative, got %d", c.HeaderRows)
	}

	return nil
}
