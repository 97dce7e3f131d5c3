// =============================================================================
// Points Directory - Converter Module
// =============================================================================
//
// This module contains the pipeline that turns the points export into the
// HTML directory page.
//
// PIPELINE:
//   1. Read the input sheet (SpreadsheetML, XLSX or CSV)
//   2. Skip blank rows and map every other row to a PointRecord
//   3. Group the records by region, then city
//   4. Optionally sort the directory for presentation
//   5. Render the page in memory
//   6. Replace the output file atomically
//
// FAILURE MODEL:
//   The run is fail-fast. The first malformed row, unreadable input or
//   template failure ends the run before anything is written, so an existing
//   output file survives a failed run untouched. Unrecognized regions are
//   reported as warnings and never fail the run.
//
// =============================================================================

package converter

import (
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"

	"github.com/ginjaninja78/points-directory/internal/config"
	"github.com/ginjaninja78/points-directory/internal/csvparser"
	"github.com/ginjaninja78/points-directory/internal/htmlwriter"
	"github.com/ginjaninja78/points-directory/internal/observability"
	"github.com/ginjaninja78/points-directory/internal/types"
	"github.com/ginjaninja78/points-directory/internal/validation"
	"github.com/ginjaninja78/points-directory/internal/xlsxparser"
	"github.com/ginjaninja78/points-directory/internal/xmlparser"
	"github.com/ginjaninja78/points-directory/pkg/utils"
)

// =============================================================================
// RESULT STRUCTURE
// =============================================================================

// Result represents the outcome of a run.
type Result struct {
	// RunID identifies the run in logs and on the generated page.
	RunID string

	// InputFile is the path of the sheet that was read.
	InputFile string

	// OutputFile is the path of the generated page.
	// This is empty if the run failed.
	OutputFile string

	// Success indicates whether the page was written.
	Success bool

	// Error contains the error if the run failed.
	// Classify it with errors.Is against the validation sentinels.
	Error error

	// Stats contains run statistics. They are filled as far as the run got.
	Stats Stats

	// Warnings lists the unrecognized regions, one entry per region slug.
	Warnings []*validation.RegionWarning
}

// Stats contains statistics about a run.
type Stats struct {
	// RowsRead is the number of data rows read, header rows excluded.
	RowsRead int

	// BlankRowsSkipped is the number of rows without any data node.
	BlankRowsSkipped int

	// Records is the number of rows mapped to point records.
	Records int

	// Regions and Cities count the buckets of the directory.
	Regions int
	Cities  int

	// UnrecognizedRegionRecords counts records without a region identifier.
	UnrecognizedRegionRecords int

	// OutputBytes is the size of the written page.
	OutputBytes int

	// Duration is the wall time of the run.
	Duration time.Duration
}

// Report is the product of Build: the grouped directory and what was
// learned while building it.
type Report struct {
	Directory *types.Directory
	Stats     Stats
	Warnings  []*validation.RegionWarning
}

// =============================================================================
// CONVERTER STRUCTURE
// =============================================================================

// Converter runs the pipeline for one configuration.
type Converter struct {
	config  *config.MainConfig
	logger  *slog.Logger
	metrics *observability.Metrics
	clock   clockwork.Clock
}

// Option customizes a Converter.
type Option func(*Converter)

// WithLogger sets the logger. The default discards everything.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Converter) { c.logger = logger }
}

// WithMetrics sets the metrics the run reports into.
func WithMetrics(m *observability.Metrics) Option {
	return func(c *Converter) { c.metrics = m }
}

// WithClock sets the clock used for the page timestamp and run duration.
func WithClock(clock clockwork.Clock) Option {
	return func(c *Converter) { c.clock = clock }
}

// =============================================================================
// CONSTRUCTOR
// =============================================================================

// New creates a new Converter.
//
// PARAMETERS:
//   - cfg: The validated main configuration.
//   - opts: Optional logger, metrics and clock.
func New(cfg *config.MainConfig, opts ...Option) *Converter {
	c := &Converter{
		config:  cfg,
		logger:  observability.Discard(),
		metrics: observability.NewMetrics(),
		clock:   clockwork.NewRealClock(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Metrics returns the metrics the converter reports into.
func (c *Converter) Metrics() *observability.Metrics {
	return c.metrics
}

// =============================================================================
// BUILD
// =============================================================================

// Build reads the input and produces the grouped directory without
// rendering or writing anything.
//
// RETURNS:
//   - The report. Its Stats are filled as far as the build got, also on error.
//   - An error wrapping validation.ErrIO or validation.ErrMalformedRow.
func (c *Converter) Build() (*Report, error) {
	return c.build(c.logger)
}

func (c *Converter) build(logger *slog.Logger) (*Report, error) {
	report := &Report{}

	// =========================================================================
	// STEP 1: READ INPUT
	// =========================================================================

	sheet, err := c.readSheet()
	if err != nil {
		if errors.Is(err, validation.ErrMalformedRow) {
			c.metrics.MalformedRows.Inc()
			return report, fmt.Errorf("failed to read %s: %w", c.config.InputFile, err)
		}
		return report, fmt.Errorf("%w: failed to read %s: %w", validation.ErrIO, c.config.InputFile, err)
	}

	logger.Debug("read input sheet", "file", c.config.InputFile, "sheet", sheet.Name, "rows", len(sheet.Rows))

	// =========================================================================
	// STEP 2: MAP ROWS
	// =========================================================================
	// The first malformed row aborts the build.

	records := make([]types.PointRecord, 0, len(sheet.Rows))
	for _, row := range sheet.Rows {
		report.Stats.RowsRead++
		c.metrics.RowsRead.Inc()

		if row.IsBlank() {
			report.Stats.BlankRowsSkipped++
			c.metrics.BlankRowsSkipped.Inc()
			logger.Debug("skipping blank row", "row", row.Number)
			continue
		}

		rec, err := MapRow(row)
		if err != nil {
			c.metrics.MalformedRows.Inc()
			return report, err
		}
		records = append(records, rec)
	}

	report.Stats.Records = len(records)
	c.metrics.Records.Add(float64(len(records)))

	// =========================================================================
	// STEP 3: GROUP
	// =========================================================================

	dir, warnings := Group(records, UnknownRegionPolicy{
		Bucket:      c.config.UnknownRegion == config.UnknownRegionBucket,
		BucketLabel: c.config.UnknownRegionLabel,
	})

	for _, w := range warnings {
		report.Stats.UnrecognizedRegionRecords += w.Records
		logger.Warn("unrecognized region", "region", w.Region, "slug", w.Slug, "first_row", w.FirstRow, "records", w.Records)
	}
	c.metrics.UnrecognizedRegionPoints.Add(float64(report.Stats.UnrecognizedRegionRecords))

	// =========================================================================
	// STEP 4: PRESENTATION ORDER
	// =========================================================================

	if c.config.SortOutput {
		dir = dir.Sorted(htmlwriter.PolishCompare())
	}

	report.Directory = dir
	report.Warnings = warnings
	report.Stats.Regions = len(dir.Regions)
	report.Stats.Cities = dir.CityCount()
	c.metrics.Regions.Set(float64(report.Stats.Regions))
	c.metrics.Cities.Set(float64(report.Stats.Cities))

	return report, nil
}

// readSheet picks the reader for the configured input format.
func (c *Converter) readSheet() (*types.Sheet, error) {
	format := c.config.InputFormat
	if format == "" || format == config.FormatAuto {
		format = utils.DetectFormat(c.config.InputFile)
	}

	switch format {
	case config.FormatXLSX:
		return xlsxparser.ParseFile(c.config.InputFile, xlsxparser.Options{
			SheetName:  c.config.SheetName,
			HeaderRows: c.config.HeaderRows,
		})
	case config.FormatCSV:
		return csvparser.ParseFile(c.config.InputFile, csvparser.Options{
			Delimiter:  c.config.CSVDelimiter,
			Encoding:   c.config.InputEncoding,
			HeaderRows: c.config.HeaderRows,
		})
	case config.FormatXML:
		return xmlparser.ParseFile(c.config.InputFile, xmlparser.Options{
			SheetName:  c.config.SheetName,
			HeaderRows: c.config.HeaderRows,
		})
	default:
		return nil, fmt.Errorf("unknown input format %q", format)
	}
}

// =============================================================================
// MAIN PROCESSING FUNCTION
// =============================================================================

// Run builds the directory, renders the page and writes it.
//
// RETURNS:
//   - A Result describing the outcome. Run never panics on bad input; every
//     failure is reported through Result.Error.
func (c *Converter) Run() (result Result) {
	start := c.clock.Now()
	result = Result{
		RunID:     uuid.New().String(),
		InputFile: c.config.InputFile,
	}
	logger := c.logger.With("run_id", result.RunID)

	defer func() {
		result.Stats.Duration = c.clock.Since(start)
		c.metrics.RunDuration.Set(result.Stats.Duration.Seconds())
		if result.Success {
			c.metrics.LastSuccess.Set(float64(c.clock.Now().Unix()))
		}
		c.writeMetrics(logger)
	}()

	logger.Info("building points directory", "input", c.config.InputFile, "output", c.config.OutputFile)

	// =========================================================================
	// STEP 1: BUILD DIRECTORY
	// =========================================================================

	report, err := c.build(logger)
	result.Stats = report.Stats
	result.Warnings = report.Warnings
	if err != nil {
		logger.Error("build failed", "error", err)
		result.Error = err
		return result
	}

	// =========================================================================
	// STEP 2: RENDER PAGE
	// =========================================================================
	// The whole document is rendered before the output file is touched.

	writer, err := htmlwriter.New(htmlwriter.Options{TemplateFile: c.config.TemplateFile})
	if err != nil {
		logger.Error("template failed", "error", err)
		result.Error = err
		return result
	}

	doc, err := writer.Render(htmlwriter.Page{
		States:      report.Directory,
		GeneratedAt: start,
		RunID:       result.RunID,
	})
	if err != nil {
		logger.Error("render failed", "error", err)
		result.Error = err
		return result
	}

	// =========================================================================
	// STEP 3: WRITE OUTPUT
	// =========================================================================

	if err := htmlwriter.Write(c.config.OutputFile, doc); err != nil {
		logger.Error("write failed", "error", err)
		result.Error = fmt.Errorf("failed to write output: %w", err)
		return result
	}

	result.Success = true
	result.OutputFile = c.config.OutputFile
	result.Stats.OutputBytes = len(doc)
	c.metrics.OutputBytes.Set(float64(len(doc)))

	logger.Info("wrote points directory",
		"output", result.OutputFile,
		"records", result.Stats.Records,
		"regions", result.Stats.Regions,
		"cities", result.Stats.Cities,
		"warnings", len(result.Warnings),
	)

	return result
}

// writeMetrics exports the run metrics when a textfile is configured. A
// failed export is logged and does not change the run outcome.
func (c *Converter) writeMetrics(logger *slog.Logger) {
	if c.config.MetricsFile == "" {
		return
	}
	if err := c.metrics.WriteTextfile(c.config.MetricsFile); err != nil {
		logger.Warn("metrics export failed", "file", c.config.MetricsFile, "error", err)
	}
}
