package observability

import (
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the gauges and counters of a single directory run. Each run
// gets its own registry; there is no long-lived process to scrape, so the
// values are written to a textfile for node_exporter's textfile collector.
type Metrics struct {
	registry *prometheus.Registry

	RowsRead                 prometheus.Counter
	BlankRowsSkipped         prometheus.Counter
	Records                  prometheus.Counter
	MalformedRows            prometheus.Counter
	UnrecognizedRegionPoints prometheus.Counter
	Regions                  prometheus.Gauge
	Cities                   prometheus.Gauge
	RunDuration              prometheus.Gauge
	LastSuccess              prometheus.Gauge
	OutputBytes              prometheus.Gauge
}

// NewMetrics creates and registers all run metrics on a fresh registry.
func NewMetrics() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		RowsRead: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "points",
			Name:      "rows_read_total",
			Help:      "Data rows read from the input sheet, header rows excluded.",
		}),
		BlankRowsSkipped: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "points",
			Name:      "blank_rows_skipped_total",
			Help:      "Rows without any data node.",
		}),
		Records: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "points",
			Name:      "records_total",
			Help:      "Rows successfully mapped to point records.",
		}),
		MalformedRows: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "points",
			Name:      "malformed_rows_total",
			Help:      "Rows rejected as malformed. Any value above zero means the run failed.",
		}),
		UnrecognizedRegionPoints: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "points",
			Name:      "unrecognized_region_records_total",
			Help:      "Records whose region has no registry identifier.",
		}),
		Regions: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "points",
			Name:      "regions",
			Help:      "Region buckets in the generated directory.",
		}),
		Cities: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "points",
			Name:      "cities",
			Help:      "City buckets in the generated directory.",
		}),
		RunDuration: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "points",
			Name:      "run_duration_seconds",
			Help:      "Wall time of the last run.",
		}),
		LastSuccess: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "points",
			Name:      "last_success_timestamp_seconds",
			Help:      "Unix time of the last successful run, 0 if it failed.",
		}),
		OutputBytes: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "points",
			Name:      "output_bytes",
			Help:      "Size of the written page.",
		}),
	}

	m.registry.MustRegister(
		m.RowsRead,
		m.BlankRowsSkipped,
		m.Records,
		m.MalformedRows,
		m.UnrecognizedRegionPoints,
		m.Regions,
		m.Cities,
		m.RunDuration,
		m.LastSuccess,
		m.OutputBytes,
	)

	return m
}

// Registry exposes the run registry, mainly for tests.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// WriteTextfile writes the current values to path in the text exposition
// format. The write goes through a temporary file and a rename.
func (m *Metrics) WriteTextfile(path string) error {
	if err := prometheus.WriteToTextfile(path, m.registry); err != nil {
		return fmt.Errorf("failed to write metrics textfile: %w", err)
	}
	return nil
}
