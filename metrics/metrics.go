package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "hydrobr"

// Metrics holds the Prometheus counters and histograms of a run.
type Metrics struct {
	BlocksRead      prometheus.Counter
	BlocksMalformed prometheus.Counter

	// Station outcomes.
	StationsMerged    prometheus.Counter
	StationsEmpty     prometheus.Counter
	StationsQualified prometheus.Counter
	StationsDropped   *prometheus.CounterVec // labels: reason={no data in range,record span too short,...}

	MergeDuration prometheus.Histogram

	registry *prometheus.Registry
}

// NewMetrics creates all run metrics and registers them on a private registry.
func NewMetrics() *Metrics {
	m := &Metrics{
		BlocksRead: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "blocks_read_total",
			Help:      "Total monthly blocks read from the dumps.",
		}),
		BlocksMalformed: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "blocks_malformed_total",
			Help:      "Total monthly blocks dropped because they failed validation.",
		}),
		StationsMerged: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "stations_merged_total",
			Help:      "Total stations merged into a non-empty canonical series.",
		}),
		StationsEmpty: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "stations_empty_total",
			Help:      "Total stations with no observation left after merging.",
		}),
		StationsQualified: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "stations_qualified_total",
			Help:      "Total stations kept by the qualification filter.",
		}),
		StationsDropped: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "stations_dropped_total",
			Help:      "Stations dropped by the qualification filter, by reason.",
		}, []string{"reason"}),
		MergeDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "merge_duration_seconds",
			Help:      "Duration of merging the blocks of one station.",
			Buckets:   []float64{0.0005, 0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1},
		}),
		registry: prometheus.NewRegistry(),
	}

	m.registry.MustRegister(
		m.BlocksRead,
		m.BlocksMalformed,
		m.StationsMerged,
		m.StationsEmpty,
		m.StationsQualified,
		m.StationsDropped,
		m.MergeDuration,
	)

	return m
}

// WriteTextfile persists the current values in the node-exporter textfile format.
// An empty path is a no-op.
func (m *Metrics) WriteTextfile(path string) error {
	if path == "" {
		return nil
	}
	return prometheus.WriteToTextfile(path, m.registry)
}
