package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics provides observability for eID reads.
type Metrics struct {
	// Reads by outcome: "complete", "partial", "empty"
	Reads *prometheus.CounterVec

	// Fields that could not be read, by field name
	MissingFields *prometheus.CounterVec

	ExtractLatency prometheus.Histogram

	DropBytes prometheus.Histogram
}

// New creates eID metrics registered on the default registry.
func New() *Metrics {
	return NewWithRegisterer(prometheus.DefaultRegisterer)
}

// NewWithRegisterer registers on reg, so tests can use a private registry.
func NewWithRegisterer(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		Reads: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "eid_reader_reads_total",
			Help: "Total eID documents read by outcome",
		}, []string{"outcome"}),

		MissingFields: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "eid_reader_missing_fields_total",
			Help: "Record fields that were absent from a read document",
		}, []string{"field"}),

		ExtractLatency: factory.NewHistogram(prometheus.HistogramOpts{
			Name:    "eid_reader_extract_duration_seconds",
			Help:    "Duration of parsing and extracting one document",
			Buckets: []float64{0.0001, 0.0005, 0.001, 0.0025, 0.005, 0.01, 0.05},
		}),

		DropBytes: factory.NewHistogram(prometheus.HistogramOpts{
			Name:    "eid_reader_drop_bytes",
			Help:    "Size of dropped documents",
			Buckets: prometheus.ExponentialBuckets(256, 4, 8),
		}),
	}
}

// IncrementRead records a read outcome.
func (m *Metrics) IncrementRead(outcome string) {
	if m != nil {
		m.Reads.WithLabelValues(outcome).Inc()
	}
}

// IncrementMissing records the fields absent from one read.
func (m *Metrics) IncrementMissing(fields []string) {
	if m == nil {
		return
	}
	for _, f := range fields {
		m.MissingFields.WithLabelValues(f).Inc()
	}
}

// ObserveExtract records how long extraction took and how big the input was.
func (m *Metrics) ObserveExtract(d time.Duration, size int) {
	if m != nil {
		m.ExtractLatency.Observe(d.Seconds())
		m.DropBytes.Observe(float64(size))
	}
}
