// Package metrics provides Prometheus metrics for verification runs.
//
// A batch tool has no scrape endpoint, so the Manager can dump its
// registry in text exposition format for a node_exporter textfile
// collector instead.
package metrics

import (
	"bytes"
	"fmt"
	"os"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/common/expfmt"
)

const defaultNamespace = "dmst"

// Manager manages the Prometheus metrics for one verification run.
type Manager struct {
	namespace   string
	constLabels map[string]string
	registry    *prometheus.Registry

	flightsChecked prometheus.Counter
	flightsSkipped prometheus.Counter
	freeMismatches prometheus.Counter
	taskMismatches prometheus.Counter
	runDuration    prometheus.Gauge
}

// NewManager creates a metrics manager with configuration options.
func NewManager(opts ...Option) *Manager {
	m := &Manager{
		namespace: defaultNamespace,
		registry:  prometheus.NewRegistry(),
	}
	for _, opt := range opts {
		opt(m)
	}

	factory := promauto.With(m.registry)
	m.flightsChecked = factory.NewCounter(prometheus.CounterOpts{
		Namespace:   m.namespace,
		Name:        "flights_checked_total",
		Help:        "Flights that passed the preconditions and were verified.",
		ConstLabels: m.constLabels,
	})
	m.flightsSkipped = factory.NewCounter(prometheus.CounterOpts{
		Namespace:   m.namespace,
		Name:        "flights_skipped_total",
		Help:        "Flights skipped for missing handicap index or au contest.",
		ConstLabels: m.constLabels,
	})
	m.freeMismatches = factory.NewCounter(prometheus.CounterOpts{
		Namespace:   m.namespace,
		Name:        "free_mismatches_total",
		Help:        "Free scores differing from the API beyond tolerance.",
		ConstLabels: m.constLabels,
	})
	m.taskMismatches = factory.NewCounter(prometheus.CounterOpts{
		Namespace:   m.namespace,
		Name:        "task_mismatches_total",
		Help:        "Task scores differing from the API beyond tolerance.",
		ConstLabels: m.constLabels,
	})
	m.runDuration = factory.NewGauge(prometheus.GaugeOpts{
		Namespace:   m.namespace,
		Name:        "run_duration_seconds",
		Help:        "Wall-clock duration of the verification run.",
		ConstLabels: m.constLabels,
	})
	return m
}

// RecordChecked adds to the checked flights counter.
func (m *Manager) RecordChecked(n int) { m.flightsChecked.Add(float64(n)) }

// RecordSkipped adds to the skipped flights counter.
func (m *Manager) RecordSkipped(n int) { m.flightsSkipped.Add(float64(n)) }

// RecordMismatches adds the per-type mismatch counts.
func (m *Manager) RecordMismatches(free, task int) {
	m.freeMismatches.Add(float64(free))
	m.taskMismatches.Add(float64(task))
}

// RecordRunDuration sets the run duration gauge.
func (m *Manager) RecordRunDuration(d time.Duration) {
	m.runDuration.Set(d.Seconds())
}

// WriteTextfile gathers the registry and writes it in Prometheus text
// exposition format to path, via a temp file and rename so collectors
// never read a partial file.
func (m *Manager) WriteTextfile(path string) error {
	families, err := m.registry.Gather()
	if err != nil {
		return fmt.Errorf("%w: gather: %v", ErrWriteTextfile, err)
	}

	var buf bytes.Buffer
	for _, mf := range families {
		if _, err := expfmt.MetricFamilyToText(&buf, mf); err != nil {
			return fmt.Errorf("%w: encode: %v", ErrWriteTextfile, err)
		}
	}

	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, buf.Bytes(), 0o644); err != nil {
		return fmt.Errorf("%w: %v", ErrWriteTextfile, err)
	}
	if err := os.Rename(tmp, path); err != nil {
		return fmt.Errorf("%w: %v", ErrWriteTextfile, err)
	}
	return nil
}
