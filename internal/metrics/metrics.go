// Package metrics collects per-invocation scan counters in a private
// prometheus registry. A nil *Metrics is valid and records nothing.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/cer4sco/freesscan/internal/types"
)

type Metrics struct {
	reg          *prometheus.Registry
	probes       *prometheus.CounterVec
	findings     *prometheus.CounterVec
	filesScanned prometheus.Counter
	duration     *prometheus.HistogramVec
}

func New() *Metrics {
	m := &Metrics{
		reg: prometheus.NewRegistry(),
		probes: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "freesscan_probes_total",
			Help: "TCP probes by outcome.",
		}, []string{"outcome"}),
		findings: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "freesscan_findings_total",
			Help: "Findings reported by severity.",
		}, []string{"severity"}),
		filesScanned: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "freesscan_files_scanned_total",
			Help: "Files passed to the secret detector.",
		}),
		duration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "freesscan_scan_duration_seconds",
			Help:    "Wall time of a scan phase.",
			Buckets: prometheus.ExponentialBuckets(0.01, 4, 8),
		}, []string{"type"}),
	}
	m.reg.MustRegister(m.probes, m.findings, m.filesScanned, m.duration)
	return m
}

func (m *Metrics) ObserveProbe(outcome string) {
	if m == nil {
		return
	}
	m.probes.WithLabelValues(outcome).Inc()
}

func (m *Metrics) ObserveFindings(fs []types.Finding) {
	if m == nil {
		return
	}
	for _, f := range fs {
		m.findings.WithLabelValues(string(f.Severity)).Inc()
	}
}

func (m *Metrics) FileScanned() {
	if m == nil {
		return
	}
	m.filesScanned.Inc()
}

func (m *Metrics) ObserveDuration(scanType string, d time.Duration) {
	if m == nil {
		return
	}
	m.duration.WithLabelValues(scanType).Observe(d.Seconds())
}

// WriteFile writes all metrics in the node-exporter textfile format.
func (m *Metrics) WriteFile(path string) error {
	if m == nil {
		return nil
	}
	return prometheus.WriteToTextfile(path, m.reg)
}
