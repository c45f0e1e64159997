// Package metrics exports a process aggregate as Prometheus gauges, written
// to a file for node_exporter's textfile collector.
package metrics

import (
	"os"
	"path/filepath"

	"scaph2cc/internal/aggregate"
	"scaph2cc/internal/report"

	"github.com/prometheus/client_golang/prometheus"
)

var labels = []string{"app_id", "branch", "commit_sha", "process"}

// Exporter holds the gauges of one run on a private registry.
type Exporter struct {
	registry *prometheus.Registry

	power    *prometheus.GaugeVec
	duration *prometheus.GaugeVec
	energy   *prometheus.GaugeVec
	energyWh *prometheus.GaugeVec
	samples  *prometheus.GaugeVec
}

// NewExporter creates the gauges and registers them.
func NewExporter() *Exporter {
	e := &Exporter{
		registry: prometheus.NewRegistry(),
		power: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name: "scaph2cc_process_power_microwatts",
			Help: "Mean power of the process over its active duration.",
		}, labels),
		duration: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name: "scaph2cc_process_duration_seconds",
			Help: "Seconds between the first and last reading of the process.",
		}, labels),
		energy: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name: "scaph2cc_process_energy_microwatt_seconds",
			Help: "Energy consumed by the process.",
		}, labels),
		energyWh: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name: "scaph2cc_process_energy_watt_hours",
			Help: "Energy consumed by the process in watt-hours.",
		}, labels),
		samples: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name: "scaph2cc_process_samples",
			Help: "Number of readings matched for the process.",
		}, labels),
	}

	e.registry.MustRegister(e.power, e.duration, e.energy, e.energyWh, e.samples)
	return e
}

// Observe records the metrics of one process.
func (e *Exporter) Observe(m aggregate.Metrics, ctx report.Context) {
	values := []string{ctx.AppID, ctx.Branch, ctx.CommitSHA, m.Process}

	e.power.WithLabelValues(values...).Set(m.MeanPower)
	e.duration.WithLabelValues(values...).Set(m.Duration)
	e.energy.WithLabelValues(values...).Set(m.Energy.MicrowattSeconds)
	e.energyWh.WithLabelValues(values...).Set(m.Energy.WattHours)
	e.samples.WithLabelValues(values...).Set(float64(m.Samples))
}

// Gatherer exposes the registry.
func (e *Exporter) Gatherer() prometheus.Gatherer {
	return e.registry
}

// WriteTextfile writes all gauges in the text exposition format, creating
// parent directories if needed. The file is replaced atomically.
func (e *Exporter) WriteTextfile(path string) error {
	dir := filepath.Dir(path)
	if dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return err
		}
	}
	return prometheus.WriteToTextfile(path, e.registry)
}
