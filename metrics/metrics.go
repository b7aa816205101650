package metrics

import (
	"time"

	"github.com/mwantia/kvfs/data"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
)

const namespace = "kvfs"

// Metrics holds the collectors updated by the registry while it executes commands.
type Metrics struct {
	registry *prometheus.Registry

	commands *prometheus.CounterVec
	duration *prometheus.HistogramVec
	entries  *prometheus.GaugeVec
	mounts   prometheus.Gauge
}

func New() *Metrics {
	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),                                       // Metrics from Go runtime.
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}), // Metrics about the current UNIX process.
	)

	m := &Metrics{
		registry: registry,
		commands: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "commands_total",
			Help:      "Number of executed commands by verb and outcome.",
		}, []string{"verb", "outcome"}),
		duration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "command_duration_seconds",
			Help:      "Time spent executing a command.",
			Buckets:   prometheus.ExponentialBuckets(0.00001, 4, 10),
		}, []string{"verb"}),
		entries: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "entries",
			Help:      "Superblock entry counters per mounted device.",
		}, []string{"device", "kind"}),
		mounts: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "mounted_filesystems",
			Help:      "Number of filesystems in the registry.",
		}),
	}

	registry.MustRegister(m.commands, m.duration, m.entries, m.mounts)
	return m
}

func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// Outcome maps an execution error onto the outcome label.
func Outcome(err error) string {
	if err == nil {
		return "ok"
	}
	return data.KindOf(err).String()
}

func (m *Metrics) ObserveCommand(verb string, err error, elapsed time.Duration) {
	if m == nil {
		return
	}
	m.commands.WithLabelValues(verb, Outcome(err)).Inc()
	m.duration.WithLabelValues(verb).Observe(elapsed.Seconds())
}

func (m *Metrics) SetEntries(sb data.Superblock) {
	if m == nil {
		return
	}
	m.entries.WithLabelValues(sb.Device, "files").Set(float64(sb.FileCount))
	m.entries.WithLabelValues(sb.Device, "directories").Set(float64(sb.DirCount))
}

func (m *Metrics) SetMounts(n int) {
	if m == nil {
		return
	}
	m.mounts.Set(float64(n))
}
