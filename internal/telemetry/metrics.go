package telemetry

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/Faultbox/orrery/pkg/orbit"
)

// Metrics collects demo metrics on a private registry.
type Metrics struct {
	registry *prometheus.Registry

	frameDuration prometheus.Histogram
	angularSpeed  *prometheus.GaugeVec
	alignments    prometheus.Counter
	frozen        prometheus.Gauge
	clients       prometheus.Gauge
	messages      prometheus.Counter

	wasAligned bool
}

// NewMetrics creates and registers every collector.
func NewMetrics() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		frameDuration: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "orrery_frame_duration_seconds",
				Help:    "Time between rendered frames",
				Buckets: []float64{0.001, 0.004, 0.008, 0.016, 0.033, 0.066, 0.1, 0.25},
			},
		),
		angularSpeed: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "orrery_angular_speed_radians",
				Help: "Current angular speed per body in radians per second",
			},
			[]string{"body"},
		),
		alignments: prometheus.NewCounter(
			prometheus.CounterOpts{
				Name: "orrery_alignments_total",
				Help: "Number of times the bodies entered alignment",
			},
		),
		frozen: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Name: "orrery_frozen",
				Help: "1 while the orbits are frozen",
			},
		),
		clients: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Name: "orrery_telemetry_clients",
				Help: "Connected websocket clients",
			},
		),
		messages: prometheus.NewCounter(
			prometheus.CounterOpts{
				Name: "orrery_telemetry_messages_total",
				Help: "Snapshots written to websocket clients",
			},
		),
	}

	m.registry.MustRegister(
		m.frameDuration,
		m.angularSpeed,
		m.alignments,
		m.frozen,
		m.clients,
		m.messages,
	)
	return m
}

// ObserveFrame records one frame's duration and orbital state. It is
// called from the render loop only.
func (m *Metrics) ObserveFrame(dt time.Duration, s Snapshot) {
	m.frameDuration.Observe(dt.Seconds())
	m.angularSpeed.WithLabelValues("earth").Set(float64(s.Earth.AngularSpeed))
	m.angularSpeed.WithLabelValues("moon").Set(float64(s.Moon.AngularSpeed))

	if s.Aligned && !m.wasAligned {
		m.alignments.Inc()
	}
	m.wasAligned = s.Aligned

	if s.Phase == orbit.PhaseFrozen.String() {
		m.frozen.Set(1)
	} else {
		m.frozen.Set(0)
	}
}

// Handler serves the registry in the Prometheus text format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}
