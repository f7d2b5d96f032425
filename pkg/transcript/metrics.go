package transcript

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds the Prometheus metrics of transcript scans.
// A nil *Metrics records nothing.
type Metrics struct {
	registry *prometheus.Registry

	ScansTotal        *prometheus.CounterVec
	ScanSeconds       prometheus.Histogram
	TranscriptsTotal  prometheus.Counter
	MessagesTotal     prometheus.Counter
	LinesDroppedTotal *prometheus.CounterVec
	Participants      prometheus.Gauge
}

// NewMetrics creates scan metrics on a private registry, so that a scan
// can be written out as a node-exporter textfile.
func NewMetrics() *Metrics {
	reg := prometheus.NewRegistry()
	factory := promauto.With(reg)

	return &Metrics{
		registry: reg,
		ScansTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "zoomchat_scans_total",
				Help: "Total folder scans by outcome",
			},
			[]string{"status"},
		),
		ScanSeconds: factory.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "zoomchat_scan_seconds",
				Help:    "Duration of a folder scan",
				Buckets: []float64{0.005, 0.01, 0.05, 0.1, 0.5, 1, 5, 10},
			},
		),
		TranscriptsTotal: factory.NewCounter(
			prometheus.CounterOpts{
				Name: "zoomchat_transcripts_parsed_total",
				Help: "Total transcripts parsed",
			},
		),
		MessagesTotal: factory.NewCounter(
			prometheus.CounterOpts{
				Name: "zoomchat_messages_total",
				Help: "Total messages attributed to participants",
			},
		),
		LinesDroppedTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "zoomchat_lines_dropped_total",
				Help: "Total transcript lines not attributed to anyone",
			},
			[]string{"reason"},
		),
		Participants: factory.NewGauge(
			prometheus.GaugeOpts{
				Name: "zoomchat_participants",
				Help: "Participants found by the last scan",
			},
		),
	}
}

// Registry returns the registry the metrics are registered with.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// WriteTextfile writes the current metrics to path in the text exposition
// format.
func (m *Metrics) WriteTextfile(path string) error {
	return prometheus.WriteToTextfile(path, m.registry)
}

func (m *Metrics) observeRoom(r RoomResult) {
	if m == nil {
		return
	}
	m.TranscriptsTotal.Inc()
	m.MessagesTotal.Add(float64(r.MessageCount))
	m.LinesDroppedTotal.WithLabelValues("no_speaker").Add(float64(r.DroppedLines))
	m.LinesDroppedTotal.WithLabelValues("undecodable").Add(float64(r.SkippedLines))
}

func (m *Metrics) observeScan(s *Session, elapsed time.Duration) {
	if m == nil {
		return
	}
	m.ScansTotal.WithLabelValues("success").Inc()
	m.ScanSeconds.Observe(elapsed.Seconds())
	m.Participants.Set(float64(s.Len()))
}

func (m *Metrics) observeScanFailure() {
	if m == nil {
		return
	}
	m.ScansTotal.WithLabelValues("failure").Inc()
}
