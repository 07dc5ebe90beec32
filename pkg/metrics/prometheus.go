package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Recorder implements domain.repository.Metrics using Prometheus.
type Recorder struct {
	historyFetches *prometheus.CounterVec
	errorsTotal    *prometheus.CounterVec
	lastPrice      *prometheus.GaugeVec
	latency        *prometheus.HistogramVec
	shares         *prometheus.CounterVec
}

// New creates a recorder registered on the default Prometheus registry.
func New() *Recorder {
	return NewWithRegistry(prometheus.DefaultRegisterer)
}

var (
	defaultRecorder *Recorder
	defaultOnce     sync.Once
)

// Default returns the process-wide recorder on the default registry.
// New panics on a second call; Default does not.
func Default() *Recorder {
	defaultOnce.Do(func() { defaultRecorder = New() })
	return defaultRecorder
}

// NewWithRegistry creates a recorder registered on reg.
func NewWithRegistry(reg prometheus.Registerer) *Recorder {
	f := promauto.With(reg)
	return &Recorder{
		historyFetches: f.NewCounterVec(
			prometheus.CounterOpts{
				Name: "lipe_history_fetch_total",
				Help: "Daily history fetches by data source",
			},
			[]string{"source"},
		),
		errorsTotal: f.NewCounterVec(
			prometheus.CounterOpts{
				Name: "lipe_errors_total",
				Help: "Total number of errors encountered",
			},
			[]string{"type"},
		),
		lastPrice: f.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "lipe_last_close",
				Help: "Last daily close seen for a symbol",
			},
			[]string{"symbol"},
		),
		latency: f.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "lipe_operation_duration_seconds",
				Help:    "Duration of operations in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"operation"},
		),
		shares: f.NewCounterVec(
			prometheus.CounterOpts{
				Name: "lipe_share_operations_total",
				Help: "Share registry operations by outcome",
			},
			[]string{"op"},
		),
	}
}

// RecordHistoryFetch counts a history fetch served from source.
func (r *Recorder) RecordHistoryFetch(source string) {
	r.historyFetches.WithLabelValues(source).Inc()
}

// RecordError records an error occurrence.
func (r *Recorder) RecordError(kind string) {
	r.errorsTotal.WithLabelValues(kind).Inc()
}

// RecordLastPrice records the last price for a symbol. Callers pass only
// exchange-listed symbols so the label set stays bounded.
func (r *Recorder) RecordLastPrice(symbol string, price float64) {
	r.lastPrice.WithLabelValues(symbol).Set(price)
}

// RecordLatency records operation latency in seconds.
func (r *Recorder) RecordLatency(op string, seconds float64) {
	r.latency.WithLabelValues(op).Observe(seconds)
}

// RecordShare counts a share registry operation ("create", "hit", "miss", "expired").
func (r *Recorder) RecordShare(op string) {
	r.shares.WithLabelValues(op).Inc()
}

// Noop discards all measurements.
type Noop struct{}

func (Noop) RecordHistoryFetch(string)       {}
func (Noop) RecordError(string)              {}
func (Noop) RecordLastPrice(string, float64) {}
func (Noop) RecordLatency(string, float64)   {}
func (Noop) RecordShare(string)              {}
