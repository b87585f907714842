// Package rcvmetrics instruments contest tabulation for callers that
// want to scrape it, in the style of luxfi-consensus's api/metrics
// package: a small Recorder interface backed by prometheus collectors,
// with a Noop implementation as the zero-cost default.
package rcvmetrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Recorder records tabulation outcomes. contest.Tabulate calls these
// hooks; callers who don't care pass Noop().
type Recorder interface {
	// ContestTabulated records one completed tabulation, its round
	// count, its wall-clock duration and its variant label.
	ContestTabulated(variant string, rounds int, duration time.Duration)
	// Aborted records a tabulation that ended in one of §7's error
	// kinds.
	Aborted(kind string)
}

type noop struct{}

func (noop) ContestTabulated(string, int, time.Duration) {}
func (noop) Aborted(string)                              {}

// Noop returns a Recorder that does nothing, for callers that do not
// wire a registry.
func Noop() Recorder { return noop{} }

// PrometheusRecorder is a Recorder backed by prometheus collectors.
type PrometheusRecorder struct {
	contestsTotal   *prometheus.CounterVec
	roundsHistogram *prometheus.HistogramVec
	duration        *prometheus.HistogramVec
	abortsTotal     *prometheus.CounterVec
}

// NewPrometheusRecorder constructs a PrometheusRecorder and registers its
// collectors with reg.
func NewPrometheusRecorder(reg prometheus.Registerer) *PrometheusRecorder {
	r := &PrometheusRecorder{
		contestsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "rcvcore",
			Name:      "contests_tabulated_total",
			Help:      "Number of contests tabulated, by variant.",
		}, []string{"variant"}),
		roundsHistogram: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "rcvcore",
			Name:      "rounds_per_contest",
			Help:      "Number of rounds produced per tabulated contest.",
			Buckets:   prometheus.LinearBuckets(1, 2, 10),
		}, []string{"variant"}),
		duration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "rcvcore",
			Name:      "tabulation_duration_seconds",
			Help:      "Wall-clock duration of a single contest tabulation.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"variant"}),
		abortsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "rcvcore",
			Name:      "aborts_total",
			Help:      "Number of contest tabulations aborted, by error kind.",
		}, []string{"kind"}),
	}

	reg.MustRegister(r.contestsTotal, r.roundsHistogram, r.duration, r.abortsTotal)

	return r
}

// ContestTabulated implements Recorder.
func (r *PrometheusRecorder) ContestTabulated(variant string, rounds int, duration time.Duration) {
	r.contestsTotal.WithLabelValues(variant).Inc()
	r.roundsHistogram.WithLabelValues(variant).Observe(float64(rounds))
	r.duration.WithLabelValues(variant).Observe(duration.Seconds())
}

// Aborted implements Recorder.
func (r *PrometheusRecorder) Aborted(kind string) {
	r.abortsTotal.WithLabelValues(kind).Inc()
}
