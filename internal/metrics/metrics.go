// Package metrics exposes routing and discovery counters to Prometheus.
package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/specialistvlad/railpath/internal/pathfinding"
)

const namespace = "railpath"

// Recorder implements pathfinding.Metrics on top of Prometheus collectors.
type Recorder struct {
	discoveries  *prometheus.CounterVec
	steps        prometheus.Histogram
	queueDepth   prometheus.Gauge
	searches     *prometheus.CounterVec
	nodes        *prometheus.GaugeVec
	tickDuration prometheus.Histogram
	ticks        prometheus.Counter
}

var _ pathfinding.Metrics = (*Recorder)(nil)

// New registers the collectors with reg and returns the recorder.
func New(reg prometheus.Registerer) *Recorder {
	f := promauto.With(reg)
	return &Recorder{
		discoveries: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "discovery_finished_total",
			Help:      "Finished discovery walks by outcome.",
		}, []string{"outcome"}),
		steps: f.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "discovery_steps",
			Help:      "Track positions walked per discovery walk.",
			Buckets:   prometheus.ExponentialBuckets(1, 4, 8),
		}),
		queueDepth: f.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "discovery_queue_depth",
			Help:      "Discovery walks waiting after the last tick.",
		}),
		searches: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "route_searches_total",
			Help:      "Route lookups by cache use and result.",
		}, []string{"cached", "found"}),
		nodes: f.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "nodes",
			Help:      "Path nodes per world.",
		}, []string{"world"}),
		tickDuration: f.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "tick_duration_seconds",
			Help:      "Wall-clock time spent per host tick.",
			Buckets:   prometheus.ExponentialBuckets(0.0001, 2, 12),
		}),
		ticks: f.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "ticks_total",
			Help:      "Host ticks run.",
		}),
	}
}

func (r *Recorder) DiscoveryFinished(outcome pathfinding.DiscoveryOutcome, steps int) {
	r.discoveries.WithLabelValues(outcome.String()).Inc()
	r.steps.Observe(float64(steps))
}

func (r *Recorder) QueueDepth(depth int) {
	r.queueDepth.Set(float64(depth))
}

func (r *Recorder) SearchCompleted(cached, found bool) {
	r.searches.WithLabelValues(strconv.FormatBool(cached), strconv.FormatBool(found)).Inc()
}

func (r *Recorder) NodeCount(world string, count int) {
	r.nodes.WithLabelValues(world).Set(float64(count))
}

// ObserveTick records one host tick.
func (r *Recorder) ObserveTick(d time.Duration) {
	r.ticks.Inc()
	r.tickDuration.Observe(d.Seconds())
}
