// Package promhooks exports cache events as Prometheus metrics. One Hooks
// value can be shared by every cache instance in a process; series are
// partitioned by namespace.
package promhooks

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/threadworks/modelcache"
)

type Hooks struct {
	hits           *prometheus.CounterVec
	misses         *prometheus.CounterVec
	decodeFailures *prometheus.CounterVec
	invalidations  *prometheus.CounterVec
	generationErrs *prometheus.CounterVec
	generations    *prometheus.GaugeVec
}

var _ modelcache.Hooks = (*Hooks)(nil)

// New registers the cache metrics on reg. Pass prometheus.DefaultRegisterer
// unless you run multiple registries.
func New(reg prometheus.Registerer) *Hooks {
	f := promauto.With(reg)
	return &Hooks{
		hits: f.NewCounterVec(prometheus.CounterOpts{
			Name: "modelcache_hits_total",
			Help: "Cache entries served from the backend",
		}, []string{"namespace"}),
		misses: f.NewCounterVec(prometheus.CounterOpts{
			Name: "modelcache_misses_total",
			Help: "Cache misses that triggered hydration",
		}, []string{"namespace"}),
		decodeFailures: f.NewCounterVec(prometheus.CounterOpts{
			Name: "modelcache_decode_failures_total",
			Help: "Cached entries that failed to decode",
		}, []string{"recomputing"}),
		invalidations: f.NewCounterVec(prometheus.CounterOpts{
			Name: "modelcache_invalidations_total",
			Help: "Namespace-wide invalidations (generation bumps)",
		}, []string{"namespace"}),
		generationErrs: f.NewCounterVec(prometheus.CounterOpts{
			Name: "modelcache_generation_errors_total",
			Help: "Failed generation loads, parses, and persists",
		}, []string{"namespace", "op"}),
		generations: f.NewGaugeVec(prometheus.GaugeOpts{
			Name: "modelcache_generation",
			Help: "Current generation per namespace as last observed",
		}, []string{"namespace"}),
	}
}

func (h *Hooks) Hit(ns, _ string)  { h.hits.WithLabelValues(ns).Inc() }
func (h *Hooks) Miss(ns, _ string) { h.misses.WithLabelValues(ns).Inc() }

func (h *Hooks) DecodeFailure(_ string, recomputing bool) {
	v := "false"
	if recomputing {
		v = "true"
	}
	h.decodeFailures.WithLabelValues(v).Inc()
}

func (h *Hooks) GenerationLoaded(ns string, gen uint64, _ bool) {
	h.generations.WithLabelValues(ns).Set(float64(gen))
}

func (h *Hooks) Invalidated(ns string, gen uint64) {
	h.invalidations.WithLabelValues(ns).Inc()
	h.generations.WithLabelValues(ns).Set(float64(gen))
}

func (h *Hooks) GenerationError(ns, op string, _ error) {
	h.generationErrs.WithLabelValues(ns, op).Inc()
}
