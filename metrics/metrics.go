package metrics

import "github.com/prometheus/client_golang/prometheus"

// Recorder wraps the engine's Prometheus instrumentation. A nil
// *Recorder is valid and turns every method into a no-op, so callers
// never branch on whether metrics are enabled.
type Recorder struct {
	keycacheHits     prometheus.Counter
	keycacheMisses   prometheus.Counter
	shallowestHits   prometheus.Counter
	shallowestMisses prometheus.Counter
	contradictions   prometheus.Counter
	keycacheSize     prometheus.Gauge
}

// New registers and returns a Recorder against reg. Pass
// prometheus.DefaultRegisterer to use the global registry.
func New(reg prometheus.Registerer) *Recorder {
	r := &Recorder{
		keycacheHits: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "chronodb_keycache_hits_total",
			Help: "Keycache lookups resolved from the cached key set.",
		}),
		keycacheMisses: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "chronodb_keycache_misses_total",
			Help: "Keycache lookups that required a cold rebuild.",
		}),
		shallowestHits: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "chronodb_shallowest_hits_total",
			Help: "Attribute cache lookups resolved from the shallowest hint.",
		}),
		shallowestMisses: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "chronodb_shallowest_misses_total",
			Help: "Attribute cache lookups that missed the shallowest hint.",
		}),
		contradictions: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "chronodb_contradictions_total",
			Help: "Non-planning writes that triggered contradiction resolution.",
		}),
		keycacheSize: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "chronodb_keycache_entries",
			Help: "Current number of entries held in the keycache.",
		}),
	}
	reg.MustRegister(r.keycacheHits, r.keycacheMisses, r.shallowestHits,
		r.shallowestMisses, r.contradictions, r.keycacheSize)
	return r
}

// AddKeycacheHits accounts for n additional keycache hits since the
// last sync. Non-positive n is a no-op.
func (r *Recorder) AddKeycacheHits(n int) {
	if r == nil || n <= 0 {
		return
	}
	r.keycacheHits.Add(float64(n))
}

// AddKeycacheMisses accounts for n additional keycache misses since the
// last sync. Non-positive n is a no-op.
func (r *Recorder) AddKeycacheMisses(n int) {
	if r == nil || n <= 0 {
		return
	}
	r.keycacheMisses.Add(float64(n))
}

// AddShallowestHits accounts for n additional attribute-cache shallowest
// hint hits since the last sync. Non-positive n is a no-op.
func (r *Recorder) AddShallowestHits(n int) {
	if r == nil || n <= 0 {
		return
	}
	r.shallowestHits.Add(float64(n))
}

// AddShallowestMisses accounts for n additional attribute-cache
// shallowest hint misses since the last sync. Non-positive n is a
// no-op.
func (r *Recorder) AddShallowestMisses(n int) {
	if r == nil || n <= 0 {
		return
	}
	r.shallowestMisses.Add(float64(n))
}

func (r *Recorder) Contradiction() {
	if r == nil {
		return
	}
	r.contradictions.Inc()
}

func (r *Recorder) SetKeycacheSize(n int) {
	if r == nil {
		return
	}
	r.keycacheSize.Set(float64(n))
}
