// Package metrics exposes Prometheus counters and gauges for the
// engine's cache layers: keycache hit/miss, shallowest-hint hit/miss,
// and contradiction events. A nil *Recorder is always safe to call
// methods on — metrics are ambient observability, never load-bearing.
package metrics
