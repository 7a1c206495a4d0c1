// Package prometheus exposes authority's counters as a prometheus.Collector.
//
// [NewPrometheusExporter] accepts an [authority.Core] and returns a
// collector callers register with their own [prometheus.Registry];
// [NewHandler] is a convenience for callers with no registry of their own.
// Counter names are prefixed authority_*_total.
//
// # What this package must NOT do
//
//   - Register against the default global registry.
//   - Mutate Core state.
package prometheus
