// Package otel provides OpenTelemetry metric exporter bindings for
// authority's counters.
//
// [NewOTelExporter] registers an Int64ObservableCounter instrument for each
// authority.MetricID. A single callback reads [authority.Core.MetricsSnapshot]
// on each collection cycle.
//
// # What this package must NOT do
//
//   - Own the OTel MeterProvider — callers supply the Meter.
//   - Mutate Core state.
package otel
