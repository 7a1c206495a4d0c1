package prometheus

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	authority "github.com/ironforge/authority"
	"github.com/ironforge/authority/metrics/export/internaldefs"
)

type metricsSource interface {
	MetricsSnapshot() authority.MetricsSnapshot
}

// PrometheusExporter is a prometheus.Collector over authority's counters.
// Register it with a prometheus.Registry and serve that registry's
// Gatherer however the embedding service already serves its other
// collectors.
type PrometheusExporter struct {
	source metricsSource
	descs  []*prometheus.Desc
}

// NewPrometheusExporter creates an exporter that reads from the given
// [authority.Core].
func NewPrometheusExporter(core *authority.Core) *PrometheusExporter {
	return NewPrometheusExporterFromSource(core)
}

// NewPrometheusExporterFromSource creates an exporter from a custom
// metrics source.
func NewPrometheusExporterFromSource(source metricsSource) *PrometheusExporter {
	e := &PrometheusExporter{source: source, descs: make([]*prometheus.Desc, len(internaldefs.CounterDefs))}
	for i, def := range internaldefs.CounterDefs {
		e.descs[i] = prometheus.NewDesc(def.Name, def.Help, nil, nil)
	}
	return e
}

// Describe implements prometheus.Collector.
func (e *PrometheusExporter) Describe(ch chan<- *prometheus.Desc) {
	for _, d := range e.descs {
		ch <- d
	}
}

// Collect implements prometheus.Collector.
func (e *PrometheusExporter) Collect(ch chan<- prometheus.Metric) {
	if e.source == nil {
		return
	}
	snapshot := e.source.MetricsSnapshot()
	for i, def := range internaldefs.CounterDefs {
		ch <- prometheus.MustNewConstMetric(e.descs[i], prometheus.CounterValue, float64(snapshot.Counters[def.ID]))
	}
}

// NewHandler registers exporter with a fresh prometheus.Registry and
// returns an http.Handler serving it, for callers with no registry of
// their own to register against.
func NewHandler(exporter *PrometheusExporter) (http.Handler, error) {
	reg := prometheus.NewRegistry()
	if err := reg.Register(exporter); err != nil {
		return nil, err
	}
	return promhttp.HandlerFor(reg, promhttp.HandlerOpts{}), nil
}
