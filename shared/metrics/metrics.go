package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type Metrics struct {
	registry *prometheus.Registry

	ConversionsTotal   *prometheus.CounterVec
	ConversionDuration *prometheus.HistogramVec
	ValidationRejected *prometheus.CounterVec
}

func New() *Metrics {
	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	m := &Metrics{
		registry: registry,
		ConversionsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "imgconv_conversions_total",
			Help: "Total conversion attempts that reached the image engine.",
		}, []string{"format", "status"}),
		ConversionDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "imgconv_conversion_duration_seconds",
			Help:    "Image engine conversion latency in seconds.",
			Buckets: prometheus.DefBuckets,
		}, []string{"format"}),
		ValidationRejected: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "imgconv_validation_rejections_total",
			Help: "Total requests rejected before any conversion work.",
		}, []string{"code"}),
	}
	registry.MustRegister(
		m.ConversionsTotal,
		m.ConversionDuration,
		m.ValidationRejected,
	)
	return m
}

func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}
