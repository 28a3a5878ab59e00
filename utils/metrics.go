package utils

import (
	"github.com/prometheus/client_golang/prometheus"
)

var (
	// ReqCount counts HTTP requests by method, route and status.
	ReqCount = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "denuncias_http_requests_total",
			Help: "Total HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	// ReqDuration observes request latency per route.
	ReqDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name: "denuncias_request_duration_seconds",
			Help: "Request duration seconds",
		},
		[]string{"method", "path"},
	)

	// DocumentCount counts rendered service-order documents.
	DocumentCount = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "denuncias_documents_rendered_total",
			Help: "Total service order documents rendered",
		},
	)
)

func InitMetrics() {
	prometheus.MustRegister(ReqCount, ReqDuration, DocumentCount)
}
