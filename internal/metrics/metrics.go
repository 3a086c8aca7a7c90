// Package metrics метрики prometheus сервиса коротких ссылок.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// RequestDuration длительность http запросов по маршруту.
	RequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "shortlinks_request_duration_seconds",
			Help:    "Request duration in seconds",
			Buckets: []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1},
		},
		[]string{"method", "route", "status"},
	)

	RequestTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "shortlinks_requests_total",
			Help: "Total number of requests",
		},
		[]string{"method", "route", "status"},
	)

	// Redirects результат поиска короткого кода: hit | miss | error.
	Redirects = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "shortlinks_redirects_total",
			Help: "Total number of short code lookups by result",
		},
		[]string{"result"},
	)

	LinkMutations = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "shortlinks_link_mutations_total",
			Help: "Total number of link create/update/delete calls by result",
		},
		[]string{"operation", "result"},
	)
)

// ObserveMutation учитывает вызов create/update/delete.
func ObserveMutation(operation, result string) {
	LinkMutations.WithLabelValues(operation, result).Inc()
}

// ObserveRedirect учитывает поиск короткого кода.
func ObserveRedirect(result string) {
	Redirects.WithLabelValues(result).Inc()
}
