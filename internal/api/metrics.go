package api

import (
	"github.com/prometheus/client_golang/prometheus"
)

var (
	searchesTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "buildmate_searches_total",
		Help: "Build searches by outcome (matched, unmatched, invalid).",
	}, []string{"outcome"})

	searchDuration = prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "buildmate_search_duration_seconds",
		Help:    "Wall time spent inside the build search engine.",
		Buckets: prometheus.DefBuckets,
	})
)

func init() {
	prometheus.MustRegister(searchesTotal, searchDuration)
}
