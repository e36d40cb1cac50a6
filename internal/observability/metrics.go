package observability

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	// ScrapeAttempts counts marketplace fetches by site
	ScrapeAttempts = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "scrape_attempts_total",
			Help: "Marketplace fetch attempts by site",
		},
		[]string{"site"},
	)

	// ScrapeFailures counts failed marketplace fetches by site
	ScrapeFailures = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "scrape_failures_total",
			Help: "Failed marketplace fetches by site",
		},
		[]string{"site"},
	)

	// ComparisonsTotal counts price comparisons served
	ComparisonsTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "comparisons_total",
			Help: "Price comparison requests served",
		},
	)
)

// Register registers all collectors with the default registry. Call once at startup.
func Register() {
	prometheus.MustRegister(ScrapeAttempts, ScrapeFailures, ComparisonsTotal)
}

// Handler returns the HTTP handler exposing the metrics endpoint
func Handler() http.Handler {
	return promhttp.Handler()
}
