package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	ReportsCreatedTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "potsoft_reports_created_total",
		Help: "Total number of pothole reports created",
	})
	ClassificationFallbacksTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "potsoft_classification_fallbacks_total",
		Help: "Total reports created with default classification after a failed vision call",
	})
	InsightRequestsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "potsoft_insight_requests_total",
		Help: "Total insight retrievals by kind",
	}, []string{"kind"})
	InsightCacheHitsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "potsoft_insight_cache_hits_total",
		Help: "Insight cache hits by kind",
	}, []string{"kind"})
	InsightCacheMissesTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "potsoft_insight_cache_misses_total",
		Help: "Insight cache misses by kind",
	}, []string{"kind"})
	GeminiRequestsTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "potsoft_gemini_requests_total",
		Help: "Total generateContent calls issued",
	})
	GeminiRetriesTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "potsoft_gemini_retries_total",
		Help: "Total generateContent retries after rate-limit responses",
	})
)

func init() {
	prometheus.MustRegister(
		ReportsCreatedTotal,
		ClassificationFallbacksTotal,
		InsightRequestsTotal,
		InsightCacheHitsTotal,
		InsightCacheMissesTotal,
		GeminiRequestsTotal,
		GeminiRetriesTotal,
	)
}

// Handler exposes the default prometheus registry.
func Handler() http.Handler {
	return promhttp.Handler()
}
