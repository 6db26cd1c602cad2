package monitoring

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	reportsGenerated = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "reports_generated_total",
			Help: "Total report generations by format and status",
		},
		[]string{"format", "status"},
	)

	reportDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "report_generation_duration_seconds",
			Help:    "Report generation duration by format",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"format"},
	)

	imageFetches = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "report_image_fetches_total",
			Help: "Report image resolution attempts by status",
		},
		[]string{"status"},
	)

	dashboardCache = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "dashboard_cache_requests_total",
			Help: "Dashboard stats cache lookups by result",
		},
		[]string{"result"},
	)
)

func TrackReport(format, status string) {
	reportsGenerated.WithLabelValues(format, status).Inc()
}

func ObserveReportDuration(format string, d time.Duration) {
	reportDuration.WithLabelValues(format).Observe(d.Seconds())
}

func TrackImageFetch(status string) {
	imageFetches.WithLabelValues(status).Inc()
}

func TrackDashboardCache(hit bool) {
	result := "miss"
	if hit {
		result = "hit"
	}
	dashboardCache.WithLabelValues(result).Inc()
}

// Handler exposes the Prometheus scrape endpoint.
func Handler() http.Handler {
	return promhttp.Handler()
}
