package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// Analytics
	EventsTracked = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "cardhub_events_tracked_total",
			Help: "Analytics events by kind and outcome (stored, skipped, failed)",
		},
		[]string{"kind", "outcome"},
	)

	GeoLookups = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "cardhub_geo_lookups_total",
			Help: "Geolocation lookups by result (hit, miss, error, open)",
		},
		[]string{"result"},
	)

	// Exports
	Exports = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "cardhub_exports_total",
			Help: "Card exports by format",
		},
		[]string{"format"}, // "vcard", "pdf"
	)

	ExportDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "cardhub_export_duration_seconds",
			Help:    "Time spent rendering an export",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"format"},
	)

	// Contacts
	ContactShares = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "cardhub_contact_shares_total",
			Help: "Contact details left by visitors",
		},
	)

	Notifications = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "cardhub_notifications_total",
			Help: "Owner notifications by channel and outcome",
		},
		[]string{"channel", "outcome"},
	)

	// Remote images (QR codes, avatars)
	ImageFetches = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "cardhub_image_fetches_total",
			Help: "Remote image fetches by kind and result (hit, miss, error)",
		},
		[]string{"kind", "result"},
	)

	// HTTP
	HTTPRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "cardhub_http_requests_total",
			Help: "HTTP requests by route and status",
		},
		[]string{"method", "route", "status"},
	)

	HTTPDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "cardhub_http_request_duration_seconds",
			Help:    "HTTP request latency by route",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "route"},
	)

	CircuitBreakerState = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "cardhub_circuit_breaker_state",
			Help: "Breaker state per upstream (0=closed, 1=half-open, 2=open)",
		},
		[]string{"name"},
	)
)

// RecordHTTP records one finished request.
func RecordHTTP(method, route string, status int, d time.Duration) {
	if route == "" {
		route = "unmatched"
	}
	HTTPRequests.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	HTTPDuration.WithLabelValues(method, route).Observe(d.Seconds())
}

// ObserveExport records a rendered export.
func ObserveExport(format string, start time.Time) {
	Exports.WithLabelValues(format).Inc()
	ExportDuration.WithLabelValues(format).Observe(time.Since(start).Seconds())
}
