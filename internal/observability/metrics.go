package observability

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "booking_api"

// Metrics holds the service's Prometheus collectors. A nil *Metrics is valid
// and records nothing.
type Metrics struct {
	requests        *prometheus.CounterVec
	requestDuration *prometheus.HistogramVec
	signins         *prometheus.CounterVec
	bookingsCreated *prometheus.CounterVec
}

// NewMetrics creates the collectors and registers them with reg.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "Total number of HTTP requests by method, route and status.",
		}, []string{"method", "route", "status"}),
		requestDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request latency by method and route.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method", "route"}),
		signins: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "auth_signins_total",
			Help:      "Sign-in attempts by result (success, invalid, disabled, locked).",
		}, []string{"result"}),
		bookingsCreated: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "bookings_created_total",
			Help:      "Bookings created, by service type.",
		}, []string{"service_type"}),
	}
	reg.MustRegister(m.requests, m.requestDuration, m.signins, m.bookingsCreated)
	return m
}

// RecordRequest observes one completed HTTP request.
func (m *Metrics) RecordRequest(route, method string, status int, duration time.Duration) {
	if m == nil {
		return
	}
	m.requests.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	m.requestDuration.WithLabelValues(method, route).Observe(duration.Seconds())
}

// RecordSignIn counts a sign-in outcome.
func (m *Metrics) RecordSignIn(result string) {
	if m == nil {
		return
	}
	m.signins.WithLabelValues(result).Inc()
}

// RecordBookingCreated counts a new booking.
func (m *Metrics) RecordBookingCreated(serviceType string) {
	if m == nil {
		return
	}
	m.bookingsCreated.WithLabelValues(serviceType).Inc()
}
