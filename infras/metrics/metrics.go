package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"taghazout/config"
)

const namespace = "taghazout"

const (
	CacheHit  = "hit"
	CacheMiss = "miss"
	CacheSet  = "set"
	CacheDel  = "del"
)

const (
	BookingConfirmed   = "confirmed"
	BookingInvalid     = "invalid"
	BookingDeclined    = "declined"
	BookingUnavailable = "unavailable"
	BookingError       = "error"
)

// Metrics owns a private registry so tests and multiple binaries never collide
// on the default one.
type Metrics struct {
	registry *prometheus.Registry
	enabled  bool

	httpRequests     *prometheus.CounterVec
	httpLatency      *prometheus.HistogramVec
	externalRequests *prometheus.CounterVec
	externalLatency  *prometheus.HistogramVec
	cacheEvents      *prometheus.CounterVec
	bookings         *prometheus.CounterVec
	payments         *prometheus.CounterVec
}

func New(config *config.Config) *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		enabled:  config.External.Metrics.Enable,
		httpRequests: prometheus.NewCounterVec(
			prometheus.CounterOpts{Namespace: namespace, Name: "http_requests_total", Help: "HTTP requests."},
			[]string{"route", "method", "status"},
		),
		httpLatency: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace, Name: "http_request_duration_seconds",
				Help:    "HTTP request duration seconds.",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"route", "method"},
		),
		externalRequests: prometheus.NewCounterVec(
			prometheus.CounterOpts{Namespace: namespace, Name: "external_requests_total", Help: "Outbound requests."},
			[]string{"service", "endpoint", "status"},
		),
		externalLatency: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace, Name: "external_request_duration_seconds",
				Help:    "Outbound request duration seconds.",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"service", "endpoint"},
		),
		cacheEvents: prometheus.NewCounterVec(
			prometheus.CounterOpts{Namespace: namespace, Name: "cache_events_total", Help: "Cache hits, misses, sets and deletes."},
			[]string{"cache", "event"},
		),
		bookings: prometheus.NewCounterVec(
			prometheus.CounterOpts{Namespace: namespace, Name: "bookings_total", Help: "Booking attempts by item type and outcome."},
			[]string{"item_type", "outcome"},
		),
		payments: prometheus.NewCounterVec(
			prometheus.CounterOpts{Namespace: namespace, Name: "payment_attempts_total", Help: "Payment gateway attempts by outcome."},
			[]string{"outcome"},
		),
	}

	m.registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		m.httpRequests, m.httpLatency,
		m.externalRequests, m.externalLatency,
		m.cacheEvents, m.bookings, m.payments,
	)

	return m
}

// Enabled reports whether /metrics should be exposed.
func (m *Metrics) Enabled() bool {
	return m != nil && m.enabled
}

func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}

func (m *Metrics) ObserveHTTP(route, method string, status int, dur time.Duration) {
	if m == nil {
		return
	}

	m.httpRequests.WithLabelValues(route, method, strconv.Itoa(status)).Inc()
	m.httpLatency.WithLabelValues(route, method).Observe(dur.Seconds())
}

func (m *Metrics) ObserveExternal(service, endpoint string, status int, dur time.Duration) {
	if m == nil {
		return
	}

	m.externalRequests.WithLabelValues(service, endpoint, strconv.Itoa(status)).Inc()
	m.externalLatency.WithLabelValues(service, endpoint).Observe(dur.Seconds())
}

func (m *Metrics) ObserveCache(cache, event string) {
	if m == nil {
		return
	}

	m.cacheEvents.WithLabelValues(cache, event).Inc()
}

func (m *Metrics) ObserveBooking(itemType, outcome string) {
	if m == nil {
		return
	}

	m.bookings.WithLabelValues(itemType, outcome).Inc()
}

func (m *Metrics) ObservePayment(outcome string) {
	if m == nil {
		return
	}

	m.payments.WithLabelValues(outcome).Inc()
}
