package metrics_test

import (
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"taghazout/config"
	"taghazout/infras/metrics"
)

func TestMetrics_HandlerExposesObservations(t *testing.T) {
	cfg := &config.Config{}
	cfg.External.Metrics.Enable = true

	m := metrics.New(cfg)
	require.True(t, m.Enabled())

	m.ObserveHTTP("/v1/listings", http.MethodGet, http.StatusOK, 12*time.Millisecond)
	m.ObserveExternal("catalog-api", "/listings", http.StatusOK, 30*time.Millisecond)
	m.ObserveCache("listing", metrics.CacheHit)
	m.ObserveBooking("listing", "confirmed")
	m.ObservePayment("declined")

	rr := httptest.NewRecorder()
	m.Handler().ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	require.Equal(t, http.StatusOK, rr.Code)

	body, err := io.ReadAll(rr.Body)
	require.NoError(t, err)

	out := string(body)
	assert.Contains(t, out, "taghazout_http_requests_total")
	assert.Contains(t, out, "taghazout_cache_events_total")
	assert.Contains(t, out, `taghazout_bookings_total{item_type="listing",outcome="confirmed"} 1`)
	assert.Contains(t, out, `taghazout_payment_attempts_total{outcome="declined"} 1`)
}

func TestMetrics_NilIsSafe(t *testing.T) {
	var m *metrics.Metrics

	assert.False(t, m.Enabled())
	assert.NotPanics(t, func() {
		m.ObserveHTTP("/", http.MethodGet, http.StatusOK, time.Millisecond)
		m.ObserveCache("listing", metrics.CacheMiss)
		m.ObserveBooking("package", "declined")
		m.ObservePayment("ok")
		m.ObserveExternal("s", "e", 200, time.Millisecond)
	})
}
