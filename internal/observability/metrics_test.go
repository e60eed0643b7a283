package observability_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/catalog-service/internal/observability"
)

func TestRecordRequestAccumulatesCountAndLatency(t *testing.T) {
	metrics := observability.NewMetrics()

	metrics.RecordRequest("/api/products", "GET", 200, 30*time.Millisecond)
	metrics.RecordRequest("/api/products", "GET", 200, 70*time.Millisecond)
	metrics.RecordRequest("/api/products", "GET", 404, 10*time.Millisecond)

	requests := metrics.Requests()
	ok := requests["/api/products|GET|200"]
	require.Equal(t, int64(2), ok.Count)
	assert.Equal(t, 100*time.Millisecond, ok.TotalLatency)

	notFound := requests["/api/products|GET|404"]
	assert.Equal(t, int64(1), notFound.Count)
	assert.Equal(t, 10*time.Millisecond, notFound.TotalLatency)
}

func TestRequestsSnapshotIsDetached(t *testing.T) {
	metrics := observability.NewMetrics()
	metrics.RecordRequest("/api/me", "GET", 200, time.Millisecond)

	snapshot := metrics.Requests()
	metrics.RecordRequest("/api/me", "GET", 200, time.Millisecond)

	assert.Equal(t, int64(1), snapshot["/api/me|GET|200"].Count)
	assert.Equal(t, int64(2), metrics.Requests()["/api/me|GET|200"].Count)
}

func TestAuthFailureCounters(t *testing.T) {
	metrics := observability.NewMetrics()

	metrics.RecordAuthFailure("NO_TOKEN")
	metrics.RecordAuthFailure("NO_TOKEN")
	metrics.RecordAuthFailure("EXPIRED_TOKEN")

	failures := metrics.AuthFailures()
	assert.Equal(t, int64(2), failures["NO_TOKEN"])
	assert.Equal(t, int64(1), failures["EXPIRED_TOKEN"])
}

func TestNilMetricsAreSafe(t *testing.T) {
	var metrics *observability.Metrics

	metrics.RecordRequest("/", "GET", 200, time.Millisecond)
	metrics.RecordError("/", "GET", "INTERNAL_ERROR")
	metrics.RecordAuthFailure("NO_TOKEN")
	metrics.RecordAuthzDenial("/")

	assert.Nil(t, metrics.Requests())
	assert.Nil(t, metrics.AuthFailures())
}
