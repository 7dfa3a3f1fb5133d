package metrics

import (
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMetrics_Observe(t *testing.T) {
	m := New()

	m.ObserveSuccess(2048, 150*time.Millisecond)
	m.ObserveSuccess(2048, 200*time.Millisecond)
	m.ObserveSuccess(4096, time.Second)
	m.ObserveFailure("generate")

	assert.Equal(t, 2.0, testutil.ToFloat64(m.generated.WithLabelValues("2048")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.generated.WithLabelValues("4096")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.failures.WithLabelValues("generate")))
	assert.Equal(t, 1, testutil.CollectAndCount(m.generation))
}

func TestMetrics_Handler(t *testing.T) {
	m := New()
	m.ObserveSuccess(2048, time.Millisecond)

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	body, err := io.ReadAll(rec.Body)
	require.NoError(t, err)
	assert.Contains(t, string(body), `rsakeygen_generated_total{bits="2048"} 1`)
	assert.Contains(t, string(body), "rsakeygen_generation_seconds_count 1")
}
