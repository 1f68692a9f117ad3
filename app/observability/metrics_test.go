package observability

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOperationMetrics(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewOperationMetrics(reg)
	ctx := context.Background()

	m.RecordOperationAttempt(ctx, "Create", "CompetitionService")
	m.RecordOperationAttempt(ctx, "Create", "CompetitionService")
	m.RecordOperationSuccess(ctx, "Create", "CompetitionService")
	m.RecordOperationFailure(ctx, "Create", "CompetitionService")
	m.RecordOperationDuration(ctx, "Create", "CompetitionService", 20*time.Millisecond)

	impl := m.(*prometheusOperationMetrics)
	assert.Equal(t, 2.0, testutil.ToFloat64(impl.attempts.WithLabelValues("CompetitionService", "Create")))
	assert.Equal(t, 1.0, testutil.ToFloat64(impl.successes.WithLabelValues("CompetitionService", "Create")))
	assert.Equal(t, 1.0, testutil.ToFloat64(impl.failures.WithLabelValues("CompetitionService", "Create")))
	assert.Equal(t, 1, testutil.CollectAndCount(impl.duration))
}

func TestHTTPMetricsMiddleware(t *testing.T) {
	reg := prometheus.NewRegistry()
	r := chi.NewRouter()
	r.Use(HTTPMetricsMiddleware(reg))
	r.Get("/competitions/points/{id}", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	})

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/competitions/points/3", nil))
	require.Equal(t, http.StatusTeapot, rec.Code)

	families, err := reg.Gather()
	require.NoError(t, err)
	require.Len(t, families, 1)
	labels := map[string]string{}
	for _, lp := range families[0].GetMetric()[0].GetLabel() {
		labels[lp.GetName()] = lp.GetValue()
	}
	assert.Equal(t, "/competitions/points/{id}", labels["route"])
	assert.Equal(t, "418", labels["status"])
}

func TestNewLogger(t *testing.T) {
	var buf bytes.Buffer
	NewLogger(&buf, "production", "warn").Info("hidden")
	assert.Empty(t, buf.String())

	NewLogger(&buf, "production", "info").Info("shown")
	assert.Contains(t, buf.String(), `"msg":"shown"`)

	buf.Reset()
	NewLogger(&buf, "development", "debug").Debug("text")
	assert.Contains(t, buf.String(), "msg=text")
}
