package metrics

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
)

func TestMetricsRegistry(t *testing.T) {
	InitRegistry()
	registry := GetRegistry()

	assert.NotNil(t, registry)
	assert.IsType(t, &prometheus.Registry{}, registry)
}

func TestInitRegistryIdempotent(t *testing.T) {
	first := InitRegistry()
	second := InitRegistry()

	assert.Same(t, first, second)
}

func TestRecordCycleLifecycle(t *testing.T) {
	InitRegistry()

	assert.NotPanics(t, func() {
		RecordCycleStart()
		RecordCycleComplete(12.5, 1700000000)
		RecordCycleError()
	})
}

func TestRecordPropsSkipped(t *testing.T) {
	InitRegistry()

	assert.NotPanics(t, func() {
		RecordPropsSkipped("no_stats", 3)
		RecordPropsSkipped("no_consensus", 1)
		RecordPropsSkipped("no_stats", 0)
	})
}

func TestUpdateQuota(t *testing.T) {
	InitRegistry()

	tests := []struct {
		name      string
		remaining float64
	}{
		{name: "positive quota", remaining: 450},
		{name: "zero quota", remaining: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.NotPanics(t, func() {
				UpdateQuota(tt.remaining)
			})
		})
	}
}

func TestHandlerServesMetrics(t *testing.T) {
	InitRegistry()
	RecordCycleStart()

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/metrics", nil)
	Handler().ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "prop_edge_refresh_cycles_total")
}
