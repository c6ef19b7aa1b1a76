package health

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakePinger struct {
	err error
}

func (p *fakePinger) Ping(ctx context.Context) error {
	return p.err
}

func newTestServer(db DatabasePinger, maxCycleAge time.Duration) *Server {
	return NewServer(Config{
		ServiceName: "prop-edge-scanner",
		Version:     "test",
		Port:        "0",
		DB:          db,
		MaxCycleAge: maxCycleAge,
	})
}

func TestHandleHealth(t *testing.T) {
	s := newTestServer(nil, 0)

	rec := httptest.NewRecorder()
	s.handleHealth(rec, httptest.NewRequest(http.MethodGet, "/health", nil))

	assert.Equal(t, http.StatusOK, rec.Code)

	var resp HealthResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "ok", resp.Status)
	assert.Equal(t, "prop-edge-scanner", resp.Service)
}

func TestHandleReadyNotReadyByDefault(t *testing.T) {
	s := newTestServer(&fakePinger{}, 0)

	rec := httptest.NewRecorder()
	s.handleReady(rec, httptest.NewRequest(http.MethodGet, "/ready", nil))

	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
}

func TestHandleReadyHealthy(t *testing.T) {
	s := newTestServer(&fakePinger{}, time.Hour)
	s.SetReady(true)
	s.RecordCycle(time.Now())

	rec := httptest.NewRecorder()
	s.handleReady(rec, httptest.NewRequest(http.MethodGet, "/ready", nil))

	assert.Equal(t, http.StatusOK, rec.Code)

	var resp ReadyResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "ok", resp.Checks["database"])
	assert.Equal(t, "ok", resp.Checks["scheduler"])
	assert.NotEmpty(t, resp.LastCycle)
}

func TestHandleReadyDatabaseDown(t *testing.T) {
	s := newTestServer(&fakePinger{err: errors.New("connection refused")}, 0)
	s.SetReady(true)

	rec := httptest.NewRecorder()
	s.handleReady(rec, httptest.NewRequest(http.MethodGet, "/ready", nil))

	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)

	var resp ReadyResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Contains(t, resp.Checks["database"], "connection refused")
}

func TestHandleReadyStaleCycle(t *testing.T) {
	s := newTestServer(&fakePinger{}, time.Minute)
	s.SetReady(true)
	s.RecordCycle(time.Now().Add(-time.Hour))

	rec := httptest.NewRecorder()
	s.handleReady(rec, httptest.NewRequest(http.MethodGet, "/ready", nil))

	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)

	var resp ReadyResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "stale", resp.Checks["scheduler"])
}
