package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"standard-ai/pkg/status"
)

type countingMetrics struct {
	calls  int64
	resets int
}

func (m *countingMetrics) GetMetrics() map[string]interface{} {
	return map[string]interface{}{"total_calls": m.calls}
}

func (m *countingMetrics) Reset() {
	m.resets++
	m.calls = 0
}

func systemRouter(h *SystemHandler) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/health", h.HealthCheck)
	r.GET("/api/ai/metrics", h.Metrics)
	r.DELETE("/api/ai/metrics", h.ResetMetrics)
	return r
}

func decodeSystem(t *testing.T, w *httptest.ResponseRecorder) APIResponse {
	t.Helper()
	var resp APIResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return resp
}

func TestHealthCheck(t *testing.T) {
	r := systemRouter(NewSystemHandler(nil, map[string]bool{"llm_credential": false, "object_store": true}))

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))
	require.Equal(t, http.StatusOK, w.Code)

	resp := decodeSystem(t, w)
	data := resp.Data.(map[string]interface{})
	assert.Equal(t, "healthy", data["status"])
	assert.Equal(t, map[string]interface{}{"llm_credential": false, "object_store": true}, data["checks"])
}

func TestMetricsEndpoints(t *testing.T) {
	metrics := &countingMetrics{calls: 3}
	r := systemRouter(NewSystemHandler(metrics, nil))

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/ai/metrics", nil))
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, float64(3), decodeSystem(t, w).Data.(map[string]interface{})["total_calls"])

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodDelete, "/api/ai/metrics", nil))
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 1, metrics.resets)
	assert.Equal(t, int64(0), metrics.calls)
}

func TestMetricsDisabled(t *testing.T) {
	r := systemRouter(NewSystemHandler(nil, nil))

	for _, method := range []string{http.MethodGet, http.MethodDelete} {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(method, "/api/ai/metrics", nil))
		assert.Equal(t, http.StatusServiceUnavailable, w.Code, method)
		assert.Equal(t, int(status.ErrCodeUnavailable), decodeSystem(t, w).Code, method)
	}
}
