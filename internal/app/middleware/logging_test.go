package middleware

import (
	"bytes"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"standard-ai/pkg/logger"
)

func newEngine(buf *bytes.Buffer) *gin.Engine {
	gin.SetMode(gin.TestMode)
	engine := gin.New()
	engine.Use(LoggingMiddleware(&LoggingConfig{
		SkipPaths: []string{"/health"},
		Logger:    logger.NewWithWriter(buf, slog.LevelInfo),
	}))
	engine.GET("/api/ping", func(c *gin.Context) {
		c.String(http.StatusOK, GetRequestID(c))
	})
	engine.GET("/health", func(c *gin.Context) {
		c.String(http.StatusOK, GetRequestID(c))
	})
	return engine
}

func TestLoggingMiddlewareHonoursRequestID(t *testing.T) {
	var buf bytes.Buffer
	engine := newEngine(&buf)

	req := httptest.NewRequest(http.MethodGet, "/api/ping", nil)
	req.Header.Set(RequestIDHeader, "req-42")
	w := httptest.NewRecorder()
	engine.ServeHTTP(w, req)

	assert.Equal(t, "req-42", w.Body.String())
	assert.Equal(t, "req-42", w.Header().Get(RequestIDHeader))
	assert.Contains(t, buf.String(), "HTTP请求完成")
	assert.Contains(t, buf.String(), "req-42")
}

func TestLoggingMiddlewareGeneratesRequestID(t *testing.T) {
	var buf bytes.Buffer
	engine := newEngine(&buf)

	w := httptest.NewRecorder()
	engine.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))

	assert.Len(t, w.Body.String(), 36)
	assert.Equal(t, w.Body.String(), w.Header().Get(RequestIDHeader))
	assert.Empty(t, buf.String(), "skipped paths are not logged")
}
