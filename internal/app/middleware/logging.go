package middleware

import (
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"standard-ai/pkg/logger"
)

const (
	// RequestIDKey 请求ID在gin.Context和日志字段中的键名
	RequestIDKey = "request_id"
	// RequestIDHeader 请求ID的HTTP头，调用方传入时沿用，否则生成新的
	RequestIDHeader = "X-Request-ID"
)

// LoggingConfig 日志中间件配置
type LoggingConfig struct {
	// SkipPaths 跳过日志记录的路径前缀（如健康检查接口）
	SkipPaths []string
	// Logger 日志器实例
	Logger logger.Logger
}

// LoggingMiddleware 返回HTTP日志记录中间件。
// 请求ID会注入到请求上下文的日志字段中，下游所有 *Context 日志都会携带。
func LoggingMiddleware(config *LoggingConfig) gin.HandlerFunc {
	if config == nil {
		config = &LoggingConfig{SkipPaths: []string{"/health"}}
	}
	log := config.Logger
	if log == nil {
		log = logger.GetDefault()
	}

	return func(c *gin.Context) {
		requestID := strings.TrimSpace(c.GetHeader(RequestIDHeader))
		if requestID == "" || len(requestID) > 128 {
			requestID = uuid.New().String()
		}
		c.Set(RequestIDKey, requestID)
		c.Header(RequestIDHeader, requestID)

		ctx := logger.InjectFields(c.Request.Context(), logger.Fields{RequestIDKey: requestID})
		c.Request = c.Request.WithContext(ctx)

		if shouldSkipPath(c.Request.URL.Path, config.SkipPaths) {
			c.Next()
			return
		}

		startTime := time.Now()
		path := c.Request.URL.Path

		log.InfoContext(ctx, "HTTP请求开始",
			"method", c.Request.Method,
			"path", path,
			"client_ip", c.ClientIP(),
			"user_agent", c.GetHeader("User-Agent"),
			"content_length", c.Request.ContentLength,
		)

		c.Next()

		log.InfoContext(ctx, "HTTP请求完成",
			"method", c.Request.Method,
			"path", path,
			"status_code", c.Writer.Status(),
			"duration_ms", time.Since(startTime).Milliseconds(),
			"response_size", c.Writer.Size(),
		)

		for _, err := range c.Errors {
			log.ErrorContext(ctx, "HTTP请求处理错误",
				"error", err.Error(),
				"error_type", err.Type,
			)
		}
	}
}

// shouldSkipPath 检查是否应该跳过某个路径的日志记录
func shouldSkipPath(path string, skipPaths []string) bool {
	for _, skipPath := range skipPaths {
		if strings.HasPrefix(path, skipPath) {
			return true
		}
	}
	return false
}

// GetRequestID 从Context中获取请求ID
func GetRequestID(c *gin.Context) string {
	if requestID, exists := c.Get(RequestIDKey); exists {
		if id, ok := requestID.(string); ok {
			return id
		}
	}
	return ""
}
