package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"standard-ai/pkg/status"
)

// MetricsSource 流水线指标来源
type MetricsSource interface {
	GetMetrics() map[string]interface{}
	Reset()
}

// SystemHandler 健康检查与流水线指标
type SystemHandler struct {
	metrics MetricsSource
	checks  map[string]bool
}

// NewSystemHandler 创建系统接口处理器。
// checks 记录各依赖是否已配置，如 llm_credential、object_store。
func NewSystemHandler(metrics MetricsSource, checks map[string]bool) *SystemHandler {
	return &SystemHandler{metrics: metrics, checks: checks}
}

// HealthCheck 健康检查
// GET /health
func (h *SystemHandler) HealthCheck(c *gin.Context) {
	respondWithSuccess(c, http.StatusOK, gin.H{
		"status":    "healthy",
		"timestamp": time.Now().Unix(),
		"checks":    h.checks,
	}, "服务正常")
}

// Metrics 返回流水线各节点的调用次数、耗时和 token 用量
// GET /api/ai/metrics
func (h *SystemHandler) Metrics(c *gin.Context) {
	if h.metrics == nil {
		respondWithError(c, status.ErrCodeUnavailable, "指标未启用", nil)
		return
	}
	respondWithSuccess(c, http.StatusOK, h.metrics.GetMetrics(), "查询成功")
}

// ResetMetrics 清空流水线指标
// DELETE /api/ai/metrics
func (h *SystemHandler) ResetMetrics(c *gin.Context) {
	if h.metrics == nil {
		respondWithError(c, status.ErrCodeUnavailable, "指标未启用", nil)
		return
	}
	h.metrics.Reset()
	respondWithSuccess(c, http.StatusOK, nil, "指标已重置")
}
