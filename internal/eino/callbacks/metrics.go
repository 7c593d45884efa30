package callbacks

import (
	"context"
	"sync"
	"time"

	"github.com/cloudwego/eino/callbacks"
	"github.com/cloudwego/eino/schema"

	"standard-ai/internal/eino/config"
)

// MetricsHandler 指标回调处理器，按节点统计调用次数、耗时和模型 token 用量
type MetricsHandler struct {
	cfg     *config.MetricsCallbackConfig
	metrics *MetricsCollector
}

// MetricsCollector 指标收集器
type MetricsCollector struct {
	mu sync.RWMutex

	// 调用计数
	TotalCalls      int64
	SuccessfulCalls int64
	FailedCalls     int64

	// 延迟统计
	TotalLatencyMs int64
	NodeLatency    map[string]*LatencyStats

	// 节点调用与失败计数
	NodeCalls  map[string]int64
	NodeErrors map[string]int64

	// 模型 token 用量
	PromptTokens     int64
	CompletionTokens int64
	TotalTokens      int64
}

// LatencyStats 延迟统计
type LatencyStats struct {
	Count   int64
	TotalMs int64
	MinMs   int64
	MaxMs   int64
}

// NewMetricsHandler 创建指标回调处理器
func NewMetricsHandler(cfg *config.MetricsCallbackConfig) *MetricsHandler {
	h := &MetricsHandler{
		cfg:     cfg,
		metrics: &MetricsCollector{},
	}
	h.Reset()
	return h
}

// OnStart 节点开始执行时调用
func (h *MetricsHandler) OnStart(ctx context.Context, info *callbacks.RunInfo, input callbacks.CallbackInput) context.Context {
	if !h.cfg.Enabled {
		return ctx
	}

	h.metrics.mu.Lock()
	h.metrics.TotalCalls++
	h.metrics.NodeCalls[info.Name]++
	h.metrics.mu.Unlock()

	return context.WithValue(ctx, metricsStartTimeKey, time.Now())
}

// OnEnd 节点执行完成时调用
func (h *MetricsHandler) OnEnd(ctx context.Context, info *callbacks.RunInfo, output callbacks.CallbackOutput) context.Context {
	if !h.cfg.Enabled {
		return ctx
	}

	startTime, ok := ctx.Value(metricsStartTimeKey).(time.Time)
	if !ok {
		return ctx
	}
	durationMs := time.Since(startTime).Milliseconds()
	usage := tokenUsage(info, output)

	h.metrics.mu.Lock()
	defer h.metrics.mu.Unlock()

	h.metrics.SuccessfulCalls++
	h.metrics.TotalLatencyMs += durationMs

	stats, exists := h.metrics.NodeLatency[info.Name]
	if !exists {
		stats = &LatencyStats{
			MinMs: durationMs,
			MaxMs: durationMs,
		}
		h.metrics.NodeLatency[info.Name] = stats
	}
	stats.Count++
	stats.TotalMs += durationMs
	if durationMs < stats.MinMs {
		stats.MinMs = durationMs
	}
	if durationMs > stats.MaxMs {
		stats.MaxMs = durationMs
	}

	if usage != nil {
		h.metrics.PromptTokens += int64(usage.PromptTokens)
		h.metrics.CompletionTokens += int64(usage.CompletionTokens)
		h.metrics.TotalTokens += int64(usage.TotalTokens)
	}

	return ctx
}

// OnError 节点执行出错时调用
func (h *MetricsHandler) OnError(ctx context.Context, info *callbacks.RunInfo, err error) context.Context {
	if !h.cfg.Enabled {
		return ctx
	}

	h.metrics.mu.Lock()
	defer h.metrics.mu.Unlock()

	h.metrics.FailedCalls++
	h.metrics.NodeErrors[info.Name]++

	return ctx
}

// OnStartWithStreamInput 流式输入开始时调用
func (h *MetricsHandler) OnStartWithStreamInput(ctx context.Context, info *callbacks.RunInfo, input *schema.StreamReader[callbacks.CallbackInput]) context.Context {
	input.Close()
	return h.OnStart(ctx, info, nil)
}

// OnEndWithStreamOutput 流式输出结束时调用
func (h *MetricsHandler) OnEndWithStreamOutput(ctx context.Context, info *callbacks.RunInfo, output *schema.StreamReader[callbacks.CallbackOutput]) context.Context {
	output.Close()
	return h.OnEnd(ctx, info, nil)
}

// GetMetrics 获取当前指标
func (h *MetricsHandler) GetMetrics() map[string]interface{} {
	h.metrics.mu.RLock()
	defer h.metrics.mu.RUnlock()

	avgLatency := int64(0)
	if h.metrics.SuccessfulCalls > 0 {
		avgLatency = h.metrics.TotalLatencyMs / h.metrics.SuccessfulCalls
	}

	nodeStats := make(map[string]interface{}, len(h.metrics.NodeLatency))
	for name, stats := range h.metrics.NodeLatency {
		avgMs := int64(0)
		if stats.Count > 0 {
			avgMs = stats.TotalMs / stats.Count
		}
		nodeStats[name] = map[string]interface{}{
			"count":  stats.Count,
			"avg_ms": avgMs,
			"min_ms": stats.MinMs,
			"max_ms": stats.MaxMs,
		}
	}

	nodeCalls := make(map[string]int64, len(h.metrics.NodeCalls))
	for name, n := range h.metrics.NodeCalls {
		nodeCalls[name] = n
	}
	nodeErrors := make(map[string]int64, len(h.metrics.NodeErrors))
	for name, n := range h.metrics.NodeErrors {
		nodeErrors[name] = n
	}

	return map[string]interface{}{
		"total_calls":      h.metrics.TotalCalls,
		"successful_calls": h.metrics.SuccessfulCalls,
		"failed_calls":     h.metrics.FailedCalls,
		"avg_latency_ms":   avgLatency,
		"node_stats":       nodeStats,
		"node_calls":       nodeCalls,
		"node_errors":      nodeErrors,
		"tokens": map[string]int64{
			"prompt":     h.metrics.PromptTokens,
			"completion": h.metrics.CompletionTokens,
			"total":      h.metrics.TotalTokens,
		},
	}
}

// Reset 重置指标
func (h *MetricsHandler) Reset() {
	h.metrics.mu.Lock()
	defer h.metrics.mu.Unlock()

	h.metrics.TotalCalls = 0
	h.metrics.SuccessfulCalls = 0
	h.metrics.FailedCalls = 0
	h.metrics.TotalLatencyMs = 0
	h.metrics.NodeLatency = make(map[string]*LatencyStats)
	h.metrics.NodeCalls = make(map[string]int64)
	h.metrics.NodeErrors = make(map[string]int64)
	h.metrics.PromptTokens = 0
	h.metrics.CompletionTokens = 0
	h.metrics.TotalTokens = 0
}

const (
	metricsStartTimeKey contextKey = "metrics_start_time"
)
