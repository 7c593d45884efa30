// Package callbacks 提供 Eino Callback 处理器实现
package callbacks

import (
	"github.com/cloudwego/eino/callbacks"

	"standard-ai/internal/eino/config"
	"standard-ai/pkg/logger"
)

// Factory Callback 工厂
type Factory struct {
	cfg     *config.CallbacksConfig
	logger  logger.Logger
	metrics *MetricsHandler
}

// NewFactory 创建 Callback 工厂。
// 指标处理器在工厂内只创建一次，所有流程共享同一份统计。
func NewFactory(cfg *config.CallbacksConfig, log logger.Logger) *Factory {
	f := &Factory{
		cfg:    cfg,
		logger: log,
	}
	if cfg.Metrics.Enabled {
		f.metrics = NewMetricsHandler(&cfg.Metrics)
	}
	return f
}

// CreateHandlers 创建所有启用的 Callback 处理器
func (f *Factory) CreateHandlers() []callbacks.Handler {
	handlers := make([]callbacks.Handler, 0, 2)

	if f.cfg.Logging.Enabled {
		handlers = append(handlers, NewLoggingHandler(f.logger, &f.cfg.Logging))
	}

	if f.metrics != nil {
		handlers = append(handlers, f.metrics)
	}

	return handlers
}

// GetMetricsHandler 获取指标回调处理器，未启用时返回 nil
func (f *Factory) GetMetricsHandler() *MetricsHandler {
	return f.metrics
}
