// Package callbacks 提供 Eino Callback 处理器实现
package callbacks

import (
	"context"
	"log/slog"
	"time"

	"github.com/cloudwego/eino/callbacks"
	"github.com/cloudwego/eino/components"
	"github.com/cloudwego/eino/components/model"
	"github.com/cloudwego/eino/schema"

	"standard-ai/internal/eino/config"
	"standard-ai/pkg/logger"
)

// LoggingHandler 实现基于日志的 Callback 处理器。
// 它会在流水线节点开始、结束或出错时记录日志，模型节点额外记录 token 用量。
type LoggingHandler struct {
	logger logger.Logger
	cfg    *config.LoggingCallbackConfig
	level  slog.Level
}

// NewLoggingHandler 创建一个新的日志回调处理器。
// 参数 log: 底层日志记录器。
// 参数 cfg: 日志回调配置，Level 决定开始/完成日志的级别，错误总是以 Error 级别输出。
func NewLoggingHandler(log logger.Logger, cfg *config.LoggingCallbackConfig) callbacks.Handler {
	return &LoggingHandler{
		logger: log,
		cfg:    cfg,
		level:  logger.ParseLevel(cfg.Level),
	}
}

// OnStart 在节点开始执行时被调用。
// 将开始时间和节点字段注入上下文，节点内部的日志会自动携带这些字段。
func (h *LoggingHandler) OnStart(ctx context.Context, info *callbacks.RunInfo, input callbacks.CallbackInput) context.Context {
	if !h.cfg.Enabled {
		return ctx
	}

	ctx = context.WithValue(ctx, startTimeKey, time.Now())
	ctx = logger.InjectFields(ctx, logger.Fields{
		"component": string(info.Component),
		"node":      info.Name,
	})

	h.log(ctx, "节点开始执行", "type", info.Type)
	return ctx
}

// OnEnd 在节点执行完成时被调用。
func (h *LoggingHandler) OnEnd(ctx context.Context, info *callbacks.RunInfo, output callbacks.CallbackOutput) context.Context {
	if !h.cfg.Enabled {
		return ctx
	}

	args := []any{"duration_ms", elapsedMs(ctx, startTimeKey)}
	if usage := tokenUsage(info, output); usage != nil {
		args = append(args,
			"prompt_tokens", usage.PromptTokens,
			"completion_tokens", usage.CompletionTokens,
			"total_tokens", usage.TotalTokens,
		)
	}

	h.log(ctx, "节点执行完成", args...)
	return ctx
}

// OnError 在节点执行出错时被调用。
func (h *LoggingHandler) OnError(ctx context.Context, info *callbacks.RunInfo, err error) context.Context {
	if !h.cfg.Enabled {
		return ctx
	}

	h.logger.ErrorContext(ctx, "节点执行出错",
		"component", string(info.Component),
		"node", info.Name,
		"duration_ms", elapsedMs(ctx, startTimeKey),
		"error", err.Error(),
	)
	return ctx
}

// OnStartWithStreamInput 在流式输入开始时被调用。
func (h *LoggingHandler) OnStartWithStreamInput(ctx context.Context, info *callbacks.RunInfo, input *schema.StreamReader[callbacks.CallbackInput]) context.Context {
	input.Close()
	if !h.cfg.Enabled {
		return ctx
	}

	ctx = context.WithValue(ctx, startTimeKey, time.Now())
	h.log(ctx, "节点流式输入开始", "component", string(info.Component), "node", info.Name)
	return ctx
}

// OnEndWithStreamOutput 在流式输出结束时被调用。
func (h *LoggingHandler) OnEndWithStreamOutput(ctx context.Context, info *callbacks.RunInfo, output *schema.StreamReader[callbacks.CallbackOutput]) context.Context {
	output.Close()
	if !h.cfg.Enabled {
		return ctx
	}

	h.log(ctx, "节点流式输出完成",
		"component", string(info.Component),
		"node", info.Name,
		"duration_ms", elapsedMs(ctx, startTimeKey),
	)
	return ctx
}

func (h *LoggingHandler) log(ctx context.Context, msg string, args ...any) {
	switch {
	case h.level <= slog.LevelDebug:
		h.logger.DebugContext(ctx, msg, args...)
	case h.level >= slog.LevelWarn:
		h.logger.WarnContext(ctx, msg, args...)
	default:
		h.logger.InfoContext(ctx, msg, args...)
	}
}

// tokenUsage 从模型节点的输出中取出 token 用量，其它节点返回 nil。
// 未自行上报回调的模型实现只会给出 *schema.Message，此时从 ResponseMeta 中读取。
func tokenUsage(info *callbacks.RunInfo, output callbacks.CallbackOutput) *model.TokenUsage {
	if info == nil || info.Component != components.ComponentOfChatModel {
		return nil
	}

	out := model.ConvCallbackOutput(output)
	if out == nil {
		return nil
	}
	if out.TokenUsage != nil {
		return out.TokenUsage
	}
	if out.Message != nil && out.Message.ResponseMeta != nil && out.Message.ResponseMeta.Usage != nil {
		u := out.Message.ResponseMeta.Usage
		return &model.TokenUsage{
			PromptTokens:     u.PromptTokens,
			CompletionTokens: u.CompletionTokens,
			TotalTokens:      u.TotalTokens,
		}
	}
	return nil
}

func elapsedMs(ctx context.Context, key contextKey) int64 {
	startTime, ok := ctx.Value(key).(time.Time)
	if !ok {
		return 0
	}
	return time.Since(startTime).Milliseconds()
}

// contextKey 定义了上下文键的类型，用于防止键名冲突。
type contextKey string

const (
	// startTimeKey 用于在上下文中存储节点开始执行的时间。
	startTimeKey contextKey = "callback_start_time"
)
