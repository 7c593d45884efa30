package services

import (
	"context"

	"standard-ai/internal/domain/models"
)

// CompletionClient 模型服务客户端接口
// 提供两种调用协议：应用模式（单条提示词）和对话模式（消息列表）
type CompletionClient interface {
	// CompleteApplication 应用模式调用
	// ctx: 上下文
	// prompt: 完整提示词
	// params: 生成参数，与默认参数按键合并，显式参数优先
	// 返回: 模型回复文本和错误信息
	CompleteApplication(ctx context.Context, prompt string, params models.Parameters) (string, error)

	// CompleteChat 对话模式调用
	// ctx: 上下文
	// messages: 有序消息列表
	// model: 模型名称，空值使用配置的默认模型
	// 返回: 回复文本、可选的 token 用量和错误信息
	CompleteChat(ctx context.Context, messages []models.Message, model string) (*models.ChatCompletion, error)
}

// FileIngestor 模型服务文件解析接口
type FileIngestor interface {
	// UploadFile 上传文件，返回模型服务签发的文件标识
	UploadFile(ctx context.Context, filename string, data []byte, purpose string) (models.FileContextRef, error)
}
