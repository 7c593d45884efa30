package nodes

import (
	"context"

	"github.com/cloudwego/eino/schema"

	"standard-ai/internal/domain/conversation"
	"standard-ai/internal/domain/models"
	"standard-ai/internal/eino/components"
)

// ChatInput 对话流程输入。历史记录由调用方每次完整提供。
type ChatInput struct {
	History []models.ChatTurn
	FileRef models.FileContextRef
}

// AssembleMessages 组装发送给模型的消息序列
func AssembleMessages(_ context.Context, in *ChatInput) ([]*schema.Message, error) {
	if in == nil {
		return nil, models.InvalidInputf("chat input is required")
	}
	return components.FromMessages(conversation.Build(in.History, in.FileRef)), nil
}

// ToCompletion 将模型回复转换为对话结果，文本原样返回
func ToCompletion(_ context.Context, msg *schema.Message) (*models.ChatCompletion, error) {
	if msg == nil {
		return nil, &models.UpstreamError{Body: "empty chat reply"}
	}
	return &models.ChatCompletion{Text: msg.Content, Usage: components.Usage(msg)}, nil
}
