// Package components 将领域客户端适配为 Eino 组件
package components

import (
	"context"

	"github.com/cloudwego/eino/components/model"
	"github.com/cloudwego/eino/schema"

	"standard-ai/internal/domain/models"
	"standard-ai/internal/domain/services"
)

// ChatModel 将 services.CompletionClient 的对话模式适配为 model.BaseChatModel，
// 以便作为 ChatModel 节点编排进 Graph。
type ChatModel struct {
	client       services.CompletionClient
	defaultModel string
}

var _ model.BaseChatModel = (*ChatModel)(nil)

// NewChatModel 创建对话模型组件。
// defaultModel 为空时由客户端使用其配置的模型。
func NewChatModel(client services.CompletionClient, defaultModel string) *ChatModel {
	return &ChatModel{client: client, defaultModel: defaultModel}
}

// Generate 发送消息列表并返回助手回复，token 用量写入 ResponseMeta
func (m *ChatModel) Generate(ctx context.Context, input []*schema.Message, opts ...model.Option) (*schema.Message, error) {
	options := model.GetCommonOptions(&model.Options{Model: &m.defaultModel}, opts...)
	modelName := ""
	if options.Model != nil {
		modelName = *options.Model
	}

	messages, err := ToMessages(input)
	if err != nil {
		return nil, err
	}

	completion, err := m.client.CompleteChat(ctx, messages, modelName)
	if err != nil {
		return nil, err
	}

	out := schema.AssistantMessage(completion.Text, nil)
	if completion.Usage != nil {
		out.ResponseMeta = &schema.ResponseMeta{
			Usage: &schema.TokenUsage{
				PromptTokens:     completion.Usage.PromptTokens,
				CompletionTokens: completion.Usage.CompletionTokens,
				TotalTokens:      completion.Usage.TotalTokens,
			},
		}
	}
	return out, nil
}

// Stream 上游接口不流式返回，整条回复作为单个分片输出
func (m *ChatModel) Stream(ctx context.Context, input []*schema.Message, opts ...model.Option) (*schema.StreamReader[*schema.Message], error) {
	out, err := m.Generate(ctx, input, opts...)
	if err != nil {
		return nil, err
	}
	return schema.StreamReaderFromArray([]*schema.Message{out}), nil
}

// ToMessages 将 Eino 消息转换为领域消息，仅接受 system / user / assistant 角色
func ToMessages(input []*schema.Message) ([]models.Message, error) {
	messages := make([]models.Message, 0, len(input))
	for i, msg := range input {
		var role models.Role
		switch msg.Role {
		case schema.System:
			role = models.RoleSystem
		case schema.User:
			role = models.RoleUser
		case schema.Assistant:
			role = models.RoleAssistant
		default:
			return nil, models.InvalidInputf("message %d has unsupported role %q", i, msg.Role)
		}
		messages = append(messages, models.Message{Role: role, Content: msg.Content})
	}
	return messages, nil
}

// FromMessages 将领域消息转换为 Eino 消息
func FromMessages(messages []models.Message) []*schema.Message {
	out := make([]*schema.Message, 0, len(messages))
	for _, msg := range messages {
		out = append(out, &schema.Message{Role: schema.RoleType(msg.Role), Content: msg.Content})
	}
	return out
}

// Usage 从回复的 ResponseMeta 中取出 token 用量
func Usage(msg *schema.Message) *models.Usage {
	if msg == nil || msg.ResponseMeta == nil || msg.ResponseMeta.Usage == nil {
		return nil
	}
	u := msg.ResponseMeta.Usage
	return &models.Usage{
		PromptTokens:     u.PromptTokens,
		CompletionTokens: u.CompletionTokens,
		TotalTokens:      u.TotalTokens,
	}
}

// GetType 组件类型，回调中作为 RunInfo.Type
func (m *ChatModel) GetType() string {
	return "DashScope"
}
