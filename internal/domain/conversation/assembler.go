// Package conversation 根据调用方提供的对话历史构造发送给对话接口的消息序列
package conversation

import (
	"standard-ai/internal/domain/models"
)

const (
	// DefaultSystemPrompt 固定的首条系统消息
	DefaultSystemPrompt = "You are a helpful assistant."

	// FileIDScheme 文件上下文的寻址前缀
	FileIDScheme = "fileid://"
)

// Build 构造消息序列：固定系统消息，可选的文件上下文系统消息，随后按原顺序追加 user/assistant 轮次。
// 其他角色的轮次（界面提示等）被丢弃。不去重、不截断，相同输入得到相同输出。
func Build(history []models.ChatTurn, fileRef models.FileContextRef) []models.Message {
	messages := make([]models.Message, 0, len(history)+2)
	messages = append(messages, models.Message{Role: models.RoleSystem, Content: DefaultSystemPrompt})

	if fileRef != "" {
		messages = append(messages, models.Message{Role: models.RoleSystem, Content: FileIDScheme + string(fileRef)})
	}

	for _, turn := range history {
		switch turn.Role {
		case models.RoleUser, models.RoleAssistant:
			messages = append(messages, models.Message{Role: turn.Role, Content: turn.Text})
		}
	}
	return messages
}
