package dashscope

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"standard-ai/internal/domain/models"
)

// CompleteChat 兼容模式对话：发送有序消息列表，返回首个候选回复和 token 用量
func (c *Client) CompleteChat(ctx context.Context, messages []models.Message, model string) (*models.ChatCompletion, error) {
	const op = "chat completion"
	if err := c.checkCredential(op); err != nil {
		return nil, err
	}
	if model == "" {
		model = c.cfg.ChatModel
	}

	data, err := json.Marshal(chatRequest{Model: model, Messages: messages})
	if err != nil {
		return nil, fmt.Errorf("marshal chat request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.cfg.BaseURL+chatPath, bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("create chat request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	status, body, err := c.do(ctx, op, req)
	if err != nil {
		return nil, err
	}

	var resp chatResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, undecodable(status, body, err)
	}
	if len(resp.Choices) == 0 {
		return nil, undecodable(status, body, errors.New("no choices in response"))
	}

	c.logger.InfoContext(ctx, "对话模式调用成功", "model", model, "messages", len(messages), "usage", resp.Usage)
	return &models.ChatCompletion{
		Text:  resp.Choices[0].Message.Content,
		Usage: resp.Usage,
	}, nil
}
