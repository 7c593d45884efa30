package dashscope

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"standard-ai/internal/domain/models"
)

// CompleteApplication 应用模式：单条提示词，返回 output.text。
// params 与默认参数浅合并，显式参数按键优先。
func (c *Client) CompleteApplication(ctx context.Context, prompt string, params models.Parameters) (string, error) {
	const op = "application completion"
	if err := c.checkCredential(op); err != nil {
		return "", err
	}
	if strings.TrimSpace(c.cfg.AppID) == "" {
		return "", fmt.Errorf("%s: %w: DASHSCOPE_APP_ID is not set", op, models.ErrMissingCredential)
	}

	payload := applicationRequest{
		Input:      applicationInput{Prompt: prompt},
		Parameters: models.MergeParameters(c.defaults, params),
	}
	data, err := json.Marshal(payload)
	if err != nil {
		return "", fmt.Errorf("marshal application request: %w", err)
	}

	url := c.cfg.BaseURL + fmt.Sprintf(applicationPath, c.cfg.AppID)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(data))
	if err != nil {
		return "", fmt.Errorf("create application request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	status, body, err := c.do(ctx, op, req)
	if err != nil {
		return "", err
	}

	var resp applicationResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return "", undecodable(status, body, err)
	}

	c.logger.InfoContext(ctx, "应用模式调用成功",
		"request_id", resp.RequestID,
		"prompt_chars", len([]rune(prompt)),
		"reply_chars", len([]rune(resp.Output.Text)))
	return resp.Output.Text, nil
}
