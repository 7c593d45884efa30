package dashscope

import "standard-ai/internal/domain/models"

// applicationRequest 应用模式请求体
type applicationRequest struct {
	Input      applicationInput  `json:"input"`
	Parameters models.Parameters `json:"parameters"`
	Debug      struct{}          `json:"debug"`
}

type applicationInput struct {
	Prompt string `json:"prompt"`
}

// applicationResponse 应用模式响应体
type applicationResponse struct {
	Output struct {
		Text         string `json:"text"`
		FinishReason string `json:"finish_reason"`
		SessionID    string `json:"session_id"`
	} `json:"output"`
	Usage struct {
		Models []struct {
			ModelID      string `json:"model_id"`
			InputTokens  int    `json:"input_tokens"`
			OutputTokens int    `json:"output_tokens"`
		} `json:"models"`
	} `json:"usage"`
	RequestID string `json:"request_id"`
}

// chatRequest 兼容模式对话请求体
type chatRequest struct {
	Model    string           `json:"model"`
	Messages []models.Message `json:"messages"`
}

// chatResponse 兼容模式对话响应体
type chatResponse struct {
	ID      string `json:"id"`
	Choices []struct {
		Index   int `json:"index"`
		Message struct {
			Role    string `json:"role"`
			Content string `json:"content"`
		} `json:"message"`
		FinishReason string `json:"finish_reason"`
	} `json:"choices"`
	Usage *models.Usage `json:"usage,omitempty"`
}

// fileResponse 文件上传响应体
type fileResponse struct {
	ID       string `json:"id"`
	Object   string `json:"object"`
	Bytes    int64  `json:"bytes"`
	Filename string `json:"filename"`
	Purpose  string `json:"purpose"`
	Status   string `json:"status"`
}
