// Package dashscope 阿里云百炼（DashScope）模型服务客户端。
// 同时实现应用模式、OpenAI 兼容对话模式和文件解析三类接口，不做任何重试。
package dashscope

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"standard-ai/internal/domain/models"
	"standard-ai/pkg/logger"
)

const (
	applicationPath = "/api/v1/apps/%s/completion"
	chatPath        = "/compatible-mode/v1/chat/completions"
	filesPath       = "/compatible-mode/v1/files"

	// maxErrorBody 错误响应体保留的最大字节数
	maxErrorBody = 64 << 10
)

// Config 客户端配置，启动时构建一次
type Config struct {
	APIKey      string
	BaseURL     string
	AppID       string
	ChatModel   string
	Timeout     time.Duration
	MaxTokens   int
	Temperature float64
}

// Client DashScope 客户端，只持有不可变配置，可并发使用
type Client struct {
	cfg        Config
	defaults   models.Parameters
	httpClient *http.Client
	logger     logger.Logger
}

// Option 客户端选项
type Option func(*Client)

// WithHTTPClient 替换底层 HTTP 客户端
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.httpClient = hc
	}
}

// NewClient 创建 DashScope 客户端
func NewClient(cfg Config, log logger.Logger, opts ...Option) *Client {
	if log == nil {
		log = logger.GetDefault()
	}
	cfg.BaseURL = strings.TrimRight(cfg.BaseURL, "/")

	defaults := models.DefaultParameters()
	if cfg.MaxTokens > 0 {
		defaults[models.ParamMaxTokens] = cfg.MaxTokens
	}
	if cfg.Temperature > 0 {
		defaults[models.ParamTemperature] = cfg.Temperature
	}

	c := &Client{
		cfg:        cfg,
		defaults:   defaults,
		httpClient: &http.Client{Timeout: cfg.Timeout},
		logger:     log,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// DefaultChatModel 返回配置的默认对话模型
func (c *Client) DefaultChatModel() string {
	return c.cfg.ChatModel
}

// checkCredential 在任何网络请求前检查凭证
func (c *Client) checkCredential(op string) error {
	if strings.TrimSpace(c.cfg.APIKey) == "" {
		return fmt.Errorf("%s: %w: DASHSCOPE_API_KEY is not set", op, models.ErrMissingCredential)
	}
	return nil
}

// do 发送请求并返回成功响应的响应体。
// 网络层失败返回 TransportError，非 2xx 返回保留状态码和响应体的 UpstreamError。
func (c *Client) do(ctx context.Context, op string, req *http.Request) (int, []byte, error) {
	req.Header.Set("Authorization", "Bearer "+c.cfg.APIKey)

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.ErrorContext(ctx, "调用模型服务失败", "op", op, "error", err)
		return 0, nil, &models.TransportError{Op: op, Err: err}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return resp.StatusCode, nil, &models.TransportError{Op: op, Err: fmt.Errorf("read response: %w", err)}
	}

	duration := time.Since(start)
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		if len(body) > maxErrorBody {
			body = body[:maxErrorBody]
		}
		c.logger.ErrorContext(ctx, "模型服务返回错误状态",
			"op", op,
			"status", resp.StatusCode,
			"body", string(body),
			"duration", duration)
		return resp.StatusCode, nil, &models.UpstreamError{StatusCode: resp.StatusCode, Body: string(body)}
	}

	c.logger.DebugContext(ctx, "模型服务调用完成", "op", op, "status", resp.StatusCode, "duration", duration)
	return resp.StatusCode, body, nil
}

// undecodable 成功状态但响应体无法解析，按上游错误处理
func undecodable(status int, body []byte, cause error) error {
	msg := string(body)
	if len(msg) > maxErrorBody {
		msg = msg[:maxErrorBody]
	}
	return fmt.Errorf("%w (%v)", &models.UpstreamError{StatusCode: status, Body: msg}, cause)
}
