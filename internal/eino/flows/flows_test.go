package flows

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"standard-ai/internal/domain/models"
	"standard-ai/internal/domain/prompts"
	"standard-ai/internal/domain/review"
	"standard-ai/internal/eino/callbacks"
	"standard-ai/internal/eino/components"
	"standard-ai/internal/eino/config"
	"standard-ai/internal/eino/nodes"
	"standard-ai/pkg/logger"
)

type fakeClient struct {
	prompts  []string
	params   []models.Parameters
	messages [][]models.Message
	models   []string

	reply string
	usage *models.Usage
	err   error
}

func (f *fakeClient) CompleteApplication(_ context.Context, prompt string, params models.Parameters) (string, error) {
	f.prompts = append(f.prompts, prompt)
	f.params = append(f.params, params)
	if f.err != nil {
		return "", f.err
	}
	return f.reply, nil
}

func (f *fakeClient) CompleteChat(_ context.Context, messages []models.Message, model string) (*models.ChatCompletion, error) {
	f.messages = append(f.messages, messages)
	f.models = append(f.models, model)
	if f.err != nil {
		return nil, f.err
	}
	return &models.ChatCompletion{Text: f.reply, Usage: f.usage}, nil
}

type plainExtractor struct{}

func (plainExtractor) Extract(_ context.Context, data []byte, format string) (string, error) {
	if format == "pdf" {
		return "", models.InvalidInputf("unsupported document format %q", format)
	}
	return string(data), nil
}

const validReview = `{
  "standard_name": "GA 1400",
  "standard_type": "行业标准",
  "overall_assessment": "结构完整",
  "overall_score": "86",
  "detailed_checks": {
    "format_compliance": {"score": "9", "findings": "符合"},
    "terminology_consistency": {"score": 8, "findings": "基本一致"},
    "normative_language": {"score": "7", "findings": "个别用词"},
    "content_logic": {"score": "9", "findings": "严密"},
    "reference_accuracy": {"score": "15", "findings": "超出范围的评分原样保留"}
  },
  "issues_and_suggestions": [
    {"clause": "4.1", "original_text": "必须", "issue_description": "助动词", "suggestion": "应", "severity": "一般"}
  ]
}`

func compileReview(t *testing.T, client *fakeClient, cfg *config.ReviewConfig) *ReviewGraph {
	t.Helper()
	return NewReviewGraph(plainExtractor{}, prompts.NewCatalog(), client, review.MustNewParser(), cfg, logger.Discard())
}

func TestReviewGraph(t *testing.T) {
	ctx := context.Background()

	t.Run("parses structured output", func(t *testing.T) {
		client := &fakeClient{reply: validReview}
		runnable, err := compileReview(t, client, &config.ReviewConfig{}).Compile(ctx)
		require.NoError(t, err)

		resp, err := runnable.Invoke(ctx, &models.ReviewRequest{Data: []byte("1 范围"), Format: "txt", FileName: "GA 1400.txt"})
		require.NoError(t, err)

		assert.Equal(t, "GA 1400.txt", resp.FileName)
		assert.False(t, resp.Result.Degraded())
		assert.Equal(t, "86", resp.Result.OverallScore.String())
		assert.Equal(t, "15", resp.Result.DetailedChecks[models.CheckReferenceAccuracy].Score.String())
		require.Len(t, resp.Result.IssuesAndSuggestions, 1)

		require.Len(t, client.prompts, 1)
		assert.True(t, strings.HasSuffix(client.prompts[0], "请审核以下文档内容:\n\n1 范围"))
	})

	t.Run("degrades on unstructured output", func(t *testing.T) {
		client := &fakeClient{reply: "not json {"}
		runnable, err := compileReview(t, client, nil).Compile(ctx)
		require.NoError(t, err)

		resp, err := runnable.Invoke(ctx, &models.ReviewRequest{Data: []byte("正文"), Format: "txt", FileName: "a.txt"})
		require.NoError(t, err)
		assert.True(t, resp.Result.Degraded())
		assert.Equal(t, "not json {", resp.Result.RawResponse)
		assert.Equal(t, "0", resp.Result.OverallScore.String())
		assert.Empty(t, resp.Result.IssuesAndSuggestions)
	})

	t.Run("passes configured parameters", func(t *testing.T) {
		client := &fakeClient{reply: validReview}
		cfg := &config.ReviewConfig{Parameters: map[string]interface{}{"temperature": 0.2}}
		runnable, err := compileReview(t, client, cfg).Compile(ctx)
		require.NoError(t, err)

		_, err = runnable.Invoke(ctx, &models.ReviewRequest{Data: []byte("x"), Format: "txt"})
		require.NoError(t, err)
		assert.Equal(t, models.Parameters{"temperature": 0.2}, client.params[0])
	})

	t.Run("propagates errors", func(t *testing.T) {
		client := &fakeClient{err: &models.UpstreamError{StatusCode: 500, Body: "boom"}}
		runnable, err := compileReview(t, client, nil).Compile(ctx)
		require.NoError(t, err)

		_, err = runnable.Invoke(ctx, &models.ReviewRequest{Data: []byte("x"), Format: "txt"})
		var upstream *models.UpstreamError
		require.True(t, errors.As(err, &upstream))
		assert.Equal(t, 500, upstream.StatusCode)

		_, err = runnable.Invoke(ctx, &models.ReviewRequest{Data: []byte("%PDF"), Format: "pdf"})
		assert.True(t, errors.Is(err, models.ErrInvalidInput))
		assert.Len(t, client.prompts, 1, "extraction failure must not reach the model")

		_, err = runnable.Invoke(ctx, &models.ReviewRequest{})
		assert.True(t, errors.Is(err, models.ErrInvalidInput))
	})
}

func TestGenerationGraph(t *testing.T) {
	ctx := context.Background()
	client := &fakeClient{reply: "生成的条款"}
	runnable, err := NewGenerationGraph(prompts.NewCatalog(), client, &config.GenerationConfig{AskMaxTokens: 1000}).Compile(ctx)
	require.NoError(t, err)

	tests := []struct {
		name       string
		input      *nodes.GenerationInput
		wantParams models.Parameters
		wantErr    error
	}{
		{
			name:  "clause",
			input: &nodes.GenerationInput{Task: nodes.TaskClause, Spec: models.PromptSpec{UseCase: models.UseCaseScope, Topic: "视频图像信息"}},
		},
		{
			name:  "rewrite",
			input: &nodes.GenerationInput{Task: nodes.TaskRewrite, SelectedText: "必须加密", Instruction: "更正式"},
		},
		{
			name:       "ask uses reduced max tokens",
			input:      &nodes.GenerationInput{Task: nodes.TaskAsk, Question: "什么是规范性引用文件？"},
			wantParams: models.Parameters{models.ParamMaxTokens: 1000},
		},
		{
			name:    "invalid use case",
			input:   &nodes.GenerationInput{Task: nodes.TaskClause, Spec: models.PromptSpec{UseCase: "summary", Topic: "x"}},
			wantErr: models.ErrInvalidUseCase,
		},
		{
			name:    "unknown task",
			input:   &nodes.GenerationInput{Task: "translate"},
			wantErr: models.ErrInvalidInput,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			before := len(client.prompts)
			out, err := runnable.Invoke(ctx, tt.input)
			if tt.wantErr != nil {
				assert.True(t, errors.Is(err, tt.wantErr), "got %v", err)
				assert.Len(t, client.prompts, before)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, "生成的条款", out.Text)
			assert.Equal(t, tt.wantParams, client.params[len(client.params)-1])
		})
	}

	assert.Contains(t, client.prompts[1], `要求: "更正式"`)
	assert.Contains(t, client.prompts[1], `原始文本: "必须加密"`)
}

func TestChatGraph(t *testing.T) {
	ctx := context.Background()
	client := &fakeClient{reply: "回答", usage: &models.Usage{PromptTokens: 10, CompletionTokens: 5, TotalTokens: 15}}

	factory := callbacks.NewFactory(&config.DefaultEinoConfig().Callbacks, logger.Discard())
	graph := NewChatGraph(components.NewChatModel(client, "qwen-long"), factory.CreateHandlers()...)
	runnable, err := graph.Compile(ctx)
	require.NoError(t, err)

	out, err := runnable.Invoke(ctx, &nodes.ChatInput{
		History: []models.ChatTurn{
			{Role: models.RoleUser, Text: "A"},
			{Role: "info", Text: "已选择文件"},
			{Role: models.RoleAssistant, Text: "B"},
		},
		FileRef: "f123",
	})
	require.NoError(t, err)
	assert.Equal(t, "回答", out.Text)
	assert.Equal(t, &models.Usage{PromptTokens: 10, CompletionTokens: 5, TotalTokens: 15}, out.Usage)

	require.Len(t, client.messages, 1)
	assert.Equal(t, []models.Message{
		{Role: models.RoleSystem, Content: "You are a helpful assistant."},
		{Role: models.RoleSystem, Content: "fileid://f123"},
		{Role: models.RoleUser, Content: "A"},
		{Role: models.RoleAssistant, Content: "B"},
	}, client.messages[0])
	assert.Equal(t, "qwen-long", client.models[0])

	metrics := factory.GetMetricsHandler().GetMetrics()
	tokens := metrics["tokens"].(map[string]int64)
	assert.Equal(t, int64(15), tokens["total"])
	assert.Equal(t, int64(0), metrics["failed_calls"])
}
