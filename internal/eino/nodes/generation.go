package nodes

import (
	"context"

	"standard-ai/internal/domain/models"
	"standard-ai/internal/domain/prompts"
	"standard-ai/internal/domain/services"
)

// GenerationTask 文本生成任务
type GenerationTask string

const (
	// TaskClause 按用例生成条款
	TaskClause GenerationTask = "clause"
	// TaskRewrite 按要求改写选中文本
	TaskRewrite GenerationTask = "rewrite"
	// TaskAsk 单轮专家问答
	TaskAsk GenerationTask = "ask"
)

// GenerationInput 文本生成流程输入，按 Task 读取对应字段
type GenerationInput struct {
	Task GenerationTask

	// TaskClause
	Spec models.PromptSpec

	// TaskRewrite
	SelectedText string
	Instruction  string

	// TaskAsk
	Question string
}

// GenerationOutput 文本生成流程输出，模型原文不做解析
type GenerationOutput struct {
	Text string
}

// ApplicationPrompt 应用模式请求
type ApplicationPrompt struct {
	Prompt string
	Params models.Parameters
}

type renderFunc func(in *GenerationInput) (*ApplicationPrompt, error)

// GenerationPrompter 按任务渲染提示词
type GenerationPrompter struct {
	renderers map[GenerationTask]renderFunc
}

// NewGenerationPrompter 创建提示词节点。
// askMaxTokens 为单轮问答的 max_tokens 覆盖，0 表示使用默认值。
func NewGenerationPrompter(catalog *prompts.Catalog, askMaxTokens int) *GenerationPrompter {
	return &GenerationPrompter{renderers: map[GenerationTask]renderFunc{
		TaskClause: func(in *GenerationInput) (*ApplicationPrompt, error) {
			prompt, err := catalog.RenderSpec(in.Spec)
			if err != nil {
				return nil, err
			}
			return &ApplicationPrompt{Prompt: prompt}, nil
		},
		TaskRewrite: func(in *GenerationInput) (*ApplicationPrompt, error) {
			prompt, err := catalog.RenderRewrite(in.Instruction, in.SelectedText)
			if err != nil {
				return nil, err
			}
			return &ApplicationPrompt{Prompt: prompt}, nil
		},
		TaskAsk: func(in *GenerationInput) (*ApplicationPrompt, error) {
			prompt, err := catalog.RenderAsk(in.Question)
			if err != nil {
				return nil, err
			}
			var params models.Parameters
			if askMaxTokens > 0 {
				params = models.Parameters{models.ParamMaxTokens: askMaxTokens}
			}
			return &ApplicationPrompt{Prompt: prompt, Params: params}, nil
		},
	}}
}

// Render 渲染提示词，未知任务返回 ErrInvalidInput
func (n *GenerationPrompter) Render(_ context.Context, in *GenerationInput) (*ApplicationPrompt, error) {
	if in == nil {
		return nil, models.InvalidInputf("generation input is required")
	}
	render, ok := n.renderers[in.Task]
	if !ok {
		return nil, models.InvalidInputf("unsupported generation task %q", in.Task)
	}
	return render(in)
}

// ApplicationCompleter 应用模式调用节点
type ApplicationCompleter struct {
	client services.CompletionClient
}

// NewApplicationCompleter 创建应用模式调用节点
func NewApplicationCompleter(client services.CompletionClient) *ApplicationCompleter {
	return &ApplicationCompleter{client: client}
}

// Complete 调用模型并原样返回回复文本
func (n *ApplicationCompleter) Complete(ctx context.Context, p *ApplicationPrompt) (*GenerationOutput, error) {
	text, err := n.client.CompleteApplication(ctx, p.Prompt, p.Params)
	if err != nil {
		return nil, err
	}
	return &GenerationOutput{Text: text}, nil
}
