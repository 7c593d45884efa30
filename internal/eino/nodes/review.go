// Package nodes 提供 Eino Graph 中使用的 Lambda 节点实现
package nodes

import (
	"context"
	"fmt"

	"standard-ai/internal/domain/models"
	"standard-ai/internal/domain/prompts"
	"standard-ai/internal/domain/review"
	"standard-ai/internal/domain/services"
	"standard-ai/pkg/logger"
)

// ReviewDraft 审核流程在节点间传递的中间结果
type ReviewDraft struct {
	FileName string
	Content  string
	Prompt   string
	Raw      string
}

// DocumentExtractor 文本抽取节点
type DocumentExtractor struct {
	extractor services.TextExtractor
}

// NewDocumentExtractor 创建文本抽取节点
func NewDocumentExtractor(extractor services.TextExtractor) *DocumentExtractor {
	return &DocumentExtractor{extractor: extractor}
}

// Extract 抽取上传文档的纯文本
func (n *DocumentExtractor) Extract(ctx context.Context, req *models.ReviewRequest) (*ReviewDraft, error) {
	if req == nil || len(req.Data) == 0 {
		return nil, models.InvalidInputf("no document uploaded")
	}

	content, err := n.extractor.Extract(ctx, req.Data, req.Format)
	if err != nil {
		return nil, fmt.Errorf("extract %q: %w", req.FileName, err)
	}

	return &ReviewDraft{FileName: req.FileName, Content: content}, nil
}

// ReviewPrompter 审核提示词节点
type ReviewPrompter struct {
	catalog *prompts.Catalog
}

// NewReviewPrompter 创建审核提示词节点
func NewReviewPrompter(catalog *prompts.Catalog) *ReviewPrompter {
	return &ReviewPrompter{catalog: catalog}
}

// Render 将文档全文附在审核提示词之后
func (n *ReviewPrompter) Render(_ context.Context, draft *ReviewDraft) (*ReviewDraft, error) {
	draft.Prompt = n.catalog.RenderReview(draft.Content)
	return draft, nil
}

// ReviewCompleter 以应用模式调用模型
type ReviewCompleter struct {
	client services.CompletionClient
	params models.Parameters
}

// NewReviewCompleter 创建审核调用节点，params 为配置中的参数覆盖
func NewReviewCompleter(client services.CompletionClient, params models.Parameters) *ReviewCompleter {
	return &ReviewCompleter{client: client, params: params}
}

// Complete 发送审核提示词，保存模型原始输出
func (n *ReviewCompleter) Complete(ctx context.Context, draft *ReviewDraft) (*ReviewDraft, error) {
	raw, err := n.client.CompleteApplication(ctx, draft.Prompt, n.params)
	if err != nil {
		return nil, err
	}
	draft.Raw = raw
	return draft, nil
}

// ReviewResultBuilder 解析模型输出
type ReviewResultBuilder struct {
	parser *review.Parser
	logger logger.Logger
}

// NewReviewResultBuilder 创建结果解析节点
func NewReviewResultBuilder(parser *review.Parser, log logger.Logger) *ReviewResultBuilder {
	return &ReviewResultBuilder{parser: parser, logger: log}
}

// Build 解析模型输出。输出不符合审核结果结构时返回降级结果，不返回错误。
func (n *ReviewResultBuilder) Build(ctx context.Context, draft *ReviewDraft) (*models.ReviewResponse, error) {
	result, err := n.parser.Decode(draft.Raw)
	if err != nil {
		n.logger.WarnContext(ctx, "模型输出无法解析为审核结果，返回降级结果",
			"file_name", draft.FileName,
			"reason", err.Error(),
			"raw_length", len(draft.Raw))
		result = review.Fallback(draft.Raw)
	}

	return &models.ReviewResponse{Result: result, FileName: draft.FileName}, nil
}
