package flows

import (
	"context"
	"fmt"

	"github.com/cloudwego/eino/callbacks"
	"github.com/cloudwego/eino/compose"

	"standard-ai/internal/domain/models"
	"standard-ai/internal/domain/prompts"
	"standard-ai/internal/domain/review"
	"standard-ai/internal/domain/services"
	"standard-ai/internal/eino/config"
	"standard-ai/internal/eino/nodes"
	"standard-ai/pkg/logger"
)

// ReviewGraph 文档审核流程：抽取文本 -> 渲染提示词 -> 应用模式调用 -> 解析结果。
// 各阶段严格串行，解析失败时返回降级结果而不是错误。
type ReviewGraph struct {
	extractor        services.TextExtractor
	catalog          *prompts.Catalog
	client           services.CompletionClient
	parser           *review.Parser
	cfg              *config.ReviewConfig
	logger           logger.Logger
	callbackHandlers []callbacks.Handler
}

// NewReviewGraph 创建文档审核 Graph
func NewReviewGraph(
	extractor services.TextExtractor,
	catalog *prompts.Catalog,
	client services.CompletionClient,
	parser *review.Parser,
	cfg *config.ReviewConfig,
	log logger.Logger,
	callbackHandlers ...callbacks.Handler,
) *ReviewGraph {
	return &ReviewGraph{
		extractor:        extractor,
		catalog:          catalog,
		client:           client,
		parser:           parser,
		cfg:              cfg,
		logger:           log,
		callbackHandlers: callbackHandlers,
	}
}

// Compile 编译 Graph 为 Runnable
func (g *ReviewGraph) Compile(ctx context.Context) (compose.Runnable[*models.ReviewRequest, *models.ReviewResponse], error) {
	graph := compose.NewGraph[*models.ReviewRequest, *models.ReviewResponse]()

	// 1. 文本抽取
	extract := nodes.NewDocumentExtractor(g.extractor)
	if err := graph.AddLambdaNode("extract", compose.InvokableLambda(extract.Extract),
		compose.WithNodeName("review.extract")); err != nil {
		return nil, fmt.Errorf("add extract node: %w", err)
	}

	// 2. 审核提示词
	prompter := nodes.NewReviewPrompter(g.catalog)
	if err := graph.AddLambdaNode("prompt", compose.InvokableLambda(prompter.Render),
		compose.WithNodeName("review.prompt")); err != nil {
		return nil, fmt.Errorf("add prompt node: %w", err)
	}

	// 3. 应用模式调用
	var params models.Parameters
	if g.cfg != nil {
		params = g.cfg.Parameters
	}
	completer := nodes.NewReviewCompleter(g.client, params)
	if err := graph.AddLambdaNode("complete", compose.InvokableLambda(completer.Complete),
		compose.WithNodeName("review.complete")); err != nil {
		return nil, fmt.Errorf("add complete node: %w", err)
	}

	// 4. 结果解析
	builder := nodes.NewReviewResultBuilder(g.parser, g.logger)
	if err := graph.AddLambdaNode("parse", compose.InvokableLambda(builder.Build),
		compose.WithNodeName("review.parse")); err != nil {
		return nil, fmt.Errorf("add parse node: %w", err)
	}

	if err := linkNodes(graph, "extract", "prompt", "complete", "parse"); err != nil {
		return nil, err
	}

	runnable, err := graph.Compile(ctx, compose.WithGraphName("review"))
	if err != nil {
		return nil, fmt.Errorf("compile review graph: %w", err)
	}
	return withCallbacks(runnable, g.callbackHandlers), nil
}
