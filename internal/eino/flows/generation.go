package flows

import (
	"context"
	"fmt"

	"github.com/cloudwego/eino/callbacks"
	"github.com/cloudwego/eino/compose"

	"standard-ai/internal/domain/prompts"
	"standard-ai/internal/domain/services"
	"standard-ai/internal/eino/config"
	"standard-ai/internal/eino/nodes"
)

// GenerationGraph 条款生成、改写和单轮问答流程：渲染提示词 -> 应用模式调用。
// 模型回复原样返回，不经过审核结果解析。
type GenerationGraph struct {
	catalog          *prompts.Catalog
	client           services.CompletionClient
	cfg              *config.GenerationConfig
	callbackHandlers []callbacks.Handler
}

// NewGenerationGraph 创建文本生成 Graph
func NewGenerationGraph(
	catalog *prompts.Catalog,
	client services.CompletionClient,
	cfg *config.GenerationConfig,
	callbackHandlers ...callbacks.Handler,
) *GenerationGraph {
	return &GenerationGraph{
		catalog:          catalog,
		client:           client,
		cfg:              cfg,
		callbackHandlers: callbackHandlers,
	}
}

// Compile 编译 Graph 为 Runnable
func (g *GenerationGraph) Compile(ctx context.Context) (compose.Runnable[*nodes.GenerationInput, *nodes.GenerationOutput], error) {
	graph := compose.NewGraph[*nodes.GenerationInput, *nodes.GenerationOutput]()

	askMaxTokens := 0
	if g.cfg != nil {
		askMaxTokens = g.cfg.AskMaxTokens
	}
	prompter := nodes.NewGenerationPrompter(g.catalog, askMaxTokens)
	if err := graph.AddLambdaNode("render", compose.InvokableLambda(prompter.Render),
		compose.WithNodeName("generation.render")); err != nil {
		return nil, fmt.Errorf("add render node: %w", err)
	}

	completer := nodes.NewApplicationCompleter(g.client)
	if err := graph.AddLambdaNode("complete", compose.InvokableLambda(completer.Complete),
		compose.WithNodeName("generation.complete")); err != nil {
		return nil, fmt.Errorf("add complete node: %w", err)
	}

	if err := linkNodes(graph, "render", "complete"); err != nil {
		return nil, err
	}

	runnable, err := graph.Compile(ctx, compose.WithGraphName("generation"))
	if err != nil {
		return nil, fmt.Errorf("compile generation graph: %w", err)
	}
	return withCallbacks(runnable, g.callbackHandlers), nil
}
