package flows

import (
	"context"
	"fmt"

	"github.com/cloudwego/eino/callbacks"
	"github.com/cloudwego/eino/components/model"
	"github.com/cloudwego/eino/compose"

	"standard-ai/internal/domain/models"
	"standard-ai/internal/eino/nodes"
)

// ChatGraph 上下文对话流程：组装消息 -> ChatModel -> 转换回复。
// 历史记录不在服务端保存，每次由调用方完整提供。
type ChatGraph struct {
	chatModel        model.BaseChatModel
	callbackHandlers []callbacks.Handler
}

// NewChatGraph 创建对话 Graph
func NewChatGraph(chatModel model.BaseChatModel, callbackHandlers ...callbacks.Handler) *ChatGraph {
	return &ChatGraph{
		chatModel:        chatModel,
		callbackHandlers: callbackHandlers,
	}
}

// Compile 编译 Graph 为 Runnable
func (g *ChatGraph) Compile(ctx context.Context) (compose.Runnable[*nodes.ChatInput, *models.ChatCompletion], error) {
	graph := compose.NewGraph[*nodes.ChatInput, *models.ChatCompletion]()

	if err := graph.AddLambdaNode("assemble", compose.InvokableLambda(nodes.AssembleMessages),
		compose.WithNodeName("chat.assemble")); err != nil {
		return nil, fmt.Errorf("add assemble node: %w", err)
	}

	if err := graph.AddChatModelNode("model", g.chatModel,
		compose.WithNodeName("chat.model")); err != nil {
		return nil, fmt.Errorf("add chat model node: %w", err)
	}

	if err := graph.AddLambdaNode("reply", compose.InvokableLambda(nodes.ToCompletion),
		compose.WithNodeName("chat.reply")); err != nil {
		return nil, fmt.Errorf("add reply node: %w", err)
	}

	if err := linkNodes(graph, "assemble", "model", "reply"); err != nil {
		return nil, err
	}

	runnable, err := graph.Compile(ctx, compose.WithGraphName("chat"))
	if err != nil {
		return nil, fmt.Errorf("compile chat graph: %w", err)
	}
	return withCallbacks(runnable, g.callbackHandlers), nil
}
