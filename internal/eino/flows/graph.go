// Package flows 提供 Eino Graph 流程定义
package flows

import (
	"context"
	"fmt"

	"github.com/cloudwego/eino/callbacks"
	"github.com/cloudwego/eino/compose"
	"github.com/cloudwego/eino/schema"
)

// linkNodes 按顺序连接 START -> keys... -> END
func linkNodes[I, O any](graph *compose.Graph[I, O], keys ...string) error {
	path := append(append([]string{compose.START}, keys...), compose.END)
	for i := 0; i+1 < len(path); i++ {
		if err := graph.AddEdge(path[i], path[i+1]); err != nil {
			return fmt.Errorf("add edge %s->%s: %w", path[i], path[i+1], err)
		}
	}
	return nil
}

// withCallbacks 返回在每次运行时注入回调处理器的 Runnable
func withCallbacks[I, O any](r compose.Runnable[I, O], handlers []callbacks.Handler) compose.Runnable[I, O] {
	if len(handlers) == 0 {
		return r
	}
	return &callbackRunnable[I, O]{inner: r, opt: compose.WithCallbacks(handlers...)}
}

type callbackRunnable[I, O any] struct {
	inner compose.Runnable[I, O]
	opt   compose.Option
}

func (r *callbackRunnable[I, O]) Invoke(ctx context.Context, input I, opts ...compose.Option) (O, error) {
	return r.inner.Invoke(ctx, input, r.with(opts)...)
}

func (r *callbackRunnable[I, O]) Stream(ctx context.Context, input I, opts ...compose.Option) (*schema.StreamReader[O], error) {
	return r.inner.Stream(ctx, input, r.with(opts)...)
}

func (r *callbackRunnable[I, O]) Collect(ctx context.Context, input *schema.StreamReader[I], opts ...compose.Option) (O, error) {
	return r.inner.Collect(ctx, input, r.with(opts)...)
}

func (r *callbackRunnable[I, O]) Transform(ctx context.Context, input *schema.StreamReader[I], opts ...compose.Option) (*schema.StreamReader[O], error) {
	return r.inner.Transform(ctx, input, r.with(opts)...)
}

func (r *callbackRunnable[I, O]) with(opts []compose.Option) []compose.Option {
	return append([]compose.Option{r.opt}, opts...)
}
