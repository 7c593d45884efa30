// Package cli stdctl 命令行工具：在终端中调用审核、条款生成、改写和对话流程
package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"io"

	"github.com/cloudwego/eino/compose"
	"github.com/spf13/cobra"

	"standard-ai/configs"
	"standard-ai/internal/app/bootstrap"
	"standard-ai/internal/domain/models"
	"standard-ai/internal/domain/services"
	"standard-ai/internal/eino/nodes"
)

// FileResolver 将本地文件或存储中的文件转换为模型服务文件标识
type FileResolver interface {
	FromUpload(ctx context.Context, filename string, data []byte) (models.FileContextRef, error)
	FromStore(ctx context.Context, name string) (models.FileContextRef, error)
}

// Runtime 命令执行所需的流程和依赖
type Runtime struct {
	Review     compose.Runnable[*models.ReviewRequest, *models.ReviewResponse]
	Generation compose.Runnable[*nodes.GenerationInput, *nodes.GenerationOutput]
	Chat       compose.Runnable[*nodes.ChatInput, *models.ChatCompletion]
	Resolver   FileResolver
	Store      services.ObjectStore // 未配置对象存储时为 nil
	Close      func() error
}

// Loader 按需创建 Runtime，只有真正执行子命令时才加载配置
type Loader func(ctx context.Context) (*Runtime, error)

// DefaultLoader 从配置文件和环境变量组装 Runtime
func DefaultLoader(ctx context.Context) (*Runtime, error) {
	cfg, err := configs.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	// 命令行只输出结果，日志写到 stderr
	cfg.Logging.Output = "stderr"
	if cfg.Logging.Level == "info" {
		cfg.Logging.Level = "warn"
	}

	app, err := bootstrap.New(ctx, cfg, bootstrap.NewLogger(cfg.Logging))
	if err != nil {
		return nil, err
	}
	return &Runtime{
		Review:     app.Review,
		Generation: app.Generation,
		Chat:       app.Chat,
		Resolver:   app.Resolver,
		Store:      app.Store,
		Close:      app.Close,
	}, nil
}

// NewRootCmd 创建 stdctl 根命令
func NewRootCmd(load Loader) *cobra.Command {
	root := &cobra.Command{
		Use:           "stdctl",
		Short:         "Standards document AI assistant",
		Long:          "stdctl reviews technical standard documents, drafts clauses, rewrites text and chats with file context using the DashScope model service.",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().Bool("json", false, "print results as JSON")

	root.AddCommand(
		newReviewCmd(load),
		newClauseCmd(load),
		newRewriteCmd(load),
		newAskCmd(load),
		newChatCmd(load),
		newStandardsCmd(load),
	)
	return root
}

// Execute 执行根命令
func Execute() error {
	root := NewRootCmd(DefaultLoader)
	if err := root.Execute(); err != nil {
		fmt.Fprintln(root.ErrOrStderr(), "Error:", describe(err))
		return err
	}
	return nil
}

// withRuntime 加载 Runtime 后执行 fn，结束时释放连接
func withRuntime(cmd *cobra.Command, load Loader, fn func(ctx context.Context, rt *Runtime) error) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	rt, err := load(ctx)
	if err != nil {
		return err
	}
	if rt.Close != nil {
		defer rt.Close()
	}
	return fn(ctx, rt)
}

func jsonOutput(cmd *cobra.Command) bool {
	v, _ := cmd.Flags().GetBool("json")
	return v
}

func printJSON(w io.Writer, v interface{}) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	return enc.Encode(v)
}
