// Package bootstrap 按配置组装客户端、存储和 Eino 流程
package bootstrap

import (
	"context"
	"errors"
	"fmt"

	"github.com/cloudwego/eino/compose"

	"standard-ai/configs"
	"standard-ai/internal/app/handlers"
	"standard-ai/internal/app/server"
	"standard-ai/internal/domain/filecontext"
	"standard-ai/internal/domain/models"
	"standard-ai/internal/domain/prompts"
	"standard-ai/internal/domain/review"
	"standard-ai/internal/domain/services"
	"standard-ai/internal/eino/callbacks"
	"standard-ai/internal/eino/components"
	"standard-ai/internal/eino/flows"
	"standard-ai/internal/eino/nodes"
	"standard-ai/internal/infrastructure/dashscope"
	"standard-ai/internal/infrastructure/extractor"
	"standard-ai/internal/infrastructure/oss"
	"standard-ai/internal/infrastructure/refcache"
	"standard-ai/pkg/logger"
)

// App 组装完成的应用组件
type App struct {
	Config    *configs.Config
	Logger    logger.Logger
	Client    *dashscope.Client
	Store     services.ObjectStore // 未配置对象存储时为 nil
	Extractor *extractor.Extractor
	Resolver  *filecontext.Resolver
	Callbacks *callbacks.Factory

	Review     compose.Runnable[*models.ReviewRequest, *models.ReviewResponse]
	Generation compose.Runnable[*nodes.GenerationInput, *nodes.GenerationOutput]
	Chat       compose.Runnable[*nodes.ChatInput, *models.ChatCompletion]

	closers []func() error
}

// NewLogger 按日志配置创建日志器
func NewLogger(cfg configs.LoggingConfig) logger.Logger {
	loggerConfig := logger.Config{
		Level:  logger.ParseLevel(cfg.Level),
		Output: cfg.Output,
		Format: cfg.Format,
	}
	if cfg.Output == "file" {
		loggerConfig.FilePath = cfg.FilePath
	}
	return logger.New(loggerConfig)
}

// New 按配置创建全部组件并编译流程
func New(ctx context.Context, cfg *configs.Config, log logger.Logger) (*App, error) {
	app := &App{Config: cfg, Logger: log}

	// 1. 模型服务客户端
	app.Client = dashscope.NewClient(dashscope.Config{
		APIKey:      cfg.LLM.APIKey,
		BaseURL:     cfg.LLM.BaseURL,
		AppID:       cfg.LLM.AppID,
		ChatModel:   cfg.LLM.ChatModel,
		Timeout:     cfg.LLM.Timeout,
		MaxTokens:   cfg.LLM.MaxTokens,
		Temperature: cfg.LLM.Temperature,
	}, log)
	if !cfg.LLM.HasCredential() {
		log.WarnContext(ctx, "未配置 DASHSCOPE_API_KEY，所有模型调用将返回 MISSING_CREDENTIAL")
	}

	// 2. 对象存储
	if cfg.OSS.Enabled() {
		store, err := oss.NewStore(oss.Config{
			Endpoint:        cfg.OSS.GetEndpoint(),
			AccessKeyID:     cfg.OSS.AccessKeyID,
			AccessKeySecret: cfg.OSS.AccessKeySecret,
			Bucket:          cfg.OSS.Bucket,
		}, log)
		if err != nil {
			return nil, fmt.Errorf("对象存储初始化失败: %w", err)
		}
		app.Store = store
		log.InfoContext(ctx, "对象存储初始化成功", "bucket", cfg.OSS.Bucket)
	} else {
		log.WarnContext(ctx, "未配置对象存储，标准文档库接口不可用")
	}

	// 3. 文件标识缓存
	var refCache services.RefCache
	if cfg.RefCache.Enabled {
		cache, client := refcache.New(refcache.Config{
			Addr:     cfg.RefCache.Addr,
			Password: cfg.RefCache.Password,
			DB:       cfg.RefCache.DB,
			TTL:      cfg.RefCache.TTL,
			Prefix:   cfg.RefCache.Prefix,
		})
		if err := client.Ping(ctx).Err(); err != nil {
			log.WarnContext(ctx, "Redis 不可用，文件标识缓存已关闭", "addr", cfg.RefCache.Addr, "error", err)
			_ = client.Close()
		} else {
			refCache = cache
			app.closers = append(app.closers, client.Close)
			log.InfoContext(ctx, "文件标识缓存初始化成功", "addr", cfg.RefCache.Addr)
		}
	}

	// 4. 领域组件
	app.Extractor = extractor.New(extractor.Config{
		MaxSize:   cfg.Extractor.MaxSize,
		DetectGBK: cfg.Extractor.DetectGBK,
	}, log)
	app.Resolver = filecontext.NewResolver(app.Client, app.Store, refCache, log)
	catalog := prompts.NewCatalog()
	parser, err := review.NewParser()
	if err != nil {
		return nil, fmt.Errorf("审核结果解析器初始化失败: %w", err)
	}

	// 5. Eino 流程
	app.Callbacks = callbacks.NewFactory(&cfg.Eino.Callbacks, log)
	cbs := app.Callbacks.CreateHandlers()

	app.Review, err = flows.NewReviewGraph(app.Extractor, catalog, app.Client, parser, &cfg.Eino.Review, log, cbs...).Compile(ctx)
	if err != nil {
		return nil, fmt.Errorf("Review Graph 编译失败: %w", err)
	}

	app.Generation, err = flows.NewGenerationGraph(catalog, app.Client, &cfg.Eino.Generation, cbs...).Compile(ctx)
	if err != nil {
		return nil, fmt.Errorf("Generation Graph 编译失败: %w", err)
	}

	chatModel := cfg.Eino.Chat.Model
	if chatModel == "" {
		chatModel = app.Client.DefaultChatModel()
	}
	app.Chat, err = flows.NewChatGraph(components.NewChatModel(app.Client, chatModel), cbs...).Compile(ctx)
	if err != nil {
		return nil, fmt.Errorf("Chat Graph 编译失败: %w", err)
	}
	log.InfoContext(ctx, "Eino 流程编译完成", "chat_model", chatModel)

	return app, nil
}

// Handlers 创建 HTTP 处理器
func (a *App) Handlers() *server.Handlers {
	var metrics handlers.MetricsSource
	if m := a.Callbacks.GetMetricsHandler(); m != nil {
		metrics = m
	}

	return &server.Handlers{
		AI: handlers.NewAIHandler(a.Review, a.Generation, a.Chat, a.Resolver,
			a.Config.Server.MaxUploadSize, a.Logger),
		Standards: handlers.NewStandardsHandler(a.Store, a.Extractor, a.Config.OSS.SignExpiry,
			a.Config.Server.MaxUploadSize, a.Logger),
		System: handlers.NewSystemHandler(metrics, map[string]bool{
			"llm_credential": a.Config.LLM.HasCredential(),
			"object_store":   a.Store != nil,
		}),
	}
}

// MetricsPath 指标接口路径，未启用时为空
func (a *App) MetricsPath() string {
	if !a.Config.Eino.Callbacks.Metrics.Enabled {
		return ""
	}
	return a.Config.Eino.Callbacks.Metrics.Endpoint
}

// Close 释放外部连接
func (a *App) Close() error {
	var errs []error
	for _, closeFn := range a.closers {
		if err := closeFn(); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
