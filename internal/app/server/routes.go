package server

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-contrib/gzip"
	"github.com/gin-gonic/gin"

	"standard-ai/configs"
	"standard-ai/internal/app/handlers"
	"standard-ai/internal/app/middleware"
	"standard-ai/pkg/logger"
)

// Handlers 路由使用的全部处理器
type Handlers struct {
	AI        *handlers.AIHandler
	Standards *handlers.StandardsHandler
	System    *handlers.SystemHandler
}

// SetupRoutes 配置并注册 HTTP 服务器的所有路由规则。
// 参数 engine: Gin 引擎实例。
// 参数 cfg: 服务器配置，用于 CORS 和上传大小限制。
// 参数 h: 业务处理器。
// 参数 metricsPath: 流水线指标接口路径，空值表示不注册。
// 参数 log: 日志记录器。
func SetupRoutes(engine *gin.Engine, cfg *configs.ServerConfig, h *Handlers, metricsPath string, log logger.Logger) {
	setupMiddleware(engine, cfg, log)

	engine.GET("/health", h.System.HealthCheck)

	api := engine.Group("/api")

	// 文档审核
	api.POST("/upload", h.AI.ReviewDocument)

	ai := api.Group("/ai")
	{
		ai.POST("/generate-clause", h.AI.GenerateClause)
		ai.POST("/rewrite", h.AI.Rewrite)
		ai.POST("/ask", h.AI.Ask)
		ai.POST("/chat", h.AI.Chat)
		ai.POST("/upload-for-chat", h.AI.UploadForChat)
		ai.POST("/select-oss-file", h.AI.SelectStoredFile)
		ai.GET("/list-oss-files", h.Standards.ListForChat)
	}

	if metricsPath != "" {
		engine.GET(metricsPath, h.System.Metrics)
		engine.DELETE(metricsPath, h.System.ResetMetrics)
	}

	standards := api.Group("/standards")
	{
		standards.POST("/upload", h.Standards.Upload)
		standards.GET("", h.Standards.List)
		standards.GET("/content/:filename", h.Standards.Content)
		standards.GET("/:filename", h.Standards.Download)
	}
}

// setupMiddleware 设置全局中间件
func setupMiddleware(engine *gin.Engine, cfg *configs.ServerConfig, log logger.Logger) {
	// 捕获panic并返回500错误
	engine.Use(gin.Recovery())

	// 记录请求日志并生成请求ID，跳过健康检查
	engine.Use(middleware.LoggingMiddleware(&middleware.LoggingConfig{
		SkipPaths: []string{"/health"},
		Logger:    log,
	}))

	engine.Use(cors.New(corsConfig(cfg.CORSAllowOrigins)))

	// 下载接口是重定向，不压缩
	engine.Use(gzip.Gzip(gzip.DefaultCompression, gzip.WithExcludedPathsRegexs([]string{`^/api/standards/[^/]+$`})))

	if cfg.MaxUploadSize > 0 {
		engine.MaxMultipartMemory = cfg.MaxUploadSize
	}
}

func corsConfig(origins []string) cors.Config {
	c := cors.Config{
		AllowMethods:  []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
		AllowHeaders:  []string{"Origin", "X-Requested-With", "Content-Type", "Accept", "Authorization", middleware.RequestIDHeader},
		ExposeHeaders: []string{"Content-Length", middleware.RequestIDHeader},
		MaxAge:        12 * time.Hour,
	}
	if len(origins) == 0 || (len(origins) == 1 && origins[0] == "*") {
		c.AllowAllOrigins = true
	} else {
		c.AllowOrigins = origins
	}
	return c
}
