package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"standard-ai/configs"
	"standard-ai/pkg/logger"
)

// Server HTTP服务器结构体
// 负责整个服务器的生命周期管理，包括初始化、启动、运行和优雅关闭
type Server struct {
	config     *configs.ServerConfig // 服务器配置
	httpServer *http.Server          // HTTP服务器实例
	engine     *gin.Engine           // Gin引擎
	logger     logger.Logger         // 日志器
}

// NewServer 创建新的HTTP服务器实例并注册路由
// config: 服务器配置
// h: 业务处理器
// metricsPath: 流水线指标接口路径，空值表示不注册
// log: 日志器
func NewServer(config *configs.ServerConfig, h *Handlers, metricsPath string, log logger.Logger) *Server {
	if config.Host == "0.0.0.0" || config.Host == "" {
		gin.SetMode(gin.ReleaseMode)
	} else {
		gin.SetMode(gin.DebugMode)
	}

	engine := gin.New()
	SetupRoutes(engine, config, h, metricsPath, log)

	return &Server{
		config: config,
		engine: engine,
		logger: log,
		httpServer: &http.Server{
			Addr:         config.GetAddr(),
			Handler:      engine,
			ReadTimeout:  config.ReadTimeout,
			WriteTimeout: config.WriteTimeout,
			IdleTimeout:  config.IdleTimeout,
		},
	}
}

// Handler 返回路由处理器，测试中配合 httptest 使用
func (s *Server) Handler() http.Handler {
	return s.engine
}

// Start 启动HTTP服务器（非阻塞），运行时错误写入 errChan
func (s *Server) Start(ctx context.Context, errChan chan<- error) {
	s.logger.InfoContext(ctx, "HTTP服务器初始化完成",
		"addr", s.httpServer.Addr,
		"read_timeout", s.config.ReadTimeout,
		"write_timeout", s.config.WriteTimeout,
		"idle_timeout", s.config.IdleTimeout)

	go func() {
		s.logger.InfoContext(ctx, "HTTP服务器开始监听", "addr", s.httpServer.Addr)

		if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			s.logger.ErrorContext(ctx, "HTTP服务器启动失败", "error", err.Error())
			errChan <- err
		}
	}()
}

// Shutdown 优雅关闭服务器
// ctx: 上下文，用于控制关闭过程的超时
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.InfoContext(ctx, "开始执行HTTP服务器优雅关闭")

	shutdownCtx, cancel := context.WithTimeout(ctx, s.config.GracefulShutdownTimeout)
	defer cancel()

	if err := s.httpServer.Shutdown(shutdownCtx); err != nil {
		s.logger.ErrorContext(ctx, "HTTP服务器优雅关闭失败", "error", err.Error())
		return fmt.Errorf("HTTP服务器关闭失败: %w", err)
	}

	s.logger.InfoContext(ctx, "HTTP服务器优雅关闭完成")
	return nil
}
