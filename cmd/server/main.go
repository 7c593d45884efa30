package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"standard-ai/configs"
	"standard-ai/internal/app/bootstrap"
	"standard-ai/internal/app/server"
	"standard-ai/pkg/logger"
)

// main 主函数 - 应用程序入口点
func main() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// 创建早期logger（使用默认配置）
	earlyLogger := logger.Default()

	if err := initializeApplication(ctx, earlyLogger); err != nil {
		earlyLogger.ErrorContext(ctx, "应用程序初始化失败", "error", err)
		os.Exit(1)
	}
}

// initializeApplication 初始化应用程序
func initializeApplication(ctx context.Context, earlyLogger logger.Logger) error {
	// 1. 加载配置
	config, err := configs.Load(ctx)
	if err != nil {
		return fmt.Errorf("配置加载失败: %w", err)
	}

	earlyLogger.InfoContext(ctx, "配置加载成功",
		"server_port", config.Server.Port,
		"llm_base_url", config.LLM.BaseURL,
		"oss_bucket", config.OSS.Bucket)

	// 2. 初始化日志服务
	appLogger := bootstrap.NewLogger(config.Logging)
	appLogger.InfoContext(ctx, "日志服务初始化完成")

	// 3. 初始化客户端、存储和 Eino 流程
	app, err := bootstrap.New(ctx, config, appLogger)
	if err != nil {
		return fmt.Errorf("组件初始化失败: %w", err)
	}
	defer func() {
		if err := app.Close(); err != nil {
			appLogger.ErrorContext(ctx, "释放外部连接失败", "error", err)
		}
	}()

	// 4. 初始化应用层
	httpServer := server.NewServer(&config.Server, app.Handlers(), app.MetricsPath(), appLogger)

	// 5. 启动服务并等待停止信号
	return runApplication(ctx, httpServer, appLogger)
}

// runApplication 运行应用程序，监听停止信号
// 此函数会阻塞直到收到停止信号、服务器错误或上下文取消
func runApplication(ctx context.Context, httpServer *server.Server, log logger.Logger) error {
	errChan := make(chan error, 1)

	signalChan := make(chan os.Signal, 1)
	signal.Notify(signalChan, syscall.SIGINT, syscall.SIGTERM)

	httpServer.Start(ctx, errChan)

	select {
	case err := <-errChan:
		log.ErrorContext(ctx, "服务器运行错误", "error", err)
		return err

	case sig := <-signalChan:
		log.InfoContext(ctx, "收到停止信号，开始优雅关闭", "signal", sig.String())
		return gracefulShutdown(ctx, httpServer, log)

	case <-ctx.Done():
		log.InfoContext(ctx, "上下文取消，开始优雅关闭")
		return gracefulShutdown(ctx, httpServer, log)
	}
}

// gracefulShutdown 执行优雅关闭
func gracefulShutdown(ctx context.Context, httpServer *server.Server, log logger.Logger) error {
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("HTTP服务器关闭失败: %w", err)
	}

	log.InfoContext(ctx, "优雅关闭完成")
	return nil
}
