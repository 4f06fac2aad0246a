package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/ashwinyue/fractools/internal/config"
	"github.com/ashwinyue/fractools/internal/handler"
	"github.com/ashwinyue/fractools/internal/repository"
	"github.com/ashwinyue/fractools/internal/router"
	"github.com/ashwinyue/fractools/internal/service/catalog"
)

func main() {
	// 加载配置
	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		configPath = "./configs/config.yaml"
	}

	cfg, err := config.Load(configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	logger, err := newLogger(cfg)
	if err != nil {
		log.Fatalf("Failed to init logger: %v", err)
	}
	defer func() { _ = logger.Sync() }()

	// 设置 Gin 模式
	gin.SetMode(cfg.Server.Mode)

	ctx := context.Background()

	// 选择存储模式（远程数据库或本地快照），只选一次
	gw, err := repository.Open(ctx, cfg, logger)
	if err != nil {
		logger.Fatal("Failed to init data service", zap.Error(err))
	}
	defer gw.Close()

	view := catalog.NewView(gw, logger)
	if err := view.Load(ctx); err != nil {
		// 远程暂时不可用时仍然启动，之后可通过 /api/v1/reload 重新加载
		logger.Error("Initial load failed", zap.Error(err))
	}

	handlers := handler.NewHandlers(view, logger)
	r := router.SetupRouter(handlers, logger)

	// 创建 HTTP 服务器
	srv := &http.Server{
		Addr:         cfg.Server.GetAddr(),
		Handler:      r,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
	}

	// 启动服务器
	go func() {
		logger.Info("Server starting", zap.String("addr", srv.Addr), zap.String("mode", string(gw.Mode())))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("Server error", zap.Error(err))
		}
	}()

	// 等待中断信号
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down server...")

	// 优雅关闭
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("Server forced to shutdown", zap.Error(err))
	}

	logger.Info("Server exited")
}

// newLogger debug 模式使用开发配置，否则使用生产配置
func newLogger(cfg *config.Config) (*zap.Logger, error) {
	zcfg := zap.NewProductionConfig()
	if cfg.App.Debug {
		zcfg = zap.NewDevelopmentConfig()
	}
	level, err := zap.ParseAtomicLevel(cfg.Log.Level)
	if err != nil {
		return nil, err
	}
	zcfg.Level = level
	return zcfg.Build(zap.Fields(
		zap.String("app", cfg.App.Name),
		zap.String("env", cfg.App.Environment),
	))
}
