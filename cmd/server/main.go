package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/spf13/pflag"
	"go.uber.org/zap"

	"placement-portal/backend/config"
	"placement-portal/backend/internal/api/handler"
	"placement-portal/backend/internal/api/middleware"
	"placement-portal/backend/internal/api/router"
	"placement-portal/backend/internal/repository"
	"placement-portal/backend/internal/service"
	"placement-portal/backend/pkg/database"
	"placement-portal/backend/pkg/jwt"
	applogger "placement-portal/backend/pkg/logger"
	"placement-portal/backend/pkg/redis"
	"placement-portal/backend/pkg/storage"
	"placement-portal/backend/pkg/validate"
)

func main() {
	configPath := pflag.StringP("config", "c", "", "配置文件路径（默认查找 ./config/config.yaml）")
	envFile := pflag.String("env-file", ".env", "启动前加载的 .env 文件")
	pflag.Parse()

	// 0. .env 不存在时忽略
	if err := godotenv.Load(*envFile); err != nil && !errors.Is(err, os.ErrNotExist) {
		fmt.Fprintf(os.Stderr, "加载 %s 失败: %v\n", *envFile, err)
		os.Exit(1)
	}

	// 1. 加载配置
	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "加载配置失败: %v\n", err)
		os.Exit(1)
	}

	// 2. 初始化日志
	logger, err := applogger.NewLogger(&cfg.Log)
	if err != nil {
		fmt.Fprintf(os.Stderr, "初始化日志失败: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	if cfg.Log.Level != "debug" {
		gin.SetMode(gin.ReleaseMode)
	}
	if err := validate.Register(); err != nil {
		logger.Fatal("注册校验规则失败", zap.Error(err))
	}

	logger.Info("应用启动中...",
		zap.Int("port", cfg.Server.Port),
		zap.String("log_level", cfg.Log.Level),
		zap.String("storage", cfg.Storage.Provider),
	)

	// 3. 连接数据库
	db, err := database.NewDB(&cfg.Database, logger)
	if err != nil {
		logger.Fatal("数据库连接失败", zap.Error(err))
	}
	logger.Info("数据库连接成功")

	// 3.1 执行数据库迁移
	sqlDB, err := db.DB()
	if err != nil {
		logger.Fatal("获取底层 sql.DB 失败", zap.Error(err))
	}
	if err := database.RunMigrations(sqlDB, logger); err != nil {
		logger.Fatal("数据库迁移失败", zap.Error(err))
	}

	// 4. 连接 Redis（可选：连接失败时降级运行，不中断启动）
	rdb, err := redis.NewClient(&cfg.Redis, logger)
	if err != nil {
		logger.Warn("Redis 连接失败，登出黑名单不可用，限流退回进程内实现", zap.Error(err))
		rdb = nil
	}

	// 5. 初始化 JWT 与文件存储
	jwtMgr := jwt.NewManager(&cfg.Auth)

	store, err := storage.New(&cfg.Storage, logger)
	if err != nil {
		logger.Fatal("初始化文件存储失败", zap.Error(err))
	}

	// 6. 依赖注入: Repository → Service → Handler
	// 接口变量只在 Redis 可用时赋值，避免带类型的 nil
	var (
		blacklist service.TokenBlacklist
		limiter   middleware.WindowLimiter
	)
	if rdb != nil {
		blacklist = rdb
		limiter = rdb
	}

	repo := repository.NewRepository(db)
	svc := service.NewService(cfg, repo, jwtMgr, blacklist, store, logger)
	h := handler.NewHandler(svc, cfg.Auth.Cookie)

	// 7. 初始化路由
	deps := router.Deps{
		JWT:       jwtMgr,
		Blacklist: blacklist,
		Accounts:  svc.Auth,
		Limiter:   limiter,
	}
	if local, ok := store.(*storage.LocalStorage); ok {
		deps.UploadDir = local.BasePath()
	}
	engine := router.Setup(cfg, h, deps, logger)

	// 8. 启动 HTTP 服务器（优雅关闭）
	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:           engine,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       60 * time.Second,
		WriteTimeout:      60 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	go func() {
		logger.Info("HTTP 服务器已启动", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("HTTP 服务器异常", zap.Error(err))
		}
	}()

	// 9. 监听系统信号，优雅关闭
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	sig := <-quit

	logger.Info("收到关闭信号，开始优雅关闭...", zap.String("signal", sig.String()))

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("服务器关闭异常", zap.Error(err))
	}

	// 关闭数据库连接
	if err := sqlDB.Close(); err != nil {
		logger.Warn("关闭数据库连接失败", zap.Error(err))
	}

	// 关闭 Redis 连接
	if rdb != nil {
		_ = rdb.Close()
	}

	logger.Info("服务器已关闭")
}
