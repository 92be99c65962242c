// seed 初始化首个管理员账号并同步院系、技能目录，可重复执行
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/pflag"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"placement-portal/backend/config"
	"placement-portal/backend/internal/access"
	"placement-portal/backend/internal/model"
	"placement-portal/backend/internal/repository"
	"placement-portal/backend/pkg/database"
	applogger "placement-portal/backend/pkg/logger"
)

func main() {
	configPath := pflag.StringP("config", "c", "", "配置文件路径")
	envFile := pflag.String("env-file", ".env", "启动前加载的 .env 文件")
	email := pflag.String("email", "", "管理员邮箱（必填）")
	password := pflag.String("password", "", "管理员密码，至少 6 位（必填）")
	name := pflag.String("name", "Administrator", "管理员姓名")
	catalogPath := pflag.String("catalog", "", "院系/技能目录 YAML，缺省使用内置目录")
	skipCatalog := pflag.Bool("skip-catalog", false, "只创建管理员")
	pflag.Parse()

	if err := godotenv.Load(*envFile); err != nil && !errors.Is(err, os.ErrNotExist) {
		fmt.Fprintf(os.Stderr, "加载 %s 失败: %v\n", *envFile, err)
		os.Exit(1)
	}

	if *email == "" || len(*password) < 6 {
		fmt.Fprintln(os.Stderr, "必须提供 --email 与至少 6 位的 --password")
		pflag.Usage()
		os.Exit(2)
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "加载配置失败: %v\n", err)
		os.Exit(1)
	}

	logger, err := applogger.NewLogger(&cfg.Log)
	if err != nil {
		fmt.Fprintf(os.Stderr, "初始化日志失败: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	// 目录文件先行校验，避免连库后才发现格式错误
	var catalog *Catalog
	if !*skipCatalog {
		if catalog, err = loadCatalog(*catalogPath); err != nil {
			logger.Fatal("目录文件无效", zap.Error(err))
		}
	}

	db, err := database.NewDB(&cfg.Database, logger)
	if err != nil {
		logger.Fatal("数据库连接失败", zap.Error(err))
	}
	sqlDB, err := db.DB()
	if err != nil {
		logger.Fatal("获取底层 sql.DB 失败", zap.Error(err))
	}
	defer sqlDB.Close()

	if err := database.RunMigrations(sqlDB, logger); err != nil {
		logger.Fatal("数据库迁移失败", zap.Error(err))
	}

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	repo := repository.NewRepository(db)
	err = repo.Transaction(ctx, func(tx *repository.Repository) error {
		if err := ensureAdmin(ctx, tx, *email, *password, *name, logger); err != nil {
			return err
		}
		if catalog != nil {
			return applyCatalog(ctx, tx, catalog, logger)
		}
		return nil
	})
	if err != nil {
		logger.Fatal("初始化数据失败", zap.Error(err))
	}

	logger.Info("初始化完成")
}

// ensureAdmin 邮箱已存在时不修改密码；若该账号不是管理员则报错
func ensureAdmin(ctx context.Context, repo *repository.Repository, email, password, name string, logger *zap.Logger) error {
	email = strings.ToLower(strings.TrimSpace(email))

	existing, err := repo.User.GetByEmail(ctx, email)
	switch {
	case err == nil:
		if existing.Role != string(access.RoleAdmin) {
			return fmt.Errorf("邮箱 %s 已被 %s 账号占用", email, existing.Role)
		}
		logger.Info("管理员已存在，跳过创建", zap.String("email", email))
		return nil
	case !errors.Is(err, gorm.ErrRecordNotFound):
		return fmt.Errorf("查询管理员失败: %w", err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("密码哈希失败: %w", err)
	}

	admin := &model.User{
		Name:           strings.TrimSpace(name),
		Email:          email,
		PasswordHash:   string(hash),
		Role:           string(access.RoleAdmin),
		IsActive:       true,
		ApprovalStatus: model.ApprovalApproved,
	}
	if err := repo.User.Create(ctx, admin); err != nil {
		return fmt.Errorf("创建管理员失败: %w", err)
	}

	logger.Info("管理员已创建", zap.String("email", email), zap.String("user_id", admin.UserID))
	return nil
}
