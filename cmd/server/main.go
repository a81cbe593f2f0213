package main

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"strings"
	"syscall"

	"github.com/trendsight-boutique/internal/app"
	"github.com/trendsight-boutique/internal/config"
	"github.com/trendsight-boutique/internal/logger"
	"github.com/trendsight-boutique/internal/models"

	"github.com/gin-gonic/gin"
)

const (
	ansiReset  = "\033[0m"
	ansiBold   = "\033[1m"
	ansiDim    = "\033[2m"
	ansiCyan   = "\033[36m"
	ansiMagent = "\033[95m"
)

var weakSecretMarkers = []string{"change-me", "change-in-production", "your-secret-key"}

func main() {
	mode := flag.String("mode", app.ModeAll, "启动模式: all (默认), api, worker")
	configPath := flag.String("config", "", "配置文件路径，留空时按默认目录查找 config.yml")
	flag.Parse()

	printBanner()

	cfg, err := loadConfig(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "配置加载失败: %v\n", err)
		os.Exit(1)
	}
	logger.Init(cfg.Server.Mode, cfg.Log.ToLoggerOptions())
	stdLog := logger.StdLogger()

	if err := checkSecrets(cfg); err != nil {
		stdLog.Fatalf("%v", err)
	}
	if err := initDatabase(cfg); err != nil {
		stdLog.Fatalf("数据库初始化失败: %v", err)
	}
	seedDefaultAdmin(cfg)

	if cfg.Server.Mode == "release" {
		gin.SetMode(gin.ReleaseMode)
	}
	if err := app.Run(app.Options{
		Config:  cfg,
		Mode:    *mode,
		Signals: []os.Signal{syscall.SIGINT, syscall.SIGTERM},
		Logger:  logger.S(),
	}); err != nil {
		stdLog.Fatalf("服务运行失败: %v", err)
	}
}

func loadConfig(path string) (*config.Config, error) {
	if strings.TrimSpace(path) == "" {
		return config.Load(), nil
	}
	return config.LoadFile(path)
}

// checkSecrets release 模式下弱 JWT 密钥直接拒绝启动，其他模式只告警
func checkSecrets(cfg *config.Config) error {
	release := cfg.Server.Mode == "release"
	secrets := []struct{ name, value string }{
		{"jwt", cfg.JWT.SecretKey},
		{"user_jwt", cfg.UserJWT.SecretKey},
	}
	for _, secret := range secrets {
		if !isWeakSecret(secret.value) {
			continue
		}
		if release {
			return fmt.Errorf("%s secret 过弱或仍为默认值，请在生产环境中配置强随机密钥", secret.name)
		}
		logger.Warnw("jwt_secret_weak", "key", secret.name, "hint", "生产环境请更换为强随机密钥")
	}
	if cfg.JWT.SecretKey == cfg.UserJWT.SecretKey {
		if release {
			return errors.New("jwt 与 user_jwt 不能使用相同的密钥")
		}
		logger.Warnw("jwt_secret_shared", "hint", "后台与顾客令牌应使用不同密钥")
	}
	if release && strings.TrimSpace(cfg.Checkout.Stripe.SecretKey) == "" {
		logger.Warnw("stripe_secret_missing", "hint", "结账接口将返回不可用")
	}
	return nil
}

func initDatabase(cfg *config.Config) error {
	pool := models.DBPoolConfig{
		MaxOpenConns:           cfg.Database.Pool.MaxOpenConns,
		MaxIdleConns:           cfg.Database.Pool.MaxIdleConns,
		ConnMaxLifetimeSeconds: cfg.Database.Pool.ConnMaxLifetimeSeconds,
		ConnMaxIdleTimeSeconds: cfg.Database.Pool.ConnMaxIdleTimeSeconds,
	}
	if err := models.InitDB(cfg.Database.Driver, cfg.Database.DSN, pool, cfg.Server.Mode == "debug"); err != nil {
		return err
	}
	if err := models.AutoMigrate(models.DB); err != nil {
		return fmt.Errorf("auto migrate: %w", err)
	}
	return nil
}

// seedDefaultAdmin 表为空时创建超级管理员；release 模式必须显式提供密码
func seedDefaultAdmin(cfg *config.Config) {
	username := os.Getenv("TS_DEFAULT_ADMIN_USERNAME")
	password := os.Getenv("TS_DEFAULT_ADMIN_PASSWORD")
	if cfg.Server.Mode == "release" && password == "" {
		logger.Warnw("default_admin_skipped", "reason", "TS_DEFAULT_ADMIN_PASSWORD 未设置")
		return
	}
	if err := models.InitDefaultAdmin(models.DB, username, password); err != nil {
		logger.Warnw("default_admin_init_failed", "error", err)
	}
}

func printBanner() {
	fmt.Println(ansiMagent + "  ╔════════════════════════════════════════╗" + ansiReset)
	fmt.Println(ansiMagent + "  ║       TrendSight Boutique · API        ║" + ansiReset)
	fmt.Println(ansiMagent + "  ╚════════════════════════════════════════╝" + ansiReset)
	fmt.Println(ansiCyan + ansiBold + "  storefront · cart · checkout · admin" + ansiReset)
	fmt.Println(ansiDim + "  ----------------------------------------" + ansiReset)
}

func isWeakSecret(secret string) bool {
	if len(secret) < 32 {
		return true
	}
	lower := strings.ToLower(secret)
	for _, marker := range weakSecretMarkers {
		if strings.Contains(lower, marker) {
			return true
		}
	}
	return false
}
