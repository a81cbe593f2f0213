package provider

import (
	"time"

	"github.com/trendsight-boutique/internal/authz"
	"github.com/trendsight-boutique/internal/cache"
	"github.com/trendsight-boutique/internal/config"
	"github.com/trendsight-boutique/internal/logger"
	"github.com/trendsight-boutique/internal/models"
	"github.com/trendsight-boutique/internal/payment/stripe"
	"github.com/trendsight-boutique/internal/queue"
	"github.com/trendsight-boutique/internal/repository"
	"github.com/trendsight-boutique/internal/service"
	"github.com/trendsight-boutique/internal/session"

	"gorm.io/gorm"
)

// Container 依赖注入容器
type Container struct {
	Config       *config.Config
	DB           *gorm.DB
	QueueClient  *queue.Client
	SessionStore *session.Store

	// Repositories
	AdminRepo    repository.AdminRepository
	ProductRepo  repository.ProductRepository
	OrderRepo    repository.OrderRepository
	UserRepo     repository.UserRepository
	FavoriteRepo repository.FavoriteRepository

	// Services
	AuthzService    *authz.Service
	AuthService     *service.AuthService
	CaptchaService  *service.CaptchaService
	AdminService    *service.AdminService
	CatalogService  *service.CatalogService
	ProductService  *service.ProductService
	CartService     *service.CartService
	UserAuthService *service.UserAuthService
	FavoriteService *service.FavoriteService
	OrderService    *service.OrderService
	CheckoutService *service.CheckoutService
}

// NewContainer 初始化容器（使用全局数据库连接）
func NewContainer(cfg *config.Config) *Container {
	// 初始化缓存
	if err := cache.InitRedis(&cfg.Redis); err != nil {
		logger.Warnw("provider_init_redis_failed", "error", err)
	}

	// 初始化队列客户端
	var queueClient *queue.Client
	if cfg.Queue.Enabled {
		qc, err := queue.NewClient(&cfg.Queue)
		if err != nil {
			logger.Errorw("provider_init_queue_client_failed", "error", err)
		} else {
			queueClient = qc
		}
	}

	return Build(cfg, models.DB, queueClient)
}

// Build 基于给定数据库与队列客户端组装容器
func Build(cfg *config.Config, db *gorm.DB, queueClient *queue.Client) *Container {
	c := &Container{
		Config:       cfg,
		DB:           db,
		QueueClient:  queueClient,
		SessionStore: session.NewStore(),
	}

	// 1. 初始化 Repositories
	c.initRepositories()

	// 2. 初始化 Services
	c.initServices()

	return c
}

func (c *Container) initRepositories() {
	c.AdminRepo = repository.NewAdminRepository(c.DB)
	c.ProductRepo = repository.NewProductRepository(c.DB)
	c.OrderRepo = repository.NewOrderRepository(c.DB)
	c.UserRepo = repository.NewUserRepository(c.DB)
	c.FavoriteRepo = repository.NewFavoriteRepository(c.DB)
}

func (c *Container) initServices() {
	authzService, err := authz.NewService(c.DB)
	if err != nil {
		logger.Errorw("provider_init_authz_failed", "error", err)
		panic(err)
	}
	c.AuthzService = authzService
	if err := c.AuthzService.SyncRolePolicies(); err != nil {
		logger.Errorw("provider_sync_role_policies_failed", "error", err)
		panic(err)
	}

	c.AuthService = service.NewAuthService(c.Config, c.AdminRepo)
	c.CaptchaService = service.NewCaptchaService(c.Config.Captcha)
	c.AdminService = service.NewAdminService(c.AdminRepo, c.AuthService, c.AuthzService)
	c.CatalogService = service.NewCatalogService(c.ProductRepo)
	c.ProductService = service.NewProductService(c.ProductRepo)
	c.CartService = service.NewCartService(c.SessionStore, c.CatalogService)
	c.UserAuthService = service.NewUserAuthService(c.Config, c.UserRepo)
	c.FavoriteService = service.NewFavoriteService(c.FavoriteRepo, c.CatalogService)

	// 未配置 Stripe 密钥时结账接口返回不可用，其余功能正常
	var gateway service.CheckoutGateway
	stripeCfg := c.Config.Checkout.Stripe
	client, err := stripe.NewClient(stripe.Config{
		SecretKey:  stripeCfg.SecretKey,
		APIBaseURL: stripeCfg.APIBaseURL,
		Timeout:    time.Duration(stripeCfg.TimeoutSeconds) * time.Second,
	})
	if err != nil {
		logger.Warnw("provider_init_stripe_failed", "error", err)
	} else {
		gateway = client
	}
	c.OrderService = service.NewOrderService(c.OrderRepo, gateway)
	c.CheckoutService = service.NewCheckoutService(c.Config.Checkout, gateway, c.QueueClient, c.OrderService)
}
