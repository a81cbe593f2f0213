package router

import (
	"net/http"

	"github.com/trendsight-boutique/internal/cache"
	"github.com/trendsight-boutique/internal/config"
	adminhandlers "github.com/trendsight-boutique/internal/http/handlers/admin"
	publichandlers "github.com/trendsight-boutique/internal/http/handlers/public"
	"github.com/trendsight-boutique/internal/http/response"
	"github.com/trendsight-boutique/internal/logger"
	"github.com/trendsight-boutique/internal/provider"

	"github.com/gin-gonic/gin"
)

func ruleFromConfig(name string, cfg config.RateLimitConfig, messageKey string) RateLimitRule {
	return RateLimitRule{
		Name:          name,
		WindowSeconds: cfg.WindowSeconds,
		MaxRequests:   cfg.MaxAttempts,
		BlockSeconds:  cfg.BlockSeconds,
		MessageKey:    messageKey,
	}
}

// SetupRouter 组装中间件与全部路由
func SetupRouter(cfg *config.Config, c *provider.Container) *gin.Engine {
	log := logger.L
	if log == nil {
		log = logger.Init(cfg.Server.Mode, cfg.Log.ToLoggerOptions())
	}

	r := gin.New()
	r.Use(gin.Recovery(), RequestIDMiddleware(), LoggerMiddleware(log), CORSMiddleware(cfg.CORS))

	r.GET("/health", func(ctx *gin.Context) {
		ctx.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	apiV1 := r.Group("/api/v1")
	storefront := publichandlers.New(c)
	registerStorefrontRoutes(apiV1, storefront,
		ruleFromConfig("checkout", cfg.Security.CheckoutRateLimit, "error.too_many_requests"))
	registerCustomerRoutes(apiV1, storefront, c,
		ruleFromConfig("user_login", cfg.Security.UserLoginLimit, "error.login_too_many"))
	registerAdminRoutes(r, apiV1.Group("/admin"), adminhandlers.New(c), c,
		ruleFromConfig("admin_login", cfg.Security.LoginRateLimit, "error.login_too_many"))
	return r
}

// registerStorefrontRoutes 前台：商品目录、访客购物车（会话 Cookie）与结账
func registerStorefrontRoutes(g *gin.RouterGroup, h *publichandlers.Handler, checkoutRule RateLimitRule) {
	g.GET("/products", h.GetProducts)
	g.GET("/products/:slug", h.GetProduct)
	g.GET("/categories", h.GetCategories)

	cart := g.Group("/cart")
	cart.GET("", h.GetCart)
	cart.DELETE("", h.ClearCart)
	cart.POST("/items", h.AddCartItem)
	cart.PATCH("/items/:key", h.UpdateCartItem)
	cart.DELETE("/items/:key", h.RemoveCartItem)
	cart.POST("/toggle", h.ToggleCart)

	g.POST("/checkout", RateLimitMiddleware(cache.Client(), checkoutRule, KeyByIP), h.CreateCheckout)
	g.GET("/checkout/confirm", h.ConfirmCheckout)
}

// registerCustomerRoutes 顾客账号：注册登录公开，/me 需要顾客令牌。购物车不绑定账号
func registerCustomerRoutes(g *gin.RouterGroup, h *publichandlers.Handler, c *provider.Container, loginRule RateLimitRule) {
	limiter := RateLimitMiddleware(cache.Client(), loginRule, KeyByIPAndJSONField("email"))
	g.POST("/auth/register", limiter, h.UserRegister)
	g.POST("/auth/login", limiter, h.UserLogin)

	me := g.Group("/me", UserJWTAuthMiddleware(c.UserAuthService))
	me.GET("", h.GetUserProfile)
	me.PUT("/password", h.ChangeUserPassword)
	me.GET("/favorites", h.ListFavorites)
	me.POST("/favorites", h.AddFavorite)
	me.DELETE("/favorites/:product_id", h.RemoveFavorite)
}

// registerAdminRoutes 后台：登录与验证码公开；个人接口只需登录；其余走 RBAC
func registerAdminRoutes(engine *gin.Engine, g *gin.RouterGroup, h *adminhandlers.Handler, c *provider.Container, loginRule RateLimitRule) {
	g.POST("/login", RateLimitMiddleware(cache.Client(), loginRule, KeyByIPAndJSONField("username")), h.AdminLogin)
	g.GET("/captcha", h.GetLoginCaptcha)

	self := g.Group("", JWTAuthMiddleware(c.AuthService))
	self.GET("/authz/me", h.GetAuthzMe)
	self.PUT("/password", h.UpdateAdminPassword)

	rbac := g.Group("", JWTAuthMiddleware(c.AuthService), AdminRBACMiddleware(c.AuthzService))

	rbac.GET("/products", h.GetAdminProducts)
	rbac.GET("/products/:id", h.GetAdminProduct)
	rbac.POST("/products", h.CreateProduct)
	rbac.PUT("/products/:id", h.UpdateProduct)
	rbac.DELETE("/products/:id", h.DeleteProduct)

	rbac.GET("/orders", h.AdminListOrders)
	rbac.GET("/orders/:id", h.AdminGetOrder)

	rbac.GET("/admins", h.ListAdmins)
	rbac.POST("/admins", h.CreateAdmin)
	rbac.PUT("/admins/:id/roles", h.SetAdminRoles)
	rbac.GET("/authz/roles", h.ListAuthzRoles)
	rbac.GET("/authz/permissions/catalog", func(ctx *gin.Context) {
		response.Success(ctx, permissionCatalog(engine.Routes()))
	})
}
