package router

import (
	"strings"
	"time"

	"github.com/trendsight-boutique/internal/authz"
	"github.com/trendsight-boutique/internal/constants"
	"github.com/trendsight-boutique/internal/http/response"
	"github.com/trendsight-boutique/internal/i18n"
	"github.com/trendsight-boutique/internal/logger"
	"github.com/trendsight-boutique/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

const (
	requestIDKey           = "request_id"
	requestIDHeader        = "X-Request-ID"
	adminIDContextKey      = "admin_id"
	adminNameContextKey    = "username"
	adminIsSuperContextKey = "is_super"
)

// RequestIDMiddleware 透传或生成请求 ID，写入上下文与响应头
func RequestIDMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := strings.TrimSpace(c.GetHeader(requestIDHeader))
		if id == "" {
			id = uuid.NewString()
		}
		c.Set(requestIDKey, id)
		c.Header(requestIDHeader, id)
		c.Next()
	}
}

// LoggerMiddleware 访问日志
func LoggerMiddleware(base *zap.Logger) gin.HandlerFunc {
	if base == nil {
		base = zap.L()
	}
	log := base.Sugar()
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		fields := []interface{}{
			"request_id", c.GetString(requestIDKey),
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"status", c.Writer.Status(),
			"latency_ms", time.Since(start).Milliseconds(),
			"client_ip", c.ClientIP(),
		}
		if len(c.Errors) == 0 {
			log.Infow("request", fields...)
			return
		}
		log.Errorw("request", append(fields, "errors", c.Errors.String())...)
	}
}

// bearerToken 解析 Authorization: Bearer <token>
func bearerToken(header string) (string, bool) {
	scheme, token, found := strings.Cut(strings.TrimSpace(header), " ")
	if !found || scheme != "Bearer" {
		return "", false
	}
	token = strings.TrimSpace(token)
	return token, token != ""
}

// JWTAuthMiddleware 后台 JWT 鉴权；令牌签发早于最近一次改密时视为失效
func JWTAuthMiddleware(authService *service.AuthService) gin.HandlerFunc {
	return func(c *gin.Context) {
		if authService == nil {
			denyUnauthorized(c, "error.token_invalid")
			return
		}
		header := c.GetHeader("Authorization")
		if header == "" {
			denyUnauthorized(c, "error.unauthorized")
			return
		}
		token, ok := bearerToken(header)
		if !ok {
			denyUnauthorized(c, "error.unauthorized")
			return
		}
		admin, err := authService.Authenticate(token)
		if err != nil || admin == nil {
			denyUnauthorized(c, "error.token_invalid")
			return
		}

		c.Set(adminIDContextKey, admin.ID)
		c.Set(adminNameContextKey, admin.Username)
		c.Set(adminIsSuperContextKey, admin.IsSuper)
		c.Next()
	}
}

// UserJWTAuthMiddleware 顾客 JWT 鉴权，写入 user_id
func UserJWTAuthMiddleware(userAuth *service.UserAuthService) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, ok := bearerToken(c.GetHeader("Authorization"))
		if !ok {
			denyUnauthorized(c, "error.unauthorized")
			return
		}
		if userAuth == nil {
			denyUnauthorized(c, "error.token_invalid")
			return
		}
		user, err := userAuth.Authenticate(token)
		if err != nil || user == nil {
			denyUnauthorized(c, "error.token_invalid")
			return
		}
		c.Set(constants.ContextKeyUserID, user.ID)
		c.Next()
	}
}

// AdminRBACMiddleware 按路由模板校验管理员角色权限，超级管理员直接放行
func AdminRBACMiddleware(authzService *authz.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.GetBool(adminIsSuperContextKey) {
			c.Next()
			return
		}
		adminID := c.GetUint(adminIDContextKey)
		if authzService == nil || adminID == 0 {
			if authzService == nil {
				logger.Errorw("admin_rbac_service_unavailable")
			}
			denyUnauthorized(c, "error.unauthorized")
			return
		}

		object := c.FullPath()
		if object == "" {
			object = c.Request.URL.Path
		}
		allowed, err := authzService.EnforceAdmin(adminID, object, c.Request.Method)
		switch {
		case err != nil:
			logger.Errorw("admin_rbac_enforce_failed",
				"admin_id", adminID,
				"method", c.Request.Method,
				"object", object,
				"error", err,
			)
			denyUnauthorized(c, "error.unauthorized")
		case !allowed:
			logger.Warnw("admin_rbac_permission_denied",
				"admin_id", adminID,
				"method", c.Request.Method,
				"object", authz.NormalizeObject(object),
			)
			response.Forbidden(c, i18n.T(i18n.ResolveLocale(c), "error.forbidden"))
			c.Abort()
		default:
			c.Next()
		}
	}
}

func denyUnauthorized(c *gin.Context, key string) {
	response.Unauthorized(c, i18n.T(i18n.ResolveLocale(c), key))
	c.Abort()
}
