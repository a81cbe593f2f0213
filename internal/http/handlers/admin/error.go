package admin

import (
	handlershared "github.com/trendsight-boutique/internal/http/handlers/shared"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func requestLog(c *gin.Context) *zap.SugaredLogger {
	return handlershared.RequestLog(c)
}

func respondError(c *gin.Context, code int, key string, err error) {
	handlershared.RespondError(c, code, key, err)
}

// respondAdminPasswordPolicyError 弱密码时按未满足的规则提示并返回 true
func respondAdminPasswordPolicyError(c *gin.Context, err error) bool {
	return handlershared.RespondPasswordPolicyError(c, err)
}
