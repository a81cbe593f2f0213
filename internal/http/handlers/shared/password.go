package shared

import (
	"errors"

	"github.com/trendsight-boutique/internal/http/response"
	"github.com/trendsight-boutique/internal/service"

	"github.com/gin-gonic/gin"
)

// RespondPasswordPolicyError 弱密码时按未满足的规则提示并返回 true
func RespondPasswordPolicyError(c *gin.Context, err error) bool {
	var rule service.PasswordRuleError
	switch {
	case errors.As(err, &rule):
		RespondErrorArgs(c, response.CodeBadRequest, rule.Key(), rule.Args()...)
	case errors.Is(err, service.ErrWeakPassword):
		RespondError(c, response.CodeBadRequest, "error.password_weak", nil)
	default:
		return false
	}
	return true
}
