package shared

import (
	"github.com/trendsight-boutique/internal/http/response"
	"github.com/trendsight-boutique/internal/i18n"
	"github.com/trendsight-boutique/internal/logger"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// RequestLog 提供携带 request_id 的日志实例。
func RequestLog(c *gin.Context) *zap.SugaredLogger {
	if c == nil {
		return logger.S()
	}
	if id := c.GetString("request_id"); id != "" {
		return logger.SW("request_id", id)
	}
	return logger.S()
}

// Respond 按请求语言输出业务错误，原始错误只进日志不回传给客户端。
func Respond(c *gin.Context, appErr *response.AppError, args ...interface{}) {
	msg := i18n.Sprintf(i18n.ResolveLocale(c), appErr.Key, args...)
	if appErr.Err != nil {
		RequestLog(c).Errorw("handler_error",
			"code", appErr.Code,
			"key", appErr.Key,
			"path", c.FullPath(),
			"error", appErr.Err,
		)
	}
	response.Error(c, appErr.Code, msg)
}

// RespondError 返回国际化错误响应，并在有原始错误时记录日志。
func RespondError(c *gin.Context, code int, key string, err error) {
	Respond(c, response.NewAppError(code, key, err))
}

// RespondErrorArgs 返回带格式化参数的国际化错误响应。
func RespondErrorArgs(c *gin.Context, code int, key string, args ...interface{}) {
	Respond(c, response.NewAppError(code, key, nil), args...)
}
