package admin

import (
	"strconv"
	"strings"

	handlershared "github.com/trendsight-boutique/internal/http/handlers/shared"
	"github.com/trendsight-boutique/internal/http/response"

	"github.com/gin-gonic/gin"
)

// getAdminID 读取当前管理员 ID，缺失时输出 401
func getAdminID(c *gin.Context) (uint, bool) {
	id, ok := handlershared.ContextUint(c, "admin_id")
	if !ok {
		respondError(c, response.CodeUnauthorized, "error.unauthorized", nil)
		return 0, false
	}
	return id, true
}

func currentAdminID(c *gin.Context) uint {
	id, _ := handlershared.ContextUint(c, "admin_id")
	return id
}

func currentUsername(c *gin.Context) string {
	return strings.TrimSpace(c.GetString("username"))
}

// parseUintParam 解析路径中的正整数 ID，失败时直接输出错误
func parseUintParam(c *gin.Context, name, invalidKey string) (uint, bool) {
	id, err := strconv.ParseUint(strings.TrimSpace(c.Param(name)), 10, 64)
	if err != nil || id == 0 {
		respondError(c, response.CodeBadRequest, invalidKey, nil)
		return 0, false
	}
	return uint(id), true
}
