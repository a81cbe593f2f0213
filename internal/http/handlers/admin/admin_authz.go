package admin

import (
	"github.com/trendsight-boutique/internal/http/response"

	"github.com/gin-gonic/gin"
)

// ListAuthzRoles 角色列表
func (h *Handler) ListAuthzRoles(c *gin.Context) {
	response.Success(c, h.AuthzService.Roles())
}

// GetAuthzMe 当前管理员身份与角色
func (h *Handler) GetAuthzMe(c *gin.Context) {
	adminID, ok := getAdminID(c)
	if !ok {
		return
	}
	roles, err := h.AuthzService.AdminRoles(adminID)
	if err != nil {
		respondError(c, response.CodeInternal, "error.role_fetch_failed", err)
		return
	}
	response.Success(c, gin.H{
		"admin_id": adminID,
		"username": currentUsername(c),
		"is_super": c.GetBool("is_super"),
		"roles":    roles,
	})
}
