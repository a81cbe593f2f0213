package admin

import (
	"errors"

	"github.com/trendsight-boutique/internal/http/response"
	"github.com/trendsight-boutique/internal/service"

	"github.com/gin-gonic/gin"
)

type createAdminPayload struct {
	Username string   `json:"username" binding:"required"`
	Password string   `json:"password" binding:"required"`
	IsSuper  *bool    `json:"is_super"`
	Roles    []string `json:"roles"`
}

type setAdminRolesPayload struct {
	Roles []string `json:"roles"`
}

// ListAdmins 管理员列表
func (h *Handler) ListAdmins(c *gin.Context) {
	admins, err := h.AdminService.List()
	if err != nil {
		respondError(c, response.CodeInternal, "error.admin_fetch_failed", err)
		return
	}
	response.Success(c, admins)
}

// CreateAdmin 创建管理员
func (h *Handler) CreateAdmin(c *gin.Context) {
	var req createAdminPayload
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}

	detail, err := h.AdminService.Create(service.CreateAdminInput{
		Username: req.Username,
		Password: req.Password,
		IsSuper:  req.IsSuper != nil && *req.IsSuper,
		Roles:    req.Roles,
	})
	if err != nil {
		switch {
		case errors.Is(err, service.ErrUsernameInvalid):
			respondError(c, response.CodeBadRequest, "error.admin_username_invalid", nil)
		case errors.Is(err, service.ErrUsernameExists):
			respondError(c, response.CodeBadRequest, "error.admin_username_exists", nil)
		case errors.Is(err, service.ErrRoleInvalid):
			respondError(c, response.CodeBadRequest, "error.role_invalid", nil)
		case respondAdminPasswordPolicyError(c, err):
		default:
			respondError(c, response.CodeInternal, "error.admin_create_failed", err)
		}
		return
	}

	requestLog(c).Infow("admin_authz_admin_created",
		"operator_admin_id", currentAdminID(c),
		"operator_username", currentUsername(c),
		"target_admin_id", detail.ID,
		"target_username", detail.Username,
		"is_super", detail.IsSuper,
	)
	response.Success(c, detail)
}

// SetAdminRoles 覆盖管理员角色
func (h *Handler) SetAdminRoles(c *gin.Context) {
	adminID, ok := parseUintParam(c, "id", "error.admin_id_invalid")
	if !ok {
		return
	}
	var req setAdminRolesPayload
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}

	detail, err := h.AdminService.SetRoles(adminID, req.Roles)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrNotFound):
			respondError(c, response.CodeNotFound, "error.admin_not_found", nil)
		case errors.Is(err, service.ErrSuperAdminRoles):
			respondError(c, response.CodeBadRequest, "error.super_admin_roles", nil)
		case errors.Is(err, service.ErrRoleInvalid):
			respondError(c, response.CodeBadRequest, "error.role_invalid", nil)
		default:
			respondError(c, response.CodeInternal, "error.internal", err)
		}
		return
	}

	requestLog(c).Infow("admin_authz_roles_updated",
		"operator_admin_id", currentAdminID(c),
		"target_admin_id", adminID,
		"roles", detail.Roles,
	)
	response.Success(c, detail)
}
