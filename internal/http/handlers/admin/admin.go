package admin

import (
	"errors"
	"strings"
	"time"

	handlershared "github.com/trendsight-boutique/internal/http/handlers/shared"
	"github.com/trendsight-boutique/internal/http/response"
	"github.com/trendsight-boutique/internal/models"
	"github.com/trendsight-boutique/internal/provider"
	"github.com/trendsight-boutique/internal/service"

	"github.com/gin-gonic/gin"
)

// Handler 管理端接口处理器
type Handler struct {
	*provider.Container
}

// New 创建管理端处理器
func New(c *provider.Container) *Handler {
	return &Handler{Container: c}
}

// LoginRequest 登录请求
type LoginRequest struct {
	Username       string                              `json:"username" binding:"required"`
	Password       string                              `json:"password" binding:"required"`
	CaptchaPayload handlershared.CaptchaPayloadRequest `json:"captcha_payload"`
}

// LoginResponse 登录响应
type LoginResponse struct {
	Token     string                 `json:"token"`
	User      map[string]interface{} `json:"user"`
	ExpiresAt string                 `json:"expires_at"`
}

// AdminLogin 管理员登录
func (h *Handler) AdminLogin(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}

	if captchaErr := h.CaptchaService.VerifyAdminLogin(req.CaptchaPayload.ToServicePayload()); captchaErr != nil {
		switch {
		case errors.Is(captchaErr, service.ErrCaptchaRequired):
			respondError(c, response.CodeBadRequest, "error.captcha_required", nil)
		case errors.Is(captchaErr, service.ErrCaptchaInvalid):
			respondError(c, response.CodeBadRequest, "error.captcha_invalid", nil)
		default:
			respondError(c, response.CodeInternal, "error.login_failed", captchaErr)
		}
		return
	}

	session, err := h.AuthService.Login(strings.TrimSpace(req.Username), req.Password)
	if err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) {
			requestLog(c).Infow("admin_login_rejected", "username", strings.TrimSpace(req.Username), "client_ip", c.ClientIP())
			respondError(c, response.CodeUnauthorized, "error.admin_login_invalid", nil)
			return
		}
		respondError(c, response.CodeInternal, "error.login_failed", err)
		return
	}
	response.Success(c, LoginResponse{
		Token: session.Token,
		User: map[string]interface{}{
			"id":       session.Admin.ID,
			"username": session.Admin.Username,
			"is_super": session.Admin.IsSuper,
		},
		ExpiresAt: session.ExpiresAt.Format(time.RFC3339),
	})
}

// GetLoginCaptcha 获取后台登录图片验证码
func (h *Handler) GetLoginCaptcha(c *gin.Context) {
	challenge, err := h.CaptchaService.GenerateImageChallenge()
	if err != nil {
		respondError(c, response.CodeInternal, "error.captcha_generate_failed", err)
		return
	}
	response.Success(c, gin.H{
		"enabled":      h.CaptchaService.AdminLoginEnabled(),
		"captcha_id":   challenge.CaptchaID,
		"image_base64": challenge.ImageBase64,
	})
}

// UpdatePasswordRequest 修改密码请求
type UpdatePasswordRequest struct {
	OldPassword string `json:"old_password" binding:"required"`
	NewPassword string `json:"new_password" binding:"required"`
}

// UpdateAdminPassword 修改管理员密码
func (h *Handler) UpdateAdminPassword(c *gin.Context) {
	id, ok := getAdminID(c)
	if !ok {
		return
	}

	var req UpdatePasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}

	if err := h.AuthService.ChangePassword(id, req.OldPassword, req.NewPassword); err != nil {
		if errors.Is(err, service.ErrInvalidPassword) {
			respondError(c, response.CodeBadRequest, "error.password_old_invalid", nil)
			return
		}
		if respondAdminPasswordPolicyError(c, err) {
			return
		}
		if errors.Is(err, service.ErrNotFound) {
			respondError(c, response.CodeNotFound, "error.admin_not_found", nil)
			return
		}
		respondError(c, response.CodeInternal, "error.password_update_failed", err)
		return
	}

	response.Success(c, nil)
}

// ====================  商品管理  ====================

// ProductRequest 创建/更新商品请求
type ProductRequest struct {
	Slug        string       `json:"slug" binding:"required"`
	Name        string       `json:"name" binding:"required"`
	Description string       `json:"description"`
	Category    string       `json:"category" binding:"required"`
	PriceAmount models.Money `json:"price_amount"`
	Image       string       `json:"image"`
	Gallery     []string     `json:"gallery"`
	Sizes       []string     `json:"sizes"`
	Colors      []string     `json:"colors"`
	Rating      float64      `json:"rating"`
	ReviewCount int          `json:"review_count"`
	IsActive    *bool        `json:"is_active"`
	SortOrder   int          `json:"sort_order"`
}

func (r ProductRequest) toServiceInput() service.CreateProductInput {
	return service.CreateProductInput{
		Slug:        r.Slug,
		Name:        r.Name,
		Description: r.Description,
		Category:    r.Category,
		PriceAmount: r.PriceAmount.Decimal,
		Image:       r.Image,
		Gallery:     r.Gallery,
		Sizes:       r.Sizes,
		Colors:      r.Colors,
		Rating:      r.Rating,
		ReviewCount: r.ReviewCount,
		IsActive:    r.IsActive,
		SortOrder:   r.SortOrder,
	}
}

var productSaveErrorRules = map[error]string{
	service.ErrProductSlugExists:   "error.product_slug_exists",
	service.ErrProductInvalid:      "error.product_invalid",
	service.ErrProductPriceInvalid: "error.product_price_invalid",
}

func respondProductSaveError(c *gin.Context, err error) {
	for target, key := range productSaveErrorRules {
		if errors.Is(err, target) {
			respondError(c, response.CodeBadRequest, key, nil)
			return
		}
	}
	if errors.Is(err, service.ErrNotFound) {
		respondError(c, response.CodeNotFound, "error.product_not_found", nil)
		return
	}
	respondError(c, response.CodeInternal, "error.product_save_failed", err)
}

// GetAdminProducts 获取商品列表 (Admin)
func (h *Handler) GetAdminProducts(c *gin.Context) {
	page, pageSize := handlershared.PageQuery(c)
	category := strings.TrimSpace(c.Query("category"))
	search := strings.TrimSpace(c.Query("search"))

	products, total, err := h.ProductService.ListAdmin(category, search, page, pageSize)
	if err != nil {
		respondError(c, response.CodeInternal, "error.product_fetch_failed", err)
		return
	}
	response.SuccessWithPage(c, products, response.NewPagination(page, pageSize, total))
}

// GetAdminProduct 获取商品详情 (Admin)
func (h *Handler) GetAdminProduct(c *gin.Context) {
	id, ok := parseUintParam(c, "id", "error.product_id_invalid")
	if !ok {
		return
	}

	product, err := h.ProductService.GetAdminByID(id)
	if err != nil {
		if errors.Is(err, service.ErrNotFound) {
			respondError(c, response.CodeNotFound, "error.product_not_found", nil)
			return
		}
		respondError(c, response.CodeInternal, "error.product_fetch_failed", err)
		return
	}
	response.Success(c, product)
}

// CreateProduct 创建商品
func (h *Handler) CreateProduct(c *gin.Context) {
	var req ProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}

	product, err := h.ProductService.Create(req.toServiceInput())
	if err != nil {
		respondProductSaveError(c, err)
		return
	}
	requestLog(c).Infow("admin_product_created",
		"operator_admin_id", currentAdminID(c),
		"product_id", product.ID,
		"slug", product.Slug,
	)
	response.Success(c, product)
}

// UpdateProduct 更新商品
func (h *Handler) UpdateProduct(c *gin.Context) {
	id, ok := parseUintParam(c, "id", "error.product_id_invalid")
	if !ok {
		return
	}
	var req ProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}

	product, err := h.ProductService.Update(id, req.toServiceInput())
	if err != nil {
		respondProductSaveError(c, err)
		return
	}
	requestLog(c).Infow("admin_product_updated",
		"operator_admin_id", currentAdminID(c),
		"product_id", product.ID,
		"slug", product.Slug,
	)
	response.Success(c, product)
}

// DeleteProduct 删除商品
func (h *Handler) DeleteProduct(c *gin.Context) {
	id, ok := parseUintParam(c, "id", "error.product_id_invalid")
	if !ok {
		return
	}
	if err := h.ProductService.Delete(id); err != nil {
		if errors.Is(err, service.ErrNotFound) {
			respondError(c, response.CodeNotFound, "error.product_not_found", nil)
			return
		}
		respondError(c, response.CodeInternal, "error.product_delete_failed", err)
		return
	}
	requestLog(c).Infow("admin_product_deleted", "operator_admin_id", currentAdminID(c), "product_id", id)
	response.Success(c, nil)
}
