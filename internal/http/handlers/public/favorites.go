package public

import (
	"strings"

	"github.com/trendsight-boutique/internal/http/response"

	"github.com/gin-gonic/gin"
)

// AddFavoriteRequest 收藏请求，product_id 为商品 slug 或 ID
type AddFavoriteRequest struct {
	ProductID string `json:"product_id" binding:"required"`
}

// ListFavorites 收藏列表（仅上架商品）
func (h *Handler) ListFavorites(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		return
	}
	products, err := h.FavoriteService.List(userID)
	if err != nil {
		respondError(c, response.CodeInternal, "error.favorite_fetch_failed", err)
		return
	}
	response.Success(c, products)
}

// AddFavorite 收藏商品，重复收藏同样成功
func (h *Handler) AddFavorite(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		return
	}
	var req AddFavoriteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}
	product, err := h.FavoriteService.Add(c.Request.Context(), userID, req.ProductID)
	if err != nil {
		respondFavoriteAddError(c, err)
		return
	}
	response.Success(c, gin.H{"product_id": product.Slug, "favorite": true})
}

// RemoveFavorite 取消收藏，不存在时同样成功
func (h *Handler) RemoveFavorite(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		return
	}
	slug := strings.TrimSpace(c.Param("product_id"))
	if err := h.FavoriteService.Remove(userID, slug); err != nil {
		respondError(c, response.CodeInternal, "error.favorite_save_failed", err)
		return
	}
	response.Success(c, gin.H{"product_id": slug, "favorite": false})
}
