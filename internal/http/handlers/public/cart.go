package public

import (
	"github.com/trendsight-boutique/internal/cart"
	"github.com/trendsight-boutique/internal/http/response"
	"github.com/trendsight-boutique/internal/service"

	"github.com/gin-gonic/gin"
)

// AddCartItemRequest 加入购物车请求
type AddCartItemRequest struct {
	ProductID string `json:"product_id" binding:"required"`
	Quantity  int    `json:"quantity" binding:"max=999"`
	Color     string `json:"color"`
	Size      string `json:"size"`
}

// UpdateCartItemRequest 修改数量请求（绝对值）
type UpdateCartItemRequest struct {
	Quantity *int `json:"quantity" binding:"required,max=999"`
}

// GetCart 获取购物车
func (h *Handler) GetCart(c *gin.Context) {
	sessionID := h.cartSessionID(c)
	response.Success(c, h.CartService.Get(sessionID))
}

// AddCartItem 加入购物车；相同商品与规格合并数量
func (h *Handler) AddCartItem(c *gin.Context) {
	var req AddCartItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}
	if req.Quantity == 0 {
		req.Quantity = 1
	}

	sessionID := h.cartSessionID(c)
	detail, err := h.CartService.AddItem(c.Request.Context(), sessionID, service.AddCartItemInput{
		ProductID: req.ProductID,
		Quantity:  req.Quantity,
		Color:     req.Color,
		Size:      req.Size,
	})
	if err != nil {
		respondCartAddError(c, err)
		return
	}
	response.Success(c, detail)
}

// UpdateCartItem 设置购物车行数量，数量 <= 0 时删除
func (h *Handler) UpdateCartItem(c *gin.Context) {
	key, ok := parseCartKey(c)
	if !ok {
		return
	}
	var req UpdateCartItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}

	sessionID := h.cartSessionID(c)
	response.Success(c, h.CartService.UpdateQuantity(sessionID, key, *req.Quantity))
}

// RemoveCartItem 删除购物车行，不存在时同样成功
func (h *Handler) RemoveCartItem(c *gin.Context) {
	key, ok := parseCartKey(c)
	if !ok {
		return
	}
	sessionID := h.cartSessionID(c)
	response.Success(c, h.CartService.Remove(sessionID, key))
}

// ClearCart 清空购物车
func (h *Handler) ClearCart(c *gin.Context) {
	sessionID := h.cartSessionID(c)
	response.Success(c, h.CartService.Clear(sessionID))
}

// ToggleCart 切换购物车面板展开状态
func (h *Handler) ToggleCart(c *gin.Context) {
	sessionID := h.cartSessionID(c)
	response.Success(c, h.CartService.Toggle(sessionID))
}

func parseCartKey(c *gin.Context) (cart.LineKey, bool) {
	key, err := cart.ParseLineKey(c.Param("key"))
	if err != nil {
		respondError(c, response.CodeBadRequest, "error.cart_key_invalid", nil)
		return cart.LineKey{}, false
	}
	return key, true
}
