package public

import (
	"strings"

	handlershared "github.com/trendsight-boutique/internal/http/handlers/shared"
	"github.com/trendsight-boutique/internal/http/response"

	"github.com/gin-gonic/gin"
)

// CreateCheckout 以当前购物车创建托管支付会话，返回跳转地址
func (h *Handler) CreateCheckout(c *gin.Context) {
	sessionID := h.cartSessionID(c)
	lines := h.CartService.Lines(sessionID)

	checkout, err := h.CheckoutService.CreateSession(c.Request.Context(), lines)
	if err != nil {
		respondCheckoutCreateError(c, err)
		return
	}
	handlershared.RequestLog(c).Infow("checkout_redirect_issued",
		"checkout_session_id", checkout.ID,
		"line_count", len(lines),
	)
	response.Success(c, gin.H{
		"session_id": checkout.ID,
		"url":        checkout.URL,
	})
}

// ConfirmCheckout 支付成功页回调确认；已支付时重置访客购物车会话
func (h *Handler) ConfirmCheckout(c *gin.Context) {
	checkoutSessionID := strings.TrimSpace(c.Query("session_id"))
	result, err := h.CheckoutService.Confirm(c.Request.Context(), checkoutSessionID)
	if err != nil {
		respondCheckoutConfirmError(c, err)
		return
	}

	if sessionID, ok := h.existingCartSessionID(c); ok {
		h.CartService.Reset(sessionID)
	}
	response.Success(c, result)
}
