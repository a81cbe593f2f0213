package public

import (
	"net/http"
	"strings"

	"github.com/trendsight-boutique/internal/provider"
	"github.com/trendsight-boutique/internal/session"

	"github.com/gin-gonic/gin"
)

const (
	cartSessionContextKey = "cart_session_id"
	defaultCartCookieName = "ts_cart"
)

// Handler 店铺前台接口（商品、购物车、结账）
type Handler struct {
	*provider.Container
	cookieName   string
	cookieSecure bool
}

// New 创建前台处理器
func New(c *provider.Container) *Handler {
	h := &Handler{Container: c, cookieName: defaultCartCookieName}
	if c != nil && c.Config != nil {
		if name := strings.TrimSpace(c.Config.Session.CookieName); name != "" {
			h.cookieName = name
		}
		h.cookieSecure = c.Config.Session.CookieSecure
	}
	return h
}

// cartSessionID 读取访客购物车会话；cookie 缺失或非法时签发新会话
// cookie 不设置 Max-Age，浏览器关闭即失效
func (h *Handler) cartSessionID(c *gin.Context) string {
	if id := c.GetString(cartSessionContextKey); id != "" {
		return id
	}
	if id, ok := h.existingCartSessionID(c); ok {
		c.Set(cartSessionContextKey, id)
		return id
	}

	id := session.NewID()
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(h.cookieName, id, 0, "/", "", h.cookieSecure, true)
	c.Set(cartSessionContextKey, id)
	return id
}

// existingCartSessionID 仅读取已有会话，不签发新 cookie
func (h *Handler) existingCartSessionID(c *gin.Context) (string, bool) {
	raw, err := c.Cookie(h.cookieName)
	if err != nil || !session.ValidID(raw) {
		return "", false
	}
	return strings.TrimSpace(raw), true
}
