package public

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/trendsight-boutique/internal/config"
	"github.com/trendsight-boutique/internal/constants"
	"github.com/trendsight-boutique/internal/models"
	"github.com/trendsight-boutique/internal/payment/stripe/stripetest"
	"github.com/trendsight-boutique/internal/provider"

	"github.com/gin-gonic/gin"
	"github.com/glebarez/sqlite"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type testEnvelope struct {
	StatusCode int             `json:"status_code"`
	Msg        string          `json:"msg"`
	Data       json.RawMessage `json:"data"`
}

type testCart struct {
	Lines []struct {
		Key       string `json:"key"`
		ProductID string `json:"product_id"`
		Name      string `json:"name"`
		Color     string `json:"color"`
		Size      string `json:"size"`
		Quantity  int    `json:"quantity"`
		UnitPrice string `json:"unit_price"`
	} `json:"lines"`
	Count    int    `json:"count"`
	Subtotal string `json:"subtotal"`
	IsOpen   bool   `json:"is_open"`
}

type testStorefront struct {
	t      *testing.T
	engine *gin.Engine
	stripe *stripetest.Server
	c      *provider.Container
	cookie *http.Cookie
	token  string
}

func newTestStorefront(t *testing.T) *testStorefront {
	t.Helper()
	gin.SetMode(gin.TestMode)

	name := strings.NewReplacer("/", "_", " ", "_").Replace(t.Name())
	db, err := gorm.Open(sqlite.Open(fmt.Sprintf("file:%s?mode=memory&cache=shared", name)), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite failed: %v", err)
	}
	if err := models.AutoMigrate(db); err != nil {
		t.Fatalf("migrate failed: %v", err)
	}
	server := stripetest.NewServer()
	t.Cleanup(server.Close)

	cfg := &config.Config{
		Session: config.SessionConfig{CookieName: "ts_cart"},
		UserJWT: config.JWTConfig{SecretKey: "test-customer-secret", ExpireHours: 2},
		Security: config.SecurityConfig{
			PasswordPolicy: config.PasswordPolicyConfig{MinLength: 8, RequireNumber: true},
		},
		Checkout: config.CheckoutConfig{
			AppURL:             "http://localhost:9002",
			Currency:           "BRL",
			PaymentMethodTypes: []string{"card", "pix", "boleto"},
			BoletoExpireDays:   3,
			Stripe:             config.StripeConfig{SecretKey: stripetest.SecretKey, APIBaseURL: server.URL},
		},
	}
	c := provider.Build(cfg, db, nil)
	for _, p := range []models.Product{
		{Slug: "prod-1", Name: "Scarlet Evening Gown", Category: "Dresses", PriceAmount: models.NewMoneyFromDecimal(decimal.RequireFromString("299.99")), Image: "/images/gown.png", IsActive: true},
		{Slug: "prod-2", Name: "Beige Silk Blouse", Category: "Tops", PriceAmount: models.NewMoneyFromDecimal(decimal.RequireFromString("149.99")), IsActive: true},
	} {
		product := p
		if err := c.ProductRepo.Create(&product); err != nil {
			t.Fatalf("seed product failed: %v", err)
		}
	}

	h := New(c)
	r := gin.New()
	api := r.Group("/api/v1")
	api.GET("/products", h.GetProducts)
	api.GET("/products/:slug", h.GetProduct)
	api.GET("/categories", h.GetCategories)
	api.GET("/cart", h.GetCart)
	api.DELETE("/cart", h.ClearCart)
	api.POST("/cart/items", h.AddCartItem)
	api.PATCH("/cart/items/:key", h.UpdateCartItem)
	api.DELETE("/cart/items/:key", h.RemoveCartItem)
	api.POST("/cart/toggle", h.ToggleCart)
	api.POST("/checkout", h.CreateCheckout)
	api.GET("/checkout/confirm", h.ConfirmCheckout)
	api.POST("/auth/register", h.UserRegister)
	api.POST("/auth/login", h.UserLogin)
	me := api.Group("/me", testUserAuth(c))
	me.GET("", h.GetUserProfile)
	me.PUT("/password", h.ChangeUserPassword)
	me.GET("/favorites", h.ListFavorites)
	me.POST("/favorites", h.AddFavorite)
	me.DELETE("/favorites/:product_id", h.RemoveFavorite)

	return &testStorefront{t: t, engine: r, stripe: server, c: c}
}

// testUserAuth 解析 Bearer 令牌；缺失或无效时不写入用户 ID，由处理器自行拒绝
func testUserAuth(c *provider.Container) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		raw := strings.TrimPrefix(ctx.GetHeader("Authorization"), "Bearer ")
		if raw == "" {
			return
		}
		if user, err := c.UserAuthService.Authenticate(raw); err == nil {
			ctx.Set(constants.ContextKeyUserID, user.ID)
		}
	}
}

func (s *testStorefront) do(method, path string, body interface{}) testEnvelope {
	s.t.Helper()
	var reader *bytes.Reader
	if body != nil {
		payload, _ := json.Marshal(body)
		reader = bytes.NewReader(payload)
	} else {
		reader = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept-Language", "en-US")
	if s.cookie != nil {
		req.AddCookie(s.cookie)
	}
	if s.token != "" {
		req.Header.Set("Authorization", "Bearer "+s.token)
	}
	w := httptest.NewRecorder()
	s.engine.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		s.t.Fatalf("%s %s: unexpected http status %d", method, path, w.Code)
	}
	for _, cookie := range w.Result().Cookies() {
		if cookie.Name == "ts_cart" {
			s.cookie = cookie
		}
	}
	var env testEnvelope
	if err := json.Unmarshal(w.Body.Bytes(), &env); err != nil {
		s.t.Fatalf("%s %s: decode body failed: %v", method, path, err)
	}
	return env
}

func (s *testStorefront) cart(env testEnvelope) testCart {
	s.t.Helper()
	if env.StatusCode != 0 {
		s.t.Fatalf("expected success, got %d %s", env.StatusCode, env.Msg)
	}
	var detail testCart
	if err := json.Unmarshal(env.Data, &detail); err != nil {
		s.t.Fatalf("decode cart failed: %v", err)
	}
	return detail
}
