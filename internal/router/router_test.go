package router

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
	"github.com/trendsight-boutique/internal/provider"
	"github.com/trendsight-boutique/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
)

type routerEnvelope struct {
	StatusCode int             `json:"status_code"`
	Msg        string          `json:"msg"`
	Data       json.RawMessage `json:"data"`
}

func newRouterForTest(t *testing.T) (*gin.Engine, *provider.Container) {
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
	if err := models.InitDefaultAdmin(db, "admin", "Boutique123"); err != nil {
		t.Fatalf("init default admin failed: %v", err)
	}

	cfg := &config.Config{
		Server:  config.ServerConfig{Mode: "debug"},
		JWT:     config.JWTConfig{SecretKey: "router-test-secret", ExpireHours: 1},
		UserJWT: config.JWTConfig{SecretKey: "router-test-customer-secret", ExpireHours: 1},
		Security: config.SecurityConfig{
			PasswordPolicy: config.PasswordPolicyConfig{MinLength: 8, RequireUpper: true, RequireLower: true, RequireNumber: true},
		},
	}
	c := provider.Build(cfg, db, nil)
	return SetupRouter(cfg, c), c
}

func routerDo(t *testing.T, r *gin.Engine, method, path, token string, body interface{}) routerEnvelope {
	t.Helper()
	var payload []byte
	if body != nil {
		payload, _ = json.Marshal(body)
	}
	req := httptest.NewRequest(method, path, bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept-Language", "en-US")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("%s %s: http status %d", method, path, w.Code)
	}
	var env routerEnvelope
	if err := json.Unmarshal(w.Body.Bytes(), &env); err != nil {
		t.Fatalf("%s %s: decode failed: %v", method, path, err)
	}
	return env
}

func loginForTest(t *testing.T, r *gin.Engine, username, password string) string {
	t.Helper()
	env := routerDo(t, r, http.MethodPost, "/api/v1/admin/login", "", map[string]string{"username": username, "password": password})
	if env.StatusCode != 0 {
		t.Fatalf("login %s failed: %d %s", username, env.StatusCode, env.Msg)
	}
	var resp struct {
		Token string `json:"token"`
	}
	if err := json.Unmarshal(env.Data, &resp); err != nil || resp.Token == "" {
		t.Fatalf("login response missing token: %v", err)
	}
	return resp.Token
}

func TestHealth(t *testing.T) {
	r, _ := newRouterForTest(t)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))
	if w.Code != http.StatusOK || !strings.Contains(w.Body.String(), `"ok"`) {
		t.Fatalf("health check failed: %d %s", w.Code, w.Body.String())
	}
}

func TestAdminLoginRejectsWrongPassword(t *testing.T) {
	r, _ := newRouterForTest(t)
	env := routerDo(t, r, http.MethodPost, "/api/v1/admin/login", "", map[string]string{"username": "admin", "password": "nope"})
	if env.StatusCode != 401 || env.Msg != "Incorrect username or password" {
		t.Fatalf("want admin_login_invalid, got %d %s", env.StatusCode, env.Msg)
	}
}

func TestAdminRoutesRequireToken(t *testing.T) {
	r, _ := newRouterForTest(t)
	env := routerDo(t, r, http.MethodGet, "/api/v1/admin/products", "", nil)
	if env.StatusCode != 401 {
		t.Fatalf("want 401 without token, got %d", env.StatusCode)
	}
	env = routerDo(t, r, http.MethodGet, "/api/v1/admin/products", "not-a-jwt", nil)
	if env.StatusCode != 401 {
		t.Fatalf("want 401 with bad token, got %d", env.StatusCode)
	}
}

func TestSuperAdminProductLifecycle(t *testing.T) {
	r, _ := newRouterForTest(t)
	token := loginForTest(t, r, "admin", "Boutique123")

	env := routerDo(t, r, http.MethodPost, "/api/v1/admin/products", token, map[string]interface{}{
		"slug":         "prod-1",
		"name":         "Scarlet Evening Gown",
		"category":     "Dresses",
		"price_amount": "299.99",
		"sizes":        []string{"S", "M", "L"},
		"colors":       []string{"Red"},
	})
	if env.StatusCode != 0 {
		t.Fatalf("create product failed: %d %s", env.StatusCode, env.Msg)
	}
	var created models.Product
	if err := json.Unmarshal(env.Data, &created); err != nil {
		t.Fatalf("decode product failed: %v", err)
	}

	env = routerDo(t, r, http.MethodPost, "/api/v1/admin/products", token, map[string]interface{}{
		"slug": "prod-1", "name": "Duplicate", "category": "Dresses", "price_amount": 10,
	})
	if env.StatusCode != 400 || env.Msg != "A product with this slug already exists" {
		t.Fatalf("want slug_exists, got %d %s", env.StatusCode, env.Msg)
	}

	env = routerDo(t, r, http.MethodGet, "/api/v1/products/prod-1", "", nil)
	if env.StatusCode != 0 {
		t.Fatalf("public detail failed: %d %s", env.StatusCode, env.Msg)
	}

	env = routerDo(t, r, http.MethodDelete, fmt.Sprintf("/api/v1/admin/products/%d", created.ID), token, nil)
	if env.StatusCode != 0 {
		t.Fatalf("delete product failed: %d %s", env.StatusCode, env.Msg)
	}
	env = routerDo(t, r, http.MethodGet, "/api/v1/products/prod-1", "", nil)
	if env.StatusCode != 404 {
		t.Fatalf("deleted product must be gone, got %d", env.StatusCode)
	}
}

func TestCatalogManagerRBAC(t *testing.T) {
	r, c := newRouterForTest(t)
	if _, err := c.AdminService.Create(service.CreateAdminInput{
		Username: "curator",
		Password: "Curator123",
		Roles:    []string{constants.RoleCatalogManager},
	}); err != nil {
		t.Fatalf("create admin failed: %v", err)
	}
	token := loginForTest(t, r, "curator", "Curator123")

	if env := routerDo(t, r, http.MethodGet, "/api/v1/admin/products", token, nil); env.StatusCode != 0 {
		t.Fatalf("catalog manager must list products, got %d %s", env.StatusCode, env.Msg)
	}
	if env := routerDo(t, r, http.MethodGet, "/api/v1/admin/orders", token, nil); env.StatusCode != 403 {
		t.Fatalf("catalog manager must not list orders, got %d", env.StatusCode)
	}
	if env := routerDo(t, r, http.MethodGet, "/api/v1/admin/admins", token, nil); env.StatusCode != 403 {
		t.Fatalf("catalog manager must not manage admins, got %d", env.StatusCode)
	}

	env := routerDo(t, r, http.MethodGet, "/api/v1/admin/authz/me", token, nil)
	if env.StatusCode != 0 || !strings.Contains(string(env.Data), constants.RoleCatalogManager) {
		t.Fatalf("self info must list roles, got %d %s", env.StatusCode, string(env.Data))
	}
}

func TestPasswordChangeRevokesToken(t *testing.T) {
	r, _ := newRouterForTest(t)
	token := loginForTest(t, r, "admin", "Boutique123")

	env := routerDo(t, r, http.MethodPut, "/api/v1/admin/password", token, map[string]string{
		"old_password": "Boutique123",
		"new_password": "short",
	})
	if env.StatusCode != 400 || env.Msg != "Password must be at least 8 characters" {
		t.Fatalf("want password policy message, got %d %s", env.StatusCode, env.Msg)
	}

	env = routerDo(t, r, http.MethodPut, "/api/v1/admin/password", token, map[string]string{
		"old_password": "Boutique123",
		"new_password": "Boutique456",
	})
	if env.StatusCode != 0 {
		t.Fatalf("change password failed: %d %s", env.StatusCode, env.Msg)
	}

	if env := routerDo(t, r, http.MethodGet, "/api/v1/admin/products", token, nil); env.StatusCode != 401 {
		t.Fatalf("old token must be revoked, got %d", env.StatusCode)
	}
	loginForTest(t, r, "admin", "Boutique456")
}

func TestAdminManagement(t *testing.T) {
	r, _ := newRouterForTest(t)
	token := loginForTest(t, r, "admin", "Boutique123")

	env := routerDo(t, r, http.MethodPost, "/api/v1/admin/admins", token, map[string]interface{}{
		"username": "viewer",
		"password": "Viewer1234",
		"roles":    []string{constants.RoleOrderViewer},
	})
	if env.StatusCode != 0 {
		t.Fatalf("create admin failed: %d %s", env.StatusCode, env.Msg)
	}
	var created struct {
		ID    uint     `json:"id"`
		Roles []string `json:"roles"`
	}
	if err := json.Unmarshal(env.Data, &created); err != nil {
		t.Fatalf("decode admin failed: %v", err)
	}
	if len(created.Roles) != 1 || created.Roles[0] != constants.RoleOrderViewer {
		t.Fatalf("unexpected roles: %v", created.Roles)
	}

	env = routerDo(t, r, http.MethodPut, fmt.Sprintf("/api/v1/admin/admins/%d/roles", created.ID), token, map[string]interface{}{
		"roles": []string{"ghost"},
	})
	if env.StatusCode != 400 || env.Msg != "Invalid role" {
		t.Fatalf("want role_invalid, got %d %s", env.StatusCode, env.Msg)
	}

	env = routerDo(t, r, http.MethodPut, "/api/v1/admin/admins/1/roles", token, map[string]interface{}{
		"roles": []string{constants.RoleOrderViewer},
	})
	if env.StatusCode != 400 || env.Msg != "Super admin roles cannot be changed" {
		t.Fatalf("want super_admin_roles, got %d %s", env.StatusCode, env.Msg)
	}

	env = routerDo(t, r, http.MethodGet, "/api/v1/admin/authz/permissions/catalog", token, nil)
	if env.StatusCode != 0 || !strings.Contains(string(env.Data), "GET:/admin/orders") {
		t.Fatalf("permission catalog must list admin routes, got %s", string(env.Data))
	}
}

func TestCustomerAndAdminTokensAreIsolated(t *testing.T) {
	r, _ := newRouterForTest(t)
	env := routerDo(t, r, http.MethodPost, "/api/v1/auth/register", "", map[string]string{
		"first_name": "Ana", "last_name": "Souza", "email": "ana@example.com", "password": "Boutique2024",
	})
	if env.StatusCode != 0 {
		t.Fatalf("register failed: %d %s", env.StatusCode, env.Msg)
	}
	var session struct {
		Token string `json:"token"`
	}
	if err := json.Unmarshal(env.Data, &session); err != nil || session.Token == "" {
		t.Fatalf("register response missing token: %v", err)
	}

	if env := routerDo(t, r, http.MethodGet, "/api/v1/me/favorites", "", nil); env.StatusCode != 401 {
		t.Fatalf("favorites without token must be 401, got %d", env.StatusCode)
	}
	env = routerDo(t, r, http.MethodPost, "/api/v1/me/favorites", session.Token, map[string]string{"product_id": "missing"})
	if env.StatusCode != 400 {
		t.Fatalf("favorite of unknown product must be 400, got %d %s", env.StatusCode, env.Msg)
	}
	if env := routerDo(t, r, http.MethodGet, "/api/v1/me/favorites", session.Token, nil); env.StatusCode != 0 {
		t.Fatalf("customer token must reach favorites: %d %s", env.StatusCode, env.Msg)
	}
	if env := routerDo(t, r, http.MethodGet, "/api/v1/admin/products", session.Token, nil); env.StatusCode != 401 {
		t.Fatalf("customer token must not reach admin routes, got %d", env.StatusCode)
	}

	adminToken := loginForTest(t, r, "admin", "Boutique123")
	if env := routerDo(t, r, http.MethodGet, "/api/v1/me", adminToken, nil); env.StatusCode != 401 {
		t.Fatalf("admin token must not reach customer routes, got %d", env.StatusCode)
	}
}
