package service

import (
	"fmt"
	"strings"
	"testing"

	"github.com/trendsight-boutique/internal/config"
	"github.com/trendsight-boutique/internal/models"
	"github.com/trendsight-boutique/internal/payment/stripe"
	"github.com/trendsight-boutique/internal/payment/stripe/stripetest"
	"github.com/trendsight-boutique/internal/repository"

	"github.com/glebarez/sqlite"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

func openServiceTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	name := strings.NewReplacer("/", "_", " ", "_").Replace(t.Name())
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", name)
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite failed: %v", err)
	}
	if err := models.AutoMigrate(db); err != nil {
		t.Fatalf("migrate failed: %v", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("get sql db failed: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() {
		_ = sqlDB.Close()
	})
	return db
}

func seedProduct(t *testing.T, repo repository.ProductRepository, slug, name, price string, active bool) *models.Product {
	t.Helper()
	product := &models.Product{
		Slug:        slug,
		Name:        name,
		Category:    "Dresses",
		PriceAmount: models.NewMoneyFromDecimal(decimal.RequireFromString(price)),
		Image:       "https://placehold.co/600x800.png",
		Colors:      models.StringArray{"Red", "Black"},
		Sizes:       models.StringArray{"S", "M", "L"},
		IsActive:    true,
	}
	if err := repo.Create(product); err != nil {
		t.Fatalf("create product failed: %v", err)
	}
	if !active {
		product.IsActive = false
		if err := repo.Update(product); err != nil {
			t.Fatalf("deactivate product failed: %v", err)
		}
	}
	return product
}

func newStripeGateway(t *testing.T) (*stripe.Client, *stripetest.Server) {
	t.Helper()
	server := stripetest.NewServer()
	t.Cleanup(server.Close)
	client, err := stripe.NewClient(stripe.Config{SecretKey: stripetest.SecretKey, APIBaseURL: server.URL})
	if err != nil {
		t.Fatalf("new stripe client failed: %v", err)
	}
	return client, server
}

func testCheckoutConfig() config.CheckoutConfig {
	return config.CheckoutConfig{
		AppURL:             "http://localhost:9002",
		Currency:           "BRL",
		PaymentMethodTypes: []string{"card", "pix", "boleto"},
		BoletoExpireDays:   3,
	}
}

func testConfig() *config.Config {
	return &config.Config{
		JWT:     config.JWTConfig{SecretKey: "test-secret", ExpireHours: 2},
		UserJWT: config.JWTConfig{SecretKey: "test-customer-secret", ExpireHours: 2},
		Security: config.SecurityConfig{
			PasswordPolicy: config.PasswordPolicyConfig{
				MinLength:     8,
				RequireUpper:  true,
				RequireLower:  true,
				RequireNumber: true,
			},
		},
		Checkout: testCheckoutConfig(),
	}
}
