//go:build integration
// +build integration

package repository

import (
	"os"
	"strings"
	"testing"
	"time"

	"github.com/trendsight-boutique/internal/constants"
	"github.com/trendsight-boutique/internal/models"

	"github.com/shopspring/decimal"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// setupPostgresIntegrationDB 初始化 PostgreSQL 集成测试数据库。
func setupPostgresIntegrationDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := strings.TrimSpace(os.Getenv("TEST_POSTGRES_DSN"))
	if dsn == "" {
		t.Skip("skip postgres integration test: TEST_POSTGRES_DSN is empty")
	}

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open postgres failed: %v", err)
	}

	cleanupModels := []interface{}{
		&models.OrderItem{},
		&models.Order{},
		&models.Product{},
		&models.Admin{},
	}
	_ = db.Migrator().DropTable(cleanupModels...)

	if err := models.AutoMigrate(db); err != nil {
		t.Fatalf("migrate postgres models failed: %v", err)
	}

	t.Cleanup(func() {
		_ = db.Migrator().DropTable(cleanupModels...)
		sqlDB, err := db.DB()
		if err == nil {
			_ = sqlDB.Close()
		}
	})

	return db
}

func TestPostgresProductSearchIsCaseInsensitive(t *testing.T) {
	db := setupPostgresIntegrationDB(t)
	repo := NewProductRepository(db)

	product := &models.Product{
		Slug:        "prod-2",
		Name:        "Beige Silk Blouse",
		Description: "Pure silk blouse",
		Category:    "Tops",
		PriceAmount: models.NewMoneyFromDecimal(decimal.RequireFromString("149.99")),
		Sizes:       models.StringArray{"S", "M", "L"},
		Colors:      models.StringArray{"Soft Beige"},
		IsActive:    true,
	}
	if err := repo.Create(product); err != nil {
		t.Fatalf("create product failed: %v", err)
	}

	rows, total, err := repo.List(ProductListFilter{Page: 1, Search: "SILK", OnlyActive: true})
	if err != nil {
		t.Fatalf("product search failed: %v", err)
	}
	if total != 1 || len(rows) != 1 {
		t.Fatalf("product search want 1 got total=%d len=%d", total, len(rows))
	}
	if len(rows[0].Sizes) != 3 || rows[0].PriceAmount.String() != "149.99" {
		t.Fatalf("json and decimal columns must round-trip: %+v", rows[0])
	}

	categories, err := repo.ListCategories(true)
	if err != nil || len(categories) != 1 || categories[0] != "Tops" {
		t.Fatalf("unexpected categories: %v %v", categories, err)
	}
}

func TestPostgresOrderListAdmin(t *testing.T) {
	db := setupPostgresIntegrationDB(t)
	repo := NewOrderRepository(db)
	now := time.Now().UTC().Truncate(time.Second)

	order := &models.Order{
		OrderNo:           "TS20261019ABCDEF0123",
		CheckoutSessionID: "cs_test_pg",
		CustomerEmail:     "Ana@Example.com",
		Status:            constants.OrderStatusProcessing,
		Currency:          "brl",
		TotalAmount:       models.NewMoneyFromDecimal(decimal.RequireFromString("299.99")),
		ShippingAddress:   models.JSON{"city": "São Paulo"},
		PaidAt:            &now,
	}
	items := []models.OrderItem{{
		ProductSlug: "prod-1",
		Name:        "Scarlet Evening Gown (Red / M)",
		UnitPrice:   models.NewMoneyFromDecimal(decimal.RequireFromString("299.99")),
		Quantity:    1,
		TotalPrice:  models.NewMoneyFromDecimal(decimal.RequireFromString("299.99")),
	}}
	if err := repo.Create(order, items); err != nil {
		t.Fatalf("create order failed: %v", err)
	}

	rows, total, err := repo.ListAdmin(OrderListFilter{Page: 1, PageSize: 20, CustomerEmail: "ana@example"})
	if err != nil {
		t.Fatalf("order list failed: %v", err)
	}
	if total != 1 || len(rows) != 1 || len(rows[0].Items) != 1 {
		t.Fatalf("order list want 1 with items got total=%d len=%d", total, len(rows))
	}

	from := now.Add(-time.Hour)
	to := now.Add(time.Hour)
	_, total, err = repo.ListAdmin(OrderListFilter{Page: 1, PageSize: 20, CreatedFrom: &from, CreatedTo: &to})
	if err != nil || total != 1 {
		t.Fatalf("date range filter want 1 got total=%d err=%v", total, err)
	}

	found, err := repo.GetByCheckoutSessionID("cs_test_pg")
	if err != nil || found == nil || found.ShippingAddress["city"] != "São Paulo" {
		t.Fatalf("lookup by session failed: %+v %v", found, err)
	}
}
