package models

import (
	"encoding/json"
	"fmt"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/shopspring/decimal"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite failed: %v", err)
	}
	if err := AutoMigrate(db); err != nil {
		t.Fatalf("migrate failed: %v", err)
	}
	return db
}

func TestMoneyJSON(t *testing.T) {
	m := NewMoneyFromDecimal(decimal.RequireFromString("299.999"))
	b, err := json.Marshal(m)
	if err != nil {
		t.Fatalf("marshal failed: %v", err)
	}
	if string(b) != `"300.00"` {
		t.Fatalf("unexpected money json: %s", string(b))
	}

	var parsed Money
	if err := json.Unmarshal([]byte(`149.9`), &parsed); err != nil {
		t.Fatalf("unmarshal number failed: %v", err)
	}
	if parsed.String() != "149.90" {
		t.Fatalf("unexpected parsed money: %s", parsed.String())
	}
}

func TestMoneyTimes(t *testing.T) {
	m := NewMoneyFromDecimal(decimal.RequireFromString("189.99"))
	if got := m.Times(3).String(); got != "569.97" {
		t.Fatalf("times want 569.97 got %s", got)
	}
}

func TestProductArraysRoundTripThroughDB(t *testing.T) {
	db := openTestDB(t)
	product := Product{
		Slug:        "scarlet-evening-gown",
		Name:        "Scarlet Evening Gown",
		Category:    "Dresses",
		PriceAmount: NewMoneyFromDecimal(decimal.RequireFromString("299.99")),
		Sizes:       StringArray{"XS", "S", "M"},
		Colors:      StringArray{"Deep Scarlet"},
		IsActive:    true,
	}
	if err := db.Create(&product).Error; err != nil {
		t.Fatalf("create product failed: %v", err)
	}

	var loaded Product
	if err := db.First(&loaded, product.ID).Error; err != nil {
		t.Fatalf("load product failed: %v", err)
	}
	if len(loaded.Sizes) != 3 || loaded.Sizes[2] != "M" {
		t.Fatalf("unexpected sizes: %v", loaded.Sizes)
	}
	if loaded.Gallery == nil || len(loaded.Gallery) != 0 {
		t.Fatalf("empty gallery should load as empty array, got %v", loaded.Gallery)
	}
	if !loaded.PriceAmount.Equal(decimal.RequireFromString("299.99")) {
		t.Fatalf("unexpected price: %s", loaded.PriceAmount.String())
	}
}

func TestInitDefaultAdmin(t *testing.T) {
	db := openTestDB(t)
	if err := InitDefaultAdmin(db, "", "Secret123"); err != nil {
		t.Fatalf("init default admin failed: %v", err)
	}
	if err := InitDefaultAdmin(db, "other", "Other123"); err != nil {
		t.Fatalf("second init failed: %v", err)
	}

	var admins []Admin
	if err := db.Find(&admins).Error; err != nil {
		t.Fatalf("list admins failed: %v", err)
	}
	if len(admins) != 1 {
		t.Fatalf("expected exactly one admin, got %d", len(admins))
	}
	if admins[0].Username != "admin" || !admins[0].IsSuper {
		t.Fatalf("unexpected default admin: %+v", admins[0])
	}
	if err := bcrypt.CompareHashAndPassword([]byte(admins[0].PasswordHash), []byte("Secret123")); err != nil {
		t.Fatalf("password hash mismatch: %v", err)
	}
}
