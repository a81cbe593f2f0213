package service

import (
	"context"
	"errors"
	"testing"

	"github.com/trendsight-boutique/internal/models"
	"github.com/trendsight-boutique/internal/repository"
)

func TestFavoriteServiceAddListRemove(t *testing.T) {
	db := openServiceTestDB(t)
	products := repository.NewProductRepository(db)
	gown := seedProduct(t, products, "prod-1", "Scarlet Evening Gown", "299.99", true)
	seedProduct(t, products, "prod-off", "Archived Coat", "99.00", false)

	users := repository.NewUserRepository(db)
	user := &models.User{Email: "ana@example.com", PasswordHash: "x", FirstName: "Ana", LastName: "Souza"}
	if err := users.Create(user); err != nil {
		t.Fatalf("create user failed: %v", err)
	}

	svc := NewFavoriteService(repository.NewFavoriteRepository(db), NewCatalogService(products))
	ctx := context.Background()

	if _, err := svc.Add(ctx, user.ID, "prod-off"); !errors.Is(err, ErrProductNotAvailable) {
		t.Fatalf("inactive product want ErrProductNotAvailable, got %v", err)
	}
	if _, err := svc.Add(ctx, user.ID, "missing"); !errors.Is(err, ErrProductNotAvailable) {
		t.Fatalf("missing product want ErrProductNotAvailable, got %v", err)
	}

	added, err := svc.Add(ctx, user.ID, "prod-1")
	if err != nil || added.Slug != "prod-1" {
		t.Fatalf("add favorite failed: %+v %v", added, err)
	}
	if _, err := svc.Add(ctx, user.ID, "prod-1"); err != nil {
		t.Fatalf("adding twice must be idempotent: %v", err)
	}
	list, err := svc.List(user.ID)
	if err != nil || len(list) != 1 || list[0].ID != gown.ID {
		t.Fatalf("unexpected favorites: %+v %v", list, err)
	}

	if err := svc.Remove(user.ID, "prod-1"); err != nil {
		t.Fatalf("remove favorite failed: %v", err)
	}
	if list, _ := svc.List(user.ID); len(list) != 0 {
		t.Fatalf("favorite must be removed: %+v", list)
	}
}
