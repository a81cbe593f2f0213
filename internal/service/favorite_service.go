package service

import (
	"context"
	"errors"

	"github.com/trendsight-boutique/internal/logger"
	"github.com/trendsight-boutique/internal/models"
	"github.com/trendsight-boutique/internal/repository"
)

// FavoriteService 顾客收藏
type FavoriteService struct {
	repo    repository.FavoriteRepository
	catalog *CatalogService
}

// NewFavoriteService 创建收藏服务
func NewFavoriteService(repo repository.FavoriteRepository, catalog *CatalogService) *FavoriteService {
	return &FavoriteService{repo: repo, catalog: catalog}
}

// List 收藏的上架商品
func (s *FavoriteService) List(userID uint) ([]models.Product, error) {
	return s.repo.ListProducts(userID)
}

// Add 收藏商品（slug 或 ID），返回被收藏的商品；只能收藏上架商品
func (s *FavoriteService) Add(ctx context.Context, userID uint, productRef string) (*models.Product, error) {
	product, err := s.catalog.GetPublic(ctx, productRef)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, ErrProductNotAvailable
		}
		return nil, err
	}
	if err := s.repo.Add(userID, product.Slug); err != nil {
		return nil, err
	}
	logger.Debugw("user_favorite_added", "user_id", userID, "product_id", product.Slug)
	return product, nil
}

// Remove 取消收藏，幂等
func (s *FavoriteService) Remove(userID uint, productSlug string) error {
	if err := s.repo.Remove(userID, productSlug); err != nil {
		return err
	}
	logger.Debugw("user_favorite_removed", "user_id", userID, "product_id", productSlug)
	return nil
}
