package service

import (
	"context"
	"strconv"
	"strings"

	"github.com/trendsight-boutique/internal/cache"
	"github.com/trendsight-boutique/internal/logger"
	"github.com/trendsight-boutique/internal/models"
	"github.com/trendsight-boutique/internal/repository"
)

// CatalogService 前台商品目录（只读）
type CatalogService struct {
	repo repository.ProductRepository
}

// NewCatalogService 创建目录服务
func NewCatalogService(repo repository.ProductRepository) *CatalogService {
	return &CatalogService{repo: repo}
}

// ListPublic 获取上架商品列表
func (s *CatalogService) ListPublic(category, search string, page, pageSize int) ([]models.Product, int64, error) {
	return s.repo.List(repository.ProductListFilter{
		Page:       page,
		PageSize:   pageSize,
		Category:   strings.TrimSpace(category),
		Search:     strings.TrimSpace(search),
		OnlyActive: true,
	})
}

// ListCategories 获取有上架商品的分类
func (s *CatalogService) ListCategories() ([]string, error) {
	return s.repo.ListCategories(true)
}

// GetPublic 按 slug 或数字 ID 获取上架商品；slug 命中时走 Redis 缓存
func (s *CatalogService) GetPublic(ctx context.Context, idOrSlug string) (*models.Product, error) {
	ref := strings.TrimSpace(idOrSlug)
	if ref == "" {
		return nil, ErrNotFound
	}

	key := cache.CatalogProductKey(ref)
	var cached models.Product
	hit, err := cache.GetJSON(ctx, key, &cached)
	if err != nil {
		logger.Warnw("catalog_cache_get_failed", "key", key, "error", err)
	}
	if hit && cached.IsActive {
		return &cached, nil
	}

	product, err := s.repo.GetBySlug(ref, true)
	if err != nil {
		return nil, err
	}
	if product == nil {
		if id, convErr := strconv.ParseUint(ref, 10, 64); convErr == nil && id > 0 {
			product, err = s.repo.GetByID(uint(id))
			if err != nil {
				return nil, err
			}
			if product != nil && !product.IsActive {
				product = nil
			}
		}
	}
	if product == nil {
		return nil, ErrNotFound
	}

	if err := cache.SetJSON(ctx, cache.CatalogProductKey(product.Slug), product, cache.CatalogProductTTL); err != nil {
		logger.Warnw("catalog_cache_set_failed", "slug", product.Slug, "error", err)
	}
	return product, nil
}
