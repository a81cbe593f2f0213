package service

import (
	"context"
	"regexp"
	"strings"

	"github.com/trendsight-boutique/internal/cache"
	"github.com/trendsight-boutique/internal/logger"
	"github.com/trendsight-boutique/internal/models"
	"github.com/trendsight-boutique/internal/repository"

	"github.com/shopspring/decimal"
)

var slugPattern = regexp.MustCompile(`^[a-z0-9][a-z0-9-]{0,98}[a-z0-9]?$`)

// ProductService 后台商品管理服务
type ProductService struct {
	repo repository.ProductRepository
}

// NewProductService 创建商品服务
func NewProductService(repo repository.ProductRepository) *ProductService {
	return &ProductService{repo: repo}
}

// CreateProductInput 创建/更新商品输入
type CreateProductInput struct {
	Slug        string
	Name        string
	Description string
	Category    string
	PriceAmount decimal.Decimal
	Image       string
	Gallery     []string
	Sizes       []string
	Colors      []string
	Rating      float64
	ReviewCount int
	IsActive    *bool
	SortOrder   int
}

// ListAdmin 获取后台商品列表（含下架）
func (s *ProductService) ListAdmin(category, search string, page, pageSize int) ([]models.Product, int64, error) {
	return s.repo.List(repository.ProductListFilter{
		Page:     page,
		PageSize: pageSize,
		Category: strings.TrimSpace(category),
		Search:   strings.TrimSpace(search),
	})
}

// GetAdminByID 获取后台商品详情
func (s *ProductService) GetAdminByID(id uint) (*models.Product, error) {
	product, err := s.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, ErrNotFound
	}
	return product, nil
}

// Create 创建商品
func (s *ProductService) Create(input CreateProductInput) (*models.Product, error) {
	if err := validateProductInput(&input); err != nil {
		return nil, err
	}
	count, err := s.repo.CountBySlug(input.Slug, nil)
	if err != nil {
		return nil, err
	}
	if count > 0 {
		return nil, ErrProductSlugExists
	}

	product := models.Product{Slug: input.Slug}
	applyProductInput(&product, input)
	product.IsActive = true
	if err := s.repo.Create(&product); err != nil {
		return nil, err
	}
	// is_active 列带默认值，创建时零值会被忽略
	if input.IsActive != nil && !*input.IsActive {
		product.IsActive = false
		if err := s.repo.Update(&product); err != nil {
			return nil, err
		}
	}
	logger.Infow("product_created", "product_id", product.ID, "slug", product.Slug)
	return &product, nil
}

// Update 更新商品；slug 变更时新旧缓存一并清理
func (s *ProductService) Update(id uint, input CreateProductInput) (*models.Product, error) {
	product, err := s.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, ErrNotFound
	}
	if err := validateProductInput(&input); err != nil {
		return nil, err
	}
	count, err := s.repo.CountBySlug(input.Slug, &id)
	if err != nil {
		return nil, err
	}
	if count > 0 {
		return nil, ErrProductSlugExists
	}

	oldSlug := product.Slug
	product.Slug = input.Slug
	applyProductInput(product, input)
	if err := s.repo.Update(product); err != nil {
		return nil, err
	}
	s.invalidate(oldSlug, product.Slug)
	logger.Infow("product_updated", "product_id", product.ID, "slug", product.Slug)
	return product, nil
}

// Delete 删除商品（软删除）
func (s *ProductService) Delete(id uint) error {
	product, err := s.repo.GetByID(id)
	if err != nil {
		return err
	}
	if product == nil {
		return ErrNotFound
	}
	if err := s.repo.Delete(id); err != nil {
		return err
	}
	s.invalidate(product.Slug)
	logger.Infow("product_deleted", "product_id", id, "slug", product.Slug)
	return nil
}

func (s *ProductService) invalidate(slugs ...string) {
	if err := cache.InvalidateCatalogProduct(context.Background(), slugs...); err != nil {
		logger.Warnw("catalog_cache_invalidate_failed", "slugs", slugs, "error", err)
	}
}

func validateProductInput(input *CreateProductInput) error {
	input.Slug = strings.ToLower(strings.TrimSpace(input.Slug))
	input.Name = strings.TrimSpace(input.Name)
	input.Category = strings.TrimSpace(input.Category)
	if input.Slug == "" || !slugPattern.MatchString(input.Slug) {
		return ErrProductInvalid
	}
	if input.Name == "" || input.Category == "" {
		return ErrProductInvalid
	}
	if input.PriceAmount.Round(2).LessThanOrEqual(decimal.Zero) {
		return ErrProductPriceInvalid
	}
	if input.Rating < 0 || input.Rating > 5 || input.ReviewCount < 0 {
		return ErrProductInvalid
	}
	return nil
}

func applyProductInput(product *models.Product, input CreateProductInput) {
	product.Name = input.Name
	product.Description = strings.TrimSpace(input.Description)
	product.Category = input.Category
	product.PriceAmount = models.NewMoneyFromDecimal(input.PriceAmount)
	product.Image = strings.TrimSpace(input.Image)
	product.Gallery = models.StringArray(trimStrings(input.Gallery))
	product.Sizes = models.StringArray(trimStrings(input.Sizes))
	product.Colors = models.StringArray(trimStrings(input.Colors))
	product.Rating = input.Rating
	product.ReviewCount = input.ReviewCount
	product.SortOrder = input.SortOrder
	if input.IsActive != nil {
		product.IsActive = *input.IsActive
	}
}

func trimStrings(values []string) []string {
	result := make([]string, 0, len(values))
	for _, value := range values {
		value = strings.TrimSpace(value)
		if value == "" {
			continue
		}
		result = append(result, value)
	}
	return result
}
