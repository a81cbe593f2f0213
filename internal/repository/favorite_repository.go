package repository

import (
	"github.com/trendsight-boutique/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// FavoriteRepository 顾客收藏存取
type FavoriteRepository interface {
	Add(userID uint, productSlug string) error
	Remove(userID uint, productSlug string) error
	ListProducts(userID uint) ([]models.Product, error)
}

// GormFavoriteRepository GORM 实现
type GormFavoriteRepository struct {
	db *gorm.DB
}

// NewFavoriteRepository 创建收藏仓库
func NewFavoriteRepository(db *gorm.DB) *GormFavoriteRepository {
	return &GormFavoriteRepository{db: db}
}

// Add 收藏商品，重复收藏不报错
func (r *GormFavoriteRepository) Add(userID uint, productSlug string) error {
	favorite := &models.UserFavorite{UserID: userID, ProductSlug: productSlug}
	return r.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}, {Name: "product_slug"}},
		DoNothing: true,
	}).Create(favorite).Error
}

// Remove 取消收藏，不存在时无操作
func (r *GormFavoriteRepository) Remove(userID uint, productSlug string) error {
	return r.db.Where("user_id = ? AND product_slug = ?", userID, productSlug).
		Delete(&models.UserFavorite{}).Error
}

// ListProducts 收藏的上架商品，最近收藏的在前
func (r *GormFavoriteRepository) ListProducts(userID uint) ([]models.Product, error) {
	products := make([]models.Product, 0)
	err := r.db.Model(&models.Product{}).
		Select("products.*").
		Joins("JOIN user_favorites ON user_favorites.product_slug = products.slug AND user_favorites.user_id = ?", userID).
		Scopes(activeOnly(true)).
		Order("user_favorites.created_at DESC").
		Order("user_favorites.id DESC").
		Find(&products).Error
	return products, err
}
