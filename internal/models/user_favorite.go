package models

import "time"

// UserFavorite 顾客收藏的商品（按 slug 关联，商品下架后不再展示）
type UserFavorite struct {
	ID          uint      `gorm:"primarykey" json:"id"`
	UserID      uint      `gorm:"not null;uniqueIndex:idx_user_favorite" json:"user_id"`
	ProductSlug string    `gorm:"type:varchar(100);not null;uniqueIndex:idx_user_favorite" json:"product_id"`
	CreatedAt   time.Time `gorm:"index" json:"created_at"`
}

// TableName 指定表名
func (UserFavorite) TableName() string {
	return "user_favorites"
}
