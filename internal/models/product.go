package models

import (
	"time"

	"gorm.io/gorm"
)

// Product 商品表
type Product struct {
	ID          uint           `gorm:"primarykey" json:"id"`                                      // 主键
	Slug        string         `gorm:"uniqueIndex;not null" json:"slug"`                          // 唯一标识（购物车行使用）
	Name        string         `gorm:"type:varchar(200);not null" json:"name"`                    // 名称
	Description string         `gorm:"type:text" json:"description"`                              // 描述
	Category    string         `gorm:"type:varchar(100);not null;index" json:"category"`          // 分类
	PriceAmount Money          `gorm:"type:decimal(20,2);not null;default:0" json:"price_amount"` // 价格
	Image       string         `gorm:"type:varchar(500)" json:"image"`                            // 主图
	Gallery     StringArray    `gorm:"type:json" json:"gallery"`                                  // 图集
	Sizes       StringArray    `gorm:"type:json" json:"sizes"`                                    // 可选尺码
	Colors      StringArray    `gorm:"type:json" json:"colors"`                                   // 可选颜色
	Rating      float64        `gorm:"not null;default:0" json:"rating"`                          // 评分
	ReviewCount int            `gorm:"not null;default:0" json:"review_count"`                    // 评价数
	IsActive    bool           `gorm:"default:true;index" json:"is_active"`                       // 是否上架
	SortOrder   int            `gorm:"default:0;index" json:"sort_order"`                         // 排序权重
	CreatedAt   time.Time      `gorm:"index" json:"created_at"`                                   // 创建时间
	UpdatedAt   time.Time      `json:"updated_at"`                                                // 更新时间
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`                                            // 软删除时间
}

// TableName 指定表名
func (Product) TableName() string {
	return "products"
}
