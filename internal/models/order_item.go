package models

import (
	"time"
)

// OrderItem 订单项表（结账时的商品快照）
type OrderItem struct {
	ID          uint      `gorm:"primarykey" json:"id"`                                     // 主键
	OrderID     uint      `gorm:"index;not null" json:"order_id"`                           // 订单ID
	ProductSlug string    `gorm:"type:varchar(200);index" json:"product_slug"`              // 商品标识（可能为空）
	Name        string    `gorm:"type:varchar(200);not null" json:"name"`                   // 名称快照
	Image       string    `gorm:"type:varchar(500)" json:"image"`                           // 图片快照
	UnitPrice   Money     `gorm:"type:decimal(20,2);not null;default:0" json:"unit_price"`  // 单价
	Quantity    int       `gorm:"not null" json:"quantity"`                                 // 数量
	TotalPrice  Money     `gorm:"type:decimal(20,2);not null;default:0" json:"total_price"` // 小计
	CreatedAt   time.Time `gorm:"index" json:"created_at"`                                  // 创建时间
}

// TableName 指定表名
func (OrderItem) TableName() string {
	return "order_items"
}
