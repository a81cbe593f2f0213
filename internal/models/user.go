package models

import (
	"time"

	"gorm.io/gorm"
)

// User 顾客账号表
type User struct {
	ID           uint           `gorm:"primarykey" json:"id"`                                   // 主键
	Email        string         `gorm:"uniqueIndex;not null" json:"email"`                      // 登录邮箱（小写）
	PasswordHash string         `gorm:"not null" json:"-"`                                      // 密码哈希
	FirstName    string         `gorm:"type:varchar(100);not null" json:"first_name"`           // 名
	LastName     string         `gorm:"type:varchar(100);not null" json:"last_name"`            // 姓
	TokenVersion uint64         `gorm:"not null;default:0" json:"-"`                            // Token 版本（修改密码后递增）
	LastLoginAt  *time.Time     `json:"last_login_at"`                                          // 最后登录时间
	CreatedAt    time.Time      `gorm:"index" json:"created_at"`                                // 创建时间
	UpdatedAt    time.Time      `json:"updated_at"`                                             // 更新时间
	DeletedAt    gorm.DeletedAt `gorm:"index" json:"-"`                                         // 软删除时间
	Favorites    []UserFavorite `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"-"` // 收藏
}

// TableName 指定表名
func (User) TableName() string {
	return "users"
}

// DisplayName 展示名称，未填写姓名时退化为邮箱
func (u User) DisplayName() string {
	switch {
	case u.FirstName != "" && u.LastName != "":
		return u.FirstName + " " + u.LastName
	case u.FirstName != "":
		return u.FirstName
	}
	return u.Email
}
