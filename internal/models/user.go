package models

import (
	"time"
)

// User 用户表
type User struct {
	ID                     uint       `gorm:"primarykey" json:"id"`                  // 主键
	Name                   string     `gorm:"not null" json:"name"`                  // 姓名
	Email                  string     `gorm:"uniqueIndex;not null" json:"email"`     // 邮箱
	PasswordHash           string     `gorm:"not null" json:"-"`                     // 密码哈希（不返回给前端）
	Role                   string     `gorm:"default:'user';index" json:"role"`      // 角色（user/admin）
	Status                 string     `gorm:"default:'active'" json:"status"`        // 账号状态
	IsVerified             bool       `gorm:"default:false" json:"is_verified"`      // 邮箱是否已验证
	VerificationToken      string     `gorm:"index" json:"-"`                        // 邮箱验证令牌
	ResetPasswordToken     string     `gorm:"index" json:"-"`                        // 密码重置令牌
	ResetPasswordExpiresAt *time.Time `json:"-"`                                     // 密码重置令牌过期时间
	LastLoginAt            *time.Time `json:"last_login_at"`                         // 最后登录时间
	CreatedAt              time.Time  `gorm:"index" json:"created_at"`               // 创建时间
	UpdatedAt              time.Time  `gorm:"index" json:"updated_at"`               // 更新时间

	Addresses []Address `gorm:"foreignKey:UserID" json:"addresses,omitempty"` // 收货地址
}

// TableName 指定表名
func (User) TableName() string {
	return "users"
}
