package models

import (
	"time"
)

// Coupon 优惠券
type Coupon struct {
	ID          uint       `gorm:"primarykey" json:"id"`                                      // 主键
	Code        string     `gorm:"uniqueIndex;not null" json:"code"`                          // 优惠码（统一大写）
	Type        string     `gorm:"not null" json:"type"`                                      // 类型（fixed/percentage）
	Value       Money      `gorm:"type:decimal(20,2);not null" json:"value"`                  // 数值（固定金额或百分比）
	MinAmount   Money      `gorm:"type:decimal(20,2);not null;default:0" json:"min_amount"`   // 使用门槛
	MaxDiscount Money      `gorm:"type:decimal(20,2);not null;default:0" json:"max_discount"` // 最大优惠金额（0 表示不封顶，仅百分比）
	UsageLimit  int        `gorm:"not null;default:0" json:"usage_limit"`                     // 总使用上限（0 表示不限制）
	UsedCount   int        `gorm:"not null;default:0" json:"used_count"`                      // 已使用次数
	IsActive    bool       `gorm:"not null;default:true" json:"is_active"`                    // 是否启用
	ExpiresAt   *time.Time `gorm:"index" json:"expires_at"`                                   // 失效时间（为空表示不过期）
	CreatedAt   time.Time  `gorm:"index" json:"created_at"`                                   // 创建时间
	UpdatedAt   time.Time  `gorm:"index" json:"updated_at"`                                   // 更新时间
}

// TableName 指定表名
func (Coupon) TableName() string {
	return "coupons"
}
