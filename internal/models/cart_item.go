package models

import (
	"time"
)

// CartItem 购物车项，按（用户、商品、颜色、尺码）唯一
type CartItem struct {
	ID        uint      `gorm:"primarykey" json:"id"`                                                          // 主键
	UserID    uint      `gorm:"not null;uniqueIndex:idx_cart_user_variant" json:"user_id"`                     // 用户ID
	ProductID uint      `gorm:"not null;uniqueIndex:idx_cart_user_variant" json:"product_id"`                  // 商品ID
	Color     string    `gorm:"type:varchar(50);not null;default:'';uniqueIndex:idx_cart_user_variant" json:"color"` // 颜色（空串表示无）
	Size      string    `gorm:"type:varchar(50);not null;default:'';uniqueIndex:idx_cart_user_variant" json:"size"`  // 尺码（空串表示无）
	Quantity  int       `gorm:"not null" json:"quantity"`                                                      // 数量
	CreatedAt time.Time `gorm:"index" json:"created_at"`                                                       // 创建时间
	UpdatedAt time.Time `json:"updated_at"`                                                                    // 更新时间

	Product *Product `gorm:"foreignKey:ProductID" json:"product,omitempty"` // 关联商品
}

// TableName 指定表名
func (CartItem) TableName() string {
	return "cart_items"
}
