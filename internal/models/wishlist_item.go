package models

import (
	"time"
)

// WishlistItem 心愿单项，按（用户、商品）唯一
type WishlistItem struct {
	ID        uint      `gorm:"primarykey" json:"id"`                                              // 主键
	UserID    uint      `gorm:"not null;uniqueIndex:idx_wishlist_user_product" json:"user_id"`     // 用户ID
	ProductID uint      `gorm:"not null;uniqueIndex:idx_wishlist_user_product" json:"product_id"`  // 商品ID
	CreatedAt time.Time `gorm:"index" json:"created_at"`                                           // 创建时间

	Product *Product `gorm:"foreignKey:ProductID" json:"product,omitempty"` // 关联商品
}

// TableName 指定表名
func (WishlistItem) TableName() string {
	return "wishlist_items"
}
