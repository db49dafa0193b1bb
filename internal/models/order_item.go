package models

import (
	"time"
)

// OrderItem 订单项表，下单时快照商品标题与单价
type OrderItem struct {
	ID        uint      `gorm:"primarykey" json:"id"`                                     // 主键
	OrderID   uint      `gorm:"index;not null" json:"order_id"`                           // 订单ID
	ProductID uint      `gorm:"index;not null" json:"product_id"`                         // 商品ID
	Title     string    `gorm:"not null" json:"title"`                                    // 商品标题快照
	UnitPrice Money     `gorm:"type:decimal(20,2);not null;default:0" json:"unit_price"`  // 单价快照
	Quantity  int       `gorm:"not null" json:"quantity"`                                 // 数量
	Color     string    `gorm:"type:varchar(50);not null;default:''" json:"color"`        // 颜色
	Size      string    `gorm:"type:varchar(50);not null;default:''" json:"size"`         // 尺码
	CreatedAt time.Time `gorm:"index" json:"created_at"`                                  // 创建时间

	Product *Product `gorm:"foreignKey:ProductID" json:"product,omitempty"` // 关联商品
}

// TableName 指定表名
func (OrderItem) TableName() string {
	return "order_items"
}
