package models

import (
	"time"
)

// Order 订单表
type Order struct {
	ID              uint      `gorm:"primarykey" json:"id"`                                           // 主键
	OrderNo         string    `gorm:"uniqueIndex;not null" json:"order_no"`                           // 订单编号
	UserID          uint      `gorm:"index;not null" json:"user_id"`                                  // 用户ID
	Status          string    `gorm:"index;not null;default:'pending'" json:"status"`                 // 订单状态
	PaymentStatus   string    `gorm:"index;not null;default:'pending'" json:"payment_status"`         // 支付状态（独立于订单状态）
	PaymentMethod   string    `gorm:"type:varchar(50);not null" json:"payment_method"`                // 支付方式
	TrackingNumber  string    `gorm:"type:varchar(100)" json:"tracking_number"`                       // 物流单号
	Subtotal        Money     `gorm:"type:decimal(20,2);not null;default:0" json:"subtotal"`          // 商品小计
	Tax             Money     `gorm:"type:decimal(20,2);not null;default:0" json:"tax"`               // 税费
	Shipping        Money     `gorm:"type:decimal(20,2);not null;default:0" json:"shipping"`          // 运费
	Discount        Money     `gorm:"type:decimal(20,2);not null;default:0" json:"discount"`          // 优惠金额
	Total           Money     `gorm:"type:decimal(20,2);not null;default:0" json:"total"`             // 实付金额
	CouponID        *uint     `gorm:"index" json:"coupon_id,omitempty"`                               // 优惠券ID
	CouponCode      string    `gorm:"type:varchar(50)" json:"coupon_code,omitempty"`                  // 优惠码快照
	ShippingAddress JSON      `gorm:"type:json;not null" json:"shipping_address"`                     // 收货地址快照
	CreatedAt       time.Time `gorm:"index" json:"created_at"`                                        // 创建时间
	UpdatedAt       time.Time `gorm:"index" json:"updated_at"`                                        // 更新时间

	// 关联
	Items []OrderItem `gorm:"foreignKey:OrderID" json:"items,omitempty"` // 订单项
	User  *User       `gorm:"foreignKey:UserID" json:"user,omitempty"`   // 下单用户
}

// TableName 指定表名
func (Order) TableName() string {
	return "orders"
}
