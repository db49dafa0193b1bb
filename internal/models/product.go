package models

import (
	"time"
)

// Product 商品表
type Product struct {
	ID            uint        `gorm:"primarykey" json:"id"`                                       // 主键
	CategoryID    uint        `gorm:"not null;index" json:"category_id"`                          // 分类ID
	Title         string      `gorm:"not null;index" json:"title"`                                // 标题
	Description   string      `gorm:"type:text" json:"description"`                               // 描述
	Price         Money       `gorm:"type:decimal(20,2);not null;default:0" json:"price"`        // 标价
	DiscountPrice *Money      `gorm:"type:decimal(20,2)" json:"discount_price,omitempty"`        // 折扣价（为空表示无折扣）
	Stock         int         `gorm:"not null;default:0" json:"stock"`                            // 库存数量
	Images        StringArray `gorm:"type:json" json:"images"`                                    // 图片数组
	Colors        StringArray `gorm:"type:json" json:"colors"`                                    // 可选颜色
	Sizes         StringArray `gorm:"type:json" json:"sizes"`                                     // 可选尺码
	Featured      bool        `gorm:"default:false;index" json:"featured"`                        // 是否精选
	Status        string      `gorm:"type:varchar(20);not null;default:'active';index" json:"status"` // 状态（active/inactive/deleted）
	CreatedAt     time.Time   `gorm:"index" json:"created_at"`                                    // 创建时间
	UpdatedAt     time.Time   `json:"updated_at"`                                                 // 更新时间

	// 关联
	Category Category `gorm:"foreignKey:CategoryID" json:"category,omitempty"` // 分类信息
}

// TableName 指定表名
func (Product) TableName() string {
	return "products"
}

// EffectivePrice 返回实际售价（有折扣价时取折扣价）
func (p *Product) EffectivePrice() Money {
	if p.DiscountPrice != nil {
		return *p.DiscountPrice
	}
	return p.Price
}
