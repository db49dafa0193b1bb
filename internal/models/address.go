package models

import (
	"time"
)

// Address 收货地址表
type Address struct {
	ID        uint      `gorm:"primarykey" json:"id"`                    // 主键
	UserID    uint      `gorm:"not null;index" json:"user_id"`           // 用户ID
	Name      string    `gorm:"not null" json:"name"`                    // 收件人姓名
	Street    string    `gorm:"not null" json:"street"`                  // 街道
	City      string    `gorm:"not null" json:"city"`                    // 城市
	State     string    `gorm:"not null" json:"state"`                   // 省/州
	ZipCode   string    `gorm:"not null" json:"zip_code"`                // 邮编
	Country   string    `gorm:"not null" json:"country"`                 // 国家
	IsDefault bool      `gorm:"not null;default:false" json:"is_default"` // 是否默认地址
	CreatedAt time.Time `gorm:"index" json:"created_at"`                 // 创建时间
	UpdatedAt time.Time `json:"updated_at"`                              // 更新时间
}

// TableName 指定表名
func (Address) TableName() string {
	return "addresses"
}

// Snapshot 转为订单上的收货地址快照
func (a Address) Snapshot() JSON {
	return JSON{
		"name":     a.Name,
		"street":   a.Street,
		"city":     a.City,
		"state":    a.State,
		"zip_code": a.ZipCode,
		"country":  a.Country,
	}
}
