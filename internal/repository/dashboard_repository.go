package repository

import (
	"github.com/aurora-mall/internal/constants"
	"github.com/aurora-mall/internal/models"

	"gorm.io/gorm"
)

// DashboardRepository 仪表盘聚合查询接口
// 说明：仅聚合统计数据，不承载业务规则。
type DashboardRepository interface {
	GetOverview() (DashboardOverviewRow, error)
	GetRecentOrders(limit int) ([]models.Order, error)
}

// DashboardOverviewRow 仪表盘总览原始统计结果
type DashboardOverviewRow struct {
	TotalOrders   int64
	TotalRevenue  float64
	TotalUsers    int64
	PendingOrders int64
}

// GormDashboardRepository GORM 仪表盘聚合实现
type GormDashboardRepository struct {
	db *gorm.DB
}

// NewDashboardRepository 创建仪表盘仓库
func NewDashboardRepository(db *gorm.DB) *GormDashboardRepository {
	return &GormDashboardRepository{db: db}
}

// GetOverview 获取总览统计
func (r *GormDashboardRepository) GetOverview() (DashboardOverviewRow, error) {
	result := DashboardOverviewRow{}

	if err := r.db.Model(&models.Order{}).Count(&result.TotalOrders).Error; err != nil {
		return result, err
	}

	// 营收不含已取消订单
	var revenue struct {
		Total float64
	}
	if err := r.db.Model(&models.Order{}).
		Select("COALESCE(SUM(total), 0) AS total").
		Where("status <> ?", constants.OrderStatusCancelled).
		Take(&revenue).Error; err != nil {
		return result, err
	}
	result.TotalRevenue = revenue.Total

	if err := r.db.Model(&models.User{}).
		Where("role = ?", constants.UserRoleUser).
		Count(&result.TotalUsers).Error; err != nil {
		return result, err
	}

	if err := r.db.Model(&models.Order{}).
		Where("status = ?", constants.OrderStatusPending).
		Count(&result.PendingOrders).Error; err != nil {
		return result, err
	}

	return result, nil
}

// GetRecentOrders 获取最近订单（含下单用户）
func (r *GormDashboardRepository) GetRecentOrders(limit int) ([]models.Order, error) {
	if limit <= 0 {
		limit = 5
	}
	var orders []models.Order
	if err := r.db.Preload("User").Order("created_at desc").Limit(limit).Find(&orders).Error; err != nil {
		return nil, err
	}
	return orders, nil
}
