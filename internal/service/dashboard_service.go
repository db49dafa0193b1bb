package service

import (
	"github.com/aurora-mall/internal/models"
	"github.com/aurora-mall/internal/repository"
)

const dashboardRecentOrderLimit = 5

// DashboardService 仪表盘服务
// 说明：聚合后台首页核心经营数据。
type DashboardService struct {
	repo repository.DashboardRepository
}

// NewDashboardService 创建仪表盘服务
func NewDashboardService(repo repository.DashboardRepository) *DashboardService {
	return &DashboardService{repo: repo}
}

// DashboardRecentOrder 最近订单条目
type DashboardRecentOrder struct {
	ID        uint         `json:"id"`
	OrderNo   string       `json:"order_no"`
	Total     models.Money `json:"total"`
	Status    string       `json:"status"`
	CreatedAt string       `json:"created_at"`
	UserName  string       `json:"user_name"`
	UserEmail string       `json:"user_email"`
}

// DashboardStats 仪表盘统计响应
type DashboardStats struct {
	TotalOrders   int64                  `json:"total_orders"`
	TotalRevenue  models.Money           `json:"total_revenue"`
	TotalUsers    int64                  `json:"total_users"`
	PendingOrders int64                  `json:"pending_orders"`
	RecentOrders  []DashboardRecentOrder `json:"recent_orders"`
}

// GetStats 获取仪表盘统计
func (s *DashboardService) GetStats() (*DashboardStats, error) {
	overview, err := s.repo.GetOverview()
	if err != nil {
		return nil, err
	}
	recent, err := s.repo.GetRecentOrders(dashboardRecentOrderLimit)
	if err != nil {
		return nil, err
	}

	recentOrders := make([]DashboardRecentOrder, 0, len(recent))
	for _, order := range recent {
		entry := DashboardRecentOrder{
			ID:        order.ID,
			OrderNo:   order.OrderNo,
			Total:     order.Total,
			Status:    order.Status,
			CreatedAt: order.CreatedAt.Format("2006-01-02 15:04:05"),
		}
		if order.User != nil {
			entry.UserName = order.User.Name
			entry.UserEmail = order.User.Email
		}
		recentOrders = append(recentOrders, entry)
	}

	return &DashboardStats{
		TotalOrders:   overview.TotalOrders,
		TotalRevenue:  models.NewMoneyFromFloat(overview.TotalRevenue),
		TotalUsers:    overview.TotalUsers,
		PendingOrders: overview.PendingOrders,
		RecentOrders:  recentOrders,
	}, nil
}
