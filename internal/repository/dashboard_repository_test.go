package repository

import (
	"fmt"
	"testing"
	"time"

	"github.com/aurora-mall/internal/constants"
	"github.com/aurora-mall/internal/models"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
)

func setupDashboardRepositoryTest(t *testing.T) (*GormDashboardRepository, *gorm.DB) {
	t.Helper()
	dsn := fmt.Sprintf("file:dashboard_repository_test_%d?mode=memory&cache=shared", time.Now().UnixNano())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite failed: %v", err)
	}
	if err := db.AutoMigrate(&models.User{}, &models.Order{}, &models.OrderItem{}); err != nil {
		t.Fatalf("migrate dashboard models failed: %v", err)
	}
	return NewDashboardRepository(db), db
}

func seedDashboardUser(t *testing.T, db *gorm.DB, email, role string) *models.User {
	t.Helper()
	user := models.User{
		Name:         "Dashboard User",
		Email:        email,
		PasswordHash: "x",
		Role:         role,
		Status:       constants.UserStatusActive,
		IsVerified:   true,
	}
	if err := db.Create(&user).Error; err != nil {
		t.Fatalf("create user failed: %v", err)
	}
	return &user
}

func TestDashboardOverviewAggregates(t *testing.T) {
	repo, db := setupDashboardRepositoryTest(t)

	shopper := seedDashboardUser(t, db, "shopper@example.com", constants.UserRoleUser)
	seedDashboardUser(t, db, "admin@example.com", constants.UserRoleAdmin)

	orders := []models.Order{
		{OrderNo: "DB-001", UserID: shopper.ID, Status: constants.OrderStatusPending, PaymentStatus: constants.PaymentStatusPending, PaymentMethod: constants.PaymentMethodCard, Total: models.NewMoneyFromFloat(30), ShippingAddress: models.JSON{}},
		{OrderNo: "DB-002", UserID: shopper.ID, Status: constants.OrderStatusDelivered, PaymentStatus: constants.PaymentStatusPaid, PaymentMethod: constants.PaymentMethodCard, Total: models.NewMoneyFromFloat(70), ShippingAddress: models.JSON{}},
		{OrderNo: "DB-003", UserID: shopper.ID, Status: constants.OrderStatusCancelled, PaymentStatus: constants.PaymentStatusPending, PaymentMethod: constants.PaymentMethodCard, Total: models.NewMoneyFromFloat(400), ShippingAddress: models.JSON{}},
	}
	for i := range orders {
		if err := db.Create(&orders[i]).Error; err != nil {
			t.Fatalf("create order failed: %v", err)
		}
	}

	overview, err := repo.GetOverview()
	if err != nil {
		t.Fatalf("get overview failed: %v", err)
	}
	if overview.TotalOrders != 3 {
		t.Fatalf("total orders want 3 got %d", overview.TotalOrders)
	}
	if overview.TotalRevenue != 100 {
		t.Fatalf("revenue should skip cancelled orders, want 100 got %v", overview.TotalRevenue)
	}
	if overview.PendingOrders != 1 {
		t.Fatalf("pending orders want 1 got %d", overview.PendingOrders)
	}
	if overview.TotalUsers != 1 {
		t.Fatalf("admin accounts should not count as users, want 1 got %d", overview.TotalUsers)
	}
}

func TestDashboardRecentOrdersLimitAndPreload(t *testing.T) {
	repo, db := setupDashboardRepositoryTest(t)
	shopper := seedDashboardUser(t, db, "shopper@example.com", constants.UserRoleUser)

	base := time.Now().Add(-time.Hour)
	for i := 0; i < 7; i++ {
		order := models.Order{
			OrderNo:         fmt.Sprintf("DB-RECENT-%02d", i),
			UserID:          shopper.ID,
			Status:          constants.OrderStatusPending,
			PaymentStatus:   constants.PaymentStatusPending,
			PaymentMethod:   constants.PaymentMethodCard,
			Total:           models.NewMoneyFromFloat(float64(10 + i)),
			ShippingAddress: models.JSON{},
		}
		if err := db.Create(&order).Error; err != nil {
			t.Fatalf("create order failed: %v", err)
		}
		order.CreatedAt = base.Add(time.Duration(i) * time.Minute)
		if err := db.Save(&order).Error; err != nil {
			t.Fatalf("adjust order time failed: %v", err)
		}
	}

	recent, err := repo.GetRecentOrders(3)
	if err != nil {
		t.Fatalf("get recent orders failed: %v", err)
	}
	if len(recent) != 3 {
		t.Fatalf("recent orders want 3 got %d", len(recent))
	}
	if recent[0].OrderNo != "DB-RECENT-06" {
		t.Fatalf("newest first, want DB-RECENT-06 got %s", recent[0].OrderNo)
	}
	if recent[0].User == nil || recent[0].User.Email != shopper.Email {
		t.Fatalf("recent order should preload user")
	}

	recent, err = repo.GetRecentOrders(0)
	if err != nil {
		t.Fatalf("get recent orders with zero limit failed: %v", err)
	}
	if len(recent) != 5 {
		t.Fatalf("zero limit should fall back to default, want 5 got %d", len(recent))
	}
}
