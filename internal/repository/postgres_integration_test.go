//go:build integration
// +build integration

package repository

import (
	"os"
	"strings"
	"testing"

	"github.com/aurora-mall/internal/constants"
	"github.com/aurora-mall/internal/models"

	"github.com/shopspring/decimal"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// setupPostgresIntegrationDB 初始化 PostgreSQL 集成测试数据库。
func setupPostgresIntegrationDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := strings.TrimSpace(os.Getenv("TEST_POSTGRES_DSN"))
	if dsn == "" {
		t.Skip("skip postgres integration test: TEST_POSTGRES_DSN is empty")
	}

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open postgres failed: %v", err)
	}

	cleanupModels := []interface{}{
		&models.OrderItem{},
		&models.Order{},
		&models.Product{},
		&models.Category{},
		&models.User{},
	}
	_ = db.Migrator().DropTable(cleanupModels...)

	if err := db.AutoMigrate(
		&models.User{},
		&models.Category{},
		&models.Product{},
		&models.Order{},
		&models.OrderItem{},
	); err != nil {
		t.Fatalf("migrate postgres models failed: %v", err)
	}

	t.Cleanup(func() {
		_ = db.Migrator().DropTable(cleanupModels...)
		sqlDB, err := db.DB()
		if err == nil {
			_ = sqlDB.Close()
		}
	})

	return db
}

func TestPostgresProductSearchCaseInsensitive(t *testing.T) {
	db := setupPostgresIntegrationDB(t)

	category := &models.Category{Name: "pg-electronics"}
	if err := db.Create(category).Error; err != nil {
		t.Fatalf("create category failed: %v", err)
	}

	productRepo := NewProductRepository(db)
	product := &models.Product{
		CategoryID:  category.ID,
		Title:       "Rocket Booster Power Bank",
		Description: "fast charging travel companion",
		Price:       models.NewMoneyFromDecimal(decimal.NewFromInt(99)),
		Stock:       10,
		Status:      constants.ProductStatusActive,
	}
	if err := productRepo.Create(product); err != nil {
		t.Fatalf("create product failed: %v", err)
	}

	rows, total, err := productRepo.List(ProductListFilter{
		Page:   1,
		Search: "rocket booster",
	})
	if err != nil {
		t.Fatalf("product search failed: %v", err)
	}
	if total != 1 || len(rows) != 1 {
		t.Fatalf("case-insensitive title search want 1 got total=%d len=%d", total, len(rows))
	}

	rows, total, err = productRepo.List(ProductListFilter{
		Page:   1,
		Search: "TRAVEL COMPANION",
	})
	if err != nil {
		t.Fatalf("product search failed: %v", err)
	}
	if total != 1 || len(rows) != 1 {
		t.Fatalf("case-insensitive description search want 1 got total=%d len=%d", total, len(rows))
	}
}

func TestPostgresDashboardQueries(t *testing.T) {
	db := setupPostgresIntegrationDB(t)
	repo := NewDashboardRepository(db)

	user := &models.User{
		Name:         "pg-shopper",
		Email:        "pg-shopper@example.com",
		PasswordHash: "x",
		Role:         constants.UserRoleUser,
		Status:       constants.UserStatusActive,
		IsVerified:   true,
	}
	if err := db.Create(user).Error; err != nil {
		t.Fatalf("create user failed: %v", err)
	}

	orders := []models.Order{
		{
			OrderNo:       "PG-ORDER-001",
			UserID:        user.ID,
			Status:        constants.OrderStatusPending,
			PaymentStatus: constants.PaymentStatusPending,
			PaymentMethod: constants.PaymentMethodCard,
			Total:         models.NewMoneyFromDecimal(decimal.NewFromInt(120)),
		},
		{
			OrderNo:       "PG-ORDER-002",
			UserID:        user.ID,
			Status:        constants.OrderStatusCancelled,
			PaymentStatus: constants.PaymentStatusPending,
			PaymentMethod: constants.PaymentMethodCard,
			Total:         models.NewMoneyFromDecimal(decimal.NewFromInt(999)),
		},
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
	if overview.TotalOrders != 2 {
		t.Fatalf("total orders want 2 got %d", overview.TotalOrders)
	}
	if overview.TotalRevenue != 120 {
		t.Fatalf("revenue should exclude cancelled orders, want 120 got %v", overview.TotalRevenue)
	}
	if overview.PendingOrders != 1 {
		t.Fatalf("pending orders want 1 got %d", overview.PendingOrders)
	}
	if overview.TotalUsers != 1 {
		t.Fatalf("total users want 1 got %d", overview.TotalUsers)
	}

	recent, err := repo.GetRecentOrders(5)
	if err != nil {
		t.Fatalf("get recent orders failed: %v", err)
	}
	if len(recent) != 2 {
		t.Fatalf("recent orders want 2 got %d", len(recent))
	}
	if recent[0].User == nil || recent[0].User.Email != user.Email {
		t.Fatalf("recent order should preload user, got %+v", recent[0].User)
	}
}
