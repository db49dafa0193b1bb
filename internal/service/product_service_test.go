package service

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/aurora-mall/internal/constants"
	"github.com/aurora-mall/internal/models"
	"github.com/aurora-mall/internal/repository"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
)

func setupProductServiceTest(t *testing.T) (*ProductService, *gorm.DB) {
	t.Helper()
	dsn := fmt.Sprintf("file:product_service_test_%d?mode=memory&cache=shared", time.Now().UnixNano())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite failed: %v", err)
	}
	if err := db.AutoMigrate(&models.Category{}, &models.Product{}); err != nil {
		t.Fatalf("auto migrate failed: %v", err)
	}
	models.DB = db
	svc := NewProductService(repository.NewProductRepository(db), repository.NewCategoryRepository(db))
	return svc, db
}

func seedProductCategory(t *testing.T, db *gorm.DB) *models.Category {
	t.Helper()
	category := models.Category{Name: fmt.Sprintf("category-%d", time.Now().UnixNano())}
	if err := db.Create(&category).Error; err != nil {
		t.Fatalf("seed category failed: %v", err)
	}
	return &category
}

func TestProductCreateValidation(t *testing.T) {
	svc, db := setupProductServiceTest(t)
	category := seedProductCategory(t, db)

	if _, err := svc.Create(ProductInput{CategoryID: category.ID, Title: "  ", Price: models.NewMoneyFromFloat(10)}); !errors.Is(err, ErrInvalidParams) {
		t.Fatalf("expected ErrInvalidParams for blank title, got %v", err)
	}
	if _, err := svc.Create(ProductInput{CategoryID: category.ID, Title: "Watch", Price: models.NewMoneyFromFloat(0)}); !errors.Is(err, ErrInvalidParams) {
		t.Fatalf("expected ErrInvalidParams for zero price, got %v", err)
	}

	discount := models.NewMoneyFromFloat(25)
	if _, err := svc.Create(ProductInput{CategoryID: category.ID, Title: "Watch", Price: models.NewMoneyFromFloat(20), DiscountPrice: &discount}); !errors.Is(err, ErrInvalidParams) {
		t.Fatalf("expected ErrInvalidParams for discount above price, got %v", err)
	}
	if _, err := svc.Create(ProductInput{CategoryID: 9999, Title: "Watch", Price: models.NewMoneyFromFloat(20)}); !errors.Is(err, ErrCategoryNotFound) {
		t.Fatalf("expected ErrCategoryNotFound, got %v", err)
	}

	created, err := svc.Create(ProductInput{
		CategoryID:  category.ID,
		Title:       " Smart Watch ",
		Description: "fitness tracking",
		Price:       models.NewMoneyFromFloat(199.99),
		Colors:      []string{"black", "silver"},
	})
	if err != nil {
		t.Fatalf("create product failed: %v", err)
	}
	if created.Title != "Smart Watch" {
		t.Fatalf("expected trimmed title, got %q", created.Title)
	}
	if created.Status != constants.ProductStatusActive {
		t.Fatalf("expected default active status, got %q", created.Status)
	}
	if created.Stock != 0 {
		t.Fatalf("expected default zero stock, got %d", created.Stock)
	}
}

func TestProductUpdateNormalizesStatus(t *testing.T) {
	svc, db := setupProductServiceTest(t)
	category := seedProductCategory(t, db)

	created, err := svc.Create(ProductInput{CategoryID: category.ID, Title: "Watch", Price: models.NewMoneyFromFloat(20)})
	if err != nil {
		t.Fatalf("create product failed: %v", err)
	}

	stock := 7
	updated, err := svc.Update(created.ID, ProductInput{
		CategoryID: category.ID,
		Title:      "Watch v2",
		Price:      models.NewMoneyFromFloat(25),
		Stock:      &stock,
		Status:     " INACTIVE ",
	})
	if err != nil {
		t.Fatalf("update product failed: %v", err)
	}
	if updated.Status != constants.ProductStatusInactive {
		t.Fatalf("expected normalized inactive status, got %q", updated.Status)
	}
	if updated.Stock != 7 {
		t.Fatalf("expected stock 7, got %d", updated.Stock)
	}

	// 未提供状态时保留原状态
	updated, err = svc.Update(created.ID, ProductInput{
		CategoryID: category.ID,
		Title:      "Watch v3",
		Price:      models.NewMoneyFromFloat(30),
	})
	if err != nil {
		t.Fatalf("update product failed: %v", err)
	}
	if updated.Status != constants.ProductStatusInactive {
		t.Fatalf("status should be kept when omitted, got %q", updated.Status)
	}
}

func TestProductDeleteIsSoft(t *testing.T) {
	svc, db := setupProductServiceTest(t)
	category := seedProductCategory(t, db)

	created, err := svc.Create(ProductInput{CategoryID: category.ID, Title: "Watch", Price: models.NewMoneyFromFloat(20)})
	if err != nil {
		t.Fatalf("create product failed: %v", err)
	}

	if err := svc.Delete(created.ID); err != nil {
		t.Fatalf("delete product failed: %v", err)
	}
	if err := svc.Delete(9999); !errors.Is(err, ErrProductNotFound) {
		t.Fatalf("expected ErrProductNotFound, got %v", err)
	}

	var stored models.Product
	if err := db.First(&stored, created.ID).Error; err != nil {
		t.Fatalf("deleted product row should survive for order history: %v", err)
	}
	if stored.Status != constants.ProductStatusDeleted {
		t.Fatalf("expected deleted status, got %q", stored.Status)
	}

	if _, err := svc.GetPublic(created.ID); !errors.Is(err, ErrProductNotFound) {
		t.Fatalf("deleted product should be hidden from storefront, got %v", err)
	}
}

func TestProductPublicVisibility(t *testing.T) {
	svc, db := setupProductServiceTest(t)
	category := seedProductCategory(t, db)

	active, err := svc.Create(ProductInput{CategoryID: category.ID, Title: "Visible", Price: models.NewMoneyFromFloat(10)})
	if err != nil {
		t.Fatalf("create product failed: %v", err)
	}
	if _, err := svc.Create(ProductInput{CategoryID: category.ID, Title: "Hidden", Price: models.NewMoneyFromFloat(10), Status: constants.ProductStatusInactive}); err != nil {
		t.Fatalf("create product failed: %v", err)
	}

	rows, total, err := svc.ListPublic(PublicListQuery{Page: 1})
	if err != nil {
		t.Fatalf("list public failed: %v", err)
	}
	if total != 1 || len(rows) != 1 || rows[0].ID != active.ID {
		t.Fatalf("storefront should only list active products, got total=%d", total)
	}

	rows, total, err = svc.ListAdmin(category.ID, "", "", 1, 20)
	if err != nil {
		t.Fatalf("list admin failed: %v", err)
	}
	if total != 2 {
		t.Fatalf("admin list should include inactive products, got total=%d", total)
	}
	if len(rows) != 2 {
		t.Fatalf("admin list rows want 2 got %d", len(rows))
	}
}
