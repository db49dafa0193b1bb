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

func setupCategoryServiceTest(t *testing.T) (*CategoryService, *gorm.DB) {
	t.Helper()
	dsn := fmt.Sprintf("file:category_service_test_%d?mode=memory&cache=shared", time.Now().UnixNano())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite failed: %v", err)
	}
	if err := db.AutoMigrate(&models.Category{}, &models.Product{}); err != nil {
		t.Fatalf("auto migrate failed: %v", err)
	}
	models.DB = db
	return NewCategoryService(repository.NewCategoryRepository(db)), db
}

func TestCategoryCreateRejectsDuplicateName(t *testing.T) {
	svc, _ := setupCategoryServiceTest(t)

	created, err := svc.Create(CategoryInput{Name: " Electronics ", Description: "gadgets"})
	if err != nil {
		t.Fatalf("create category failed: %v", err)
	}
	if created.Name != "Electronics" {
		t.Fatalf("expected trimmed name, got %q", created.Name)
	}

	if _, err := svc.Create(CategoryInput{Name: "Electronics"}); !errors.Is(err, ErrCategoryExists) {
		t.Fatalf("expected ErrCategoryExists, got %v", err)
	}
	if _, err := svc.Create(CategoryInput{Name: "   "}); !errors.Is(err, ErrInvalidParams) {
		t.Fatalf("expected ErrInvalidParams for blank name, got %v", err)
	}
}

func TestCategoryUpdate(t *testing.T) {
	svc, _ := setupCategoryServiceTest(t)

	first, err := svc.Create(CategoryInput{Name: "Electronics"})
	if err != nil {
		t.Fatalf("create category failed: %v", err)
	}
	second, err := svc.Create(CategoryInput{Name: "Clothing"})
	if err != nil {
		t.Fatalf("create category failed: %v", err)
	}

	if _, err := svc.Update(second.ID, CategoryInput{Name: "Electronics"}); !errors.Is(err, ErrCategoryExists) {
		t.Fatalf("expected ErrCategoryExists on rename collision, got %v", err)
	}

	updated, err := svc.Update(first.ID, CategoryInput{Name: "Electronics", Description: "phones and more"})
	if err != nil {
		t.Fatalf("update with unchanged name failed: %v", err)
	}
	if updated.Description != "phones and more" {
		t.Fatalf("expected description update, got %q", updated.Description)
	}

	if _, err := svc.Update(9999, CategoryInput{Name: "Books"}); !errors.Is(err, ErrCategoryNotFound) {
		t.Fatalf("expected ErrCategoryNotFound, got %v", err)
	}
}

func TestCategoryDeleteBlockedByProducts(t *testing.T) {
	svc, db := setupCategoryServiceTest(t)

	category, err := svc.Create(CategoryInput{Name: "Electronics"})
	if err != nil {
		t.Fatalf("create category failed: %v", err)
	}
	product := models.Product{
		CategoryID: category.ID,
		Title:      "Smart Watch",
		Price:      models.NewMoneyFromFloat(199.99),
		Stock:      5,
		Status:     constants.ProductStatusActive,
	}
	if err := db.Create(&product).Error; err != nil {
		t.Fatalf("seed product failed: %v", err)
	}

	if err := svc.Delete(category.ID); !errors.Is(err, ErrCategoryInUse) {
		t.Fatalf("expected ErrCategoryInUse, got %v", err)
	}

	if err := db.Delete(&product).Error; err != nil {
		t.Fatalf("remove product failed: %v", err)
	}
	if err := svc.Delete(category.ID); err != nil {
		t.Fatalf("delete category failed: %v", err)
	}
	if _, err := svc.Get(category.ID); !errors.Is(err, ErrCategoryNotFound) {
		t.Fatalf("expected ErrCategoryNotFound after delete, got %v", err)
	}
}
