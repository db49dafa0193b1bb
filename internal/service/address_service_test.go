package service

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/aurora-mall/internal/models"
	"github.com/aurora-mall/internal/repository"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
)

func setupAddressServiceTest(t *testing.T) (*AddressService, *gorm.DB) {
	t.Helper()
	dsn := fmt.Sprintf("file:address_service_test_%d?mode=memory&cache=shared", time.Now().UnixNano())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite failed: %v", err)
	}
	if err := db.AutoMigrate(&models.Address{}); err != nil {
		t.Fatalf("auto migrate failed: %v", err)
	}
	models.DB = db
	return NewAddressService(repository.NewAddressRepository(db)), db
}

func sampleAddressInput(isDefault bool) AddressInput {
	return AddressInput{
		Name:      "Alice",
		Street:    "1 Main St",
		City:      "Springfield",
		State:     "IL",
		ZipCode:   "62701",
		Country:   "US",
		IsDefault: isDefault,
	}
}

func TestAddressCreateSwapsDefault(t *testing.T) {
	svc, db := setupAddressServiceTest(t)

	first, err := svc.Create(1, sampleAddressInput(true))
	if err != nil {
		t.Fatalf("create first address failed: %v", err)
	}
	if !first.IsDefault {
		t.Fatalf("first address should be default")
	}

	input := sampleAddressInput(true)
	input.Street = "2 Oak Ave"
	second, err := svc.Create(1, input)
	if err != nil {
		t.Fatalf("create second address failed: %v", err)
	}
	if !second.IsDefault {
		t.Fatalf("second address should be default")
	}

	var defaults int64
	if err := db.Model(&models.Address{}).Where("user_id = ? AND is_default = ?", 1, true).Count(&defaults).Error; err != nil {
		t.Fatalf("count defaults failed: %v", err)
	}
	if defaults != 1 {
		t.Fatalf("expected exactly one default address, got %d", defaults)
	}

	var reloaded models.Address
	if err := db.First(&reloaded, first.ID).Error; err != nil {
		t.Fatalf("reload first address failed: %v", err)
	}
	if reloaded.IsDefault {
		t.Fatalf("first address should have lost default flag")
	}
}

func TestAddressUpdatePromotesDefault(t *testing.T) {
	svc, db := setupAddressServiceTest(t)

	first, err := svc.Create(1, sampleAddressInput(true))
	if err != nil {
		t.Fatalf("create first address failed: %v", err)
	}
	second, err := svc.Create(1, sampleAddressInput(false))
	if err != nil {
		t.Fatalf("create second address failed: %v", err)
	}

	input := sampleAddressInput(true)
	input.City = "Shelbyville"
	updated, err := svc.Update(1, second.ID, input)
	if err != nil {
		t.Fatalf("update address failed: %v", err)
	}
	if !updated.IsDefault {
		t.Fatalf("updated address should be default")
	}
	if updated.City != "Shelbyville" {
		t.Fatalf("expected city update, got %q", updated.City)
	}

	var reloaded models.Address
	if err := db.First(&reloaded, first.ID).Error; err != nil {
		t.Fatalf("reload first address failed: %v", err)
	}
	if reloaded.IsDefault {
		t.Fatalf("previous default should have been cleared")
	}
}

func TestAddressOwnershipScoped(t *testing.T) {
	svc, _ := setupAddressServiceTest(t)

	address, err := svc.Create(1, sampleAddressInput(false))
	if err != nil {
		t.Fatalf("create address failed: %v", err)
	}

	if _, err := svc.Update(2, address.ID, sampleAddressInput(false)); !errors.Is(err, ErrAddressNotFound) {
		t.Fatalf("expected ErrAddressNotFound on cross-user update, got %v", err)
	}
	if err := svc.Delete(2, address.ID); !errors.Is(err, ErrAddressNotFound) {
		t.Fatalf("expected ErrAddressNotFound on cross-user delete, got %v", err)
	}

	list, err := svc.ListByUser(2)
	if err != nil {
		t.Fatalf("list addresses failed: %v", err)
	}
	if len(list) != 0 {
		t.Fatalf("expected empty list for other user, got %d", len(list))
	}

	if err := svc.Delete(1, address.ID); err != nil {
		t.Fatalf("delete address failed: %v", err)
	}
	if err := svc.Delete(1, address.ID); !errors.Is(err, ErrAddressNotFound) {
		t.Fatalf("expected ErrAddressNotFound on second delete, got %v", err)
	}
}

func TestAddressValidation(t *testing.T) {
	svc, _ := setupAddressServiceTest(t)

	input := sampleAddressInput(false)
	input.Street = "   "
	if _, err := svc.Create(1, input); !errors.Is(err, ErrInvalidParams) {
		t.Fatalf("expected ErrInvalidParams for blank street, got %v", err)
	}
	if _, err := svc.Create(0, sampleAddressInput(false)); !errors.Is(err, ErrInvalidParams) {
		t.Fatalf("expected ErrInvalidParams for missing user, got %v", err)
	}
}
