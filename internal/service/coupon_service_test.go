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
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

func setupCouponServiceTest(t *testing.T) (*CouponService, *gorm.DB) {
	t.Helper()
	dsn := fmt.Sprintf("file:coupon_service_test_%d?mode=memory&cache=shared", time.Now().UnixNano())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite failed: %v", err)
	}
	if err := db.AutoMigrate(&models.Coupon{}); err != nil {
		t.Fatalf("auto migrate failed: %v", err)
	}
	return NewCouponService(repository.NewCouponRepository(db)), db
}

func seedCoupon(t *testing.T, db *gorm.DB, coupon models.Coupon) *models.Coupon {
	t.Helper()
	wantActive := coupon.IsActive
	if err := db.Create(&coupon).Error; err != nil {
		t.Fatalf("seed coupon failed: %v", err)
	}
	// IsActive 带有 default:true，GORM 插入时会忽略零值 false，需显式落库
	if !wantActive {
		if err := db.Model(&coupon).Update("is_active", false).Error; err != nil {
			t.Fatalf("seed coupon failed: %v", err)
		}
	}
	return &coupon
}

func TestApplyCouponFixed(t *testing.T) {
	svc, db := setupCouponServiceTest(t)
	seedCoupon(t, db, models.Coupon{
		Code:     "FLAT15",
		Type:     constants.CouponTypeFixed,
		Value:    models.NewMoneyFromFloat(15),
		IsActive: true,
	})

	discount, coupon, err := svc.ApplyCoupon(models.NewMoneyFromFloat(100), "flat15")
	if err != nil {
		t.Fatalf("apply coupon failed: %v", err)
	}
	if coupon == nil || coupon.Code != "FLAT15" {
		t.Fatalf("unexpected coupon: %+v", coupon)
	}
	if !discount.Decimal.Equal(decimal.NewFromInt(15)) {
		t.Fatalf("discount want 15 got %s", discount.String())
	}
}

func TestApplyCouponFixedIndependentOfSubtotal(t *testing.T) {
	svc, db := setupCouponServiceTest(t)
	seedCoupon(t, db, models.Coupon{
		Code:     "BIG50",
		Type:     constants.CouponTypeFixed,
		Value:    models.NewMoneyFromFloat(50),
		IsActive: true,
	})

	// 固定金额券不随小计缩水，可超过小计
	discount, _, err := svc.ApplyCoupon(models.NewMoneyFromFloat(30), "BIG50")
	if err != nil {
		t.Fatalf("apply coupon failed: %v", err)
	}
	if !discount.Decimal.Equal(decimal.NewFromInt(50)) {
		t.Fatalf("discount want 50 got %s", discount.String())
	}
}

func TestApplyCouponPercentageCap(t *testing.T) {
	svc, db := setupCouponServiceTest(t)
	seedCoupon(t, db, models.Coupon{
		Code:        "PCT20",
		Type:        constants.CouponTypePercentage,
		Value:       models.NewMoneyFromFloat(20),
		MaxDiscount: models.NewMoneyFromFloat(25),
		IsActive:    true,
	})

	// 20% of 100 = 20，未触达封顶
	discount, _, err := svc.ApplyCoupon(models.NewMoneyFromFloat(100), "PCT20")
	if err != nil {
		t.Fatalf("apply coupon failed: %v", err)
	}
	if !discount.Decimal.Equal(decimal.NewFromInt(20)) {
		t.Fatalf("discount want 20 got %s", discount.String())
	}

	// 20% of 200 = 40，封顶 25
	discount, _, err = svc.ApplyCoupon(models.NewMoneyFromFloat(200), "PCT20")
	if err != nil {
		t.Fatalf("apply coupon failed: %v", err)
	}
	if !discount.Decimal.Equal(decimal.NewFromInt(25)) {
		t.Fatalf("discount want 25 got %s", discount.String())
	}
}

func TestApplyCouponMinAmount(t *testing.T) {
	svc, db := setupCouponServiceTest(t)
	seedCoupon(t, db, models.Coupon{
		Code:      "MIN50",
		Type:      constants.CouponTypeFixed,
		Value:     models.NewMoneyFromFloat(10),
		MinAmount: models.NewMoneyFromFloat(50),
		IsActive:  true,
	})

	_, _, err := svc.ApplyCoupon(models.NewMoneyFromFloat(49.99), "MIN50")
	var minErr *CouponMinAmountError
	if !errors.As(err, &minErr) {
		t.Fatalf("expected CouponMinAmountError, got %v", err)
	}
	if !minErr.MinAmount.Decimal.Equal(decimal.NewFromInt(50)) {
		t.Fatalf("min amount want 50 got %s", minErr.MinAmount.String())
	}

	if _, _, err := svc.ApplyCoupon(models.NewMoneyFromFloat(50), "MIN50"); err != nil {
		t.Fatalf("subtotal at threshold should pass, got %v", err)
	}
}

func TestApplyCouponGenericRejection(t *testing.T) {
	svc, db := setupCouponServiceTest(t)
	expired := time.Now().Add(-time.Hour)
	seedCoupon(t, db, models.Coupon{
		Code:      "EXPIRED",
		Type:      constants.CouponTypeFixed,
		Value:     models.NewMoneyFromFloat(5),
		IsActive:  true,
		ExpiresAt: &expired,
	})
	seedCoupon(t, db, models.Coupon{
		Code:     "DISABLED",
		Type:     constants.CouponTypeFixed,
		Value:    models.NewMoneyFromFloat(5),
		IsActive: false,
	})
	seedCoupon(t, db, models.Coupon{
		Code:       "USEDUP",
		Type:       constants.CouponTypeFixed,
		Value:      models.NewMoneyFromFloat(5),
		UsageLimit: 3,
		UsedCount:  3,
		IsActive:   true,
	})

	// 未知、停用、过期、用尽：统一返回同一个错误
	for _, code := range []string{"NOPE", "EXPIRED", "DISABLED", "USEDUP", ""} {
		if _, _, err := svc.ApplyCoupon(models.NewMoneyFromFloat(100), code); !errors.Is(err, ErrCouponInvalid) {
			t.Fatalf("code %q: expected ErrCouponInvalid, got %v", code, err)
		}
	}
}
