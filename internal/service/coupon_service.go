package service

import (
	"fmt"
	"strings"
	"time"

	"github.com/aurora-mall/internal/constants"
	"github.com/aurora-mall/internal/models"
	"github.com/aurora-mall/internal/repository"

	"github.com/shopspring/decimal"
)

// CouponMinAmountError 未达使用门槛错误，携带门槛金额用于提示
type CouponMinAmountError struct {
	MinAmount models.Money
}

// Error 实现 error 接口
func (e *CouponMinAmountError) Error() string {
	return fmt.Sprintf("minimum order amount of %s required", e.MinAmount.String())
}

// CouponService 优惠券服务
type CouponService struct {
	couponRepo repository.CouponRepository
}

// NewCouponService 创建优惠券服务
func NewCouponService(couponRepo repository.CouponRepository) *CouponService {
	return &CouponService{couponRepo: couponRepo}
}

// ApplyCoupon 校验优惠码并计算折扣金额
// 未知、停用、过期、用尽统一返回 ErrCouponInvalid，不暴露具体原因
func (s *CouponService) ApplyCoupon(subtotal models.Money, code string) (models.Money, *models.Coupon, error) {
	trimmed := strings.ToUpper(strings.TrimSpace(code))
	if trimmed == "" {
		return models.Money{}, nil, ErrCouponInvalid
	}

	coupon, err := s.couponRepo.GetByCode(trimmed)
	if err != nil {
		return models.Money{}, nil, err
	}
	if coupon == nil {
		return models.Money{}, nil, ErrCouponInvalid
	}
	if !coupon.IsActive {
		return models.Money{}, coupon, ErrCouponInvalid
	}
	if coupon.ExpiresAt != nil && time.Now().After(*coupon.ExpiresAt) {
		return models.Money{}, coupon, ErrCouponInvalid
	}
	if coupon.UsageLimit > 0 && coupon.UsedCount >= coupon.UsageLimit {
		return models.Money{}, coupon, ErrCouponInvalid
	}

	if subtotal.Decimal.Cmp(coupon.MinAmount.Decimal) < 0 {
		return models.Money{}, coupon, &CouponMinAmountError{MinAmount: coupon.MinAmount}
	}

	// 固定金额券可超过小计，订单合计由下单侧兜底不为负
	discount, err := s.calculateDiscount(coupon, subtotal)
	if err != nil {
		return models.Money{}, coupon, err
	}

	return discount, coupon, nil
}

func (s *CouponService) calculateDiscount(coupon *models.Coupon, subtotal models.Money) (models.Money, error) {
	switch strings.ToLower(strings.TrimSpace(coupon.Type)) {
	case constants.CouponTypeFixed:
		if coupon.Value.Decimal.LessThanOrEqual(decimal.Zero) {
			return models.Money{}, ErrCouponInvalid
		}
		return models.NewMoneyFromDecimal(coupon.Value.Decimal), nil
	case constants.CouponTypePercentage:
		if coupon.Value.Decimal.LessThanOrEqual(decimal.Zero) {
			return models.Money{}, ErrCouponInvalid
		}
		percent := coupon.Value.Decimal.Div(decimal.NewFromInt(100))
		discount := subtotal.Decimal.Mul(percent)
		if coupon.MaxDiscount.Decimal.GreaterThan(decimal.Zero) && discount.GreaterThan(coupon.MaxDiscount.Decimal) {
			discount = coupon.MaxDiscount.Decimal
		}
		return models.NewMoneyFromDecimal(discount), nil
	default:
		return models.Money{}, ErrCouponInvalid
	}
}
