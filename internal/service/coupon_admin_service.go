package service

import (
	"strings"
	"time"

	"github.com/aurora-mall/internal/constants"
	"github.com/aurora-mall/internal/models"
	"github.com/aurora-mall/internal/repository"

	"github.com/shopspring/decimal"
)

// CouponAdminService 优惠券管理服务
type CouponAdminService struct {
	repo repository.CouponRepository
}

// NewCouponAdminService 创建优惠券管理服务
func NewCouponAdminService(repo repository.CouponRepository) *CouponAdminService {
	return &CouponAdminService{repo: repo}
}

// CouponInput 创建/更新优惠券输入
type CouponInput struct {
	Code        string
	Type        string
	Value       models.Money
	MinAmount   models.Money
	MaxDiscount models.Money
	UsageLimit  int
	ExpiresAt   *time.Time
	IsActive    *bool
}

func validateCouponInput(input CouponInput) (string, string, error) {
	code := strings.ToUpper(strings.TrimSpace(input.Code))
	if code == "" {
		return "", "", ErrInvalidParams
	}
	couponType := strings.ToLower(strings.TrimSpace(input.Type))
	if couponType != constants.CouponTypeFixed && couponType != constants.CouponTypePercentage {
		return "", "", ErrInvalidParams
	}
	if input.Value.Decimal.LessThanOrEqual(decimal.Zero) {
		return "", "", ErrInvalidParams
	}
	if couponType == constants.CouponTypePercentage && input.Value.Decimal.GreaterThan(decimal.NewFromInt(100)) {
		return "", "", ErrInvalidParams
	}
	if input.UsageLimit < 0 {
		return "", "", ErrInvalidParams
	}
	return code, couponType, nil
}

// Create 创建优惠券
func (s *CouponAdminService) Create(input CouponInput) (*models.Coupon, error) {
	code, couponType, err := validateCouponInput(input)
	if err != nil {
		return nil, err
	}

	exist, err := s.repo.GetByCode(code)
	if err != nil {
		return nil, err
	}
	if exist != nil {
		return nil, ErrCouponExists
	}

	isActive := true
	if input.IsActive != nil {
		isActive = *input.IsActive
	}

	coupon := &models.Coupon{
		Code:        code,
		Type:        couponType,
		Value:       input.Value,
		MinAmount:   input.MinAmount,
		MaxDiscount: input.MaxDiscount,
		UsageLimit:  input.UsageLimit,
		UsedCount:   0,
		ExpiresAt:   input.ExpiresAt,
		IsActive:    isActive,
	}

	if err := s.repo.Create(coupon); err != nil {
		return nil, err
	}
	return coupon, nil
}

// Update 更新优惠券
func (s *CouponAdminService) Update(id uint, input CouponInput) (*models.Coupon, error) {
	if id == 0 {
		return nil, ErrInvalidParams
	}
	existing, err := s.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if existing == nil {
		return nil, ErrCouponNotFound
	}

	code, couponType, err := validateCouponInput(input)
	if err != nil {
		return nil, err
	}

	if code != existing.Code {
		dup, err := s.repo.GetByCode(code)
		if err != nil {
			return nil, err
		}
		if dup != nil {
			return nil, ErrCouponExists
		}
	}

	isActive := existing.IsActive
	if input.IsActive != nil {
		isActive = *input.IsActive
	}

	existing.Code = code
	existing.Type = couponType
	existing.Value = input.Value
	existing.MinAmount = input.MinAmount
	existing.MaxDiscount = input.MaxDiscount
	existing.UsageLimit = input.UsageLimit
	existing.ExpiresAt = input.ExpiresAt
	existing.IsActive = isActive

	if err := s.repo.Update(existing); err != nil {
		return nil, err
	}
	return existing, nil
}

// Delete 删除优惠券
func (s *CouponAdminService) Delete(id uint) error {
	if id == 0 {
		return ErrInvalidParams
	}
	existing, err := s.repo.GetByID(id)
	if err != nil {
		return err
	}
	if existing == nil {
		return ErrCouponNotFound
	}
	return s.repo.Delete(id)
}

// List 获取优惠券列表
func (s *CouponAdminService) List(filter repository.CouponListFilter) ([]models.Coupon, int64, error) {
	return s.repo.List(filter)
}
