package admin

import (
	"errors"
	"strconv"
	"strings"
	"time"

	"github.com/aurora-mall/internal/http/response"
	"github.com/aurora-mall/internal/models"
	"github.com/aurora-mall/internal/repository"
	"github.com/aurora-mall/internal/service"

	"github.com/gin-gonic/gin"
)

// CouponRequest 优惠券写入请求
type CouponRequest struct {
	Code        string  `json:"code" binding:"required"`
	Type        string  `json:"type" binding:"required"`
	Value       float64 `json:"value" binding:"required"`
	MinAmount   float64 `json:"min_amount"`
	MaxDiscount float64 `json:"max_discount"`
	UsageLimit  int     `json:"usage_limit"`
	ExpiresAt   string  `json:"expires_at"`
	IsActive    *bool   `json:"is_active"`
}

func (r CouponRequest) toInput() (service.CouponInput, error) {
	expiresAt, err := parseTimeNullable(r.ExpiresAt)
	if err != nil {
		return service.CouponInput{}, err
	}
	return service.CouponInput{
		Code:        r.Code,
		Type:        r.Type,
		Value:       models.NewMoneyFromFloat(r.Value),
		MinAmount:   models.NewMoneyFromFloat(r.MinAmount),
		MaxDiscount: models.NewMoneyFromFloat(r.MaxDiscount),
		UsageLimit:  r.UsageLimit,
		ExpiresAt:   expiresAt,
		IsActive:    r.IsActive,
	}, nil
}

// ListCoupons 优惠券列表
func (h *Handler) ListCoupons(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "20"))
	page, pageSize = normalizePagination(page, pageSize)

	filter := repository.CouponListFilter{
		Page:     page,
		PageSize: pageSize,
		Code:     strings.TrimSpace(c.Query("code")),
	}
	if raw := strings.TrimSpace(c.Query("is_active")); raw != "" {
		active := raw == "true" || raw == "1"
		filter.IsActive = &active
	}

	coupons, total, err := h.CouponAdminService.List(filter)
	if err != nil {
		respondError(c, response.CodeInternal, "fetch coupons failed", err)
		return
	}
	response.SuccessWithPage(c, coupons, response.NewPagination(page, pageSize, total))
}

// CreateCoupon 创建优惠券
func (h *Handler) CreateCoupon(c *gin.Context) {
	var req CouponRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "invalid request body", err)
		return
	}
	input, err := req.toInput()
	if err != nil {
		respondError(c, response.CodeBadRequest, "invalid expires_at", err)
		return
	}

	coupon, err := h.CouponAdminService.Create(input)
	if err != nil {
		respondCouponError(c, err)
		return
	}
	response.Success(c, coupon)
}

// UpdateCoupon 更新优惠券
func (h *Handler) UpdateCoupon(c *gin.Context) {
	couponID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil || couponID == 0 {
		respondError(c, response.CodeBadRequest, "invalid coupon id", nil)
		return
	}
	var req CouponRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "invalid request body", err)
		return
	}
	input, err := req.toInput()
	if err != nil {
		respondError(c, response.CodeBadRequest, "invalid expires_at", err)
		return
	}

	coupon, err := h.CouponAdminService.Update(uint(couponID), input)
	if err != nil {
		respondCouponError(c, err)
		return
	}
	response.Success(c, coupon)
}

// DeleteCoupon 删除优惠券
func (h *Handler) DeleteCoupon(c *gin.Context) {
	couponID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil || couponID == 0 {
		respondError(c, response.CodeBadRequest, "invalid coupon id", nil)
		return
	}

	if err := h.CouponAdminService.Delete(uint(couponID)); err != nil {
		respondCouponError(c, err)
		return
	}
	response.Success(c, gin.H{"deleted": true})
}

func respondCouponError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrInvalidParams):
		respondError(c, response.CodeBadRequest, "invalid coupon fields", nil)
	case errors.Is(err, service.ErrCouponExists):
		respondError(c, response.CodeBadRequest, "coupon code already exists", nil)
	case errors.Is(err, service.ErrCouponNotFound):
		respondError(c, response.CodeNotFound, "coupon not found", nil)
	default:
		respondError(c, response.CodeInternal, "coupon operation failed", err)
	}
}

func parseTimeNullable(raw string) (*time.Time, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, nil
	}
	for _, layout := range []string{time.RFC3339, "2006-01-02 15:04:05", "2006-01-02"} {
		if t, err := time.Parse(layout, raw); err == nil {
			return &t, nil
		}
	}
	return nil, errors.New("unsupported time format")
}
