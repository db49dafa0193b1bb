package public

import (
	"errors"
	"strconv"
	"strings"

	"github.com/aurora-mall/internal/http/response"
	"github.com/aurora-mall/internal/models"
	"github.com/aurora-mall/internal/service"

	"github.com/gin-gonic/gin"
)

// GetProducts 获取商品列表
func (h *Handler) GetProducts(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "20"))
	page, pageSize = normalizePagination(page, pageSize)

	query := service.PublicListQuery{
		Page:         page,
		PageSize:     pageSize,
		CategoryName: strings.TrimSpace(c.Query("category")),
		Search:       strings.TrimSpace(c.Query("search")),
		SortBy:       strings.TrimSpace(c.Query("sort_by")),
		SortDesc:     strings.EqualFold(c.Query("sort_order"), "desc"),
	}
	if raw := strings.TrimSpace(c.Query("min_price")); raw != "" {
		if v, err := strconv.ParseFloat(raw, 64); err == nil && v >= 0 {
			query.MinPrice = &v
		}
	}
	if raw := strings.TrimSpace(c.Query("max_price")); raw != "" {
		if v, err := strconv.ParseFloat(raw, 64); err == nil && v >= 0 {
			query.MaxPrice = &v
		}
	}
	if raw := strings.TrimSpace(c.Query("featured")); raw != "" {
		featured := raw == "true" || raw == "1"
		query.Featured = &featured
	}

	products, total, err := h.ProductService.ListPublic(query)
	if err != nil {
		respondError(c, response.CodeInternal, "fetch products failed", err)
		return
	}
	response.SuccessWithPage(c, products, response.NewPagination(page, pageSize, total))
}

// GetProduct 获取商品详情
func (h *Handler) GetProduct(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil || id == 0 {
		respondError(c, response.CodeBadRequest, "invalid product id", nil)
		return
	}

	product, err := h.ProductService.GetPublic(uint(id))
	if err != nil {
		switch {
		case errors.Is(err, service.ErrProductNotFound):
			respondError(c, response.CodeNotFound, "product not found", nil)
		default:
			respondError(c, response.CodeInternal, "fetch product failed", err)
		}
		return
	}
	response.Success(c, product)
}

// GetCategories 获取分类列表
func (h *Handler) GetCategories(c *gin.Context) {
	categories, err := h.CategoryService.List()
	if err != nil {
		respondError(c, response.CodeInternal, "fetch categories failed", err)
		return
	}
	response.Success(c, categories)
}

// ValidateCouponRequest 校验优惠券请求
type ValidateCouponRequest struct {
	Code     string  `json:"code" binding:"required"`
	Subtotal float64 `json:"subtotal"`
}

// ValidateCoupon 校验优惠券并返回可得折扣
func (h *Handler) ValidateCoupon(c *gin.Context) {
	var req ValidateCouponRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "invalid request body", err)
		return
	}
	if req.Subtotal < 0 {
		respondError(c, response.CodeBadRequest, "invalid subtotal", nil)
		return
	}

	subtotal := models.NewMoneyFromFloat(req.Subtotal)
	discount, coupon, err := h.CouponService.ApplyCoupon(subtotal, req.Code)
	if err != nil {
		var minErr *service.CouponMinAmountError
		switch {
		case errors.As(err, &minErr):
			respondError(c, response.CodeBadRequest, minErr.Error(), nil)
		case errors.Is(err, service.ErrCouponInvalid):
			respondError(c, response.CodeBadRequest, "invalid or expired coupon code", nil)
		default:
			respondError(c, response.CodeInternal, "coupon validation failed", err)
		}
		return
	}

	response.Success(c, gin.H{
		"code":     coupon.Code,
		"type":     coupon.Type,
		"value":    coupon.Value,
		"discount": discount,
	})
}
