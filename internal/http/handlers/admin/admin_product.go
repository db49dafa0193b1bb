package admin

import (
	"errors"
	"strconv"
	"strings"

	"github.com/aurora-mall/internal/http/response"
	"github.com/aurora-mall/internal/models"
	"github.com/aurora-mall/internal/service"

	"github.com/gin-gonic/gin"
)

// ProductRequest 商品写入请求
type ProductRequest struct {
	CategoryID    uint     `json:"category_id" binding:"required"`
	Title         string   `json:"title" binding:"required"`
	Description   string   `json:"description"`
	Price         float64  `json:"price" binding:"required"`
	DiscountPrice *float64 `json:"discount_price"`
	Stock         *int     `json:"stock"`
	Images        []string `json:"images"`
	Colors        []string `json:"colors"`
	Sizes         []string `json:"sizes"`
	Featured      *bool    `json:"featured"`
	Status        string   `json:"status"`
}

func (r ProductRequest) toInput() service.ProductInput {
	input := service.ProductInput{
		CategoryID:  r.CategoryID,
		Title:       r.Title,
		Description: r.Description,
		Price:       models.NewMoneyFromFloat(r.Price),
		Stock:       r.Stock,
		Images:      r.Images,
		Colors:      r.Colors,
		Sizes:       r.Sizes,
		Featured:    r.Featured,
		Status:      r.Status,
	}
	if r.DiscountPrice != nil {
		discount := models.NewMoneyFromFloat(*r.DiscountPrice)
		input.DiscountPrice = &discount
	}
	return input
}

// ListAdminProducts 商品列表
func (h *Handler) ListAdminProducts(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "20"))
	page, pageSize = normalizePagination(page, pageSize)

	var categoryID uint
	if raw := strings.TrimSpace(c.Query("category")); raw != "" {
		parsed, err := strconv.ParseUint(raw, 10, 32)
		if err != nil {
			respondError(c, response.CodeBadRequest, "invalid category", nil)
			return
		}
		categoryID = uint(parsed)
	}

	products, total, err := h.ProductService.ListAdmin(categoryID, strings.TrimSpace(c.Query("search")), strings.TrimSpace(c.Query("status")), page, pageSize)
	if err != nil {
		respondError(c, response.CodeInternal, "fetch products failed", err)
		return
	}
	response.SuccessWithPage(c, products, response.NewPagination(page, pageSize, total))
}

// CreateProduct 创建商品
func (h *Handler) CreateProduct(c *gin.Context) {
	var req ProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "invalid request body", err)
		return
	}

	product, err := h.ProductService.Create(req.toInput())
	if err != nil {
		respondProductError(c, err)
		return
	}
	response.Success(c, product)
}

// UpdateProduct 更新商品
func (h *Handler) UpdateProduct(c *gin.Context) {
	productID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil || productID == 0 {
		respondError(c, response.CodeBadRequest, "invalid product id", nil)
		return
	}
	var req ProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "invalid request body", err)
		return
	}

	product, err := h.ProductService.Update(uint(productID), req.toInput())
	if err != nil {
		respondProductError(c, err)
		return
	}
	response.Success(c, product)
}

// DeleteProduct 删除商品
func (h *Handler) DeleteProduct(c *gin.Context) {
	productID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil || productID == 0 {
		respondError(c, response.CodeBadRequest, "invalid product id", nil)
		return
	}

	if err := h.ProductService.Delete(uint(productID)); err != nil {
		respondProductError(c, err)
		return
	}
	response.Success(c, gin.H{"deleted": true})
}

func respondProductError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrInvalidParams):
		respondError(c, response.CodeBadRequest, "invalid product fields", nil)
	case errors.Is(err, service.ErrCategoryNotFound):
		respondError(c, response.CodeBadRequest, "category not found", nil)
	case errors.Is(err, service.ErrProductNotFound):
		respondError(c, response.CodeNotFound, "product not found", nil)
	default:
		respondError(c, response.CodeInternal, "product operation failed", err)
	}
}
