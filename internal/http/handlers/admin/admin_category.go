package admin

import (
	"errors"
	"strconv"

	"github.com/aurora-mall/internal/http/response"
	"github.com/aurora-mall/internal/service"

	"github.com/gin-gonic/gin"
)

// CategoryRequest 分类写入请求
type CategoryRequest struct {
	Name        string `json:"name" binding:"required"`
	Description string `json:"description"`
}

// ListAdminCategories 分类列表
func (h *Handler) ListAdminCategories(c *gin.Context) {
	categories, err := h.CategoryService.List()
	if err != nil {
		respondError(c, response.CodeInternal, "fetch categories failed", err)
		return
	}
	response.Success(c, categories)
}

// CreateCategory 创建分类
func (h *Handler) CreateCategory(c *gin.Context) {
	var req CategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "invalid request body", err)
		return
	}

	category, err := h.CategoryService.Create(service.CategoryInput{Name: req.Name, Description: req.Description})
	if err != nil {
		respondCategoryError(c, err)
		return
	}
	response.Success(c, category)
}

// UpdateCategory 更新分类
func (h *Handler) UpdateCategory(c *gin.Context) {
	categoryID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil || categoryID == 0 {
		respondError(c, response.CodeBadRequest, "invalid category id", nil)
		return
	}
	var req CategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "invalid request body", err)
		return
	}

	category, err := h.CategoryService.Update(uint(categoryID), service.CategoryInput{Name: req.Name, Description: req.Description})
	if err != nil {
		respondCategoryError(c, err)
		return
	}
	response.Success(c, category)
}

// DeleteCategory 删除分类
func (h *Handler) DeleteCategory(c *gin.Context) {
	categoryID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil || categoryID == 0 {
		respondError(c, response.CodeBadRequest, "invalid category id", nil)
		return
	}

	if err := h.CategoryService.Delete(uint(categoryID)); err != nil {
		respondCategoryError(c, err)
		return
	}
	response.Success(c, gin.H{"deleted": true})
}

func respondCategoryError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrInvalidParams):
		respondError(c, response.CodeBadRequest, "category name is required", nil)
	case errors.Is(err, service.ErrCategoryExists):
		respondError(c, response.CodeBadRequest, "category name already exists", nil)
	case errors.Is(err, service.ErrCategoryNotFound):
		respondError(c, response.CodeNotFound, "category not found", nil)
	case errors.Is(err, service.ErrCategoryInUse):
		respondError(c, response.CodeConflict, "category has products attached", nil)
	default:
		respondError(c, response.CodeInternal, "category operation failed", err)
	}
}
