package public

import (
	"errors"
	"strconv"

	"github.com/aurora-mall/internal/http/response"
	"github.com/aurora-mall/internal/service"

	"github.com/gin-gonic/gin"
)

// GetWishlist 获取收藏列表
func (h *Handler) GetWishlist(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		return
	}
	items, err := h.WishlistService.ListByUser(userID)
	if err != nil {
		respondError(c, response.CodeInternal, "fetch wishlist failed", err)
		return
	}
	response.Success(c, items)
}

// AddWishlistItemRequest 加入收藏请求
type AddWishlistItemRequest struct {
	ProductID uint `json:"product_id" binding:"required"`
}

// AddWishlistItem 加入收藏，重复加入不报错
func (h *Handler) AddWishlistItem(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		return
	}
	var req AddWishlistItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "invalid request body", err)
		return
	}

	item, err := h.WishlistService.AddItem(userID, req.ProductID)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrProductNotFound):
			respondError(c, response.CodeNotFound, "product not found", nil)
		default:
			respondError(c, response.CodeInternal, "add to wishlist failed", err)
		}
		return
	}
	response.Success(c, item)
}

// DeleteWishlistItem 移除收藏
func (h *Handler) DeleteWishlistItem(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		return
	}
	productID, err := strconv.ParseUint(c.Param("product_id"), 10, 32)
	if err != nil || productID == 0 {
		respondError(c, response.CodeBadRequest, "invalid product id", nil)
		return
	}

	if err := h.WishlistService.RemoveItem(userID, uint(productID)); err != nil {
		switch {
		case errors.Is(err, service.ErrWishlistNotFound):
			respondError(c, response.CodeNotFound, "wishlist item not found", nil)
		default:
			respondError(c, response.CodeInternal, "remove from wishlist failed", err)
		}
		return
	}
	response.Success(c, gin.H{"deleted": true})
}
