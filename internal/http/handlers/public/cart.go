package public

import (
	"errors"
	"strconv"

	"github.com/aurora-mall/internal/http/response"
	"github.com/aurora-mall/internal/service"

	"github.com/gin-gonic/gin"
)

// GetCart 获取购物车
func (h *Handler) GetCart(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		return
	}
	items, err := h.CartService.ListByUser(userID)
	if err != nil {
		respondError(c, response.CodeInternal, "fetch cart failed", err)
		return
	}
	response.Success(c, items)
}

// AddCartItemRequest 加入购物车请求
type AddCartItemRequest struct {
	ProductID uint   `json:"product_id" binding:"required"`
	Quantity  int    `json:"quantity" binding:"required"`
	Color     string `json:"color"`
	Size      string `json:"size"`
}

// AddCartItem 加入购物车
func (h *Handler) AddCartItem(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		return
	}
	var req AddCartItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "invalid request body", err)
		return
	}

	item, err := h.CartService.AddItem(service.AddCartItemInput{
		UserID:    userID,
		ProductID: req.ProductID,
		Quantity:  req.Quantity,
		Color:     req.Color,
		Size:      req.Size,
	})
	if err != nil {
		respondCartError(c, err)
		return
	}
	response.Success(c, item)
}

// UpdateCartItemRequest 更新购物车请求
type UpdateCartItemRequest struct {
	Quantity int `json:"quantity" binding:"required"`
}

// UpdateCartItem 更新购物车项数量
func (h *Handler) UpdateCartItem(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		return
	}
	itemID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil || itemID == 0 {
		respondError(c, response.CodeBadRequest, "invalid cart item id", nil)
		return
	}
	var req UpdateCartItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "invalid request body", err)
		return
	}

	item, err := h.CartService.UpdateItemQuantity(userID, uint(itemID), req.Quantity)
	if err != nil {
		respondCartError(c, err)
		return
	}
	response.Success(c, item)
}

// DeleteCartItem 移除购物车项
func (h *Handler) DeleteCartItem(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		return
	}
	itemID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil || itemID == 0 {
		respondError(c, response.CodeBadRequest, "invalid cart item id", nil)
		return
	}

	if err := h.CartService.RemoveItem(userID, uint(itemID)); err != nil {
		respondCartError(c, err)
		return
	}
	response.Success(c, gin.H{"deleted": true})
}

func respondCartError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrInvalidParams):
		respondError(c, response.CodeBadRequest, "invalid parameters", nil)
	case errors.Is(err, service.ErrInvalidQuantity):
		respondError(c, response.CodeBadRequest, "quantity must be positive", nil)
	case errors.Is(err, service.ErrProductNotFound):
		respondError(c, response.CodeNotFound, "product not found", nil)
	case errors.Is(err, service.ErrInsufficientStock):
		respondError(c, response.CodeBadRequest, "insufficient stock", nil)
	case errors.Is(err, service.ErrCartItemNotFound):
		respondError(c, response.CodeNotFound, "cart item not found", nil)
	default:
		respondError(c, response.CodeInternal, "cart operation failed", err)
	}
}
