package public

import (
	"errors"
	"strconv"
	"strings"

	"github.com/aurora-mall/internal/http/response"
	"github.com/aurora-mall/internal/repository"
	"github.com/aurora-mall/internal/service"

	"github.com/gin-gonic/gin"
)

// CreateOrderRequest 创建订单请求
type CreateOrderRequest struct {
	Items []CreateOrderItemRequest `json:"items" binding:"required"`

	ShippingAddress AddressRequest `json:"shipping_address" binding:"required"`
	PaymentMethod   string         `json:"payment_method" binding:"required"`
	CouponCode      string         `json:"coupon_code"`
}

// CreateOrderItemRequest 创建订单项请求
type CreateOrderItemRequest struct {
	ProductID uint   `json:"product_id" binding:"required"`
	Quantity  int    `json:"quantity" binding:"required"`
	Color     string `json:"color"`
	Size      string `json:"size"`
}

// CreateOrder 创建订单
func (h *Handler) CreateOrder(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		return
	}
	var req CreateOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "invalid request body", err)
		return
	}

	items := make([]service.CreateOrderItem, 0, len(req.Items))
	for _, item := range req.Items {
		items = append(items, service.CreateOrderItem{
			ProductID: item.ProductID,
			Quantity:  item.Quantity,
			Color:     item.Color,
			Size:      item.Size,
		})
	}

	order, err := h.OrderService.CreateOrder(service.CreateOrderInput{
		UserID:          userID,
		Items:           items,
		ShippingAddress: req.ShippingAddress.toInput(),
		PaymentMethod:   req.PaymentMethod,
		CouponCode:      req.CouponCode,
	})
	if err != nil {
		respondOrderCreateError(c, err)
		return
	}
	response.Success(c, order)
}

// ListOrders 获取当前用户订单列表
func (h *Handler) ListOrders(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		return
	}
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "20"))
	page, pageSize = normalizePagination(page, pageSize)

	filter := repository.OrderListFilter{
		Page:     page,
		PageSize: pageSize,
		UserID:   userID,
		Status:   strings.TrimSpace(c.Query("status")),
	}
	orders, total, err := h.OrderService.ListOrdersByUser(filter)
	if err != nil {
		respondError(c, response.CodeInternal, "fetch orders failed", err)
		return
	}
	response.SuccessWithPage(c, orders, response.NewPagination(page, pageSize, total))
}

// GetOrder 获取当前用户订单详情
func (h *Handler) GetOrder(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		return
	}
	orderID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil || orderID == 0 {
		respondError(c, response.CodeBadRequest, "invalid order id", nil)
		return
	}

	order, err := h.OrderService.GetOrderByUser(uint(orderID), userID)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrOrderNotFound):
			respondError(c, response.CodeNotFound, "order not found", nil)
		default:
			respondError(c, response.CodeInternal, "fetch order failed", err)
		}
		return
	}
	response.Success(c, order)
}

func respondOrderCreateError(c *gin.Context, err error) {
	var minErr *service.CouponMinAmountError
	switch {
	case errors.As(err, &minErr):
		respondError(c, response.CodeBadRequest, minErr.Error(), nil)
	case errors.Is(err, service.ErrOrderEmptyItems):
		respondError(c, response.CodeBadRequest, "order must contain at least one item", nil)
	case errors.Is(err, service.ErrInvalidQuantity):
		respondError(c, response.CodeBadRequest, "quantity must be positive", nil)
	case errors.Is(err, service.ErrInvalidParams):
		respondError(c, response.CodeBadRequest, "invalid shipping address or payment method", nil)
	case errors.Is(err, service.ErrProductNotFound):
		respondError(c, response.CodeBadRequest, "product not available", nil)
	case errors.Is(err, service.ErrInsufficientStock):
		respondError(c, response.CodeBadRequest, "insufficient stock", nil)
	case errors.Is(err, service.ErrCouponInvalid):
		respondError(c, response.CodeBadRequest, "invalid or expired coupon code", nil)
	default:
		respondError(c, response.CodeInternal, "order creation failed", err)
	}
}
