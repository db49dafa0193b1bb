package admin

import (
	"errors"
	"strconv"
	"strings"

	"github.com/aurora-mall/internal/http/response"
	"github.com/aurora-mall/internal/repository"
	"github.com/aurora-mall/internal/service"

	"github.com/gin-gonic/gin"
)

// ListAdminOrders 订单列表
func (h *Handler) ListAdminOrders(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "20"))
	page, pageSize = normalizePagination(page, pageSize)

	filter := repository.OrderListFilter{
		Page:     page,
		PageSize: pageSize,
		Status:   strings.TrimSpace(c.Query("status")),
		OrderNo:  strings.TrimSpace(c.Query("order_no")),
	}
	if raw := strings.TrimSpace(c.Query("user_id")); raw != "" {
		userID, err := strconv.ParseUint(raw, 10, 32)
		if err != nil {
			respondError(c, response.CodeBadRequest, "invalid user_id", nil)
			return
		}
		filter.UserID = uint(userID)
	}

	orders, total, err := h.OrderService.ListOrdersForAdmin(filter)
	if err != nil {
		respondError(c, response.CodeInternal, "fetch orders failed", err)
		return
	}
	response.SuccessWithPage(c, orders, response.NewPagination(page, pageSize, total))
}

// GetAdminOrder 订单详情
func (h *Handler) GetAdminOrder(c *gin.Context) {
	orderID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil || orderID == 0 {
		respondError(c, response.CodeBadRequest, "invalid order id", nil)
		return
	}

	order, err := h.OrderService.GetOrderForAdmin(uint(orderID))
	if err != nil {
		if errors.Is(err, service.ErrOrderNotFound) {
			respondError(c, response.CodeNotFound, "order not found", nil)
			return
		}
		respondError(c, response.CodeInternal, "fetch order failed", err)
		return
	}
	response.Success(c, order)
}

// UpdateAdminOrderRequest 更新订单状态请求
type UpdateAdminOrderRequest struct {
	Status         string  `json:"status" binding:"required"`
	TrackingNumber *string `json:"tracking_number"`
	PaymentStatus  *string `json:"payment_status"`
}

// UpdateAdminOrder 更新订单状态
func (h *Handler) UpdateAdminOrder(c *gin.Context) {
	orderID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil || orderID == 0 {
		respondError(c, response.CodeBadRequest, "invalid order id", nil)
		return
	}
	var req UpdateAdminOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "invalid request body", err)
		return
	}

	order, err := h.OrderService.UpdateOrderStatus(uint(orderID), service.UpdateOrderStatusInput{
		Status:         req.Status,
		TrackingNumber: req.TrackingNumber,
		PaymentStatus:  req.PaymentStatus,
	})
	if err != nil {
		switch {
		case errors.Is(err, service.ErrOrderNotFound):
			respondError(c, response.CodeNotFound, "order not found", nil)
		case errors.Is(err, service.ErrOrderStatusInvalid):
			respondError(c, response.CodeBadRequest, "unknown order status", nil)
		case errors.Is(err, service.ErrOrderStatusTransition):
			respondError(c, response.CodeBadRequest, "order status transition not allowed", nil)
		case errors.Is(err, service.ErrPaymentStatusInvalid):
			respondError(c, response.CodeBadRequest, "unknown payment status", nil)
		default:
			respondError(c, response.CodeInternal, "update order failed", err)
		}
		return
	}
	response.Success(c, order)
}
