package worker

import (
	"context"
	"encoding/json"
	"strings"

	"github.com/aurora-mall/internal/logger"
	"github.com/aurora-mall/internal/models"
	"github.com/aurora-mall/internal/provider"
	"github.com/aurora-mall/internal/queue"
	"github.com/aurora-mall/internal/service"

	"github.com/hibiken/asynq"
)

// Consumer 异步任务消费者
type Consumer struct {
	*provider.Container
}

// NewConsumer 创建消费者
func NewConsumer(c *provider.Container) *Consumer {
	return &Consumer{
		Container: c,
	}
}

// Register 注册消费者
func (c *Consumer) Register(mux *asynq.ServeMux) {
	if c == nil || mux == nil {
		logger.Debugw("worker_register_skip_nil", "consumer_nil", c == nil, "mux_nil", mux == nil)
		return
	}
	mux.HandleFunc(queue.TaskOrderConfirmationEmail, c.handleOrderConfirmationEmail)
	mux.HandleFunc(queue.TaskOrderStatusEmail, c.handleOrderStatusEmail)
}

func (c *Consumer) handleOrderConfirmationEmail(_ context.Context, task *asynq.Task) error {
	if c == nil || task == nil {
		return nil
	}
	var payload queue.OrderConfirmationEmailPayload
	if err := json.Unmarshal(task.Payload(), &payload); err != nil {
		logger.Warnw("worker_order_confirmation_email_unmarshal_failed", "error", err)
		return err
	}
	if payload.OrderID == 0 {
		return nil
	}
	order, receiverEmail, err := c.resolveOrderAndReceiver(payload.OrderID, "worker_order_confirmation_email")
	if err != nil || order == nil || receiverEmail == "" {
		return err
	}
	input := service.OrderConfirmationEmailInput{
		OrderNo: order.OrderNo,
		Total:   order.Total,
	}
	if err := c.EmailService.SendOrderConfirmationEmail(receiverEmail, input); err != nil {
		logger.Warnw("worker_order_confirmation_email_send_failed",
			"order_id", order.ID,
			"order_no", order.OrderNo,
			"receiver_email", receiverEmail,
			"error", err,
		)
		return err
	}
	return nil
}

func (c *Consumer) handleOrderStatusEmail(_ context.Context, task *asynq.Task) error {
	if c == nil || task == nil {
		return nil
	}
	var payload queue.OrderStatusEmailPayload
	if err := json.Unmarshal(task.Payload(), &payload); err != nil {
		logger.Warnw("worker_order_status_email_unmarshal_failed", "error", err)
		return err
	}
	if payload.OrderID == 0 {
		return nil
	}
	order, receiverEmail, err := c.resolveOrderAndReceiver(payload.OrderID, "worker_order_status_email")
	if err != nil || order == nil || receiverEmail == "" {
		return err
	}
	status := strings.TrimSpace(payload.Status)
	if status == "" {
		status = order.Status
	}
	input := service.OrderStatusEmailInput{
		OrderNo:        order.OrderNo,
		Status:         status,
		Total:          order.Total,
		TrackingNumber: order.TrackingNumber,
	}
	if err := c.EmailService.SendOrderStatusEmail(receiverEmail, input); err != nil {
		logger.Warnw("worker_order_status_email_send_failed",
			"order_id", order.ID,
			"order_no", order.OrderNo,
			"receiver_email", receiverEmail,
			"status", status,
			"error", err,
		)
		return err
	}
	return nil
}

func (c *Consumer) resolveOrderAndReceiver(orderID uint, logPrefix string) (*models.Order, string, error) {
	fetched, err := c.OrderRepo.GetByID(orderID)
	if err != nil {
		logger.Warnw(logPrefix+"_fetch_order_failed", "order_id", orderID, "error", err)
		return nil, "", err
	}
	if fetched == nil {
		logger.Debugw(logPrefix+"_skip_order_not_found", "order_id", orderID)
		return nil, "", nil
	}
	receiverEmail, err := c.OrderRepo.ResolveReceiverEmailByOrderID(orderID)
	if err != nil {
		logger.Warnw(logPrefix+"_resolve_receiver_failed", "order_id", orderID, "error", err)
		return nil, "", err
	}
	receiverEmail = strings.TrimSpace(receiverEmail)
	if receiverEmail == "" {
		logger.Debugw(logPrefix+"_skip_empty_receiver", "order_id", orderID, "order_no", fetched.OrderNo)
		return nil, "", nil
	}
	if c.EmailService == nil {
		logger.Warnw(logPrefix+"_skip_email_service_nil", "order_id", orderID, "order_no", fetched.OrderNo)
		return nil, "", nil
	}
	return fetched, receiverEmail, nil
}
