package worker

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/aurora-mall/internal/config"
	"github.com/aurora-mall/internal/constants"
	"github.com/aurora-mall/internal/models"
	"github.com/aurora-mall/internal/provider"
	"github.com/aurora-mall/internal/queue"
	"github.com/aurora-mall/internal/repository"
	"github.com/aurora-mall/internal/service"

	"github.com/glebarez/sqlite"
	"github.com/hibiken/asynq"
	"gorm.io/gorm"
)

func setupConsumerTest(t *testing.T) (*Consumer, *gorm.DB) {
	t.Helper()
	dsn := fmt.Sprintf("file:asynq_worker_test_%d?mode=memory&cache=shared", time.Now().UnixNano())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite failed: %v", err)
	}
	if err := db.AutoMigrate(&models.User{}, &models.Order{}, &models.OrderItem{}); err != nil {
		t.Fatalf("auto migrate failed: %v", err)
	}
	models.DB = db

	cfg := &config.Config{}
	container := &provider.Container{
		Config:       cfg,
		OrderRepo:    repository.NewOrderRepository(db),
		EmailService: service.NewEmailService(&cfg.Email, &cfg.Site),
	}
	return NewConsumer(container), db
}

func seedWorkerOrder(t *testing.T, db *gorm.DB) *models.Order {
	t.Helper()
	user := models.User{
		Name:         "Alice",
		Email:        "alice@example.com",
		PasswordHash: "x",
		Role:         constants.UserRoleUser,
		Status:       constants.UserStatusActive,
		IsVerified:   true,
	}
	if err := db.Create(&user).Error; err != nil {
		t.Fatalf("seed user failed: %v", err)
	}
	order := models.Order{
		OrderNo:         fmt.Sprintf("ORD-%d-worker", time.Now().UnixMilli()),
		UserID:          user.ID,
		Status:          constants.OrderStatusPending,
		PaymentStatus:   constants.PaymentStatusPending,
		PaymentMethod:   constants.PaymentMethodCard,
		Total:           models.NewMoneyFromFloat(93),
		ShippingAddress: models.JSON{},
	}
	if err := db.Create(&order).Error; err != nil {
		t.Fatalf("seed order failed: %v", err)
	}
	return &order
}

func TestConsumerRejectsMalformedPayload(t *testing.T) {
	consumer, _ := setupConsumerTest(t)

	task := asynq.NewTask(queue.TaskOrderConfirmationEmail, []byte("{not json"))
	if err := consumer.handleOrderConfirmationEmail(context.Background(), task); err == nil {
		t.Fatalf("expected unmarshal error for malformed payload")
	}
}

func TestConsumerSkipsMissingOrder(t *testing.T) {
	consumer, _ := setupConsumerTest(t)

	task, err := queue.NewOrderConfirmationEmailTask(queue.OrderConfirmationEmailPayload{OrderID: 9999})
	if err != nil {
		t.Fatalf("build task failed: %v", err)
	}
	if err := consumer.handleOrderConfirmationEmail(context.Background(), task); err != nil {
		t.Fatalf("missing order should be skipped, got %v", err)
	}
}

func TestConsumerSkipsZeroOrderID(t *testing.T) {
	consumer, _ := setupConsumerTest(t)

	task, err := queue.NewOrderStatusEmailTask(queue.OrderStatusEmailPayload{OrderID: 0, Status: constants.OrderStatusShipped})
	if err != nil {
		t.Fatalf("build task failed: %v", err)
	}
	if err := consumer.handleOrderStatusEmail(context.Background(), task); err != nil {
		t.Fatalf("zero order id should be skipped, got %v", err)
	}
}

func TestConsumerSurfacesSendFailure(t *testing.T) {
	consumer, db := setupConsumerTest(t)
	seedWorkerOrder(t, db)

	var order models.Order
	if err := db.First(&order).Error; err != nil {
		t.Fatalf("load order failed: %v", err)
	}
	task, err := queue.NewOrderStatusEmailTask(queue.OrderStatusEmailPayload{OrderID: order.ID, Status: constants.OrderStatusShipped})
	if err != nil {
		t.Fatalf("build task failed: %v", err)
	}
	if err := consumer.handleOrderStatusEmail(context.Background(), task); !errors.Is(err, service.ErrEmailServiceDisabled) {
		t.Fatalf("expected ErrEmailServiceDisabled from disabled mailer, got %v", err)
	}
}

func TestConsumerSkipsNilEmailService(t *testing.T) {
	consumer, db := setupConsumerTest(t)
	seedWorkerOrder(t, db)
	consumer.EmailService = nil

	var order models.Order
	if err := db.First(&order).Error; err != nil {
		t.Fatalf("load order failed: %v", err)
	}
	task, err := queue.NewOrderConfirmationEmailTask(queue.OrderConfirmationEmailPayload{OrderID: order.ID})
	if err != nil {
		t.Fatalf("build task failed: %v", err)
	}
	if err := consumer.handleOrderConfirmationEmail(context.Background(), task); err != nil {
		t.Fatalf("nil email service should be skipped, got %v", err)
	}
}

func TestConsumerRegisterNilSafe(t *testing.T) {
	consumer, _ := setupConsumerTest(t)
	consumer.Register(nil)

	mux := asynq.NewServeMux()
	consumer.Register(mux)
}
