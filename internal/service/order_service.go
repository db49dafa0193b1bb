package service

import (
	"crypto/rand"
	"fmt"
	"math/big"
	"strings"
	"time"

	"github.com/aurora-mall/internal/config"
	"github.com/aurora-mall/internal/constants"
	"github.com/aurora-mall/internal/logger"
	"github.com/aurora-mall/internal/models"
	"github.com/aurora-mall/internal/queue"
	"github.com/aurora-mall/internal/repository"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// OrderService 订单服务
type OrderService struct {
	orderRepo     repository.OrderRepository
	productRepo   repository.ProductRepository
	cartRepo      repository.CartRepository
	couponRepo    repository.CouponRepository
	couponService *CouponService
	queueClient   *queue.Client
	cfg           *config.OrderConfig
}

// NewOrderService 创建订单服务
func NewOrderService(orderRepo repository.OrderRepository, productRepo repository.ProductRepository, cartRepo repository.CartRepository, couponRepo repository.CouponRepository, couponService *CouponService, queueClient *queue.Client, cfg *config.OrderConfig) *OrderService {
	return &OrderService{
		orderRepo:     orderRepo,
		productRepo:   productRepo,
		cartRepo:      cartRepo,
		couponRepo:    couponRepo,
		couponService: couponService,
		queueClient:   queueClient,
		cfg:           cfg,
	}
}

// CreateOrderInput 创建订单输入
type CreateOrderInput struct {
	UserID          uint
	Items           []CreateOrderItem
	ShippingAddress AddressInput
	PaymentMethod   string
	CouponCode      string
}

// CreateOrderItem 创建订单项输入
type CreateOrderItem struct {
	ProductID uint
	Quantity  int
	Color     string
	Size      string
}

var allowedOrderTransitions = map[string]map[string]bool{
	constants.OrderStatusPending: {
		constants.OrderStatusConfirmed: true,
		constants.OrderStatusShipped:   true,
		constants.OrderStatusCancelled: true,
	},
	constants.OrderStatusConfirmed: {
		constants.OrderStatusShipped:        true,
		constants.OrderStatusOutForDelivery: true,
		constants.OrderStatusCancelled:      true,
	},
	constants.OrderStatusShipped: {
		constants.OrderStatusOutForDelivery: true,
		constants.OrderStatusDelivered:      true,
		constants.OrderStatusCancelled:      true,
	},
	constants.OrderStatusOutForDelivery: {
		constants.OrderStatusDelivered: true,
		constants.OrderStatusCancelled: true,
	},
	constants.OrderStatusDelivered: {},
	constants.OrderStatusCancelled: {},
}

type orderPricing struct {
	Subtotal decimal.Decimal
	Tax      decimal.Decimal
	Shipping decimal.Decimal
	Discount decimal.Decimal
	Total    decimal.Decimal
	Coupon   *models.Coupon
	Items    []models.OrderItem
}

// CreateOrder 创建订单，金额全部由服务端计算
func (s *OrderService) CreateOrder(input CreateOrderInput) (*models.Order, error) {
	if input.UserID == 0 {
		return nil, ErrOrderEmptyItems
	}
	items, err := mergeOrderItems(input.Items)
	if err != nil {
		return nil, err
	}
	if len(items) == 0 {
		return nil, ErrOrderEmptyItems
	}
	if err := validateAddressInput(input.ShippingAddress); err != nil {
		return nil, err
	}
	paymentMethod := strings.ToLower(strings.TrimSpace(input.PaymentMethod))
	switch paymentMethod {
	case constants.PaymentMethodCard, constants.PaymentMethodCashOnDelivery:
	default:
		return nil, ErrInvalidParams
	}

	pricing, err := s.priceOrder(items, input.CouponCode)
	if err != nil {
		return nil, err
	}

	shippingAddress := models.Address{
		Name:    strings.TrimSpace(input.ShippingAddress.Name),
		Street:  strings.TrimSpace(input.ShippingAddress.Street),
		City:    strings.TrimSpace(input.ShippingAddress.City),
		State:   strings.TrimSpace(input.ShippingAddress.State),
		ZipCode: strings.TrimSpace(input.ShippingAddress.ZipCode),
		Country: strings.TrimSpace(input.ShippingAddress.Country),
	}

	order := &models.Order{
		OrderNo:         generateOrderNo(),
		UserID:          input.UserID,
		Status:          constants.OrderStatusPending,
		PaymentStatus:   constants.PaymentStatusPending,
		PaymentMethod:   paymentMethod,
		Subtotal:        models.NewMoneyFromDecimal(pricing.Subtotal),
		Tax:             models.NewMoneyFromDecimal(pricing.Tax),
		Shipping:        models.NewMoneyFromDecimal(pricing.Shipping),
		Discount:        models.NewMoneyFromDecimal(pricing.Discount),
		Total:           models.NewMoneyFromDecimal(pricing.Total),
		ShippingAddress: shippingAddress.Snapshot(),
	}
	if pricing.Coupon != nil {
		order.CouponID = &pricing.Coupon.ID
		order.CouponCode = pricing.Coupon.Code
	}

	err = models.DB.Transaction(func(tx *gorm.DB) error {
		orderRepo := s.orderRepo.WithTx(tx)
		productRepo := s.productRepo.WithTx(tx)
		cartRepo := s.cartRepo.WithTx(tx)

		if err := orderRepo.Create(order, pricing.Items); err != nil {
			return err
		}
		for _, item := range pricing.Items {
			affected, err := productRepo.DecrementStock(item.ProductID, item.Quantity)
			if err != nil {
				return err
			}
			if affected == 0 {
				return ErrInsufficientStock
			}
		}
		if pricing.Coupon != nil {
			couponRepo := s.couponRepo.WithTx(tx)
			affected, err := couponRepo.IncrementUsedCount(pricing.Coupon.ID)
			if err != nil {
				return err
			}
			if affected == 0 {
				return ErrCouponInvalid
			}
		}
		return cartRepo.ClearByUser(input.UserID)
	})
	if err != nil {
		return nil, err
	}

	s.enqueueOrderConfirmation(order)

	full, err := s.orderRepo.GetByID(order.ID)
	if err == nil && full != nil {
		return full, nil
	}
	return order, nil
}

func (s *OrderService) priceOrder(items []CreateOrderItem, couponCode string) (*orderPricing, error) {
	ids := make([]uint, 0, len(items))
	for _, item := range items {
		ids = append(ids, item.ProductID)
	}
	products, err := s.productRepo.ListByIDs(ids)
	if err != nil {
		return nil, err
	}
	productMap := make(map[uint]*models.Product, len(products))
	for i := range products {
		productMap[products[i].ID] = &products[i]
	}

	subtotal := decimal.Zero
	orderItems := make([]models.OrderItem, 0, len(items))
	for _, item := range items {
		product, ok := productMap[item.ProductID]
		if !ok || product.Status != constants.ProductStatusActive {
			return nil, ErrProductNotFound
		}
		if product.Stock < item.Quantity {
			return nil, ErrInsufficientStock
		}
		unitPrice := product.EffectivePrice()
		subtotal = subtotal.Add(unitPrice.Decimal.Mul(decimal.NewFromInt(int64(item.Quantity))))
		orderItems = append(orderItems, models.OrderItem{
			ProductID: product.ID,
			Title:     product.Title,
			UnitPrice: unitPrice,
			Quantity:  item.Quantity,
			Color:     item.Color,
			Size:      item.Size,
		})
	}
	subtotal = subtotal.Round(2)

	discount := decimal.Zero
	var coupon *models.Coupon
	if strings.TrimSpace(couponCode) != "" {
		discountMoney, applied, err := s.couponService.ApplyCoupon(models.NewMoneyFromDecimal(subtotal), couponCode)
		if err != nil {
			return nil, err
		}
		discount = discountMoney.Decimal
		coupon = applied
	}

	tax := subtotal.Mul(decimal.NewFromFloat(s.cfg.TaxRate)).Round(2)
	shipping := decimal.NewFromFloat(s.cfg.ShippingFee)
	if s.cfg.FreeShippingThreshold > 0 && subtotal.GreaterThanOrEqual(decimal.NewFromFloat(s.cfg.FreeShippingThreshold)) {
		shipping = decimal.Zero
	}

	total := subtotal.Add(tax).Add(shipping).Sub(discount).Round(2)
	if total.IsNegative() {
		total = decimal.Zero
	}

	return &orderPricing{
		Subtotal: subtotal,
		Tax:      tax,
		Shipping: shipping,
		Discount: discount,
		Total:    total,
		Coupon:   coupon,
		Items:    orderItems,
	}, nil
}

// GetOrderByUser 获取用户订单详情
func (s *OrderService) GetOrderByUser(orderID uint, userID uint) (*models.Order, error) {
	order, err := s.orderRepo.GetByIDAndUser(orderID, userID)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, ErrOrderNotFound
	}
	return order, nil
}

// ListOrdersByUser 获取用户订单列表
func (s *OrderService) ListOrdersByUser(filter repository.OrderListFilter) ([]models.Order, int64, error) {
	if filter.UserID == 0 {
		return nil, 0, ErrOrderNotFound
	}
	return s.orderRepo.ListByUser(filter)
}

// ListOrdersForAdmin 管理端订单列表
func (s *OrderService) ListOrdersForAdmin(filter repository.OrderListFilter) ([]models.Order, int64, error) {
	return s.orderRepo.ListAdmin(filter)
}

// GetOrderForAdmin 管理端订单详情
func (s *OrderService) GetOrderForAdmin(orderID uint) (*models.Order, error) {
	if orderID == 0 {
		return nil, ErrOrderNotFound
	}
	order, err := s.orderRepo.GetByID(orderID)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, ErrOrderNotFound
	}
	return order, nil
}

// UpdateOrderStatusInput 管理端订单更新输入
type UpdateOrderStatusInput struct {
	Status         string
	TrackingNumber *string
	PaymentStatus  *string
}

// UpdateOrderStatus 管理端更新订单状态，取消时回补库存
func (s *OrderService) UpdateOrderStatus(orderID uint, input UpdateOrderStatusInput) (*models.Order, error) {
	order, err := s.GetOrderForAdmin(orderID)
	if err != nil {
		return nil, err
	}

	target := strings.ToLower(strings.TrimSpace(input.Status))
	if !isKnownOrderStatus(target) {
		return nil, ErrOrderStatusInvalid
	}
	if target != order.Status && !allowedOrderTransitions[order.Status][target] {
		return nil, ErrOrderStatusTransition
	}

	updates := map[string]interface{}{"status": target}
	if input.TrackingNumber != nil {
		updates["tracking_number"] = strings.TrimSpace(*input.TrackingNumber)
	}
	if input.PaymentStatus != nil {
		paymentStatus := strings.ToLower(strings.TrimSpace(*input.PaymentStatus))
		if !isKnownPaymentStatus(paymentStatus) {
			return nil, ErrPaymentStatusInvalid
		}
		updates["payment_status"] = paymentStatus
	}

	statusChanged := target != order.Status
	if statusChanged && target == constants.OrderStatusCancelled {
		err = models.DB.Transaction(func(tx *gorm.DB) error {
			orderRepo := s.orderRepo.WithTx(tx)
			productRepo := s.productRepo.WithTx(tx)
			if err := orderRepo.UpdateStatus(order.ID, updates); err != nil {
				return err
			}
			for _, item := range order.Items {
				if err := productRepo.IncrementStock(item.ProductID, item.Quantity); err != nil {
					return err
				}
			}
			return nil
		})
	} else {
		err = s.orderRepo.UpdateStatus(order.ID, updates)
	}
	if err != nil {
		return nil, err
	}

	if statusChanged {
		s.enqueueOrderStatusEmail(order.ID, target)
	}

	return s.GetOrderForAdmin(order.ID)
}

func (s *OrderService) enqueueOrderConfirmation(order *models.Order) {
	if s.queueClient == nil || !s.queueClient.Enabled() {
		return
	}
	if err := s.queueClient.EnqueueOrderConfirmationEmail(queue.OrderConfirmationEmailPayload{OrderID: order.ID}); err != nil {
		logger.Warnw("order_confirmation_enqueue_failed",
			"order_id", order.ID,
			"order_no", order.OrderNo,
			"error", err,
		)
	}
}

func (s *OrderService) enqueueOrderStatusEmail(orderID uint, status string) {
	if s.queueClient == nil || !s.queueClient.Enabled() {
		return
	}
	if err := s.queueClient.EnqueueOrderStatusEmail(queue.OrderStatusEmailPayload{OrderID: orderID, Status: status}); err != nil {
		logger.Warnw("order_status_email_enqueue_failed",
			"order_id", orderID,
			"status", status,
			"error", err,
		)
	}
}

func isKnownOrderStatus(status string) bool {
	_, ok := allowedOrderTransitions[status]
	return ok
}

func isKnownPaymentStatus(status string) bool {
	switch status {
	case constants.PaymentStatusPending, constants.PaymentStatusPaid, constants.PaymentStatusFailed, constants.PaymentStatusRefunded:
		return true
	default:
		return false
	}
}

// mergeOrderItems 合并相同商品同规格的下单项
func mergeOrderItems(items []CreateOrderItem) ([]CreateOrderItem, error) {
	if len(items) == 0 {
		return nil, nil
	}
	merged := make([]CreateOrderItem, 0, len(items))
	indexMap := make(map[string]int)
	for _, item := range items {
		if item.ProductID == 0 || item.Quantity <= 0 {
			return nil, ErrInvalidQuantity
		}
		key := fmt.Sprintf("%d|%s|%s", item.ProductID, strings.TrimSpace(item.Color), strings.TrimSpace(item.Size))
		if idx, ok := indexMap[key]; ok {
			merged[idx].Quantity += item.Quantity
			continue
		}
		item.Color = strings.TrimSpace(item.Color)
		item.Size = strings.TrimSpace(item.Size)
		indexMap[key] = len(merged)
		merged = append(merged, item)
	}
	return merged, nil
}

const orderNoAlphabet = "0123456789abcdefghijklmnopqrstuvwxyz"

func generateOrderNo() string {
	var b strings.Builder
	for i := 0; i < 9; i++ {
		n, err := rand.Int(rand.Reader, big.NewInt(int64(len(orderNoAlphabet))))
		if err != nil {
			b.WriteByte('0')
			continue
		}
		b.WriteByte(orderNoAlphabet[n.Int64()])
	}
	return fmt.Sprintf("ORD-%d-%s", time.Now().UnixMilli(), b.String())
}
