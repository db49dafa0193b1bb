package constants

// 订单状态常量
const (
	OrderStatusPending        = "pending"
	OrderStatusConfirmed      = "confirmed"
	OrderStatusShipped        = "shipped"
	OrderStatusOutForDelivery = "out_for_delivery"
	OrderStatusDelivered      = "delivered"
	OrderStatusCancelled      = "cancelled"
)

// 支付状态常量
const (
	PaymentStatusPending  = "pending"
	PaymentStatusPaid     = "paid"
	PaymentStatusFailed   = "failed"
	PaymentStatusRefunded = "refunded"
)

// 支付方式常量
const (
	PaymentMethodCard           = "card"
	PaymentMethodCashOnDelivery = "cod"
)

// 商品状态常量
const (
	ProductStatusActive   = "active"
	ProductStatusInactive = "inactive"
	ProductStatusDeleted  = "deleted"
)

// 优惠券类型常量
const (
	CouponTypeFixed      = "fixed"
	CouponTypePercentage = "percentage"
)

// 用户角色常量
const (
	UserRoleUser  = "user"
	UserRoleAdmin = "admin"
)

// 用户状态常量
const (
	UserStatusActive   = "active"
	UserStatusDisabled = "disabled"
)

// 队列常量
const (
	QueueDefault               = "default"
	TaskOrderConfirmationEmail = "order:confirmation_email"
	TaskOrderStatusEmail       = "order:status_email"
)

// 缓存默认配置常量
const (
	RedisPrefixDefault = "am"
)

// 商品列表允许的排序字段
var ProductSortColumns = []string{"created_at", "price", "title", "stock"}
