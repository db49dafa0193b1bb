package service

import "errors"

// 业务错误定义，由 handler 层映射为响应码
var (
	ErrInvalidParams      = errors.New("invalid params")
	ErrUserNotFound       = errors.New("user not found")
	ErrEmailExists        = errors.New("email already registered")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrEmailNotVerified   = errors.New("email not verified")
	ErrUserDisabled       = errors.New("user disabled")
	ErrInvalidToken       = errors.New("invalid or expired token")
	ErrPasswordMismatch   = errors.New("current password is incorrect")
	ErrPasswordTooShort   = errors.New("password too short")
	ErrInvalidEmail       = errors.New("invalid email address")

	ErrEmailServiceDisabled      = errors.New("email service disabled")
	ErrEmailServiceNotConfigured = errors.New("email service not configured")

	ErrProductNotFound  = errors.New("product not found")
	ErrCategoryNotFound = errors.New("category not found")
	ErrCategoryInUse    = errors.New("category has products")
	ErrCategoryExists   = errors.New("category name already exists")

	ErrCartItemNotFound   = errors.New("cart item not found")
	ErrInsufficientStock  = errors.New("insufficient stock")
	ErrInvalidQuantity    = errors.New("invalid quantity")
	ErrWishlistNotFound   = errors.New("wishlist item not found")
	ErrAddressNotFound    = errors.New("address not found")

	ErrCouponInvalid  = errors.New("invalid or expired coupon code")
	ErrCouponExists   = errors.New("coupon code already exists")
	ErrCouponNotFound = errors.New("coupon not found")

	ErrOrderNotFound          = errors.New("order not found")
	ErrOrderEmptyItems        = errors.New("order has no items")
	ErrOrderStatusInvalid     = errors.New("invalid order status")
	ErrOrderStatusTransition  = errors.New("order status transition not allowed")
	ErrPaymentStatusInvalid   = errors.New("invalid payment status")
)
