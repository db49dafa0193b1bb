package router

import (
	"fmt"
	"strings"

	"github.com/aurora-mall/internal/cache"
	"github.com/aurora-mall/internal/config"
	adminhandlers "github.com/aurora-mall/internal/http/handlers/admin"
	publichandlers "github.com/aurora-mall/internal/http/handlers/public"
	"github.com/aurora-mall/internal/logger"
	"github.com/aurora-mall/internal/provider"

	"github.com/gin-gonic/gin"
)

// SetupRouter 初始化路由
func SetupRouter(cfg *config.Config, c *provider.Container) *gin.Engine {
	log := logger.L
	if log == nil {
		log = logger.Init(cfg.Server.Mode, cfg.Log.ToLoggerOptions())
	}
	r := gin.New()

	// 初始化 Handler（按前台/后台分组）
	publicHandler := publichandlers.New(c)
	adminHandler := adminhandlers.New(c)
	redisPrefix := strings.TrimSpace(cfg.Redis.Prefix)
	if redisPrefix == "" {
		redisPrefix = "am"
	}
	redisClient := cache.Client()
	loginRule := RateLimitRule{
		Prefix:        fmt.Sprintf("%s:rate:login", redisPrefix),
		WindowSeconds: cfg.Security.LoginRateLimit.WindowSeconds,
		MaxRequests:   cfg.Security.LoginRateLimit.MaxAttempts,
		BlockSeconds:  cfg.Security.LoginRateLimit.BlockSeconds,
		Message:       "too many login attempts",
	}

	// 中间件
	r.Use(gin.Recovery())
	r.Use(RequestIDMiddleware())
	r.Use(LoggerMiddleware(log))
	r.Use(CORSMiddleware(cfg.CORS))

	// API 路由组
	apiV1 := r.Group("/api/v1")
	{
		// 公开接口
		apiV1.GET("/products", publicHandler.GetProducts)
		apiV1.GET("/products/:id", publicHandler.GetProduct)
		apiV1.GET("/categories", publicHandler.GetCategories)
		apiV1.POST("/coupons/validate", publicHandler.ValidateCoupon)

		// 用户认证接口
		auth := apiV1.Group("/auth")
		{
			auth.POST("/register", publicHandler.UserRegister)
			auth.GET("/verify/:token", publicHandler.UserVerifyEmail)
			auth.POST("/login", RateLimitMiddleware(redisClient, loginRule, KeyByIPAndJSONField("email")), publicHandler.UserLogin)
			auth.POST("/forgot-password", publicHandler.UserForgotPassword)
			auth.POST("/reset-password/:token", publicHandler.UserResetPassword)
		}

		// 用户接口（需鉴权）
		user := apiV1.Group("")
		user.Use(UserJWTAuthMiddleware(cfg.JWT.SecretKey, c.UserRepo))
		{
			user.GET("/me", publicHandler.GetMe)
			user.PUT("/me/profile", publicHandler.UpdateProfile)
			user.PUT("/me/password", publicHandler.ChangePassword)
			user.GET("/me/addresses", publicHandler.GetAddresses)
			user.POST("/me/addresses", publicHandler.CreateAddress)
			user.PUT("/me/addresses/:id", publicHandler.UpdateAddress)
			user.DELETE("/me/addresses/:id", publicHandler.DeleteAddress)
			user.GET("/users/cart", publicHandler.GetCart)
			user.POST("/users/cart", publicHandler.AddCartItem)
			user.PUT("/users/cart/:id", publicHandler.UpdateCartItem)
			user.DELETE("/users/cart/:id", publicHandler.DeleteCartItem)
			user.GET("/users/wishlist", publicHandler.GetWishlist)
			user.POST("/users/wishlist", publicHandler.AddWishlistItem)
			user.DELETE("/users/wishlist/:product_id", publicHandler.DeleteWishlistItem)
			user.POST("/orders", publicHandler.CreateOrder)
			user.GET("/orders", publicHandler.ListOrders)
			user.GET("/orders/:id", publicHandler.GetOrder)
		}

		// 管理员接口
		admin := apiV1.Group("/admin")
		admin.Use(UserJWTAuthMiddleware(cfg.JWT.SecretKey, c.UserRepo), RBACMiddleware(c.AuthzService))
		{
			admin.GET("/dashboard", adminHandler.GetDashboard)

			admin.GET("/products", adminHandler.ListAdminProducts)
			admin.POST("/products", adminHandler.CreateProduct)
			admin.PUT("/products/:id", adminHandler.UpdateProduct)
			admin.DELETE("/products/:id", adminHandler.DeleteProduct)

			admin.GET("/categories", adminHandler.ListAdminCategories)
			admin.POST("/categories", adminHandler.CreateCategory)
			admin.PUT("/categories/:id", adminHandler.UpdateCategory)
			admin.DELETE("/categories/:id", adminHandler.DeleteCategory)

			admin.GET("/coupons", adminHandler.ListCoupons)
			admin.POST("/coupons", adminHandler.CreateCoupon)
			admin.PUT("/coupons/:id", adminHandler.UpdateCoupon)
			admin.DELETE("/coupons/:id", adminHandler.DeleteCoupon)

			admin.GET("/orders", adminHandler.ListAdminOrders)
			admin.GET("/orders/:id", adminHandler.GetAdminOrder)
			admin.PATCH("/orders/:id", adminHandler.UpdateAdminOrder)
		}
	}

	// 健康检查
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	return r
}
