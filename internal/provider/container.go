package provider

import (
	"github.com/aurora-mall/internal/authz"
	"github.com/aurora-mall/internal/cache"
	"github.com/aurora-mall/internal/config"
	"github.com/aurora-mall/internal/logger"
	"github.com/aurora-mall/internal/models"
	"github.com/aurora-mall/internal/queue"
	"github.com/aurora-mall/internal/repository"
	"github.com/aurora-mall/internal/service"
)

// Container 依赖注入容器
type Container struct {
	Config      *config.Config
	QueueClient *queue.Client

	// Repositories
	UserRepo      repository.UserRepository
	AddressRepo   repository.AddressRepository
	CategoryRepo  repository.CategoryRepository
	ProductRepo   repository.ProductRepository
	CartRepo      repository.CartRepository
	WishlistRepo  repository.WishlistRepository
	OrderRepo     repository.OrderRepository
	CouponRepo    repository.CouponRepository
	DashboardRepo repository.DashboardRepository

	// Services
	AuthzService       *authz.Service
	UserAuthService    *service.UserAuthService
	EmailService       *service.EmailService
	ProductService     *service.ProductService
	CategoryService    *service.CategoryService
	CartService        *service.CartService
	WishlistService    *service.WishlistService
	AddressService     *service.AddressService
	CouponService      *service.CouponService
	CouponAdminService *service.CouponAdminService
	OrderService       *service.OrderService
	DashboardService   *service.DashboardService
}

// NewContainer 初始化容器
func NewContainer(cfg *config.Config) *Container {
	// 初始化缓存
	if err := cache.InitRedis(&cfg.Redis); err != nil {
		logger.Warnw("provider_init_redis_failed", "error", err)
	}

	// 初始化队列客户端
	var queueClient *queue.Client
	if cfg.Queue.Enabled {
		qc, err := queue.NewClient(&cfg.Queue)
		if err != nil {
			logger.Errorw("provider_init_queue_client_failed", "error", err)
		} else {
			queueClient = qc
		}
	}

	c := &Container{
		Config:      cfg,
		QueueClient: queueClient,
	}

	// 1. 初始化 Repositories
	c.initRepositories()

	// 2. 初始化 Services
	c.initServices()

	return c
}

func (c *Container) initRepositories() {
	db := models.DB
	c.UserRepo = repository.NewUserRepository(db)
	c.AddressRepo = repository.NewAddressRepository(db)
	c.CategoryRepo = repository.NewCategoryRepository(db)
	c.ProductRepo = repository.NewProductRepository(db)
	c.CartRepo = repository.NewCartRepository(db)
	c.WishlistRepo = repository.NewWishlistRepository(db)
	c.OrderRepo = repository.NewOrderRepository(db)
	c.CouponRepo = repository.NewCouponRepository(db)
	c.DashboardRepo = repository.NewDashboardRepository(db)
}

func (c *Container) initServices() {
	authzService, err := authz.NewService(models.DB)
	if err != nil {
		logger.Errorw("provider_init_authz_failed", "error", err)
		panic(err)
	}
	c.AuthzService = authzService
	if err := c.AuthzService.BootstrapBuiltinRoles(); err != nil {
		logger.Errorw("provider_bootstrap_builtin_roles_failed", "error", err)
		panic(err)
	}

	c.EmailService = service.NewEmailService(&c.Config.Email, &c.Config.Site)
	c.UserAuthService = service.NewUserAuthService(c.Config, c.UserRepo, c.EmailService)
	c.ProductService = service.NewProductService(c.ProductRepo, c.CategoryRepo)
	c.CategoryService = service.NewCategoryService(c.CategoryRepo)
	c.CartService = service.NewCartService(c.CartRepo, c.ProductRepo)
	c.WishlistService = service.NewWishlistService(c.WishlistRepo, c.ProductRepo)
	c.AddressService = service.NewAddressService(c.AddressRepo)
	c.CouponService = service.NewCouponService(c.CouponRepo)
	c.CouponAdminService = service.NewCouponAdminService(c.CouponRepo)
	c.OrderService = service.NewOrderService(c.OrderRepo, c.ProductRepo, c.CartRepo, c.CouponRepo, c.CouponService, c.QueueClient, &c.Config.Order)
	c.DashboardService = service.NewDashboardService(c.DashboardRepo)
}
