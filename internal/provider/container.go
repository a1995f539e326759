package provider

import (
	"github.com/Fid-Arch/Jewellery-Store-sub001/internal/cache"
	"github.com/Fid-Arch/Jewellery-Store-sub001/internal/config"
	"github.com/Fid-Arch/Jewellery-Store-sub001/internal/logger"
	"github.com/Fid-Arch/Jewellery-Store-sub001/internal/models"
	"github.com/Fid-Arch/Jewellery-Store-sub001/internal/queue"
	"github.com/Fid-Arch/Jewellery-Store-sub001/internal/repository"
	"github.com/Fid-Arch/Jewellery-Store-sub001/internal/service"
)

// Container is the dependency injection container.
type Container struct {
	Config      *config.Config
	QueueClient *queue.Client

	// Repositories
	UserRepo          repository.UserRepository
	AddressRepo       repository.AddressRepository
	CategoryRepo      repository.CategoryRepository
	ProductRepo       repository.ProductRepository
	VariantRepo       repository.VariantRepository
	CartRepo          repository.CartRepository
	WishlistRepo      repository.WishlistRepository
	OrderRepo         repository.OrderRepository
	PaymentRepo       repository.PaymentRepository
	StockMovementRepo repository.StockMovementRepository
	PromotionRepo     repository.PromotionRepository
	ReviewRepo        repository.ReviewRepository
	ShipmentRepo      repository.ShipmentRepository

	// Services
	ProductService      *service.ProductService
	CategoryService     *service.CategoryService
	CartService         *service.CartService
	CheckoutService     *service.CheckoutService
	OrderService        *service.OrderService
	PaymentService      *service.PaymentService
	StockService        *service.StockService
	ShippingService     *service.ShippingService
	WishlistService     *service.WishlistService
	AddressService      *service.AddressService
	PromotionService    *service.PromotionService
	ReviewService       *service.ReviewService
	NotificationService *service.NotificationService
}

// NewContainer wires repositories and services from config.
func NewContainer(cfg *config.Config) *Container {
	if err := cache.InitRedis(&cfg.Redis); err != nil {
		logger.Warnw("provider_init_redis_failed", "error", err)
	}

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

	c.initRepositories()
	c.initServices()

	return c
}

func (c *Container) initRepositories() {
	db := models.DB
	c.UserRepo = repository.NewUserRepository(db)
	c.AddressRepo = repository.NewAddressRepository(db)
	c.CategoryRepo = repository.NewCategoryRepository(db)
	c.ProductRepo = repository.NewProductRepository(db)
	c.VariantRepo = repository.NewVariantRepository(db)
	c.CartRepo = repository.NewCartRepository(db)
	c.WishlistRepo = repository.NewWishlistRepository(db)
	c.OrderRepo = repository.NewOrderRepository(db)
	c.PaymentRepo = repository.NewPaymentRepository(db)
	c.StockMovementRepo = repository.NewStockMovementRepository(db)
	c.PromotionRepo = repository.NewPromotionRepository(db)
	c.ReviewRepo = repository.NewReviewRepository(db)
	c.ShipmentRepo = repository.NewShipmentRepository(db)
}

func (c *Container) initServices() {
	c.ProductService = service.NewProductService(c.ProductRepo, c.VariantRepo, c.StockMovementRepo, c.ReviewRepo)
	c.CategoryService = service.NewCategoryService(c.CategoryRepo)
	c.CartService = service.NewCartService(c.CartRepo, c.VariantRepo)
	c.CheckoutService = service.NewCheckoutService(c.CartRepo, c.OrderRepo, c.PaymentRepo, c.VariantRepo, c.StockMovementRepo, c.PromotionRepo, c.AddressRepo, c.QueueClient, c.Config.Order.PaymentExpireMinutes)
	c.OrderService = service.NewOrderService(c.OrderRepo, c.VariantRepo, c.StockMovementRepo, c.QueueClient)
	c.PaymentService = service.NewPaymentService(c.PaymentRepo, c.OrderRepo, c.QueueClient, &c.Config.Stripe)
	c.StockService = service.NewStockService(c.VariantRepo, c.StockMovementRepo)
	c.ShippingService = service.NewShippingService(&c.Config.AusPost, c.CartRepo, c.OrderRepo, c.ShipmentRepo, c.QueueClient)
	c.WishlistService = service.NewWishlistService(c.WishlistRepo, c.ProductRepo)
	c.AddressService = service.NewAddressService(c.AddressRepo)
	c.PromotionService = service.NewPromotionService(c.PromotionRepo)
	c.ReviewService = service.NewReviewService(c.ReviewRepo, c.ProductRepo, c.OrderRepo)
	c.NotificationService = service.NewNotificationService(&c.Config.Email, &c.Config.SMS, c.OrderRepo, c.UserRepo)
}
