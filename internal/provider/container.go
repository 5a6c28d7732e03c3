package provider

import (
	"strings"
	"time"

	"github.com/snaki-next/internal/cache"
	"github.com/snaki-next/internal/catalog"
	"github.com/snaki-next/internal/config"
	"github.com/snaki-next/internal/constants"
	"github.com/snaki-next/internal/logger"
	"github.com/snaki-next/internal/models"
	"github.com/snaki-next/internal/payment/fedapay"
	"github.com/snaki-next/internal/queue"
	"github.com/snaki-next/internal/repository"
	"github.com/snaki-next/internal/service"

	"gorm.io/gorm"
)

// Container 依赖注入容器
type Container struct {
	Config      *config.Config
	QueueClient *queue.Client

	// Repositories
	ProductRepo      repository.ProductRepository
	CategoryRepo     repository.CategoryRepository
	CartSnapshotRepo repository.CartSnapshotRepository

	// Gateways
	FedaPayClient   *fedapay.Client
	OrderDispatcher service.OrderDispatcher
	OrderSink       service.OrderDispatcher

	// Services
	CaptchaService  *service.CaptchaService
	ProductService  *service.ProductService
	CartService     *service.CartService
	CheckoutService *service.CheckoutService
	PaymentService  *service.PaymentService
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
	c.initRepositories(models.DB)

	// 2. 初始化网关
	c.initGateways()

	// 3. 初始化 Services
	c.initServices()

	return c
}

func (c *Container) initRepositories(db *gorm.DB) {
	if db != nil {
		c.ProductRepo = repository.NewProductRepository(db)
		c.CategoryRepo = repository.NewCategoryRepository(db)
	} else {
		logger.Warnw("provider_database_missing_use_static_catalog")
		c.ProductRepo = repository.NewMemoryProductRepository(catalog.Products())
		c.CategoryRepo = repository.NewMemoryCategoryRepository(catalog.Categories())
	}
	c.CartSnapshotRepo = SelectCartStorage(c.Config.Cart, db)
}

// SelectCartStorage 按配置选择购物车快照存储，不可用时回退到内存
func SelectCartStorage(cfg config.CartConfig, db *gorm.DB) repository.CartSnapshotRepository {
	storage := strings.ToLower(strings.TrimSpace(cfg.Storage))
	switch storage {
	case "", constants.CartStorageDatabase:
		if db != nil {
			return repository.NewCartSnapshotRepository(db)
		}
		logger.Warnw("provider_cart_storage_fallback_memory", "storage", storage, "reason", "database unavailable")
	case constants.CartStorageRedis:
		if cache.Enabled() {
			ttl := time.Duration(cfg.TTLHours) * time.Hour
			return cache.NewCartSnapshotStore(cache.Client(), cache.Prefix(), ttl)
		}
		logger.Warnw("provider_cart_storage_fallback_memory", "storage", storage, "reason", "redis disabled")
	case constants.CartStorageMemory:
	default:
		logger.Warnw("provider_cart_storage_unknown", "storage", storage)
	}
	return repository.NewMemoryCartSnapshotRepository()
}

func (c *Container) initGateways() {
	c.OrderSink = service.LogOrderDispatcher{}
	c.OrderDispatcher = service.NewQueueOrderDispatcher(c.QueueClient, c.OrderSink)

	fedaCfg := c.Config.Payment.FedaPay
	if !fedaCfg.Enabled {
		return
	}
	client, err := fedapay.NewClient(fedapay.Config{
		RelayURL:    fedaCfg.RelayURL,
		PublicKey:   fedaCfg.PublicKey,
		Environment: fedaCfg.Environment,
		Currency:    fedaCfg.Currency,
		CallbackURL: fedaCfg.CallbackURL,
		CancelURL:   fedaCfg.CancelURL,
		Simulation:  fedaCfg.Simulation,
		TimeoutMS:   fedaCfg.TimeoutMS,
	}, fedapay.BreakerSettings{
		MaxFailures:    fedaCfg.Breaker.MaxFailures,
		OpenSeconds:    fedaCfg.Breaker.OpenSeconds,
		HalfOpenProbes: fedaCfg.Breaker.HalfOpenProbes,
	})
	if err != nil {
		logger.Errorw("provider_init_fedapay_failed", "error", err)
		return
	}
	c.FedaPayClient = client
}

func (c *Container) initServices() {
	cfg := c.Config
	c.CaptchaService = service.NewCaptchaService(cfg.Captcha)
	c.ProductService = service.NewProductService(c.ProductRepo, c.CategoryRepo)
	c.CartService = service.NewCartService(c.CartSnapshotRepo, c.ProductService, cfg.Cart.StorageKey, cfg.Checkout.CurrencyLabel)
	c.CheckoutService = service.NewCheckoutService(c.CartService, c.OrderDispatcher, cfg.Checkout.WhatsAppNumber, cfg.Checkout.Timezone)

	var gateway service.PaymentGateway
	if c.FedaPayClient != nil {
		gateway = service.NewFedaPayGateway(c.FedaPayClient)
	}
	c.PaymentService = service.NewPaymentService(c.CartService, gateway, c.OrderDispatcher, c.QueueClient, service.PaymentServiceOptions{
		Enabled:        cfg.Payment.FedaPay.Enabled && c.FedaPayClient != nil,
		WhatsAppNumber: cfg.Checkout.WhatsAppNumber,
		Timezone:       cfg.Checkout.Timezone,
	})
}
