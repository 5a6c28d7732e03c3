package router

import (
	"fmt"
	"strings"

	"github.com/snaki-next/internal/cache"
	"github.com/snaki-next/internal/config"
	"github.com/snaki-next/internal/constants"
	publichandlers "github.com/snaki-next/internal/http/handlers/public"
	"github.com/snaki-next/internal/http/response"
	"github.com/snaki-next/internal/i18n"
	"github.com/snaki-next/internal/logger"
	"github.com/snaki-next/internal/provider"

	"github.com/gin-gonic/gin"
)

// SetupRouter 初始化路由
func SetupRouter(cfg *config.Config, c *provider.Container) *gin.Engine {
	log := logger.L
	if log == nil {
		log = logger.Init(cfg.Server.Mode, cfg.Log.ToLoggerOptions())
	}
	if strings.EqualFold(strings.TrimSpace(cfg.Server.Mode), gin.ReleaseMode) {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()

	publicHandler := publichandlers.New(c)
	redisPrefix := strings.TrimSpace(cfg.Redis.Prefix)
	if redisPrefix == "" {
		redisPrefix = constants.RedisPrefixDefault
	}
	checkoutRule := RateLimitRule{
		Prefix:        fmt.Sprintf("%s:rate:checkout", redisPrefix),
		WindowSeconds: cfg.Security.CheckoutRateLimit.WindowSeconds,
		MaxRequests:   cfg.Security.CheckoutRateLimit.MaxRequests,
		MessageKey:    "error.checkout_too_many",
		FailOpen:      true,
	}
	checkoutLimiter := RateLimitMiddleware(cache.Client(), checkoutRule, KeyByIPAndCartSession)

	// 中间件
	r.Use(gin.Recovery())
	r.Use(RequestIDMiddleware())
	r.Use(LoggerMiddleware(log))
	r.Use(CORSMiddleware(cfg.CORS))

	r.NoRoute(func(ctx *gin.Context) {
		response.NotFound(ctx, i18n.T(i18n.ResolveLocale(ctx), "error.not_found"))
	})

	apiV1 := r.Group("/api/v1")
	{
		// 公开接口
		public := apiV1.Group("/public")
		{
			public.GET("/config", publicHandler.GetConfig)
			public.GET("/categories", publicHandler.GetCategories)
			public.GET("/products", publicHandler.GetProducts)
			public.GET("/products/:id", publicHandler.GetProduct)
			public.GET("/captcha/image", publicHandler.GetImageCaptcha)
		}

		// 购物车接口（按会话区分）
		cart := apiV1.Group("/cart")
		cart.Use(CartSessionMiddleware())
		{
			cart.GET("", publicHandler.GetCart)
			cart.DELETE("", publicHandler.ClearCart)
			cart.POST("/items", publicHandler.AddCartItem)
			cart.PUT("/items/:product_id", publicHandler.UpdateCartItem)
			cart.DELETE("/items/:product_id", publicHandler.DeleteCartItem)
		}

		// 结账接口
		checkout := apiV1.Group("/checkout")
		checkout.Use(CartSessionMiddleware())
		{
			checkout.POST("/validate", publicHandler.ValidateCheckoutStep)
			checkout.POST("/preview", publicHandler.PreviewCheckout)
			checkout.POST("/whatsapp", checkoutLimiter, publicHandler.SubmitCheckout)
		}

		// 在线支付
		apiV1.POST("/payments", CartSessionMiddleware(), checkoutLimiter, publicHandler.CreatePayment)
		apiV1.GET("/payments/callback", publicHandler.PaymentCallback)
	}

	return r
}
