package router

import (
	"fmt"
	"strings"

	"github.com/Fid-Arch/Jewellery-Store-sub001/internal/cache"
	"github.com/Fid-Arch/Jewellery-Store-sub001/internal/config"
	adminhandlers "github.com/Fid-Arch/Jewellery-Store-sub001/internal/http/handlers/admin"
	publichandlers "github.com/Fid-Arch/Jewellery-Store-sub001/internal/http/handlers/public"
	"github.com/Fid-Arch/Jewellery-Store-sub001/internal/logger"
	"github.com/Fid-Arch/Jewellery-Store-sub001/internal/provider"

	"github.com/gin-gonic/gin"
)

// SetupRouter builds the HTTP engine with all storefront and admin routes.
func SetupRouter(cfg *config.Config, c *provider.Container) *gin.Engine {
	log := logger.L
	if log == nil {
		log = logger.Init(cfg.Server.Mode, cfg.Log.ToLoggerOptions())
	}
	r := gin.New()

	publicHandler := publichandlers.New(c)
	adminHandler := adminhandlers.New(c)

	redisPrefix := strings.TrimSpace(cfg.Redis.Prefix)
	if redisPrefix == "" {
		redisPrefix = "store"
	}
	redisClient := cache.Client()
	checkoutRule := RateLimitRule{
		Prefix:        fmt.Sprintf("%s:rate:checkout", redisPrefix),
		WindowSeconds: cfg.Security.CheckoutRateLimit.WindowSeconds,
		MaxRequests:   cfg.Security.CheckoutRateLimit.MaxRequests,
	}
	webhookRule := RateLimitRule{
		Prefix:        fmt.Sprintf("%s:rate:webhook", redisPrefix),
		WindowSeconds: cfg.Security.WebhookRateLimit.WindowSeconds,
		MaxRequests:   cfg.Security.WebhookRateLimit.MaxRequests,
	}

	r.Use(gin.Recovery())
	r.Use(RequestIDMiddleware())
	r.Use(LoggerMiddleware(log))
	r.Use(CORSMiddleware(cfg.CORS))

	apiV1 := r.Group("/api/v1")
	{
		// Catalogue browsing, no auth required.
		public := apiV1.Group("/public")
		{
			public.GET("/products", publicHandler.ListProducts)
			public.GET("/products/:slug", publicHandler.GetProduct)
			public.GET("/categories", publicHandler.ListCategories)
			public.GET("/categories/:slug", publicHandler.GetCategory)
			public.GET("/reviews/:product_id", publicHandler.ListReviews)
		}

		// Stripe calls this directly; signature verification replaces auth.
		apiV1.POST("/payments/webhook/stripe",
			RateLimitMiddleware(redisClient, webhookRule, KeyByIP),
			publicHandler.StripeWebhook)

		// Storefront routes behind user auth.
		user := apiV1.Group("")
		user.Use(JWTAuthMiddleware(cfg.JWT.SecretKey, c.UserRepo))
		{
			user.GET("/cart", publicHandler.GetCart)
			user.POST("/cart/items", publicHandler.AddCartItem)
			user.PUT("/cart/items", publicHandler.UpdateCartItem)
			user.DELETE("/cart/items/:variant_id", publicHandler.RemoveCartItem)
			user.DELETE("/cart", publicHandler.ClearCart)

			user.POST("/checkout",
				RateLimitMiddleware(redisClient, checkoutRule, KeyByUser),
				publicHandler.Checkout)
			user.POST("/promotions/preview", publicHandler.PreviewPromotion)
			user.GET("/shipping/quote", publicHandler.QuoteShipping)

			user.GET("/orders", publicHandler.ListOrders)
			user.GET("/orders/:order_no", publicHandler.GetOrder)
			user.POST("/orders/:order_no/cancel", publicHandler.CancelOrder)
			user.GET("/orders/:order_no/shipment", publicHandler.GetShipment)
			user.POST("/orders/:order_no/payments", publicHandler.CreatePayment)
			user.GET("/orders/:order_no/payment", publicHandler.GetPayment)

			user.GET("/wishlist", publicHandler.ListWishlist)
			user.POST("/wishlist", publicHandler.AddWishlistItem)
			user.DELETE("/wishlist/:product_id", publicHandler.RemoveWishlistItem)

			user.GET("/addresses", publicHandler.ListAddresses)
			user.POST("/addresses", publicHandler.CreateAddress)
			user.PUT("/addresses/:id", publicHandler.UpdateAddress)
			user.DELETE("/addresses/:id", publicHandler.DeleteAddress)

			user.POST("/reviews", publicHandler.SubmitReview)
		}

		// Back office, admin role required.
		admin := apiV1.Group("/admin")
		admin.Use(JWTAuthMiddleware(cfg.JWT.SecretKey, c.UserRepo), AdminAuthMiddleware())
		{
			admin.GET("/orders", adminHandler.ListOrders)
			admin.GET("/orders/:id", adminHandler.GetOrder)
			admin.POST("/orders/:id/cancel", adminHandler.CancelOrder)
			admin.POST("/orders/:id/ship", adminHandler.ShipOrder)
			admin.POST("/orders/:id/deliver", adminHandler.DeliverOrder)

			admin.POST("/variants/:id/restock", adminHandler.RestockVariant)
			admin.POST("/variants/:id/adjust", adminHandler.AdjustVariantStock)
			admin.GET("/variants/:id/ledger", adminHandler.VerifyStockLedger)
			admin.GET("/stock-movements", adminHandler.ListStockMovements)

			admin.GET("/products", adminHandler.ListProducts)
			admin.GET("/products/:id", adminHandler.GetProduct)
			admin.POST("/products", adminHandler.CreateProduct)
			admin.PUT("/products/:id", adminHandler.UpdateProduct)
			admin.DELETE("/products/:id", adminHandler.DeleteProduct)

			admin.GET("/categories", adminHandler.ListCategories)
			admin.POST("/categories", adminHandler.CreateCategory)
			admin.PUT("/categories/:id", adminHandler.UpdateCategory)
			admin.DELETE("/categories/:id", adminHandler.DeleteCategory)

			admin.GET("/promotions", adminHandler.ListPromotions)
			admin.POST("/promotions", adminHandler.CreatePromotion)
			admin.PUT("/promotions/:id", adminHandler.UpdatePromotion)
			admin.DELETE("/promotions/:id", adminHandler.DeletePromotion)

			admin.GET("/reviews", adminHandler.ListReviews)
			admin.PATCH("/reviews/:id", adminHandler.ModerateReview)

			admin.GET("/payments", adminHandler.ListPayments)
		}
	}

	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	return r
}
