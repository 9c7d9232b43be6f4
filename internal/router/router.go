package router

import (
	"net/http"
	"time"

	"creatorkart/config"
	"creatorkart/internal/domain"
	"creatorkart/internal/handler"
	"creatorkart/internal/middleware"
	"creatorkart/internal/money"
	"creatorkart/internal/repository"
	"creatorkart/internal/service"
	"creatorkart/pkg/gateway"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

func Setup(cfg *config.Config, db *gorm.DB, provider gateway.Provider, mail service.EmailSender) *gin.Engine {
	if cfg.Server.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RateLimit(middleware.NewRateLimiter(300, time.Minute)))

	// Tighter budgets for the money-moving surfaces.
	checkoutLimit := middleware.RateLimit(middleware.NewRateLimiter(20, time.Minute))
	webhookLimit := middleware.RateLimit(middleware.NewRateLimiter(120, time.Minute))

	// Repositories
	store := repository.NewStore(db)
	userRepo := repository.NewUserRepository(db)
	creatorRepo := repository.NewCreatorRepository(db)
	productRepo := repository.NewProductRepository(db)
	orderRepo := repository.NewOrderRepository(db)

	// Services
	authSvc := service.NewAuthService(cfg, userRepo, creatorRepo)
	ledger := service.NewLedger(store)
	fulfillment := service.NewFulfillment(store, mail, cfg.AppURL)
	settlement := service.NewSettlement(store, ledger, fulfillment, money.ParseRate(cfg.Commission.Rate))

	// Handlers
	authHandler := handler.NewAuthHandler(authSvc)
	storefrontHandler := handler.NewStorefrontHandler(creatorRepo, productRepo)
	productHandler := handler.NewProductHandler(productRepo)
	checkoutHandler := handler.NewCheckoutHandler(settlement, orderRepo, provider)
	webhookHandler := handler.NewWebhookHandler(settlement, provider)
	walletHandler := handler.NewWalletHandler(store)
	payoutHandler := handler.NewPayoutHandler(ledger, store, creatorRepo)
	adminHandler := handler.NewAdminHandler(ledger, store)

	authMw := middleware.AuthRequired(&cfg.JWT)
	buyerMw := middleware.RequireRole(domain.RoleBuyer)
	creatorMw := middleware.RequireRole(domain.RoleCreator)
	adminMw := middleware.RequireRole(domain.RoleAdmin)

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	api := r.Group("/api/v1")
	{
		authGroup := api.Group("/auth")
		{
			authGroup.POST("/register", authHandler.Register)
			authGroup.POST("/login", authHandler.Login)
			authGroup.POST("/refresh", authHandler.Refresh)
		}

		api.GET("/storefront/:slug", storefrontHandler.GetStorefront)
		api.GET("/storefront/:slug/:productSlug", storefrontHandler.GetProduct)

		api.POST("/webhooks/razorpay", webhookLimit, webhookHandler.Handle)

		buyer := api.Group("")
		buyer.Use(authMw, buyerMw)
		{
			buyer.POST("/checkout", checkoutLimit, checkoutHandler.Checkout)
			buyer.GET("/orders/:id", checkoutHandler.GetOrder)
			buyer.GET("/me/library", checkoutHandler.Library)
		}

		creator := api.Group("/creator")
		creator.Use(authMw, creatorMw)
		{
			creator.GET("/products", productHandler.List)
			creator.POST("/products", productHandler.Create)
			creator.PATCH("/products/:id", productHandler.Update)
			creator.GET("/wallet", walletHandler.GetWallet)
			creator.POST("/payouts", payoutHandler.Create)
			creator.GET("/payouts", payoutHandler.List)
			creator.PATCH("/bank", payoutHandler.UpdateBankDetails)
		}

		admin := api.Group("/admin")
		admin.Use(authMw, adminMw)
		{
			admin.GET("/payouts", adminHandler.ListPayouts)
			admin.POST("/payouts/:id/settle", adminHandler.SettlePayout)
			admin.POST("/adjustments", adminHandler.Adjust)
			admin.GET("/wallets/:id/reconcile", adminHandler.ReconcileWallet)
		}
	}

	return r
}
