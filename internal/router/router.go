package router

import (
	"time"

	"listen/config"
	"listen/internal/domain"
	"listen/internal/handler"
	"listen/internal/middleware"
	"listen/internal/repository"
	"listen/internal/service"
	"listen/internal/ws"
	"listen/pkg/cloudinary"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

func Setup(cfg *config.Config, db *gorm.DB, cloud cloudinary.Client) *gin.Engine {
	if cfg.Server.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RateLimit(middleware.NewInMemoryRateLimiter(100, 60*time.Second)))

	// Repositories
	userRepo := repository.NewUserRepository(db)
	productRepo := repository.NewProductRepository(db)
	supplierRepo := repository.NewSupplierRepository(db)
	clientRepo := repository.NewClientRepository(db)
	purchaseRepo := repository.NewPurchaseRepository(db)
	saleRepo := repository.NewSaleRepository(db)
	invoiceRepo := repository.NewInvoiceRepository(db)
	notificationRepo := repository.NewNotificationRepository(db)
	auditRepo := repository.NewAuditLogRepository(db)

	hub := ws.NewHub()

	// Services
	authSvc := service.NewAuthService(cfg, userRepo)
	storeSvc := service.NewStoreAuthService(cfg, clientRepo)
	notifSvc := service.NewNotificationService(notificationRepo, hub)
	saleSvc := service.NewSaleService(saleRepo, productRepo, clientRepo, invoiceRepo, notifSvc)
	purchaseSvc := service.NewPurchaseService(purchaseRepo, productRepo, supplierRepo, notifSvc)
	reportSvc := service.NewReportService(saleRepo, purchaseRepo, notifSvc)

	// Handlers
	authHandler := handler.NewAuthHandler(authSvc)
	userHandler := handler.NewUserHandler(authSvc, userRepo, auditRepo, notifSvc)
	productHandler := handler.NewProductHandler(productRepo, cloud, cfg.Stock.DefaultLowThreshold)
	supplierHandler := handler.NewSupplierHandler(supplierRepo)
	clientHandler := handler.NewClientHandler(clientRepo)
	purchaseHandler := handler.NewPurchaseHandler(purchaseSvc, purchaseRepo)
	saleHandler := handler.NewSaleHandler(saleSvc, saleRepo)
	notificationHandler := handler.NewNotificationHandler(notifSvc)
	reportHandler := handler.NewReportHandler(reportSvc)
	storeHandler := handler.NewStoreHandler(storeSvc, saleSvc, productRepo, saleRepo)
	googleOAuthHandler := handler.NewGoogleOAuthHandler(cfg, storeSvc)

	authMw := middleware.AuthRequired(&cfg.JWT)
	staffMw := middleware.RequireRole(domain.RoleAdmin, domain.RoleStaff)

	api := r.Group("/api/v1")
	{
		authGroup := api.Group("/auth")
		{
			authGroup.POST("/login", authHandler.Login)
			authGroup.POST("/refresh", authHandler.Refresh)
			authGroup.PATCH("/change-password", authMw, staffMw, authHandler.ChangePassword)
		}

		// Back office
		office := api.Group("")
		office.Use(authMw, staffMw)
		{
			office.GET("/products", productHandler.List)
			office.GET("/products/:id", productHandler.Get)
			office.POST("/products", productHandler.Create)
			office.PUT("/products/:id", productHandler.Update)
			office.DELETE("/products/:id", productHandler.Delete)
			office.POST("/products/:id/image", productHandler.UploadImage)

			office.GET("/suppliers", supplierHandler.List)
			office.GET("/suppliers/:id", supplierHandler.Get)
			office.POST("/suppliers", supplierHandler.Create)
			office.PUT("/suppliers/:id", supplierHandler.Update)
			office.DELETE("/suppliers/:id", supplierHandler.Delete)

			office.GET("/clients", clientHandler.List)
			office.GET("/clients/:id", clientHandler.Get)
			office.POST("/clients", clientHandler.Create)
			office.PUT("/clients/:id", clientHandler.Update)
			office.DELETE("/clients/:id", clientHandler.Delete)

			office.GET("/purchases", purchaseHandler.List)
			office.GET("/purchases/:id", purchaseHandler.Get)
			office.POST("/purchases", purchaseHandler.Create)
			office.PATCH("/purchases/:id/status", purchaseHandler.UpdateStatus)

			office.GET("/sales", saleHandler.List)
			office.GET("/sales/:id", saleHandler.Get)
			office.POST("/sales", saleHandler.Create)
			office.PATCH("/sales/:id/status", saleHandler.UpdateStatus)
			office.POST("/sales/:id/invoice", saleHandler.GenerateInvoice)

			office.GET("/notifications", notificationHandler.List)
			office.POST("/notifications/read-all", notificationHandler.MarkAllRead)
			office.DELETE("/notifications/read", notificationHandler.DeleteRead)
		}

		// Admin only
		admin := api.Group("/admin")
		admin.Use(authMw, middleware.AdminRequired())
		{
			admin.GET("/users", userHandler.List)
			admin.POST("/users", userHandler.Create)
			admin.PUT("/users/:id", userHandler.Update)
			admin.DELETE("/users/:id", userHandler.Delete)

			admin.GET("/reports/sales", reportHandler.Sales)
			admin.GET("/reports/purchases", reportHandler.Purchases)
		}

		// Public storefront
		store := api.Group("/store")
		{
			store.GET("/products", storeHandler.ListProducts)
			store.GET("/products/:id", storeHandler.GetProduct)
			store.POST("/register", storeHandler.Register)
			store.POST("/login", storeHandler.Login)
			store.GET("/auth/google", googleOAuthHandler.Redirect)
			store.GET("/auth/google/callback", googleOAuthHandler.Callback)

			orders := store.Group("")
			orders.Use(authMw, middleware.RequireRole(domain.RoleClient))
			{
				orders.POST("/orders", storeHandler.PlaceOrder)
				orders.GET("/orders", storeHandler.MyOrders)
			}
		}
	}

	r.GET("/ws/notifications", ws.UpgradeNotificationsWS(&cfg.JWT, hub))

	return r
}
