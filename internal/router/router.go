package router

import (
	"time"

	"github.com/SnigdhoNext27/bliss-store-suite-sub001/config"
	"github.com/SnigdhoNext27/bliss-store-suite-sub001/internal/domain"
	"github.com/SnigdhoNext27/bliss-store-suite-sub001/internal/handler"
	"github.com/SnigdhoNext27/bliss-store-suite-sub001/internal/middleware"
	"github.com/SnigdhoNext27/bliss-store-suite-sub001/internal/repository"
	"github.com/SnigdhoNext27/bliss-store-suite-sub001/internal/service"
	"github.com/SnigdhoNext27/bliss-store-suite-sub001/internal/ws"
	"github.com/SnigdhoNext27/bliss-store-suite-sub001/pkg/cloudinary"

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
	notificationRepo := repository.NewNotificationRepository(db)
	triggerRepo := repository.NewTriggerRepository(db)
	cartRepo := repository.NewCartRepository(db)
	restockRepo := repository.NewRestockRepository(db)
	audienceRepo := repository.NewAudienceRepository(db)

	hub := ws.NewHub()

	// Services
	emailSvc := service.NewEmailService(&cfg.Email)
	resolver := service.NewSegmentResolver(audienceRepo)
	notifSvc := service.NewNotificationService(notificationRepo, userRepo, resolver, emailSvc, hub)
	dispatchSvc := service.NewDispatchService(notificationRepo, notifSvc, cfg.Notify.DispatchBatchSize)
	triggerSvc := service.NewTriggerService(triggerRepo, cartRepo, restockRepo, audienceRepo, notifSvc, emailSvc, cfg.Notify.TriggerBatchSize)
	abtestSvc := service.NewABTestService(notificationRepo, resolver, emailSvc, hub)
	authSvc := service.NewAuthService(cfg, userRepo, triggerSvc)

	// Handlers
	authHandler := handler.NewAuthHandler(authSvc)
	notificationHandler := handler.NewNotificationHandler(notificationRepo, notifSvc, cfg.Notify.CenterFetchLimit)
	adminNotifHandler := handler.NewAdminNotificationHandler(notificationRepo, notifSvc, cloud)
	triggerHandler := handler.NewTriggerHandler(triggerRepo, triggerSvc)
	dispatchHandler := handler.NewDispatchHandler(dispatchSvc)
	abtestHandler := handler.NewABTestHandler(abtestSvc)

	authMw := middleware.AuthRequired(&cfg.JWT)
	adminMw := middleware.RequireRole(domain.RoleAdmin)

	api := r.Group("/api/v1")
	{
		authGroup := api.Group("/auth")
		{
			authGroup.POST("/register", authHandler.Register)
			authGroup.POST("/login", authHandler.Login)
			authGroup.POST("/refresh", authHandler.Refresh)
		}

		me := api.Group("/me")
		me.Use(authMw)
		{
			me.GET("/notifications", notificationHandler.List)
			me.PUT("/notifications/:id/read", notificationHandler.MarkRead)
			me.PUT("/notifications/read-all", notificationHandler.MarkAllRead)
			me.DELETE("/notifications", notificationHandler.ClearAll)
		}

		// Engagement beacons are unauthenticated; anonymous sessions
		// report opens/clicks too.
		api.POST("/notifications/:id/opened", notificationHandler.Opened)
		api.POST("/notifications/:id/clicked", notificationHandler.Clicked)

		admin := api.Group("/admin")
		admin.Use(authMw, adminMw)
		{
			admin.GET("/notifications", adminNotifHandler.List)
			admin.POST("/notifications", adminNotifHandler.Create)
			admin.DELETE("/notifications/:id", adminNotifHandler.Delete)
			admin.POST("/notifications/image", adminNotifHandler.UploadImage)

			admin.GET("/triggers", triggerHandler.List)
			admin.POST("/triggers", triggerHandler.Create)
			admin.PUT("/triggers/:id", triggerHandler.Update)
			admin.DELETE("/triggers/:id", triggerHandler.Delete)

			admin.POST("/ab-tests", abtestHandler.Create)
			admin.GET("/ab-tests", abtestHandler.List)
			admin.GET("/ab-tests/:name", abtestHandler.Metrics)
			admin.DELETE("/ab-tests/:id", abtestHandler.Delete)
		}

		// External-cadence task entrypoints.
		tasks := api.Group("/tasks")
		tasks.Use(authMw, adminMw)
		{
			tasks.POST("/triggers/run", triggerHandler.Run)
			tasks.POST("/dispatch/run", dispatchHandler.Run)
			tasks.POST("/events/order-status", triggerHandler.OrderStatus)
		}
	}

	r.GET("/ws/notifications", handler.UpgradeNotificationWS(&cfg.JWT, hub))

	return r
}
