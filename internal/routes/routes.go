package routes

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/phone-reserve/internal/audit"
	"github.com/BruksfildServices01/phone-reserve/internal/auth"
	"github.com/BruksfildServices01/phone-reserve/internal/config"
	dbpkg "github.com/BruksfildServices01/phone-reserve/internal/db"
	"github.com/BruksfildServices01/phone-reserve/internal/handlers"
	infraRepo "github.com/BruksfildServices01/phone-reserve/internal/infra/repository"
	"github.com/BruksfildServices01/phone-reserve/internal/metrics"
	"github.com/BruksfildServices01/phone-reserve/internal/middleware"
	"github.com/BruksfildServices01/phone-reserve/internal/storage"
	"github.com/BruksfildServices01/phone-reserve/internal/timezone"
	ucReservation "github.com/BruksfildServices01/phone-reserve/internal/usecase/reservation"
)

// Deps are the long-lived collaborators built in main.
type Deps struct {
	DB       *gorm.DB
	Config   *config.Config
	Log      zerolog.Logger
	Audit    *audit.Dispatcher
	Redis    *redis.Client // nil disables rate limiting
	Uploader *storage.ImageUploader
}

func RegisterRoutes(r *gin.Engine, d Deps) {

	// ======================================================
	// MIDDLEWARE GLOBAL
	// ======================================================
	r.Use(middleware.RequestLogger(d.Log))
	r.Use(middleware.CORSMiddleware(d.Config.CORSOrigins...))

	// ======================================================
	// INFRA
	// ======================================================
	reservationRepo := infraRepo.NewReservationGormRepository(d.DB)
	issuer := auth.NewTokenIssuer(d.Config.JWTSecret, d.Config.JWTTTL)
	clock := timezone.SystemClock()

	// ======================================================
	// USE CASES - RESERVATIONS
	// ======================================================
	getAvailabilityUC := ucReservation.NewGetAvailability(
		reservationRepo,
		clock,
		d.Log,
	)

	createReservationUC := ucReservation.NewCreateReservation(
		reservationRepo,
		d.Audit,
		clock,
	)

	transitionReservationUC := ucReservation.NewTransitionReservation(
		reservationRepo,
		d.Audit,
		clock,
	)

	listReservationsUC := ucReservation.NewListReservations(
		reservationRepo,
	)

	// ======================================================
	// HANDLERS
	// ======================================================
	authHandler := handlers.NewAuthHandler(d.DB, issuer)
	meHandler := handlers.NewMeHandler(d.DB)
	storeHandler := handlers.NewStoreHandler(d.DB)

	reservationHandler := handlers.NewReservationHandler(
		getAvailabilityUC,
		createReservationUC,
		transitionReservationUC,
		listReservationsUC,
	)

	favoriteHandler := handlers.NewFavoriteHandler(d.DB)
	reviewHandler := handlers.NewReviewHandler(d.DB, d.Audit)

	sellerStoreHandler := handlers.NewSellerStoreHandler(d.DB, d.Audit, d.Uploader)
	sellerProductHandler := handlers.NewSellerProductHandler(d.DB, d.Audit, d.Uploader)

	adminHandler := handlers.NewAdminHandler(d.DB, d.Audit)
	auditLogsHandler := handlers.NewAuditLogsHandler(d.DB)

	requireAuth := middleware.AuthMiddleware(issuer)

	limitReservations := func(c *gin.Context) { c.Next() }
	if d.Redis != nil {
		limiter := middleware.NewRedisRateLimiter(d.Redis, d.Config.RateLimitPerMinute, time.Minute, "rl:reservations")
		limitReservations = limiter.Middleware(d.Log)
	}

	// ======================================================
	// OPS
	// ======================================================
	r.GET("/metrics", gin.WrapH(metrics.Handler()))

	// ======================================================
	// API (JSON)
	// ======================================================
	api := r.Group("/api")
	{
		// ------------------------------
		// AUTH
		// ------------------------------
		api.POST("/auth/register", authHandler.RegisterConsumer)
		api.POST("/auth/register/seller", authHandler.RegisterSeller)
		api.POST("/auth/login", authHandler.Login)

		// ------------------------------
		// PUBLIC CATALOGUE
		// ------------------------------
		api.GET("/stores", storeHandler.ListStores)
		api.GET("/stores/:id", storeHandler.GetStore)
		api.GET("/stores/:id/products", storeHandler.ListProducts)
		api.GET("/stores/:id/products/:productId", storeHandler.GetProduct)
		api.GET("/stores/:id/availability", reservationHandler.Availability)
		api.GET("/stores/:id/reviews", storeHandler.ListReviews)

		// ------------------------------
		// ANY SIGNED-IN USER
		// ------------------------------
		secured := api.Group("/")
		secured.Use(requireAuth)
		{
			secured.GET("/me", meHandler.GetMe)
		}

		// ------------------------------
		// CONSUMER
		// ------------------------------
		consumer := api.Group("/")
		consumer.Use(requireAuth, middleware.RequireRole(auth.RoleConsumer))
		{
			consumer.POST("/reservations", limitReservations, reservationHandler.Create)
			consumer.GET("/me/reservations", reservationHandler.ListMine)
			consumer.POST("/me/reservations/:id/cancel", reservationHandler.Cancel)

			consumer.GET("/me/favorites", favoriteHandler.List)
			consumer.PUT("/me/favorites/:storeId", favoriteHandler.Add)
			consumer.DELETE("/me/favorites/:storeId", favoriteHandler.Remove)

			consumer.POST("/stores/:id/reviews", reviewHandler.Create)
			consumer.GET("/me/reviews", reviewHandler.ListMine)
			consumer.DELETE("/me/reviews/:id", reviewHandler.Delete)
		}

		// ------------------------------
		// SELLER
		// ------------------------------
		seller := api.Group("/seller")
		seller.Use(
			requireAuth,
			middleware.RequireRole(auth.RoleSeller),
			middleware.RequireApprovedStore(dbpkg.StoreApproved(d.DB)),
		)
		{
			seller.GET("/store", sellerStoreHandler.GetStore)
			seller.PATCH("/store", sellerStoreHandler.UpdateStore)
			seller.POST("/store/image", sellerStoreHandler.UploadImage)

			seller.GET("/operating-hours", sellerStoreHandler.GetHours)
			seller.PUT("/operating-hours", sellerStoreHandler.PutHours)

			seller.GET("/products", sellerProductHandler.List)
			seller.POST("/products", sellerProductHandler.Create)
			seller.PATCH("/products/:id", sellerProductHandler.Update)
			seller.DELETE("/products/:id", sellerProductHandler.Delete)
			seller.POST("/products/:id/image", sellerProductHandler.UploadImage)

			seller.GET("/reservations", reservationHandler.ListStore)
			seller.POST("/reservations/:id/:action", reservationHandler.Transition)

			seller.GET("/audit-logs", auditLogsHandler.List)
		}

		// ------------------------------
		// ADMIN
		// ------------------------------
		admin := api.Group("/admin")
		admin.Use(requireAuth, middleware.RequireRole(auth.RoleAdmin))
		{
			admin.GET("/sellers", adminHandler.ListSellers)
			admin.POST("/sellers/:id/approve", adminHandler.ApproveSeller)
			admin.POST("/sellers/:id/reject", adminHandler.RejectSeller)

			admin.POST("/reviews/:id/hide", adminHandler.HideReview)
			admin.POST("/reviews/:id/unhide", adminHandler.UnhideReview)

			admin.POST("/products/:id/deactivate", adminHandler.DeactivateProduct)

			admin.POST("/reservations/:id/:action", reservationHandler.Transition)

			admin.GET("/audit-logs", auditLogsHandler.List)
		}
	}
}
