package api

import (
	"time"

	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	echoswagger "github.com/swaggo/echo-swagger"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/greenspace/marketplace/internal/api/handler"
	"github.com/greenspace/marketplace/internal/api/middleware"
	"github.com/greenspace/marketplace/internal/core/domain"
	"github.com/greenspace/marketplace/internal/core/service"
	mongodb "github.com/greenspace/marketplace/internal/infrastructure/db/mongo"
	redisdb "github.com/greenspace/marketplace/internal/infrastructure/db/redis"
)

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(db *mongo.Database, rdb *redis.Client, jwtSecret string, log zerolog.Logger) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.Logger())
	e.Use(echomiddleware.CORS())
	e.Use(echoprometheus.NewMiddleware("greenspace"))

	// --- Dependencies ---
	userRepo := mongodb.NewUserRepository(db)
	plotRepo := mongodb.NewPlotRepository(db)
	bookingRepo := mongodb.NewBookingRepository(db)
	statsCache := redisdb.NewStatsCache(rdb)

	authService := service.NewAuthService(userRepo, jwtSecret, 7*24*time.Hour)
	plotService := service.NewPlotService(plotRepo, log)
	bookingService := service.NewBookingService(bookingRepo, plotRepo, log)
	adminService := service.NewAdminService(userRepo, plotRepo, bookingRepo, statsCache, log)

	authHandler := handler.NewAuthHandler(authService)
	plotHandler := handler.NewPlotHandler(plotService)
	bookingHandler := handler.NewBookingHandler(bookingService)
	adminHandler := handler.NewAdminHandler(adminService)

	auth := middleware.Auth(jwtSecret)

	// --- Auth routes ---
	authGroup := e.Group("/api/auth")
	authGroup.POST("/register", authHandler.Register)
	authGroup.POST("/login", authHandler.Login)
	authGroup.GET("/me", authHandler.Profile, auth)
	authGroup.PUT("/me", authHandler.UpdateProfile, auth)
	authGroup.POST("/me/documents", authHandler.AttachDocuments, auth)

	// --- Plot routes ---
	plots := e.Group("/api/plots")
	plots.GET("", plotHandler.Search)
	plots.GET("/mine", plotHandler.ListMine, auth, middleware.RBAC(domain.RoleLandowner))
	plots.GET("/:id", plotHandler.Get)
	plots.POST("", plotHandler.Create, auth, middleware.RBAC(domain.RoleLandowner))
	plots.PUT("/:id", plotHandler.Update, auth, middleware.RBAC(domain.RoleLandowner))
	plots.DELETE("/:id", plotHandler.Delete, auth, middleware.RBAC(domain.RoleLandowner))
	plots.PUT("/:id/documents", plotHandler.ReplaceDocuments, auth, middleware.RBAC(domain.RoleLandowner))

	// --- Booking routes ---
	bookings := e.Group("/api/bookings", auth)
	bookings.POST("", bookingHandler.Create, middleware.RBAC(domain.RoleGardener))
	bookings.GET("/mine", bookingHandler.ListMine, middleware.RBAC(domain.RoleGardener))
	bookings.GET("/received", bookingHandler.ListReceived, middleware.RBAC(domain.RoleLandowner))
	bookings.GET("/:id", bookingHandler.Get)
	bookings.PUT("/:id/approve", bookingHandler.Approve, middleware.RBAC(domain.RoleLandowner))
	bookings.PUT("/:id/reject", bookingHandler.Reject, middleware.RBAC(domain.RoleLandowner))
	bookings.PUT("/:id/complete", bookingHandler.Complete, middleware.RBAC(domain.RoleLandowner))
	bookings.PUT("/:id/cancel", bookingHandler.Cancel, middleware.RBAC(domain.RoleGardener, domain.RoleAdmin))

	// --- Admin routes ---
	admin := e.Group("/api/admin", auth, middleware.RBAC(domain.RoleAdmin))
	admin.GET("/users", adminHandler.ListUsers)
	admin.GET("/users/:id", adminHandler.GetUser)
	admin.PUT("/users/:id/verify", adminHandler.VerifyUser)
	admin.GET("/plots", adminHandler.ListPlots)
	admin.GET("/plots/:id", adminHandler.GetPlot)
	admin.PUT("/plots/:id/verify", adminHandler.VerifyPlot)
	admin.GET("/bookings", adminHandler.ListBookings)
	admin.GET("/stats", adminHandler.Stats)

	// --- Operational endpoints ---
	e.GET("/metrics", echoprometheus.NewHandler())
	e.GET("/swagger/*", echoswagger.WrapHandler)

	// --- Health probes (no auth required) ---
	healthHandler := handler.NewHealthHandler()
	healthDepsHandler := handler.NewHealthDependenciesHandler(db, rdb)

	e.GET("/health", healthHandler.Liveness)            // liveness  – is the process alive?
	e.GET("/health/ready", healthDepsHandler.Readiness) // readiness – are dependencies up?

	return e
}
