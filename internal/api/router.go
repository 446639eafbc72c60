package api

import (
	"time"

	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	echoSwagger "github.com/swaggo/echo-swagger"
	"go.mongodb.org/mongo-driver/mongo"

	_ "github.com/swiftroute/logistics-api/docs"
	"github.com/swiftroute/logistics-api/internal/api/handler"
	"github.com/swiftroute/logistics-api/internal/api/middleware"
	"github.com/swiftroute/logistics-api/internal/core/domain"
	"github.com/swiftroute/logistics-api/internal/core/service"
	mongodb "github.com/swiftroute/logistics-api/internal/infrastructure/db/mongo"
	redisdb "github.com/swiftroute/logistics-api/internal/infrastructure/db/redis"
)

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(client *mongo.Client, db *mongo.Database, rdb *redis.Client, jwtSecret string, log zerolog.Logger) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.RequestLoggerWithConfig(echomiddleware.RequestLoggerConfig{
		LogURI:       true,
		LogStatus:    true,
		LogMethod:    true,
		LogLatency:   true,
		LogRequestID: true,
		LogValuesFunc: func(c echo.Context, v echomiddleware.RequestLoggerValues) error {
			log.Info().
				Str("method", v.Method).
				Str("uri", v.URI).
				Int("status", v.Status).
				Dur("latency", v.Latency).
				Str("request_id", v.RequestID).
				Msg("request")
			return nil
		},
	}))
	e.Use(echoprometheus.NewMiddleware("logistics"))

	// --- Repositories ---
	shipmentRepo := mongodb.NewShipmentRepository(client, db)
	userRepo := mongodb.NewUserRepository(db)
	complaintRepo := mongodb.NewComplaintRepository(db)
	productRepo := mongodb.NewProductRepository(db)
	aggregateCache := redisdb.NewAggregateCache(rdb)

	// --- Services ---
	shipmentService := service.NewShipmentService(shipmentRepo, userRepo, productRepo, aggregateCache, log)
	assignmentService := service.NewAssignmentService(shipmentRepo, userRepo, log)
	complaintService := service.NewComplaintService(complaintRepo, aggregateCache, log)
	aggregateService := service.NewAggregateService(shipmentRepo, complaintRepo, aggregateCache, log)
	authService := service.NewAuthService(userRepo, jwtSecret, 24*time.Hour)
	userService := service.NewUserService(userRepo, log)
	productService := service.NewProductService(productRepo, log)

	// --- Handlers ---
	shipmentHandler := handler.NewShipmentHandler(shipmentService, assignmentService)
	complaintHandler := handler.NewComplaintHandler(complaintService)
	aggregateHandler := handler.NewAggregateHandler(aggregateService)
	authHandler := handler.NewAuthHandler(authService)
	userHandler := handler.NewUserHandler(userService)
	productHandler := handler.NewProductHandler(productService)
	healthHandler := handler.NewHealthHandler()
	readinessHandler := handler.NewReadinessHandler(db, rdb)

	// --- Public routes ---
	e.POST("/auth/register", authHandler.Register)
	e.POST("/auth/login", authHandler.Login)
	e.GET("/health", healthHandler.Liveness)
	e.GET("/health/ready", readinessHandler.Readiness)
	e.GET("/metrics", echoprometheus.NewHandler())
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	// --- Authenticated routes ---
	v1 := e.Group("/v1", middleware.Auth(jwtSecret))
	reviewerOnly := middleware.RBAC(domain.RoleAdmin, domain.RoleManager)

	v1.POST("/shipments", shipmentHandler.Create, reviewerOnly)
	v1.GET("/shipments", shipmentHandler.List)
	v1.GET("/shipments/track/:code", shipmentHandler.Track)
	v1.PATCH("/shipments/:id/status", shipmentHandler.UpdateStatus)
	v1.PATCH("/shipments/:id/driver", shipmentHandler.Assign, reviewerOnly)
	v1.DELETE("/shipments/:id", shipmentHandler.Delete, reviewerOnly)
	v1.GET("/drivers/:id/load", shipmentHandler.DriverLoad)

	v1.POST("/complaints", complaintHandler.File)
	v1.GET("/complaints", complaintHandler.List)
	v1.PUT("/complaints/:id", complaintHandler.UpdateStatus)
	v1.DELETE("/complaints/:id", complaintHandler.Delete)

	v1.GET("/aggregates", aggregateHandler.Get, reviewerOnly)

	v1.GET("/users", userHandler.List)
	v1.PATCH("/users/:id", userHandler.Update, reviewerOnly)
	v1.DELETE("/users/:id", userHandler.Delete, reviewerOnly)

	v1.POST("/products", productHandler.Create, reviewerOnly)
	v1.GET("/products", productHandler.List)
	v1.GET("/products/:sku", productHandler.GetBySKU)
	v1.PUT("/products/:sku", productHandler.Update, reviewerOnly)
	v1.DELETE("/products/:sku", productHandler.Delete, reviewerOnly)

	return e
}
