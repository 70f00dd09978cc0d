package main

import (
	"time"

	"shoestore-service/internal/handler"
	"shoestore-service/internal/middleware"
	"shoestore-service/internal/store"
	"shoestore-service/pkg/config"
	"shoestore-service/pkg/database"
	"shoestore-service/pkg/logger"
	"shoestore-service/prometheus"

	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
)

func main() {
	// Load configuration from .env file and environment variables
	cfg, err := config.Load()
	if err != nil {
		panic("Failed to load configuration: " + err.Error())
	}

	// Initialize logger with config
	logger.InitLogger(cfg)
	log := logger.GetLogger()
	log.Info("Starting shoe store service...", zap.String("environment", cfg.Server.Env))

	// Initialize Prometheus metrics
	prometheus.InitMetrics(cfg)
	log.Info("Prometheus metrics initialized")

	// Establish the database connection and ensure the schema exists.
	// This is the only fatal failure path; everything later is surfaced
	// per request.
	db, err := database.Connect(cfg)
	if err != nil {
		log.Fatal("Failed to initialize database", zap.Error(err))
	}
	log.Info("Database connection established and migrations completed",
		zap.String("db_host", cfg.DB.Host),
		zap.String("db_name", cfg.DB.DBName))

	// Build the persistence layer and the entity handlers
	st := store.New(db)
	suppliers := handler.NewSupplierHandler(st.Suppliers)
	products := handler.NewProductHandler(st.Products)
	customers := handler.NewCustomerHandler(st.Customers)
	orders := handler.NewOrderHandler(st.Orders)
	orderDetails := handler.NewOrderDetailHandler(st.OrderDetails)
	shipments := handler.NewShipmentHandler(st.Shipments)

	// Create Echo instance
	e := echo.New()

	// Middleware
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.CORS())
	e.Use(middleware.RequestIDMiddleware)
	e.Use(middleware.MetricsMiddleware)

	// Request logging middleware
	e.Use(func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()

			// Process request
			err := next(c)

			// Log request details
			log := logger.FromContext(c)
			log.Info("HTTP Request",
				zap.String("method", c.Request().Method),
				zap.String("path", c.Request().URL.Path),
				zap.Int("status", c.Response().Status),
				zap.Float64("duration_s", time.Since(start).Seconds()),
				zap.String("ip", c.RealIP()),
			)

			return err
		}
	})

	// Health and metrics endpoints
	e.GET("/", handler.Hello)
	e.GET("/health", handler.Hello)
	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))

	// Supplier endpoints
	e.POST("/supplier", suppliers.Create)
	e.GET("/suppliers", suppliers.List)
	e.GET("/supplier/:id", suppliers.Get)
	e.PUT("/supplier/:id", suppliers.Update)
	e.DELETE("/supplier/:id", suppliers.Delete)

	// Product endpoints
	e.POST("/product", products.Create)
	e.GET("/products", products.List)
	e.GET("/product/:id", products.Get)
	e.PUT("/product/:id", products.Update)
	e.DELETE("/product/:id", products.Delete)

	// Customer endpoints
	e.POST("/customer", customers.Create)
	e.GET("/customers", customers.List)
	e.GET("/customer/:id", customers.Get)
	e.PUT("/customer/:id", customers.Update)
	e.DELETE("/customer/:id", customers.Delete)

	// Order endpoints
	e.POST("/order", orders.Create)
	e.GET("/orders", orders.List)
	e.GET("/order/:id", orders.Get)
	e.PUT("/order/:id", orders.Update)
	e.DELETE("/order/:id", orders.Delete)

	// Order detail endpoints (composite key, no get/update)
	e.POST("/orderdetail", orderDetails.Create)
	e.GET("/orderdetails", orderDetails.List)
	e.DELETE("/orderdetail/:order_id/:product_id", orderDetails.Delete)

	// Shipment endpoints (no get-by-id)
	e.POST("/shipment", shipments.Create)
	e.GET("/shipments", shipments.List)
	e.PUT("/shipment/:id", shipments.Update)
	e.DELETE("/shipment/:id", shipments.Delete)

	// Start server
	port := cfg.Server.Port
	log.Info("Starting server", zap.String("port", port))
	if err := e.Start(":" + port); err != nil {
		log.Fatal("Failed to start server", zap.Error(err))
	}
}
