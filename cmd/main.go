package main

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
	_ "github.com/go-sql-driver/mysql"
	echojwt "github.com/labstack/echo-jwt/v4"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/rs/zerolog/log"
	"golang.org/x/time/rate"

	"marketplace-backend/internal/api"
	"marketplace-backend/internal/config"
	"marketplace-backend/internal/consumer"
	"marketplace-backend/internal/events"
	"marketplace-backend/internal/repository"
	"marketplace-backend/internal/service"
	"marketplace-backend/migrations"
)

func connectDB(host, port, user, pass, dbname string) (*sql.DB, error) {
	dsn := fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?parseTime=true", user, pass, host, port, dbname)

	var db *sql.DB
	var err error
	for i := 0; i < 10; i++ {
		db, err = sql.Open("mysql", dsn)
		if err == nil {
			err = db.Ping()
			if err == nil {
				log.Info().Msgf("Connected to DB %s", dbname)
				return db, nil
			}
		}
		log.Warn().Msgf("Retry %d: failed to connect to DB %s (%s:%s): %v", i+1, dbname, host, port, err)
		time.Sleep(3 * time.Second)
	}
	return nil, fmt.Errorf("failed to connect to DB %s at %s:%s after retries: %v", dbname, host, port, err)
}

func main() {
	cfg := config.Load()

	db, err := connectDB(cfg.DBHost, cfg.DBPort, cfg.DBUser, cfg.DBPass, cfg.DBName)
	if err != nil {
		log.Fatal().Err(err).Msg("database connection failed")
	}

	if err := migrations.AutoMigrate(3, db); err != nil {
		log.Fatal().Err(err).Msg("migrations failed")
	}

	rdb := redis.NewClient(&redis.Options{
		Addr: cfg.RedisAddr,
	})

	kafkaWriter := config.NewKafkaWriter(cfg.KafkaTopic)
	publisher := events.NewKafkaPublisher(kafkaWriter)

	userRepo := repository.NewMySQLUserRepository(db)
	catalogRepo := repository.NewMySQLCatalogRepository(db)
	retailPointRepo := repository.NewMySQLRetailPointRepository(db)
	inventoryRepo := repository.NewMySQLInventoryRepository(db)
	cartRepo := repository.NewMySQLCartRepository(db)
	orderRepo := repository.NewMySQLOrderRepository(db)
	tokenRepo := repository.NewMySQLTokenTransactionRepository(db)
	notificationRepo := repository.NewMySQLNotificationRepository(db)
	disputeRepo := repository.NewMySQLDisputeRepository(db)
	txm := repository.NewSQLTxManager(db)

	catalogService := service.NewCatalogService(catalogRepo, userRepo)
	inventoryService := service.NewInventoryService(inventoryRepo, retailPointRepo, userRepo, txm, publisher, rdb)
	cartService := service.NewCartService(cartRepo, inventoryRepo)
	orderService := service.NewOrderService(orderRepo, cartRepo, userRepo, inventoryService, txm, publisher, rdb)
	tokenService := service.NewTokenService(tokenRepo, userRepo, txm)
	notificationService := service.NewNotificationService(notificationRepo)
	disputeService := service.NewDisputeService(disputeRepo, orderRepo)

	kafkaReader := config.NewKafkaReader(cfg.KafkaTopic, cfg.KafkaGroupID)
	go consumer.NewConsumer(kafkaReader, notificationService).Run(context.Background())

	catalogHandler := api.NewCatalogHandler(catalogService)
	inventoryHandler := api.NewInventoryHandler(inventoryService)
	cartHandler := api.NewCartHandler(cartService)
	orderHandler := api.NewOrderHandler(orderService)
	tokenHandler := api.NewTokenHandler(tokenService)
	notificationHandler := api.NewNotificationHandler(notificationService)
	disputeHandler := api.NewDisputeHandler(disputeService)

	e := echo.New()

	limiterConfig := middleware.RateLimiterConfig{
		Skipper: middleware.DefaultSkipper,
		Store: middleware.NewRateLimiterMemoryStoreWithConfig(
			middleware.RateLimiterMemoryStoreConfig{
				Rate:      rate.Limit(20),
				Burst:     40,
				ExpiresIn: 3 * time.Minute,
			}),
		IdentifierExtractor: func(c echo.Context) (string, error) {
			return c.Request().RemoteAddr, nil
		},
		ErrorHandler: func(c echo.Context, err error) error {
			return c.JSON(429, map[string]string{"error": "rate limit exceeded"})
		},
		DenyHandler: func(c echo.Context, identifier string, err error) error {
			return c.JSON(429, map[string]string{"error": "rate limit exceeded"})
		},
	}

	e.Use(middleware.Logger())
	e.Use(middleware.Recover())
	e.Use(middleware.RateLimiterWithConfig(limiterConfig))

	e.GET("/health", func(c echo.Context) error {
		return c.JSON(200, map[string]interface{}{
			"status":  "ok",
			"service": "marketplace-backend",
			"time":    time.Now().Format(time.RFC3339),
		})
	})

	// Public catalog browsing.
	e.GET("/categories", catalogHandler.ListCategories)
	e.GET("/products", catalogHandler.ListProducts)
	e.GET("/products/:id", catalogHandler.GetProduct)
	e.GET("/products/:id/formats", catalogHandler.ListFormats)
	e.GET("/retail-points/:id/inventories", inventoryHandler.ListByRetailPoint)

	// Everything else requires a verified token.
	g := e.Group("", echojwt.JWT([]byte(cfg.JWTSecret)))

	g.POST("/products", catalogHandler.CreateProduct)
	g.POST("/products/:id/formats", catalogHandler.CreateFormat)
	g.PUT("/formats/:id", catalogHandler.UpdateFormat)
	g.DELETE("/formats/:id", catalogHandler.DeleteFormat)

	g.POST("/retail-points", inventoryHandler.CreateRetailPoint)
	g.GET("/retail-points", inventoryHandler.ListRetailPoints)

	g.POST("/inventories", inventoryHandler.CreateInventory)
	g.GET("/inventories", inventoryHandler.ListInventories)
	g.GET("/inventories/:id", inventoryHandler.GetInventory)
	g.PUT("/inventories/:id", inventoryHandler.UpdateInventory)
	g.DELETE("/inventories/:id", inventoryHandler.DeleteInventory)
	g.POST("/inventories/:id/movements", inventoryHandler.CreateMovement)
	g.GET("/inventories/:id/movements", inventoryHandler.ListMovements)

	g.GET("/cart", cartHandler.GetCart)
	g.POST("/cart/items", cartHandler.AddItem)
	g.DELETE("/cart/items/:id", cartHandler.RemoveItem)

	g.POST("/orders/checkout", orderHandler.Checkout)
	g.GET("/orders", orderHandler.ListOrders)
	g.GET("/orders/:id", orderHandler.GetOrder)
	g.PUT("/orders/:id/status", orderHandler.UpdateStatus)

	g.POST("/tokens/transactions", tokenHandler.CreateTransaction)
	g.GET("/tokens/transactions", tokenHandler.ListTransactions)

	g.GET("/notifications", notificationHandler.ListNotifications)
	g.PUT("/notifications/:id/read", notificationHandler.MarkRead)

	g.POST("/disputes", disputeHandler.CreateDispute)
	g.GET("/disputes", disputeHandler.ListDisputes)
	g.GET("/disputes/:id", disputeHandler.GetDispute)
	g.POST("/disputes/:id/messages", disputeHandler.AddMessage)
	g.PUT("/disputes/:id/resolve", disputeHandler.ResolveDispute)

	e.Logger.Fatal(e.Start(cfg.HTTPAddr))
}
