package main

import (
	"fmt"
	"net/http"
	"os"

	"github.com/gin-gonic/gin"

	"folio/internal/config"
	"folio/internal/database"
	"folio/internal/handlers"
	"folio/internal/logger"
	"folio/internal/middleware"
	"folio/internal/services"
	"folio/internal/storage"
	"folio/internal/validator"
)

func main() {
	logger.Init(os.Getenv("ENV"))
	defer logger.Sync()

	if err := run(); err != nil {
		logger.Get().Fatalf("Fatal error: %v", err)
	}
}

func run() error {
	log := logger.Get()

	// Load configuration
	appConfig, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	// Open database and ensure the kv_entries table exists
	dbManager, err := database.NewManager(database.NewConfig(appConfig))
	if err != nil {
		return fmt.Errorf("failed to create database manager: %w", err)
	}
	if err := dbManager.Migrate(); err != nil {
		return fmt.Errorf("failed to run database migrations: %w", err)
	}

	// Initialize services over the key-value store
	store := storage.NewGormStore(dbManager.DB())
	registryService, err := services.NewRegistryService(store)
	if err != nil {
		return fmt.Errorf("failed to load symbol registry: %w", err)
	}
	valuationService := services.NewValuationService()
	ledgerService, err := services.NewLedgerService(store, valuationService)
	if err != nil {
		return fmt.Errorf("failed to load transaction ledger: %w", err)
	}

	// Initialize handlers
	symbolHandler := handlers.NewSymbolHandler(registryService)
	transactionHandler := handlers.NewTransactionHandler(ledgerService)
	portfolioHandler := handlers.NewPortfolioHandler(registryService, ledgerService, valuationService)

	// Register custom binding validators
	validator.Register()

	// Initialize Gin router
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestLogging())
	router.Use(middleware.ErrorHandler())

	// CORS middleware
	router.Use(func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	})

	// Health check endpoint
	router.GET("/api/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	// API v1 group
	v1 := router.Group("/api/v1")

	// Symbol registry routes
	symbols := v1.Group("/symbols")
	symbols.POST("", symbolHandler.CreateSymbol)
	symbols.GET("", symbolHandler.ListSymbols)
	symbols.GET("/:id", symbolHandler.GetSymbol)
	symbols.PUT("/:id", symbolHandler.UpdateSymbol)
	symbols.DELETE("/:id", symbolHandler.DeleteSymbol)

	// Transaction ledger routes
	transactions := v1.Group("/transactions")
	transactions.POST("", transactionHandler.CreateTransaction)
	transactions.GET("", transactionHandler.ListTransactions)
	transactions.GET("/available", transactionHandler.GetAvailableAmount)
	transactions.GET("/:id", transactionHandler.GetTransaction)
	transactions.PUT("/:id", transactionHandler.UpdateTransaction)
	transactions.DELETE("/:id", transactionHandler.DeleteTransaction)

	// Portfolio summary
	v1.GET("/portfolio", portfolioHandler.GetPortfolio)

	log.Infof("Starting folio server on port %s", appConfig.Port)
	return router.Run(":" + appConfig.Port)
}
