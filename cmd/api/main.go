package main

import (
	"context"
	"fmt"
	"net/http"
	"os"

	"github.com/gin-gonic/gin"

	"finbook/internal/auth"
	"finbook/internal/config"
	"finbook/internal/handlers"
	"finbook/internal/logger"
	"finbook/internal/middleware"
	"finbook/internal/services"
	"finbook/internal/store/firestore"
	"finbook/internal/validator"
)

// @title           Finbook API
// @version         1.0
// @description     Finbook is a personal finance backend for tracking transactions, budgets, goals, debts, and investments, with bulk transaction import and de-duplication.

// @host      localhost:8080
// @BasePath  /api/v1

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and a Firebase ID token.

func main() {
	// Initialize logger (use ENV var if available, default to development)
	logger.Init(os.Getenv("ENV"))
	defer logger.Sync()

	if err := run(); err != nil {
		logger.Get().Fatalf("Fatal error: %v", err)
	}
}

func run() error {
	log := logger.Get()
	ctx := context.Background()

	// Load configuration
	appConfig, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	// Register custom request validators
	if err := validator.Register(); err != nil {
		return fmt.Errorf("failed to register validators: %w", err)
	}

	// Connect to the document store
	st, err := firestore.New(ctx, appConfig.ProjectID, appConfig.CredentialsFile)
	if err != nil {
		return fmt.Errorf("failed to connect to document store: %w", err)
	}
	defer st.Close()

	// Initialize the token verifier
	verifier, err := auth.NewFirebaseVerifier(ctx, appConfig.CredentialsFile)
	if err != nil {
		return fmt.Errorf("failed to initialize token verifier: %w", err)
	}

	// Initialize services
	transactionService := services.NewTransactionService(st)
	budgetService := services.NewBudgetService(st)
	goalService := services.NewGoalService(st)
	debtService := services.NewDebtService(st)
	investmentService := services.NewInvestmentService(st)
	categoryService := services.NewCategoryService(st)

	// Initialize handlers
	transactionHandler := handlers.NewTransactionHandler(transactionService)
	budgetHandler := handlers.NewBudgetHandler(budgetService)
	goalHandler := handlers.NewGoalHandler(goalService)
	debtHandler := handlers.NewDebtHandler(debtService)
	investmentHandler := handlers.NewInvestmentHandler(investmentService)
	categoryHandler := handlers.NewCategoryHandler(categoryService)

	// Initialize Gin router
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestLogging())
	router.Use(middleware.ErrorHandler())

	// CORS middleware
	router.Use(func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")

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

	// API v1 group; every route requires a verified bearer token
	v1 := router.Group("/api/v1")
	v1.Use(middleware.Auth(verifier))

	// Transaction routes
	transactions := v1.Group("/transactions")
	transactions.POST("", transactionHandler.Create)
	transactions.GET("", transactionHandler.List)
	transactions.PUT("/:id", transactionHandler.Update)
	transactions.DELETE("/:id", transactionHandler.Delete)
	transactions.POST("/import", transactionHandler.Import)
	transactions.POST("/feedback", transactionHandler.Feedback)

	// Budget routes
	budgets := v1.Group("/budgets")
	budgets.POST("", budgetHandler.Create)
	budgets.GET("", budgetHandler.List)
	budgets.GET("/:id", budgetHandler.GetByID)
	budgets.PUT("/:id", budgetHandler.Update)
	budgets.DELETE("/:id", budgetHandler.Delete)

	// Goal routes
	goals := v1.Group("/goals")
	goals.POST("", goalHandler.Create)
	goals.GET("", goalHandler.List)
	goals.GET("/:id", goalHandler.GetByID)
	goals.PUT("/:id", goalHandler.Update)
	goals.DELETE("/:id", goalHandler.Delete)

	// Debt routes
	debts := v1.Group("/debts")
	debts.POST("", debtHandler.Create)
	debts.GET("", debtHandler.List)
	debts.GET("/:id", debtHandler.GetByID)
	debts.PUT("/:id", debtHandler.Update)
	debts.DELETE("/:id", debtHandler.Delete)

	// Investment routes
	investments := v1.Group("/investments")
	investments.POST("", investmentHandler.Create)
	investments.GET("", investmentHandler.List)
	investments.GET("/:id", investmentHandler.GetByID)
	investments.PUT("/:id", investmentHandler.Update)
	investments.DELETE("/:id", investmentHandler.Delete)

	// Category routes
	categories := v1.Group("/categories")
	categories.GET("", categoryHandler.List)
	categories.POST("", categoryHandler.Add)
	categories.DELETE("/:name", categoryHandler.Remove)

	log.Infof("Starting Finbook backend server on port %s", appConfig.Port)
	return router.Run(":" + appConfig.Port)
}
