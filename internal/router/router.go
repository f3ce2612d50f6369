// Package router assembles the HTTP API: services, handlers, middleware and routes.
package router

import (
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"campuscash/internal/categories"
	_ "campuscash/internal/docs" // swagger document
	"campuscash/internal/events"
	"campuscash/internal/export"
	"campuscash/internal/handlers"
	"campuscash/internal/middleware"
	"campuscash/internal/services"
	"campuscash/internal/store"
)

// Deps are the collaborators the API is built from.
type Deps struct {
	DB        *gorm.DB
	Tokens    *middleware.TokenManager
	Tables    categories.Tables
	Formatter *export.Formatter
	Publisher events.Publisher

	// BcryptCost defaults to bcrypt.DefaultCost.
	BcryptCost int
	// Swagger mounts the documentation UI at /swagger.
	Swagger bool
}

// Setup builds the gin engine with every route of the API mounted under /api.
func Setup(deps Deps) *gin.Engine {
	cost := deps.BcryptCost
	if cost == 0 {
		cost = bcrypt.DefaultCost
	}

	// Services
	transactionStore := store.NewGormStore(deps.DB)
	userService := services.NewUserServiceWithCost(deps.DB, cost)
	transactionService := services.NewTransactionService(transactionStore, deps.Tables, deps.Publisher)
	statsService := services.NewStatsService(transactionStore, deps.Formatter)
	auditService := services.NewAuditService(deps.DB)

	// Handlers
	authHandler := handlers.NewAuthHandler(userService, deps.Tokens, auditService)
	transactionHandler := handlers.NewTransactionHandler(transactionService, auditService)
	statsHandler := handlers.NewStatsHandler(statsService)
	userHandler := handlers.NewUserHandler(userService, auditService)
	categoryHandler := handlers.NewCategoryHandler(deps.Tables)

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestLogging())
	router.Use(middleware.ErrorHandler())
	router.Use(middleware.CORS())

	if deps.Swagger {
		router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	api := router.Group("/api")
	api.GET("/health", handlers.Health)
	api.GET("/categories", categoryHandler.ListCategories)

	// Public auth routes
	auth := api.Group("/auth")
	auth.POST("/register", authHandler.Register)
	auth.POST("/login", authHandler.Login)

	// Protected routes
	protected := api.Group("")
	protected.Use(deps.Tokens.Middleware())

	protected.GET("/auth/me", authHandler.Me)

	transactions := protected.Group("/transactions")
	transactions.GET("", transactionHandler.GetTransactions)
	transactions.POST("", transactionHandler.CreateTransaction)
	transactions.GET("/:id", transactionHandler.GetTransactionByID)
	transactions.PUT("/:id", transactionHandler.UpdateTransaction)
	transactions.DELETE("/:id", transactionHandler.DeleteTransaction)

	protected.GET("/stats", statsHandler.GetStats)
	protected.GET("/export", statsHandler.Export)
	protected.PUT("/user/budget", userHandler.UpdateBudget)

	return router
}
