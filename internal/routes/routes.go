package routes

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"todo-app-server/internal/auth"
	"todo-app-server/internal/config"
	"todo-app-server/internal/handlers"
	"todo-app-server/internal/middleware"
	"todo-app-server/internal/token"
)

// SetupRoutes configures the application routes.
func SetupRoutes(router *gin.Engine, db *gorm.DB, cfg *config.Config) {
	issuer := token.NewIssuer(cfg.JWTSecret, cfg.AccessTokenTTL)
	authService := auth.NewService(db, issuer, cfg.RefreshTokenTTL)

	// Initialize handlers
	authHandler := handlers.NewAuthHandler(db, authService, cfg)
	userHandler := handlers.NewUserHandler(db)
	todoHandler := handlers.NewTodoHandler(db)

	// Public routes (no authentication required)
	authRoutes := router.Group("/auth")
	{
		authRoutes.POST("/signup", authHandler.Signup)
		authRoutes.POST("/login", authHandler.Login)
		authRoutes.POST("/token", authHandler.Refresh)
	}

	// Authenticated routes
	private := router.Group("/")
	private.Use(middleware.AuthMiddleware(issuer))
	{
		private.PUT("/auth/logout", authHandler.Logout)

		userRoutes := private.Group("/users")
		{
			userRoutes.GET("", userHandler.GetUsers)
			userRoutes.DELETE("", userHandler.DeleteMe)
		}

		todoRoutes := private.Group("/todos")
		{
			todoRoutes.GET("", todoHandler.GetTodos)
			todoRoutes.POST("", todoHandler.CreateTodo)
			todoRoutes.PUT("/:id", todoHandler.UpdateTodo)
			todoRoutes.DELETE("/:id", todoHandler.DeleteTodo)
		}
	}

	// Simple health check endpoint
	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "UP"})
	})
}
