package main

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/mtakagi/task-manager-api/internal/auth"
	"github.com/mtakagi/task-manager-api/internal/config"
	"github.com/mtakagi/task-manager-api/internal/database"
	"github.com/mtakagi/task-manager-api/internal/handlers"
	"github.com/mtakagi/task-manager-api/internal/middleware"
	"github.com/mtakagi/task-manager-api/internal/repository"
	"github.com/mtakagi/task-manager-api/internal/services"
)

func main() {
	// Load configuration
	cfg := config.Load()

	// Set Gin mode
	gin.SetMode(cfg.GinMode)

	// Connect to database
	if err := database.Connect(cfg); err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	// Run migrations
	if err := database.Migrate(); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	// Initialize repositories and services
	userRepo := repository.NewUserRepository(database.GetDB())
	taskRepo := repository.NewTaskRepository(database.GetDB())
	authService := services.NewAuthService(userRepo)
	taskService := services.NewTaskService(taskRepo)
	tokenService := auth.NewTokenService([]byte(cfg.JWTSecret), cfg.TokenTTL)

	// Initialize handlers
	authHandler := handlers.NewAuthHandler(authService, tokenService)
	taskHandler := handlers.NewTaskHandler(taskService)

	// Initialize Gin router
	r := gin.Default()
	r.Use(corsMiddleware())

	// Health check endpoint
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status":  "ok",
			"message": "Task Manager API is running",
		})
	})

	// Public routes
	r.POST("/token", authHandler.Token)
	r.POST("/users/", authHandler.Register)

	// Protected routes
	authed := r.Group("/", middleware.RequireAuth(tokenService, userRepo))
	{
		authed.GET("/users/me/", authHandler.GetCurrentUser)

		tasks := authed.Group("/tasks")
		{
			tasks.POST("/", taskHandler.CreateTask)
			tasks.GET("/", taskHandler.ListTasks)
			tasks.GET("/:id", taskHandler.GetTask)
			tasks.PUT("/:id", taskHandler.UpdateTask)
			tasks.DELETE("/:id", taskHandler.DeleteTask)
		}
	}

	// Start server
	log.Printf("Server starting on :%s", cfg.ServerPort)
	if err := r.Run(":" + cfg.ServerPort); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}

// corsMiddleware allows cross-origin requests from any origin.
// For production, restrict this to the frontend URL.
func corsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("Access-Control-Allow-Origin", "*")
		c.Header("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		c.Header("Access-Control-Allow-Headers", "Authorization, Content-Type")

		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	}
}
