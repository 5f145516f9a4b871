package api

import (
	"net/http" // HTTP status codes
	"time"     // CORS max age

	"task_system/internal/config"     // Application configuration
	"task_system/internal/middleware" // JWT identity middleware
	"task_system/internal/service"    // Service layer

	"github.com/gin-contrib/cors" // CORS middleware
	"github.com/gin-gonic/gin"    // Gin web framework
	"gorm.io/gorm"                // GORM ORM library
)

// NewRouter assembles the gin engine with all routes registered.
// Shared by the server entrypoint and the HTTP tests.
func NewRouter(db *gorm.DB, cfg *config.Config) *gin.Engine {
	r := gin.Default() // Gin router instance

	// The browser frontend calls this API cross-origin
	r.Use(cors.New(cors.Config{
		AllowOrigins:  []string{"*"},
		AllowMethods:  []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:  []string{"Origin", "Content-Type", "Accept", "Authorization"},
		ExposeHeaders: []string{"Content-Length", "Content-Type"},
		MaxAge:        12 * time.Hour,
	}))

	users := service.NewUserService(db) // User service
	tasks := service.NewTaskService(db) // Task service

	// Root endpoint
	r.GET("/", func(c *gin.Context) {
		c.JSON(http.StatusOK, "Welcome to my To-Do List API!")
	})

	// Public routes
	r.POST("/users/", RegisterHandler(users, cfg.JWTSecret, cfg.TokenTTL)) // Registration endpoint
	login := LoginHandler(users, cfg.JWTSecret, cfg.TokenTTL)
	r.POST("/token", login) // Login endpoint
	r.POST("/login", login) // Login alias

	// Authenticated routes (protected by JWT)
	auth := r.Group("")
	auth.Use(middleware.AuthRequired(db, cfg.JWTSecret))

	auth.GET("/users/me", ProfileHandler())            // Profile endpoint
	auth.PUT("/users/:id", UpdateUserHandler(users))   // Profile update endpoint
	auth.DELETE("/users/me", DeleteUserHandler(users)) // Account deletion endpoint

	auth.POST("/tasks/", CreateTaskHandler(tasks))      // Create task endpoint
	auth.GET("/tasks/", ListTasksHandler(tasks))        // List tasks endpoint
	auth.GET("/tasks/:id", GetTaskHandler(tasks))       // Get task endpoint
	auth.PUT("/tasks/:id", UpdateTaskHandler(tasks))    // Update task endpoint
	auth.DELETE("/tasks/:id", DeleteTaskHandler(tasks)) // Delete task endpoint

	return r
}
