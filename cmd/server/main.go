package main

import (
	"context"
	"log"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/dsmirnova/task-tracker/internal/config"
	"github.com/dsmirnova/task-tracker/internal/database"
	"github.com/dsmirnova/task-tracker/internal/handlers"
	"github.com/dsmirnova/task-tracker/internal/middleware"
	"github.com/dsmirnova/task-tracker/internal/repository"
	"github.com/dsmirnova/task-tracker/internal/services"
)

func main() {
	// Load configuration
	cfg := config.Load()

	// Set Gin mode
	gin.SetMode(cfg.GinMode)

	// Connect to the document store
	if err := database.Connect(cfg); err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := database.Disconnect(ctx); err != nil {
			log.Printf("Failed to disconnect from database: %v", err)
		}
	}()

	db := database.GetDB()

	// Initialize repositories
	userRepo := repository.NewUserRepository(db)
	projectRepo := repository.NewProjectRepository(db)
	taskRepo := repository.NewTaskRepository(db)

	// Initialize services
	resolver := services.NewResolver(userRepo, projectRepo)
	userService := services.NewUserService(userRepo)
	projectService := services.NewProjectService(projectRepo, taskRepo, resolver)
	taskService := services.NewTaskService(taskRepo, userRepo, projectRepo, resolver)
	summaryService := services.NewSummaryService(taskRepo)

	// Initialize handlers
	userHandler := handlers.NewUserHandler(userService)
	projectHandler := handlers.NewProjectHandler(projectService)
	taskHandler := handlers.NewTaskHandler(taskService)
	summaryHandler := handlers.NewSummaryHandler(summaryService)

	// Initialize Gin router
	r := gin.Default()
	r.Use(middleware.CORS())
	r.Use(middleware.RequestID())

	// Health check endpoint
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status":  "ok",
			"message": "Task Tracker API is running",
		})
	})

	// User routes
	users := r.Group("/users")
	{
		users.GET("", userHandler.ListUsers)
		users.POST("", userHandler.CreateUser)
		users.PUT("", userHandler.UpdateUser)
		users.DELETE("", userHandler.DeleteUser)
	}

	// Project routes
	projects := r.Group("/projects")
	{
		projects.GET("", projectHandler.ListProjects)
		projects.POST("", projectHandler.CreateProject)
		projects.PUT("", projectHandler.UpdateProject)
		projects.DELETE("", projectHandler.DeleteProject)
	}

	// Task routes
	tasks := r.Group("/tasks")
	{
		tasks.GET("", taskHandler.ListTasks)
		tasks.POST("", taskHandler.CreateTask)
		tasks.PUT("", taskHandler.UpdateTask)
		tasks.DELETE("", taskHandler.DeleteTask)
		tasks.GET("/:task_id", taskHandler.GetTask)
	}

	// Summary routes
	summary := r.Group("/summary")
	{
		summary.GET("/projects", summaryHandler.ProjectSummary)
		summary.GET("/user/:user_id", summaryHandler.UserSummary)
	}

	// Start server
	log.Printf("Server starting on :%s", cfg.Port)
	if err := r.Run(":" + cfg.Port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
