package main

import (
	"log"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/ai-hrms/hr-management-api/internal/config"
	"github.com/ai-hrms/hr-management-api/internal/database"
	"github.com/ai-hrms/hr-management-api/internal/handlers"
	"github.com/ai-hrms/hr-management-api/internal/middleware"
	"github.com/ai-hrms/hr-management-api/internal/repository"
	"github.com/ai-hrms/hr-management-api/internal/services"
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

	db := database.GetDB()

	// Repositories
	orgRepo := repository.NewOrganizationRepository(db)
	employeeRepo := repository.NewEmployeeRepository(db)
	taskRepo := repository.NewTaskRepository(db)

	// Services
	authService := services.NewAuthService(orgRepo)
	employeeService := services.NewEmployeeService(employeeRepo, taskRepo)
	productivityService := services.NewProductivityService(employeeRepo, taskRepo)
	taskService := services.NewTaskService(taskRepo, employeeRepo, productivityService)
	intelligenceService := services.NewIntelligenceService(employeeRepo, taskRepo)
	dashboardService := services.NewDashboardService(employeeRepo, taskRepo)

	// Optional AI insight service
	var aiService *services.AIService
	if cfg.OpenAIAPIKey != "" {
		aiService = services.NewAIService(cfg.OpenAIAPIKey)
	}

	// Handlers
	authHandler := handlers.NewAuthHandler(authService, cfg.JWTSecret)
	employeeHandler := handlers.NewEmployeeHandler(employeeService)
	taskHandler := handlers.NewTaskHandler(taskService)
	employeeAuthHandler := handlers.NewEmployeeAuthHandler(employeeService, taskService, cfg.JWTSecret)
	intelligenceHandler := handlers.NewIntelligenceHandler(intelligenceService, productivityService, aiService)
	dashboardHandler := handlers.NewDashboardHandler(dashboardService)

	// Initialize Gin router
	r := gin.Default()
	r.Use(middleware.RequestID())
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{cfg.ClientURL},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Content-Type", "Authorization"},
		AllowCredentials: true,
	}))

	// Health check endpoint
	r.GET("/api/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status":  "ok",
			"message": "HR Management API is running",
		})
	})

	// API routes
	api := r.Group("/api")
	{
		// Organization auth (public + me)
		auth := api.Group("/auth")
		{
			auth.POST("/register", authHandler.Register)
			auth.POST("/login", authHandler.Login)
			auth.GET("/me", middleware.RequireOrganizationAuth(cfg.JWTSecret), authHandler.Me)
		}

		// Employee portal
		empAuth := api.Group("/employee-auth")
		{
			empAuth.POST("/login", employeeAuthHandler.Login)
			protected := empAuth.Group("")
			protected.Use(middleware.RequireEmployeeAuth(cfg.JWTSecret))
			{
				protected.GET("/me", employeeAuthHandler.Me)
				protected.GET("/my-tasks", employeeAuthHandler.MyTasks)
				protected.PUT("/my-tasks/:id", employeeAuthHandler.UpdateMyTask)
			}
		}

		// Admin routes (organization token required)
		admin := api.Group("")
		admin.Use(middleware.RequireOrganizationAuth(cfg.JWTSecret))
		{
			employees := admin.Group("/employees")
			{
				employees.GET("", employeeHandler.ListEmployees)
				employees.POST("", employeeHandler.CreateEmployee)
				employees.GET("/:id", employeeHandler.GetEmployee)
				employees.PUT("/:id", employeeHandler.UpdateEmployee)
				employees.DELETE("/:id", employeeHandler.DeleteEmployee)
			}

			tasks := admin.Group("/tasks")
			{
				tasks.GET("", taskHandler.ListTasks)
				tasks.POST("", taskHandler.CreateTask)
				tasks.GET("/:id", taskHandler.GetTask)
				tasks.PUT("/:id", taskHandler.UpdateTask)
				tasks.DELETE("/:id", taskHandler.DeleteTask)
			}

			ai := admin.Group("/ai")
			{
				ai.GET("/assign/:id", intelligenceHandler.Recommend)
				ai.POST("/recalculate-scores", intelligenceHandler.RecalculateScores)
			}

			admin.GET("/dashboard", dashboardHandler.GetDashboard)
		}
	}

	// Start server
	addr := ":" + cfg.ServerPort
	log.Printf("Server starting on %s", addr)
	if err := r.Run(addr); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
