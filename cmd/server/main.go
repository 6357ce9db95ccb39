package main

import (
	"log"

	"github.com/gin-contrib/sessions"
	redisStore "github.com/gin-contrib/sessions/redis"
	"github.com/gin-gonic/gin"
	"github.com/teampulse/daily-report-api/internal/config"
	"github.com/teampulse/daily-report-api/internal/constants"
	"github.com/teampulse/daily-report-api/internal/database"
	"github.com/teampulse/daily-report-api/internal/handlers"
	"github.com/teampulse/daily-report-api/internal/middleware"
	"github.com/teampulse/daily-report-api/internal/repository"
	"github.com/teampulse/daily-report-api/internal/services"
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

	// Initialize Gin router
	r := gin.Default()

	// Setup session middleware with Redis
	redisAddr := cfg.RedisHost + ":" + cfg.RedisPort
	store, err := redisStore.NewStore(
		10,        // Redis pool size
		"tcp",     // network type
		redisAddr, // Redis address from config
		"",        // password (empty = no password)
		[]byte(cfg.SessionSecret), // authentication key
	)
	if err != nil {
		log.Fatalf("Failed to create Redis store: %v", err)
	}
	// Configure session options based on environment
	isProduction := cfg.GinMode == "release"
	store.Options(sessions.Options{
		Path:     "/",
		MaxAge:   86400 * 7, // 7 days
		HttpOnly: true,
		Secure:   isProduction,
		SameSite: 2, // SameSite=Lax
	})
	r.Use(sessions.Sessions(constants.SessionCookieName, store))

	// Repositories
	db := database.GetDB()
	userRepo := repository.NewUserRepository(db)
	taskRepo := repository.NewTaskRepository(db)
	snapshotRepo := repository.NewSnapshotRepository(db)

	// Services
	authService := services.NewAuthService(userRepo)
	taskService := services.NewTaskService(taskRepo, userRepo)
	reportService := services.NewReportService(taskRepo, userRepo)
	snapshotService := services.NewSnapshotService(snapshotRepo)

	var summaryService *services.SummaryService
	if cfg.OpenAIAPIKey != "" {
		summaryService = services.NewSummaryService(cfg.OpenAIAPIKey)
	}

	// Handlers
	authHandler := handlers.NewAuthHandler(authService)
	taskHandler := handlers.NewTaskHandler(taskService)
	reportHandler := handlers.NewReportHandler(reportService, summaryService)
	snapshotHandler := handlers.NewSnapshotHandler(snapshotService)

	// Health check endpoint
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status":  "ok",
			"message": "Daily Report API is running",
		})
	})

	// API routes
	api := r.Group("/api")
	{
		// Auth routes
		auth := api.Group("/auth")
		{
			auth.POST("/signup", authHandler.Signup)
			auth.POST("/login", authHandler.Login)
			auth.POST("/logout", authHandler.Logout)
			auth.GET("/me", middleware.RequireAuth(), authHandler.GetCurrentUser)
			auth.GET("/employees", middleware.RequireAuth(), middleware.RequireManager(), authHandler.ListEmployees)
		}

		// Task routes (protected)
		tasks := api.Group("/tasks")
		tasks.Use(middleware.RequireAuth())
		{
			tasks.GET("", taskHandler.ListMyTasks)
			tasks.POST("", taskHandler.CreateTask)
			tasks.GET("/history", taskHandler.MyHistory)
			tasks.PUT("/:id", middleware.RequireTaskAccess(), taskHandler.UpdateTask)
			tasks.DELETE("/:id", taskHandler.DeleteTask)
			tasks.POST("/assign", middleware.RequireManager(), taskHandler.AssignTask)
			tasks.GET("/team", middleware.RequireManager(), reportHandler.TeamBoard)
			tasks.GET("/reports/pending", middleware.RequireManager(), reportHandler.PendingReport)
			tasks.GET("/user/:userId/history", middleware.RequireManager(), taskHandler.EmployeeHistory)
		}

		// Report routes (manager only)
		reportsGroup := api.Group("/reports")
		reportsGroup.Use(middleware.RequireAuth(), middleware.RequireManager())
		{
			reportsGroup.POST("/summary", reportHandler.Summarize)
		}

		// Status snapshot routes (protected)
		status := api.Group("/status")
		status.Use(middleware.RequireAuth())
		{
			status.POST("", snapshotHandler.Upsert)
			status.GET("/today", snapshotHandler.Today)
			status.GET("/my-history", snapshotHandler.MyHistory)
			status.GET("/team", middleware.RequireManager(), snapshotHandler.Team)
		}
	}

	// Start server
	log.Printf("Server starting on %s", cfg.ServerAddr)
	if err := r.Run(cfg.ServerAddr); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
