// main.go
package main

import (
	"log"
	"net/http"
	"os"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"fitlog/database"
	"fitlog/handlers"
	"fitlog/handlers/admin"
	"fitlog/middleware"
	"fitlog/services"
)

func main() {
	// Load environment variables
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: .env file not found, using system environment variables")
	}

	validateEnvironment()

	// Initialize database
	database.InitDB()
	db := database.GetDB()

	// Wire services
	hub := services.NewHub()
	engine := services.NewEngine(
		services.NewGormCatalog(db),
		services.NewGormProgressStore(db),
		hub,
	)
	textGen := services.NewTextGeneratorFromEnv()
	if textGen == nil {
		log.Println("Warning: TEXTGEN_API_URL not set, text improvement disabled")
	}

	uploadDir := getEnv("UPLOAD_DIR", "./uploads")
	storage, err := services.NewDiskStorage(uploadDir, getEnv("UPLOAD_BASE_URL", "/uploads"))
	if err != nil {
		log.Fatalf("Failed to initialize upload storage: %v", err)
	}

	handlers.Init(engine, hub, textGen, storage)

	// Background guest cleanup
	cleanup := services.NewCleanupService(db, 30*24*time.Hour, time.Hour)
	if getEnv("GUEST_CLEANUP_ENABLED", "true") == "true" {
		cleanup.Start()
		defer cleanup.Stop()
	}

	// Create Fiber app
	app := fiber.New(fiber.Config{
		ErrorHandler: customErrorHandler,
		BodyLimit:    8 * 1024 * 1024, // 8MB, image uploads included
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
	})

	// Global middleware
	app.Use(recover.New())
	app.Use(logger.New(logger.Config{
		Format: "[${time}] ${status} - ${method} ${path} (${latency})\n",
	}))
	app.Use(middleware.MetricsMiddleware())

	// CORS configuration
	corsOrigins := os.Getenv("CORS_ORIGINS")
	if corsOrigins == "" {
		corsOrigins = "http://localhost:3000"
	}

	app.Use(cors.New(cors.Config{
		AllowOrigins:     corsOrigins,
		AllowMethods:     "GET,POST,PUT,DELETE,OPTIONS",
		AllowHeaders:     "Origin, Content-Type, Accept, Authorization",
		AllowCredentials: true,
	}))

	app.Use(middleware.RateLimitMiddleware())

	// Uploaded images
	app.Static("/uploads", uploadDir)

	// API Routes
	api := app.Group("/api")

	// Auth routes with stricter rate limiting
	authGroup := api.Group("/auth")
	authGroup.Use(middleware.AuthRateLimitMiddleware())
	authGroup.Post("/register", handlers.Register)
	authGroup.Post("/login", handlers.Login)
	authGroup.Post("/guest", handlers.GuestLogin)

	// User routes
	userGroup := api.Group("/users")
	userGroup.Use(middleware.AuthMiddleware)
	userGroup.Get("/me", handlers.GetCurrentUser)
	userGroup.Put("/me", handlers.UpdateCurrentUser)
	userGroup.Post("/me/improve-text", handlers.ImproveText)
	userGroup.Get("/search", handlers.SearchUsers)
	userGroup.Get("/:id", handlers.GetUserProfile)
	userGroup.Post("/:id/follow", handlers.FollowUser)
	userGroup.Delete("/:id/follow", handlers.UnfollowUser)
	userGroup.Get("/:id/followers", handlers.GetFollowers)
	userGroup.Get("/:id/following", handlers.GetFollowing)

	// Workout routes
	workoutGroup := api.Group("/workouts")
	workoutGroup.Use(middleware.AuthMiddleware)
	workoutGroup.Post("/", handlers.LogWorkout)
	workoutGroup.Get("/", handlers.GetWorkouts)

	// Nutrition routes
	nutritionGroup := api.Group("/nutrition")
	nutritionGroup.Use(middleware.AuthMiddleware)
	nutritionGroup.Post("/", handlers.LogMeal)
	nutritionGroup.Get("/", handlers.GetMeals)
	nutritionGroup.Get("/summary", handlers.GetDailySummary)

	// Body progress routes
	progressGroup := api.Group("/progress")
	progressGroup.Use(middleware.AuthMiddleware)
	progressGroup.Post("/", handlers.LogBodyEntry)
	progressGroup.Get("/", handlers.GetBodyEntries)

	// Feed routes
	postGroup := api.Group("/posts")
	postGroup.Use(middleware.AuthMiddleware)
	postGroup.Post("/", handlers.CreatePost)
	postGroup.Get("/feed", handlers.GetFeed)
	postGroup.Post("/:id/reactions", handlers.ReactToPost)
	postGroup.Post("/:id/comments", handlers.CommentOnPost)
	postGroup.Get("/:id/comments", handlers.GetComments)

	// Program routes
	programGroup := api.Group("/programs")
	programGroup.Use(middleware.AuthMiddleware)
	programGroup.Post("/", handlers.CreateProgram)
	programGroup.Get("/", handlers.GetPrograms)
	programGroup.Get("/subscriptions", handlers.GetMySubscriptions)
	programGroup.Get("/:id", handlers.GetProgram)
	programGroup.Post("/:id/subscribe", handlers.SubscribeToProgram)
	programGroup.Delete("/:id/subscribe", handlers.UnsubscribeFromProgram)

	// Achievement routes
	achievementGroup := api.Group("/achievements")
	achievementGroup.Use(middleware.AuthMiddleware)
	achievementGroup.Get("/", handlers.GetUserAchievements)

	// Uploads
	api.Post("/uploads", middleware.AuthMiddleware, handlers.UploadImage)

	// Leaderboard
	api.Get("/leaderboard", handlers.GetLeaderboard)

	// Admin routes
	adminGroup := api.Group("/admin")
	adminGroup.Use(middleware.AdminAuthMiddleware)
	adminGroup.Get("/achievements", admin.GetAchievements)
	adminGroup.Post("/achievements", admin.CreateAchievement)
	adminGroup.Put("/achievements/:id", admin.UpdateAchievement)
	adminGroup.Delete("/achievements/:id", admin.DeleteAchievement)
	adminGroup.Get("/users", admin.GetUsers)
	adminGroup.Get("/users/:id", admin.GetUser)
	adminGroup.Post("/users/:id/ban", admin.BanUser)
	adminGroup.Delete("/users/:id", admin.DeleteUser)

	// Live notification feed
	app.Use("/ws", middleware.WebSocketAuthMiddleware, handlers.RequireWebSocketUpgrade)
	app.Get("/ws", handlers.NotificationsSocket())

	// Health check endpoint
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status":    "healthy",
			"timestamp": time.Now().Unix(),
			"version":   "1.0.0",
		})
	})

	// Metrics on a separate listener, never exposed through the public app
	metricsPort := getEnv("METRICS_PORT", "9091")
	metricsMux := http.NewServeMux()
	metricsMux.Handle("/metrics", promhttp.Handler())
	go func() {
		log.Printf("📊 Metrics server starting on port %s", metricsPort)
		if err := http.ListenAndServe(":"+metricsPort, metricsMux); err != nil && err != http.ErrServerClosed {
			log.Fatal("Metrics server failed:", err)
		}
	}()

	port := os.Getenv("PORT")
	if port == "" {
		port = "3000"
	}

	log.Printf("🚀 HTTP server starting on port %s", port)
	log.Printf("📊 Environment: %s", getEnv("APP_ENV", "development"))
	log.Printf("🔐 JWT Secret configured: %v", os.Getenv("JWT_SECRET") != "")
	log.Printf("🧹 Guest cleanup: %s", getEnv("GUEST_CLEANUP_ENABLED", "true"))
	log.Printf("🌐 Notifications available at ws://localhost:%s/ws", port)

	if err := app.Listen(":" + port); err != nil {
		log.Fatal("Failed to start HTTP server:", err)
	}
}

// validateEnvironment checks for required environment variables
func validateEnvironment() {
	jwtSecret := os.Getenv("JWT_SECRET")
	if jwtSecret == "" {
		log.Fatal("FATAL: JWT_SECRET environment variable must be set. Generate one with: openssl rand -base64 64")
	}
	if len(jwtSecret) < 32 {
		log.Fatal("FATAL: JWT_SECRET must be at least 32 characters long")
	}

	if os.Getenv("APP_ENV") == "production" {
		corsOrigins := os.Getenv("CORS_ORIGINS")
		if corsOrigins == "" || corsOrigins == "http://localhost:3000" {
			log.Println("WARNING: CORS_ORIGINS not properly configured for production")
		}
	}
}

func customErrorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	message := "Internal Server Error"

	if e, ok := err.(*fiber.Error); ok {
		code = e.Code
		message = e.Message
	}

	// Don't expose internal errors in production
	if os.Getenv("APP_ENV") == "production" && code == 500 {
		message = "An error occurred. Please try again later."
	}

	return c.Status(code).JSON(fiber.Map{
		"success": false,
		"error":   message,
	})
}

func getEnv(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultVal
}
