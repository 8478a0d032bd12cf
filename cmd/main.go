package main

import (
	"foodgram/database"
	"foodgram/internal/cache"
	"foodgram/internal/controllers"
	"foodgram/internal/repository"
	"foodgram/routes"
	"log"
	"net/http"
	"os"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
)

func main() {
	// Load environment variables
	err := godotenv.Load("../.env")
	if err != nil {
		log.Fatal("Error loading .env file")
	}

	// Connect to database and run migrations
	database.ConnectDatabase()
	if err := database.MigrateDatabase(); err != nil {
		log.Fatalf("Failed to run database migrations: %v", err)
	}
	database.MonitorDBConnections()

	// Redis is optional: short-link resolution just skips the cache when
	// it is unavailable.
	redisClient, err := cache.NewRedisClient()
	if err != nil {
		log.Printf("Warning: Redis unavailable, short-link caching disabled: %v", err)
		redisClient = nil
	} else {
		defer redisClient.Close()
	}
	var linkCache cache.ShortLinkCache
	if redisClient != nil {
		linkCache = redisClient
	}

	// Initialize repositories
	userRepo := repository.NewUserRepository(database.DB)
	ingredientRepo := repository.NewIngredientRepository(database.DB)
	recipeRepo := repository.NewRecipeRepository(database.DB)
	relationRepo := repository.NewRelationRepository(database.DB)
	subscriptionRepo := repository.NewSubscriptionRepository(database.DB)

	// Initialize controllers
	userController := controllers.NewUserController(userRepo, subscriptionRepo)
	ingredientController := controllers.NewIngredientController(ingredientRepo)
	recipeController := controllers.NewRecipeController(recipeRepo, ingredientRepo, relationRepo, linkCache)
	shortLinkController := controllers.NewShortLinkController(recipeRepo, linkCache)
	subscriptionController := controllers.NewSubscriptionController(subscriptionRepo, recipeRepo, userRepo)

	gin.SetMode(gin.ReleaseMode)
	router := gin.Default()

	router.GET("/", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"message": "Foodgram API is running",
			"version": "1.0.0",
			"status":  "healthy",
		})
	})

	routes.RegisterUserRoutes(router, userController, subscriptionController)
	routes.RegisterIngredientRoutes(router, ingredientController)
	routes.RegisterRecipeRoutes(router, recipeController, shortLinkController)

	// Debug endpoints
	router.GET("/debug/database", func(c *gin.Context) {
		sqlDB, err := database.DB.DB()
		if err != nil {
			c.JSON(500, gin.H{
				"database_health": false,
				"error":           err.Error(),
			})
			return
		}

		var result int
		row := sqlDB.QueryRowContext(c.Request.Context(), "SELECT 1")
		err = row.Scan(&result)
		isHealthy := err == nil && result == 1

		c.JSON(200, gin.H{
			"database_health": isHealthy,
		})
	})

	router.GET("/debug/cache", func(c *gin.Context) {
		if redisClient == nil {
			c.JSON(200, gin.H{"connected": false})
			return
		}
		status, err := redisClient.GetStatus()
		if err != nil {
			c.JSON(500, gin.H{
				"connected": false,
				"error":     err.Error(),
			})
			return
		}
		c.JSON(200, status)
	})

	// Start the server
	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	log.Printf("Server starting on port %s", port)
	log.Printf("Health Check: http://localhost:%s/", port)

	server := &http.Server{
		Addr:           ":" + port,
		Handler:        router,
		ReadTimeout:    30 * time.Second,
		WriteTimeout:   30 * time.Second,
		IdleTimeout:    60 * time.Second,
		MaxHeaderBytes: 1 << 20,
	}

	if err := server.ListenAndServe(); err != nil {
		log.Fatal("Failed to start server:", err)
	}
}
