package main

import (
	"context"                          // context package is needed for Redis operations
	"game_backend/internal/api"        // Custom package for API handlers
	"game_backend/internal/config"     // Custom package for configuration
	"game_backend/internal/middleware" // Custom package for middleware
	"game_backend/internal/repository" // Custom package for data access
	"log"                              // log package is needed for logging

	// For loading .env files
	"github.com/gin-gonic/gin"     // Gin web framework
	"github.com/redis/go-redis/v9" // Redis client
	"github.com/sirupsen/logrus"   // Logrus for structured logging
	"gorm.io/driver/mysql"         // MySQL driver for GORM
	"gorm.io/gorm"                 // GORM ORM library
)

// Main function to set up and run the server
func main() {
	cfg := config.LoadConfig() // Load configuration

	// Setup logger
	logrus.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})

	// Setup Data Source Name (DSN) and connect to the database
	dsn := cfg.DBUser + ":" + cfg.DBPassword + "@tcp(" + cfg.DBHost + ":" + cfg.DBPort + ")/" + cfg.DBName + "?parseTime=true"
	db, err := gorm.Open(mysql.Open(dsn), &gorm.Config{})
	if err != nil {
		logrus.Fatalf("failed to connect to DB: %v", err) // Fatal error if DB connection fails
	}

	// Setup Redis client
	redisClient := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr, // Redis server address
		Password: cfg.RedisPass, // Redis password
		DB:       cfg.RedisDB,   // Redis database number
	})

	// Test Redis connection
	_, err = redisClient.Ping(context.Background()).Result()
	if err != nil {
		logrus.Fatalf("failed to connect to Redis: %v", err)
	}

	// Set Mode to Release if in production
	if cfg.IsProd {
		gin.SetMode(gin.ReleaseMode)
	}

	// Repositories (one per entity, all backed by the same DB handle)
	users := repository.NewUserRepository(db)
	profiles := repository.NewProfileRepository(db)
	characters := repository.NewCharacterRepository(db)
	friends := repository.NewFriendRepository(db)
	items := repository.NewItemRepository(db)
	purchases := repository.NewPurchaseRepository(db)

	// Setup Gin
	r := gin.Default() // Gin router instance

	// Set trusted proxies for Gin
	if err := r.SetTrustedProxies([]string{"127.0.0.1"}); err != nil {
		logrus.Fatalf("failed to set trusted proxies: %v", err)
	}

	// Account routes
	r.POST("/user/register", api.RegisterHandler(users))             // Registration endpoint
	r.POST("/user/login", api.LoginHandler(users, cfg.JWTSecret))    // Login endpoint
	r.PUT("/user/profile/update", api.UpdateProfileHandler(users, profiles, characters, redisClient)) // Profile update endpoint

	// Profile read is the one route that derives identity from the token
	r.GET("/user/profile", middleware.JWTAuthMiddleware(cfg.JWTSecret), api.GetProfileHandler(profiles, redisClient))

	// Character routes
	r.POST("/character/create", api.CreateCharacterHandler(profiles, characters)) // Character creation endpoint
	r.GET("/character/list", api.ListCharactersHandler(characters))               // Character listing endpoint
	r.PUT("/character/update", api.UpdateCharacterHandler(characters))            // Character update endpoint

	// Social routes
	r.POST("/social/add_friend", api.AddFriendHandler(users, friends)) // Friend request endpoint
	r.GET("/social/friends_list", api.ListFriendsHandler(friends))     // Friends list endpoint

	// Shop routes
	r.GET("/item/catalog", api.ItemCatalogHandler(items, redisClient)) // Item catalog endpoint
	r.POST("/item/purchase", api.PurchaseHandler(items, purchases))    // Purchase endpoint

	// Admin routes (protected, admin only)
	adminGroup := r.Group("/admin")
	// Protect admin routes with JWT and AdminOnly middleware
	adminGroup.Use(middleware.JWTAuthMiddleware(cfg.JWTSecret), middleware.AdminOnlyMiddleware(users))
	adminGroup.POST("/item", api.CreateItemHandler(items, redisClient))              // Catalog item creation endpoint
	adminGroup.GET("/purchases", api.ListPurchasesHandler(purchases, redisClient))   // Purchase listing endpoint

	log.Println("Server running on " + cfg.AppPort) // Log server start
	r.Run(":" + cfg.AppPort)                        // Start the server on port cfg.AppPort
}
