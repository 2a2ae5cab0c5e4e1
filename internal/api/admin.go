package api

import (
	"context"  // Context for Redis operations
	"net/http" // HTTP status codes
	"strconv"  // String conversion
	"time"     // Time durations

	"game_backend/internal/domain"     // Importing domain models
	"game_backend/internal/repository" // Data-access layer
	"game_backend/internal/utils"      // Utility functions

	"github.com/gin-gonic/gin"     // Gin web framework
	"github.com/redis/go-redis/v9" // Redis client
	"github.com/sirupsen/logrus"   // Logging library
)

// CreateItemRequest represents an admin catalog item creation request
type CreateItemRequest struct {
	Name        string   `json:"name" binding:"required"`        // Item name
	Description string   `json:"description" binding:"required"` // Item description
	Price       *float64 `json:"price" binding:"required"`       // Price; pointer so zero is accepted
	Category    string   `json:"category" binding:"required"`    // One of the enumerated categories
}

// CreateItemHandler adds a new item to the catalog and invalidates the cached catalog
func CreateItemHandler(items repository.ItemRepository, rdb *redis.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req CreateItemRequest // Bind JSON request to struct
		if err := c.ShouldBindJSON(&req); err != nil {
			// If binding fails, return bad request
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
			return
		}
		// Price must be non-negative
		if *req.Price < 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Price must be non-negative"})
			return
		}
		// Category must be one of the enumerated values
		if !domain.ValidItemCategory(req.Category) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid item category"})
			return
		}
		item := domain.Item{
			Name:        req.Name,        // Item name
			Description: req.Description, // Item description
			Price:       *req.Price,      // Non-negative price
			Category:    req.Category,    // Enumerated category
		}
		// Persist the new item
		if err := items.CreateItem(c.Request.Context(), &item); err != nil {
			// Log the error with context
			logrus.WithFields(logrus.Fields{
				"name":  req.Name,    // Item name
				"error": err.Error(), // Error message
			}).Error("Item creation failed") // Log creation failure
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create item"})
			return
		}
		// Invalidate the cached catalog so the new item shows up
		_ = utils.DeleteCache(context.Background(), rdb, catalogCacheKey)
		// Return the created item
		c.JSON(http.StatusCreated, gin.H{"message": "Item created", "item": item})
	}
}

// ListPurchasesHandler returns all purchase records, paginated
func ListPurchasesHandler(purchases repository.PurchaseRepository, rdb *redis.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := context.Background() // Use background context for Redis
		// Create a cache key based on pagination parameters
		cacheKey := "admin:purchases:page=" + c.DefaultQuery("page", "1") + ":size=" + c.DefaultQuery("page_size", "20")
		// Try to get cached response
		var cached struct {
			Purchases  []*domain.Purchase `json:"purchases"`   // List of purchases
			Page       int                `json:"page"`        // Current page
			PageSize   int                `json:"page_size"`   // Page size
			Total      int64              `json:"total"`       // Total number of purchases
			TotalPages int                `json:"total_pages"` // Total pages
		}
		// If cached data found, return it
		found, err := utils.GetCache(ctx, rdb, cacheKey, &cached)
		if err == nil && found {
			c.JSON(http.StatusOK, gin.H{
				"purchases":   cached.Purchases,  // List of purchases
				"page":        cached.Page,       // Current page
				"page_size":   cached.PageSize,   // Page size
				"total":       cached.Total,      // Total number of purchases
				"total_pages": cached.TotalPages, // Total pages
				"cached":      true,              // Indicate response is from cache
			})
			return
		}
		page := 1      // Default page number
		pageSize := 20 // Default page size
		if p := c.Query("page"); p != "" {
			if v, err := strconv.Atoi(p); err == nil && v > 0 {
				page = v // Set page if valid
			}
		}
		// Check and set page size within limits
		if ps := c.Query("page_size"); ps != "" {
			// If valid, set page size
			if v, err := strconv.Atoi(ps); err == nil && v > 0 && v <= 100 {
				pageSize = v // Set page size
			}
		}
		offset := (page - 1) * pageSize // Calculate offset for pagination
		// Count total purchases for pagination
		total, err := purchases.CountPurchases(c.Request.Context())
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to count purchases"}) // Return on error
			return
		}
		// Fetch paginated purchases, newest first
		records, err := purchases.ListPurchases(c.Request.Context(), offset, pageSize)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch purchases"}) // Return on error
			return
		}
		// The total number of pages
		totalPages := (int(total) + pageSize - 1) / pageSize // Calculate total pages
		// Prepare final response data
		respData := gin.H{
			"purchases":   records,    // List of purchases
			"page":        page,       // Current page
			"page_size":   pageSize,   // Page size
			"total":       total,      // Total number of purchases
			"total_pages": totalPages, // Total pages
			"cached":      false,      // Indicate response is not from cache
		}
		// Cache the response for future requests
		_ = utils.SetCache(ctx, rdb, cacheKey, respData, 60*time.Second)
		c.JSON(http.StatusOK, respData) // Return the response
	}
}
