package api

import (
	"context"  // Context for Redis operations
	"net/http" // HTTP status codes
	"time"     // Time durations

	"game_backend/internal/domain"     // Importing domain models
	"game_backend/internal/repository" // Data-access layer
	"game_backend/internal/utils"      // Utility functions

	"github.com/gin-gonic/gin"     // Gin web framework
	"github.com/redis/go-redis/v9" // Redis client
	"github.com/sirupsen/logrus"   // Logging library
)

// catalogCacheKey is the cache key for the full item catalog
const catalogCacheKey = "item:catalog"

// ItemDetail describes one purchasable item in the catalog
type ItemDetail struct {
	ID          string  `json:"id"`          // Item id
	Name        string  `json:"name"`        // Item name
	Description string  `json:"description"` // Item description
	Price       float64 `json:"price"`       // Non-negative price
	Category    string  `json:"category"`    // Enumerated category
}

// ItemCatalogResponse lists the items available for purchase
type ItemCatalogResponse struct {
	Items []ItemDetail `json:"items"` // Full catalog in natural order
}

// PaymentMethod captures the payment method information of a purchase.
// It is part of the request contract but unused by the stubbed authorization.
type PaymentMethod struct {
	Type    string `json:"type"`    // Payment method type
	Details string `json:"details"` // Payment method details
}

// PurchaseRequest represents an item purchase request.
// Quantity is deliberately not validated as positive; zero and negative
// quantities are accepted as-is and priced accordingly.
type PurchaseRequest struct {
	UserID        string        `json:"user_id" binding:"required"` // Buying user
	ItemID        string        `json:"item_id" binding:"required"` // Item to purchase
	Quantity      int           `json:"quantity"`                   // Quantity, unvalidated
	PaymentMethod PaymentMethod `json:"payment_method"`             // Accepted but unused
}

// PurchaseResponse reports the outcome of a purchase attempt
type PurchaseResponse struct {
	TransactionID string `json:"transaction_id"`    // New purchase id, empty on failure
	Status        string `json:"status"`            // "success" or "failed"
	Message       string `json:"message,omitempty"` // Human-readable outcome
}

// ItemCatalogHandler returns the full item catalog, served from cache when warm
func ItemCatalogHandler(items repository.ItemRepository, rdb *redis.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := context.Background() // Context for Redis operations
		var cached ItemCatalogResponse
		found, err := utils.GetCache(ctx, rdb, catalogCacheKey, &cached) // Try to get from cache
		// If found in cache, return it
		if err == nil && found {
			c.JSON(http.StatusOK, cached) // Return cached catalog
			return
		}
		// If not in cache, fetch from the store
		all, err := items.ListItems(c.Request.Context())
		if err != nil {
			// Store failure during the listing
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch item catalog"})
			return
		}
		// Map items to catalog entries
		details := make([]ItemDetail, 0, len(all))
		for _, item := range all {
			details = append(details, ItemDetail{
				ID:          item.ID,          // Item id
				Name:        item.Name,        // Item name
				Description: item.Description, // Item description
				Price:       item.Price,       // Item price
				Category:    item.Category,    // Item category
			})
		}
		resp := ItemCatalogResponse{Items: details}
		_ = utils.SetCache(ctx, rdb, catalogCacheKey, resp, 60*time.Second) // Cache the catalog for 60 seconds
		c.JSON(http.StatusOK, resp)                                         // Return the catalog
	}
}

// PurchaseHandler records a purchase of an existing item. Payment authorization
// is a stub that always succeeds; no payment gateway is involved.
func PurchaseHandler(items repository.ItemRepository, purchases repository.PurchaseRepository) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req PurchaseRequest // Bind JSON request to struct
		if err := c.ShouldBindJSON(&req); err != nil {
			// If binding fails, return bad request
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
			return
		}
		// The item must exist before anything is charged
		item, err := items.GetItemByID(c.Request.Context(), req.ItemID)
		if err != nil {
			// Store failure during the lookup
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch item"})
			return
		}
		if item == nil {
			// Unknown item is a domain failure; no purchase is written
			c.JSON(http.StatusOK, PurchaseResponse{
				TransactionID: "",
				Status:        "failed",
				Message:       "Item not found",
			})
			return
		}
		totalCost := item.Price * float64(req.Quantity) // Total amount charged
		// Payment authorization stub; always succeeds in this scope
		paymentSuccess := true
		if !paymentSuccess {
			c.JSON(http.StatusOK, PurchaseResponse{TransactionID: "", Status: "failed", Message: "Payment failed"})
			return
		}
		purchase := domain.Purchase{
			UserID: req.UserID, // Buying user
			ItemID: req.ItemID, // Purchased item
			Amount: totalCost,  // Total amount charged
		}
		// Persist the purchase record
		if err := purchases.CreatePurchase(c.Request.Context(), &purchase); err != nil {
			// Log the error with context
			logrus.WithFields(logrus.Fields{
				"user_id": req.UserID,   // Buying user
				"item_id": req.ItemID,   // Purchased item
				"amount":  totalCost,    // Total amount charged
				"error":   err.Error(),  // Error message
			}).Error("Purchase failed") // Log purchase failure
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to record purchase"})
			return
		}
		// Log successful purchase
		logrus.WithFields(logrus.Fields{
			"user_id":        req.UserID,                      // Buying user
			"item_id":        req.ItemID,                      // Purchased item
			"quantity":       req.Quantity,                    // Requested quantity
			"amount":         totalCost,                       // Total amount charged
			"transaction_id": purchase.ID,                     // New purchase id
			"timestamp":      time.Now().Format(time.RFC3339), // Current timestamp
		}).Info("Purchase transaction") // Log purchase success
		// Return success response with the new transaction id
		c.JSON(http.StatusOK, PurchaseResponse{
			TransactionID: purchase.ID,
			Status:        "success",
			Message:       "Purchase successful",
		})
	}
}
