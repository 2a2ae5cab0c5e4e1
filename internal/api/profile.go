package api

import (
	"context"  // Context for Redis operations
	"net/http" // HTTP status codes
	"time"     // Time durations

	"game_backend/internal/repository" // Data-access layer
	"game_backend/internal/utils"      // Utility functions

	"github.com/gin-gonic/gin"     // Gin web framework
	"github.com/redis/go-redis/v9" // Redis client
	"github.com/sirupsen/logrus"   // Logging library
)

// ProfileResponse represents a user's profile information
type ProfileResponse struct {
	Nickname  string    `json:"nickname"`  // Display nickname
	AvatarURL string    `json:"avatarUrl"` // Avatar URL, empty when unset
	Email     string    `json:"email"`     // Account email
	CreatedAt time.Time `json:"createdAt"` // Profile creation time
	UpdatedAt time.Time `json:"updatedAt"` // Profile last update time
}

// CharacterDetails carries the optional character cascade of a profile update.
// When any field is non-empty the same values overwrite every character owned
// by the user's profiles; absent fields are written as empty/null.
type CharacterDetails struct {
	Appearance map[string]string `json:"appearance"` // New appearance options
	Abilities  map[string]int    `json:"abilities"`  // New ability scores
	Backstory  *string           `json:"backstory"`  // New backstory text
}

// UpdateProfileRequest represents a profile update request
type UpdateProfileRequest struct {
	UserID           string            `json:"user_id" binding:"required"`  // Target user
	Nickname         string            `json:"nickname" binding:"required"` // New nickname
	AvatarURL        *string           `json:"avatar_url"`                  // New avatar URL, nil clears it
	CharacterDetails *CharacterDetails `json:"character_details"`           // Optional character cascade
}

// UpdateProfileResponse confirms the changes applied by a profile update
type UpdateProfileResponse struct {
	Success          bool    `json:"success"`                    // Whether the update was applied
	Message          string  `json:"message"`                    // Human-readable outcome
	UpdatedNickname  string  `json:"updatedNickname,omitempty"`  // Nickname after the update
	UpdatedAvatarURL *string `json:"updatedAvatarUrl,omitempty"` // Avatar URL after the update
}

// profileCacheKey builds the cache key for a user's profile
func profileCacheKey(userID string) string {
	return "profile:user:" + userID
}

// hasCharacterUpdate reports whether the cascade payload carries any non-empty field
func hasCharacterUpdate(d *CharacterDetails) bool {
	if d == nil {
		return false
	}
	return len(d.Appearance) > 0 || len(d.Abilities) > 0 || (d.Backstory != nil && *d.Backstory != "")
}

// GetProfileHandler returns the authenticated user's profile information
func GetProfileHandler(profiles repository.ProfileRepository, rdb *redis.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, exists := c.Get("userID") // Get userID from context
		// Check if userID exists in context
		if !exists {
			// If not, return unauthorized
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}
		ctx := context.Background()                    // Context for Redis operations
		cacheKey := profileCacheKey(userID.(string))   // Cache key for this profile
		var cached ProfileResponse                     // Holder for the cached profile
		found, err := utils.GetCache(ctx, rdb, cacheKey, &cached) // Try to get from cache
		// If found in cache, return it
		if err == nil && found {
			c.JSON(http.StatusOK, cached) // Return cached profile
			return
		}
		// If not in cache, fetch from the store
		profile, err := profiles.GetProfileByUserID(c.Request.Context(), userID.(string))
		if err != nil {
			// Store failure during the lookup
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch profile"})
			return
		}
		// No profile/user pair for this identifier
		if profile == nil || profile.User == nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "User profile could not be found."})
			return
		}
		resp := ProfileResponse{
			Nickname:  profile.Nickname,  // Display nickname
			Email:     profile.User.Email, // Account email
			CreatedAt: profile.CreatedAt, // Profile creation time
			UpdatedAt: profile.UpdatedAt, // Profile last update time
		}
		// Avatar URL is optional; render as empty string when unset
		if profile.AvatarURL != nil {
			resp.AvatarURL = *profile.AvatarURL
		}
		_ = utils.SetCache(ctx, rdb, cacheKey, resp, 60*time.Second) // Cache the profile for 60 seconds
		c.JSON(http.StatusOK, resp)                                  // Return profile info
	}
}

// UpdateProfileHandler overwrites a user's nickname and avatar URL and, when the
// request carries character details, bulk-overwrites every character the user owns.
// The two writes are not transactional.
func UpdateProfileHandler(users repository.UserRepository, profiles repository.ProfileRepository, characters repository.CharacterRepository, rdb *redis.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req UpdateProfileRequest // Bind JSON request to struct
		if err := c.ShouldBindJSON(&req); err != nil {
			// If binding fails, return bad request
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
			return
		}
		// The target user must exist before anything is written
		user, err := users.GetUserByID(c.Request.Context(), req.UserID)
		if err != nil {
			// Store failure during the lookup
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch user"})
			return
		}
		if user == nil {
			// Unknown user is a domain failure; no mutation performed
			c.JSON(http.StatusOK, UpdateProfileResponse{Success: false, Message: "User not found."})
			return
		}
		// Overwrite nickname and avatar URL unconditionally (nil clears the avatar)
		if err := profiles.UpdateProfilesByUserID(c.Request.Context(), req.UserID, req.Nickname, req.AvatarURL); err != nil {
			// Log the error with context
			logrus.WithFields(logrus.Fields{
				"user_id": req.UserID,  // Target user
				"error":   err.Error(), // Error message
			}).Error("Profile update failed") // Log profile update failure
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update profile"})
			return
		}
		// Cascade to every character the user owns when any field is present
		if hasCharacterUpdate(req.CharacterDetails) {
			d := req.CharacterDetails
			if err := characters.OverwriteCharactersByUserID(c.Request.Context(), req.UserID, d.Appearance, d.Abilities, d.Backstory); err != nil {
				// Log the error with context; the profile write above is not rolled back
				logrus.WithFields(logrus.Fields{
					"user_id": req.UserID,  // Target user
					"error":   err.Error(), // Error message
				}).Error("Character cascade failed") // Log cascade failure
				c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update characters"})
				return
			}
		}
		// Invalidate the cached profile for this user
		_ = utils.DeleteCache(context.Background(), rdb, profileCacheKey(req.UserID))
		// Return success response echoing the applied values
		c.JSON(http.StatusOK, UpdateProfileResponse{
			Success:          true,
			Message:          "User profile updated successfully.",
			UpdatedNickname:  req.Nickname,   // Nickname after the update
			UpdatedAvatarURL: req.AvatarURL,  // Avatar URL after the update
		})
	}
}
