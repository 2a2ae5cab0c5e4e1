package api

import (
	"encoding/json" // Rendering attribute maps as display strings
	"net/http"      // HTTP status codes

	"game_backend/internal/domain"     // Importing domain models
	"game_backend/internal/repository" // Data-access layer

	"github.com/gin-gonic/gin"   // Gin web framework
	"github.com/sirupsen/logrus" // Logging library
	"gorm.io/datatypes"          // JSON column support for GORM
)

// CreateCharacterRequest represents a character creation request
type CreateCharacterRequest struct {
	UserID     string            `json:"user_id" binding:"required"` // Owning user
	Appearance map[string]string `json:"appearance"`                 // Appearance options (hair color, eye shape, ...)
	Abilities  map[string]int    `json:"abilities"`                  // Ability scores (strength, intelligence, ...)
	Backstory  *string           `json:"backstory"`                  // Optional backstory text
}

// CreateCharacterResponse confirms a successful character creation
type CreateCharacterResponse struct {
	CharacterID string `json:"characterId"` // New character id
	Message     string `json:"message"`     // Human-readable outcome
}

// CharacterSummary summarizes a character for listing purposes
type CharacterSummary struct {
	ID         string  `json:"id"`                  // Character id
	Nickname   string  `json:"nickname"`            // Owning profile's nickname
	Appearance string  `json:"appearance"`          // Appearance rendered as a display string
	Abilities  string  `json:"abilities"`           // Abilities rendered as a display string
	Backstory  *string `json:"backstory,omitempty"` // Optional backstory text
}

// UpdateCharacterRequest represents a character update request
type UpdateCharacterRequest struct {
	CharacterID   string            `json:"character_id" binding:"required"` // Target character
	NewAppearance map[string]string `json:"new_appearance"`                  // Replacement appearance options
	NewAbilities  map[string]int    `json:"new_abilities"`                   // Replacement ability scores
	NewBackstory  *string           `json:"new_backstory"`                   // New backstory; nil leaves it unchanged
}

// UpdatedCharacter echoes a character's state after an update
type UpdatedCharacter struct {
	Appearance map[string]string `json:"appearance"` // Appearance after the update
	Abilities  map[string]int    `json:"abilities"`  // Abilities after the update
	Backstory  *string           `json:"backstory"`  // Backstory after the update
}

// UpdateCharacterResponse is returned after a character update attempt
type UpdateCharacterResponse struct {
	Success          bool              `json:"success"`           // Whether the update was applied
	Message          string            `json:"message"`           // Human-readable outcome
	UpdatedCharacter *UpdatedCharacter `json:"updated_character"` // Updated state, null on failure
}

// renderMap serializes an attribute map into a stable display string
func renderMap(m any) string {
	b, err := json.Marshal(m)
	if err != nil {
		return "{}"
	}
	return string(b)
}

// CreateCharacterHandler persists a new character linked to the user's profile.
// The profile must already exist; registration bootstraps one per account.
func CreateCharacterHandler(profiles repository.ProfileRepository, characters repository.CharacterRepository) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req CreateCharacterRequest // Bind JSON request to struct
		if err := c.ShouldBindJSON(&req); err != nil {
			// If binding fails, return bad request
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
			return
		}
		// The owning profile must exist before a character can be created
		profile, err := profiles.GetProfileByUserID(c.Request.Context(), req.UserID)
		if err != nil {
			// Store failure during the lookup
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch profile"})
			return
		}
		if profile == nil {
			// Validation failure: no profile for this user
			c.JSON(http.StatusBadRequest, gin.H{"error": "UserProfile does not exist for given userId"})
			return
		}
		character := domain.CharacterConfig{
			ProfileID:  profile.ID,                            // Link to the owning profile
			Appearance: datatypes.NewJSONType(req.Appearance), // Appearance options
			Abilities:  datatypes.NewJSONType(req.Abilities),  // Ability scores
			Backstory:  req.Backstory,                         // Optional backstory
		}
		// Persist the new character
		if err := characters.CreateCharacter(c.Request.Context(), &character); err != nil {
			// Log the error with context
			logrus.WithFields(logrus.Fields{
				"user_id":    req.UserID,  // Owning user
				"profile_id": profile.ID,  // Owning profile
				"error":      err.Error(), // Error message
			}).Error("Character creation failed") // Log creation failure
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create character"})
			return
		}
		// Return success response with the new character id
		c.JSON(http.StatusOK, CreateCharacterResponse{
			CharacterID: character.ID,
			Message:     "Character successfully created.",
		})
	}
}

// ListCharactersHandler returns every character across all users.
// An empty store yields an empty list, not an error.
func ListCharactersHandler(characters repository.CharacterRepository) gin.HandlerFunc {
	return func(c *gin.Context) {
		// Fetch all characters with their owning profiles
		all, err := characters.ListCharacters(c.Request.Context())
		if err != nil {
			// Store failure during the listing
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch characters"})
			return
		}
		// Map characters to summaries
		summaries := make([]CharacterSummary, 0, len(all))
		for _, character := range all {
			nickname := "" // Nickname of the owning profile
			if character.Profile != nil {
				nickname = character.Profile.Nickname
			}
			summaries = append(summaries, CharacterSummary{
				ID:         character.ID,                          // Character id
				Nickname:   nickname,                              // Owning profile's nickname
				Appearance: renderMap(character.Appearance.Data()), // Appearance display string
				Abilities:  renderMap(character.Abilities.Data()),  // Abilities display string
				Backstory:  character.Backstory,                   // Optional backstory
			})
		}
		// Return the full listing
		c.JSON(http.StatusOK, gin.H{"characters": summaries})
	}
}

// UpdateCharacterHandler overwrites a character's appearance and abilities and,
// only when provided, its backstory. Unknown ids fail without creating a row.
func UpdateCharacterHandler(characters repository.CharacterRepository) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req UpdateCharacterRequest // Bind JSON request to struct
		if err := c.ShouldBindJSON(&req); err != nil {
			// If binding fails, return bad request
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
			return
		}
		// Fetch the character to update
		character, err := characters.GetCharacterByID(c.Request.Context(), req.CharacterID)
		if err != nil {
			// Store failure during the lookup
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch character"})
			return
		}
		if character == nil {
			// Unknown character is a domain failure; nothing is written
			c.JSON(http.StatusOK, UpdateCharacterResponse{
				Success:          false,
				Message:          "Character not found",
				UpdatedCharacter: nil,
			})
			return
		}
		// Appearance and abilities are always overwritten, even with empty maps
		character.Appearance = datatypes.NewJSONType(req.NewAppearance)
		character.Abilities = datatypes.NewJSONType(req.NewAbilities)
		// Backstory is only overwritten when explicitly provided
		if req.NewBackstory != nil {
			character.Backstory = req.NewBackstory
		}
		// Persist the update
		if err := characters.UpdateCharacter(c.Request.Context(), character); err != nil {
			// Log the error with context
			logrus.WithFields(logrus.Fields{
				"character_id": req.CharacterID, // Target character
				"error":        err.Error(),     // Error message
			}).Error("Character update failed") // Log update failure
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update character"})
			return
		}
		// Return success response with the updated state
		c.JSON(http.StatusOK, UpdateCharacterResponse{
			Success: true,
			Message: "Character updated successfully",
			UpdatedCharacter: &UpdatedCharacter{
				Appearance: character.Appearance.Data(), // Appearance after the update
				Abilities:  character.Abilities.Data(),  // Abilities after the update
				Backstory:  character.Backstory,         // Backstory after the update
			},
		})
	}
}
