package domain

import (
	"time" // Timestamps

	"github.com/google/uuid" // UUID generation
	"gorm.io/datatypes"      // JSON column support for GORM
	"gorm.io/gorm"           // GORM ORM library
)

// CharacterConfig Model (a player-created character's customization data)
type CharacterConfig struct {
	ID         string                                `gorm:"type:char(36);primaryKey"`     // Opaque string identifier
	ProfileID  string                                `gorm:"type:char(36);index;not null"` // Foreign key to UserProfile (many characters per profile)
	Appearance datatypes.JSONType[map[string]string] `gorm:"type:json"`                    // Appearance options (hair color, eye shape, ...)
	Abilities  datatypes.JSONType[map[string]int]    `gorm:"type:json"`                    // Ability scores (strength, intelligence, ...)
	Backstory  *string                               `gorm:"type:text"`                    // Optional backstory text (nullable)
	CreatedAt  time.Time                             // Creation timestamp
	UpdatedAt  time.Time                             // Last update timestamp
	Profile    *UserProfile                          `gorm:"foreignKey:ProfileID"` // Owning profile (loaded on demand)
}

// BeforeCreate assigns a fresh UUID as the primary key
func (c *CharacterConfig) BeforeCreate(tx *gorm.DB) error {
	if c.ID == "" {
		c.ID = uuid.NewString() // Generate a new UUID
	}
	return nil
}
