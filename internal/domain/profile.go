package domain

import (
	"time" // Timestamps

	"github.com/google/uuid" // UUID generation
	"gorm.io/gorm"           // GORM ORM library
)

// UserProfile Model (per-user personalization record)
// A user may own several profiles; the friends list emits one row per profile.
type UserProfile struct {
	ID        string    `gorm:"type:char(36);primaryKey"`     // Opaque string identifier
	UserID    string    `gorm:"type:char(36);index;not null"` // Foreign key to User
	Nickname  string    `gorm:"size:100;not null"`            // Display nickname
	AvatarURL *string   `gorm:"size:512"`                     // Optional avatar URL (nullable)
	CreatedAt time.Time // Creation timestamp
	UpdatedAt time.Time // Last update timestamp
	User      *User     `gorm:"foreignKey:UserID"` // Owning user (loaded on demand)
}

// BeforeCreate assigns a fresh UUID as the primary key
func (p *UserProfile) BeforeCreate(tx *gorm.DB) error {
	if p.ID == "" {
		p.ID = uuid.NewString() // Generate a new UUID
	}
	return nil
}
