package domain

import (
	"time" // Timestamps

	"github.com/google/uuid" // UUID generation
	"gorm.io/gorm"           // GORM ORM library
)

// User Model (account record)
type User struct {
	ID             string        `gorm:"type:char(36);primaryKey"` // Opaque string identifier assigned on create
	Email          string        `gorm:"size:255;unique;not null"` // Unique email address
	HashedPassword string        `gorm:"not null"`                 // Bcrypt hash of the password
	Role           string        `gorm:"size:16;default:user"`     // Role: user or admin
	CreatedAt      time.Time     // Creation timestamp
	UpdatedAt      time.Time     // Last update timestamp
	Profiles       []UserProfile `gorm:"foreignKey:UserID"` // Profiles owned by this user
}

// BeforeCreate assigns a fresh UUID as the primary key
func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.ID == "" {
		u.ID = uuid.NewString() // Generate a new UUID
	}
	return nil
}
