package domain

import (
	"time" // Timestamps

	"github.com/google/uuid" // UUID generation
	"gorm.io/gorm"           // GORM ORM library
)

// Purchase Model (append-only record of a completed transaction)
type Purchase struct {
	ID        string    `gorm:"type:char(36);primaryKey"`     // Opaque string identifier (transaction id)
	UserID    string    `gorm:"type:char(36);index;not null"` // Buyer
	ItemID    string    `gorm:"type:char(36);index;not null"` // Purchased item
	Amount    float64   `gorm:"not null"`                     // Total amount charged
	CreatedAt time.Time // Time of the purchase
}

// BeforeCreate assigns a fresh UUID as the primary key
func (p *Purchase) BeforeCreate(tx *gorm.DB) error {
	if p.ID == "" {
		p.ID = uuid.NewString() // Generate a new UUID
	}
	return nil
}
