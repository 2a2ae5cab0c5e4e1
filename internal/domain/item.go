package domain

import (
	"time" // Timestamps

	"github.com/google/uuid" // UUID generation
	"gorm.io/gorm"           // GORM ORM library
)

// Item categories available in the catalog
const (
	ItemCategoryWeapon   = "WEAPON"   // Swords, bows, siege gear
	ItemCategoryArmor    = "ARMOR"    // Protective equipment
	ItemCategoryPotion   = "POTION"   // Consumables
	ItemCategoryMount    = "MOUNT"    // Horses, griffins
	ItemCategoryCosmetic = "COSMETIC" // Purely visual items
)

// ValidItemCategory reports whether category is one of the enumerated values
func ValidItemCategory(category string) bool {
	switch category {
	case ItemCategoryWeapon, ItemCategoryArmor, ItemCategoryPotion, ItemCategoryMount, ItemCategoryCosmetic:
		return true
	}
	return false
}

// Item Model (catalog entry available for purchase)
type Item struct {
	ID          string    `gorm:"type:char(36);primaryKey"` // Opaque string identifier
	Name        string    `gorm:"size:255;not null"`        // Item name
	Description string    `gorm:"type:text;not null"`       // Item description
	Price       float64   `gorm:"not null"`                 // Non-negative price
	Category    string    `gorm:"size:32;not null"`         // One of the enumerated categories
	CreatedAt   time.Time // Creation timestamp
	UpdatedAt   time.Time // Last update timestamp
}

// BeforeCreate assigns a fresh UUID as the primary key
func (i *Item) BeforeCreate(tx *gorm.DB) error {
	if i.ID == "" {
		i.ID = uuid.NewString() // Generate a new UUID
	}
	return nil
}
