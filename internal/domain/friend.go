package domain

import (
	"time" // Timestamps

	"github.com/google/uuid" // UUID generation
	"gorm.io/gorm"           // GORM ORM library
)

// Friend request statuses
const (
	FriendRequestPending  = "PENDING"  // Request sent, not yet handled
	FriendRequestAccepted = "ACCEPTED" // Request accepted
	FriendRequestRejected = "REJECTED" // Request rejected
)

// FriendRequest Model (pending proposal between an unordered pair of users)
type FriendRequest struct {
	ID         string    `gorm:"type:char(36);primaryKey"`                       // Opaque string identifier
	SenderID   string    `gorm:"type:char(36);not null;index:idx_request_pair"`  // User who sent the request
	ReceiverID string    `gorm:"type:char(36);not null;index:idx_request_pair"`  // User who receives the request
	Status     string    `gorm:"size:16;not null;default:PENDING"`               // Status: PENDING, ACCEPTED or REJECTED
	CreatedAt  time.Time // Creation timestamp
	UpdatedAt  time.Time // Last update timestamp
}

// BeforeCreate assigns a fresh UUID as the primary key
func (r *FriendRequest) BeforeCreate(tx *gorm.DB) error {
	if r.ID == "" {
		r.ID = uuid.NewString() // Generate a new UUID
	}
	return nil
}

// Friendship Model (established directed social-graph edge)
type Friendship struct {
	ID        string    `gorm:"type:char(36);primaryKey"`     // Opaque string identifier
	UserID    string    `gorm:"type:char(36);index;not null"` // Owner of the edge
	FriendID  string    `gorm:"type:char(36);index;not null"` // The befriended user
	CreatedAt time.Time // Creation timestamp
	Friend    *User     `gorm:"foreignKey:FriendID"` // Befriended user (loaded on demand)
}

// BeforeCreate assigns a fresh UUID as the primary key
func (f *Friendship) BeforeCreate(tx *gorm.DB) error {
	if f.ID == "" {
		f.ID = uuid.NewString() // Generate a new UUID
	}
	return nil
}
