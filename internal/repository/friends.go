package repository

import (
	"context"
	"errors"

	"game_backend/internal/domain"

	"gorm.io/gorm"
)

// FriendRepository is the data-access boundary for the social graph.
type FriendRepository interface {
	// FindRequestBetween returns the friend request between the two users in either
	// direction, or nil when none exists. The pair is unordered.
	FindRequestBetween(ctx context.Context, userA, userB string) (*domain.FriendRequest, error)
	CreateRequest(ctx context.Context, request *domain.FriendRequest) error
	// ListFriendships returns the user's friendship edges with each friend's user
	// record and profiles preloaded.
	ListFriendships(ctx context.Context, userID string) ([]*domain.Friendship, error)
}

type friendRepository struct{ db *gorm.DB }

func NewFriendRepository(db *gorm.DB) FriendRepository { return &friendRepository{db: db} }

func (r *friendRepository) FindRequestBetween(ctx context.Context, userA, userB string) (*domain.FriendRequest, error) {
	var req domain.FriendRequest
	err := r.db.WithContext(ctx).
		Where("(sender_id = ? AND receiver_id = ?) OR (sender_id = ? AND receiver_id = ?)",
			userA, userB, userB, userA).
		First(&req).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &req, nil
}

func (r *friendRepository) CreateRequest(ctx context.Context, request *domain.FriendRequest) error {
	return r.db.WithContext(ctx).Create(request).Error
}

func (r *friendRepository) ListFriendships(ctx context.Context, userID string) ([]*domain.Friendship, error) {
	var friendships []*domain.Friendship
	err := r.db.WithContext(ctx).
		Preload("Friend").
		Preload("Friend.Profiles").
		Where("user_id = ?", userID).
		Find(&friendships).Error
	if err != nil {
		return nil, err
	}
	return friendships, nil
}
