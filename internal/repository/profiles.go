package repository

import (
	"context"
	"errors"

	"game_backend/internal/domain"

	"gorm.io/gorm"
)

// ProfileRepository is the data-access boundary for user profiles.
type ProfileRepository interface {
	// GetProfileByUserID returns the user's first profile with the owning user preloaded.
	GetProfileByUserID(ctx context.Context, userID string) (*domain.UserProfile, error)
	// UpdateProfilesByUserID overwrites nickname and avatar URL on every profile of the user.
	// A nil avatarURL clears the column.
	UpdateProfilesByUserID(ctx context.Context, userID string, nickname string, avatarURL *string) error
}

type profileRepository struct{ db *gorm.DB }

func NewProfileRepository(db *gorm.DB) ProfileRepository { return &profileRepository{db: db} }

func (r *profileRepository) GetProfileByUserID(ctx context.Context, userID string) (*domain.UserProfile, error) {
	var p domain.UserProfile
	err := r.db.WithContext(ctx).Preload("User").Where("user_id = ?", userID).First(&p).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &p, nil
}

func (r *profileRepository) UpdateProfilesByUserID(ctx context.Context, userID string, nickname string, avatarURL *string) error {
	return r.db.WithContext(ctx).
		Model(&domain.UserProfile{}).
		Where("user_id = ?", userID).
		Updates(map[string]any{"nickname": nickname, "avatar_url": avatarURL}).Error
}
