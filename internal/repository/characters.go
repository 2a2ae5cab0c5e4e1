package repository

import (
	"context"
	"errors"

	"game_backend/internal/domain"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// CharacterRepository is the data-access boundary for character configurations.
type CharacterRepository interface {
	CreateCharacter(ctx context.Context, character *domain.CharacterConfig) error
	GetCharacterByID(ctx context.Context, id string) (*domain.CharacterConfig, error)
	// ListCharacters returns every character across all users with owning profiles preloaded.
	ListCharacters(ctx context.Context) ([]*domain.CharacterConfig, error)
	UpdateCharacter(ctx context.Context, character *domain.CharacterConfig) error
	// OverwriteCharactersByUserID bulk-overwrites appearance, abilities and backstory on every
	// character owned by any of the user's profiles. Absent fields are written as
	// empty/null on all matched rows; this is an overwrite, not a merge.
	OverwriteCharactersByUserID(ctx context.Context, userID string, appearance map[string]string, abilities map[string]int, backstory *string) error
}

type characterRepository struct{ db *gorm.DB }

func NewCharacterRepository(db *gorm.DB) CharacterRepository { return &characterRepository{db: db} }

func (r *characterRepository) CreateCharacter(ctx context.Context, character *domain.CharacterConfig) error {
	return r.db.WithContext(ctx).Create(character).Error
}

func (r *characterRepository) GetCharacterByID(ctx context.Context, id string) (*domain.CharacterConfig, error) {
	var c domain.CharacterConfig
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&c).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &c, nil
}

func (r *characterRepository) ListCharacters(ctx context.Context) ([]*domain.CharacterConfig, error) {
	var characters []*domain.CharacterConfig
	if err := r.db.WithContext(ctx).Preload("Profile").Find(&characters).Error; err != nil {
		return nil, err
	}
	return characters, nil
}

func (r *characterRepository) UpdateCharacter(ctx context.Context, character *domain.CharacterConfig) error {
	return r.db.WithContext(ctx).Save(character).Error
}

func (r *characterRepository) OverwriteCharactersByUserID(ctx context.Context, userID string, appearance map[string]string, abilities map[string]int, backstory *string) error {
	profileIDs := r.db.Model(&domain.UserProfile{}).Select("id").Where("user_id = ?", userID)
	return r.db.WithContext(ctx).
		Model(&domain.CharacterConfig{}).
		Where("profile_id IN (?)", profileIDs).
		Updates(map[string]any{
			"appearance": datatypes.NewJSONType(appearance),
			"abilities":  datatypes.NewJSONType(abilities),
			"backstory":  backstory,
		}).Error
}
