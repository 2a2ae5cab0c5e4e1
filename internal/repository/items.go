package repository

import (
	"context"
	"errors"

	"game_backend/internal/domain"

	"gorm.io/gorm"
)

// ItemRepository is the data-access boundary for the item catalog.
type ItemRepository interface {
	CreateItem(ctx context.Context, item *domain.Item) error
	GetItemByID(ctx context.Context, id string) (*domain.Item, error)
	// ListItems returns the full catalog in natural retrieval order.
	ListItems(ctx context.Context) ([]*domain.Item, error)
}

type itemRepository struct{ db *gorm.DB }

func NewItemRepository(db *gorm.DB) ItemRepository { return &itemRepository{db: db} }

func (r *itemRepository) CreateItem(ctx context.Context, item *domain.Item) error {
	return r.db.WithContext(ctx).Create(item).Error
}

func (r *itemRepository) GetItemByID(ctx context.Context, id string) (*domain.Item, error) {
	var item domain.Item
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&item).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &item, nil
}

func (r *itemRepository) ListItems(ctx context.Context) ([]*domain.Item, error) {
	var items []*domain.Item
	if err := r.db.WithContext(ctx).Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}
