package repository

import (
	"context"

	"game_backend/internal/domain"

	"gorm.io/gorm"
)

// PurchaseRepository is the data-access boundary for purchase records.
// Purchases are append-only; nothing in scope updates or deletes them.
type PurchaseRepository interface {
	CreatePurchase(ctx context.Context, purchase *domain.Purchase) error
	ListPurchases(ctx context.Context, offset, limit int) ([]*domain.Purchase, error)
	CountPurchases(ctx context.Context) (int64, error)
}

type purchaseRepository struct{ db *gorm.DB }

func NewPurchaseRepository(db *gorm.DB) PurchaseRepository { return &purchaseRepository{db: db} }

func (r *purchaseRepository) CreatePurchase(ctx context.Context, purchase *domain.Purchase) error {
	return r.db.WithContext(ctx).Create(purchase).Error
}

func (r *purchaseRepository) ListPurchases(ctx context.Context, offset, limit int) ([]*domain.Purchase, error) {
	var purchases []*domain.Purchase
	err := r.db.WithContext(ctx).
		Order("created_at desc").
		Offset(offset).
		Limit(limit).
		Find(&purchases).Error
	if err != nil {
		return nil, err
	}
	return purchases, nil
}

func (r *purchaseRepository) CountPurchases(ctx context.Context) (int64, error) {
	var total int64
	err := r.db.WithContext(ctx).Model(&domain.Purchase{}).Count(&total).Error
	return total, err
}
