package repository

import (
	"context"

	"gorm.io/gorm"

	"crmcore/internal/domain"
)

type DealRepository struct {
	db *gorm.DB
}

func NewDealRepository(db *gorm.DB) *DealRepository {
	return &DealRepository{db: db}
}

func (r *DealRepository) Create(ctx context.Context, d *domain.Deal) error {
	return translate(r.db.WithContext(ctx).Create(d).Error)
}

func (r *DealRepository) GetByID(ctx context.Context, id string) (*domain.Deal, error) {
	var d domain.Deal
	if err := r.db.WithContext(ctx).First(&d, "id = ?", id).Error; err != nil {
		return nil, translate(err)
	}
	return &d, nil
}

func (r *DealRepository) List(ctx context.Context, limit, offset int) ([]domain.Deal, error) {
	var deals []domain.Deal
	err := r.db.WithContext(ctx).
		Order("created_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&deals).Error
	return deals, translate(err)
}
