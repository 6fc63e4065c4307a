package repository

import (
	"context"

	"gorm.io/gorm"

	"crmcore/internal/domain"
)

type LeadRepository struct {
	db *gorm.DB
}

func NewLeadRepository(db *gorm.DB) *LeadRepository {
	return &LeadRepository{db: db}
}

func (r *LeadRepository) Create(ctx context.Context, l *domain.Lead) error {
	return translate(r.db.WithContext(ctx).Create(l).Error)
}

func (r *LeadRepository) GetByID(ctx context.Context, id string) (*domain.Lead, error) {
	var l domain.Lead
	if err := r.db.WithContext(ctx).First(&l, "id = ?", id).Error; err != nil {
		return nil, translate(err)
	}
	return &l, nil
}

// GetWithRelations loads a lead together with its owner and tasks, the full
// graph the conversion engine needs.
func (r *LeadRepository) GetWithRelations(ctx context.Context, id string) (*domain.Lead, error) {
	var l domain.Lead
	err := r.db.WithContext(ctx).
		Preload("Owner").
		Preload("Tasks").
		Preload("Tasks.Owner").
		First(&l, "id = ?", id).Error
	if err != nil {
		return nil, translate(err)
	}
	return &l, nil
}

func (r *LeadRepository) List(ctx context.Context, limit, offset int) ([]domain.Lead, error) {
	var leads []domain.Lead
	err := r.db.WithContext(ctx).
		Preload("Owner").
		Order("created_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&leads).Error
	return leads, translate(err)
}

func (r *LeadRepository) Save(ctx context.Context, l *domain.Lead) error {
	return translate(r.db.WithContext(ctx).Save(l).Error)
}

// SoftDelete retires the lead; it stays in storage but drops out of every
// lead-scoped query.
func (r *LeadRepository) SoftDelete(ctx context.Context, id string) error {
	tx := r.db.WithContext(ctx).Delete(&domain.Lead{}, "id = ?", id)
	if tx.Error != nil {
		return translate(tx.Error)
	}
	if tx.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
