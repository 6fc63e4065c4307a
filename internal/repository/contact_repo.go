package repository

import (
	"context"

	"gorm.io/gorm"

	"crmcore/internal/domain"
)

type ContactRepository struct {
	db *gorm.DB
}

func NewContactRepository(db *gorm.DB) *ContactRepository {
	return &ContactRepository{db: db}
}

func (r *ContactRepository) Create(ctx context.Context, c *domain.Contact) error {
	return translate(r.db.WithContext(ctx).Create(c).Error)
}

func (r *ContactRepository) GetByID(ctx context.Context, id string) (*domain.Contact, error) {
	var c domain.Contact
	if err := r.db.WithContext(ctx).First(&c, "id = ?", id).Error; err != nil {
		return nil, translate(err)
	}
	return &c, nil
}

func (r *ContactRepository) List(ctx context.Context, limit, offset int) ([]domain.Contact, error) {
	var contacts []domain.Contact
	err := r.db.WithContext(ctx).
		Order("created_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&contacts).Error
	return contacts, translate(err)
}
