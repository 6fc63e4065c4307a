package repository

import (
	"context"

	"gorm.io/gorm"

	"crmcore/internal/domain"
)

type SectionRepository struct {
	db *gorm.DB
}

func NewSectionRepository(db *gorm.DB) *SectionRepository {
	return &SectionRepository{db: db}
}

func (r *SectionRepository) Create(ctx context.Context, s *domain.Section) error {
	return translate(r.db.WithContext(ctx).Create(s).Error)
}

func (r *SectionRepository) GetByID(ctx context.Context, id string) (*domain.Section, error) {
	var s domain.Section
	if err := r.db.WithContext(ctx).First(&s, "id = ?", id).Error; err != nil {
		return nil, translate(err)
	}
	return &s, nil
}

// ListByModule returns the module's surviving sections in display order.
func (r *SectionRepository) ListByModule(ctx context.Context, moduleID string) ([]domain.Section, error) {
	var sections []domain.Section
	err := r.db.WithContext(ctx).
		Where("module_id = ?", moduleID).
		Order("display_order").
		Find(&sections).Error
	return sections, translate(err)
}

func (r *SectionRepository) Save(ctx context.Context, s *domain.Section) error {
	return translate(r.db.WithContext(ctx).Save(s).Error)
}

func (r *SectionRepository) SoftDeleteByIDs(ctx context.Context, ids []string) error {
	if len(ids) == 0 {
		return nil
	}
	tx := r.db.WithContext(ctx).Delete(&domain.Section{}, "id IN ?", ids)
	if tx.Error != nil {
		return translate(tx.Error)
	}
	if tx.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
