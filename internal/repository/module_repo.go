package repository

import (
	"context"

	"gorm.io/gorm"

	"crmcore/internal/domain"
)

type ModuleRepository struct {
	db *gorm.DB
}

func NewModuleRepository(db *gorm.DB) *ModuleRepository {
	return &ModuleRepository{db: db}
}

func (r *ModuleRepository) Create(ctx context.Context, m *domain.Module) error {
	return translate(r.db.WithContext(ctx).Create(m).Error)
}

func (r *ModuleRepository) GetByID(ctx context.Context, id string) (*domain.Module, error) {
	var m domain.Module
	if err := r.db.WithContext(ctx).First(&m, "id = ?", id).Error; err != nil {
		return nil, translate(err)
	}
	return &m, nil
}

func (r *ModuleRepository) GetByName(ctx context.Context, name string) (*domain.Module, error) {
	var m domain.Module
	if err := r.db.WithContext(ctx).First(&m, "name = ?", name).Error; err != nil {
		return nil, translate(err)
	}
	return &m, nil
}

func (r *ModuleRepository) List(ctx context.Context) ([]domain.Module, error) {
	var modules []domain.Module
	err := r.db.WithContext(ctx).Order("name").Find(&modules).Error
	return modules, translate(err)
}

func (r *ModuleRepository) Save(ctx context.Context, m *domain.Module) error {
	return translate(r.db.WithContext(ctx).Save(m).Error)
}
