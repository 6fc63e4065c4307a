package repository

import (
	"context"

	"gorm.io/gorm"

	"crmcore/internal/domain"
)

type TaskRepository struct {
	db *gorm.DB
}

func NewTaskRepository(db *gorm.DB) *TaskRepository {
	return &TaskRepository{db: db}
}

func (r *TaskRepository) Create(ctx context.Context, t *domain.Task) error {
	return translate(r.db.WithContext(ctx).Create(t).Error)
}

func (r *TaskRepository) GetByLeadID(ctx context.Context, leadID string) ([]domain.Task, error) {
	var tasks []domain.Task
	err := r.db.WithContext(ctx).
		Where("lead_id = ?", leadID).
		Order("created_at").
		Find(&tasks).Error
	return tasks, translate(err)
}

// SaveAll persists a batch of rewired tasks.
func (r *TaskRepository) SaveAll(ctx context.Context, tasks []domain.Task) error {
	for i := range tasks {
		if err := r.db.WithContext(ctx).Save(&tasks[i]).Error; err != nil {
			return translate(err)
		}
	}
	return nil
}
