package repository

import (
	"context"

	"gorm.io/gorm"

	"crmcore/internal/domain"
)

type ActivityLogRepository struct {
	db *gorm.DB
}

func NewActivityLogRepository(db *gorm.DB) *ActivityLogRepository {
	return &ActivityLogRepository{db: db}
}

func (r *ActivityLogRepository) Create(ctx context.Context, a *domain.ActivityLog) error {
	return translate(r.db.WithContext(ctx).Create(a).Error)
}

func (r *ActivityLogRepository) List(ctx context.Context, entityID string, limit int) ([]domain.ActivityLog, error) {
	q := r.db.WithContext(ctx).Order("created_at DESC").Limit(limit)
	if entityID != "" {
		q = q.Where("entity_id = ?", entityID)
	}
	var logs []domain.ActivityLog
	err := q.Find(&logs).Error
	return logs, translate(err)
}
