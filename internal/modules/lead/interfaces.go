package lead

import (
	"context"

	"crmcore/internal/domain"
)

type LeadRepository interface {
	Create(ctx context.Context, l *domain.Lead) error
	GetByID(ctx context.Context, id string) (*domain.Lead, error)
	GetWithRelations(ctx context.Context, id string) (*domain.Lead, error)
	List(ctx context.Context, limit, offset int) ([]domain.Lead, error)
	Save(ctx context.Context, l *domain.Lead) error
	SoftDelete(ctx context.Context, id string) error
}

type TaskRepository interface {
	Create(ctx context.Context, t *domain.Task) error
	GetByLeadID(ctx context.Context, leadID string) ([]domain.Task, error)
}

type ActivityEmitter interface {
	Emit(entry domain.ActivityLog)
}
