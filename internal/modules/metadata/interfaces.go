package metadata

import (
	"context"

	"crmcore/internal/domain"
)

// ModuleRepository is the persistence surface of the metadata engine.
type ModuleRepository interface {
	GetByID(ctx context.Context, id string) (*domain.Module, error)
	GetByName(ctx context.Context, name string) (*domain.Module, error)
	List(ctx context.Context) ([]domain.Module, error)
	Save(ctx context.Context, m *domain.Module) error
}

// ActivityEmitter records customization changes, fire-and-forget.
type ActivityEmitter interface {
	Emit(entry domain.ActivityLog)
}
