package section

import (
	"context"

	"crmcore/internal/domain"
)

// Store is the transactional persistence view of the layout engine.
// *repository.Store satisfies it.
type Store interface {
	SectionByID(ctx context.Context, id string) (*domain.Section, error)
	CreateSection(ctx context.Context, s *domain.Section) error
	SaveSection(ctx context.Context, s *domain.Section) error
	SoftDeleteSections(ctx context.Context, ids []string) error
	ListSections(ctx context.Context, moduleID string) ([]domain.Section, error)
	ModuleByName(ctx context.Context, name string) (*domain.Module, error)
}

// TxRunner executes fn atomically.
type TxRunner func(ctx context.Context, fn func(Store) error) error
