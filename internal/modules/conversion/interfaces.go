package conversion

import (
	"context"

	"crmcore/internal/domain"
)

// Store is the transactional view of persistence the engine works against.
// *repository.Store satisfies it.
type Store interface {
	LeadWithRelations(ctx context.Context, id string) (*domain.Lead, error)
	UserByID(ctx context.Context, id string) (*domain.User, error)
	SaveLead(ctx context.Context, l *domain.Lead) error
	CreateAccount(ctx context.Context, a *domain.Account) error
	CreateContact(ctx context.Context, c *domain.Contact) error
	CreateDeal(ctx context.Context, d *domain.Deal) error
	SaveTasks(ctx context.Context, tasks []domain.Task) error
	SoftDeleteLead(ctx context.Context, id string) error
}

// TxRunner executes fn atomically; every store call inside fn either commits
// as a whole or rolls back as a whole.
type TxRunner func(ctx context.Context, fn func(Store) error) error

// ActivityEmitter records audit entries. Implementations are fire-and-forget
// and must never fail the conversion.
type ActivityEmitter interface {
	Emit(entry domain.ActivityLog)
}
