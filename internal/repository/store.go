package repository

import (
	"context"

	"gorm.io/gorm"

	"crmcore/internal/domain"
)

// Store bundles every repository over a single gorm handle so multi-entity
// sequences can run inside one transaction.
type Store struct {
	db *gorm.DB

	Users    *UserRepository
	Leads    *LeadRepository
	Accounts *AccountRepository
	Contacts *ContactRepository
	Deals    *DealRepository
	Tasks    *TaskRepository
	Modules  *ModuleRepository
	Sections *SectionRepository
	Activity *ActivityLogRepository
}

func NewStore(db *gorm.DB) *Store {
	return &Store{
		db:       db,
		Users:    NewUserRepository(db),
		Leads:    NewLeadRepository(db),
		Accounts: NewAccountRepository(db),
		Contacts: NewContactRepository(db),
		Deals:    NewDealRepository(db),
		Tasks:    NewTaskRepository(db),
		Modules:  NewModuleRepository(db),
		Sections: NewSectionRepository(db),
		Activity: NewActivityLogRepository(db),
	}
}

// InTx runs fn against a store bound to one database transaction. Any error
// rolls the whole transaction back.
func (s *Store) InTx(ctx context.Context, fn func(*Store) error) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(NewStore(tx))
	})
}

// Facade methods let service packages declare narrow store interfaces that
// *Store satisfies structurally.

func (s *Store) LeadWithRelations(ctx context.Context, id string) (*domain.Lead, error) {
	return s.Leads.GetWithRelations(ctx, id)
}

func (s *Store) UserByID(ctx context.Context, id string) (*domain.User, error) {
	return s.Users.GetByID(ctx, id)
}

func (s *Store) SaveLead(ctx context.Context, l *domain.Lead) error {
	return s.Leads.Save(ctx, l)
}

func (s *Store) CreateAccount(ctx context.Context, a *domain.Account) error {
	return s.Accounts.Create(ctx, a)
}

func (s *Store) CreateContact(ctx context.Context, c *domain.Contact) error {
	return s.Contacts.Create(ctx, c)
}

func (s *Store) CreateDeal(ctx context.Context, d *domain.Deal) error {
	return s.Deals.Create(ctx, d)
}

func (s *Store) SaveTasks(ctx context.Context, tasks []domain.Task) error {
	return s.Tasks.SaveAll(ctx, tasks)
}

func (s *Store) SoftDeleteLead(ctx context.Context, id string) error {
	return s.Leads.SoftDelete(ctx, id)
}

func (s *Store) SectionByID(ctx context.Context, id string) (*domain.Section, error) {
	return s.Sections.GetByID(ctx, id)
}

func (s *Store) CreateSection(ctx context.Context, sec *domain.Section) error {
	return s.Sections.Create(ctx, sec)
}

func (s *Store) SaveSection(ctx context.Context, sec *domain.Section) error {
	return s.Sections.Save(ctx, sec)
}

func (s *Store) SoftDeleteSections(ctx context.Context, ids []string) error {
	return s.Sections.SoftDeleteByIDs(ctx, ids)
}

func (s *Store) ListSections(ctx context.Context, moduleID string) ([]domain.Section, error) {
	return s.Sections.ListByModule(ctx, moduleID)
}

func (s *Store) ModuleByName(ctx context.Context, name string) (*domain.Module, error) {
	return s.Modules.GetByName(ctx, name)
}
