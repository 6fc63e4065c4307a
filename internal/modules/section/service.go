package section

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"crmcore/internal/domain"
	"crmcore/internal/repository"
)

// defaultSections maps the stock section names to the module each one
// bootstraps. A section created with these names and no module is adopted as
// that module's default section.
var defaultSections = map[string]string{
	"Lead Information":    "lead",
	"Account Information": "account",
	"Contact Information": "contact",
	"Deal Information":    "deal",
}

type Service struct {
	inTx TxRunner
}

func NewService(inTx TxRunner) *Service {
	return &Service{inTx: inTx}
}

// ModifySections processes a batch of ADD/UPDATE/DELETE items sequentially
// in input order inside one transaction. ADD and UPDATE items take the next
// order slot; DELETE does not consume one, and a failed DELETE aborts the
// whole batch. Afterwards surviving sections are renumbered to a dense
// 1-based sequence.
func (s *Service) ModifySections(ctx context.Context, moduleID string, items []ModifySectionRequest) ([]domain.Section, error) {
	var out []domain.Section
	err := s.inTx(ctx, func(store Store) error {
		next := 1
		for _, item := range items {
			action := item.Action
			if action == "" {
				action = ActionUpdate
			}

			switch action {
			case ActionAdd:
				if item.Name == "" {
					return fmt.Errorf("%w: name is required for ADD", ErrValidation)
				}
				sec := &domain.Section{
					Name:   item.Name,
					Order:  next,
					Fields: item.Fields,
				}
				if item.Column != nil {
					sec.Column = *item.Column
				}
				if moduleID != "" {
					id := moduleID
					sec.ModuleID = &id
				} else if err := adoptDefault(ctx, store, sec); err != nil {
					return err
				}
				if err := store.CreateSection(ctx, sec); err != nil {
					return err
				}
				next++

			case ActionUpdate:
				if item.ID == "" {
					return fmt.Errorf("%w: id is required for UPDATE", ErrValidation)
				}
				sec, err := store.SectionByID(ctx, item.ID)
				if err != nil {
					if errors.Is(err, repository.ErrNotFound) {
						return ErrSectionNotFound
					}
					return err
				}
				if item.Name != "" {
					sec.Name = item.Name
				}
				if item.Column != nil {
					sec.Column = *item.Column
				}
				if item.Fields != nil {
					sec.Fields = item.Fields
				}
				sec.Order = next
				if err := store.SaveSection(ctx, sec); err != nil {
					return err
				}
				next++

			case ActionDelete:
				ids := item.IDs
				if item.ID != "" {
					ids = append(ids, item.ID)
				}
				if len(ids) == 0 {
					return fmt.Errorf("%w: id is required for DELETE", ErrValidation)
				}
				if err := store.SoftDeleteSections(ctx, ids); err != nil {
					if errors.Is(err, repository.ErrNotFound) {
						return ErrSectionNotFound
					}
					return err
				}

			default:
				return fmt.Errorf("%w: unknown action %q", ErrValidation, item.Action)
			}
		}

		if moduleID == "" {
			return nil
		}
		renumbered, err := renumber(ctx, store, moduleID)
		if err != nil {
			return err
		}
		out = renumbered
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// List returns the module's surviving sections in display order.
func (s *Service) List(ctx context.Context, moduleID string) ([]domain.Section, error) {
	var out []domain.Section
	err := s.inTx(ctx, func(store Store) error {
		sections, err := store.ListSections(ctx, moduleID)
		if err != nil {
			return err
		}
		out = sections
		return nil
	})
	return out, err
}

// renumber rewrites the surviving sections' orders as a dense 1-based
// ascending sequence.
func renumber(ctx context.Context, store Store, moduleID string) ([]domain.Section, error) {
	sections, err := store.ListSections(ctx, moduleID)
	if err != nil {
		return nil, err
	}
	sort.SliceStable(sections, func(i, j int) bool {
		return sections[i].Order < sections[j].Order
	})
	for i := range sections {
		if sections[i].Order == i+1 {
			continue
		}
		sections[i].Order = i + 1
		if err := store.SaveSection(ctx, &sections[i]); err != nil {
			return nil, err
		}
	}
	return sections, nil
}

// adoptDefault implements the one-time bootstrap rule: a section created
// without a module whose name matches a stock section name becomes that
// module's default section.
func adoptDefault(ctx context.Context, store Store, sec *domain.Section) error {
	moduleName, ok := defaultSections[sec.Name]
	if !ok {
		return nil
	}
	m, err := store.ModuleByName(ctx, moduleName)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil
		}
		return err
	}
	sec.ModuleID = &m.ID
	sec.IsDefault = true
	return nil
}
