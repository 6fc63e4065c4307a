package metadata

import (
	"context"
	"errors"
	"fmt"

	"crmcore/internal/domain"
	"crmcore/internal/repository"
)

type Service struct {
	modules  ModuleRepository
	activity ActivityEmitter
}

func NewService(modules ModuleRepository, activity ActivityEmitter) *Service {
	return &Service{
		modules:  modules,
		activity: activity,
	}
}

func (s *Service) List(ctx context.Context) ([]domain.Module, error) {
	return s.modules.List(ctx)
}

func (s *Service) Get(ctx context.Context, id string) (*domain.Module, error) {
	return s.load(ctx, id)
}

// Replace applies full-document replace semantics: the incoming meta array
// becomes the module's meta (deduplicated last-write-wins), convert and
// kanban metadata are swapped wholesale. Convert mappings are validated
// against their source modules before anything is persisted.
func (s *Service) Replace(ctx context.Context, id string, req ReplaceModuleRequest) (*domain.Module, error) {
	m, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}

	meta := DedupeMeta(req.Meta)
	for _, f := range meta {
		if err := ValidateField(f); err != nil {
			return nil, err
		}
	}

	next := &domain.Module{
		ID:          m.ID,
		Name:        req.Name,
		Meta:        meta,
		ConvertMeta: req.ConvertMeta,
		KanbanMeta:  req.KanbanMeta,
		CreatedAt:   m.CreatedAt,
	}
	pinNameFirst(next)

	seenSources := make(map[string]bool, len(req.ConvertMeta))
	for _, cm := range req.ConvertMeta {
		if seenSources[cm.Source] {
			return nil, fmt.Errorf("%w: %q", ErrDuplicateSource, cm.Source)
		}
		seenSources[cm.Source] = true

		source, err := s.modules.GetByName(ctx, cm.Source)
		if err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				return nil, fmt.Errorf("%w: convert_meta source %q", ErrModuleNotFound, cm.Source)
			}
			return nil, err
		}
		if err := ValidateMapping(source, next, cm); err != nil {
			return nil, err
		}
	}

	if err := s.modules.Save(ctx, next); err != nil {
		return nil, err
	}
	s.emit(next, domain.FieldChangeList{{Name: "meta", From: len(m.Meta), To: len(next.Meta)}})
	return next, nil
}

func (s *Service) UpsertField(ctx context.Context, id string, f domain.FieldMeta) (*domain.Module, error) {
	m, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := UpsertField(m, f); err != nil {
		return nil, err
	}
	if err := s.modules.Save(ctx, m); err != nil {
		return nil, err
	}
	s.emit(m, domain.FieldChangeList{{Name: f.Name, From: nil, To: string(f.Type)}})
	return m, nil
}

func (s *Service) MoveField(ctx context.Context, id string, req MoveFieldRequest) (*domain.Module, error) {
	m, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := MoveField(m, req.Field, req.FromGroup, req.ToGroup, req.ToIndex); err != nil {
		return nil, err
	}
	if err := s.modules.Save(ctx, m); err != nil {
		return nil, err
	}
	s.emit(m, domain.FieldChangeList{{Name: req.Field, From: req.FromGroup, To: req.ToGroup}})
	return m, nil
}

func (s *Service) ReorderGroups(ctx context.Context, id string, req ReorderGroupsRequest) (*domain.Module, error) {
	m, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := ReorderGroups(m, req.Group, req.Direction); err != nil {
		return nil, err
	}
	if err := s.modules.Save(ctx, m); err != nil {
		return nil, err
	}
	s.emit(m, nil)
	return m, nil
}

// DeleteGroup is irreversible; the confirmed flag comes from an explicit
// caller acknowledgement (?confirm=true), mirroring the confirm dialog in
// the customization UI.
func (s *Service) DeleteGroup(ctx context.Context, id, group string, confirmed bool) (*domain.Module, error) {
	if !confirmed {
		return nil, ErrNotConfirmed
	}
	m, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := DeleteGroup(m, group); err != nil {
		return nil, err
	}
	if err := s.modules.Save(ctx, m); err != nil {
		return nil, err
	}
	s.emit(m, domain.FieldChangeList{{Name: "group", From: group, To: nil}})
	return m, nil
}

// CompatibleTargets lists the fields of targetModule that the named source
// field may be mapped onto.
func (s *Service) CompatibleTargets(ctx context.Context, id, fieldName, targetModule string) ([]domain.FieldMeta, error) {
	m, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	f := m.Field(fieldName)
	if f == nil {
		return nil, fmt.Errorf("%w: %q", ErrFieldNotFound, fieldName)
	}
	target, err := s.modules.GetByName(ctx, targetModule)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, fmt.Errorf("%w: %q", ErrModuleNotFound, targetModule)
		}
		return nil, err
	}
	return CompatibleTargetFields(*f, target), nil
}

// Convert maps a source record onto a target module's fields using the
// target's convert metadata for that source. This is the generic, module-
// agnostic conversion path.
func (s *Service) Convert(ctx context.Context, sourceModule, targetModule string, values map[string]any) (map[string]any, error) {
	source, err := s.modules.GetByName(ctx, sourceModule)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, fmt.Errorf("%w: %q", ErrModuleNotFound, sourceModule)
		}
		return nil, err
	}
	target, err := s.modules.GetByName(ctx, targetModule)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, fmt.Errorf("%w: %q", ErrModuleNotFound, targetModule)
		}
		return nil, err
	}
	cm := target.ConvertMetaFor(sourceModule)
	if cm == nil {
		return nil, fmt.Errorf("%w: module %q has no convert_meta for source %q",
			ErrValidation, targetModule, sourceModule)
	}
	return MapRecord(source, target, *cm, values)
}

func (s *Service) load(ctx context.Context, id string) (*domain.Module, error) {
	m, err := s.modules.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrModuleNotFound
		}
		return nil, err
	}
	return m, nil
}

func (s *Service) emit(m *domain.Module, changes domain.FieldChangeList) {
	if s.activity == nil {
		return
	}
	s.activity.Emit(domain.ActivityLog{
		EntityID:   m.ID,
		EntityName: "module",
		Source:     "customization",
		Action:     domain.ActionUpdate,
		Changes:    changes,
	})
}
