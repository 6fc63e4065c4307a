package lead

import (
	"context"
	"errors"
	"reflect"
	"time"

	"crmcore/internal/domain"
	"crmcore/internal/pkg/validator"
	"crmcore/internal/repository"
)

type Service struct {
	leads    LeadRepository
	tasks    TaskRepository
	activity ActivityEmitter
}

func NewService(leads LeadRepository, tasks TaskRepository, activity ActivityEmitter) *Service {
	return &Service{leads: leads, tasks: tasks, activity: activity}
}

func (s *Service) Create(ctx context.Context, req CreateLeadRequest) (*domain.Lead, error) {
	if fields := validator.Validate(req); fields != nil {
		return nil, &ValidationError{Fields: fields}
	}

	l := &domain.Lead{
		OwnerID:       req.OwnerID,
		FullName:      req.FullName,
		Email:         req.Email,
		Status:        req.Status,
		Source:        req.Source,
		Address:       req.Address,
		Description:   req.Description,
		PhoneNum:      req.PhoneNum,
		SocialAccount: req.SocialAccount,
		CustomFields:  req.CustomFields,
	}
	if l.Status == "" {
		l.Status = domain.LeadStatusNone
	}
	if l.Source == "" {
		l.Source = domain.SourceNone
	}

	if err := s.leads.Create(ctx, l); err != nil {
		return nil, err
	}

	s.activity.Emit(domain.ActivityLog{
		EntityID:   l.ID,
		EntityName: l.FullName,
		OwnerID:    l.OwnerID,
		Source:     "lead",
		Action:     domain.ActionCreate,
	})
	return l, nil
}

func (s *Service) Get(ctx context.Context, id string) (*domain.Lead, error) {
	l, err := s.leads.GetWithRelations(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrLeadNotFound
		}
		return nil, err
	}
	return l, nil
}

func (s *Service) List(ctx context.Context, limit, offset int) ([]domain.Lead, error) {
	if limit <= 0 || limit > 100 {
		limit = 50
	}
	if offset < 0 {
		offset = 0
	}
	return s.leads.List(ctx, limit, offset)
}

func (s *Service) Update(ctx context.Context, id string, req UpdateLeadRequest) (*domain.Lead, error) {
	if fields := validator.Validate(req); fields != nil {
		return nil, &ValidationError{Fields: fields}
	}

	l, err := s.leads.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrLeadNotFound
		}
		return nil, err
	}

	changes := applyUpdate(l, req)
	if len(changes) == 0 {
		return l, nil
	}

	if err := s.leads.Save(ctx, l); err != nil {
		return nil, err
	}

	s.activity.Emit(domain.ActivityLog{
		EntityID:   l.ID,
		EntityName: l.FullName,
		OwnerID:    l.OwnerID,
		Source:     "lead",
		Action:     domain.ActionUpdate,
		Changes:    changes,
	})
	return l, nil
}

func (s *Service) Delete(ctx context.Context, id string) error {
	l, err := s.leads.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrLeadNotFound
		}
		return err
	}

	if err := s.leads.SoftDelete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrLeadNotFound
		}
		return err
	}

	s.activity.Emit(domain.ActivityLog{
		EntityID:   l.ID,
		EntityName: l.FullName,
		OwnerID:    l.OwnerID,
		Source:     "lead",
		Action:     domain.ActionDelete,
	})
	return nil
}

func (s *Service) AddTask(ctx context.Context, leadID string, req CreateTaskRequest) (*domain.Task, error) {
	if fields := validator.Validate(req); fields != nil {
		return nil, &ValidationError{Fields: fields}
	}

	if _, err := s.leads.GetByID(ctx, leadID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrLeadNotFound
		}
		return nil, err
	}

	t := &domain.Task{
		LeadID:      &leadID,
		OwnerID:     req.OwnerID,
		Title:       req.Title,
		Description: req.Description,
		Status:      domain.TaskOpen,
	}
	if req.DueDate != nil {
		due, err := time.Parse("2006-01-02", *req.DueDate)
		if err != nil {
			return nil, &ValidationError{Fields: map[string]string{"due_date": "must be a date in YYYY-MM-DD format"}}
		}
		t.DueDate = &due
	}

	if err := s.tasks.Create(ctx, t); err != nil {
		return nil, err
	}
	return t, nil
}

func (s *Service) ListTasks(ctx context.Context, leadID string) ([]domain.Task, error) {
	if _, err := s.leads.GetByID(ctx, leadID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrLeadNotFound
		}
		return nil, err
	}
	return s.tasks.GetByLeadID(ctx, leadID)
}

// applyUpdate merges the non-nil request fields into the lead and returns the
// before/after diff for the activity feed.
func applyUpdate(l *domain.Lead, req UpdateLeadRequest) domain.FieldChangeList {
	var changes domain.FieldChangeList

	setString := func(name string, dst *string, src *string) {
		if src == nil || *src == *dst {
			return
		}
		changes = append(changes, domain.FieldChange{Name: name, From: *dst, To: *src})
		*dst = *src
	}

	setString("full_name", &l.FullName, req.FullName)
	setString("email", &l.Email, req.Email)
	setString("address", &l.Address, req.Address)
	setString("description", &l.Description, req.Description)
	setString("phone_num", &l.PhoneNum, req.PhoneNum)
	setString("social_account", &l.SocialAccount, req.SocialAccount)

	if req.Status != nil && *req.Status != l.Status {
		changes = append(changes, domain.FieldChange{Name: "status", From: l.Status, To: *req.Status})
		l.Status = *req.Status
	}
	if req.Source != nil && *req.Source != l.Source {
		changes = append(changes, domain.FieldChange{Name: "source", From: l.Source, To: *req.Source})
		l.Source = *req.Source
	}
	if req.OwnerID != nil {
		from := ""
		if l.OwnerID != nil {
			from = *l.OwnerID
		}
		if from != *req.OwnerID {
			changes = append(changes, domain.FieldChange{Name: "owner_id", From: from, To: *req.OwnerID})
			l.OwnerID = req.OwnerID
		}
	}
	if req.CustomFields != nil {
		for name, value := range req.CustomFields {
			if l.CustomFields == nil {
				l.CustomFields = domain.JSONMap{}
			}
			prev, had := l.CustomFields[name]
			if had && reflect.DeepEqual(prev, value) {
				continue
			}
			changes = append(changes, domain.FieldChange{Name: name, From: prev, To: value})
			l.CustomFields[name] = value
		}
	}

	return changes
}
