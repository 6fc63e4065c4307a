package metadata

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"crmcore/internal/domain"
	"crmcore/internal/repository"
)

type MockModuleRepository struct {
	mock.Mock
}

func (m *MockModuleRepository) GetByID(ctx context.Context, id string) (*domain.Module, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Module), args.Error(1)
}

func (m *MockModuleRepository) GetByName(ctx context.Context, name string) (*domain.Module, error) {
	args := m.Called(ctx, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Module), args.Error(1)
}

func (m *MockModuleRepository) List(ctx context.Context) ([]domain.Module, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Module), args.Error(1)
}

func (m *MockModuleRepository) Save(ctx context.Context, mod *domain.Module) error {
	args := m.Called(ctx, mod)
	return args.Error(0)
}

func TestReplace_DedupesAndPinsName(t *testing.T) {
	repo := new(MockModuleRepository)
	repo.On("GetByID", mock.Anything, "mod-contact").Return(contactModule(), nil)
	repo.On("Save", mock.Anything, mock.Anything).Return(nil)

	service := NewService(repo, nil)

	m, err := service.Replace(context.Background(), "mod-contact", ReplaceModuleRequest{
		Name: "contact",
		Meta: domain.FieldMetaList{
			{Name: "email", Type: domain.FieldTypeEmail},
			{Name: "name", Type: domain.FieldTypeText},
			{Name: "email", Type: domain.FieldTypeText}, // duplicate, last wins
		},
	})
	require.NoError(t, err)

	require.Len(t, m.Meta, 2)
	assert.Equal(t, "name", m.Meta[0].Name)
	assert.Equal(t, domain.FieldTypeText, m.Meta[1].Type)
	repo.AssertCalled(t, "Save", mock.Anything, mock.Anything)
}

func TestReplace_RejectsDuplicateConvertSource(t *testing.T) {
	repo := new(MockModuleRepository)
	repo.On("GetByID", mock.Anything, "mod-contact").Return(contactModule(), nil)
	repo.On("GetByName", mock.Anything, "lead").Return(leadModule(), nil)

	service := NewService(repo, nil)

	_, err := service.Replace(context.Background(), "mod-contact", ReplaceModuleRequest{
		Name: "contact",
		Meta: contactModule().Meta,
		ConvertMeta: domain.ConvertMetaList{
			{Source: "lead", Meta: map[string]string{"email": "email"}},
			{Source: "lead", Meta: map[string]string{"phone_num": "notes"}},
		},
	})
	assert.ErrorIs(t, err, ErrDuplicateSource)
	repo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
}

func TestReplace_RejectsIncompatibleMapping(t *testing.T) {
	repo := new(MockModuleRepository)
	repo.On("GetByID", mock.Anything, "mod-contact").Return(contactModule(), nil)
	repo.On("GetByName", mock.Anything, "lead").Return(leadModule(), nil)

	service := NewService(repo, nil)

	_, err := service.Replace(context.Background(), "mod-contact", ReplaceModuleRequest{
		Name: "contact",
		Meta: contactModule().Meta,
		ConvertMeta: domain.ConvertMetaList{
			{Source: "lead", Meta: map[string]string{"score": "birthday"}},
		},
	})
	assert.ErrorIs(t, err, ErrIncompatibleTypes)
	repo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
}

func TestReplace_ModuleNotFound(t *testing.T) {
	repo := new(MockModuleRepository)
	repo.On("GetByID", mock.Anything, "ghost").Return(nil, repository.ErrNotFound)

	service := NewService(repo, nil)

	_, err := service.Replace(context.Background(), "ghost", ReplaceModuleRequest{Name: "x"})
	assert.ErrorIs(t, err, ErrModuleNotFound)
}

func TestConvert_GenericPath(t *testing.T) {
	target := contactModule()
	target.ConvertMeta = domain.ConvertMetaList{
		{Source: "lead", Meta: map[string]string{"email": "email", "phone_num": "notes"}},
	}

	repo := new(MockModuleRepository)
	repo.On("GetByName", mock.Anything, "lead").Return(leadModule(), nil)
	repo.On("GetByName", mock.Anything, "contact").Return(target, nil)

	service := NewService(repo, nil)

	out, err := service.Convert(context.Background(), "lead", "contact", map[string]any{
		"email":     "jane@x.com",
		"phone_num": "555-0100",
	})
	require.NoError(t, err)
	assert.Equal(t, map[string]any{"email": "jane@x.com", "notes": "555-0100"}, out)
}

func TestConvert_NoMappingForSource(t *testing.T) {
	repo := new(MockModuleRepository)
	repo.On("GetByName", mock.Anything, "lead").Return(leadModule(), nil)
	repo.On("GetByName", mock.Anything, "contact").Return(contactModule(), nil)

	service := NewService(repo, nil)

	_, err := service.Convert(context.Background(), "lead", "contact", nil)
	assert.ErrorIs(t, err, ErrValidation)
}

func TestCompatibleTargets_Service(t *testing.T) {
	repo := new(MockModuleRepository)
	repo.On("GetByID", mock.Anything, "mod-lead").Return(leadModule(), nil)
	repo.On("GetByName", mock.Anything, "contact").Return(contactModule(), nil)

	service := NewService(repo, nil)

	fields, err := service.CompatibleTargets(context.Background(), "mod-lead", "phone_num", "contact")
	require.NoError(t, err)
	names := make([]string, 0, len(fields))
	for _, f := range fields {
		names = append(names, f.Name)
	}
	assert.ElementsMatch(t, []string{"name", "email", "notes"}, names)
}
