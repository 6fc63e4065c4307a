package auth

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"crmcore/internal/domain"
	"crmcore/internal/repository"
)

type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) Create(ctx context.Context, u *domain.User) error {
	args := m.Called(ctx, u)
	if args.Error(0) == nil && u.ID == "" {
		u.ID = "user-1"
	}
	return args.Error(0)
}

func (m *MockUserRepository) GetByID(ctx context.Context, id string) (*domain.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

type stubJWT struct{}

func (stubJWT) GenerateToken(u *domain.User) (string, error) {
	return "token-" + u.ID, nil
}

func TestRegister(t *testing.T) {
	users := new(MockUserRepository)
	service := NewService(users, stubJWT{})

	users.On("Create", mock.Anything, mock.AnythingOfType("*domain.User")).Return(nil)

	u, err := service.Register(context.Background(), RegisterRequest{
		Email:    "Sales@Example.com",
		Password: "correct-horse",
		Name:     "Sam Sales",
	})
	require.NoError(t, err)
	assert.Equal(t, "sales@example.com", u.Email)
	assert.Equal(t, domain.RoleSales, u.Role)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte("correct-horse")))
}

func TestRegister_DuplicateEmail(t *testing.T) {
	users := new(MockUserRepository)
	service := NewService(users, stubJWT{})

	users.On("Create", mock.Anything, mock.AnythingOfType("*domain.User")).Return(repository.ErrDuplicate)

	_, err := service.Register(context.Background(), RegisterRequest{
		Email:    "taken@example.com",
		Password: "correct-horse",
		Name:     "Dup",
	})
	assert.ErrorIs(t, err, ErrEmailTaken)
}

func TestRegister_ShortPassword(t *testing.T) {
	service := NewService(new(MockUserRepository), stubJWT{})

	_, err := service.Register(context.Background(), RegisterRequest{
		Email:    "a@example.com",
		Password: "short",
		Name:     "A",
	})

	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Contains(t, verr.Fields, "Password")
}

func TestLogin(t *testing.T) {
	users := new(MockUserRepository)
	service := NewService(users, stubJWT{})

	hash, err := bcrypt.GenerateFromPassword([]byte("correct-horse"), bcrypt.MinCost)
	require.NoError(t, err)
	users.On("GetByEmail", mock.Anything, "sam@example.com").Return(&domain.User{
		ID:           "user-1",
		Email:        "sam@example.com",
		PasswordHash: string(hash),
		Role:         domain.RoleManager,
	}, nil)

	result, err := service.Login(context.Background(), LoginRequest{
		Email:    "sam@example.com",
		Password: "correct-horse",
	})
	require.NoError(t, err)
	assert.Equal(t, "token-user-1", result.Token)
	assert.Equal(t, "user-1", result.User.ID)
}

func TestLogin_WrongPassword(t *testing.T) {
	users := new(MockUserRepository)
	service := NewService(users, stubJWT{})

	hash, err := bcrypt.GenerateFromPassword([]byte("correct-horse"), bcrypt.MinCost)
	require.NoError(t, err)
	users.On("GetByEmail", mock.Anything, "sam@example.com").Return(&domain.User{
		PasswordHash: string(hash),
	}, nil)

	_, err = service.Login(context.Background(), LoginRequest{
		Email:    "sam@example.com",
		Password: "wrong",
	})
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestLogin_UnknownEmail(t *testing.T) {
	users := new(MockUserRepository)
	service := NewService(users, stubJWT{})

	users.On("GetByEmail", mock.Anything, "ghost@example.com").Return(nil, repository.ErrNotFound)

	_, err := service.Login(context.Background(), LoginRequest{
		Email:    "ghost@example.com",
		Password: "whatever",
	})
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}
