package user

import (
	"context"

	"github.com/stretchr/testify/mock"

	"teesheet/internal/auth"
)

type MockRepository struct {
	mock.Mock
}

func userOrNil(args mock.Arguments) (*User, error) {
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*User), args.Error(1)
}

func (m *MockRepository) Create(ctx context.Context, name, email, passwordHash, role string) (*User, error) {
	return userOrNil(m.Called(ctx, name, email, passwordHash, role))
}

func (m *MockRepository) FindByEmail(ctx context.Context, email string) (*User, error) {
	return userOrNil(m.Called(ctx, email))
}

func (m *MockRepository) FindByID(ctx context.Context, id int) (*User, error) {
	return userOrNil(m.Called(ctx, id))
}

func (m *MockRepository) EmailExists(ctx context.Context, email string) (bool, error) {
	args := m.Called(ctx, email)
	return args.Bool(0), args.Error(1)
}

func (m *MockRepository) List(ctx context.Context) ([]User, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]User), args.Error(1)
}

func (m *MockRepository) Count(ctx context.Context) (int, error) {
	args := m.Called(ctx)
	return args.Int(0), args.Error(1)
}

func (m *MockRepository) UpdateRole(ctx context.Context, id int, role string) (*User, error) {
	return userOrNil(m.Called(ctx, id, role))
}

func (m *MockRepository) SetActive(ctx context.Context, id int, active bool) (*User, error) {
	return userOrNil(m.Called(ctx, id, active))
}

type MockService struct {
	mock.Mock
}

func tokensOrNil(args mock.Arguments) (*User, string, string, error) {
	if args.Get(0) == nil {
		return nil, "", "", args.Error(3)
	}
	return args.Get(0).(*User), args.String(1), args.String(2), args.Error(3)
}

func (m *MockService) Register(ctx context.Context, req RegisterRequest) (*User, string, string, error) {
	return tokensOrNil(m.Called(ctx, req))
}

func (m *MockService) Login(ctx context.Context, req LoginRequest) (*User, string, string, error) {
	return tokensOrNil(m.Called(ctx, req))
}

func (m *MockService) GetByID(ctx context.Context, userID int) (*User, error) {
	return userOrNil(m.Called(ctx, userID))
}

func (m *MockService) RefreshToken(ctx context.Context, refreshToken string) (string, *User, error) {
	args := m.Called(ctx, refreshToken)
	if args.Get(1) == nil {
		return args.String(0), nil, args.Error(2)
	}
	return args.String(0), args.Get(1).(*User), args.Error(2)
}

func (m *MockService) Account(ctx context.Context, userID int) (auth.Account, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).(auth.Account), args.Error(1)
}

func (m *MockService) List(ctx context.Context) ([]User, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]User), args.Error(1)
}

func (m *MockService) Count(ctx context.Context) (int, error) {
	args := m.Called(ctx)
	return args.Int(0), args.Error(1)
}

func (m *MockService) UpdateRole(ctx context.Context, userID int, role string) (*User, error) {
	return userOrNil(m.Called(ctx, userID, role))
}

func (m *MockService) SetActive(ctx context.Context, userID int, active bool) (*User, error) {
	return userOrNil(m.Called(ctx, userID, active))
}

func (m *MockService) PromoteToAdmin(ctx context.Context, email string) (*User, error) {
	return userOrNil(m.Called(ctx, email))
}
