package admin

import (
	"context"

	"github.com/stretchr/testify/mock"

	"teesheet/internal/auth"
	"teesheet/internal/booking"
	"teesheet/internal/user"
)

type MockUserService struct {
	mock.Mock
}

func userOrNil(args mock.Arguments) (*user.User, error) {
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*user.User), args.Error(1)
}

func (m *MockUserService) Register(ctx context.Context, req user.RegisterRequest) (*user.User, string, string, error) {
	args := m.Called(ctx, req)
	u, _ := args.Get(0).(*user.User)
	return u, args.String(1), args.String(2), args.Error(3)
}

func (m *MockUserService) Login(ctx context.Context, req user.LoginRequest) (*user.User, string, string, error) {
	args := m.Called(ctx, req)
	u, _ := args.Get(0).(*user.User)
	return u, args.String(1), args.String(2), args.Error(3)
}

func (m *MockUserService) GetByID(ctx context.Context, userID int) (*user.User, error) {
	return userOrNil(m.Called(ctx, userID))
}

func (m *MockUserService) RefreshToken(ctx context.Context, refreshToken string) (string, *user.User, error) {
	args := m.Called(ctx, refreshToken)
	u, _ := args.Get(1).(*user.User)
	return args.String(0), u, args.Error(2)
}

func (m *MockUserService) Account(ctx context.Context, userID int) (auth.Account, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).(auth.Account), args.Error(1)
}

func (m *MockUserService) List(ctx context.Context) ([]user.User, error) {
	args := m.Called(ctx)
	users, _ := args.Get(0).([]user.User)
	return users, args.Error(1)
}

func (m *MockUserService) Count(ctx context.Context) (int, error) {
	args := m.Called(ctx)
	return args.Int(0), args.Error(1)
}

func (m *MockUserService) UpdateRole(ctx context.Context, userID int, role string) (*user.User, error) {
	return userOrNil(m.Called(ctx, userID, role))
}

func (m *MockUserService) SetActive(ctx context.Context, userID int, active bool) (*user.User, error) {
	return userOrNil(m.Called(ctx, userID, active))
}

func (m *MockUserService) PromoteToAdmin(ctx context.Context, email string) (*user.User, error) {
	return userOrNil(m.Called(ctx, email))
}

type MockBookingStats struct {
	mock.Mock
}

func (m *MockBookingStats) Stats(ctx context.Context) (*booking.Stats, error) {
	args := m.Called(ctx)
	st, _ := args.Get(0).(*booking.Stats)
	return st, args.Error(1)
}

type MockService struct {
	mock.Mock
}

func (m *MockService) Stats(ctx context.Context) (*Stats, error) {
	args := m.Called(ctx)
	st, _ := args.Get(0).(*Stats)
	return st, args.Error(1)
}
