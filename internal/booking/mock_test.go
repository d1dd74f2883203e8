package booking

import (
	"context"

	"github.com/stretchr/testify/mock"

	"teesheet/internal/email"
	"teesheet/internal/teesheet"
)

type MockRepository struct {
	mock.Mock
}

func bookingOrNil(args mock.Arguments) (*Booking, error) {
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*Booking), args.Error(1)
}

func withUserOrNil(args mock.Arguments) (*BookingWithUser, error) {
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*BookingWithUser), args.Error(1)
}

func bookingsOrNil(args mock.Arguments) ([]Booking, error) {
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]Booking), args.Error(1)
}

func withUsersOrNil(args mock.Arguments) ([]BookingWithUser, error) {
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]BookingWithUser), args.Error(1)
}

func (m *MockRepository) CreateWithinCapacity(ctx context.Context, b *Booking, maxPlayers int) (*Booking, error) {
	return bookingOrNil(m.Called(ctx, b, maxPlayers))
}

func (m *MockRepository) ReinstateWithinCapacity(ctx context.Context, b *Booking, status string, maxPlayers int) (*Booking, error) {
	return bookingOrNil(m.Called(ctx, b, status, maxPlayers))
}

func (m *MockRepository) GetByID(ctx context.Context, id int) (*Booking, error) {
	return bookingOrNil(m.Called(ctx, id))
}

func (m *MockRepository) GetWithUser(ctx context.Context, id int) (*BookingWithUser, error) {
	return withUserOrNil(m.Called(ctx, id))
}

func (m *MockRepository) UpdateStatus(ctx context.Context, id int, status string) (*Booking, error) {
	return bookingOrNil(m.Called(ctx, id, status))
}

func (m *MockRepository) ListByUser(ctx context.Context, userID int) ([]Booking, error) {
	return bookingsOrNil(m.Called(ctx, userID))
}

func (m *MockRepository) ListOccupying(ctx context.Context, date, course string) ([]Booking, error) {
	return bookingsOrNil(m.Called(ctx, date, course))
}

func (m *MockRepository) ListDay(ctx context.Context, date, course string) ([]BookingWithUser, error) {
	return withUsersOrNil(m.Called(ctx, date, course))
}

func (m *MockRepository) List(ctx context.Context, f Filter) ([]BookingWithUser, error) {
	return withUsersOrNil(m.Called(ctx, f))
}

func (m *MockRepository) Stats(ctx context.Context) (*Stats, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*Stats), args.Error(1)
}

type MockNotifier struct {
	mock.Mock
}

func (m *MockNotifier) SendBookingConfirmation(ctx context.Context, to, name string, d email.BookingDetails) error {
	return m.Called(ctx, to, name, d).Error(0)
}

func (m *MockNotifier) SendCancellation(ctx context.Context, to, name string, d email.BookingDetails) error {
	return m.Called(ctx, to, name, d).Error(0)
}

type MockService struct {
	mock.Mock
}

func (m *MockService) Create(ctx context.Context, userID int, req CreateBookingRequest) (*Booking, error) {
	return bookingOrNil(m.Called(ctx, userID, req))
}

func (m *MockService) Mine(ctx context.Context, userID int) ([]Booking, error) {
	return bookingsOrNil(m.Called(ctx, userID))
}

func (m *MockService) Day(ctx context.Context, date, course string) ([]BookingWithUser, error) {
	return withUsersOrNil(m.Called(ctx, date, course))
}

func (m *MockService) Cancel(ctx context.Context, userID, bookingID int) (*Booking, error) {
	return bookingOrNil(m.Called(ctx, userID, bookingID))
}

func (m *MockService) TeeSheet(ctx context.Context, date, course string) (*teesheet.TeeSheet, error) {
	args := m.Called(ctx, date, course)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*teesheet.TeeSheet), args.Error(1)
}

func (m *MockService) Courses() []teesheet.CourseConfig {
	return m.Called().Get(0).([]teesheet.CourseConfig)
}

func (m *MockService) List(ctx context.Context, f Filter) ([]BookingWithUser, error) {
	return withUsersOrNil(m.Called(ctx, f))
}

func (m *MockService) UpdateStatus(ctx context.Context, bookingID int, status string) (*BookingWithUser, error) {
	return withUserOrNil(m.Called(ctx, bookingID, status))
}

func (m *MockService) Stats(ctx context.Context) (*Stats, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*Stats), args.Error(1)
}
