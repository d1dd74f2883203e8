// Package admin serves the club-staff endpoints: user management and the
// dashboard statistics.
package admin

import (
	"context"

	"golang.org/x/sync/errgroup"

	"teesheet/internal/booking"
)

type Stats struct {
	TotalUsers int `json:"totalUsers"`
	booking.Stats
}

type UserCounter interface {
	Count(ctx context.Context) (int, error)
}

type BookingStats interface {
	Stats(ctx context.Context) (*booking.Stats, error)
}

type Service interface {
	Stats(ctx context.Context) (*Stats, error)
}

type service struct {
	users    UserCounter
	bookings BookingStats
}

func NewService(users UserCounter, bookings BookingStats) Service {
	return &service{users: users, bookings: bookings}
}

func (s *service) Stats(ctx context.Context) (*Stats, error) {
	var (
		totalUsers   int
		bookingStats *booking.Stats
	)

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		n, err := s.users.Count(ctx)
		totalUsers = n
		return err
	})
	g.Go(func() error {
		st, err := s.bookings.Stats(ctx)
		bookingStats = st
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	return &Stats{TotalUsers: totalUsers, Stats: *bookingStats}, nil
}
