package booking

import (
	"context"
	"errors"
	"strings"

	"teesheet/internal/course"
	"teesheet/internal/email"
	"teesheet/internal/logger"
	"teesheet/internal/metrics"
	"teesheet/internal/teesheet"
)

var (
	ErrMissingFields  = errors.New("teeDate and teeTime are required")
	ErrInvalidPlayers = errors.New("players outside group size")
	ErrOffGrid        = errors.New("tee time is not on the course's tee sheet")
	ErrNotOwner       = errors.New("booking belongs to another user")
	ErrInvalidStatus  = errors.New("invalid booking status")
)

// Notifier delivers booking emails. email.Service satisfies it.
type Notifier interface {
	SendBookingConfirmation(ctx context.Context, to, name string, d email.BookingDetails) error
	SendCancellation(ctx context.Context, to, name string, d email.BookingDetails) error
}

type Service interface {
	Create(ctx context.Context, userID int, req CreateBookingRequest) (*Booking, error)
	Mine(ctx context.Context, userID int) ([]Booking, error)
	Day(ctx context.Context, date, course string) ([]BookingWithUser, error)
	Cancel(ctx context.Context, userID, bookingID int) (*Booking, error)
	TeeSheet(ctx context.Context, date, course string) (*teesheet.TeeSheet, error)
	Courses() []teesheet.CourseConfig

	List(ctx context.Context, f Filter) ([]BookingWithUser, error)
	UpdateStatus(ctx context.Context, bookingID int, status string) (*BookingWithUser, error)
	Stats(ctx context.Context) (*Stats, error)
}

type service struct {
	repo       Repository
	catalog    *course.Catalog
	calculator *teesheet.Calculator
	notifier   Notifier
}

// NewService wires the booking workflow. A nil notifier disables emails.
func NewService(repo Repository, catalog *course.Catalog, calculator *teesheet.Calculator, notifier Notifier) Service {
	if calculator == nil {
		calculator = teesheet.NewCalculator(nil)
	}
	return &service{
		repo:       repo,
		catalog:    catalog,
		calculator: calculator,
		notifier:   notifier,
	}
}

func (s *service) courseConfig(name string) teesheet.CourseConfig {
	name = strings.TrimSpace(name)
	if name == "" {
		return s.catalog.Default()
	}
	return s.catalog.Lookup(name)
}

func (s *service) Create(ctx context.Context, userID int, req CreateBookingRequest) (*Booking, error) {
	teeDate := strings.TrimSpace(req.TeeDate)
	teeTime := strings.TrimSpace(req.TeeTime)
	if teeDate == "" || teeTime == "" {
		return nil, ErrMissingFields
	}
	if _, err := teesheet.ParseDate(teeDate); err != nil {
		return nil, err
	}

	cfg := s.courseConfig(req.Course)
	if !s.catalog.Known(cfg.CourseName) {
		// Booked on the default course's grid under the requested name.
		logger.Warn("booking for unconfigured course", "course", cfg.CourseName, "user_id", userID)
		metrics.RecordUnconfiguredCourse()
	}

	players := req.Players
	if players == 0 {
		players = 1
	}
	if players < 1 || players > cfg.MaxPlayersPerGroup {
		return nil, ErrInvalidPlayers
	}

	onGrid, err := cfg.OnGrid(teeTime)
	if err != nil {
		return nil, err
	}
	if !onGrid {
		return nil, ErrOffGrid
	}

	sheet, err := s.TeeSheet(ctx, teeDate, cfg.CourseName)
	if err != nil {
		return nil, err
	}
	slot, _ := sheet.Slot(teeTime)
	if slot.AvailableSpots < players {
		metrics.RecordBooking("full")
		return nil, ErrSlotFull
	}

	created, err := s.repo.CreateWithinCapacity(ctx, &Booking{
		UserID:         userID,
		Course:         cfg.CourseName,
		TeeDate:        teeDate,
		TeeTime:        teeTime,
		Players:        players,
		PricePerPlayer: slot.MinPrice,
		Status:         StatusPending,
		Notes:          strings.TrimSpace(req.Notes),
	}, cfg.MaxPlayersPerGroup)
	if err != nil {
		switch {
		case errors.Is(err, ErrSlotFull):
			metrics.RecordBooking("full")
		case errors.Is(err, ErrDuplicate):
			metrics.RecordBooking("duplicate")
		}
		return nil, err
	}

	metrics.RecordBooking("created")
	logger.Info("booking created",
		"booking_id", created.ID,
		"user_id", userID,
		"course", created.Course,
		"tee_date", created.TeeDate,
		"tee_time", created.TeeTime,
		"players", created.Players,
	)

	s.notify(ctx, created.ID, func(to, name string) error {
		return s.notifier.SendBookingConfirmation(ctx, to, name, created.Details())
	})
	return created, nil
}

// notify looks up the booking's owner and runs send. Failures are logged
// only; the booking itself has already been committed.
func (s *service) notify(ctx context.Context, bookingID int, send func(to, name string) error) {
	if s.notifier == nil {
		return
	}
	b, err := s.repo.GetWithUser(ctx, bookingID)
	if err != nil {
		logger.Warn("booking email skipped", "booking_id", bookingID, "error", err)
		return
	}
	if err := send(b.UserEmail, b.UserName); err != nil {
		logger.Warn("booking email failed", "booking_id", bookingID, "error", err)
	}
}

func (s *service) Mine(ctx context.Context, userID int) ([]Booking, error) {
	return s.repo.ListByUser(ctx, userID)
}

func (s *service) Day(ctx context.Context, date, courseName string) ([]BookingWithUser, error) {
	if _, err := teesheet.ParseDate(date); err != nil {
		return nil, err
	}
	return s.repo.ListDay(ctx, date, strings.TrimSpace(courseName))
}

func (s *service) Cancel(ctx context.Context, userID, bookingID int) (*Booking, error) {
	b, err := s.repo.GetByID(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	if b.UserID != userID {
		return nil, ErrNotOwner
	}
	if b.Status == StatusCancelled {
		return b, nil
	}

	cancelled, err := s.repo.UpdateStatus(ctx, bookingID, StatusCancelled)
	if err != nil {
		return nil, err
	}

	metrics.RecordBookingCancellation()
	logger.Info("booking cancelled", "booking_id", bookingID, "user_id", userID)

	s.notify(ctx, bookingID, func(to, name string) error {
		return s.notifier.SendCancellation(ctx, to, name, cancelled.Details())
	})
	return cancelled, nil
}

func (s *service) TeeSheet(ctx context.Context, date, courseName string) (*teesheet.TeeSheet, error) {
	if _, err := teesheet.ParseDate(date); err != nil {
		return nil, err
	}
	cfg := s.courseConfig(courseName)

	bookings, err := s.repo.ListOccupying(ctx, date, cfg.CourseName)
	if err != nil {
		return nil, err
	}

	reservations := make([]teesheet.Reservation, len(bookings))
	for i := range bookings {
		reservations[i] = bookings[i].Reservation()
	}

	sheet, err := s.calculator.Compute(date, cfg, reservations)
	if err != nil {
		return nil, err
	}

	for _, r := range sheet.Unmatched {
		logger.Warn("reservation off tee sheet grid",
			"booking_id", r.ID,
			"course", r.Course,
			"tee_date", r.TeeDate,
			"tee_time", r.TeeTime,
		)
	}
	metrics.RecordSheet(sheet.Course, fillRatios(sheet), len(sheet.Unmatched))

	return sheet, nil
}

func fillRatios(sheet *teesheet.TeeSheet) []float64 {
	fill := make([]float64, 0, len(sheet.Slots))
	for _, slot := range sheet.Slots {
		if slot.MaxPlayers <= 0 {
			continue
		}
		fill = append(fill, min(float64(slot.CurrentPlayers)/float64(slot.MaxPlayers), 1))
	}
	return fill
}

func (s *service) Courses() []teesheet.CourseConfig {
	return s.catalog.List()
}

func (s *service) List(ctx context.Context, f Filter) ([]BookingWithUser, error) {
	if f.Status != "" && !ValidStatus(f.Status) {
		return nil, ErrInvalidStatus
	}
	if f.Date != "" {
		if _, err := teesheet.ParseDate(f.Date); err != nil {
			return nil, err
		}
	}
	return s.repo.List(ctx, f)
}

func (s *service) UpdateStatus(ctx context.Context, bookingID int, status string) (*BookingWithUser, error) {
	if !ValidStatus(status) {
		return nil, ErrInvalidStatus
	}

	previous, err := s.repo.GetByID(ctx, bookingID)
	if err != nil {
		return nil, err
	}

	var updated *Booking
	if previous.Status == StatusCancelled && status != StatusCancelled {
		cfg := s.courseConfig(previous.Course)
		updated, err = s.repo.ReinstateWithinCapacity(ctx, previous, status, cfg.MaxPlayersPerGroup)
		if err != nil {
			switch {
			case errors.Is(err, ErrSlotFull):
				metrics.RecordBooking("full")
			case errors.Is(err, ErrDuplicate):
				metrics.RecordBooking("duplicate")
			}
			return nil, err
		}
	} else {
		updated, err = s.repo.UpdateStatus(ctx, bookingID, status)
		if err != nil {
			return nil, err
		}
	}
	logger.Info("booking status updated", "booking_id", bookingID, "from", previous.Status, "to", status)

	b, err := s.repo.GetWithUser(ctx, bookingID)
	if err != nil {
		return nil, err
	}

	if status == StatusCancelled && previous.Status != StatusCancelled {
		metrics.RecordBookingCancellation()
		if s.notifier != nil {
			if err := s.notifier.SendCancellation(ctx, b.UserEmail, b.UserName, updated.Details()); err != nil {
				logger.Warn("booking email failed", "booking_id", bookingID, "error", err)
			}
		}
	}
	return b, nil
}

func (s *service) Stats(ctx context.Context) (*Stats, error) {
	return s.repo.Stats(ctx)
}
