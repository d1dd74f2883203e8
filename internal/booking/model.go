package booking

import (
	"time"

	"teesheet/internal/email"
	"teesheet/internal/teesheet"
)

const (
	StatusPending   = "pending"
	StatusApproved  = "approved"
	StatusCancelled = teesheet.StatusCancelled
)

func ValidStatus(status string) bool {
	switch status {
	case StatusPending, StatusApproved, StatusCancelled:
		return true
	}
	return false
}

type Booking struct {
	ID             int       `db:"id" json:"id"`
	UserID         int       `db:"user_id" json:"userId"`
	Course         string    `db:"course" json:"course"`
	TeeDate        string    `db:"tee_date" json:"teeDate"`
	TeeTime        string    `db:"tee_time" json:"teeTime"`
	Players        int       `db:"players" json:"players"`
	PricePerPlayer float64   `db:"price_per_player" json:"pricePerPlayer"`
	Status         string    `db:"status" json:"status"`
	Notes          string    `db:"notes" json:"notes"`
	CreatedAt      time.Time `db:"created_at" json:"createdAt"`
	UpdatedAt      time.Time `db:"updated_at" json:"updatedAt"`
}

func (b *Booking) Reservation() teesheet.Reservation {
	return teesheet.Reservation{
		ID:      b.ID,
		UserID:  b.UserID,
		Course:  b.Course,
		TeeDate: b.TeeDate,
		TeeTime: b.TeeTime,
		Players: b.Players,
		Status:  b.Status,
		Notes:   b.Notes,
	}
}

func (b *Booking) Details() email.BookingDetails {
	return email.BookingDetails{
		Course:  b.Course,
		TeeDate: b.TeeDate,
		TeeTime: b.TeeTime,
		Players: b.Players,
		Price:   b.PricePerPlayer,
	}
}

type BookingWithUser struct {
	Booking
	UserName  string `db:"user_name" json:"userName"`
	UserEmail string `db:"user_email" json:"userEmail"`
}

// Filter narrows admin booking listings; empty fields match everything.
type Filter struct {
	Date   string
	Status string
}

type DateCount struct {
	Date  string `db:"date" json:"date"`
	Count int    `db:"count" json:"count"`
}

type Stats struct {
	TotalBookings     int         `db:"total" json:"totalBookings"`
	PendingBookings   int         `db:"pending" json:"pendingBookings"`
	ApprovedBookings  int         `db:"approved" json:"approvedBookings"`
	CancelledBookings int         `db:"cancelled" json:"cancelledBookings"`
	BookingsByDate    []DateCount `db:"-" json:"bookingsByDate"`
}

type CreateBookingRequest struct {
	Course  string `json:"course"`
	TeeDate string `json:"teeDate" binding:"required"`
	TeeTime string `json:"teeTime" binding:"required"`
	Players int    `json:"players" binding:"omitempty,min=1"`
	Notes   string `json:"notes" binding:"max=500"`
}

type BookingResponse struct {
	Msg     string   `json:"msg"`
	Booking *Booking `json:"booking"`
}

type BookingsResponse struct {
	Bookings []Booking `json:"bookings"`
}

type DayBookingsResponse struct {
	Bookings []BookingWithUser `json:"bookings"`
}

type CoursesResponse struct {
	Courses []teesheet.CourseConfig `json:"courses"`
}
