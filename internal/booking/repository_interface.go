package booking

import "context"

type Repository interface {
	// CreateWithinCapacity inserts b unless the user already holds the same
	// tee time or the group would exceed maxPlayers.
	CreateWithinCapacity(ctx context.Context, b *Booking, maxPlayers int) (*Booking, error)
	// ReinstateWithinCapacity moves the cancelled booking b back to status
	// under the same checks, ignoring b's own row.
	ReinstateWithinCapacity(ctx context.Context, b *Booking, status string, maxPlayers int) (*Booking, error)
	GetByID(ctx context.Context, id int) (*Booking, error)
	GetWithUser(ctx context.Context, id int) (*BookingWithUser, error)
	UpdateStatus(ctx context.Context, id int, status string) (*Booking, error)
	ListByUser(ctx context.Context, userID int) ([]Booking, error)
	ListOccupying(ctx context.Context, date, course string) ([]Booking, error)
	ListDay(ctx context.Context, date, course string) ([]BookingWithUser, error)
	List(ctx context.Context, f Filter) ([]BookingWithUser, error)
	Stats(ctx context.Context) (*Stats, error)
}
