package booking

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/jmoiron/sqlx"
)

var (
	ErrBookingNotFound = errors.New("booking not found")
	ErrSlotFull        = errors.New("tee time has no room for that many players")
	ErrDuplicate       = errors.New("user already holds this tee time")
)

const bookingColumns = "id, user_id, course, tee_date, tee_time, players, price_per_player, status, notes, created_at, updated_at"

var withUserColumns = []string{
	"b.id", "b.user_id", "b.course", "b.tee_date", "b.tee_time", "b.players",
	"b.price_per_player", "b.status", "b.notes", "b.created_at", "b.updated_at",
	"u.name AS user_name", "u.email AS user_email",
}

type repository struct {
	db   *sqlx.DB
	psql sq.StatementBuilderType
}

func NewRepository(db *sqlx.DB) Repository {
	return &repository{
		db:   db,
		psql: sq.StatementBuilder.PlaceholderFormat(sq.Dollar),
	}
}

// slotLockKey identifies one tee time for pg_advisory_xact_lock.
func slotLockKey(course, date, teeTime string) string {
	return course + "|" + date + "|" + teeTime
}

// holdCapacity takes the tee time's advisory lock for the rest of tx and
// checks that b fits. Rows with id excludeID are left out of both checks.
func holdCapacity(ctx context.Context, tx *sqlx.Tx, b *Booking, excludeID, maxPlayers int) error {
	// Serialises concurrent bookings for the same tee time until commit.
	if _, err := tx.ExecContext(ctx, `SELECT pg_advisory_xact_lock(hashtext($1))`,
		slotLockKey(b.Course, b.TeeDate, b.TeeTime)); err != nil {
		return fmt.Errorf("lock tee time: %w", err)
	}

	var duplicate bool
	err := tx.GetContext(ctx, &duplicate, `
		SELECT EXISTS(
			SELECT 1 FROM bookings
			WHERE user_id = $1 AND course = $2 AND tee_date = $3 AND tee_time = $4 AND status <> 'cancelled' AND id <> $5
		)`, b.UserID, b.Course, b.TeeDate, b.TeeTime, excludeID)
	if err != nil {
		return err
	}
	if duplicate {
		return ErrDuplicate
	}

	var taken int
	err = tx.GetContext(ctx, &taken, `
		SELECT COALESCE(SUM(players), 0) FROM bookings
		WHERE course = $1 AND tee_date = $2 AND tee_time = $3 AND status <> 'cancelled' AND id <> $4`,
		b.Course, b.TeeDate, b.TeeTime, excludeID)
	if err != nil {
		return err
	}
	if taken+b.Players > maxPlayers {
		return ErrSlotFull
	}
	return nil
}

func (r *repository) CreateWithinCapacity(ctx context.Context, b *Booking, maxPlayers int) (*Booking, error) {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	if err := holdCapacity(ctx, tx, b, 0, maxPlayers); err != nil {
		return nil, err
	}

	query := `
		INSERT INTO bookings (user_id, course, tee_date, tee_time, players, price_per_player, status, notes)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING ` + bookingColumns

	var created Booking
	err = tx.GetContext(ctx, &created, query,
		b.UserID, b.Course, b.TeeDate, b.TeeTime, b.Players, b.PricePerPlayer, b.Status, b.Notes)
	if err != nil {
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, err
	}
	return &created, nil
}

func (r *repository) ReinstateWithinCapacity(ctx context.Context, b *Booking, status string, maxPlayers int) (*Booking, error) {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	if err := holdCapacity(ctx, tx, b, b.ID, maxPlayers); err != nil {
		return nil, err
	}

	query := `
		UPDATE bookings
		SET status = $1, updated_at = NOW()
		WHERE id = $2
		RETURNING ` + bookingColumns

	var updated Booking
	if err := tx.GetContext(ctx, &updated, query, status, b.ID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrBookingNotFound
		}
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, err
	}
	return &updated, nil
}

func (r *repository) GetByID(ctx context.Context, id int) (*Booking, error) {
	var b Booking
	err := r.db.GetContext(ctx, &b, `SELECT `+bookingColumns+` FROM bookings WHERE id = $1`, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrBookingNotFound
		}
		return nil, err
	}
	return &b, nil
}

func (r *repository) withUser() sq.SelectBuilder {
	return r.psql.Select(withUserColumns...).
		From("bookings b").
		Join("users u ON u.id = b.user_id")
}

func (r *repository) GetWithUser(ctx context.Context, id int) (*BookingWithUser, error) {
	query, args, err := r.withUser().Where(sq.Eq{"b.id": id}).ToSql()
	if err != nil {
		return nil, err
	}

	var b BookingWithUser
	if err := r.db.GetContext(ctx, &b, query, args...); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrBookingNotFound
		}
		return nil, err
	}
	return &b, nil
}

func (r *repository) UpdateStatus(ctx context.Context, id int, status string) (*Booking, error) {
	query := `
		UPDATE bookings
		SET status = $1, updated_at = NOW()
		WHERE id = $2
		RETURNING ` + bookingColumns

	var b Booking
	if err := r.db.GetContext(ctx, &b, query, status, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrBookingNotFound
		}
		return nil, err
	}
	return &b, nil
}

func (r *repository) ListByUser(ctx context.Context, userID int) ([]Booking, error) {
	query := `
		SELECT ` + bookingColumns + `
		FROM bookings
		WHERE user_id = $1
		ORDER BY tee_date, tee_time`

	bookings := []Booking{}
	if err := r.db.SelectContext(ctx, &bookings, query, userID); err != nil {
		return nil, err
	}
	return bookings, nil
}

func (r *repository) ListOccupying(ctx context.Context, date, course string) ([]Booking, error) {
	query := `
		SELECT ` + bookingColumns + `
		FROM bookings
		WHERE tee_date = $1 AND course = $2 AND status <> 'cancelled'
		ORDER BY tee_time, id`

	bookings := []Booking{}
	if err := r.db.SelectContext(ctx, &bookings, query, date, course); err != nil {
		return nil, err
	}
	return bookings, nil
}

func (r *repository) selectWithUser(ctx context.Context, q sq.SelectBuilder) ([]BookingWithUser, error) {
	query, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build booking query: %w", err)
	}

	bookings := []BookingWithUser{}
	if err := r.db.SelectContext(ctx, &bookings, query, args...); err != nil {
		return nil, err
	}
	return bookings, nil
}

func (r *repository) ListDay(ctx context.Context, date, course string) ([]BookingWithUser, error) {
	q := r.withUser().
		Where(sq.Eq{"b.tee_date": date}).
		Where(sq.NotEq{"b.status": StatusCancelled})
	if course != "" {
		q = q.Where(sq.Eq{"b.course": course})
	}
	return r.selectWithUser(ctx, q.OrderBy("b.tee_time", "b.id"))
}

func (r *repository) List(ctx context.Context, f Filter) ([]BookingWithUser, error) {
	q := r.withUser()
	if f.Date != "" {
		q = q.Where(sq.Eq{"b.tee_date": f.Date})
	}
	if f.Status != "" {
		q = q.Where(sq.Eq{"b.status": f.Status})
	}
	return r.selectWithUser(ctx, q.OrderBy("b.tee_date", "b.tee_time"))
}

func (r *repository) Stats(ctx context.Context) (*Stats, error) {
	query := `
		SELECT
			COUNT(*) AS total,
			COUNT(*) FILTER (WHERE status = 'pending') AS pending,
			COUNT(*) FILTER (WHERE status = 'approved') AS approved,
			COUNT(*) FILTER (WHERE status = 'cancelled') AS cancelled
		FROM bookings`

	var stats Stats
	if err := r.db.GetContext(ctx, &stats, query); err != nil {
		return nil, err
	}

	stats.BookingsByDate = []DateCount{}
	err := r.db.SelectContext(ctx, &stats.BookingsByDate, `
		SELECT tee_date AS date, COUNT(*) AS count
		FROM bookings
		GROUP BY tee_date
		ORDER BY tee_date`)
	if err != nil {
		return nil, err
	}
	return &stats, nil
}
