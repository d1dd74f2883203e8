package integration_test

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"teesheet/internal/booking"
	"teesheet/internal/course"
	"teesheet/internal/teesheet"
)

func TestBookingRepository_ConcurrentCapacity(t *testing.T) {
	database := setupTestDB(t)
	repo := booking.NewRepository(database)

	const golfers = 8
	userIDs := make([]int, golfers)
	for i := range userIDs {
		userIDs[i] = createTestUser(t, database, fmt.Sprintf("golfer%d@example.com", i), fmt.Sprintf("Golfer %d", i), "user")
	}

	var (
		wg      sync.WaitGroup
		mu      sync.Mutex
		created int
		full    int
	)
	for _, id := range userIDs {
		wg.Add(1)
		go func(userID int) {
			defer wg.Done()
			_, err := repo.CreateWithinCapacity(context.Background(), &booking.Booking{
				UserID:         userID,
				Course:         "Kings Course",
				TeeDate:        "2026-05-01",
				TeeTime:        "08:00",
				Players:        1,
				PricePerPlayer: 40,
				Status:         booking.StatusPending,
			}, 4)

			mu.Lock()
			defer mu.Unlock()
			switch {
			case err == nil:
				created++
			case errors.Is(err, booking.ErrSlotFull):
				full++
			default:
				t.Errorf("unexpected error: %v", err)
			}
		}(id)
	}
	wg.Wait()

	assert.Equal(t, 4, created)
	assert.Equal(t, golfers-4, full)

	occupying, err := repo.ListOccupying(context.Background(), "2026-05-01", "Kings Course")
	require.NoError(t, err)
	assert.Len(t, occupying, 4)
}

func TestBookingService_SheetLifecycle(t *testing.T) {
	database := setupTestDB(t)
	ctx := context.Background()

	catalog, err := course.NewCatalog()
	require.NoError(t, err)
	svc := booking.NewService(booking.NewRepository(database), catalog, nil, nil)

	ann := createTestUser(t, database, "ann@example.com", "Ann", "user")
	bo := createTestUser(t, database, "bo@example.com", "Bo", "user")

	first, err := svc.Create(ctx, ann, booking.CreateBookingRequest{TeeDate: "2026-05-01", TeeTime: "08:10", Players: 3})
	require.NoError(t, err)
	assert.Equal(t, 40.0, first.PricePerPlayer)

	_, err = svc.Create(ctx, ann, booking.CreateBookingRequest{TeeDate: "2026-05-01", TeeTime: "08:10"})
	assert.ErrorIs(t, err, booking.ErrDuplicate)

	_, err = svc.Create(ctx, bo, booking.CreateBookingRequest{TeeDate: "2026-05-01", TeeTime: "08:10", Players: 2})
	assert.ErrorIs(t, err, booking.ErrSlotFull)

	_, err = svc.Create(ctx, bo, booking.CreateBookingRequest{TeeDate: "2026-05-01", TeeTime: "08:10", Players: 1})
	require.NoError(t, err)

	sheet, err := svc.TeeSheet(ctx, "2026-05-01", "")
	require.NoError(t, err)
	slot, ok := sheet.Slot("08:10")
	require.True(t, ok)
	assert.Equal(t, 4, slot.CurrentPlayers)
	assert.Equal(t, teesheet.SlotFull, slot.Status)

	_, err = svc.Cancel(ctx, bo, first.ID)
	assert.ErrorIs(t, err, booking.ErrNotOwner)

	_, err = svc.Cancel(ctx, ann, first.ID)
	require.NoError(t, err)

	sheet, err = svc.TeeSheet(ctx, "2026-05-01", "Kings Course")
	require.NoError(t, err)
	slot, _ = sheet.Slot("08:10")
	assert.Equal(t, 1, slot.CurrentPlayers)
	assert.Equal(t, 3, slot.AvailableSpots)

	day, err := svc.Day(ctx, "2026-05-01", "")
	require.NoError(t, err)
	require.Len(t, day, 1)
	assert.Equal(t, "Bo", day[0].UserName)

	stats, err := svc.Stats(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, stats.TotalBookings)
	assert.Equal(t, 1, stats.CancelledBookings)
	assert.Equal(t, []booking.DateCount{{Date: "2026-05-01", Count: 2}}, stats.BookingsByDate)

	cy := createTestUser(t, database, "cy@example.com", "Cy", "user")
	_, err = svc.Create(ctx, cy, booking.CreateBookingRequest{TeeDate: "2026-05-01", TeeTime: "08:10", Players: 3})
	require.NoError(t, err)

	_, err = svc.UpdateStatus(ctx, first.ID, booking.StatusApproved)
	assert.ErrorIs(t, err, booking.ErrSlotFull)

	sheet, err = svc.TeeSheet(ctx, "2026-05-01", "Kings Course")
	require.NoError(t, err)
	slot, _ = sheet.Slot("08:10")
	assert.Equal(t, 4, slot.CurrentPlayers)
}
