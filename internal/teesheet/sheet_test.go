package teesheet

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testDate = "2026-05-01"

func shortCourse() CourseConfig {
	return CourseConfig{
		CourseName:         "Kings Course",
		StartTime:          "08:00",
		EndTime:            "08:30",
		IntervalMinutes:    10,
		MaxPlayersPerGroup: 4,
		Holes:              18,
		BasePrice:          40,
		MaxPrice:           70,
	}
}

func reservation(teeTime string, players int, status string) Reservation {
	return Reservation{
		Course:  "Kings Course",
		TeeDate: testDate,
		TeeTime: teeTime,
		Players: players,
		Status:  status,
	}
}

func TestGenerateTimeSlots(t *testing.T) {
	slots, err := GenerateTimeSlots("08:00", "08:30", 10)
	require.NoError(t, err)
	assert.Equal(t, []string{"08:00", "08:10", "08:20", "08:30"}, slots)
}

func TestGenerateTimeSlots_StartAfterEnd(t *testing.T) {
	slots, err := GenerateTimeSlots("09:00", "08:00", 10)
	require.NoError(t, err)
	assert.Empty(t, slots)
}

func TestGenerateTimeSlots_UnevenInterval(t *testing.T) {
	slots, err := GenerateTimeSlots("08:00", "08:25", 10)
	require.NoError(t, err)
	assert.Equal(t, []string{"08:00", "08:10", "08:20"}, slots)
}

func TestGenerateTimeSlots_SingleSlot(t *testing.T) {
	slots, err := GenerateTimeSlots("23:59", "23:59", 30)
	require.NoError(t, err)
	assert.Equal(t, []string{"23:59"}, slots)
}

func TestGenerateTimeSlots_LateEndStopsBeforeMidnight(t *testing.T) {
	slots, err := GenerateTimeSlots("23:00", "23:59", 45)
	require.NoError(t, err)
	assert.Equal(t, []string{"23:00", "23:45"}, slots)
}

func TestGenerateTimeSlots_InvalidInput(t *testing.T) {
	tests := []struct {
		name     string
		start    string
		end      string
		interval int
	}{
		{"bad start", "8am", "18:00", 10},
		{"bad end", "08:00", "25:00", 10},
		{"zero interval", "08:00", "18:00", 0},
		{"negative interval", "08:00", "18:00", -5},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := GenerateTimeSlots(tt.start, tt.end, tt.interval)
			assert.ErrorIs(t, err, ErrInvalidConfiguration)
		})
	}
}

func TestGrid_LengthAndSpacing(t *testing.T) {
	for start := Clock(0); start < minutesPerDay; start += 97 {
		for _, span := range []int{0, 1, 9, 10, 59, 600} {
			end := start + Clock(span)
			if !end.Valid() {
				continue
			}
			for _, interval := range []int{1, 7, 10, 15, 60} {
				grid := Grid(start, end, interval)
				require.Len(t, grid, span/interval+1)
				for k, c := range grid {
					assert.Equal(t, start+Clock(k*interval), c)
					if k > 0 {
						assert.Greater(t, int(c), int(grid[k-1]))
					}
				}
			}
		}
	}
}

func TestComputeTeeSheet_PartialSlot(t *testing.T) {
	sheet, err := ComputeTeeSheet(testDate, shortCourse(), []Reservation{
		reservation("08:10", 3, "pending"),
	})
	require.NoError(t, err)
	require.Len(t, sheet.Slots, 4)
	assert.Equal(t, "Kings Course", sheet.Course)
	assert.Equal(t, testDate, sheet.Date)

	for _, slot := range sheet.Slots {
		assert.Equal(t, 4, slot.MaxPlayers)
		assert.Equal(t, 18, slot.Holes)
		assert.Equal(t, 40.0, slot.MinPrice)
		assert.Equal(t, 70.0, slot.MaxPrice)
		assert.Equal(t, SlotAvailable, slot.Status)
		if slot.TeeTime == "08:10" {
			assert.Equal(t, 3, slot.CurrentPlayers)
			assert.Equal(t, 1, slot.AvailableSpots)
			assert.Len(t, slot.Bookings, 1)
			continue
		}
		assert.Equal(t, 0, slot.CurrentPlayers)
		assert.Equal(t, 4, slot.AvailableSpots)
		assert.NotNil(t, slot.Bookings)
		assert.Empty(t, slot.Bookings)
	}
}

func TestComputeTeeSheet_CancelledExcluded(t *testing.T) {
	sheet, err := ComputeTeeSheet(testDate, shortCourse(), []Reservation{
		reservation("08:10", 4, "approved"),
		reservation("08:10", 1, StatusCancelled),
	})
	require.NoError(t, err)

	slot, ok := sheet.Slot("08:10")
	require.True(t, ok)
	assert.Equal(t, 4, slot.CurrentPlayers)
	assert.Equal(t, 0, slot.AvailableSpots)
	assert.Equal(t, SlotFull, slot.Status)
	assert.Len(t, slot.Bookings, 1)
}

func TestComputeTeeSheet_OverbookedNeverNegative(t *testing.T) {
	sheet, err := ComputeTeeSheet(testDate, shortCourse(), []Reservation{
		reservation("08:20", 3, "approved"),
		reservation("08:20", 3, "pending"),
	})
	require.NoError(t, err)

	slot, ok := sheet.Slot("08:20")
	require.True(t, ok)
	assert.Equal(t, 6, slot.CurrentPlayers)
	assert.Equal(t, 0, slot.AvailableSpots)
	assert.Equal(t, SlotFull, slot.Status)
}

func TestComputeTeeSheet_OtherDayAndCourseIgnored(t *testing.T) {
	other := reservation("08:00", 2, "approved")
	other.TeeDate = "2026-05-02"
	elsewhere := reservation("08:00", 2, "approved")
	elsewhere.Course = "Queens Course"

	sheet, err := ComputeTeeSheet(testDate, shortCourse(), []Reservation{other, elsewhere})
	require.NoError(t, err)

	slot, _ := sheet.Slot("08:00")
	assert.Equal(t, 0, slot.CurrentPlayers)
	assert.Empty(t, sheet.Unmatched)
}

func TestComputeTeeSheet_OffGridReservationIsUnmatched(t *testing.T) {
	sheet, err := ComputeTeeSheet(testDate, shortCourse(), []Reservation{
		reservation("08:05", 2, "approved"),
		reservation("8:10", 2, "approved"),
		reservation("08:10", 1, "approved"),
	})
	require.NoError(t, err)

	total := 0
	for _, slot := range sheet.Slots {
		total += slot.CurrentPlayers
	}
	assert.Equal(t, 1, total)
	assert.Len(t, sheet.Unmatched, 2)
}

func TestComputeTeeSheet_PlayerConservation(t *testing.T) {
	cfg := shortCourse()
	cfg.EndTime = "10:00"
	reservations := []Reservation{
		reservation("08:00", 1, "pending"),
		reservation("08:00", 2, "approved"),
		reservation("09:30", 4, "approved"),
		reservation("10:00", 3, "pending"),
		reservation("10:10", 2, "pending"),
		reservation("09:35", 1, "approved"),
		reservation("09:40", 4, StatusCancelled),
	}

	sheet, err := ComputeTeeSheet(testDate, cfg, reservations)
	require.NoError(t, err)

	onGrid := map[string]bool{}
	for _, slot := range sheet.Slots {
		onGrid[slot.TeeTime] = true
	}
	want := 0
	for _, r := range reservations {
		if r.Status != StatusCancelled && onGrid[r.TeeTime] {
			want += r.Players
		}
	}

	got := 0
	for _, slot := range sheet.Slots {
		got += slot.CurrentPlayers
		assert.GreaterOrEqual(t, slot.AvailableSpots, 0)
		assert.Equal(t, slot.AvailableSpots == 0, slot.Status == SlotFull)
	}
	assert.Equal(t, want, got)
	assert.Equal(t, 10, got)
}

func TestComputeTeeSheet_Idempotent(t *testing.T) {
	reservations := []Reservation{
		reservation("08:10", 3, "pending"),
		reservation("08:30", 4, "approved"),
	}

	first, err := ComputeTeeSheet(testDate, shortCourse(), reservations)
	require.NoError(t, err)
	second, err := ComputeTeeSheet(testDate, shortCourse(), reservations)
	require.NoError(t, err)

	a, err := json.Marshal(first)
	require.NoError(t, err)
	b, err := json.Marshal(second)
	require.NoError(t, err)
	assert.Equal(t, string(a), string(b))
}

func TestComputeTeeSheet_EmptyGrid(t *testing.T) {
	cfg := shortCourse()
	cfg.StartTime = "09:00"
	cfg.EndTime = "08:00"

	sheet, err := ComputeTeeSheet(testDate, cfg, []Reservation{reservation("09:00", 1, "pending")})
	require.NoError(t, err)
	assert.NotNil(t, sheet.Slots)
	assert.Empty(t, sheet.Slots)
	assert.Len(t, sheet.Unmatched, 1)
}

func TestComputeTeeSheet_Errors(t *testing.T) {
	_, err := ComputeTeeSheet("", shortCourse(), nil)
	assert.ErrorIs(t, err, ErrInvalidDate)

	_, err = ComputeTeeSheet("tomorrow", shortCourse(), nil)
	assert.ErrorIs(t, err, ErrInvalidDate)

	tests := map[string]func(*CourseConfig){
		"bad start":       func(c *CourseConfig) { c.StartTime = "8:00" },
		"zero interval":   func(c *CourseConfig) { c.IntervalMinutes = 0 },
		"zero capacity":   func(c *CourseConfig) { c.MaxPlayersPerGroup = 0 },
		"negative price":  func(c *CourseConfig) { c.BasePrice = -1 },
		"inverted prices": func(c *CourseConfig) { c.MaxPrice = 10 },
		"missing name":    func(c *CourseConfig) { c.CourseName = "" },
	}
	for name, mutate := range tests {
		t.Run(name, func(t *testing.T) {
			cfg := shortCourse()
			mutate(&cfg)
			sheet, err := ComputeTeeSheet(testDate, cfg, nil)
			assert.ErrorIs(t, err, ErrInvalidConfiguration)
			assert.Nil(t, sheet)
		})
	}
}

func TestCalculator_InjectedPricing(t *testing.T) {
	var seen []int
	peak := func(cfg CourseConfig, teeTime Clock, current int) PriceRange {
		seen = append(seen, current)
		if teeTime.Hour() == 8 && teeTime.Minute() >= 20 {
			return PriceRange{Min: cfg.MaxPrice, Max: cfg.MaxPrice}
		}
		return ConstantPricing(cfg, teeTime, current)
	}

	sheet, err := NewCalculator(peak).Compute(testDate, shortCourse(), []Reservation{
		reservation("08:10", 2, "pending"),
	})
	require.NoError(t, err)

	assert.Equal(t, []int{0, 2, 0, 0}, seen)
	assert.Equal(t, 40.0, sheet.Slots[1].MinPrice)
	assert.Equal(t, 70.0, sheet.Slots[2].MinPrice)
	assert.Equal(t, 70.0, sheet.Slots[3].MaxPrice)
}

func TestNewCalculator_NilPricingDefaultsToConstant(t *testing.T) {
	sheet, err := NewCalculator(nil).Compute(testDate, shortCourse(), nil)
	require.NoError(t, err)
	assert.Equal(t, 40.0, sheet.Slots[0].MinPrice)
	assert.Equal(t, 70.0, sheet.Slots[0].MaxPrice)
}

func TestCourseConfig_OnGrid(t *testing.T) {
	cfg := shortCourse()
	tests := map[string]bool{
		"08:00": true,
		"08:10": true,
		"08:30": true,
		"08:05": false,
		"07:50": false,
		"08:40": false,
		"8:10":  false,
		"noon":  false,
	}
	for teeTime, want := range tests {
		got, err := cfg.OnGrid(teeTime)
		require.NoError(t, err)
		assert.Equal(t, want, got, teeTime)
	}

	cfg.IntervalMinutes = 0
	_, err := cfg.OnGrid("08:00")
	assert.ErrorIs(t, err, ErrInvalidConfiguration)
}

func TestCourseConfig_WithName(t *testing.T) {
	cfg := DefaultCourse.WithName("Queens Course")
	assert.Equal(t, "Queens Course", cfg.CourseName)
	assert.Equal(t, "Kings Course", DefaultCourse.CourseName)
	assert.Equal(t, "Kings Course", DefaultCourse.WithName("").CourseName)
	assert.NoError(t, DefaultCourse.Validate())
}
