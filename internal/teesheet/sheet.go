// Package teesheet builds a course's bookable tee times for one day and
// overlays existing reservations to derive occupancy, availability and
// price bounds. Everything here is pure: no I/O and no shared state.
package teesheet

const (
	SlotAvailable = "available"
	SlotFull      = "full"

	StatusCancelled = "cancelled"
)

// Reservation is a booking as seen by the tee sheet.
type Reservation struct {
	ID       int    `json:"id"`
	UserID   int    `json:"userId"`
	Course   string `json:"course"`
	TeeDate  string `json:"teeDate"`
	TeeTime  string `json:"teeTime"`
	Players  int    `json:"players"`
	Status   string `json:"status"`
	Notes    string `json:"notes,omitempty"`
	UserName string `json:"userName,omitempty"`
}

// occupies reports whether r holds places on the given course and day.
func (r Reservation) occupies(date, course string) bool {
	return r.Status != StatusCancelled && r.TeeDate == date && r.Course == course
}

type Slot struct {
	TeeTime        string        `json:"teeTime"`
	Course         string        `json:"course"`
	Holes          int           `json:"holes"`
	CurrentPlayers int           `json:"currentPlayers"`
	MaxPlayers     int           `json:"maxPlayers"`
	AvailableSpots int           `json:"availableSpots"`
	Status         string        `json:"status"`
	MinPrice       float64       `json:"minPrice"`
	MaxPrice       float64       `json:"maxPrice"`
	Bookings       []Reservation `json:"bookings"`
}

type TeeSheet struct {
	Course string `json:"course"`
	Date   string `json:"date"`
	Slots  []Slot `json:"slots"`

	// Unmatched holds occupying reservations whose tee time is not on the grid.
	// They count towards no slot.
	Unmatched []Reservation `json:"-"`
}

// Slot returns the slot at teeTime, if it is on the sheet.
func (s *TeeSheet) Slot(teeTime string) (Slot, bool) {
	for _, slot := range s.Slots {
		if slot.TeeTime == teeTime {
			return slot, true
		}
	}
	return Slot{}, false
}

// Calculator computes tee sheets with a pluggable pricing policy.
type Calculator struct {
	pricing PricingFunc
}

// NewCalculator returns a calculator; a nil pricing falls back to ConstantPricing.
func NewCalculator(pricing PricingFunc) *Calculator {
	if pricing == nil {
		pricing = ConstantPricing
	}
	return &Calculator{pricing: pricing}
}

// Compute generates the day's grid for cfg and aggregates occupancy by exact
// tee-time match. Either the whole sheet is returned or an error.
func (c *Calculator) Compute(date string, cfg CourseConfig, reservations []Reservation) (*TeeSheet, error) {
	if _, err := ParseDate(date); err != nil {
		return nil, err
	}
	start, end, err := cfg.Bounds()
	if err != nil {
		return nil, err
	}

	grid := Grid(start, end, cfg.IntervalMinutes)

	index := make(map[string]int, len(grid))
	slots := make([]Slot, len(grid))
	for i, t := range grid {
		teeTime := t.String()
		index[teeTime] = i
		slots[i] = Slot{
			TeeTime:    teeTime,
			Course:     cfg.CourseName,
			Holes:      cfg.Holes,
			MaxPlayers: cfg.MaxPlayersPerGroup,
			Bookings:   []Reservation{},
		}
	}

	var unmatched []Reservation
	for _, r := range reservations {
		if !r.occupies(date, cfg.CourseName) {
			continue
		}
		i, ok := index[r.TeeTime]
		if !ok {
			unmatched = append(unmatched, r)
			continue
		}
		slots[i].CurrentPlayers += r.Players
		slots[i].Bookings = append(slots[i].Bookings, r)
	}

	for i := range slots {
		slot := &slots[i]
		slot.AvailableSpots = max(slot.MaxPlayers-slot.CurrentPlayers, 0)
		slot.Status = SlotAvailable
		if slot.AvailableSpots == 0 {
			slot.Status = SlotFull
		}
		price := c.pricing(cfg, grid[i], slot.CurrentPlayers)
		slot.MinPrice = price.Min
		slot.MaxPrice = price.Max
	}

	return &TeeSheet{
		Course:    cfg.CourseName,
		Date:      date,
		Slots:     slots,
		Unmatched: unmatched,
	}, nil
}

// ComputeTeeSheet computes the sheet with constant pricing.
func ComputeTeeSheet(date string, cfg CourseConfig, reservations []Reservation) (*TeeSheet, error) {
	return NewCalculator(ConstantPricing).Compute(date, cfg, reservations)
}
