package teesheet

import "fmt"

// CourseConfig holds the operating parameters that define a day's tee sheet.
type CourseConfig struct {
	CourseName         string  `toml:"name" json:"courseName"`
	StartTime          string  `toml:"start_time" json:"startTime"`
	EndTime            string  `toml:"end_time" json:"endTime"`
	IntervalMinutes    int     `toml:"interval_minutes" json:"intervalMinutes"`
	MaxPlayersPerGroup int     `toml:"max_players_per_group" json:"maxPlayersPerGroup"`
	Holes              int     `toml:"holes" json:"holes"`
	BasePrice          float64 `toml:"base_price" json:"basePrice"`
	MaxPrice           float64 `toml:"max_price" json:"maxPrice"`
}

// DefaultCourse is used when no catalog entry matches the requested course.
var DefaultCourse = CourseConfig{
	CourseName:         "Kings Course",
	StartTime:          "08:00",
	EndTime:            "18:00",
	IntervalMinutes:    10,
	MaxPlayersPerGroup: 4,
	Holes:              18,
	BasePrice:          40,
	MaxPrice:           70,
}

// WithName returns a copy of the configuration under a different course name.
func (c CourseConfig) WithName(name string) CourseConfig {
	if name != "" {
		c.CourseName = name
	}
	return c
}

// Bounds validates the configuration and returns the parsed opening hours.
func (c CourseConfig) Bounds() (start, end Clock, err error) {
	if c.CourseName == "" {
		return 0, 0, fmt.Errorf("%w: course name is required", ErrInvalidConfiguration)
	}
	if start, err = ParseClock(c.StartTime); err != nil {
		return 0, 0, err
	}
	if end, err = ParseClock(c.EndTime); err != nil {
		return 0, 0, err
	}
	if c.IntervalMinutes <= 0 {
		return 0, 0, fmt.Errorf("%w: interval must be positive, got %d", ErrInvalidConfiguration, c.IntervalMinutes)
	}
	if c.MaxPlayersPerGroup <= 0 {
		return 0, 0, fmt.Errorf("%w: max players per group must be positive, got %d", ErrInvalidConfiguration, c.MaxPlayersPerGroup)
	}
	if c.BasePrice < 0 || c.MaxPrice < c.BasePrice {
		return 0, 0, fmt.Errorf("%w: price bounds %.2f..%.2f", ErrInvalidConfiguration, c.BasePrice, c.MaxPrice)
	}
	return start, end, nil
}

func (c CourseConfig) Validate() error {
	_, _, err := c.Bounds()
	return err
}

// OnGrid reports whether teeTime is one of the course's generated tee times.
func (c CourseConfig) OnGrid(teeTime string) (bool, error) {
	start, end, err := c.Bounds()
	if err != nil {
		return false, err
	}
	t, err := ParseClock(teeTime)
	if err != nil {
		return false, nil
	}
	if t < start || t > end {
		return false, nil
	}
	return int(t-start)%c.IntervalMinutes == 0, nil
}
