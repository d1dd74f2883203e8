package teesheet

// Grid returns start, start+interval, ... up to and including the last value
// that does not pass end. A start after end yields an empty grid. Values are
// clock times, so the sequence never wraps past midnight.
func Grid(start, end Clock, interval int) []Clock {
	if interval <= 0 || start > end {
		return []Clock{}
	}

	times := make([]Clock, 0, int(end-start)/interval+1)
	for current := start; current <= end; current += Clock(interval) {
		times = append(times, current)
	}
	return times
}

// GenerateTimeSlots is Grid over "HH:MM" strings.
func GenerateTimeSlots(startTime, endTime string, intervalMinutes int) ([]string, error) {
	cfg := CourseConfig{
		CourseName:         "grid",
		StartTime:          startTime,
		EndTime:            endTime,
		IntervalMinutes:    intervalMinutes,
		MaxPlayersPerGroup: 1,
	}
	start, end, err := cfg.Bounds()
	if err != nil {
		return nil, err
	}

	grid := Grid(start, end, intervalMinutes)
	out := make([]string, len(grid))
	for i, c := range grid {
		out[i] = c.String()
	}
	return out, nil
}
