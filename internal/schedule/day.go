package schedule

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// DayNames are the short names of the weekdays, index 0 is Sunday.
var DayNames = [DaysInWeek]string{"Sun", "Mon", "Tue", "Wed", "Thu", "Fri", "Sat"}

// ParseDay accepts a day index (0-6) or a (short) english day name.
func ParseDay(text string) (int, error) {
	text = strings.TrimSpace(text)
	if index, err := strconv.Atoi(text); err == nil {
		if index < 0 || index >= DaysInWeek {
			return 0, fmt.Errorf("%w: %d", ErrInvalidDay, index)
		}
		return index, nil
	}
	lower := strings.ToLower(text)
	if len(lower) >= 3 {
		for i := 0; i < DaysInWeek; i++ {
			name := strings.ToLower(time.Weekday(i).String())
			if strings.HasPrefix(name, lower) {
				return i, nil
			}
		}
	}
	return 0, fmt.Errorf("%w: %s", ErrInvalidDay, text)
}

// ParseTime splits a HH:MM string into hour and minute text, the parts are
// not validated here.
func ParseTime(text string) (hour string, minute string, err error) {
	hour, minute, found := strings.Cut(strings.TrimSpace(text), ":")
	if !found {
		return "", "", fmt.Errorf("time must be formatted as HH:MM, got: %s", text)
	}
	return hour, minute, nil
}

// DayProfile samples the effective setpoint of the given day every step minutes.
func (w *WeeklySchedule) DayProfile(day int, step int) []float64 {
	if step <= 0 {
		step = 60
	}
	// 2024-01-07 is a Sunday
	base := time.Date(2024, 1, 7+day, 0, 0, 0, 0, time.UTC)
	values := make([]float64, 0, 24*60/step)
	for minute := 0; minute < 24*60; minute += step {
		values = append(values, w.EffectiveSetpoint(base.Add(time.Duration(minute)*time.Minute)))
	}
	return values
}
