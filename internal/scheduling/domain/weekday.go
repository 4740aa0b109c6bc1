package domain

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// MinutesPerDay is the number of minutes between two midnights.
const MinutesPerDay = 24 * 60

// ErrInvalidDayOfWeek is returned when a weekday name cannot be recognised.
var ErrInvalidDayOfWeek = errors.New("invalid day of week")

var weekdaysByName = map[string]time.Weekday{
	"sunday":    time.Sunday,
	"monday":    time.Monday,
	"tuesday":   time.Tuesday,
	"wednesday": time.Wednesday,
	"thursday":  time.Thursday,
	"friday":    time.Friday,
	"saturday":  time.Saturday,
}

// ParseWeekday maps a weekday name to its time.Weekday, ignoring case and
// surrounding whitespace.
func ParseWeekday(name string) (time.Weekday, error) {
	day, ok := weekdaysByName[strings.ToLower(strings.TrimSpace(name))]
	if !ok {
		return 0, fmt.Errorf("%w: %q", ErrInvalidDayOfWeek, name)
	}
	return day, nil
}

// WeekdayIndex returns the weekday of t as 0..6 with Sunday = 0.
func WeekdayIndex(t time.Time) int {
	return int(t.Weekday())
}

// AddDays shifts t by n calendar days keeping its wall clock time.
func AddDays(t time.Time, n int) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d+n, t.Hour(), t.Minute(), t.Second(), t.Nanosecond(), t.Location())
}

// AtMinuteOfDay returns the instant on t's calendar date at the given minute
// since midnight. A minute of 1440 yields midnight of the following day.
func AtMinuteOfDay(t time.Time, minuteOfDay int) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, minuteOfDay/60, minuteOfDay%60, 0, 0, t.Location())
}

// MinuteOfDay returns the wall clock minutes since midnight of t.
func MinuteOfDay(t time.Time) int {
	return t.Hour()*60 + t.Minute()
}

// ResolveSlotDate places a weekly slot occurrence in the calendar week of
// dueDate (Sunday through Saturday) and returns it at minuteOfDay.
func ResolveSlotDate(day time.Weekday, dueDate time.Time, minuteOfDay int) time.Time {
	dayDifference := int(day) - WeekdayIndex(dueDate)
	return AtMinuteOfDay(AddDays(dueDate, dayDifference), minuteOfDay)
}
