package domain

import (
	"errors"
	"strings"
	"time"
)

var (
	ErrInvalidSlotRange = errors.New("slot start must be before slot end")
	ErrSlotMinuteRange  = errors.New("slot minutes must lie within a single day")
	ErrSlotOverlap      = errors.New("time slot overlaps an existing slot")
)

// FreeTimeSlot is a window of availability. A weekly slot repeats on one
// weekday between two minutes of the day; a custom slot covers a single
// absolute interval.
type FreeTimeSlot struct {
	id          string
	userID      string
	isCustom    bool
	dayOfWeek   string
	startMinute int
	endMinute   int
	start       time.Time
	end         time.Time
}

// NewWeeklySlot creates a recurring slot on dayOfWeek.
func NewWeeklySlot(id, userID, dayOfWeek string, startMinute, endMinute int) (*FreeTimeSlot, error) {
	if _, err := ParseWeekday(dayOfWeek); err != nil {
		return nil, err
	}
	if startMinute < 0 || endMinute > MinutesPerDay {
		return nil, ErrSlotMinuteRange
	}
	if startMinute >= endMinute {
		return nil, ErrInvalidSlotRange
	}

	return &FreeTimeSlot{
		id:          id,
		userID:      userID,
		dayOfWeek:   strings.TrimSpace(dayOfWeek),
		startMinute: startMinute,
		endMinute:   endMinute,
	}, nil
}

// NewCustomSlot creates a one-off slot covering [start, end).
func NewCustomSlot(id, userID string, start, end time.Time) (*FreeTimeSlot, error) {
	if !start.Before(end) {
		return nil, ErrInvalidSlotRange
	}

	return &FreeTimeSlot{
		id:       id,
		userID:   userID,
		isCustom: true,
		start:    start,
		end:      end,
	}, nil
}

// Getters
func (s *FreeTimeSlot) ID() string        { return s.id }
func (s *FreeTimeSlot) UserID() string    { return s.userID }
func (s *FreeTimeSlot) IsCustom() bool    { return s.isCustom }
func (s *FreeTimeSlot) DayOfWeek() string { return s.dayOfWeek }
func (s *FreeTimeSlot) StartMinute() int  { return s.startMinute }
func (s *FreeTimeSlot) EndMinute() int    { return s.endMinute }
func (s *FreeTimeSlot) Start() time.Time  { return s.start }
func (s *FreeTimeSlot) End() time.Time    { return s.end }

// Weekday parses the slot's day name. Only meaningful for weekly slots.
func (s *FreeTimeSlot) Weekday() (time.Weekday, error) {
	return ParseWeekday(s.dayOfWeek)
}

// CapacityMinutes returns the slot's full length in minutes.
func (s *FreeTimeSlot) CapacityMinutes() int {
	if s.isCustom {
		return int(s.end.Sub(s.start) / time.Minute)
	}
	return s.endMinute - s.startMinute
}

// OverlapsWith reports whether two slots claim the same time. Weekly slots
// only collide with weekly slots of the same day, custom slots only with
// custom slots.
func (s *FreeTimeSlot) OverlapsWith(other *FreeTimeSlot) bool {
	if s.isCustom != other.isCustom {
		return false
	}
	if s.isCustom {
		return TimeRange{Start: s.start, End: s.end}.Overlaps(TimeRange{Start: other.start, End: other.end})
	}
	if !strings.EqualFold(s.dayOfWeek, other.dayOfWeek) {
		return false
	}
	return s.startMinute < other.endMinute && s.endMinute > other.startMinute
}

// RehydrateWeeklySlot recreates a weekly slot from persisted state without
// validating it; malformed day names surface when the slot is scheduled.
func RehydrateWeeklySlot(id, userID, dayOfWeek string, startMinute, endMinute int) *FreeTimeSlot {
	return &FreeTimeSlot{
		id:          id,
		userID:      userID,
		dayOfWeek:   dayOfWeek,
		startMinute: startMinute,
		endMinute:   endMinute,
	}
}

// RehydrateCustomSlot recreates a custom slot from persisted state.
func RehydrateCustomSlot(id, userID string, start, end time.Time) *FreeTimeSlot {
	return &FreeTimeSlot{
		id:       id,
		userID:   userID,
		isCustom: true,
		start:    start,
		end:      end,
	}
}
