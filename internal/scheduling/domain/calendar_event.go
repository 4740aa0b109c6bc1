package domain

import (
	"errors"
	"time"
)

// ErrInvalidEventRange is returned when an event does not end after it starts.
var ErrInvalidEventRange = errors.New("event end time must be after start time")

// Event is a committed calendar entry the scheduler must not overlap.
type Event struct {
	id         string
	userID     string
	scheduleID string
	title      string
	location   string
	allDay     bool
	repeat     string
	startTime  time.Time
	endTime    time.Time
}

// EventDetails holds the descriptive fields of an event.
type EventDetails struct {
	Title    string
	Location string
	AllDay   bool
	Repeat   string
}

// NewEvent creates a committed event.
func NewEvent(id, userID, scheduleID string, details EventDetails, startTime, endTime time.Time) (*Event, error) {
	if !endTime.After(startTime) {
		return nil, ErrInvalidEventRange
	}
	return RehydrateEvent(id, userID, scheduleID, details, startTime, endTime), nil
}

// RehydrateEvent recreates an event from persisted state.
func RehydrateEvent(id, userID, scheduleID string, details EventDetails, startTime, endTime time.Time) *Event {
	return &Event{
		id:         id,
		userID:     userID,
		scheduleID: scheduleID,
		title:      details.Title,
		location:   details.Location,
		allDay:     details.AllDay,
		repeat:     details.Repeat,
		startTime:  startTime,
		endTime:    endTime,
	}
}

// Getters
func (e *Event) ID() string           { return e.id }
func (e *Event) UserID() string       { return e.userID }
func (e *Event) ScheduleID() string   { return e.scheduleID }
func (e *Event) Title() string        { return e.title }
func (e *Event) Location() string     { return e.location }
func (e *Event) AllDay() bool         { return e.allDay }
func (e *Event) Repeat() string       { return e.repeat }
func (e *Event) StartTime() time.Time { return e.startTime }
func (e *Event) EndTime() time.Time   { return e.endTime }

// Details returns the descriptive fields of the event.
func (e *Event) Details() EventDetails {
	return EventDetails{Title: e.title, Location: e.location, AllDay: e.allDay, Repeat: e.repeat}
}

// TimeRange returns the event's occupied interval.
func (e *Event) TimeRange() TimeRange {
	return TimeRange{Start: e.startTime, End: e.endTime}
}
