package domain

import "time"

// TimeRange represents a half-open period [Start, End).
type TimeRange struct {
	Start time.Time
	End   time.Time
}

// Overlaps checks if two time ranges overlap.
func (t TimeRange) Overlaps(other TimeRange) bool {
	return t.Start.Before(other.End) && t.End.After(other.Start)
}

// Duration returns the duration of the time range.
func (t TimeRange) Duration() time.Duration {
	return t.End.Sub(t.Start)
}

// Contains reports whether other lies entirely within t.
func (t TimeRange) Contains(other TimeRange) bool {
	return !other.Start.Before(t.Start) && !other.End.After(t.End)
}

// FirstConflict returns the first event whose interval intersects candidate.
func FirstConflict(candidate TimeRange, events []*Event) *Event {
	for _, event := range events {
		if candidate.Overlaps(event.TimeRange()) {
			return event
		}
	}
	return nil
}

// ConflictsWithEvents reports whether candidate intersects any event.
func ConflictsWithEvents(candidate TimeRange, events []*Event) bool {
	return FirstConflict(candidate, events) != nil
}
