package domain

import (
	"errors"
	"math"
	"strings"
	"time"
)

var (
	ErrTaskTitleRequired   = errors.New("task title is required")
	ErrTaskDueDateRequired = errors.New("task due date is required")
	ErrInvalidDuration     = errors.New("task duration must be positive")
	ErrDurationMismatch    = errors.New("assigned interval does not match task duration")
)

// Task is a unit of work that the scheduler places into a free time slot.
type Task struct {
	id         string
	userID     string
	scheduleID string
	title      string
	dueDate    time.Time
	priority   int // higher = more urgent
	difficulty int
	duration   float64 // hours
	startTime  *time.Time
	endTime    *time.Time
}

// NewTask creates a new unscheduled task.
func NewTask(
	id, userID, scheduleID, title string,
	dueDate time.Time,
	priority, difficulty int,
	durationHours float64,
) (*Task, error) {
	title = strings.TrimSpace(title)
	if err := validateTask(title, dueDate, durationHours); err != nil {
		return nil, err
	}

	return &Task{
		id:         id,
		userID:     userID,
		scheduleID: scheduleID,
		title:      title,
		dueDate:    dueDate,
		priority:   priority,
		difficulty: difficulty,
		duration:   durationHours,
	}, nil
}

// Getters
func (t *Task) ID() string             { return t.id }
func (t *Task) UserID() string         { return t.userID }
func (t *Task) ScheduleID() string     { return t.scheduleID }
func (t *Task) Title() string          { return t.title }
func (t *Task) DueDate() time.Time     { return t.dueDate }
func (t *Task) Priority() int          { return t.priority }
func (t *Task) Difficulty() int        { return t.difficulty }
func (t *Task) DurationHours() float64 { return t.duration }
func (t *Task) StartTime() *time.Time  { return t.startTime }
func (t *Task) EndTime() *time.Time    { return t.endTime }

// DurationMinutes returns the working time in whole minutes.
func (t *Task) DurationMinutes() int {
	return int(math.Round(t.duration * 60))
}

// Duration returns the working time as a time.Duration.
func (t *Task) Duration() time.Duration {
	return time.Duration(t.DurationMinutes()) * time.Minute
}

// IsScheduled reports whether the task has an assigned interval.
func (t *Task) IsScheduled() bool {
	return t.startTime != nil && t.endTime != nil
}

// AssignTimes sets the scheduled interval of the task.
func (t *Task) AssignTimes(start, end time.Time) error {
	if end.Sub(start) != t.Duration() {
		return ErrDurationMismatch
	}
	t.startTime = &start
	t.endTime = &end
	return nil
}

// ClearTimes drops the scheduled interval.
func (t *Task) ClearTimes() {
	t.startTime = nil
	t.endTime = nil
}

// Update replaces the editable details. The scheduled interval is dropped
// until the next scheduling run places the task again.
func (t *Task) Update(title string, dueDate time.Time, priority, difficulty int, durationHours float64) error {
	title = strings.TrimSpace(title)
	if err := validateTask(title, dueDate, durationHours); err != nil {
		return err
	}
	t.title = title
	t.dueDate = dueDate
	t.priority = priority
	t.difficulty = difficulty
	t.duration = durationHours
	t.ClearTimes()
	return nil
}

func validateTask(title string, dueDate time.Time, durationHours float64) error {
	if title == "" {
		return ErrTaskTitleRequired
	}
	if dueDate.IsZero() {
		return ErrTaskDueDateRequired
	}
	if durationHours <= 0 || math.IsNaN(durationHours) || math.IsInf(durationHours, 0) {
		return ErrInvalidDuration
	}
	return nil
}

// RehydrateTask recreates a task from persisted state.
func RehydrateTask(
	id, userID, scheduleID, title string,
	dueDate time.Time,
	priority, difficulty int,
	durationHours float64,
	startTime, endTime *time.Time,
) *Task {
	return &Task{
		id:         id,
		userID:     userID,
		scheduleID: scheduleID,
		title:      title,
		dueDate:    dueDate,
		priority:   priority,
		difficulty: difficulty,
		duration:   durationHours,
		startTime:  startTime,
		endTime:    endTime,
	}
}
