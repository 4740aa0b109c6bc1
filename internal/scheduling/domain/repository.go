package domain

import (
	"context"
	"errors"
	"time"
)

var (
	ErrTaskNotFound  = errors.New("task not found")
	ErrSlotNotFound  = errors.New("time slot not found")
	ErrEventNotFound = errors.New("event not found")
)

// TaskRepository defines persistence for tasks of a user's schedule.
type TaskRepository interface {
	// Save creates or replaces a task.
	Save(ctx context.Context, task *Task) error

	// FindByID retrieves a single task.
	FindByID(ctx context.Context, userID, scheduleID, taskID string) (*Task, error)

	// ListBySchedule returns every task of a schedule.
	ListBySchedule(ctx context.Context, userID, scheduleID string) ([]*Task, error)

	// UpdateTimes writes the scheduled interval onto a task.
	UpdateTimes(ctx context.Context, userID, scheduleID, taskID string, start, end time.Time) error

	// ClearTimes drops the scheduled interval of a task.
	ClearTimes(ctx context.Context, userID, scheduleID, taskID string) error

	// Delete removes a task.
	Delete(ctx context.Context, userID, scheduleID, taskID string) error
}

// SlotRepository defines persistence for a user's free time slots.
type SlotRepository interface {
	Save(ctx context.Context, slot *FreeTimeSlot) error
	ListByUser(ctx context.Context, userID string) ([]*FreeTimeSlot, error)
	Delete(ctx context.Context, userID, slotID string) error
}

// EventRepository defines persistence for committed events of a schedule.
type EventRepository interface {
	// Save creates or replaces an event.
	Save(ctx context.Context, event *Event) error
	ListBySchedule(ctx context.Context, userID, scheduleID string) ([]*Event, error)
	Delete(ctx context.Context, userID, scheduleID, eventID string) error
}
