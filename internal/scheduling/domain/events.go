package domain

import (
	"time"

	sharedDomain "github.com/akaash02/TaskMaster/internal/shared/domain"
)

const (
	AggregateType = "Task"

	RoutingKeyTaskCreated   = "scheduling.task.created"
	RoutingKeyTaskUpdated   = "scheduling.task.updated"
	RoutingKeyTaskRemoved   = "scheduling.task.removed"
	RoutingKeyTaskScheduled = "scheduling.task.scheduled"
)

// TaskCreated is emitted when a task is added to a schedule.
type TaskCreated struct {
	sharedDomain.BaseEvent
	TaskID     string    `json:"task_id"`
	UserID     string    `json:"user_id"`
	ScheduleID string    `json:"schedule_id"`
	Title      string    `json:"title"`
	DueDate    time.Time `json:"due_date"`
}

// NewTaskCreated creates a TaskCreated event.
func NewTaskCreated(task *Task) TaskCreated {
	event := TaskCreated{
		BaseEvent:  sharedDomain.NewBaseEvent(task.ID(), AggregateType, RoutingKeyTaskCreated),
		TaskID:     task.ID(),
		UserID:     task.UserID(),
		ScheduleID: task.ScheduleID(),
		Title:      task.Title(),
		DueDate:    task.DueDate(),
	}
	event.SetMetadata(sharedDomain.EventMetadata{UserID: task.UserID(), ScheduleID: task.ScheduleID()})
	return event
}

// TaskUpdated is emitted when a task's details are edited.
type TaskUpdated struct {
	sharedDomain.BaseEvent
	TaskID     string    `json:"task_id"`
	UserID     string    `json:"user_id"`
	ScheduleID string    `json:"schedule_id"`
	Title      string    `json:"title"`
	DueDate    time.Time `json:"due_date"`
}

// NewTaskUpdated creates a TaskUpdated event.
func NewTaskUpdated(task *Task) TaskUpdated {
	event := TaskUpdated{
		BaseEvent:  sharedDomain.NewBaseEvent(task.ID(), AggregateType, RoutingKeyTaskUpdated),
		TaskID:     task.ID(),
		UserID:     task.UserID(),
		ScheduleID: task.ScheduleID(),
		Title:      task.Title(),
		DueDate:    task.DueDate(),
	}
	event.SetMetadata(sharedDomain.EventMetadata{UserID: task.UserID(), ScheduleID: task.ScheduleID()})
	return event
}

// TaskRemoved is emitted when a task is deleted from a schedule.
type TaskRemoved struct {
	sharedDomain.BaseEvent
	TaskID     string `json:"task_id"`
	UserID     string `json:"user_id"`
	ScheduleID string `json:"schedule_id"`
}

// NewTaskRemoved creates a TaskRemoved event.
func NewTaskRemoved(userID, scheduleID, taskID string) TaskRemoved {
	event := TaskRemoved{
		BaseEvent:  sharedDomain.NewBaseEvent(taskID, AggregateType, RoutingKeyTaskRemoved),
		TaskID:     taskID,
		UserID:     userID,
		ScheduleID: scheduleID,
	}
	event.SetMetadata(sharedDomain.EventMetadata{UserID: userID, ScheduleID: scheduleID})
	return event
}

// TaskScheduled is emitted when the scheduler writes an interval onto a task.
type TaskScheduled struct {
	sharedDomain.BaseEvent
	TaskID     string    `json:"task_id"`
	UserID     string    `json:"user_id"`
	ScheduleID string    `json:"schedule_id"`
	SlotID     string    `json:"slot_id"`
	StartTime  time.Time `json:"start_time"`
	EndTime    time.Time `json:"end_time"`
}

// NewTaskScheduled creates a TaskScheduled event.
func NewTaskScheduled(userID, scheduleID, taskID, slotID string, start, end time.Time) TaskScheduled {
	event := TaskScheduled{
		BaseEvent:  sharedDomain.NewBaseEvent(taskID, AggregateType, RoutingKeyTaskScheduled),
		TaskID:     taskID,
		UserID:     userID,
		ScheduleID: scheduleID,
		SlotID:     slotID,
		StartTime:  start,
		EndTime:    end,
	}
	event.SetMetadata(sharedDomain.EventMetadata{UserID: userID, ScheduleID: scheduleID})
	return event
}
