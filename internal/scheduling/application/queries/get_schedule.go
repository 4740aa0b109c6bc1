package queries

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/akaash02/TaskMaster/internal/scheduling/domain"
)

// TaskDTO is a task as shown on a schedule.
type TaskDTO struct {
	ID            string
	Title         string
	DueDate       time.Time
	Priority      int
	Difficulty    int
	DurationHours float64
	StartTime     *time.Time
	EndTime       *time.Time
}

// IsScheduled reports whether the task has been placed.
func (t TaskDTO) IsScheduled() bool {
	return t.StartTime != nil && t.EndTime != nil
}

// EventDTO is a committed event as shown on a schedule.
type EventDTO struct {
	ID        string
	Title     string
	Location  string
	AllDay    bool
	Repeat    string
	StartTime time.Time
	EndTime   time.Time
}

// ScheduleDTO is the read model of one schedule.
type ScheduleDTO struct {
	UserID     string
	ScheduleID string
	Tasks      []TaskDTO
	Events     []EventDTO
}

// ScheduledCount returns how many tasks have times.
func (s *ScheduleDTO) ScheduledCount() int {
	count := 0
	for _, task := range s.Tasks {
		if task.IsScheduled() {
			count++
		}
	}
	return count
}

// GetScheduleQuery contains the parameters for getting a schedule.
type GetScheduleQuery struct {
	UserID     string
	ScheduleID string
}

// GetScheduleHandler handles the GetScheduleQuery.
type GetScheduleHandler struct {
	taskRepo  domain.TaskRepository
	eventRepo domain.EventRepository
}

// NewGetScheduleHandler creates a new GetScheduleHandler.
func NewGetScheduleHandler(taskRepo domain.TaskRepository, eventRepo domain.EventRepository) *GetScheduleHandler {
	return &GetScheduleHandler{
		taskRepo:  taskRepo,
		eventRepo: eventRepo,
	}
}

// Handle returns tasks ordered by start time with unscheduled tasks last
// (by due date), and events ordered by start time.
func (h *GetScheduleHandler) Handle(ctx context.Context, query GetScheduleQuery) (*ScheduleDTO, error) {
	tasks, err := h.taskRepo.ListBySchedule(ctx, query.UserID, query.ScheduleID)
	if err != nil {
		return nil, fmt.Errorf("load tasks: %w", err)
	}
	events, err := h.eventRepo.ListBySchedule(ctx, query.UserID, query.ScheduleID)
	if err != nil {
		return nil, fmt.Errorf("load events: %w", err)
	}

	dto := &ScheduleDTO{
		UserID:     query.UserID,
		ScheduleID: query.ScheduleID,
		Tasks:      make([]TaskDTO, 0, len(tasks)),
		Events:     make([]EventDTO, 0, len(events)),
	}

	for _, task := range tasks {
		dto.Tasks = append(dto.Tasks, TaskDTO{
			ID:            task.ID(),
			Title:         task.Title(),
			DueDate:       task.DueDate(),
			Priority:      task.Priority(),
			Difficulty:    task.Difficulty(),
			DurationHours: task.DurationHours(),
			StartTime:     task.StartTime(),
			EndTime:       task.EndTime(),
		})
	}
	sort.SliceStable(dto.Tasks, func(i, j int) bool {
		a, b := dto.Tasks[i], dto.Tasks[j]
		if a.IsScheduled() != b.IsScheduled() {
			return a.IsScheduled()
		}
		if a.IsScheduled() {
			return a.StartTime.Before(*b.StartTime)
		}
		return a.DueDate.Before(b.DueDate)
	})

	for _, event := range events {
		dto.Events = append(dto.Events, EventDTO{
			ID:        event.ID(),
			Title:     event.Title(),
			Location:  event.Location(),
			AllDay:    event.AllDay(),
			Repeat:    event.Repeat(),
			StartTime: event.StartTime(),
			EndTime:   event.EndTime(),
		})
	}
	sort.SliceStable(dto.Events, func(i, j int) bool {
		return dto.Events[i].StartTime.Before(dto.Events[j].StartTime)
	})

	return dto, nil
}
