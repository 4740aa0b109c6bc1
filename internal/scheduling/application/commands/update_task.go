package commands

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/akaash02/TaskMaster/internal/scheduling/domain"
	sharedApplication "github.com/akaash02/TaskMaster/internal/shared/application"
	"github.com/akaash02/TaskMaster/internal/shared/infrastructure/eventbus"
	"github.com/akaash02/TaskMaster/pkg/observability"
)

// UpdateTaskCommand edits a task. Nil fields keep their current value.
type UpdateTaskCommand struct {
	UserID        string
	ScheduleID    string
	TaskID        string
	Title         *string
	DueDate       *time.Time
	Priority      *int
	Difficulty    *int
	DurationHours *float64
}

// UpdateTaskHandler handles the UpdateTaskCommand.
type UpdateTaskHandler struct {
	taskRepo  domain.TaskRepository
	publisher eventbus.Publisher
	logger    *slog.Logger
}

// NewUpdateTaskHandler creates a new UpdateTaskHandler.
func NewUpdateTaskHandler(taskRepo domain.TaskRepository, publisher eventbus.Publisher, logger *slog.Logger) *UpdateTaskHandler {
	if logger == nil {
		logger = slog.Default()
	}
	if publisher == nil {
		publisher = eventbus.NewNoopPublisher(logger)
	}
	return &UpdateTaskHandler{
		taskRepo:  taskRepo,
		publisher: publisher,
		logger:    logger,
	}
}

// Handle applies the edit, stores the task unscheduled and announces the
// change so the schedule is planned again.
func (h *UpdateTaskHandler) Handle(ctx context.Context, cmd UpdateTaskCommand) error {
	task, err := h.taskRepo.FindByID(ctx, cmd.UserID, cmd.ScheduleID, cmd.TaskID)
	if err != nil {
		return err
	}

	title, due := task.Title(), task.DueDate()
	priority, difficulty, hours := task.Priority(), task.Difficulty(), task.DurationHours()
	if cmd.Title != nil {
		title = *cmd.Title
	}
	if cmd.DueDate != nil {
		due = *cmd.DueDate
	}
	if cmd.Priority != nil {
		priority = *cmd.Priority
	}
	if cmd.Difficulty != nil {
		difficulty = *cmd.Difficulty
	}
	if cmd.DurationHours != nil {
		hours = *cmd.DurationHours
	}

	if err := task.Update(title, due, priority, difficulty, hours); err != nil {
		return err
	}
	if err := h.taskRepo.Save(ctx, task); err != nil {
		return fmt.Errorf("save task: %w", err)
	}

	event := domain.NewTaskUpdated(task)
	event.SetMetadata(sharedApplication.NewEventMetadata(
		observability.CorrelationIDFromContext(ctx), cmd.UserID, cmd.ScheduleID,
	))
	if err := eventbus.PublishEvent(ctx, h.publisher, &event); err != nil {
		h.logger.WarnContext(ctx, "failed to publish task updated event",
			"task_id", task.ID(),
			"error", err,
		)
	}
	return nil
}

// RemoveTaskCommand identifies a task to delete.
type RemoveTaskCommand struct {
	UserID     string
	ScheduleID string
	TaskID     string
}

// RemoveTaskHandler handles the RemoveTaskCommand.
type RemoveTaskHandler struct {
	taskRepo  domain.TaskRepository
	publisher eventbus.Publisher
	logger    *slog.Logger
}

// NewRemoveTaskHandler creates a new RemoveTaskHandler.
func NewRemoveTaskHandler(taskRepo domain.TaskRepository, publisher eventbus.Publisher, logger *slog.Logger) *RemoveTaskHandler {
	if logger == nil {
		logger = slog.Default()
	}
	if publisher == nil {
		publisher = eventbus.NewNoopPublisher(logger)
	}
	return &RemoveTaskHandler{
		taskRepo:  taskRepo,
		publisher: publisher,
		logger:    logger,
	}
}

// Handle deletes the task. Unknown ids return domain.ErrTaskNotFound.
func (h *RemoveTaskHandler) Handle(ctx context.Context, cmd RemoveTaskCommand) error {
	if err := h.taskRepo.Delete(ctx, cmd.UserID, cmd.ScheduleID, cmd.TaskID); err != nil {
		return err
	}

	event := domain.NewTaskRemoved(cmd.UserID, cmd.ScheduleID, cmd.TaskID)
	event.SetMetadata(sharedApplication.NewEventMetadata(
		observability.CorrelationIDFromContext(ctx), cmd.UserID, cmd.ScheduleID,
	))
	if err := eventbus.PublishEvent(ctx, h.publisher, &event); err != nil {
		h.logger.WarnContext(ctx, "failed to publish task removed event",
			"task_id", cmd.TaskID,
			"error", err,
		)
	}
	return nil
}
