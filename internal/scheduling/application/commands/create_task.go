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
	"github.com/google/uuid"
)

// CreateTaskCommand contains the data needed to add a task to a schedule.
type CreateTaskCommand struct {
	UserID        string
	ScheduleID    string
	Title         string
	DueDate       time.Time
	Priority      int
	Difficulty    int
	DurationHours float64
}

// CreateTaskResult contains the result of creating a task.
type CreateTaskResult struct {
	TaskID string
}

// CreateTaskHandler handles the CreateTaskCommand.
type CreateTaskHandler struct {
	taskRepo  domain.TaskRepository
	publisher eventbus.Publisher
	logger    *slog.Logger
}

// NewCreateTaskHandler creates a new CreateTaskHandler.
func NewCreateTaskHandler(taskRepo domain.TaskRepository, publisher eventbus.Publisher, logger *slog.Logger) *CreateTaskHandler {
	if logger == nil {
		logger = slog.Default()
	}
	if publisher == nil {
		publisher = eventbus.NewNoopPublisher(logger)
	}
	return &CreateTaskHandler{
		taskRepo:  taskRepo,
		publisher: publisher,
		logger:    logger,
	}
}

// Handle saves the task and announces it. Subscribers of the created event
// schedule it; a failed publish leaves the task stored but unscheduled.
func (h *CreateTaskHandler) Handle(ctx context.Context, cmd CreateTaskCommand) (*CreateTaskResult, error) {
	task, err := domain.NewTask(
		uuid.NewString(),
		cmd.UserID,
		cmd.ScheduleID,
		cmd.Title,
		cmd.DueDate,
		cmd.Priority,
		cmd.Difficulty,
		cmd.DurationHours,
	)
	if err != nil {
		return nil, err
	}

	if err := h.taskRepo.Save(ctx, task); err != nil {
		return nil, fmt.Errorf("save task: %w", err)
	}

	event := domain.NewTaskCreated(task)
	event.SetMetadata(sharedApplication.NewEventMetadata(
		observability.CorrelationIDFromContext(ctx), cmd.UserID, cmd.ScheduleID,
	))
	if err := eventbus.PublishEvent(ctx, h.publisher, &event); err != nil {
		h.logger.WarnContext(ctx, "failed to publish task created event",
			"task_id", task.ID(),
			"error", err,
		)
	}

	return &CreateTaskResult{TaskID: task.ID()}, nil
}
