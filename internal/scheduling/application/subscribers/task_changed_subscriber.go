package subscribers

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"

	"github.com/akaash02/TaskMaster/internal/scheduling/application/commands"
	"github.com/akaash02/TaskMaster/internal/scheduling/domain"
	"github.com/akaash02/TaskMaster/internal/shared/infrastructure/eventbus"
	"github.com/akaash02/TaskMaster/pkg/observability"
)

// ErrMissingScope is returned when a task event names no user or schedule.
var ErrMissingScope = errors.New("task event has no user or schedule")

// ScheduleRunner runs a scheduling pass.
type ScheduleRunner interface {
	Handle(ctx context.Context, cmd commands.RunScheduleCommand) (*commands.RunScheduleResult, error)
}

// TaskChangedSubscriber reschedules a schedule whenever one of its tasks is
// added, edited or removed.
type TaskChangedSubscriber struct {
	runner ScheduleRunner
	logger *slog.Logger
}

// NewTaskChangedSubscriber creates a new TaskChangedSubscriber.
func NewTaskChangedSubscriber(runner ScheduleRunner, logger *slog.Logger) *TaskChangedSubscriber {
	if logger == nil {
		logger = slog.Default()
	}
	return &TaskChangedSubscriber{
		runner: runner,
		logger: logger,
	}
}

// EventTypes returns the event types this subscriber handles.
func (s *TaskChangedSubscriber) EventTypes() []string {
	return []string{
		domain.RoutingKeyTaskCreated,
		domain.RoutingKeyTaskUpdated,
		domain.RoutingKeyTaskRemoved,
	}
}

// Handle runs the scheduler for the event's user and schedule.
func (s *TaskChangedSubscriber) Handle(ctx context.Context, event *eventbus.ConsumedEvent) error {
	var payload struct {
		TaskID     string `json:"task_id"`
		UserID     string `json:"user_id"`
		ScheduleID string `json:"schedule_id"`
	}
	if len(event.Payload) > 0 {
		if err := json.Unmarshal(event.Payload, &payload); err != nil {
			return fmt.Errorf("decode task event payload: %w", err)
		}
	}

	userID, scheduleID := payload.UserID, payload.ScheduleID
	if userID == "" {
		userID = event.Metadata.UserID
	}
	if scheduleID == "" {
		scheduleID = event.Metadata.ScheduleID
	}
	if userID == "" || scheduleID == "" {
		return ErrMissingScope
	}

	if event.Metadata.CorrelationID != "" && observability.CorrelationIDFromContext(ctx) == "" {
		ctx = observability.WithCorrelationID(ctx, event.Metadata.CorrelationID)
	}

	s.logger.DebugContext(ctx, "task changed, running scheduler",
		"routing_key", event.RoutingKey,
		"task_id", payload.TaskID,
		"user_id", userID,
		"schedule_id", scheduleID,
	)

	_, err := s.runner.Handle(ctx, commands.RunScheduleCommand{
		UserID:     userID,
		ScheduleID: scheduleID,
	})
	return err
}
