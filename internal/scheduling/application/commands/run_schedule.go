package commands

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/akaash02/TaskMaster/internal/scheduling/application/services"
	"github.com/akaash02/TaskMaster/internal/scheduling/domain"
	sharedApplication "github.com/akaash02/TaskMaster/internal/shared/application"
	sharedDomain "github.com/akaash02/TaskMaster/internal/shared/domain"
	"github.com/akaash02/TaskMaster/internal/shared/infrastructure/eventbus"
	"github.com/akaash02/TaskMaster/pkg/observability"
)

// RunScheduleCommand asks for a scheduling pass over one schedule.
type RunScheduleCommand struct {
	UserID     string
	ScheduleID string
	DryRun     bool // plan only, write nothing
}

// RunScheduleResult contains the outcome of a scheduling pass.
type RunScheduleResult struct {
	Assignments []services.Assignment
	Unscheduled []services.Unscheduled
	Written     int // assignments stored
	Cleared     int // stale intervals dropped from tasks that no longer fit
	DryRun      bool
}

// ScheduleRecorder records scheduling run metrics.
type ScheduleRecorder interface {
	ObserveRun(outcome string, assigned int, unscheduledReasons []string, duration time.Duration)
}

// RunScheduleHandler loads a schedule, plans it and writes the assignments back.
type RunScheduleHandler struct {
	taskRepo  domain.TaskRepository
	slotRepo  domain.SlotRepository
	eventRepo domain.EventRepository
	engine    *services.SchedulerEngine
	publisher eventbus.Publisher
	metrics   ScheduleRecorder
	logger    *slog.Logger
}

// NewRunScheduleHandler creates a new RunScheduleHandler. publisher and
// metrics may be nil.
func NewRunScheduleHandler(
	taskRepo domain.TaskRepository,
	slotRepo domain.SlotRepository,
	eventRepo domain.EventRepository,
	engine *services.SchedulerEngine,
	publisher eventbus.Publisher,
	metrics ScheduleRecorder,
	logger *slog.Logger,
) *RunScheduleHandler {
	if logger == nil {
		logger = slog.Default()
	}
	if publisher == nil {
		publisher = eventbus.NewNoopPublisher(logger)
	}
	return &RunScheduleHandler{
		taskRepo:  taskRepo,
		slotRepo:  slotRepo,
		eventRepo: eventRepo,
		engine:    engine,
		publisher: publisher,
		metrics:   metrics,
		logger:    logger,
	}
}

// Handle executes the RunScheduleCommand. Assigned tasks get their new
// interval; tasks left unscheduled lose any interval stored by an earlier
// run. A read or write failure aborts the run; tasks written before the
// failure keep their new state.
func (h *RunScheduleHandler) Handle(ctx context.Context, cmd RunScheduleCommand) (*RunScheduleResult, error) {
	started := time.Now()
	logger := h.logger.With("user_id", cmd.UserID, "schedule_id", cmd.ScheduleID)

	tasks, err := h.taskRepo.ListBySchedule(ctx, cmd.UserID, cmd.ScheduleID)
	if err != nil {
		return nil, h.abort(ctx, logger, started, fmt.Errorf("load tasks: %w", err))
	}
	slots, err := h.slotRepo.ListByUser(ctx, cmd.UserID)
	if err != nil {
		return nil, h.abort(ctx, logger, started, fmt.Errorf("load time slots: %w", err))
	}
	events, err := h.eventRepo.ListBySchedule(ctx, cmd.UserID, cmd.ScheduleID)
	if err != nil {
		return nil, h.abort(ctx, logger, started, fmt.Errorf("load events: %w", err))
	}

	plan := h.engine.Plan(tasks, slots, events)
	result := &RunScheduleResult{
		Assignments: plan.Assignments,
		Unscheduled: plan.Unscheduled,
		DryRun:      cmd.DryRun,
	}

	for _, u := range plan.Unscheduled {
		logger.DebugContext(ctx, "task left unscheduled", "task_id", u.TaskID, "reason", u.Reason)
	}

	if !cmd.DryRun {
		metadata := sharedApplication.NewEventMetadata(
			observability.CorrelationIDFromContext(ctx), cmd.UserID, cmd.ScheduleID,
		)
		for _, a := range plan.Assignments {
			if err := h.taskRepo.UpdateTimes(ctx, cmd.UserID, cmd.ScheduleID, a.TaskID, a.StartTime, a.EndTime); err != nil {
				return result, h.abortWrite(ctx, logger, started, result, a.TaskID, fmt.Errorf("write schedule for task %s: %w", a.TaskID, err))
			}
			result.Written++
			h.publishScheduled(ctx, logger, cmd, a, metadata)
		}

		previouslyScheduled := scheduledTaskIDs(tasks)
		for _, u := range plan.Unscheduled {
			if _, ok := previouslyScheduled[u.TaskID]; !ok {
				continue
			}
			if err := h.taskRepo.ClearTimes(ctx, cmd.UserID, cmd.ScheduleID, u.TaskID); err != nil {
				return result, h.abortWrite(ctx, logger, started, result, u.TaskID, fmt.Errorf("clear schedule for task %s: %w", u.TaskID, err))
			}
			result.Cleared++
		}
	}

	outcome := observability.OutcomeSuccess
	if cmd.DryRun {
		outcome = observability.OutcomeDryRun
	}
	h.observe(outcome, len(plan.Assignments), unscheduledReasons(plan.Unscheduled), started)

	logger.InfoContext(ctx, "scheduling run completed",
		"tasks", len(tasks),
		"slots", len(slots),
		"events", len(events),
		"scheduled", len(plan.Assignments),
		"unscheduled", len(plan.Unscheduled),
		"cleared", result.Cleared,
		"dry_run", cmd.DryRun,
		"duration_ms", time.Since(started).Milliseconds(),
	)

	return result, nil
}

func (h *RunScheduleHandler) abort(ctx context.Context, logger *slog.Logger, started time.Time, err error) error {
	logger.ErrorContext(ctx, "scheduling run aborted", "error", err)
	h.observe(observability.OutcomeFailure, 0, nil, started)
	return err
}

func (h *RunScheduleHandler) abortWrite(
	ctx context.Context,
	logger *slog.Logger,
	started time.Time,
	result *RunScheduleResult,
	taskID string,
	err error,
) error {
	logger.ErrorContext(ctx, "scheduling run aborted",
		"task_id", taskID,
		"written", result.Written,
		"cleared", result.Cleared,
		"error", err,
	)
	h.observe(observability.OutcomeFailure, result.Written, nil, started)
	return err
}

func (h *RunScheduleHandler) publishScheduled(
	ctx context.Context,
	logger *slog.Logger,
	cmd RunScheduleCommand,
	a services.Assignment,
	metadata sharedDomain.EventMetadata,
) {
	event := domain.NewTaskScheduled(cmd.UserID, cmd.ScheduleID, a.TaskID, a.SlotID, a.StartTime, a.EndTime)
	event.SetMetadata(metadata)
	if err := eventbus.PublishEvent(ctx, h.publisher, &event); err != nil {
		logger.WarnContext(ctx, "failed to publish task scheduled event",
			"task_id", a.TaskID,
			"error", err,
		)
	}
}

func (h *RunScheduleHandler) observe(outcome string, assigned int, reasons []string, started time.Time) {
	if h.metrics == nil {
		return
	}
	h.metrics.ObserveRun(outcome, assigned, reasons, time.Since(started))
}

func scheduledTaskIDs(tasks []*domain.Task) map[string]struct{} {
	ids := make(map[string]struct{}, len(tasks))
	for _, task := range tasks {
		if task.IsScheduled() {
			ids[task.ID()] = struct{}{}
		}
	}
	return ids
}

func unscheduledReasons(unscheduled []services.Unscheduled) []string {
	reasons := make([]string, 0, len(unscheduled))
	for _, u := range unscheduled {
		reasons = append(reasons, u.Reason)
	}
	return reasons
}
