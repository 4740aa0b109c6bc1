package commands

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/akaash02/TaskMaster/internal/scheduling/domain"
	sharedApplication "github.com/akaash02/TaskMaster/internal/shared/application"
)

// ErrInvalidImportWindow is returned when the import window is empty.
var ErrInvalidImportWindow = errors.New("import window end must be after start")

// EventSource reads committed events from an external calendar. Returned
// events carry the calendar's stable ids so repeated imports upsert.
type EventSource interface {
	FetchEvents(ctx context.Context, userID, scheduleID string, from, to time.Time) ([]*domain.Event, error)
}

// ImportEventsCommand imports the events of a window into a schedule.
type ImportEventsCommand struct {
	UserID     string
	ScheduleID string
	From       time.Time
	To         time.Time
}

// ImportEventsResult contains the result of an import.
type ImportEventsResult struct {
	Imported int
}

// ImportEventsHandler handles the ImportEventsCommand.
type ImportEventsHandler struct {
	source    EventSource
	eventRepo domain.EventRepository
	uow       sharedApplication.UnitOfWork
	logger    *slog.Logger
}

// NewImportEventsHandler creates a new ImportEventsHandler.
func NewImportEventsHandler(
	source EventSource,
	eventRepo domain.EventRepository,
	uow sharedApplication.UnitOfWork,
	logger *slog.Logger,
) *ImportEventsHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &ImportEventsHandler{
		source:    source,
		eventRepo: eventRepo,
		uow:       uow,
		logger:    logger,
	}
}

// Handle fetches the window and saves every event in one unit of work.
func (h *ImportEventsHandler) Handle(ctx context.Context, cmd ImportEventsCommand) (*ImportEventsResult, error) {
	if !cmd.To.After(cmd.From) {
		return nil, ErrInvalidImportWindow
	}

	events, err := h.source.FetchEvents(ctx, cmd.UserID, cmd.ScheduleID, cmd.From, cmd.To)
	if err != nil {
		return nil, fmt.Errorf("fetch events: %w", err)
	}

	err = sharedApplication.WithUnitOfWork(ctx, h.uow, func(txCtx context.Context) error {
		for _, event := range events {
			if err := h.eventRepo.Save(txCtx, event); err != nil {
				return fmt.Errorf("save event %s: %w", event.ID(), err)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	h.logger.InfoContext(ctx, "events imported",
		"user_id", cmd.UserID,
		"schedule_id", cmd.ScheduleID,
		"count", len(events),
	)

	return &ImportEventsResult{Imported: len(events)}, nil
}
