package commands

import (
	"context"
	"fmt"
	"time"

	"github.com/akaash02/TaskMaster/internal/scheduling/domain"
	"github.com/google/uuid"
)

// AddEventCommand contains the data needed to record a committed event.
type AddEventCommand struct {
	UserID     string
	ScheduleID string
	Title      string
	Location   string
	AllDay     bool
	Repeat     string
	StartTime  time.Time
	EndTime    time.Time
}

// AddEventResult contains the result of adding an event.
type AddEventResult struct {
	EventID string
}

// AddEventHandler handles the AddEventCommand.
type AddEventHandler struct {
	eventRepo domain.EventRepository
}

// NewAddEventHandler creates a new AddEventHandler.
func NewAddEventHandler(eventRepo domain.EventRepository) *AddEventHandler {
	return &AddEventHandler{eventRepo: eventRepo}
}

// Handle executes the AddEventCommand.
func (h *AddEventHandler) Handle(ctx context.Context, cmd AddEventCommand) (*AddEventResult, error) {
	event, err := domain.NewEvent(
		uuid.NewString(),
		cmd.UserID,
		cmd.ScheduleID,
		domain.EventDetails{
			Title:    cmd.Title,
			Location: cmd.Location,
			AllDay:   cmd.AllDay,
			Repeat:   cmd.Repeat,
		},
		cmd.StartTime,
		cmd.EndTime,
	)
	if err != nil {
		return nil, err
	}

	if err := h.eventRepo.Save(ctx, event); err != nil {
		return nil, fmt.Errorf("save event: %w", err)
	}

	return &AddEventResult{EventID: event.ID()}, nil
}

// RemoveEventCommand identifies an event to delete.
type RemoveEventCommand struct {
	UserID     string
	ScheduleID string
	EventID    string
}

// RemoveEventHandler handles the RemoveEventCommand.
type RemoveEventHandler struct {
	eventRepo domain.EventRepository
}

// NewRemoveEventHandler creates a new RemoveEventHandler.
func NewRemoveEventHandler(eventRepo domain.EventRepository) *RemoveEventHandler {
	return &RemoveEventHandler{eventRepo: eventRepo}
}

// Handle deletes the event. Unknown ids return domain.ErrEventNotFound.
func (h *RemoveEventHandler) Handle(ctx context.Context, cmd RemoveEventCommand) error {
	return h.eventRepo.Delete(ctx, cmd.UserID, cmd.ScheduleID, cmd.EventID)
}
