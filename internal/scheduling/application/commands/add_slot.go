package commands

import (
	"context"
	"fmt"
	"time"

	"github.com/akaash02/TaskMaster/internal/scheduling/domain"
	sharedApplication "github.com/akaash02/TaskMaster/internal/shared/application"
	"github.com/google/uuid"
)

// AddSlotCommand describes a weekly slot (DayOfWeek, StartMinute, EndMinute)
// or, when Custom is set, a one-off slot (Start, End).
type AddSlotCommand struct {
	UserID      string
	Custom      bool
	DayOfWeek   string
	StartMinute int
	EndMinute   int
	Start       time.Time
	End         time.Time
}

// AddSlotResult contains the result of adding a slot.
type AddSlotResult struct {
	SlotID string
}

// SlotListInvalidator is implemented by slot repositories that cache a
// user's slot list.
type SlotListInvalidator interface {
	Invalidate(ctx context.Context, userID string)
}

// AddSlotHandler handles the AddSlotCommand.
type AddSlotHandler struct {
	slotRepo domain.SlotRepository
	uow      sharedApplication.UnitOfWork
}

// NewAddSlotHandler creates a new AddSlotHandler.
func NewAddSlotHandler(slotRepo domain.SlotRepository, uow sharedApplication.UnitOfWork) *AddSlotHandler {
	return &AddSlotHandler{
		slotRepo: slotRepo,
		uow:      uow,
	}
}

// Handle validates the slot and stores it unless it overlaps an existing one.
// A caching repository is invalidated again once the transaction commits.
func (h *AddSlotHandler) Handle(ctx context.Context, cmd AddSlotCommand) (*AddSlotResult, error) {
	var (
		slot *domain.FreeTimeSlot
		err  error
	)
	if cmd.Custom {
		slot, err = domain.NewCustomSlot(uuid.NewString(), cmd.UserID, cmd.Start, cmd.End)
	} else {
		slot, err = domain.NewWeeklySlot(uuid.NewString(), cmd.UserID, cmd.DayOfWeek, cmd.StartMinute, cmd.EndMinute)
	}
	if err != nil {
		return nil, err
	}

	err = sharedApplication.WithUnitOfWork(ctx, h.uow, func(txCtx context.Context) error {
		existing, err := h.slotRepo.ListByUser(txCtx, cmd.UserID)
		if err != nil {
			return fmt.Errorf("load time slots: %w", err)
		}
		for _, other := range existing {
			if slot.OverlapsWith(other) {
				return fmt.Errorf("%w: %s", domain.ErrSlotOverlap, other.ID())
			}
		}
		return h.slotRepo.Save(txCtx, slot)
	})
	if err != nil {
		return nil, err
	}

	if invalidator, ok := h.slotRepo.(SlotListInvalidator); ok {
		invalidator.Invalidate(ctx, cmd.UserID)
	}

	return &AddSlotResult{SlotID: slot.ID()}, nil
}
