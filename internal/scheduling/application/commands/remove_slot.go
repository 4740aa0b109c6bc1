package commands

import (
	"context"

	"github.com/akaash02/TaskMaster/internal/scheduling/domain"
)

// RemoveSlotCommand identifies a slot to delete.
type RemoveSlotCommand struct {
	UserID string
	SlotID string
}

// RemoveSlotHandler handles the RemoveSlotCommand.
type RemoveSlotHandler struct {
	slotRepo domain.SlotRepository
}

// NewRemoveSlotHandler creates a new RemoveSlotHandler.
func NewRemoveSlotHandler(slotRepo domain.SlotRepository) *RemoveSlotHandler {
	return &RemoveSlotHandler{slotRepo: slotRepo}
}

// Handle deletes the slot. Unknown ids return domain.ErrSlotNotFound.
func (h *RemoveSlotHandler) Handle(ctx context.Context, cmd RemoveSlotCommand) error {
	return h.slotRepo.Delete(ctx, cmd.UserID, cmd.SlotID)
}
