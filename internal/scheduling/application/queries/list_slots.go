package queries

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/akaash02/TaskMaster/internal/scheduling/domain"
)

// SlotDTO is a free time slot as listed to the user.
type SlotDTO struct {
	ID          string
	Custom      bool
	DayOfWeek   string
	StartMinute int
	EndMinute   int
	Start       time.Time
	End         time.Time
}

// ListSlotsQuery contains the parameters for listing slots.
type ListSlotsQuery struct {
	UserID string
}

// ListSlotsHandler handles the ListSlotsQuery.
type ListSlotsHandler struct {
	slotRepo domain.SlotRepository
}

// NewListSlotsHandler creates a new ListSlotsHandler.
func NewListSlotsHandler(slotRepo domain.SlotRepository) *ListSlotsHandler {
	return &ListSlotsHandler{slotRepo: slotRepo}
}

// Handle lists weekly slots Sunday first by start minute, then custom slots
// by start. Weekly slots with an unknown day sort after the known ones.
func (h *ListSlotsHandler) Handle(ctx context.Context, query ListSlotsQuery) ([]SlotDTO, error) {
	slots, err := h.slotRepo.ListByUser(ctx, query.UserID)
	if err != nil {
		return nil, fmt.Errorf("load time slots: %w", err)
	}

	dtos := make([]SlotDTO, 0, len(slots))
	for _, slot := range slots {
		dtos = append(dtos, SlotDTO{
			ID:          slot.ID(),
			Custom:      slot.IsCustom(),
			DayOfWeek:   slot.DayOfWeek(),
			StartMinute: slot.StartMinute(),
			EndMinute:   slot.EndMinute(),
			Start:       slot.Start(),
			End:         slot.End(),
		})
	}

	sort.SliceStable(dtos, func(i, j int) bool {
		a, b := dtos[i], dtos[j]
		if a.Custom != b.Custom {
			return !a.Custom
		}
		if a.Custom {
			return a.Start.Before(b.Start)
		}
		da, db := dayOrder(a.DayOfWeek), dayOrder(b.DayOfWeek)
		if da != db {
			return da < db
		}
		return a.StartMinute < b.StartMinute
	})

	return dtos, nil
}

func dayOrder(name string) int {
	day, err := domain.ParseWeekday(name)
	if err != nil {
		return 7
	}
	return int(day)
}
