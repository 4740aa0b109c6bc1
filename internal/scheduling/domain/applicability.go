package domain

import (
	"fmt"
	"time"
)

// SlotPolicy decides which weekly slot occurrences may serve a task.
type SlotPolicy string

const (
	// SlotPolicyBeforeDueDay admits weekly slots whose weekday comes strictly
	// before the due date's weekday in the same Sunday-based week. A task due
	// on a Sunday can never use a weekly slot under this policy.
	SlotPolicyBeforeDueDay SlotPolicy = "before_due_day"

	// SlotPolicyOnOrBeforeDueDay also admits slots on the due date's weekday.
	// The scheduler then rejects candidates ending after the due date.
	SlotPolicyOnOrBeforeDueDay SlotPolicy = "on_or_before_due_day"
)

// ParseSlotPolicy maps a configuration value to a SlotPolicy.
func ParseSlotPolicy(value string) (SlotPolicy, error) {
	switch SlotPolicy(value) {
	case "", SlotPolicyBeforeDueDay:
		return SlotPolicyBeforeDueDay, nil
	case SlotPolicyOnOrBeforeDueDay:
		return SlotPolicyOnOrBeforeDueDay, nil
	default:
		return "", fmt.Errorf("unknown slot policy %q", value)
	}
}

// IsSlotApplicable reports whether slot can host a task due at dueDate.
// Custom slots are always applicable; their fit is decided on absolute time.
func IsSlotApplicable(slot *FreeTimeSlot, dueDate time.Time, policy SlotPolicy) (bool, error) {
	if slot.IsCustom() {
		return true, nil
	}

	day, err := slot.Weekday()
	if err != nil {
		return false, err
	}

	dueDay := WeekdayIndex(dueDate)
	if policy == SlotPolicyOnOrBeforeDueDay {
		return int(day) <= dueDay, nil
	}
	return int(day) < dueDay, nil
}
