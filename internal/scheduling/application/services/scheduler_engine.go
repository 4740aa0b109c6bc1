package services

import (
	"log/slog"
	"sort"
	"time"

	schedulingDomain "github.com/akaash02/TaskMaster/internal/scheduling/domain"
)

// Reasons reported for tasks that could not be placed.
const (
	ReasonNoSlots           = "no free time slots"
	ReasonNoApplicableSlot  = "no applicable slot before due date"
	ReasonInsufficientSpace = "slot capacity insufficient"
	ReasonExceedsSlot       = "candidate exceeds slot end"
	ReasonPastDueDate       = "candidate ends after due date"
	ReasonEventConflict     = "candidate conflicts with an event"
	ReasonAlreadyBooked     = "candidate overlaps a task booked in this run"
	ReasonInvalidTaskLength = "task duration must be positive"
)

// Assignment is a scheduling decision for one task.
type Assignment struct {
	TaskID    string
	Title     string
	SlotID    string
	StartTime time.Time
	EndTime   time.Time
}

// Unscheduled records a task that found no slot in this run.
type Unscheduled struct {
	TaskID string
	Title  string
	Reason string
}

// Plan is the outcome of one scheduling pass.
type Plan struct {
	Assignments []Assignment
	Unscheduled []Unscheduled
}

// SchedulerConfig contains configuration for the scheduler.
type SchedulerConfig struct {
	SlotPolicy           schedulingDomain.SlotPolicy
	PreventDoubleBooking bool // also check intervals booked earlier in the same run
}

// DefaultSchedulerConfig returns a default configuration.
func DefaultSchedulerConfig() SchedulerConfig {
	return SchedulerConfig{
		SlotPolicy:           schedulingDomain.SlotPolicyBeforeDueDay,
		PreventDoubleBooking: true,
	}
}

// SchedulerEngine assigns tasks to free time slots.
type SchedulerEngine struct {
	config SchedulerConfig
	logger *slog.Logger
}

// NewSchedulerEngine creates a new scheduler engine.
func NewSchedulerEngine(config SchedulerConfig, logger *slog.Logger) *SchedulerEngine {
	if logger == nil {
		logger = slog.Default()
	}
	if config.SlotPolicy == "" {
		config.SlotPolicy = schedulingDomain.SlotPolicyBeforeDueDay
	}
	return &SchedulerEngine{
		config: config,
		logger: logger,
	}
}

// Config returns the engine configuration.
func (e *SchedulerEngine) Config() SchedulerConfig {
	return e.config
}

// Plan places every task into the first slot that fits, highest priority
// first. Inputs are not modified.
func (e *SchedulerEngine) Plan(
	tasks []*schedulingDomain.Task,
	slots []*schedulingDomain.FreeTimeSlot,
	events []*schedulingDomain.Event,
) *Plan {
	plan := &Plan{
		Assignments: make([]Assignment, 0, len(tasks)),
		Unscheduled: make([]Unscheduled, 0),
	}

	run := newPlacementRun(e.config, slots, events, e.logger)

	for _, task := range SortTasks(tasks) {
		assignment, reason := run.place(task)
		if assignment == nil {
			plan.Unscheduled = append(plan.Unscheduled, Unscheduled{
				TaskID: task.ID(),
				Title:  task.Title(),
				Reason: reason,
			})
			continue
		}
		plan.Assignments = append(plan.Assignments, *assignment)
	}

	return plan
}

// SortTasks orders tasks by priority (descending), due date (ascending) and
// difficulty (ascending). Ties keep their input order.
func SortTasks(tasks []*schedulingDomain.Task) []*schedulingDomain.Task {
	sorted := make([]*schedulingDomain.Task, len(tasks))
	copy(sorted, tasks)

	sort.SliceStable(sorted, func(i, j int) bool {
		a, b := sorted[i], sorted[j]
		if a.Priority() != b.Priority() {
			return a.Priority() > b.Priority()
		}
		if !a.DueDate().Equal(b.DueDate()) {
			return a.DueDate().Before(b.DueDate())
		}
		return a.Difficulty() < b.Difficulty()
	})

	return sorted
}

// occurrenceKey identifies one concrete occurrence of a slot. Weekly slots
// resolve to a different date per due-date week.
type occurrenceKey struct {
	slotID string
	date   string
}

// placementRun holds the working copy of slot availability for one pass.
type placementRun struct {
	config       SchedulerConfig
	slots        []*schedulingDomain.FreeTimeSlot
	events       []*schedulingDomain.Event
	logger       *slog.Logger
	weeklyCursor map[occurrenceKey]int
	customCursor map[string]time.Time
	booked       []schedulingDomain.TimeRange
	invalidSlots map[string]struct{}
}

func newPlacementRun(
	config SchedulerConfig,
	slots []*schedulingDomain.FreeTimeSlot,
	events []*schedulingDomain.Event,
	logger *slog.Logger,
) *placementRun {
	return &placementRun{
		config:       config,
		slots:        slots,
		events:       events,
		logger:       logger,
		weeklyCursor: make(map[occurrenceKey]int),
		customCursor: make(map[string]time.Time),
		invalidSlots: make(map[string]struct{}),
	}
}

// place returns the accepted assignment for task, or the reason of the last
// rejection when no slot accepts it.
func (r *placementRun) place(task *schedulingDomain.Task) (*Assignment, string) {
	if task.DurationMinutes() <= 0 {
		return nil, ReasonInvalidTaskLength
	}
	if len(r.slots) == 0 {
		return nil, ReasonNoSlots
	}

	reason := ReasonNoApplicableSlot
	for _, slot := range r.slots {
		applicable, err := schedulingDomain.IsSlotApplicable(slot, task.DueDate(), r.config.SlotPolicy)
		if err != nil {
			r.reportInvalidSlot(slot, err)
			continue
		}
		if !applicable {
			continue
		}

		var candidate schedulingDomain.TimeRange
		var rejection string
		var commit func()
		if slot.IsCustom() {
			candidate, rejection, commit = r.tryCustom(slot, task)
		} else {
			day, err := slot.Weekday()
			if err != nil {
				r.reportInvalidSlot(slot, err)
				continue
			}
			candidate, rejection, commit = r.tryWeekly(slot, day, task)
		}
		if rejection != "" {
			reason = rejection
			continue
		}

		if conflict := schedulingDomain.FirstConflict(candidate, r.events); conflict != nil {
			r.logger.Debug("slot rejected: event conflict",
				"task_id", task.ID(),
				"slot_id", slot.ID(),
				"event_id", conflict.ID(),
			)
			reason = ReasonEventConflict
			continue
		}
		if r.config.PreventDoubleBooking && r.isBooked(candidate) {
			reason = ReasonAlreadyBooked
			continue
		}

		commit()
		r.booked = append(r.booked, candidate)

		return &Assignment{
			TaskID:    task.ID(),
			Title:     task.Title(),
			SlotID:    slot.ID(),
			StartTime: candidate.Start,
			EndTime:   candidate.End,
		}, ""
	}

	return nil, reason
}

func (r *placementRun) tryWeekly(
	slot *schedulingDomain.FreeTimeSlot,
	day time.Weekday,
	task *schedulingDomain.Task,
) (schedulingDomain.TimeRange, string, func()) {
	due := task.DueDate()
	occurrence := schedulingDomain.ResolveSlotDate(day, due, 0)
	key := occurrenceKey{slotID: slot.ID(), date: occurrence.Format(time.DateOnly)}

	cursor, ok := r.weeklyCursor[key]
	if !ok {
		cursor = slot.StartMinute()
	}

	duration := task.DurationMinutes()
	if slot.EndMinute()-cursor < duration {
		return schedulingDomain.TimeRange{}, ReasonInsufficientSpace, nil
	}

	start := schedulingDomain.ResolveSlotDate(day, due, cursor)
	end := start.Add(task.Duration())
	slotEnd := schedulingDomain.ResolveSlotDate(day, due, slot.EndMinute())
	if end.After(slotEnd) {
		return schedulingDomain.TimeRange{}, ReasonExceedsSlot, nil
	}
	if r.config.SlotPolicy == schedulingDomain.SlotPolicyOnOrBeforeDueDay && end.After(due) {
		return schedulingDomain.TimeRange{}, ReasonPastDueDate, nil
	}

	commit := func() {
		next := schedulingDomain.MinuteOfDay(end)
		if !end.Before(slotEnd) {
			next = slot.EndMinute()
		}
		r.weeklyCursor[key] = next
	}
	return schedulingDomain.TimeRange{Start: start, End: end}, "", commit
}

func (r *placementRun) tryCustom(
	slot *schedulingDomain.FreeTimeSlot,
	task *schedulingDomain.Task,
) (schedulingDomain.TimeRange, string, func()) {
	cursor, ok := r.customCursor[slot.ID()]
	if !ok {
		cursor = slot.Start()
	}

	if slot.End().Sub(cursor) < task.Duration() {
		return schedulingDomain.TimeRange{}, ReasonInsufficientSpace, nil
	}

	start := cursor
	end := start.Add(task.Duration())
	if end.After(task.DueDate()) {
		return schedulingDomain.TimeRange{}, ReasonPastDueDate, nil
	}

	commit := func() {
		r.customCursor[slot.ID()] = end
	}
	return schedulingDomain.TimeRange{Start: start, End: end}, "", commit
}

func (r *placementRun) isBooked(candidate schedulingDomain.TimeRange) bool {
	for _, booked := range r.booked {
		if candidate.Overlaps(booked) {
			return true
		}
	}
	return false
}

func (r *placementRun) reportInvalidSlot(slot *schedulingDomain.FreeTimeSlot, err error) {
	if _, seen := r.invalidSlots[slot.ID()]; seen {
		return
	}
	r.invalidSlots[slot.ID()] = struct{}{}

	r.logger.Error("invalid day of week in time slot",
		"slot_id", slot.ID(),
		"day_of_week", slot.DayOfWeek(),
		"error", err,
	)
}
