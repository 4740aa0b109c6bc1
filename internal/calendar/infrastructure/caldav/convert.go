package caldav

import (
	"log/slog"
	"strings"
	"time"

	"github.com/akaash02/TaskMaster/internal/scheduling/domain"
	"github.com/emersion/go-ical"
)

// converter turns VEVENTs into schedule events inside an import window.
type converter struct {
	userID     string
	scheduleID string
	from, to   time.Time
	location   *time.Location
	logger     *slog.Logger
}

func (c converter) calendarEvents(cal *ical.Calendar) []*domain.Event {
	var events []*domain.Event
	for _, vevent := range cal.Events() {
		if event, ok := c.event(vevent); ok {
			events = append(events, event)
		}
	}
	return events
}

// event converts one VEVENT. Cancelled and transparent (free) events do not
// block time and are skipped, as are events outside the window.
func (c converter) event(vevent ical.Event) (*domain.Event, bool) {
	uid, _ := vevent.Props.Text(ical.PropUID)
	if uid == "" {
		c.logger.Warn("skipping calendar event without uid")
		return nil, false
	}

	if status, _ := vevent.Props.Text(ical.PropStatus); strings.EqualFold(status, "CANCELLED") {
		return nil, false
	}
	if transp, _ := vevent.Props.Text(ical.PropTransparency); strings.EqualFold(transp, "TRANSPARENT") {
		return nil, false
	}

	start, err := vevent.DateTimeStart(c.location)
	if err != nil {
		c.logger.Warn("skipping calendar event with invalid start", "uid", uid, "error", err)
		return nil, false
	}
	end, err := vevent.DateTimeEnd(c.location)
	if err != nil {
		c.logger.Warn("skipping calendar event with invalid end", "uid", uid, "error", err)
		return nil, false
	}

	allDay := false
	if prop := vevent.Props.Get(ical.PropDateTimeStart); prop != nil && prop.ValueType() == ical.ValueDate {
		allDay = true
		if !end.After(start) {
			end = start.AddDate(0, 0, 1)
		}
	}

	if !start.Before(c.to) || !end.After(c.from) {
		return nil, false
	}

	title, _ := vevent.Props.Text(ical.PropSummary)
	location, _ := vevent.Props.Text(ical.PropLocation)
	var repeat string
	if prop := vevent.Props.Get(ical.PropRecurrenceRule); prop != nil {
		repeat = prop.Value
	}

	event, err := domain.NewEvent(uid, c.userID, c.scheduleID, domain.EventDetails{
		Title:    title,
		Location: location,
		AllDay:   allDay,
		Repeat:   repeat,
	}, start.In(c.location), end.In(c.location))
	if err != nil {
		c.logger.Warn("skipping calendar event", "uid", uid, "error", err)
		return nil, false
	}
	return event, true
}
