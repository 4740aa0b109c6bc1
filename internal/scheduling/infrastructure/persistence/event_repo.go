package persistence

import (
	"context"
	"fmt"
	"time"

	"github.com/akaash02/TaskMaster/internal/scheduling/domain"
	"github.com/akaash02/TaskMaster/internal/shared/infrastructure/database"
)

// EventRepository implements domain.EventRepository on SQLite or PostgreSQL.
type EventRepository struct {
	conn database.Connection
	loc  *time.Location
}

// NewEventRepository creates an event repository. Stored times are returned in loc.
func NewEventRepository(conn database.Connection, loc *time.Location) *EventRepository {
	return &EventRepository{conn: conn, loc: locationOrLocal(loc)}
}

func (r *EventRepository) exec(ctx context.Context) database.Executor {
	return database.ExecutorFromContext(ctx, r.conn)
}

// Save creates or replaces an event.
func (r *EventRepository) Save(ctx context.Context, event *domain.Event) error {
	query := r.conn.Driver().Rebind(`
		INSERT INTO events (user_id, schedule_id, id, title, location, all_day, repeat_rule, start_time, end_time)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT (user_id, schedule_id, id) DO UPDATE SET
			title = excluded.title,
			location = excluded.location,
			all_day = excluded.all_day,
			repeat_rule = excluded.repeat_rule,
			start_time = excluded.start_time,
			end_time = excluded.end_time
	`)

	_, err := r.exec(ctx).Exec(ctx, query,
		event.UserID(),
		event.ScheduleID(),
		event.ID(),
		event.Title(),
		event.Location(),
		event.AllDay(),
		event.Repeat(),
		formatTime(event.StartTime()),
		formatTime(event.EndTime()),
	)
	if err != nil {
		return fmt.Errorf("save event %s: %w", event.ID(), err)
	}
	return nil
}

// ListBySchedule returns the schedule's events ordered by start time.
func (r *EventRepository) ListBySchedule(ctx context.Context, userID, scheduleID string) ([]*domain.Event, error) {
	query := r.conn.Driver().Rebind(`
		SELECT id, title, location, all_day, repeat_rule, start_time, end_time
		FROM events
		WHERE user_id = ? AND schedule_id = ?
		ORDER BY start_time, id
	`)

	rows, err := r.exec(ctx).Query(ctx, query, userID, scheduleID)
	if err != nil {
		return nil, fmt.Errorf("list events: %w", err)
	}
	defer rows.Close()

	events := make([]*domain.Event, 0)
	for rows.Next() {
		var (
			id, startTime, endTime string
			details                domain.EventDetails
		)
		if err := rows.Scan(&id, &details.Title, &details.Location, &details.AllDay, &details.Repeat, &startTime, &endTime); err != nil {
			return nil, fmt.Errorf("list events: %w", err)
		}

		start, err := parseTime(startTime, r.loc)
		if err != nil {
			return nil, fmt.Errorf("event %s: %w", id, err)
		}
		end, err := parseTime(endTime, r.loc)
		if err != nil {
			return nil, fmt.Errorf("event %s: %w", id, err)
		}
		events = append(events, domain.RehydrateEvent(id, userID, scheduleID, details, start, end))
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list events: %w", err)
	}
	return events, nil
}

// Delete removes an event.
func (r *EventRepository) Delete(ctx context.Context, userID, scheduleID, eventID string) error {
	query := r.conn.Driver().Rebind(`DELETE FROM events WHERE user_id = ? AND schedule_id = ? AND id = ?`)

	result, err := r.exec(ctx).Exec(ctx, query, userID, scheduleID, eventID)
	if err != nil {
		return fmt.Errorf("delete event %s: %w", eventID, err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete event %s: %w", eventID, err)
	}
	if affected == 0 {
		return fmt.Errorf("%w: %s", domain.ErrEventNotFound, eventID)
	}
	return nil
}
