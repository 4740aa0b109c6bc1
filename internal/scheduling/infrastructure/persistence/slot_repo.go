package persistence

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/akaash02/TaskMaster/internal/scheduling/domain"
	"github.com/akaash02/TaskMaster/internal/shared/infrastructure/database"
)

// SlotRepository implements domain.SlotRepository on SQLite or PostgreSQL.
type SlotRepository struct {
	conn database.Connection
	loc  *time.Location
}

// NewSlotRepository creates a slot repository. Custom slot bounds are
// returned in loc.
func NewSlotRepository(conn database.Connection, loc *time.Location) *SlotRepository {
	return &SlotRepository{conn: conn, loc: locationOrLocal(loc)}
}

func (r *SlotRepository) exec(ctx context.Context) database.Executor {
	return database.ExecutorFromContext(ctx, r.conn)
}

// Save creates or replaces a slot.
func (r *SlotRepository) Save(ctx context.Context, slot *domain.FreeTimeSlot) error {
	query := r.conn.Driver().Rebind(`
		INSERT INTO free_time_slots (user_id, id, is_custom, day_of_week, start_minute, end_minute, start_at, end_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT (user_id, id) DO UPDATE SET
			is_custom = excluded.is_custom,
			day_of_week = excluded.day_of_week,
			start_minute = excluded.start_minute,
			end_minute = excluded.end_minute,
			start_at = excluded.start_at,
			end_at = excluded.end_at
	`)

	var (
		day                    sql.NullString
		startMinute, endMinute sql.NullInt64
		startAt, endAt         sql.NullString
	)
	if slot.IsCustom() {
		startAt = sql.NullString{String: formatTime(slot.Start()), Valid: true}
		endAt = sql.NullString{String: formatTime(slot.End()), Valid: true}
	} else {
		day = sql.NullString{String: slot.DayOfWeek(), Valid: true}
		startMinute = sql.NullInt64{Int64: int64(slot.StartMinute()), Valid: true}
		endMinute = sql.NullInt64{Int64: int64(slot.EndMinute()), Valid: true}
	}

	_, err := r.exec(ctx).Exec(ctx, query,
		slot.UserID(), slot.ID(), slot.IsCustom(),
		day, startMinute, endMinute, startAt, endAt,
	)
	if err != nil {
		return fmt.Errorf("save slot %s: %w", slot.ID(), err)
	}
	return nil
}

// ListByUser returns the user's slots in creation order.
func (r *SlotRepository) ListByUser(ctx context.Context, userID string) ([]*domain.FreeTimeSlot, error) {
	query := r.conn.Driver().Rebind(`
		SELECT id, is_custom, day_of_week, start_minute, end_minute, start_at, end_at
		FROM free_time_slots
		WHERE user_id = ?
		ORDER BY created_at, id
	`)

	rows, err := r.exec(ctx).Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("list slots: %w", err)
	}
	defer rows.Close()

	slots := make([]*domain.FreeTimeSlot, 0)
	for rows.Next() {
		var (
			id                     string
			isCustom               bool
			day                    sql.NullString
			startMinute, endMinute sql.NullInt64
			startAt, endAt         sql.NullString
		)
		if err := rows.Scan(&id, &isCustom, &day, &startMinute, &endMinute, &startAt, &endAt); err != nil {
			return nil, fmt.Errorf("list slots: %w", err)
		}

		if !isCustom {
			slots = append(slots, domain.RehydrateWeeklySlot(id, userID, day.String, int(startMinute.Int64), int(endMinute.Int64)))
			continue
		}

		start, err := parseTime(startAt.String, r.loc)
		if err != nil {
			return nil, fmt.Errorf("slot %s: %w", id, err)
		}
		end, err := parseTime(endAt.String, r.loc)
		if err != nil {
			return nil, fmt.Errorf("slot %s: %w", id, err)
		}
		slots = append(slots, domain.RehydrateCustomSlot(id, userID, start, end))
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list slots: %w", err)
	}
	return slots, nil
}

// Delete removes a slot.
func (r *SlotRepository) Delete(ctx context.Context, userID, slotID string) error {
	query := r.conn.Driver().Rebind(`DELETE FROM free_time_slots WHERE user_id = ? AND id = ?`)

	result, err := r.exec(ctx).Exec(ctx, query, userID, slotID)
	if err != nil {
		return fmt.Errorf("delete slot %s: %w", slotID, err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete slot %s: %w", slotID, err)
	}
	if affected == 0 {
		return fmt.Errorf("%w: %s", domain.ErrSlotNotFound, slotID)
	}
	return nil
}
