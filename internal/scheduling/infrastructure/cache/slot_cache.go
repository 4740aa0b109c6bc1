package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/akaash02/TaskMaster/internal/scheduling/domain"
	"github.com/redis/go-redis/v9"
)

// DefaultSlotTTL bounds how stale a cached slot list can get when a write
// bypasses this cache.
const DefaultSlotTTL = 10 * time.Minute

// SlotCache is a cache-aside decorator for domain.SlotRepository. Reads are
// served from Redis when possible; writes go to the wrapped repository and
// invalidate the user's entry. A write made inside a transaction must be
// followed by Invalidate after the commit, since a reader can re-cache the
// old rows before then. Redis failures are logged and fall through.
type SlotCache struct {
	next   domain.SlotRepository
	client redis.Cmdable
	ttl    time.Duration
	logger *slog.Logger
}

// NewSlotCache wraps next with a Redis cache.
func NewSlotCache(next domain.SlotRepository, client redis.Cmdable, ttl time.Duration, logger *slog.Logger) *SlotCache {
	if logger == nil {
		logger = slog.Default()
	}
	if ttl <= 0 {
		ttl = DefaultSlotTTL
	}
	return &SlotCache{next: next, client: client, ttl: ttl, logger: logger}
}

func slotsKey(userID string) string {
	return "taskmaster:slots:" + userID
}

// Save stores the slot and drops the user's cached list.
func (c *SlotCache) Save(ctx context.Context, slot *domain.FreeTimeSlot) error {
	if err := c.next.Save(ctx, slot); err != nil {
		return err
	}
	c.Invalidate(ctx, slot.UserID())
	return nil
}

// Delete removes the slot and drops the user's cached list.
func (c *SlotCache) Delete(ctx context.Context, userID, slotID string) error {
	if err := c.next.Delete(ctx, userID, slotID); err != nil {
		return err
	}
	c.Invalidate(ctx, userID)
	return nil
}

// ListByUser returns the cached slot list, loading it on a miss.
func (c *SlotCache) ListByUser(ctx context.Context, userID string) ([]*domain.FreeTimeSlot, error) {
	key := slotsKey(userID)

	raw, err := c.client.Get(ctx, key).Bytes()
	switch {
	case err == nil:
		slots, decodeErr := decodeSlots(userID, raw)
		if decodeErr == nil {
			return slots, nil
		}
		c.logger.Warn("discarding corrupt slot cache entry", "user_id", userID, "error", decodeErr)
	case !errors.Is(err, redis.Nil):
		c.logger.Warn("slot cache read failed", "user_id", userID, "error", err)
	}

	slots, err := c.next.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	payload, err := encodeSlots(slots)
	if err != nil {
		c.logger.Warn("slot cache encode failed", "user_id", userID, "error", err)
		return slots, nil
	}
	if err := c.client.Set(ctx, key, payload, c.ttl).Err(); err != nil {
		c.logger.Warn("slot cache write failed", "user_id", userID, "error", err)
	}
	return slots, nil
}

// Invalidate drops the user's cached slot list.
func (c *SlotCache) Invalidate(ctx context.Context, userID string) {
	if err := c.client.Del(ctx, slotsKey(userID)).Err(); err != nil {
		c.logger.Warn("slot cache invalidation failed", "user_id", userID, "error", err)
	}
}

type slotRecord struct {
	ID          string     `json:"id"`
	IsCustom    bool       `json:"is_custom"`
	DayOfWeek   string     `json:"day_of_week,omitempty"`
	StartMinute int        `json:"start_minute,omitempty"`
	EndMinute   int        `json:"end_minute,omitempty"`
	Start       *time.Time `json:"start,omitempty"`
	End         *time.Time `json:"end,omitempty"`
}

func encodeSlots(slots []*domain.FreeTimeSlot) ([]byte, error) {
	records := make([]slotRecord, 0, len(slots))
	for _, slot := range slots {
		record := slotRecord{ID: slot.ID(), IsCustom: slot.IsCustom()}
		if slot.IsCustom() {
			start, end := slot.Start(), slot.End()
			record.Start, record.End = &start, &end
		} else {
			record.DayOfWeek = slot.DayOfWeek()
			record.StartMinute = slot.StartMinute()
			record.EndMinute = slot.EndMinute()
		}
		records = append(records, record)
	}
	return json.Marshal(records)
}

func decodeSlots(userID string, raw []byte) ([]*domain.FreeTimeSlot, error) {
	var records []slotRecord
	if err := json.Unmarshal(raw, &records); err != nil {
		return nil, fmt.Errorf("unmarshal cached slots: %w", err)
	}

	slots := make([]*domain.FreeTimeSlot, 0, len(records))
	for _, record := range records {
		if !record.IsCustom {
			slots = append(slots, domain.RehydrateWeeklySlot(record.ID, userID, record.DayOfWeek, record.StartMinute, record.EndMinute))
			continue
		}
		if record.Start == nil || record.End == nil {
			return nil, fmt.Errorf("cached custom slot %s has no bounds", record.ID)
		}
		slots = append(slots, domain.RehydrateCustomSlot(record.ID, userID, *record.Start, *record.End))
	}
	return slots, nil
}
