package persistence

import (
	"database/sql"
	"fmt"
	"time"
)

// Times are stored as RFC 3339 text in both dialects.

func formatTime(t time.Time) string {
	return t.Format(time.RFC3339)
}

func formatNullableTime(t *time.Time) sql.NullString {
	if t == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: formatTime(*t), Valid: true}
}

func parseTime(value string, loc *time.Location) (time.Time, error) {
	t, err := time.Parse(time.RFC3339, value)
	if err != nil {
		return time.Time{}, fmt.Errorf("parse stored time %q: %w", value, err)
	}
	return t.In(loc), nil
}

func parseNullableTime(value sql.NullString, loc *time.Location) (*time.Time, error) {
	if !value.Valid || value.String == "" {
		return nil, nil
	}
	t, err := parseTime(value.String, loc)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

func locationOrLocal(loc *time.Location) *time.Location {
	if loc == nil {
		return time.Local
	}
	return loc
}
