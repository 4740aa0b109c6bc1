package caldav

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/akaash02/TaskMaster/internal/scheduling/domain"
	"github.com/akaash02/TaskMaster/internal/shared/infrastructure/security"
	"github.com/emersion/go-ical"
)

// FileSource reads events from a local iCalendar (.ics) file.
type FileSource struct {
	path     string
	location *time.Location
	logger   *slog.Logger
}

// NewFileSource validates path and creates a file-backed event source.
func NewFileSource(path string, loc *time.Location, logger *slog.Logger) (*FileSource, error) {
	cleanPath, err := security.ValidateFilePath(path)
	if err != nil {
		return nil, err
	}
	if logger == nil {
		logger = slog.Default()
	}
	if loc == nil {
		loc = time.Local
	}
	return &FileSource{path: cleanPath, location: loc, logger: logger}, nil
}

// FetchEvents parses every calendar in the file.
func (s *FileSource) FetchEvents(ctx context.Context, userID, scheduleID string, from, to time.Time) ([]*domain.Event, error) {
	f, err := security.SafeOpen(s.path)
	if err != nil {
		return nil, fmt.Errorf("open calendar file: %w", err)
	}
	defer f.Close()

	return parseEvents(f, converter{
		userID:     userID,
		scheduleID: scheduleID,
		from:       from,
		to:         to,
		location:   s.location,
		logger:     s.logger,
	})
}

// parseEvents decodes iCalendar data and converts its events.
func parseEvents(r io.Reader, conv converter) ([]*domain.Event, error) {
	dec := ical.NewDecoder(r)

	var events []*domain.Event
	for {
		cal, err := dec.Decode()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("decode calendar: %w", err)
		}
		events = append(events, conv.calendarEvents(cal)...)
	}
	return events, nil
}
