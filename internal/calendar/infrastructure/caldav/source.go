// Package caldav imports committed events from CalDAV calendars and .ics
// files into a schedule.
package caldav

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/akaash02/TaskMaster/internal/scheduling/domain"
	"github.com/emersion/go-webdav"
	"github.com/emersion/go-webdav/caldav"
	"github.com/sony/gobreaker/v2"
)

// Common CalDAV server URLs
const (
	AppleCalDAVURL    = "https://caldav.icloud.com"
	FastmailCalDAVURL = "https://caldav.fastmail.com"
)

var (
	// ErrCalendarUnavailable is returned while the circuit breaker is open.
	ErrCalendarUnavailable = errors.New("calendar server unavailable")
	// ErrNoCalendars is returned when the account exposes no calendar.
	ErrNoCalendars = errors.New("no calendars found")
)

// calendarClient is the part of *caldav.Client the source needs.
type calendarClient interface {
	FindCurrentUserPrincipal(ctx context.Context) (string, error)
	FindCalendarHomeSet(ctx context.Context, principal string) (string, error)
	FindCalendars(ctx context.Context, calendarHomeSet string) ([]caldav.Calendar, error)
	QueryCalendar(ctx context.Context, calendar string, query *caldav.CalendarQuery) ([]caldav.CalendarObject, error)
}

// Config configures a CalDAV event source.
type Config struct {
	BaseURL      string
	Username     string
	Password     string // app-specific password for Apple
	CalendarPath string // empty selects the first calendar of the account
	Timeout      time.Duration

	// Consecutive failures before the breaker opens, and how long it stays open.
	MaxFailures uint32
	OpenTimeout time.Duration
}

// Source reads events of one CalDAV calendar.
type Source struct {
	client       calendarClient
	calendarPath string
	breaker      *gobreaker.CircuitBreaker[[]caldav.CalendarObject]
	location     *time.Location
	logger       *slog.Logger
}

// NewSource creates a CalDAV event source. Times are converted to loc.
func NewSource(cfg Config, loc *time.Location, logger *slog.Logger) (*Source, error) {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	httpClient := webdav.HTTPClientWithBasicAuth(&http.Client{Timeout: timeout}, cfg.Username, cfg.Password)

	client, err := caldav.NewClient(httpClient, cfg.BaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to create caldav client: %w", err)
	}
	return newSource(client, cfg, loc, logger), nil
}

func newSource(client calendarClient, cfg Config, loc *time.Location, logger *slog.Logger) *Source {
	if logger == nil {
		logger = slog.Default()
	}
	if loc == nil {
		loc = time.Local
	}
	maxFailures := cfg.MaxFailures
	if maxFailures == 0 {
		maxFailures = 3
	}

	settings := gobreaker.Settings{
		Name:    "caldav",
		Timeout: cfg.OpenTimeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= maxFailures
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			logger.Info("circuit breaker state changed",
				"breaker", name,
				"from", from.String(),
				"to", to.String(),
			)
		},
	}

	return &Source{
		client:       client,
		calendarPath: cfg.CalendarPath,
		breaker:      gobreaker.NewCircuitBreaker[[]caldav.CalendarObject](settings),
		location:     loc,
		logger:       logger,
	}
}

// FetchEvents returns the calendar's events overlapping [from, to) as events
// of the given schedule, keyed by their iCalendar UID.
func (s *Source) FetchEvents(ctx context.Context, userID, scheduleID string, from, to time.Time) ([]*domain.Event, error) {
	objects, err := s.breaker.Execute(func() ([]caldav.CalendarObject, error) {
		return s.query(ctx, from, to)
	})
	if err != nil {
		if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
			return nil, fmt.Errorf("%w: %w", ErrCalendarUnavailable, err)
		}
		return nil, err
	}

	conv := converter{
		userID:     userID,
		scheduleID: scheduleID,
		from:       from,
		to:         to,
		location:   s.location,
		logger:     s.logger,
	}
	events := make([]*domain.Event, 0, len(objects))
	for _, obj := range objects {
		if obj.Data == nil {
			continue
		}
		events = append(events, conv.calendarEvents(obj.Data)...)
	}
	return events, nil
}

func (s *Source) query(ctx context.Context, from, to time.Time) ([]caldav.CalendarObject, error) {
	calPath, err := s.findCalendarPath(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to find calendar: %w", err)
	}

	query := &caldav.CalendarQuery{
		CompRequest: caldav.CalendarCompRequest{
			Name:  "VCALENDAR",
			Props: []string{"VERSION"},
			Comps: []caldav.CalendarCompRequest{
				{
					Name:  "VEVENT",
					Props: []string{"SUMMARY", "DTSTART", "DTEND", "DURATION", "UID", "LOCATION", "RRULE", "STATUS", "TRANSP"},
				},
			},
		},
		CompFilter: caldav.CompFilter{
			Name: "VCALENDAR",
			Comps: []caldav.CompFilter{
				{
					Name:  "VEVENT",
					Start: from.UTC(),
					End:   to.UTC(),
				},
			},
		},
	}

	objects, err := s.client.QueryCalendar(ctx, calPath, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query calendar: %w", err)
	}
	return objects, nil
}

func (s *Source) findCalendarPath(ctx context.Context) (string, error) {
	if s.calendarPath != "" {
		return s.calendarPath, nil
	}

	principal, err := s.client.FindCurrentUserPrincipal(ctx)
	if err != nil {
		return "", fmt.Errorf("failed to find principal: %w", err)
	}

	homeSet, err := s.client.FindCalendarHomeSet(ctx, principal)
	if err != nil {
		return "", fmt.Errorf("failed to find calendar home set: %w", err)
	}

	cals, err := s.client.FindCalendars(ctx, homeSet)
	if err != nil {
		return "", fmt.Errorf("failed to find calendars: %w", err)
	}
	if len(cals) == 0 {
		return "", ErrNoCalendars
	}

	// First calendar is the account default.
	return cals[0].Path, nil
}
