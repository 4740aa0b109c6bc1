package cli

import (
	"context"
	"errors"
	"time"

	internalApp "github.com/akaash02/TaskMaster/internal/app"
	scheduleCommands "github.com/akaash02/TaskMaster/internal/scheduling/application/commands"
	scheduleQueries "github.com/akaash02/TaskMaster/internal/scheduling/application/queries"
)

// ErrNotInitialized is returned when a command runs without a container.
var ErrNotInitialized = errors.New("application not initialized - database connection required")

// EventSourceFactory builds the calendar source used by "event import".
type EventSourceFactory func() (scheduleCommands.EventSource, error)

// ImportHandlerFactory builds an import handler around a source.
type ImportHandlerFactory func(source scheduleCommands.EventSource) *scheduleCommands.ImportEventsHandler

// App holds the CLI application dependencies.
type App struct {
	// Command Handlers
	CreateTaskHandler  *scheduleCommands.CreateTaskHandler
	UpdateTaskHandler  *scheduleCommands.UpdateTaskHandler
	RemoveTaskHandler  *scheduleCommands.RemoveTaskHandler
	AddSlotHandler     *scheduleCommands.AddSlotHandler
	RemoveSlotHandler  *scheduleCommands.RemoveSlotHandler
	AddEventHandler    *scheduleCommands.AddEventHandler
	RemoveEventHandler *scheduleCommands.RemoveEventHandler
	RunScheduleHandler *scheduleCommands.RunScheduleHandler

	// Query Handlers
	GetScheduleHandler *scheduleQueries.GetScheduleHandler
	ListSlotsHandler   *scheduleQueries.ListSlotsHandler

	// Calendar import
	ImportHandler ImportHandlerFactory
	CalendarFeed  EventSourceFactory // nil when CalDAV is not configured

	// Current user and schedule (configured per environment)
	UserID     string
	ScheduleID string
	Location   *time.Location
}

// NewApp creates a CLI application backed by the container's handlers.
func NewApp(c *internalApp.Container) *App {
	a := &App{
		CreateTaskHandler:  c.CreateTaskHandler,
		UpdateTaskHandler:  c.UpdateTaskHandler,
		RemoveTaskHandler:  c.RemoveTaskHandler,
		AddSlotHandler:     c.AddSlotHandler,
		RemoveSlotHandler:  c.RemoveSlotHandler,
		AddEventHandler:    c.AddEventHandler,
		RemoveEventHandler: c.RemoveEventHandler,
		RunScheduleHandler: c.RunScheduleHandler,
		GetScheduleHandler: c.GetScheduleHandler,
		ListSlotsHandler:   c.ListSlotsHandler,
		ImportHandler:      c.ImportEventsHandler,
		UserID:             c.Config.UserID,
		ScheduleID:         c.Config.ScheduleID,
		Location:           c.Config.Location,
	}
	if c.Config.CalDAVEnabled() {
		a.SetCalendarFeed(func() (scheduleCommands.EventSource, error) {
			source, err := c.CalDAVSource()
			if err != nil {
				return nil, err
			}
			return source, nil
		})
	}
	return a
}

// SetCalendarFeed updates the CalDAV source factory.
func (a *App) SetCalendarFeed(feed EventSourceFactory) {
	a.CalendarFeed = feed
}

// In returns the configured location, UTC when unset.
func (a *App) In() *time.Location {
	if a.Location == nil {
		return time.UTC
	}
	return a.Location
}

// app is the global CLI application instance
var app *App

// SetApp sets the global CLI application instance.
func SetApp(a *App) {
	app = a
}

// GetApp returns the global CLI application instance.
func GetApp() *App {
	return app
}

// RequireApp returns the global application or ErrNotInitialized.
func RequireApp() (*App, error) {
	if app == nil {
		return nil, ErrNotInitialized
	}
	return app, nil
}

func contextWithStart(ctx context.Context, t time.Time) context.Context {
	return context.WithValue(ctx, startedAtKey{}, t)
}

func startFromContext(ctx context.Context) (time.Time, bool) {
	t, ok := ctx.Value(startedAtKey{}).(time.Time)
	return t, ok
}
