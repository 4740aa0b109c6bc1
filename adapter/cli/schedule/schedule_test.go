package schedule

import (
	"bytes"
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/akaash02/TaskMaster/adapter/cli"
	internalApp "github.com/akaash02/TaskMaster/internal/app"
	"github.com/akaash02/TaskMaster/internal/scheduling/application/commands"
	"github.com/akaash02/TaskMaster/internal/scheduling/application/services"
	"github.com/akaash02/TaskMaster/pkg/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupLocalModeTestApp(t *testing.T) *cli.App {
	t.Helper()

	cfg := &config.Config{
		AppEnv:               "development",
		UserID:               config.DefaultUserID,
		ScheduleID:           config.DefaultScheduleID,
		Location:             time.UTC,
		SlotPolicy:           config.SlotPolicyBeforeDueDay,
		PreventDoubleBooking: true,
		SQLitePath:           ":memory:",
		LocalMode:            true,
	}
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	container, err := internalApp.NewContainer(context.Background(), cfg, logger)
	require.NoError(t, err)
	t.Cleanup(container.Close)

	app := cli.NewApp(container)
	cli.SetApp(app)
	t.Cleanup(func() { cli.SetApp(nil) })
	return app
}

func execute(args ...string) (string, error) {
	dryRun = false

	var out bytes.Buffer
	Cmd.SetOut(&out)
	Cmd.SetErr(&out)
	Cmd.SetArgs(args)
	err := Cmd.ExecuteContext(context.Background())
	return out.String(), err
}

// seedConflict declares Wednesday 09:00-10:00 free, blocks 09:30-09:45 with
// an event and adds a one hour task due Friday 2024-06-07.
func seedConflict(t *testing.T, app *cli.App) string {
	t.Helper()
	ctx := context.Background()

	_, err := app.AddSlotHandler.Handle(ctx, commands.AddSlotCommand{
		UserID:      app.UserID,
		DayOfWeek:   "Wednesday",
		StartMinute: 9 * 60,
		EndMinute:   10 * 60,
	})
	require.NoError(t, err)

	event, err := app.AddEventHandler.Handle(ctx, commands.AddEventCommand{
		UserID:     app.UserID,
		ScheduleID: app.ScheduleID,
		Title:      "Standup",
		StartTime:  time.Date(2024, 6, 5, 9, 30, 0, 0, time.UTC),
		EndTime:    time.Date(2024, 6, 5, 9, 45, 0, 0, time.UTC),
	})
	require.NoError(t, err)

	_, err = app.CreateTaskHandler.Handle(ctx, commands.CreateTaskCommand{
		UserID:        app.UserID,
		ScheduleID:    app.ScheduleID,
		Title:         "Prepare slides",
		DueDate:       time.Date(2024, 6, 7, 0, 0, 0, 0, time.UTC),
		Priority:      1,
		DurationHours: 1,
	})
	require.NoError(t, err)

	return event.EventID
}

func TestScheduleRun_ReportsConflict(t *testing.T) {
	app := setupLocalModeTestApp(t)
	seedConflict(t, app)

	out, err := execute("run")
	require.NoError(t, err)
	assert.Contains(t, out, "[!] Prepare slides: "+services.ReasonEventConflict)
	assert.Contains(t, out, "Scheduled: 0 | Unscheduled: 1")
}

func TestScheduleRun_DryRunThenSave(t *testing.T) {
	app := setupLocalModeTestApp(t)
	eventID := seedConflict(t, app)

	require.NoError(t, app.RemoveEventHandler.Handle(context.Background(), commands.RemoveEventCommand{
		UserID:     app.UserID,
		ScheduleID: app.ScheduleID,
		EventID:    eventID,
	}))

	out, err := execute("run", "--dry-run")
	require.NoError(t, err)
	assert.Contains(t, out, "Dry run: nothing was saved.")
	assert.Contains(t, out, "[+] Wed 2024-06-05  09:00 - 10:00  Prepare slides")

	out, err = execute("show")
	require.NoError(t, err)
	assert.Contains(t, out, "Tasks: 1 (0 scheduled) | Events: 0")

	_, err = execute("run")
	require.NoError(t, err)

	out, err = execute("show")
	require.NoError(t, err)
	assert.Contains(t, out, "[x] Wed 2024-06-05  09:00 - 10:00  Prepare slides")
	assert.Contains(t, out, "Tasks: 1 (1 scheduled) | Events: 0")
}

func TestScheduleRun_ClearsTaskBlockedByNewEvent(t *testing.T) {
	app := setupLocalModeTestApp(t)
	ctx := context.Background()
	eventID := seedConflict(t, app)

	require.NoError(t, app.RemoveEventHandler.Handle(ctx, commands.RemoveEventCommand{
		UserID: app.UserID, ScheduleID: app.ScheduleID, EventID: eventID,
	}))
	_, err := execute("run")
	require.NoError(t, err)

	_, err = app.AddEventHandler.Handle(ctx, commands.AddEventCommand{
		UserID:     app.UserID,
		ScheduleID: app.ScheduleID,
		Title:      "Standup",
		StartTime:  time.Date(2024, 6, 5, 9, 30, 0, 0, time.UTC),
		EndTime:    time.Date(2024, 6, 5, 9, 45, 0, 0, time.UTC),
	})
	require.NoError(t, err)

	out, err := execute("run")
	require.NoError(t, err)
	assert.Contains(t, out, "Cleared earlier times of 1 task(s) that no longer fit.")
	assert.Contains(t, out, "Scheduled: 0 | Unscheduled: 1")

	out, err = execute("show")
	require.NoError(t, err)
	assert.Contains(t, out, "Tasks: 1 (0 scheduled) | Events: 1")
	assert.NotContains(t, out, "[x]")
}

func TestScheduleShow_Empty(t *testing.T) {
	setupLocalModeTestApp(t)

	out, err := execute("show")
	require.NoError(t, err)
	assert.Contains(t, out, "No tasks yet.")
	assert.Contains(t, out, "Tasks: 0 (0 scheduled) | Events: 0")
}

func TestScheduleShow_ListsEvents(t *testing.T) {
	app := setupLocalModeTestApp(t)
	seedConflict(t, app)

	out, err := execute("show")
	require.NoError(t, err)
	assert.Contains(t, out, "[#] Wed 2024-06-05  09:30 - 09:45  Standup")
	assert.Contains(t, out, "Tasks: 1 (0 scheduled) | Events: 1")
}
