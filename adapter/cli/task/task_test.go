package task

import (
	"bytes"
	"context"
	"io"
	"log/slog"
	"strings"
	"testing"
	"time"

	"github.com/akaash02/TaskMaster/adapter/cli"
	internalApp "github.com/akaash02/TaskMaster/internal/app"
	"github.com/akaash02/TaskMaster/internal/scheduling/application/commands"
	"github.com/akaash02/TaskMaster/internal/scheduling/application/queries"
	"github.com/akaash02/TaskMaster/internal/scheduling/domain"
	"github.com/akaash02/TaskMaster/pkg/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// setupLocalModeTestApp creates a CLI application over an in-memory SQLite store.
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
	dueDate, priority, difficulty, hours = "", 0, 0, 1
	editTitle, editDue, editPriority, editDifficulty, editHours = "", "", 0, 0, 0
	for _, name := range []string{"due", "priority", "difficulty", "hours"} {
		addCmd.Flags().Lookup(name).Changed = false
	}
	for _, name := range []string{"title", "due", "priority", "difficulty", "hours"} {
		editCmd.Flags().Lookup(name).Changed = false
	}

	var out bytes.Buffer
	Cmd.SetOut(&out)
	Cmd.SetErr(&out)
	Cmd.SetArgs(args)
	err := Cmd.ExecuteContext(context.Background())
	return out.String(), err
}

func TestTaskAdd_SchedulesIntoFreeSlot(t *testing.T) {
	app := setupLocalModeTestApp(t)
	ctx := context.Background()

	_, err := app.AddSlotHandler.Handle(ctx, commands.AddSlotCommand{
		UserID:      app.UserID,
		DayOfWeek:   "Wednesday",
		StartMinute: 9 * 60,
		EndMinute:   12 * 60,
	})
	require.NoError(t, err)

	out, err := execute("add", "Prepare slides", "--due", "2024-06-07", "--hours", "1", "-p", "3")
	require.NoError(t, err)
	assert.Contains(t, out, "Task created:")
	assert.Contains(t, out, "title: Prepare slides")

	schedule, err := app.GetScheduleHandler.Handle(ctx, queries.GetScheduleQuery{
		UserID:     app.UserID,
		ScheduleID: app.ScheduleID,
	})
	require.NoError(t, err)
	require.Len(t, schedule.Tasks, 1)

	task := schedule.Tasks[0]
	assert.Equal(t, 3, task.Priority)
	require.True(t, task.IsScheduled())
	assert.Equal(t, time.Date(2024, 6, 5, 9, 0, 0, 0, time.UTC), task.StartTime.UTC())
	assert.Equal(t, time.Date(2024, 6, 5, 10, 0, 0, 0, time.UTC), task.EndTime.UTC())
}

func TestTaskAdd_RequiresDueDate(t *testing.T) {
	setupLocalModeTestApp(t)

	_, err := execute("add", "No deadline")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "due")
}

func TestTaskAdd_RejectsInvalidInput(t *testing.T) {
	setupLocalModeTestApp(t)

	_, err := execute("add", "Bad date", "--due", "someday")
	assert.Error(t, err)

	_, err = execute("add", "Zero length", "--due", "2024-06-07", "--hours", "0")
	assert.Error(t, err)
}

func TestTaskAdd_WithoutApp(t *testing.T) {
	cli.SetApp(nil)

	_, err := execute("add", "Orphan", "--due", "2024-06-07")
	assert.ErrorIs(t, err, cli.ErrNotInitialized)
}

// seedTwoTasks adds a one-hour Wednesday slot and two tasks competing for it.
func seedTwoTasks(t *testing.T, app *cli.App) (first, second string) {
	t.Helper()
	ctx := context.Background()

	_, err := app.AddSlotHandler.Handle(ctx, commands.AddSlotCommand{
		UserID: app.UserID, DayOfWeek: "Wednesday", StartMinute: 9 * 60, EndMinute: 10 * 60,
	})
	require.NoError(t, err)

	ids := make([]string, 0, 2)
	for _, p := range []int{5, 1} {
		created, err := app.CreateTaskHandler.Handle(ctx, commands.CreateTaskCommand{
			UserID:        app.UserID,
			ScheduleID:    app.ScheduleID,
			Title:         "task",
			DueDate:       time.Date(2024, 6, 7, 0, 0, 0, 0, time.UTC),
			Priority:      p,
			DurationHours: 1,
		})
		require.NoError(t, err)
		ids = append(ids, created.TaskID)
	}
	return ids[0], ids[1]
}

func scheduledTask(t *testing.T, app *cli.App) string {
	t.Helper()
	schedule, err := app.GetScheduleHandler.Handle(context.Background(), queries.GetScheduleQuery{
		UserID:     app.UserID,
		ScheduleID: app.ScheduleID,
	})
	require.NoError(t, err)

	var scheduled []string
	for _, task := range schedule.Tasks {
		if task.IsScheduled() {
			scheduled = append(scheduled, task.ID)
		}
	}
	require.Len(t, scheduled, 1)
	return scheduled[0]
}

func TestTaskEdit_ReplansSchedule(t *testing.T) {
	app := setupLocalModeTestApp(t)
	first, second := seedTwoTasks(t, app)
	require.Equal(t, first, scheduledTask(t, app))

	out, err := execute("edit", second, "-p", "9", "--title", "Urgent")
	require.NoError(t, err)
	assert.Equal(t, "Task updated: "+second, strings.TrimSpace(out))

	assert.Equal(t, second, scheduledTask(t, app))

	schedule, err := app.GetScheduleHandler.Handle(context.Background(), queries.GetScheduleQuery{
		UserID: app.UserID, ScheduleID: app.ScheduleID,
	})
	require.NoError(t, err)
	for _, task := range schedule.Tasks {
		if task.ID == second {
			assert.Equal(t, "Urgent", task.Title)
			assert.Equal(t, 9, task.Priority)
		}
	}
}

func TestTaskEdit_Errors(t *testing.T) {
	app := setupLocalModeTestApp(t)
	first, _ := seedTwoTasks(t, app)

	_, err := execute("edit", first)
	assert.ErrorIs(t, err, errNothingToChange)

	_, err = execute("edit", "missing", "--hours", "2")
	assert.ErrorIs(t, err, domain.ErrTaskNotFound)

	_, err = execute("edit", first, "--due", "someday")
	assert.Error(t, err)

	_, err = execute("edit", first, "--hours", "0")
	assert.ErrorIs(t, err, domain.ErrInvalidDuration)
}

func TestTaskRemove_FreesSlot(t *testing.T) {
	app := setupLocalModeTestApp(t)
	first, second := seedTwoTasks(t, app)

	out, err := execute("rm", first)
	require.NoError(t, err)
	assert.Equal(t, "Task removed: "+first, strings.TrimSpace(out))
	assert.Equal(t, second, scheduledTask(t, app))

	_, err = execute("remove", first)
	assert.ErrorIs(t, err, domain.ErrTaskNotFound)
}
