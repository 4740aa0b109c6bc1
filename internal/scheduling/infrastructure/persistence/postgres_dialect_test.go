package persistence

import (
	"context"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/akaash02/TaskMaster/internal/scheduling/domain"
	"github.com/akaash02/TaskMaster/internal/shared/infrastructure/database"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newPostgresMock(t *testing.T) (database.Connection, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return database.NewSQLConnection(db, database.DriverPostgres), mock
}

func TestTaskRepository_Postgres_UpdateTimes(t *testing.T) {
	conn, mock := newPostgresMock(t)
	repo := NewTaskRepository(conn, time.UTC)

	start := time.Date(2024, time.June, 5, 9, 0, 0, 0, time.UTC)
	end := start.Add(time.Hour)

	mock.ExpectExec(regexp.QuoteMeta("UPDATE tasks SET start_time = $1, end_time = $2")+`\s+WHERE user_id = \$3 AND schedule_id = \$4 AND id = \$5`).
		WithArgs("2024-06-05T09:00:00Z", "2024-06-05T10:00:00Z", "user-1", "sched-1", "task-1").
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, repo.UpdateTimes(context.Background(), "user-1", "sched-1", "task-1", start, end))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestTaskRepository_Postgres_UpdateTimesNotFound(t *testing.T) {
	conn, mock := newPostgresMock(t)
	repo := NewTaskRepository(conn, time.UTC)

	mock.ExpectExec("UPDATE tasks SET").WillReturnResult(sqlmock.NewResult(0, 0))

	err := repo.UpdateTimes(context.Background(), "user-1", "sched-1", "gone", time.Now(), time.Now())
	assert.ErrorIs(t, err, domain.ErrTaskNotFound)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestTaskRepository_Postgres_ClearTimes(t *testing.T) {
	conn, mock := newPostgresMock(t)
	repo := NewTaskRepository(conn, time.UTC)

	mock.ExpectExec(regexp.QuoteMeta("UPDATE tasks SET start_time = NULL, end_time = NULL")+`\s+WHERE user_id = \$1 AND schedule_id = \$2 AND id = \$3`).
		WithArgs("user-1", "sched-1", "task-1").
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, repo.ClearTimes(context.Background(), "user-1", "sched-1", "task-1"))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestTaskRepository_Postgres_DeleteNotFound(t *testing.T) {
	conn, mock := newPostgresMock(t)
	repo := NewTaskRepository(conn, time.UTC)

	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM tasks WHERE user_id = $1 AND schedule_id = $2 AND id = $3")).
		WithArgs("user-1", "sched-1", "gone").
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := repo.Delete(context.Background(), "user-1", "sched-1", "gone")
	assert.ErrorIs(t, err, domain.ErrTaskNotFound)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestTaskRepository_Postgres_ListBySchedule(t *testing.T) {
	conn, mock := newPostgresMock(t)
	repo := NewTaskRepository(conn, time.UTC)

	rows := sqlmock.NewRows([]string{"user_id", "schedule_id", "id", "title", "due_date", "priority", "difficulty", "duration", "start_time", "end_time"}).
		AddRow("user-1", "sched-1", "task-1", "Report", "2024-06-07T17:00:00Z", 5, 2, 1.0, nil, nil).
		AddRow("user-1", "sched-1", "task-2", "Slides", "2024-06-07T17:00:00Z", 3, 1, 0.5, "2024-06-05T09:00:00Z", "2024-06-05T09:30:00Z")

	mock.ExpectQuery(`FROM tasks\s+WHERE user_id = \$1 AND schedule_id = \$2`).
		WithArgs("user-1", "sched-1").
		WillReturnRows(rows)

	tasks, err := repo.ListBySchedule(context.Background(), "user-1", "sched-1")
	require.NoError(t, err)
	require.Len(t, tasks, 2)
	assert.Equal(t, "Report", tasks[0].Title())
	assert.Nil(t, tasks[0].StartTime())
	require.NotNil(t, tasks[1].StartTime())
	assert.Equal(t, time.Date(2024, time.June, 5, 9, 0, 0, 0, time.UTC), *tasks[1].StartTime())
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestSlotRepository_Postgres_Save(t *testing.T) {
	conn, mock := newPostgresMock(t)
	repo := NewSlotRepository(conn, time.UTC)

	slot, err := domain.NewWeeklySlot("slot-1", "user-1", "Monday", 480, 600)
	require.NoError(t, err)

	mock.ExpectExec(`(?s)INSERT INTO free_time_slots .+VALUES \(\$1, \$2, \$3, \$4, \$5, \$6, \$7, \$8\)`).
		WithArgs("user-1", "slot-1", false, "Monday", int64(480), int64(600), nil, nil).
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, repo.Save(context.Background(), slot))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestEventRepository_Postgres_ListError(t *testing.T) {
	conn, mock := newPostgresMock(t)
	repo := NewEventRepository(conn, time.UTC)

	mock.ExpectQuery("FROM events").WillReturnError(assert.AnError)

	_, err := repo.ListBySchedule(context.Background(), "user-1", "sched-1")
	assert.ErrorIs(t, err, assert.AnError)
}
