package persistence

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/akaash02/TaskMaster/internal/scheduling/domain"
	"github.com/akaash02/TaskMaster/internal/shared/infrastructure/database"
)

const taskColumns = `user_id, schedule_id, id, title, due_date, priority, difficulty, duration, start_time, end_time`

// TaskRepository implements domain.TaskRepository on SQLite or PostgreSQL.
type TaskRepository struct {
	conn database.Connection
	loc  *time.Location
}

// NewTaskRepository creates a task repository. Stored times are returned in loc.
func NewTaskRepository(conn database.Connection, loc *time.Location) *TaskRepository {
	return &TaskRepository{conn: conn, loc: locationOrLocal(loc)}
}

func (r *TaskRepository) exec(ctx context.Context) database.Executor {
	return database.ExecutorFromContext(ctx, r.conn)
}

func (r *TaskRepository) rebind(query string) string {
	return r.conn.Driver().Rebind(query)
}

// Save creates or replaces a task.
func (r *TaskRepository) Save(ctx context.Context, task *domain.Task) error {
	query := r.rebind(`
		INSERT INTO tasks (` + taskColumns + `)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT (user_id, schedule_id, id) DO UPDATE SET
			title = excluded.title,
			due_date = excluded.due_date,
			priority = excluded.priority,
			difficulty = excluded.difficulty,
			duration = excluded.duration,
			start_time = excluded.start_time,
			end_time = excluded.end_time
	`)

	_, err := r.exec(ctx).Exec(ctx, query,
		task.UserID(),
		task.ScheduleID(),
		task.ID(),
		task.Title(),
		formatTime(task.DueDate()),
		task.Priority(),
		task.Difficulty(),
		task.DurationHours(),
		formatNullableTime(task.StartTime()),
		formatNullableTime(task.EndTime()),
	)
	if err != nil {
		return fmt.Errorf("save task %s: %w", task.ID(), err)
	}
	return nil
}

// FindByID retrieves a single task.
func (r *TaskRepository) FindByID(ctx context.Context, userID, scheduleID, taskID string) (*domain.Task, error) {
	query := r.rebind(`
		SELECT ` + taskColumns + `
		FROM tasks
		WHERE user_id = ? AND schedule_id = ? AND id = ?
	`)

	task, err := r.scanTask(r.exec(ctx).QueryRow(ctx, query, userID, scheduleID, taskID))
	if database.IsNoRows(err) {
		return nil, fmt.Errorf("%w: %s", domain.ErrTaskNotFound, taskID)
	}
	if err != nil {
		return nil, fmt.Errorf("find task %s: %w", taskID, err)
	}
	return task, nil
}

// ListBySchedule returns every task of a schedule in creation order.
func (r *TaskRepository) ListBySchedule(ctx context.Context, userID, scheduleID string) ([]*domain.Task, error) {
	query := r.rebind(`
		SELECT ` + taskColumns + `
		FROM tasks
		WHERE user_id = ? AND schedule_id = ?
		ORDER BY created_at, id
	`)

	rows, err := r.exec(ctx).Query(ctx, query, userID, scheduleID)
	if err != nil {
		return nil, fmt.Errorf("list tasks: %w", err)
	}
	defer rows.Close()

	tasks := make([]*domain.Task, 0)
	for rows.Next() {
		task, err := r.scanTask(rows)
		if err != nil {
			return nil, fmt.Errorf("list tasks: %w", err)
		}
		tasks = append(tasks, task)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list tasks: %w", err)
	}
	return tasks, nil
}

// UpdateTimes writes the scheduled interval onto a task.
func (r *TaskRepository) UpdateTimes(ctx context.Context, userID, scheduleID, taskID string, start, end time.Time) error {
	query := r.rebind(`
		UPDATE tasks SET start_time = ?, end_time = ?
		WHERE user_id = ? AND schedule_id = ? AND id = ?
	`)

	result, err := r.exec(ctx).Exec(ctx, query, formatTime(start), formatTime(end), userID, scheduleID, taskID)
	if err != nil {
		return fmt.Errorf("update task %s times: %w", taskID, err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("update task %s times: %w", taskID, err)
	}
	if affected == 0 {
		return fmt.Errorf("%w: %s", domain.ErrTaskNotFound, taskID)
	}
	return nil
}

// ClearTimes drops the scheduled interval of a task.
func (r *TaskRepository) ClearTimes(ctx context.Context, userID, scheduleID, taskID string) error {
	query := r.rebind(`
		UPDATE tasks SET start_time = NULL, end_time = NULL
		WHERE user_id = ? AND schedule_id = ? AND id = ?
	`)

	result, err := r.exec(ctx).Exec(ctx, query, userID, scheduleID, taskID)
	if err != nil {
		return fmt.Errorf("clear task %s times: %w", taskID, err)
	}
	return requireAffected(result, domain.ErrTaskNotFound, taskID)
}

// Delete removes a task.
func (r *TaskRepository) Delete(ctx context.Context, userID, scheduleID, taskID string) error {
	query := r.rebind(`DELETE FROM tasks WHERE user_id = ? AND schedule_id = ? AND id = ?`)

	result, err := r.exec(ctx).Exec(ctx, query, userID, scheduleID, taskID)
	if err != nil {
		return fmt.Errorf("delete task %s: %w", taskID, err)
	}
	return requireAffected(result, domain.ErrTaskNotFound, taskID)
}

func (r *TaskRepository) scanTask(row database.Row) (*domain.Task, error) {
	var (
		userID, scheduleID, id, title, dueDate string
		priority, difficulty                   int
		duration                               float64
		startTime, endTime                     sql.NullString
	)
	if err := row.Scan(&userID, &scheduleID, &id, &title, &dueDate, &priority, &difficulty, &duration, &startTime, &endTime); err != nil {
		return nil, err
	}

	due, err := parseTime(dueDate, r.loc)
	if err != nil {
		return nil, err
	}
	start, err := parseNullableTime(startTime, r.loc)
	if err != nil {
		return nil, err
	}
	end, err := parseNullableTime(endTime, r.loc)
	if err != nil {
		return nil, err
	}

	return domain.RehydrateTask(id, userID, scheduleID, title, due, priority, difficulty, duration, start, end), nil
}

func requireAffected(result database.Result, notFound error, id string) error {
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected for %s: %w", id, err)
	}
	if affected == 0 {
		return fmt.Errorf("%w: %s", notFound, id)
	}
	return nil
}
