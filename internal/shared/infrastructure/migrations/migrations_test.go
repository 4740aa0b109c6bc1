package migrations

import (
	"context"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/akaash02/TaskMaster/internal/shared/infrastructure/database"
	"github.com/akaash02/TaskMaster/internal/shared/infrastructure/database/sqlite"
)

func TestRun_SQLite(t *testing.T) {
	ctx := context.Background()
	conn, err := sqlite.OpenInMemory(ctx)
	require.NoError(t, err)
	defer conn.Close()

	require.NoError(t, Run(ctx, conn))
	require.NoError(t, Run(ctx, conn), "migrations are idempotent")

	for _, table := range []string{"tasks", "free_time_slots", "events"} {
		var name string
		err := conn.QueryRow(ctx, `SELECT name FROM sqlite_master WHERE type = 'table' AND name = ?`, table).Scan(&name)
		require.NoError(t, err, table)
		assert.Equal(t, table, name)
	}
}

func TestRun_Postgres(t *testing.T) {
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectExec(regexp.QuoteMeta("CREATE TABLE IF NOT EXISTS tasks")).WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec(regexp.QuoteMeta("CREATE TABLE IF NOT EXISTS free_time_slots")).WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec(regexp.QuoteMeta("CREATE TABLE IF NOT EXISTS events")).WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec(regexp.QuoteMeta("CREATE INDEX IF NOT EXISTS idx_events_schedule_start")).WillReturnResult(sqlmock.NewResult(0, 0))

	require.NoError(t, Run(context.Background(), database.NewSQLConnection(db, database.DriverPostgres)))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestStatements(t *testing.T) {
	got := statements("CREATE TABLE a (id TEXT);\n\n  CREATE TABLE b (id TEXT);\n")
	assert.Equal(t, []string{"CREATE TABLE a (id TEXT)", "CREATE TABLE b (id TEXT)"}, got)
}
