package cli

import (
	"bytes"
	"context"
	"io"
	"testing"

	"github.com/akaash02/TaskMaster/pkg/observability"
	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRootCommand_PreparesContext(t *testing.T) {
	var logs bytes.Buffer
	SetLogger(observability.NewLogger(observability.LogConfig{Level: "debug", Output: &logs}))
	t.Cleanup(func() { SetLogger(nil) })

	SetApp(&App{ScheduleID: "default"})
	t.Cleanup(func() { SetApp(nil) })

	var correlationID string
	inspect := &cobra.Command{
		Use: "inspect",
		RunE: func(cmd *cobra.Command, args []string) error {
			correlationID = observability.CorrelationIDFromContext(cmd.Context())
			return nil
		},
	}
	AddCommand(inspect)
	t.Cleanup(func() {
		rootCmd.RemoveCommand(inspect)
		scheduleID = ""
	})

	rootCmd.SetOut(io.Discard)
	rootCmd.SetArgs([]string{"inspect", "--schedule", "week-23"})
	require.NoError(t, rootCmd.ExecuteContext(context.Background()))

	assert.NotEmpty(t, correlationID)
	assert.Equal(t, "week-23", GetApp().ScheduleID)
	assert.Contains(t, logs.String(), "command start")
	assert.Contains(t, logs.String(), "command end")
	assert.Contains(t, logs.String(), "correlation_id="+correlationID)
}

func TestRequireApp(t *testing.T) {
	SetApp(nil)
	_, err := RequireApp()
	assert.ErrorIs(t, err, ErrNotInitialized)

	SetApp(&App{UserID: "u1"})
	t.Cleanup(func() { SetApp(nil) })
	app, err := RequireApp()
	require.NoError(t, err)
	assert.Equal(t, "u1", app.UserID)
}
