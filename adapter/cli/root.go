package cli

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/akaash02/TaskMaster/pkg/observability"
	"github.com/spf13/cobra"
)

var (
	scheduleID string
	verbose    bool
	logger     *slog.Logger
)

type startedAtKey struct{}

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "taskmaster",
	Short: "TaskMaster - fits your tasks into your free time",
	Long: `TaskMaster places tasks into the free time slots you declare,
highest priority first, around the events already on your calendar.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		if logger == nil {
			logger = slog.Default()
		}
		if scheduleID != "" && app != nil {
			app.ScheduleID = scheduleID
		}

		ctx := observability.WithCorrelationID(cmd.Context(), "")
		ctx = contextWithStart(ctx, time.Now())
		cmd.SetContext(ctx)
		logger.DebugContext(ctx, "command start", "command", cmd.CommandPath())
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger == nil {
			logger = slog.Default()
		}
		ctx := cmd.Context()
		startedAt, ok := startFromContext(ctx)
		if !ok {
			return
		}
		logger.DebugContext(ctx, "command end",
			"command", cmd.CommandPath(),
			"duration_ms", time.Since(startedAt).Milliseconds(),
		)
	},
}

// Run executes the root command with ctx and prints any error to stderr.
func Run(ctx context.Context) error {
	err := rootCmd.ExecuteContext(ctx)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
	}
	return err
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&scheduleID, "schedule", "s", "", "schedule to operate on (default from TASKMASTER_SCHEDULE_ID)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
}

// AddCommand adds a command to the root command.
func AddCommand(cmd *cobra.Command) {
	rootCmd.AddCommand(cmd)
}

// SetLogger sets the CLI logger.
func SetLogger(l *slog.Logger) {
	logger = l
}

// Verbose reports whether --verbose was given.
func Verbose() bool {
	return verbose
}

// Logger returns the CLI logger.
func Logger() *slog.Logger {
	if logger == nil {
		return slog.Default()
	}
	return logger
}
