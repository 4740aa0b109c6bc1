package schedule

import (
	"fmt"
	"strings"

	"github.com/akaash02/TaskMaster/adapter/cli"
	"github.com/akaash02/TaskMaster/internal/scheduling/application/queries"
	"github.com/spf13/cobra"
)

var showCmd = &cobra.Command{
	Use:   "show",
	Short: "Show the schedule",
	Long: `Display scheduled tasks in start order, then unscheduled tasks by due date,
then committed events.`,
	Aliases: []string{"view"},
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := cli.RequireApp()
		if err != nil {
			return err
		}

		schedule, err := app.GetScheduleHandler.Handle(cmd.Context(), queries.GetScheduleQuery{
			UserID:     app.UserID,
			ScheduleID: app.ScheduleID,
		})
		if err != nil {
			return fmt.Errorf("failed to get schedule: %w", err)
		}

		loc := app.In()
		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "Schedule %s\n", app.ScheduleID)
		fmt.Fprintln(out, strings.Repeat("=", 60))

		if len(schedule.Tasks) == 0 {
			fmt.Fprintln(out, "\n  No tasks yet.")
			fmt.Fprintln(out, "\n  Use 'taskmaster task add' to add one")
		}

		for _, task := range schedule.Tasks {
			if task.IsScheduled() {
				fmt.Fprintf(out, "[x] %s  %s - %s  %s\n",
					task.StartTime.In(loc).Format("Mon 2006-01-02"),
					task.StartTime.In(loc).Format("15:04"),
					task.EndTime.In(loc).Format("15:04"),
					task.Title,
				)
			} else {
				fmt.Fprintf(out, "[ ] %-31s %s\n", "unscheduled", task.Title)
			}
			fmt.Fprintf(out, "    due %s | priority %d | ID: %s\n",
				task.DueDate.In(loc).Format("2006-01-02 15:04"), task.Priority, task.ID)
		}

		if len(schedule.Events) > 0 {
			fmt.Fprintln(out, strings.Repeat("-", 60))
			for _, event := range schedule.Events {
				fmt.Fprintf(out, "[#] %s  %s - %s  %s\n",
					event.StartTime.In(loc).Format("Mon 2006-01-02"),
					event.StartTime.In(loc).Format("15:04"),
					event.EndTime.In(loc).Format("15:04"),
					event.Title,
				)
			}
		}

		fmt.Fprintln(out, strings.Repeat("-", 60))
		fmt.Fprintf(out, "Tasks: %d (%d scheduled) | Events: %d\n",
			len(schedule.Tasks), schedule.ScheduledCount(), len(schedule.Events))
		return nil
	},
}
