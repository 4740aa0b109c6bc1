package schedule

import (
	"fmt"

	"github.com/akaash02/TaskMaster/adapter/cli"
	"github.com/akaash02/TaskMaster/internal/scheduling/application/commands"
	"github.com/spf13/cobra"
)

var dryRun bool

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Place every task of the schedule into free time",
	Long: `Re-plan the whole schedule: tasks are taken by priority, then due date,
then difficulty, and each goes into the first free slot that fits before its
due date without touching an event.

Examples:
  taskmaster schedule run
  taskmaster schedule run --dry-run`,
	Aliases: []string{"plan"},
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := cli.RequireApp()
		if err != nil {
			return err
		}

		result, err := app.RunScheduleHandler.Handle(cmd.Context(), commands.RunScheduleCommand{
			UserID:     app.UserID,
			ScheduleID: app.ScheduleID,
			DryRun:     dryRun,
		})
		if err != nil {
			return fmt.Errorf("failed to run scheduler: %w", err)
		}

		out := cmd.OutOrStdout()
		if result.DryRun {
			fmt.Fprintln(out, "Dry run: nothing was saved.")
		}
		for _, a := range result.Assignments {
			fmt.Fprintf(out, "  [+] %s  %s - %s  %s\n",
				a.StartTime.In(app.In()).Format("Mon 2006-01-02"),
				a.StartTime.In(app.In()).Format("15:04"),
				a.EndTime.In(app.In()).Format("15:04"),
				a.Title,
			)
		}
		for _, u := range result.Unscheduled {
			fmt.Fprintf(out, "  [!] %s: %s\n", u.Title, u.Reason)
		}
		if result.Cleared > 0 {
			fmt.Fprintf(out, "Cleared earlier times of %d task(s) that no longer fit.\n", result.Cleared)
		}
		fmt.Fprintf(out, "Scheduled: %d | Unscheduled: %d\n", len(result.Assignments), len(result.Unscheduled))
		return nil
	},
}

func init() {
	runCmd.Flags().BoolVar(&dryRun, "dry-run", false, "plan without saving")
}
