package task

import (
	"errors"
	"fmt"

	"github.com/akaash02/TaskMaster/adapter/cli"
	"github.com/akaash02/TaskMaster/internal/scheduling/application/commands"
	"github.com/spf13/cobra"
)

var errNothingToChange = errors.New("nothing to change: pass --title, --due, --priority, --difficulty or --hours")

var (
	editTitle      string
	editDue        string
	editPriority   int
	editDifficulty int
	editHours      float64
)

var editCmd = &cobra.Command{
	Use:   "edit [task-id]",
	Short: "Edit a task",
	Long: `Change the details of a task. Only the flags given are changed; the task
is then planned again with the rest of the schedule.

Examples:
  taskmaster task edit 6f1c... --hours 2
  taskmaster task edit 6f1c... --title "Final slides" --due 2024-06-14 -p 5`,
	Aliases: []string{"update"},
	Args:    cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := cli.RequireApp()
		if err != nil {
			return err
		}

		update := commands.UpdateTaskCommand{
			UserID:     app.UserID,
			ScheduleID: app.ScheduleID,
			TaskID:     args[0],
		}
		flags := cmd.Flags()
		if flags.Changed("title") {
			update.Title = &editTitle
		}
		if flags.Changed("due") {
			due, err := cli.ParseDateTime(editDue, app.In())
			if err != nil {
				return err
			}
			update.DueDate = &due
		}
		if flags.Changed("priority") {
			update.Priority = &editPriority
		}
		if flags.Changed("difficulty") {
			update.Difficulty = &editDifficulty
		}
		if flags.Changed("hours") {
			update.DurationHours = &editHours
		}
		if update.Title == nil && update.DueDate == nil && update.Priority == nil &&
			update.Difficulty == nil && update.DurationHours == nil {
			return errNothingToChange
		}

		if err := app.UpdateTaskHandler.Handle(cmd.Context(), update); err != nil {
			return fmt.Errorf("failed to update task: %w", err)
		}

		fmt.Fprintf(cmd.OutOrStdout(), "Task updated: %s\n", args[0])
		return nil
	},
}

func init() {
	editCmd.Flags().StringVar(&editTitle, "title", "", "new title")
	editCmd.Flags().StringVar(&editDue, "due", "", "new due date (YYYY-MM-DD or YYYY-MM-DD HH:MM)")
	editCmd.Flags().IntVarP(&editPriority, "priority", "p", 0, "new priority")
	editCmd.Flags().IntVar(&editDifficulty, "difficulty", 0, "new difficulty")
	editCmd.Flags().Float64Var(&editHours, "hours", 0, "new duration in hours")
}
