package task

import (
	"fmt"

	"github.com/akaash02/TaskMaster/adapter/cli"
	"github.com/akaash02/TaskMaster/internal/scheduling/application/commands"
	"github.com/spf13/cobra"
)

var (
	dueDate    string
	priority   int
	difficulty int
	hours      float64
)

var addCmd = &cobra.Command{
	Use:   "add [title]",
	Short: "Add a task",
	Long: `Add a task with a due date and an estimated duration in hours.

Examples:
  taskmaster task add "Prepare slides" --due 2024-06-07 --hours 1
  taskmaster task add "Review PR" --due "2024-06-07 17:00" -p 5 --difficulty 2 --hours 0.5`,
	Aliases: []string{"create"},
	Args:    cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := cli.RequireApp()
		if err != nil {
			return err
		}

		due, err := cli.ParseDateTime(dueDate, app.In())
		if err != nil {
			return err
		}

		ctx := cmd.Context()
		result, err := app.CreateTaskHandler.Handle(ctx, commands.CreateTaskCommand{
			UserID:        app.UserID,
			ScheduleID:    app.ScheduleID,
			Title:         args[0],
			DueDate:       due,
			Priority:      priority,
			Difficulty:    difficulty,
			DurationHours: hours,
		})
		if err != nil {
			return fmt.Errorf("failed to create task: %w", err)
		}

		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "Task created: %s\n", result.TaskID)
		fmt.Fprintf(out, "  title: %s\n", args[0])
		fmt.Fprintf(out, "  due: %s\n", due.Format("Mon, 2006-01-02 15:04"))
		fmt.Fprintf(out, "  duration: %gh\n", hours)
		return nil
	},
}

func init() {
	addCmd.Flags().StringVar(&dueDate, "due", "", "due date (YYYY-MM-DD or YYYY-MM-DD HH:MM)")
	addCmd.Flags().IntVarP(&priority, "priority", "p", 0, "priority, higher is more urgent")
	addCmd.Flags().IntVar(&difficulty, "difficulty", 0, "difficulty, easier tasks win ties")
	addCmd.Flags().Float64Var(&hours, "hours", 1, "estimated duration in hours")
	_ = addCmd.MarkFlagRequired("due")
}
