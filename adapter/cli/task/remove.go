package task

import (
	"fmt"

	"github.com/akaash02/TaskMaster/adapter/cli"
	"github.com/akaash02/TaskMaster/internal/scheduling/application/commands"
	"github.com/spf13/cobra"
)

var removeCmd = &cobra.Command{
	Use:     "remove [task-id]",
	Short:   "Remove a task",
	Aliases: []string{"rm"},
	Args:    cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := cli.RequireApp()
		if err != nil {
			return err
		}

		if err := app.RemoveTaskHandler.Handle(cmd.Context(), commands.RemoveTaskCommand{
			UserID:     app.UserID,
			ScheduleID: app.ScheduleID,
			TaskID:     args[0],
		}); err != nil {
			return fmt.Errorf("failed to remove task: %w", err)
		}

		fmt.Fprintf(cmd.OutOrStdout(), "Task removed: %s\n", args[0])
		return nil
	},
}
