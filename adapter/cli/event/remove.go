package event

import (
	"fmt"

	"github.com/akaash02/TaskMaster/adapter/cli"
	"github.com/akaash02/TaskMaster/internal/scheduling/application/commands"
	"github.com/spf13/cobra"
)

var removeCmd = &cobra.Command{
	Use:     "remove [event-id]",
	Short:   "Remove a committed event",
	Aliases: []string{"rm"},
	Args:    cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := cli.RequireApp()
		if err != nil {
			return err
		}

		if err := app.RemoveEventHandler.Handle(cmd.Context(), commands.RemoveEventCommand{
			UserID:     app.UserID,
			ScheduleID: app.ScheduleID,
			EventID:    args[0],
		}); err != nil {
			return fmt.Errorf("failed to remove event: %w", err)
		}

		fmt.Fprintf(cmd.OutOrStdout(), "Event removed: %s\n", args[0])
		return nil
	},
}
