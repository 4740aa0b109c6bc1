package slot

import (
	"fmt"

	"github.com/akaash02/TaskMaster/adapter/cli"
	"github.com/akaash02/TaskMaster/internal/scheduling/application/commands"
	"github.com/spf13/cobra"
)

var removeCmd = &cobra.Command{
	Use:     "remove [slot-id]",
	Short:   "Remove a free time slot",
	Aliases: []string{"rm"},
	Args:    cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := cli.RequireApp()
		if err != nil {
			return err
		}

		if err := app.RemoveSlotHandler.Handle(cmd.Context(), commands.RemoveSlotCommand{
			UserID: app.UserID,
			SlotID: args[0],
		}); err != nil {
			return fmt.Errorf("failed to remove slot: %w", err)
		}

		fmt.Fprintf(cmd.OutOrStdout(), "Slot removed: %s\n", args[0])
		return nil
	},
}
