package slot

import (
	"errors"
	"fmt"

	"github.com/akaash02/TaskMaster/adapter/cli"
	"github.com/akaash02/TaskMaster/internal/scheduling/application/commands"
	"github.com/spf13/cobra"
)

var (
	day       string
	startTime string
	endTime   string
	from      string
	to        string
)

var addCmd = &cobra.Command{
	Use:   "add",
	Short: "Add a free time slot",
	Long: `Add a weekly slot with --day/--start/--end, or a one-off slot with --from/--to.
Slots may not overlap an existing slot of the same kind.

Examples:
  taskmaster slot add --day wednesday --start 09:00 --end 12:00
  taskmaster slot add --from "2024-06-05 14:00" --to "2024-06-05 16:00"`,
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := cli.RequireApp()
		if err != nil {
			return err
		}

		slotCmd := commands.AddSlotCommand{UserID: app.UserID}
		switch {
		case from != "" || to != "":
			if day != "" {
				return errors.New("use either --day or --from/--to, not both")
			}
			if slotCmd.Start, err = cli.ParseDateTime(from, app.In()); err != nil {
				return err
			}
			if slotCmd.End, err = cli.ParseDateTime(to, app.In()); err != nil {
				return err
			}
			slotCmd.Custom = true
		case day != "":
			if slotCmd.StartMinute, err = cli.ParseClock(startTime); err != nil {
				return err
			}
			if slotCmd.EndMinute, err = cli.ParseClock(endTime); err != nil {
				return err
			}
			slotCmd.DayOfWeek = day
		default:
			return errors.New("either --day or --from/--to is required")
		}

		result, err := app.AddSlotHandler.Handle(cmd.Context(), slotCmd)
		if err != nil {
			return fmt.Errorf("failed to add slot: %w", err)
		}

		fmt.Fprintf(cmd.OutOrStdout(), "Slot added: %s\n", result.SlotID)
		return nil
	},
}

func init() {
	addCmd.Flags().StringVar(&day, "day", "", "weekday of a weekly slot (e.g. monday)")
	addCmd.Flags().StringVar(&startTime, "start", "", "weekly slot start (HH:MM)")
	addCmd.Flags().StringVar(&endTime, "end", "", "weekly slot end (HH:MM, 24:00 for midnight)")
	addCmd.Flags().StringVar(&from, "from", "", "custom slot start (YYYY-MM-DD HH:MM)")
	addCmd.Flags().StringVar(&to, "to", "", "custom slot end (YYYY-MM-DD HH:MM)")
}
