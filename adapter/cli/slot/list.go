package slot

import (
	"fmt"
	"strings"

	"github.com/akaash02/TaskMaster/adapter/cli"
	"github.com/akaash02/TaskMaster/internal/scheduling/application/queries"
	"github.com/spf13/cobra"
)

var listCmd = &cobra.Command{
	Use:     "list",
	Short:   "List free time slots",
	Aliases: []string{"ls"},
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := cli.RequireApp()
		if err != nil {
			return err
		}

		slots, err := app.ListSlotsHandler.Handle(cmd.Context(), queries.ListSlotsQuery{UserID: app.UserID})
		if err != nil {
			return fmt.Errorf("failed to list slots: %w", err)
		}

		out := cmd.OutOrStdout()
		if len(slots) == 0 {
			fmt.Fprintln(out, "No free time slots. Add one with 'taskmaster slot add'.")
			return nil
		}

		for _, s := range slots {
			if s.Custom {
				fmt.Fprintf(out, "%-10s %s - %s  %s\n",
					"once",
					s.Start.In(app.In()).Format("2006-01-02 15:04"),
					s.End.In(app.In()).Format("2006-01-02 15:04"),
					s.ID,
				)
				continue
			}
			fmt.Fprintf(out, "%-10s %s - %s  %s\n",
				strings.ToLower(s.DayOfWeek),
				cli.FormatClock(s.StartMinute),
				cli.FormatClock(s.EndMinute),
				s.ID,
			)
		}
		fmt.Fprintf(out, "Total: %d slots\n", len(slots))
		return nil
	},
}
