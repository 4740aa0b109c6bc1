package event

import (
	"fmt"

	"github.com/akaash02/TaskMaster/adapter/cli"
	"github.com/akaash02/TaskMaster/internal/scheduling/application/commands"
	"github.com/spf13/cobra"
)

var (
	start    string
	end      string
	location string
	allDay   bool
	repeat   string
)

var addCmd = &cobra.Command{
	Use:   "add [title]",
	Short: "Add a committed event",
	Long: `Add an event that blocks time in the schedule.

Examples:
  taskmaster event add "Team standup" --start "2024-06-05 09:30" --end "2024-06-05 09:45"
  taskmaster event add "Offsite" --start 2024-06-06 --end 2024-06-07 --all-day`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := cli.RequireApp()
		if err != nil {
			return err
		}

		startAt, err := cli.ParseDateTime(start, app.In())
		if err != nil {
			return err
		}
		endAt, err := cli.ParseDateTime(end, app.In())
		if err != nil {
			return err
		}

		result, err := app.AddEventHandler.Handle(cmd.Context(), commands.AddEventCommand{
			UserID:     app.UserID,
			ScheduleID: app.ScheduleID,
			Title:      args[0],
			Location:   location,
			AllDay:     allDay,
			Repeat:     repeat,
			StartTime:  startAt,
			EndTime:    endAt,
		})
		if err != nil {
			return fmt.Errorf("failed to add event: %w", err)
		}

		fmt.Fprintf(cmd.OutOrStdout(), "Event added: %s\n", result.EventID)
		return nil
	},
}

func init() {
	addCmd.Flags().StringVar(&start, "start", "", "event start (YYYY-MM-DD HH:MM)")
	addCmd.Flags().StringVar(&end, "end", "", "event end (YYYY-MM-DD HH:MM)")
	addCmd.Flags().StringVar(&location, "location", "", "where the event takes place")
	addCmd.Flags().BoolVar(&allDay, "all-day", false, "mark the event as all-day")
	addCmd.Flags().StringVar(&repeat, "repeat", "", "recurrence note, informational only")
	_ = addCmd.MarkFlagRequired("start")
	_ = addCmd.MarkFlagRequired("end")
}
