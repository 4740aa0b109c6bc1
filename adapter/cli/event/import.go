package event

import (
	"errors"
	"fmt"
	"time"

	"github.com/akaash02/TaskMaster/adapter/cli"
	"github.com/akaash02/TaskMaster/internal/calendar/infrastructure/caldav"
	"github.com/akaash02/TaskMaster/internal/scheduling/application/commands"
	"github.com/spf13/cobra"
)

const defaultImportDays = 14

var (
	importFile string
	importFrom string
	importTo   string
)

var importCmd = &cobra.Command{
	Use:   "import",
	Short: "Import events from a calendar",
	Long: `Import committed events for a date window, either from an iCalendar file
or from the CalDAV calendar configured with CALDAV_URL. Re-importing updates
events in place. Cancelled and free (transparent) events are skipped.

Examples:
  taskmaster event import --file work.ics
  taskmaster event import --from 2024-06-03 --to 2024-06-10`,
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := cli.RequireApp()
		if err != nil {
			return err
		}
		if app.ImportHandler == nil {
			return cli.ErrNotInitialized
		}

		from, to, err := importWindow(app.In(), time.Now())
		if err != nil {
			return err
		}

		var source commands.EventSource
		switch {
		case importFile != "":
			source, err = caldav.NewFileSource(importFile, app.In(), cli.Logger())
		case app.CalendarFeed != nil:
			source, err = app.CalendarFeed()
		default:
			err = errors.New("no calendar configured: pass --file or set CALDAV_URL")
		}
		if err != nil {
			return err
		}

		result, err := app.ImportHandler(source).Handle(cmd.Context(), commands.ImportEventsCommand{
			UserID:     app.UserID,
			ScheduleID: app.ScheduleID,
			From:       from,
			To:         to,
		})
		if err != nil {
			return fmt.Errorf("failed to import events: %w", err)
		}

		fmt.Fprintf(cmd.OutOrStdout(), "Imported %d events (%s to %s)\n",
			result.Imported,
			from.Format(time.DateOnly),
			to.Format(time.DateOnly),
		)
		return nil
	},
}

// importWindow resolves --from/--to. The window defaults to two weeks
// starting today.
func importWindow(loc *time.Location, now time.Time) (time.Time, time.Time, error) {
	var from, to time.Time
	var err error

	if importFrom != "" {
		if from, err = cli.ParseDateTime(importFrom, loc); err != nil {
			return from, to, err
		}
	} else {
		y, m, d := now.In(loc).Date()
		from = time.Date(y, m, d, 0, 0, 0, 0, loc)
	}

	if importTo != "" {
		if to, err = cli.ParseDateTime(importTo, loc); err != nil {
			return from, to, err
		}
	} else {
		to = from.AddDate(0, 0, defaultImportDays)
	}
	return from, to, nil
}

func init() {
	importCmd.Flags().StringVarP(&importFile, "file", "f", "", "iCalendar (.ics) file to import")
	importCmd.Flags().StringVar(&importFrom, "from", "", "window start (YYYY-MM-DD), default today")
	importCmd.Flags().StringVar(&importTo, "to", "", "window end (YYYY-MM-DD), default two weeks after --from")
}
