package slot

import (
	"github.com/spf13/cobra"
)

// Cmd is the slot command group
var Cmd = &cobra.Command{
	Use:   "slot",
	Short: "Manage free time slots",
	Long: `Declare when you are free to work. Weekly slots repeat every week on one
day; custom slots cover a single absolute interval.`,
}

func init() {
	Cmd.AddCommand(addCmd)
	Cmd.AddCommand(listCmd)
	Cmd.AddCommand(removeCmd)
}
