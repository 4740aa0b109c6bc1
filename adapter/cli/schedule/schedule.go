package schedule

import (
	"github.com/spf13/cobra"
)

// Cmd is the schedule command group
var Cmd = &cobra.Command{
	Use:   "schedule",
	Short: "Plan and view your schedule",
	Long:  `Place tasks into free time and review the result.`,
}

func init() {
	Cmd.AddCommand(runCmd)
	Cmd.AddCommand(showCmd)
}
