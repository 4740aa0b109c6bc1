package event

import (
	"github.com/spf13/cobra"
)

// Cmd is the event command group
var Cmd = &cobra.Command{
	Use:   "event",
	Short: "Manage committed calendar events",
	Long:  `Events block time in a schedule. Tasks are never placed over them.`,
}

func init() {
	Cmd.AddCommand(addCmd)
	Cmd.AddCommand(removeCmd)
	Cmd.AddCommand(importCmd)
}
