package cmd

import (
	"github.com/spf13/cobra"
)

// Running smartprep with no subcommand does the same thing.
var playCmd = &cobra.Command{
	Use:     "play",
	Aliases: []string{"start"},
	Short:   "Open the interview prep app",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runApp(cmd)
	},
}
