// Calendar command for the pairplan CLI.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var calendarCmd = &cobra.Command{
	Use:   "calendar",
	Short: "Show scheduled proposals ordered by date",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		proposals, err := newEngine().Calendar()
		if err != nil {
			fmt.Fprintln(os.Stderr, "calendar:", err)
			os.Exit(exitSysError)
		}
		if flagJSON {
			return printJSON(proposals)
		}
		if len(proposals) == 0 {
			fmt.Println("Nothing scheduled yet")
			return nil
		}
		renderProposals(proposals)
		return nil
	},
}
