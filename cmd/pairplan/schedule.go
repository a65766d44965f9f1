// Schedule command for the pairplan CLI.
package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/pairplan/pairplan/pkg/types"
)

var scheduleDate string

var scheduleCmd = &cobra.Command{
	Use:   "schedule <id>",
	Short: "Fix the date of an approved proposal",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		p, err := newEngine().Schedule(args[0], scheduleDate)
		if err != nil {
			code := exitSysError
			if errors.Is(err, types.ErrNotFound) ||
				errors.Is(err, types.ErrInvalidTransition) ||
				errors.Is(err, types.ErrInvalidDate) {
				code = exitUserError
			}
			fmt.Fprintln(os.Stderr, "schedule:", err)
			os.Exit(code)
		}
		if flagJSON {
			return printJSON(p)
		}
		fmt.Printf("Scheduled %s on %s\n", p.Title, p.ScheduledDate)
		return nil
	},
}

func init() {
	scheduleCmd.Flags().StringVar(&scheduleDate, "date", "", "agreed date (YYYY-MM-DD, required)")
	scheduleCmd.MarkFlagRequired("date")
}
