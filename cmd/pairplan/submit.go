// Submit command for the pairplan CLI.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	submitUser     string
	submitTitle    string
	submitCategory string
	submitDate     string
)

var submitCmd = &cobra.Command{
	Use:   "submit",
	Short: "Propose a new activity",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		p, err := newEngine().Submit(submitUser, submitTitle, submitCategory, submitDate)
		if err != nil {
			fmt.Fprintln(os.Stderr, "submit:", err)
			os.Exit(exitUserError)
		}
		if flagJSON {
			return printJSON(p)
		}
		fmt.Printf("Submitted %s: %s\n", p.ID, p.Title)
		return nil
	},
}

func init() {
	submitCmd.Flags().StringVar(&submitUser, "user", "", "who is proposing (required)")
	submitCmd.Flags().StringVar(&submitTitle, "title", "", "what to do together (required)")
	submitCmd.Flags().StringVar(&submitCategory, "category", "", "category name")
	submitCmd.Flags().StringVar(&submitDate, "date", "", "candidate date (YYYY-MM-DD)")

	submitCmd.MarkFlagRequired("user")
	submitCmd.MarkFlagRequired("title")
}
