// List command for the pairplan CLI.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/pairplan/pairplan/pkg/types"
)

var listStatus string

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List proposals",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		var (
			proposals []types.Proposal
			err       error
		)
		if listStatus != "" {
			proposals, err = newEngine().ListByStatus(listStatus)
		} else {
			proposals, err = backend.FetchAll()
		}
		if err != nil {
			fmt.Fprintln(os.Stderr, "list:", err)
			os.Exit(exitUserError)
		}
		if flagJSON {
			return printJSON(proposals)
		}
		renderProposals(proposals)
		return nil
	},
}

func init() {
	listCmd.Flags().StringVar(&listStatus, "status", "", "status filter (pending, approved, scheduled)")
}
