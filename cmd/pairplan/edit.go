// Edit command for the pairplan CLI.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/pairplan/pairplan/pkg/types"
)

var (
	editTitle    string
	editCategory string
	editDate     string
)

var editCmd = &cobra.Command{
	Use:   "edit <id>",
	Short: "Edit fields of an existing proposal",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		fields := map[string]string{}
		if cmd.Flags().Changed("title") {
			fields[types.FieldTitle] = editTitle
		}
		if cmd.Flags().Changed("category") {
			fields[types.FieldCategory] = editCategory
		}
		if cmd.Flags().Changed("date") {
			fields[types.FieldProposedDate] = editDate
		}
		if len(fields) == 0 {
			fmt.Fprintln(os.Stderr, "edit: nothing to change")
			os.Exit(exitUserError)
		}

		if err := newEngine().Edit(args[0], fields); err != nil {
			fmt.Fprintln(os.Stderr, "edit:", err)
			os.Exit(exitUserError)
		}
		fmt.Println("Updated", args[0])
		return nil
	},
}

func init() {
	editCmd.Flags().StringVar(&editTitle, "title", "", "new title")
	editCmd.Flags().StringVar(&editCategory, "category", "", "new category")
	editCmd.Flags().StringVar(&editDate, "date", "", "new candidate date (YYYY-MM-DD)")
}
