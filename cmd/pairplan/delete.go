// Delete command for the pairplan CLI.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var deleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete a proposal",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		removed, err := newEngine().Remove(args[0])
		if err != nil {
			fmt.Fprintln(os.Stderr, "delete:", err)
			os.Exit(exitSysError)
		}
		if !removed {
			fmt.Fprintln(os.Stderr, "delete: no proposal with id", args[0])
			os.Exit(exitUserError)
		}
		fmt.Println("Deleted", args[0])
		return nil
	},
}
