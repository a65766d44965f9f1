// Approve command for the pairplan CLI.
package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/pairplan/pairplan/pkg/types"
)

var approveCmd = &cobra.Command{
	Use:   "approve <id>",
	Short: "Approve a pending proposal",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		p, err := newEngine().Approve(args[0])
		if err != nil {
			code := exitSysError
			if errors.Is(err, types.ErrNotFound) || errors.Is(err, types.ErrInvalidTransition) {
				code = exitUserError
			}
			fmt.Fprintln(os.Stderr, "approve:", err)
			os.Exit(code)
		}
		if flagJSON {
			return printJSON(p)
		}
		fmt.Printf("Approved %s: %s\n", p.ID, p.Title)
		return nil
	},
}
