// Category commands for the pairplan CLI.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var categoryCmd = &cobra.Command{
	Use:   "category",
	Short: "Manage the shared category list",
}

var categoryListCmd = &cobra.Command{
	Use:   "list",
	Short: "List categories",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cats, err := newRegistry().List()
		if err != nil {
			fmt.Fprintln(os.Stderr, "category list:", err)
			os.Exit(exitSysError)
		}
		if flagJSON {
			return printJSON(cats)
		}
		for _, c := range cats {
			fmt.Println(c)
		}
		return nil
	},
}

var categoryAddCmd = &cobra.Command{
	Use:   "add <name>",
	Short: "Add a category",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		msg, err := newRegistry().Add(args[0])
		if err != nil {
			fmt.Fprintln(os.Stderr, "category add:", err)
			os.Exit(exitUserError)
		}
		fmt.Println(msg)
		return nil
	},
}

var categoryRenameCmd = &cobra.Command{
	Use:   "rename <old> <new>",
	Short: "Rename a category and retag its proposals",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		msg, err := newRegistry().Rename(args[0], args[1])
		if err != nil {
			fmt.Fprintln(os.Stderr, "category rename:", err)
			os.Exit(exitUserError)
		}
		fmt.Println(msg)
		return nil
	},
}

func init() {
	categoryCmd.AddCommand(categoryListCmd)
	categoryCmd.AddCommand(categoryAddCmd)
	categoryCmd.AddCommand(categoryRenameCmd)
}
