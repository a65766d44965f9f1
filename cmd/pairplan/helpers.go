// Shared output helpers for pairplan CLI commands.
package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/jedib0t/go-pretty/v6/table"

	"github.com/pairplan/pairplan/pkg/types"
)

// printJSON writes v as indented JSON to stdout.
func printJSON(v any) error {
	out, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	fmt.Println(string(out))
	return nil
}

// renderProposals prints proposals as a table on stdout.
func renderProposals(proposals []types.Proposal) {
	tw := table.NewWriter()
	tw.SetOutputMirror(os.Stdout)
	tw.AppendHeader(table.Row{"ID", "User", "Title", "Category", "Proposed", "Status", "Scheduled"})
	for _, p := range proposals {
		tw.AppendRow(table.Row{p.ID, p.Author, p.Title, p.Category, p.ProposedDate, p.Status, p.ScheduledDate})
	}
	tw.Render()
}
