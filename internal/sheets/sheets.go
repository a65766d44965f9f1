// Package sheets defines the minimal worksheet operations the sheet-backed
// store needs, plus an HTTP client for a hosted spreadsheet API. The store
// depends only on the Worksheet interface; the concrete transport is
// swappable in tests.
package sheets

// Worksheet is one row-oriented tab of a spreadsheet. Row and column numbers
// are 1-based, matching spreadsheet addressing.
type Worksheet interface {
	// Rows returns every row, including the header row if present.
	Rows() ([][]string, error)

	// AppendRow adds a row after the last non-empty row.
	AppendRow(values []string) error

	// UpdateCell writes a single cell.
	UpdateCell(row, col int, value string) error

	// DeleteRow removes a row entirely, shifting later rows up.
	DeleteRow(row int) error
}

// Client opens worksheets by tab name.
type Client interface {
	Worksheet(name string) (Worksheet, error)
}
