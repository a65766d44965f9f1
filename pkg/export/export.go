// Package export renders proposals to portable formats.
package export

import (
	"encoding/csv"
	"fmt"
	"io"

	"github.com/pairplan/pairplan/pkg/types"
)

// utf8BOM keeps spreadsheet applications from mangling Japanese text when
// the file is opened directly.
var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// CSV writes the proposals as a UTF-8 CSV with a BOM and a header row. The
// column order matches the storage layout.
func CSV(w io.Writer, proposals []types.Proposal) error {
	if _, err := w.Write(utf8BOM); err != nil {
		return fmt.Errorf("writing BOM: %w", err)
	}
	cw := csv.NewWriter(w)
	if err := cw.Write(types.Header); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}
	for _, p := range proposals {
		if err := cw.Write(p.Record()); err != nil {
			return fmt.Errorf("writing row %s: %w", p.ID, err)
		}
	}
	cw.Flush()
	return cw.Error()
}
