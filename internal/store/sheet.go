package store

import (
	"errors"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/pairplan/pairplan/internal/sheets"
	"github.com/pairplan/pairplan/pkg/types"
)

// Worksheet tab names in the backing spreadsheet.
const (
	proposalsWorksheet  = "proposals"
	categoriesWorksheet = "categories"
)

// categoriesHeader is row 1 of the categories tab. FetchCategories always
// skips it.
var categoriesHeader = []string{"category_name"}

// categoryCacheTTL bounds category read volume against the remote backend.
// Mutating category operations invalidate the cache immediately.
const categoryCacheTTL = 5 * time.Minute

// Sheet is the remote backend: proposals and categories live in two tabs of
// a hosted spreadsheet, addressed positionally. Lookups are linear scans;
// the spreadsheet offers no indexing.
type Sheet struct {
	proposals  sheets.Worksheet
	categories sheets.Worksheet
	now        func() time.Time

	catMu     sync.Mutex
	catCache  []string
	catExpiry time.Time
}

var _ Store = (*Sheet)(nil)

// NewSheet opens both worksheets and probes the proposals tab with one read.
// An empty sheet gets the header row written. Any failure here makes the
// factory fall back to the next backend.
func NewSheet(client sheets.Client) (*Sheet, error) {
	pws, err := client.Worksheet(proposalsWorksheet)
	if err != nil {
		return nil, err
	}
	cws, err := client.Worksheet(categoriesWorksheet)
	if err != nil {
		return nil, err
	}
	rows, err := pws.Rows()
	if err != nil {
		return nil, fmt.Errorf("probe spreadsheet: %w", err)
	}
	if len(rows) == 0 {
		if err := pws.AppendRow(types.Header); err != nil {
			return nil, fmt.Errorf("initialize header row: %w", err)
		}
	}
	// Same for the categories tab: without a header, the first appended
	// category would occupy row 1 and be skipped on every read.
	catRows, err := cws.Rows()
	if err == nil && len(catRows) == 0 {
		if err := cws.AppendRow(categoriesHeader); err != nil {
			return nil, fmt.Errorf("initialize categories header: %w", err)
		}
	}
	return &Sheet{proposals: pws, categories: cws, now: time.Now}, nil
}

func (s *Sheet) FetchAll() ([]types.Proposal, error) {
	rows, err := s.proposals.Rows()
	if err != nil {
		// Transient backend failure: empty result plus a reportable error,
		// never a crash.
		return []types.Proposal{}, fmt.Errorf("fetch proposals: %w", err)
	}
	if len(rows) < 2 {
		return []types.Proposal{}, nil
	}
	out := make([]types.Proposal, 0, len(rows)-1)
	for _, row := range rows[1:] {
		out = append(out, types.FromRecord(row))
	}
	return out, nil
}

func (s *Sheet) Append(p types.Proposal) error {
	if err := s.proposals.AppendRow(p.Record()); err != nil {
		return fmt.Errorf("append proposal: %w", err)
	}
	return nil
}

// findRow scans the id column for a match and returns the 1-based sheet row.
func (s *Sheet) findRow(id string) (int, types.Proposal, error) {
	rows, err := s.proposals.Rows()
	if err != nil {
		return 0, types.Proposal{}, fmt.Errorf("scan proposals: %w", err)
	}
	for i, row := range rows {
		if i == 0 {
			continue // header
		}
		if len(row) > types.ColID && row[types.ColID] == id {
			return i + 1, types.FromRecord(row), nil
		}
	}
	return 0, types.Proposal{}, types.ErrNotFound
}

func (s *Sheet) FindByID(id string) (types.Proposal, error) {
	_, p, err := s.findRow(id)
	return p, err
}

func (s *Sheet) UpdateFields(id string, fields map[string]string) error {
	rowNum, _, err := s.findRow(id)
	if err != nil {
		return err
	}
	// One positional cell write per field, in stable order. A failure midway
	// leaves earlier fields written; there is no rollback.
	names := make([]string, 0, len(fields))
	for name := range fields {
		if _, ok := types.FieldColumn(name); !ok {
			return types.ErrInvalidField
		}
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		col, _ := types.FieldColumn(name)
		if err := s.proposals.UpdateCell(rowNum, col+1, fields[name]); err != nil {
			return fmt.Errorf("update %s of %s: %w", name, id, err)
		}
	}
	return nil
}

func (s *Sheet) Delete(id string) (bool, error) {
	rowNum, _, err := s.findRow(id)
	if err != nil {
		if errors.Is(err, types.ErrNotFound) {
			return false, nil
		}
		return false, err
	}
	if err := s.proposals.DeleteRow(rowNum); err != nil {
		return false, fmt.Errorf("delete proposal %s: %w", id, err)
	}
	return true, nil
}

func (s *Sheet) FetchCategories() ([]string, error) {
	s.catMu.Lock()
	defer s.catMu.Unlock()

	if s.catCache != nil && s.now().Before(s.catExpiry) {
		out := make([]string, len(s.catCache))
		copy(out, s.catCache)
		return out, nil
	}

	rows, err := s.categories.Rows()
	if err != nil || len(rows) < 2 {
		// Unreachable or empty backing collection: the fixed default set,
		// uncached so the next read retries the backend.
		return types.DefaultCategories(), nil
	}
	names := make([]string, 0, len(rows)-1)
	for _, row := range rows[1:] { // row 1 is a header
		if len(row) > 0 {
			names = append(names, row[0])
		}
	}
	cats := types.DedupeCategories(names)
	if len(cats) == 0 {
		return types.DefaultCategories(), nil
	}
	s.catCache = cats
	s.catExpiry = s.now().Add(categoryCacheTTL)
	out := make([]string, len(cats))
	copy(out, cats)
	return out, nil
}

func (s *Sheet) AppendCategory(name string) error {
	if err := s.categories.AppendRow([]string{name}); err != nil {
		return fmt.Errorf("append category: %w", err)
	}
	s.invalidateCategories()
	return nil
}

func (s *Sheet) RenameCategory(oldName, newName string) (int, error) {
	rows, err := s.categories.Rows()
	if err != nil {
		return 0, fmt.Errorf("scan categories: %w", err)
	}
	catRow := 0
	for i, row := range rows {
		if i == 0 {
			continue // header
		}
		if len(row) > 0 && types.TrimCategory(row[0]) == oldName {
			catRow = i + 1
			break
		}
	}
	if catRow == 0 {
		return 0, types.ErrNotFound
	}
	if err := s.categories.UpdateCell(catRow, 1, newName); err != nil {
		return 0, fmt.Errorf("rename category entry: %w", err)
	}
	s.invalidateCategories()

	// Cascade: the registry entry is already renamed at this point; a crash
	// below leaves proposals referencing the old name, a known window.
	proposalRows, err := s.proposals.Rows()
	if err != nil {
		return 0, fmt.Errorf("scan proposals for cascade: %w", err)
	}
	count := 0
	for i, row := range proposalRows {
		if i == 0 {
			continue
		}
		if len(row) > types.ColCategory && row[types.ColCategory] == oldName {
			if err := s.proposals.UpdateCell(i+1, types.ColCategory+1, newName); err != nil {
				return count, fmt.Errorf("cascade rename to row %d: %w", i+1, err)
			}
			count++
		}
	}
	return count, nil
}

func (s *Sheet) invalidateCategories() {
	s.catMu.Lock()
	s.catCache = nil
	s.catExpiry = time.Time{}
	s.catMu.Unlock()
}

func (s *Sheet) Mode() Mode { return ModeSheet }

func (s *Sheet) Close() error { return nil }
