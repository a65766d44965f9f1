package types

// The persisted row layout is positional: 8 fixed columns. Backends encode
// and decode by position, never by name, so existing stored data stays
// readable across versions.
const (
	ColID = iota
	ColAuthor
	ColTitle
	ColCategory
	ColProposedDate
	ColStatus
	ColCreatedAt
	ColScheduledDate

	ColumnCount = 8
)

// Header is the header row written to an empty backing sheet and to CSV
// exports.
var Header = []string{
	"id", "user", "title", "category",
	"proposed_date", "status", "created_at", "scheduled_date",
}

// Updatable field names accepted by Store.UpdateFields. The id, user and
// created_at columns are immutable after creation.
const (
	FieldTitle         = "title"
	FieldCategory      = "category"
	FieldProposedDate  = "proposed_date"
	FieldStatus        = "status"
	FieldScheduledDate = "scheduled_date"
)

// fieldColumns maps updatable field names to their zero-based column index.
var fieldColumns = map[string]int{
	FieldTitle:         ColTitle,
	FieldCategory:      ColCategory,
	FieldProposedDate:  ColProposedDate,
	FieldStatus:        ColStatus,
	FieldScheduledDate: ColScheduledDate,
}

// FieldColumn returns the zero-based column index for an updatable field
// name. The second return is false for unknown or immutable fields.
func FieldColumn(field string) (int, bool) {
	col, ok := fieldColumns[field]
	return col, ok
}

// Record encodes the proposal as a positional row in the fixed 8-column
// layout.
func (p Proposal) Record() []string {
	return []string{
		p.ID, p.Author, p.Title, p.Category,
		p.ProposedDate, p.Status, p.CreatedAt, p.ScheduledDate,
	}
}

// FromRecord decodes a positional row into a Proposal. Short rows are padded
// with empty strings and long rows are truncated, so rows written by older
// or newer layouts still decode.
func FromRecord(row []string) Proposal {
	padded := make([]string, ColumnCount)
	copy(padded, row)
	return Proposal{
		ID:            padded[ColID],
		Author:        padded[ColAuthor],
		Title:         padded[ColTitle],
		Category:      padded[ColCategory],
		ProposedDate:  padded[ColProposedDate],
		Status:        padded[ColStatus],
		CreatedAt:     padded[ColCreatedAt],
		ScheduledDate: padded[ColScheduledDate],
	}
}
