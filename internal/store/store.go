// Package store implements the storage adapter for proposal and category
// records. Three interchangeable backends exist: a spreadsheet-backed remote
// store, a local SQLite store, and an in-memory mock. Open selects one at
// startup, degrading from remote to local to memory so a missing credential
// or unreachable service never blocks the app.
package store

import "github.com/pairplan/pairplan/pkg/types"

// Mode identifies which backend the adapter ended up on. The caller surfaces
// a non-blocking notice when the mode is not ModeSheet.
type Mode string

const (
	ModeSheet  Mode = "sheet"
	ModeSQLite Mode = "sqlite"
	ModeMemory Mode = "memory"
)

// Store is the uniform read/write contract over proposals and categories.
// Every method is a single blocking round trip against the backend; not-found
// is a normal outcome, reported as types.ErrNotFound or a false boolean, not
// a crash.
type Store interface {
	// FetchAll returns every stored proposal.
	FetchAll() ([]types.Proposal, error)

	// Append durably stores a new proposal in the fixed positional layout.
	Append(p types.Proposal) error

	// FindByID locates one proposal. Returns types.ErrNotFound when absent.
	FindByID(id string) (types.Proposal, error)

	// UpdateFields applies a partial update; unlisted fields are untouched.
	// Multiple field writes are not guaranteed atomic.
	UpdateFields(id string, fields map[string]string) error

	// Delete physically removes the proposal. Not-found reports false with
	// a nil error.
	Delete(id string) (bool, error)

	// FetchCategories returns the ordered unique category names, falling
	// back to the built-in default set when the backing collection is
	// unreachable or empty. Never returns an empty set.
	FetchCategories() ([]string, error)

	// AppendCategory adds a name to the backing collection. The caller is
	// responsible for trim and duplicate validation.
	AppendCategory(name string) error

	// RenameCategory updates the matching registry entry and cascades the
	// rename to every proposal tagged with oldName, returning the number of
	// proposals affected. Returns types.ErrNotFound when oldName is not in
	// the backing collection.
	RenameCategory(oldName, newName string) (int, error)

	// Mode reports the selected backend.
	Mode() Mode

	// Close releases backend resources. Idempotent.
	Close() error
}
