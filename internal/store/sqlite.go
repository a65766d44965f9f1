package store

import (
	"database/sql"
	_ "embed"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	_ "modernc.org/sqlite"

	"github.com/pairplan/pairplan/pkg/types"
)

//go:embed schema.sql
var schemaSQL string

// dbFileName is the SQLite database file inside the data directory.
const dbFileName = "pairplan.db"

// SQLite is the local durable backend, used when the remote spreadsheet is
// unavailable but a data directory is configured.
type SQLite struct {
	db *sql.DB
}

var _ Store = (*SQLite)(nil)

// NewSQLite opens (or creates) the database under dataDir, applies the
// schema, and seeds the default categories on first run.
func NewSQLite(dataDir string) (*SQLite, error) {
	if dataDir == "" {
		dataDir = "."
	}
	if err := os.MkdirAll(dataDir, 0o755); err != nil {
		return nil, fmt.Errorf("create data dir: %w", err)
	}
	db, err := sql.Open("sqlite", filepath.Join(dataDir, dbFileName))
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	if _, err := db.Exec(schemaSQL); err != nil {
		db.Close()
		return nil, fmt.Errorf("apply schema: %w", err)
	}
	s := &SQLite{db: db}
	if err := s.seedCategories(); err != nil {
		db.Close()
		return nil, err
	}
	return s, nil
}

// seedCategories inserts the built-in category set when the table is empty.
// Idempotent: it only runs on first use.
func (s *SQLite) seedCategories() error {
	var count int
	if err := s.db.QueryRow(`SELECT COUNT(*) FROM categories`).Scan(&count); err != nil {
		return fmt.Errorf("counting categories: %w", err)
	}
	if count > 0 {
		return nil
	}
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("beginning seed transaction: %w", err)
	}
	defer tx.Rollback()
	for _, name := range types.DefaultCategories() {
		if _, err := tx.Exec(`INSERT INTO categories (name) VALUES (?)`, name); err != nil {
			return fmt.Errorf("seeding category %s: %w", name, err)
		}
	}
	return tx.Commit()
}

const proposalColumns = `id, user, title, category, proposed_date, status, created_at, scheduled_date`

func (s *SQLite) FetchAll() ([]types.Proposal, error) {
	rows, err := s.db.Query(`SELECT ` + proposalColumns + ` FROM proposals ORDER BY rowid`)
	if err != nil {
		return []types.Proposal{}, fmt.Errorf("fetch proposals: %w", err)
	}
	defer rows.Close()

	var out []types.Proposal
	for rows.Next() {
		p, err := scanProposal(rows)
		if err != nil {
			return []types.Proposal{}, fmt.Errorf("scan proposal: %w", err)
		}
		out = append(out, p)
	}
	if err := rows.Err(); err != nil {
		return []types.Proposal{}, fmt.Errorf("iterate proposals: %w", err)
	}
	if out == nil {
		out = []types.Proposal{}
	}
	return out, nil
}

func (s *SQLite) Append(p types.Proposal) error {
	_, err := s.db.Exec(
		`INSERT INTO proposals (`+proposalColumns+`) VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		p.ID, p.Author, p.Title, p.Category,
		p.ProposedDate, p.Status, p.CreatedAt, p.ScheduledDate,
	)
	if err != nil {
		return fmt.Errorf("append proposal: %w", err)
	}
	return nil
}

func (s *SQLite) FindByID(id string) (types.Proposal, error) {
	row := s.db.QueryRow(`SELECT `+proposalColumns+` FROM proposals WHERE id = ?`, id)
	var p types.Proposal
	err := row.Scan(&p.ID, &p.Author, &p.Title, &p.Category,
		&p.ProposedDate, &p.Status, &p.CreatedAt, &p.ScheduledDate)
	if err == sql.ErrNoRows {
		return types.Proposal{}, types.ErrNotFound
	}
	if err != nil {
		return types.Proposal{}, fmt.Errorf("find proposal %s: %w", id, err)
	}
	return p, nil
}

func (s *SQLite) UpdateFields(id string, fields map[string]string) error {
	if len(fields) == 0 {
		_, err := s.FindByID(id)
		return err
	}
	names := make([]string, 0, len(fields))
	for name := range fields {
		if _, ok := types.FieldColumn(name); !ok {
			return types.ErrInvalidField
		}
		names = append(names, name)
	}
	sort.Strings(names)

	query := `UPDATE proposals SET `
	args := make([]any, 0, len(names)+1)
	for i, name := range names {
		if i > 0 {
			query += ", "
		}
		// Field names are validated against the fixed layout above; they are
		// never caller-controlled SQL.
		query += name + " = ?"
		args = append(args, fields[name])
	}
	query += ` WHERE id = ?`
	args = append(args, id)

	res, err := s.db.Exec(query, args...)
	if err != nil {
		return fmt.Errorf("update proposal %s: %w", id, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return types.ErrNotFound
	}
	return nil
}

func (s *SQLite) Delete(id string) (bool, error) {
	res, err := s.db.Exec(`DELETE FROM proposals WHERE id = ?`, id)
	if err != nil {
		return false, fmt.Errorf("delete proposal %s: %w", id, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

func (s *SQLite) FetchCategories() ([]string, error) {
	rows, err := s.db.Query(`SELECT name FROM categories ORDER BY rowid`)
	if err != nil {
		return types.DefaultCategories(), nil
	}
	defer rows.Close()

	var names []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return types.DefaultCategories(), nil
		}
		names = append(names, name)
	}
	cats := types.DedupeCategories(names)
	if len(cats) == 0 {
		return types.DefaultCategories(), nil
	}
	return cats, nil
}

func (s *SQLite) AppendCategory(name string) error {
	if _, err := s.db.Exec(`INSERT INTO categories (name) VALUES (?)`, name); err != nil {
		return fmt.Errorf("append category: %w", err)
	}
	return nil
}

func (s *SQLite) RenameCategory(oldName, newName string) (int, error) {
	tx, err := s.db.Begin()
	if err != nil {
		return 0, fmt.Errorf("beginning rename transaction: %w", err)
	}
	defer tx.Rollback()

	res, err := tx.Exec(`UPDATE categories SET name = ? WHERE name = ?`, newName, oldName)
	if err != nil {
		return 0, fmt.Errorf("rename category entry: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, err
	}
	if n == 0 {
		return 0, types.ErrNotFound
	}

	res, err = tx.Exec(`UPDATE proposals SET category = ? WHERE category = ?`, newName, oldName)
	if err != nil {
		return 0, fmt.Errorf("cascade rename: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return 0, err
	}
	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("committing rename: %w", err)
	}
	return int(affected), nil
}

// scanProposal hydrates one result row in column-layout order.
func scanProposal(rows *sql.Rows) (types.Proposal, error) {
	var p types.Proposal
	err := rows.Scan(&p.ID, &p.Author, &p.Title, &p.Category,
		&p.ProposedDate, &p.Status, &p.CreatedAt, &p.ScheduledDate)
	return p, err
}

func (s *SQLite) Mode() Mode { return ModeSQLite }

// Close releases the database handle. Idempotent.
func (s *SQLite) Close() error {
	if s.db == nil {
		return nil
	}
	err := s.db.Close()
	s.db = nil
	return err
}
