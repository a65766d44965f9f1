// Package registry manages the shared category list. Names are free-form
// strings; the only structural rule is that the list holds no blanks and no
// duplicates after trimming.
package registry

import (
	"fmt"

	"github.com/pairplan/pairplan/internal/store"
	"github.com/pairplan/pairplan/pkg/types"
)

// Registry wraps the storage adapter's category operations with validation
// and user-facing result messages.
type Registry struct {
	Store store.Store
}

func New(st store.Store) Registry {
	return Registry{Store: st}
}

// List returns the current category names. The adapter already falls back to
// the built-in defaults when the backing collection is empty or unreadable.
func (r Registry) List() ([]string, error) {
	return r.Store.FetchCategories()
}

// Add appends a new category. The name is trimmed first; empty and duplicate
// names are rejected before anything is written.
func (r Registry) Add(name string) (string, error) {
	name = types.TrimCategory(name)
	if name == "" {
		return "", types.ErrEmptyCategory
	}
	existing, err := r.Store.FetchCategories()
	if err != nil {
		return "", err
	}
	for _, c := range existing {
		if c == name {
			return "", fmt.Errorf("%w: %s", types.ErrDuplicateCategory, name)
		}
	}
	if err := r.Store.AppendCategory(name); err != nil {
		return "", err
	}
	return fmt.Sprintf("カテゴリ「%s」を追加しました", name), nil
}

// Rename changes a category name and cascades the change into every proposal
// that carries the old name. Renaming a category to itself is a no-op that
// still reports success.
func (r Registry) Rename(oldName, newName string) (string, error) {
	newName = types.TrimCategory(newName)
	if newName == "" {
		return "", types.ErrEmptyCategory
	}
	if newName == oldName {
		return fmt.Sprintf("カテゴリ「%s」を「%s」に変更しました (提案 0 件を更新)", oldName, newName), nil
	}
	existing, err := r.Store.FetchCategories()
	if err != nil {
		return "", err
	}
	for _, c := range existing {
		if c == newName {
			return "", fmt.Errorf("%w: %s", types.ErrDuplicateCategory, newName)
		}
	}
	affected, err := r.Store.RenameCategory(oldName, newName)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("カテゴリ「%s」を「%s」に変更しました (提案 %d 件を更新)", oldName, newName, affected), nil
}
