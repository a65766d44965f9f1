package store

import (
	"sync"
	"time"

	"github.com/pairplan/pairplan/pkg/types"
)

// Memory is the mock backend: process-lifetime state, reset on restart,
// seeded with a small demo dataset so the app is usable without any
// configuration.
type Memory struct {
	mu         sync.RWMutex
	proposals  []types.Proposal
	categories []string
}

var _ Store = (*Memory)(nil)

// NewMemory creates a seeded in-memory store.
func NewMemory() *Memory {
	now := time.Now().UTC().Format(time.RFC3339)
	return &Memory{
		proposals: []types.Proposal{
			{
				ID:           "1",
				Author:       "あなた",
				Title:        "北海道旅行に行きたい",
				Category:     "旅行",
				ProposedDate: "2024-05-01",
				Status:       types.StatusPending,
				CreatedAt:    now,
			},
			{
				ID:           "2",
				Author:       "彼女",
				Title:        "新しいソファを見る",
				Category:     "家",
				ProposedDate: "2024-02-20",
				Status:       types.StatusApproved,
				CreatedAt:    now,
			},
		},
		categories: types.DefaultCategories(),
	}
}

// NewMemoryEmpty creates an in-memory store with no seed data. Used by
// tests that need a clean slate.
func NewMemoryEmpty() *Memory {
	return &Memory{categories: types.DefaultCategories()}
}

func (m *Memory) FetchAll() ([]types.Proposal, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]types.Proposal, len(m.proposals))
	copy(out, m.proposals)
	return out, nil
}

func (m *Memory) Append(p types.Proposal) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.proposals = append(m.proposals, p)
	return nil
}

func (m *Memory) FindByID(id string) (types.Proposal, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, p := range m.proposals {
		if p.ID == id {
			return p, nil
		}
	}
	return types.Proposal{}, types.ErrNotFound
}

func (m *Memory) UpdateFields(id string, fields map[string]string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i := range m.proposals {
		if m.proposals[i].ID != id {
			continue
		}
		row := m.proposals[i].Record()
		for field, value := range fields {
			col, ok := types.FieldColumn(field)
			if !ok {
				return types.ErrInvalidField
			}
			row[col] = value
		}
		m.proposals[i] = types.FromRecord(row)
		return nil
	}
	return types.ErrNotFound
}

func (m *Memory) Delete(id string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i := range m.proposals {
		if m.proposals[i].ID == id {
			m.proposals = append(m.proposals[:i], m.proposals[i+1:]...)
			return true, nil
		}
	}
	return false, nil
}

func (m *Memory) FetchCategories() ([]string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	cats := types.DedupeCategories(m.categories)
	if len(cats) == 0 {
		return types.DefaultCategories(), nil
	}
	return cats, nil
}

func (m *Memory) AppendCategory(name string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.categories = append(m.categories, name)
	return nil
}

func (m *Memory) RenameCategory(oldName, newName string) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	found := false
	for i, c := range m.categories {
		if types.TrimCategory(c) == oldName {
			m.categories[i] = newName
			found = true
			break
		}
	}
	if !found {
		return 0, types.ErrNotFound
	}

	count := 0
	for i := range m.proposals {
		if m.proposals[i].Category == oldName {
			m.proposals[i].Category = newName
			count++
		}
	}
	return count, nil
}

func (m *Memory) Mode() Mode { return ModeMemory }

func (m *Memory) Close() error { return nil }
