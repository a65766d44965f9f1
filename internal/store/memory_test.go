package store

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pairplan/pairplan/pkg/types"
)

func TestMemorySeedData(t *testing.T) {
	m := NewMemory()

	all, err := m.FetchAll()
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, "北海道旅行に行きたい", all[0].Title)
	assert.Equal(t, types.StatusPending, all[0].Status)
	assert.Equal(t, types.StatusApproved, all[1].Status)

	cats, err := m.FetchCategories()
	require.NoError(t, err)
	assert.Equal(t, types.DefaultCategories(), cats)

	assert.Equal(t, ModeMemory, m.Mode())
}

func TestMemoryAppendAndFind(t *testing.T) {
	m := NewMemoryEmpty()
	p := types.Proposal{ID: "x1", Author: "あなた", Title: "映画を見る", Category: "日常", Status: types.StatusPending, CreatedAt: "2024-05-20T09:30:00Z"}
	require.NoError(t, m.Append(p))

	got, err := m.FindByID("x1")
	require.NoError(t, err)
	assert.Equal(t, p, got)

	_, err = m.FindByID("missing")
	assert.ErrorIs(t, err, types.ErrNotFound)
}

func TestMemoryRoundTripAllFields(t *testing.T) {
	m := NewMemoryEmpty()
	p := types.Proposal{
		ID:            "rt1",
		Author:        "彼女",
		Title:         "温泉旅行",
		Category:      "旅行",
		ProposedDate:  "2024-06-01",
		Status:        types.StatusScheduled,
		CreatedAt:     "2024-05-20T09:30:00Z",
		ScheduledDate: "2024-07-01",
	}
	require.NoError(t, m.Append(p))
	all, err := m.FetchAll()
	require.NoError(t, err)
	require.Len(t, all, 1)
	assert.Equal(t, p, all[0])
}

func TestMemoryUpdateFields(t *testing.T) {
	m := NewMemoryEmpty()
	require.NoError(t, m.Append(types.Proposal{ID: "u1", Author: "あなた", Title: "old", Category: "家", Status: types.StatusPending, CreatedAt: "2024-01-01T00:00:00Z"}))

	err := m.UpdateFields("u1", map[string]string{
		types.FieldStatus: types.StatusApproved,
		types.FieldTitle:  "new",
	})
	require.NoError(t, err)

	got, err := m.FindByID("u1")
	require.NoError(t, err)
	assert.Equal(t, "new", got.Title)
	assert.Equal(t, types.StatusApproved, got.Status)
	assert.Equal(t, "家", got.Category, "unlisted fields stay untouched")
	assert.Equal(t, "2024-01-01T00:00:00Z", got.CreatedAt)

	assert.ErrorIs(t, m.UpdateFields("nope", map[string]string{types.FieldTitle: "x"}), types.ErrNotFound)
	assert.ErrorIs(t, m.UpdateFields("u1", map[string]string{"id": "x"}), types.ErrInvalidField)
}

func TestMemoryDelete(t *testing.T) {
	m := NewMemoryEmpty()
	require.NoError(t, m.Append(types.Proposal{ID: "d1", Status: types.StatusScheduled}))

	ok, err := m.Delete("d1")
	require.NoError(t, err)
	assert.True(t, ok)

	all, err := m.FetchAll()
	require.NoError(t, err)
	assert.Empty(t, all)

	ok, err = m.Delete("d1")
	require.NoError(t, err)
	assert.False(t, ok, "not-found delete reports false, not an error")
}

func TestMemoryCategories(t *testing.T) {
	m := NewMemoryEmpty()

	require.NoError(t, m.AppendCategory("スポーツ"))
	cats, err := m.FetchCategories()
	require.NoError(t, err)
	assert.Equal(t, append(types.DefaultCategories(), "スポーツ"), cats)
}

func TestMemoryRenameCategoryCascades(t *testing.T) {
	m := NewMemory()
	require.NoError(t, m.Append(types.Proposal{ID: "3", Author: "彼女", Title: "沖縄", Category: "旅行", Status: types.StatusPending, CreatedAt: "2024-01-01T00:00:00Z"}))

	count, err := m.RenameCategory("旅行", "おでかけ")
	require.NoError(t, err)
	assert.Equal(t, 2, count, "seed proposal plus the appended one")

	cats, err := m.FetchCategories()
	require.NoError(t, err)
	assert.NotContains(t, cats, "旅行")
	assert.Contains(t, cats, "おでかけ")

	all, err := m.FetchAll()
	require.NoError(t, err)
	for _, p := range all {
		assert.NotEqual(t, "旅行", p.Category)
	}

	_, err = m.RenameCategory("旅行", "また")
	assert.ErrorIs(t, err, types.ErrNotFound)
}
