package engine

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pairplan/pairplan/internal/store"
	"github.com/pairplan/pairplan/pkg/types"
)

var testUsers = []string{"あなた", "彼女"}

type recordingNotifier struct {
	messages []string
	err      error
}

func (r *recordingNotifier) Notify(_ context.Context, text string) error {
	r.messages = append(r.messages, text)
	return r.err
}

func newTestEngine(t *testing.T) (Engine, *store.Memory, *recordingNotifier) {
	t.Helper()
	st := store.NewMemoryEmpty()
	n := &recordingNotifier{}
	e := New(st, n, testUsers, "https://pairplan.example.com/", slog.New(slog.NewTextHandler(io.Discard, nil)))
	e.Now = func() time.Time {
		return time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	}
	return e, st, n
}

func TestSubmit(t *testing.T) {
	e, st, n := newTestEngine(t)

	p, err := e.Submit("彼女", "  温泉旅行  ", "旅行", "2024-04-01")
	require.NoError(t, err)

	assert.NotEmpty(t, p.ID)
	assert.Equal(t, "彼女", p.Author)
	assert.Equal(t, "温泉旅行", p.Title)
	assert.Equal(t, "旅行", p.Category)
	assert.Equal(t, types.StatusPending, p.Status)
	assert.Equal(t, "2024-03-01T12:00:00Z", p.CreatedAt)
	assert.Empty(t, p.ScheduledDate)

	stored, err := st.FindByID(p.ID)
	require.NoError(t, err)
	assert.Equal(t, p, stored)

	require.Len(t, n.messages, 1)
	assert.Contains(t, n.messages[0], "彼女さんが『温泉旅行』を提案しました")
	assert.Contains(t, n.messages[0], "https://pairplan.example.com/")
}

func TestSubmitUniqueIDs(t *testing.T) {
	e, _, _ := newTestEngine(t)

	seen := map[string]bool{}
	for i := 0; i < 10; i++ {
		p, err := e.Submit("あなた", "title", "日常", "")
		require.NoError(t, err)
		assert.False(t, seen[p.ID])
		seen[p.ID] = true
	}
}

func TestSubmitValidation(t *testing.T) {
	e, _, n := newTestEngine(t)

	tests := []struct {
		name    string
		author  string
		title   string
		date    string
		wantErr error
	}{
		{name: "empty title", author: "あなた", title: "   ", wantErr: types.ErrEmptyTitle},
		{name: "unknown author", author: "友人", title: "x", wantErr: types.ErrUnknownAuthor},
		{name: "bad date", author: "あなた", title: "x", date: "04/01/2024", wantErr: types.ErrInvalidDate},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := e.Submit(tc.author, tc.title, "旅行", tc.date)
			assert.ErrorIs(t, err, tc.wantErr)
		})
	}
	assert.Empty(t, n.messages, "rejected submits must not notify")
}

func TestApprove(t *testing.T) {
	e, st, n := newTestEngine(t)
	p, err := e.Submit("彼女", "温泉旅行", "旅行", "")
	require.NoError(t, err)
	n.messages = nil

	approved, err := e.Approve(p.ID)
	require.NoError(t, err)
	assert.Equal(t, types.StatusApproved, approved.Status)

	stored, err := st.FindByID(p.ID)
	require.NoError(t, err)
	assert.Equal(t, types.StatusApproved, stored.Status)
	assert.Empty(t, stored.ScheduledDate)

	require.Len(t, n.messages, 1)
	assert.Contains(t, n.messages[0], "温泉旅行 が承認されました")

	// A second approval finds the proposal already approved.
	_, err = e.Approve(p.ID)
	assert.ErrorIs(t, err, types.ErrInvalidTransition)
}

func TestApproveNotFound(t *testing.T) {
	e, _, _ := newTestEngine(t)
	_, err := e.Approve("missing")
	assert.ErrorIs(t, err, types.ErrNotFound)
}

func TestSchedule(t *testing.T) {
	e, st, n := newTestEngine(t)
	p, err := e.Submit("彼女", "温泉旅行", "旅行", "")
	require.NoError(t, err)
	_, err = e.Approve(p.ID)
	require.NoError(t, err)
	n.messages = nil

	scheduled, err := e.Schedule(p.ID, "2024-04-06")
	require.NoError(t, err)
	assert.Equal(t, types.StatusScheduled, scheduled.Status)
	assert.Equal(t, "2024-04-06", scheduled.ScheduledDate)

	stored, err := st.FindByID(p.ID)
	require.NoError(t, err)
	assert.Equal(t, types.StatusScheduled, stored.Status)
	assert.Equal(t, "2024-04-06", stored.ScheduledDate)

	require.Len(t, n.messages, 1)
	assert.Contains(t, n.messages[0], "2024-04-06")
}

func TestScheduleRequiresApproved(t *testing.T) {
	e, _, _ := newTestEngine(t)
	p, err := e.Submit("あなた", "映画", "日常", "")
	require.NoError(t, err)

	_, err = e.Schedule(p.ID, "2024-04-06")
	assert.ErrorIs(t, err, types.ErrInvalidTransition)
}

func TestScheduleRequiresDate(t *testing.T) {
	e, _, _ := newTestEngine(t)
	p, err := e.Submit("あなた", "映画", "日常", "")
	require.NoError(t, err)
	_, err = e.Approve(p.ID)
	require.NoError(t, err)

	for _, date := range []string{"", "next week", "2024/04/06"} {
		_, err = e.Schedule(p.ID, date)
		assert.ErrorIs(t, err, types.ErrInvalidDate, "date %q", date)
	}
}

func TestEdit(t *testing.T) {
	e, st, _ := newTestEngine(t)
	p, err := e.Submit("あなた", "映画", "日常", "")
	require.NoError(t, err)

	err = e.Edit(p.ID, map[string]string{
		types.FieldTitle:        "映画とディナー",
		types.FieldProposedDate: "2024-05-10",
	})
	require.NoError(t, err)

	stored, err := st.FindByID(p.ID)
	require.NoError(t, err)
	assert.Equal(t, "映画とディナー", stored.Title)
	assert.Equal(t, "2024-05-10", stored.ProposedDate)
	assert.Equal(t, types.StatusPending, stored.Status)
}

func TestEditValidation(t *testing.T) {
	e, _, _ := newTestEngine(t)
	p, err := e.Submit("あなた", "映画", "日常", "")
	require.NoError(t, err)

	tests := []struct {
		name    string
		fields  map[string]string
		wantErr error
	}{
		{name: "unknown field", fields: map[string]string{"author": "彼女"}, wantErr: types.ErrInvalidField},
		{name: "blank title", fields: map[string]string{types.FieldTitle: " "}, wantErr: types.ErrEmptyTitle},
		{name: "bad date", fields: map[string]string{types.FieldProposedDate: "someday"}, wantErr: types.ErrInvalidDate},
		{name: "bad status", fields: map[string]string{types.FieldStatus: "done"}, wantErr: types.ErrInvalidStatus},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.ErrorIs(t, e.Edit(p.ID, tc.fields), tc.wantErr)
		})
	}

	// A category not present in the registry is still accepted.
	assert.NoError(t, e.Edit(p.ID, map[string]string{types.FieldCategory: "未登録カテゴリ"}))
	// Empty field set changes nothing but still requires the proposal.
	assert.NoError(t, e.Edit(p.ID, nil))
}

func TestEditMissingProposal(t *testing.T) {
	e, _, _ := newTestEngine(t)

	err := e.Edit("missing", map[string]string{types.FieldTitle: "x"})
	assert.ErrorIs(t, err, types.ErrNotFound)

	err = e.Edit("missing", nil)
	assert.ErrorIs(t, err, types.ErrNotFound)
}

func TestRemove(t *testing.T) {
	e, _, _ := newTestEngine(t)
	p, err := e.Submit("あなた", "映画", "日常", "")
	require.NoError(t, err)

	removed, err := e.Remove(p.ID)
	require.NoError(t, err)
	assert.True(t, removed)

	removed, err = e.Remove(p.ID)
	require.NoError(t, err)
	assert.False(t, removed)
}

func TestListByStatus(t *testing.T) {
	e, _, _ := newTestEngine(t)
	a, err := e.Submit("あなた", "映画", "日常", "")
	require.NoError(t, err)
	b, err := e.Submit("彼女", "温泉旅行", "旅行", "")
	require.NoError(t, err)
	_, err = e.Approve(b.ID)
	require.NoError(t, err)

	pending, err := e.ListByStatus(types.StatusPending)
	require.NoError(t, err)
	require.Len(t, pending, 1)
	assert.Equal(t, a.ID, pending[0].ID)

	approved, err := e.ListByStatus(types.StatusApproved)
	require.NoError(t, err)
	require.Len(t, approved, 1)
	assert.Equal(t, b.ID, approved[0].ID)

	_, err = e.ListByStatus("done")
	assert.ErrorIs(t, err, types.ErrInvalidStatus)
}

func TestCalendarSortsByScheduledDate(t *testing.T) {
	e, _, _ := newTestEngine(t)

	dates := []string{"2024-06-01", "2024-04-06", "2024-05-10"}
	for _, d := range dates {
		p, err := e.Submit("あなた", "予定 "+d, "日常", "")
		require.NoError(t, err)
		_, err = e.Approve(p.ID)
		require.NoError(t, err)
		_, err = e.Schedule(p.ID, d)
		require.NoError(t, err)
	}

	cal, err := e.Calendar()
	require.NoError(t, err)
	require.Len(t, cal, 3)
	assert.Equal(t, "2024-04-06", cal[0].ScheduledDate)
	assert.Equal(t, "2024-05-10", cal[1].ScheduledDate)
	assert.Equal(t, "2024-06-01", cal[2].ScheduledDate)
}

func TestNotifierFailureDoesNotFailOperation(t *testing.T) {
	st := store.NewMemoryEmpty()
	n := &recordingNotifier{err: errors.New("push endpoint down")}
	e := New(st, n, testUsers, "", slog.New(slog.NewTextHandler(io.Discard, nil)))

	p, err := e.Submit("あなた", "映画", "日常", "")
	require.NoError(t, err)

	stored, err := st.FindByID(p.ID)
	require.NoError(t, err)
	assert.Equal(t, p.ID, stored.ID)
}
