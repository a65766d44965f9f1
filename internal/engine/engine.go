// Package engine enforces the proposal lifecycle: submission defaults,
// forward-only status transitions, and the notification side effects that
// follow a successful state-changing write.
package engine

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/pairplan/pairplan/internal/notify"
	"github.com/pairplan/pairplan/internal/store"
	"github.com/pairplan/pairplan/pkg/types"
)

// notifyTimeout bounds the fire-and-forget delivery attempt.
const notifyTimeout = 5 * time.Second

// Engine coordinates lifecycle operations against the storage adapter. All
// durable state lives in Store; the engine holds only transient results.
type Engine struct {
	Store    store.Store
	Notifier notify.Notifier
	Users    []string
	AppURL   string
	Now      func() time.Time
	Log      *slog.Logger
}

// New creates an engine with the default clock. appURL, when non-empty, is
// appended to notification bodies as a link back to the app.
func New(st store.Store, n notify.Notifier, users []string, appURL string, log *slog.Logger) Engine {
	if n == nil {
		n = notify.Nop{}
	}
	if log == nil {
		log = slog.Default()
	}
	return Engine{
		Store:    st,
		Notifier: n,
		Users:    users,
		AppURL:   appURL,
		Now:      time.Now,
		Log:      log,
	}
}

func (e Engine) now() time.Time {
	if e.Now != nil {
		return e.Now()
	}
	return time.Now()
}

// Submit creates a new pending proposal. The title must be non-empty after
// trimming and the author must be one of the two configured identities.
func (e Engine) Submit(author, title, category, proposedDate string) (types.Proposal, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return types.Proposal{}, types.ErrEmptyTitle
	}
	if !e.knownUser(author) {
		return types.Proposal{}, fmt.Errorf("%w: %s", types.ErrUnknownAuthor, author)
	}
	if !types.ValidDate(proposedDate) {
		return types.Proposal{}, fmt.Errorf("%w: %s", types.ErrInvalidDate, proposedDate)
	}

	p := types.Proposal{
		ID:           newID(),
		Author:       author,
		Title:        title,
		Category:     types.TrimCategory(category),
		ProposedDate: proposedDate,
		Status:       types.StatusPending,
		CreatedAt:    e.now().UTC().Format(time.RFC3339),
	}
	if err := e.Store.Append(p); err != nil {
		return types.Proposal{}, err
	}
	e.notify(submitMessage(p.Author, p.Title, e.AppURL))
	return p, nil
}

// Approve transitions a pending proposal to approved. A second call fails
// because the status is no longer pending.
func (e Engine) Approve(id string) (types.Proposal, error) {
	p, err := e.Store.FindByID(id)
	if err != nil {
		return types.Proposal{}, err
	}
	if err := types.EnsureTransition(p.Status, types.StatusApproved); err != nil {
		return types.Proposal{}, fmt.Errorf("approve %s: %w", id, err)
	}
	if err := e.Store.UpdateFields(id, map[string]string{
		types.FieldStatus: types.StatusApproved,
	}); err != nil {
		return types.Proposal{}, err
	}
	p.Status = types.StatusApproved
	e.notify(approveMessage(p.Title, e.AppURL))
	return p, nil
}

// Schedule transitions an approved proposal to scheduled and records the
// agreed date.
func (e Engine) Schedule(id, date string) (types.Proposal, error) {
	if date == "" || !types.ValidDate(date) {
		return types.Proposal{}, fmt.Errorf("%w: %s", types.ErrInvalidDate, date)
	}
	p, err := e.Store.FindByID(id)
	if err != nil {
		return types.Proposal{}, err
	}
	if err := types.EnsureTransition(p.Status, types.StatusScheduled); err != nil {
		return types.Proposal{}, fmt.Errorf("schedule %s: %w", id, err)
	}
	if err := e.Store.UpdateFields(id, map[string]string{
		types.FieldStatus:        types.StatusScheduled,
		types.FieldScheduledDate: date,
	}); err != nil {
		return types.Proposal{}, err
	}
	p.Status = types.StatusScheduled
	p.ScheduledDate = date
	e.notify(scheduleMessage(p.Title, date, e.AppURL))
	return p, nil
}

// Edit applies a partial update to an existing proposal in any status. The
// category is deliberately not checked against the registry here; the rename
// cascade is the only synchronization point.
func (e Engine) Edit(id string, fields map[string]string) error {
	if len(fields) == 0 {
		_, err := e.Store.FindByID(id)
		return err
	}
	for name, value := range fields {
		if _, ok := types.FieldColumn(name); !ok {
			return fmt.Errorf("%w: %s", types.ErrInvalidField, name)
		}
		switch name {
		case types.FieldTitle:
			if strings.TrimSpace(value) == "" {
				return types.ErrEmptyTitle
			}
		case types.FieldProposedDate, types.FieldScheduledDate:
			if !types.ValidDate(value) {
				return fmt.Errorf("%w: %s", types.ErrInvalidDate, value)
			}
		case types.FieldStatus:
			if !types.ValidStatus(value) {
				return fmt.Errorf("%w: %s", types.ErrInvalidStatus, value)
			}
		}
	}
	return e.Store.UpdateFields(id, fields)
}

// Remove deletes a proposal from any status. Not-found reports false with a
// nil error.
func (e Engine) Remove(id string) (bool, error) {
	return e.Store.Delete(id)
}

// ListByStatus filters the full proposal set by status. Pure read, nothing
// is persisted.
func (e Engine) ListByStatus(status string) ([]types.Proposal, error) {
	if !types.ValidStatus(status) {
		return nil, fmt.Errorf("%w: %s", types.ErrInvalidStatus, status)
	}
	all, err := e.Store.FetchAll()
	if err != nil {
		return nil, err
	}
	out := make([]types.Proposal, 0, len(all))
	for _, p := range all {
		if p.Status == status {
			out = append(out, p)
		}
	}
	return out, nil
}

// Calendar returns scheduled proposals ordered by scheduled date. Storage
// order is never changed; display ordering happens here only.
func (e Engine) Calendar() ([]types.Proposal, error) {
	out, err := e.ListByStatus(types.StatusScheduled)
	if err != nil {
		return nil, err
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].ScheduledDate < out[j].ScheduledDate
	})
	return out, nil
}

func (e Engine) knownUser(name string) bool {
	for _, u := range e.Users {
		if u == name {
			return true
		}
	}
	return false
}

// notify fires the hook after a successful write. Failures are logged and
// absorbed; a lifecycle operation never fails because delivery did.
func (e Engine) notify(text string) {
	if e.Notifier == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), notifyTimeout)
	defer cancel()
	if err := e.Notifier.Notify(ctx, text); err != nil {
		if e.Log != nil {
			e.Log.Warn("notification delivery failed", "error", err)
		}
	}
}

// newID returns a UUID v7 so ids stay unique under rapid successive
// creates, with a v4 fallback.
func newID() string {
	id, err := uuid.NewV7()
	if err != nil {
		return uuid.New().String()
	}
	return id.String()
}
