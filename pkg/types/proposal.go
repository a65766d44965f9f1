package types

import "time"

// Proposal statuses. A proposal only moves forward through these states;
// deletion is physical and allowed from any state.
const (
	StatusPending   = "pending"
	StatusApproved  = "approved"
	StatusScheduled = "scheduled"
)

// validStatuses is the set of recognized proposal status values.
var validStatuses = map[string]bool{
	StatusPending:   true,
	StatusApproved:  true,
	StatusScheduled: true,
}

// ValidStatus reports whether s is a recognized proposal status.
func ValidStatus(s string) bool {
	return validStatuses[s]
}

// DateLayout is the wire format for proposed and scheduled dates.
// An empty string means the date is absent.
const DateLayout = "2006-01-02"

// Proposal represents one suggested shared activity.
//
// ProposedDate and ScheduledDate are stored as DateLayout strings and
// CreatedAt as an RFC 3339 timestamp, matching the persisted row layout so
// a round trip through any backend is lossless.
type Proposal struct {
	ID            string `json:"id"`
	Author        string `json:"user"`
	Title         string `json:"title"`
	Category      string `json:"category"`
	ProposedDate  string `json:"proposed_date,omitempty"`
	Status        string `json:"status"`
	CreatedAt     string `json:"created_at"`
	ScheduledDate string `json:"scheduled_date,omitempty"`
}

// EnsureTransition checks that a proposal may move from one status to
// another. Statuses only advance: pending -> approved -> scheduled.
// A repeated transition fails because the source status no longer matches.
func EnsureTransition(from, to string) error {
	switch from {
	case StatusPending:
		if to == StatusApproved {
			return nil
		}
	case StatusApproved:
		if to == StatusScheduled {
			return nil
		}
	}
	return ErrInvalidTransition
}

// ValidDate reports whether s is empty or a well-formed DateLayout date.
func ValidDate(s string) bool {
	if s == "" {
		return true
	}
	_, err := time.Parse(DateLayout, s)
	return err == nil
}
