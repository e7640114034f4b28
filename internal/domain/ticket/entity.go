package ticket

import "time"

// Status is the closed set of ticket states. Transitions only ever move
// forward: open -> in_review -> resolved, or open -> resolved directly.
type Status string

const (
	StatusOpen     Status = "open"
	StatusInReview Status = "in_review"
	StatusResolved Status = "resolved"
)

func (s Status) IsValid() bool {
	switch s {
	case StatusOpen, StatusInReview, StatusResolved:
		return true
	}
	return false
}

// Terminal reports whether the status admits no further transition. Responses
// may still be appended after resolution as an audit trail.
func (s Status) Terminal() bool {
	return s == StatusResolved
}

type Priority string

const (
	PriorityLow    Priority = "low"
	PriorityMedium Priority = "medium"
	PriorityHigh   Priority = "high"
)

func (p Priority) IsValid() bool {
	switch p {
	case PriorityLow, PriorityMedium, PriorityHigh:
		return true
	}
	return false
}

// Ticket is an internal support request opened by an employee.
type Ticket struct {
	ID          string
	CompanyID   string
	EmployeeID  string // opener
	Subject     string
	Description string
	Priority    Priority
	Status      Status
	ResolvedAt  *time.Time
	CreatedAt   time.Time
	UpdatedAt   time.Time

	// Responses are append-only, totally ordered by created_at (id as
	// tiebreaker). Consumers must never reorder them.
	Responses []Response

	// DTO
	EmployeeName *string
}

// Response is one entry in a ticket's threaded log. The timestamp is
// server-assigned on append.
type Response struct {
	ID        string
	TicketID  string
	AuthorID  string
	Message   string
	CreatedAt time.Time

	// DTO
	AuthorName *string
}
