package ticket

import (
	"context"
	"time"
)

// TicketRepository defines data access methods for tickets and their
// response threads. All methods include companyID to prevent cross-company
// data access.
type TicketRepository interface {
	Create(ctx context.Context, t Ticket) (Ticket, error)

	// GetByID loads the ticket with its responses ordered by created_at, id.
	GetByID(ctx context.Context, id string, companyID string) (Ticket, error)

	List(ctx context.Context, filter TicketFilter, companyID string) ([]Ticket, int64, error)

	// AppendResponse inserts into the thread with a server-assigned
	// timestamp. Appends are allowed in every state, including resolved.
	AppendResponse(ctx context.Context, r Response) (Response, error)

	// MarkInReview is a conditional update guarded by status = 'open'.
	// Returns rows affected; 0 means missing or not open.
	MarkInReview(ctx context.Context, id, companyID string) (int64, error)

	// MarkResolved is a conditional update guarded by status <> 'resolved',
	// setting resolved_at exactly once. Returns rows affected; 0 on an
	// already-resolved ticket is the idempotent no-op case, not an error.
	MarkResolved(ctx context.Context, id, companyID string, resolvedAt time.Time) (int64, error)
}
