package ticket

import "context"

// TicketService drives the support ticket workflow:
// open -> in_review -> resolved (or open -> resolved), resolution idempotent,
// responses append-only in every state.
type TicketService interface {
	Create(ctx context.Context, req CreateTicketRequest) (TicketResponse, error)
	Get(ctx context.Context, id string) (TicketResponse, error)
	List(ctx context.Context, filter TicketFilter) (ListTicketResponse, error)

	// AppendResponse never changes status and is allowed after resolution.
	AppendResponse(ctx context.Context, req AppendResponseRequest) (TicketResponse, error)

	// MarkInReview moves open -> in_review only.
	MarkInReview(ctx context.Context, id string) (TicketResponse, error)

	// MarkResolved resolves from open or in_review; calling it again is a
	// successful no-op.
	MarkResolved(ctx context.Context, id string) (TicketResponse, error)
}
