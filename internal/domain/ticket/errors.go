package ticket

import "errors"

var (
	ErrTicketNotFound = errors.New("ticket not found")
	// ErrNotReviewable guards the open -> in_review convenience transition.
	ErrNotReviewable = errors.New("ticket can only move to in_review from open")
)
