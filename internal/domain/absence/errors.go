package absence

import "errors"

var (
	ErrAbsenceNotFound = errors.New("absence not found")
	// ErrAlreadyReviewed is the invalid-transition error: the absence left the
	// pending state and terminal states are immutable.
	ErrAlreadyReviewed      = errors.New("absence has already been approved or rejected")
	ErrReviewerRoleRequired = errors.New("only hr, manager or admin can review absences")
)
