package absence

import (
	"context"
	"time"
)

// AbsenceRepository defines data access methods for absences.
// All methods include companyID to prevent cross-company data access.
type AbsenceRepository interface {
	Create(ctx context.Context, a Absence) (Absence, error)
	GetByID(ctx context.Context, id string, companyID string) (Absence, error)
	List(ctx context.Context, filter AbsenceFilter, companyID string) ([]Absence, int64, error)

	// Review performs the workflow transition as a single conditional update
	// guarded by status = 'pending'. It returns the number of rows affected:
	// 0 means the absence is missing or already terminal, and the caller
	// distinguishes the two with GetByID. Two concurrent reviews can never
	// both report 1.
	Review(ctx context.Context, id, companyID string, to Status, reviewerID string, notes *string, reviewedAt time.Time) (int64, error)

	// CountByStatus returns the per-status totals in one grouped query.
	CountByStatus(ctx context.Context, companyID string) (StatusCounts, error)
}
