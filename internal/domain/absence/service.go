package absence

import "context"

// AbsenceService drives the absence justification workflow:
// pending -> approved | rejected, terminal states immutable.
type AbsenceService interface {
	Create(ctx context.Context, req CreateAbsenceRequest) (AbsenceResponse, error)
	Get(ctx context.Context, id string) (AbsenceResponse, error)
	List(ctx context.Context, filter AbsenceFilter) (ListAbsenceResponse, error)

	// Approve transitions pending -> approved. Only hr/manager/admin.
	Approve(ctx context.Context, req ReviewAbsenceRequest) (AbsenceResponse, error)

	// Reject transitions pending -> rejected. Only hr/manager/admin.
	Reject(ctx context.Context, req ReviewAbsenceRequest) (AbsenceResponse, error)
}
