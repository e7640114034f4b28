package timerecord

import "context"

// TimeRecordService defines business logic for clock operations.
type TimeRecordService interface {
	// ClockIn opens today's record for the authenticated employee.
	ClockIn(ctx context.Context, req ClockInRequest) (TimeRecordResponse, error)

	// ClockOut completes today's open record and derives total hours.
	ClockOut(ctx context.Context, req ClockOutRequest) (TimeRecordResponse, error)

	// GetMyRecords lists the authenticated employee's own records.
	GetMyRecords(ctx context.Context, filter TimeRecordFilter) (ListTimeRecordResponse, error)

	// List lists company records with filters (hr/manager/admin).
	List(ctx context.Context, filter TimeRecordFilter) (ListTimeRecordResponse, error)
}
