package timerecord

import (
	"context"
	"time"
)

// TimeRecordRepository defines data access methods for time records.
// All methods include companyID to prevent cross-company data access.
type TimeRecordRepository interface {
	Create(ctx context.Context, rec TimeRecord) (TimeRecord, error)
	GetByID(ctx context.Context, id string, companyID string) (TimeRecord, error)

	// GetByEmployeeAndDate retrieves the record for one employee on one
	// calendar day, used to prevent double clock-in.
	GetByEmployeeAndDate(ctx context.Context, employeeID string, date time.Time, companyID string) (*TimeRecord, error)

	// CloseRecord sets clock_out and total_hours on the open record for the
	// day, guarded by clock_out IS NULL so two clock-outs cannot both land.
	CloseRecord(ctx context.Context, id string, companyID string, clockOut time.Time, totalHours float64) (int64, error)

	List(ctx context.Context, filter TimeRecordFilter, companyID string) ([]TimeRecord, int64, error)

	// ListForRange returns every record in [start, end] with employee name and
	// department joined in, the already-scoped input the aggregator consumes.
	ListForRange(ctx context.Context, companyID string, start, end time.Time, employeeID *string) ([]TimeRecord, error)
}
