package stats

import (
	"time"

	"github.com/pontohq/ponto-backend-go/internal/pkg/validator"
)

// DefaultTrailingDays is the length of the records-by-day window when the
// caller does not choose one.
const DefaultTrailingDays = 7

// Range is an inclusive calendar-day window.
type Range struct {
	Start time.Time
	End   time.Time
}

// Options tunes aggregation; the zero value is valid.
type Options struct {
	// TrailingDays sets the records-by-day window length; 0 means
	// DefaultTrailingDays.
	TrailingDays int
}

// CountMetric distinguishes "computed as zero" from "not yet computed":
// delays and absences have no underlying policy yet, so they are reported as
// zero with Computed false rather than omitted.
type CountMetric struct {
	Value    int  `json:"value"`
	Computed bool `json:"computed"`
}

// DayCount is one bucket of the trailing-day histogram. Buckets are emitted
// in ascending date order, zero-filled, exactly one per day in the window.
type DayCount struct {
	Date  string `json:"date"` // YYYY-MM-DD
	Count int    `json:"count"`
}

// Warning flags a record excluded from aggregation, e.g. a clock-out earlier
// than its clock-in. Aggregation always yields partial results for the valid
// subset instead of failing.
type Warning struct {
	RecordID string `json:"record_id"`
	Reason   string `json:"reason"`
}

// Statistics is the aggregate over a scoped set of time records.
type Statistics struct {
	TotalHours   float64        `json:"total_hours"` // one decimal, round half up
	DaysWorked   int            `json:"days_worked"`
	ByDepartment map[string]int `json:"by_department"`  // department -> distinct employees
	RecordsByDay []DayCount     `json:"records_by_day"` // trailing window ending at range end
	Delays       CountMetric    `json:"delays"`
	Absences     CountMetric    `json:"absences"`
}

// StatisticsRequest is the transport-facing query for the aggregation service.
type StatisticsRequest struct {
	CompanyID    *string `json:"company_id,omitempty"` // admin only
	EmployeeID   *string `json:"employee_id,omitempty"`
	StartDate    string  `json:"start_date"` // YYYY-MM-DD
	EndDate      string  `json:"end_date"`   // YYYY-MM-DD
	TrailingDays int     `json:"trailing_days,omitempty"`
}

func (r *StatisticsRequest) Validate() error {
	var errs validator.ValidationErrors

	if _, ok := validator.IsValidDate(r.StartDate); !ok {
		errs = append(errs, validator.ValidationError{
			Field:   "start_date",
			Message: "start_date must be in YYYY-MM-DD format",
		})
	}

	if _, ok := validator.IsValidDate(r.EndDate); !ok {
		errs = append(errs, validator.ValidationError{
			Field:   "end_date",
			Message: "end_date must be in YYYY-MM-DD format",
		})
	}

	if r.TrailingDays < 0 || r.TrailingDays > 366 {
		errs = append(errs, validator.ValidationError{
			Field:   "trailing_days",
			Message: "trailing_days must be between 0 and 366",
		})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// StatisticsResponse pairs the aggregate with any exclusion warnings.
type StatisticsResponse struct {
	PeriodStart string     `json:"period_start"`
	PeriodEnd   string     `json:"period_end"`
	Statistics  Statistics `json:"statistics"`
	Warnings    []Warning  `json:"warnings,omitempty"`
}
