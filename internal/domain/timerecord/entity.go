package timerecord

import "time"

// TimeRecord is one employee-day of clock activity. TotalHours is derived and
// only present when both timestamps exist; a record with a single timestamp is
// incomplete and contributes nothing to hour totals.
type TimeRecord struct {
	ID         string
	CompanyID  string
	EmployeeID string
	Date       time.Time // calendar day, time-of-day zeroed
	ClockIn    *time.Time
	ClockOut   *time.Time
	TotalHours *float64
	CreatedAt  time.Time
	UpdatedAt  time.Time

	// DTO
	EmployeeName       *string
	EmployeeDepartment *string
}

// Complete reports whether the record has a full clock-in/clock-out pair.
func (r TimeRecord) Complete() bool {
	return r.ClockIn != nil && r.ClockOut != nil
}

// Malformed reports a pair whose clock-out precedes clock-in. Such records are
// excluded from aggregation and reported as warnings.
func (r TimeRecord) Malformed() bool {
	return r.Complete() && r.ClockOut.Before(*r.ClockIn)
}
