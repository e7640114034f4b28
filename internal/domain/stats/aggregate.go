package stats

import (
	"time"

	"github.com/pontohq/ponto-backend-go/internal/domain/timerecord"
)

const dateLayout = "2006-01-02"

// Aggregate reduces an already-scoped set of time records over the inclusive
// range rng into period statistics. It is pure: no clock, no I/O, and the
// result does not depend on input order. Callers must only ever hand it
// records the scoping filter has approved.
func Aggregate(records []timerecord.TimeRecord, rng Range, opts Options) (Statistics, []Warning, error) {
	if rng.End.Before(rng.Start) {
		return Statistics{}, nil, ErrInvalidRange
	}

	trailing := opts.TrailingDays
	if trailing <= 0 {
		trailing = DefaultTrailingDays
	}

	var warnings []Warning
	var totalSeconds int64
	workedDays := make(map[string]struct{})
	deptEmployees := make(map[string]map[string]struct{})
	countsByDay := make(map[string]int)

	for _, rec := range records {
		day := rec.Date.Format(dateLayout)

		if rec.Malformed() {
			warnings = append(warnings, Warning{
				RecordID: rec.ID,
				Reason:   "clock-out earlier than clock-in",
			})
			continue
		}

		countsByDay[day]++

		if dept := recordDepartment(rec); dept != "" {
			if deptEmployees[dept] == nil {
				deptEmployees[dept] = make(map[string]struct{})
			}
			deptEmployees[dept][rec.EmployeeID] = struct{}{}
		}

		if !rec.Complete() {
			// Incomplete pairs never count toward hours or days worked.
			continue
		}

		if rec.TotalHours != nil {
			totalSeconds += int64(*rec.TotalHours*3600 + 0.5)
		} else {
			totalSeconds += int64(rec.ClockOut.Sub(*rec.ClockIn) / time.Second)
		}
		workedDays[day] = struct{}{}
	}

	byDepartment := make(map[string]int, len(deptEmployees))
	for dept, employees := range deptEmployees {
		byDepartment[dept] = len(employees)
	}

	return Statistics{
		TotalHours:   roundHalfUp1(totalSeconds),
		DaysWorked:   len(workedDays),
		ByDepartment: byDepartment,
		RecordsByDay: trailingWindow(countsByDay, rng.End, trailing),
		Delays:       CountMetric{Value: 0, Computed: false},
		Absences:     CountMetric{Value: 0, Computed: false},
	}, warnings, nil
}

// trailingWindow builds the zero-filled histogram for the last n days ending
// at end, ascending, exactly n entries.
func trailingWindow(countsByDay map[string]int, end time.Time, n int) []DayCount {
	window := make([]DayCount, 0, n)
	for i := n - 1; i >= 0; i-- {
		day := end.AddDate(0, 0, -i).Format(dateLayout)
		window = append(window, DayCount{Date: day, Count: countsByDay[day]})
	}
	return window
}

// roundHalfUp1 converts a duration in seconds to hours with one decimal
// place, rounding half up. Integer arithmetic keeps boundary values such as
// 7h03m (exactly 7.05h) deterministic, which float rounding would not.
func roundHalfUp1(seconds int64) float64 {
	tenths := (seconds*10 + 1800) / 3600
	return float64(tenths) / 10
}

func recordDepartment(rec timerecord.TimeRecord) string {
	if rec.EmployeeDepartment == nil {
		return ""
	}
	return *rec.EmployeeDepartment
}
