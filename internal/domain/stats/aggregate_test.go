package stats

import (
	"math/rand"
	"testing"
	"time"

	"github.com/pontohq/ponto-backend-go/internal/domain/timerecord"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func day(s string) time.Time {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		panic(err)
	}
	return t
}

func ts(s string) *time.Time {
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		panic(err)
	}
	return &t
}

func rec(id, employeeID, date string, clockIn, clockOut *time.Time, dept string) timerecord.TimeRecord {
	r := timerecord.TimeRecord{
		ID:         id,
		CompanyID:  "company-a",
		EmployeeID: employeeID,
		Date:       day(date),
		ClockIn:    clockIn,
		ClockOut:   clockOut,
	}
	if dept != "" {
		r.EmployeeDepartment = &dept
	}
	return r
}

func TestAggregate_EmptyInput(t *testing.T) {
	t.Parallel()

	got, warnings, err := Aggregate(nil, Range{Start: day("2025-01-01"), End: day("2025-01-31")}, Options{})
	require.NoError(t, err)

	assert.Zero(t, got.TotalHours)
	assert.Zero(t, got.DaysWorked)
	assert.Empty(t, got.ByDepartment)
	assert.Empty(t, warnings)

	// Zero-filled trailing window, never omitted.
	require.Len(t, got.RecordsByDay, DefaultTrailingDays)
	for _, dc := range got.RecordsByDay {
		assert.Zero(t, dc.Count)
	}
	assert.Equal(t, "2025-01-25", got.RecordsByDay[0].Date)
	assert.Equal(t, "2025-01-31", got.RecordsByDay[6].Date)
}

func TestAggregate_EndBeforeStart(t *testing.T) {
	t.Parallel()

	_, _, err := Aggregate(nil, Range{Start: day("2025-02-01"), End: day("2025-01-01")}, Options{})
	assert.ErrorIs(t, err, ErrInvalidRange)
}

func TestAggregate_JanuaryScenario(t *testing.T) {
	t.Parallel()

	// 4 complete pairs totaling 32 hours plus 1 incomplete (clock-in only).
	records := []timerecord.TimeRecord{
		rec("r1", "emp-1", "2025-01-06", ts("2025-01-06T08:00:00Z"), ts("2025-01-06T16:00:00Z"), "Engenharia"),
		rec("r2", "emp-1", "2025-01-07", ts("2025-01-07T08:00:00Z"), ts("2025-01-07T16:00:00Z"), "Engenharia"),
		rec("r3", "emp-1", "2025-01-08", ts("2025-01-08T09:00:00Z"), ts("2025-01-08T17:00:00Z"), "Engenharia"),
		rec("r4", "emp-1", "2025-01-09", ts("2025-01-09T08:30:00Z"), ts("2025-01-09T16:30:00Z"), "Engenharia"),
		rec("r5", "emp-1", "2025-01-10", ts("2025-01-10T08:00:00Z"), nil, "Engenharia"),
	}

	got, warnings, err := Aggregate(records, Range{Start: day("2025-01-01"), End: day("2025-01-31")}, Options{})
	require.NoError(t, err)
	assert.Empty(t, warnings)

	assert.Equal(t, 32.0, got.TotalHours)
	assert.Equal(t, 4, got.DaysWorked, "incomplete day must not count as worked")
	assert.Equal(t, map[string]int{"Engenharia": 1}, got.ByDepartment)
}

func TestAggregate_OrderInvariant(t *testing.T) {
	t.Parallel()

	records := []timerecord.TimeRecord{
		rec("r1", "emp-1", "2025-01-06", ts("2025-01-06T08:00:00Z"), ts("2025-01-06T16:15:00Z"), "Engenharia"),
		rec("r2", "emp-2", "2025-01-06", ts("2025-01-06T09:00:00Z"), ts("2025-01-06T18:00:00Z"), "Comercial"),
		rec("r3", "emp-1", "2025-01-07", ts("2025-01-07T08:00:00Z"), ts("2025-01-07T12:30:00Z"), "Engenharia"),
		rec("r4", "emp-3", "2025-01-08", ts("2025-01-08T10:00:00Z"), nil, "Comercial"),
	}
	rng := Range{Start: day("2025-01-01"), End: day("2025-01-10")}

	want, _, err := Aggregate(records, rng, Options{})
	require.NoError(t, err)
	assert.GreaterOrEqual(t, want.TotalHours, 0.0)

	shuffled := make([]timerecord.TimeRecord, len(records))
	copy(shuffled, records)
	rnd := rand.New(rand.NewSource(42))
	for i := 0; i < 10; i++ {
		rnd.Shuffle(len(shuffled), func(a, b int) { shuffled[a], shuffled[b] = shuffled[b], shuffled[a] })
		got, _, err := Aggregate(shuffled, rng, Options{})
		require.NoError(t, err)
		assert.Equal(t, want, got)
	}
}

func TestAggregate_DaysWorkedBoundedByDistinctDates(t *testing.T) {
	t.Parallel()

	// Two complete records on the same date count as one worked day.
	records := []timerecord.TimeRecord{
		rec("r1", "emp-1", "2025-01-06", ts("2025-01-06T08:00:00Z"), ts("2025-01-06T12:00:00Z"), "Engenharia"),
		rec("r2", "emp-1", "2025-01-06", ts("2025-01-06T13:00:00Z"), ts("2025-01-06T17:00:00Z"), "Engenharia"),
		rec("r3", "emp-2", "2025-01-07", ts("2025-01-07T08:00:00Z"), nil, "Engenharia"),
	}

	got, _, err := Aggregate(records, Range{Start: day("2025-01-01"), End: day("2025-01-10")}, Options{})
	require.NoError(t, err)

	assert.Equal(t, 1, got.DaysWorked)
	assert.LessOrEqual(t, got.DaysWorked, 2, "never exceeds distinct dates in input")
	assert.Equal(t, 8.0, got.TotalHours)
}

func TestAggregate_IncompleteDayNotDoubleCounted(t *testing.T) {
	t.Parallel()

	// A date with both an incomplete record and a completed pair counts once.
	records := []timerecord.TimeRecord{
		rec("r1", "emp-1", "2025-01-06", ts("2025-01-06T08:00:00Z"), nil, "Engenharia"),
		rec("r2", "emp-2", "2025-01-06", ts("2025-01-06T09:00:00Z"), ts("2025-01-06T17:00:00Z"), "Engenharia"),
	}

	got, _, err := Aggregate(records, Range{Start: day("2025-01-01"), End: day("2025-01-10")}, Options{})
	require.NoError(t, err)
	assert.Equal(t, 1, got.DaysWorked)
}

func TestAggregate_MalformedRecordWarns(t *testing.T) {
	t.Parallel()

	records := []timerecord.TimeRecord{
		// clock-out before clock-in: excluded, warned about, never aborts
		rec("bad", "emp-1", "2025-01-06", ts("2025-01-06T17:00:00Z"), ts("2025-01-06T08:00:00Z"), "Engenharia"),
		rec("ok", "emp-2", "2025-01-07", ts("2025-01-07T08:00:00Z"), ts("2025-01-07T16:00:00Z"), "Comercial"),
	}

	got, warnings, err := Aggregate(records, Range{Start: day("2025-01-01"), End: day("2025-01-10")}, Options{})
	require.NoError(t, err)

	require.Len(t, warnings, 1)
	assert.Equal(t, "bad", warnings[0].RecordID)

	assert.Equal(t, 8.0, got.TotalHours)
	assert.Equal(t, 1, got.DaysWorked)
	assert.NotContains(t, got.ByDepartment, "Engenharia", "excluded record contributes nothing")
}

func TestAggregate_TrailingWindow(t *testing.T) {
	t.Parallel()

	records := []timerecord.TimeRecord{
		rec("r1", "emp-1", "2025-01-29", ts("2025-01-29T08:00:00Z"), ts("2025-01-29T16:00:00Z"), "Engenharia"),
		rec("r2", "emp-2", "2025-01-29", ts("2025-01-29T09:00:00Z"), nil, "Comercial"),
		rec("r3", "emp-1", "2025-01-31", ts("2025-01-31T08:00:00Z"), ts("2025-01-31T16:00:00Z"), "Engenharia"),
		// Outside the trailing window but inside the range: not in the histogram.
		rec("r4", "emp-1", "2025-01-02", ts("2025-01-02T08:00:00Z"), ts("2025-01-02T16:00:00Z"), "Engenharia"),
	}

	got, _, err := Aggregate(records, Range{Start: day("2025-01-01"), End: day("2025-01-31")}, Options{TrailingDays: 3})
	require.NoError(t, err)

	require.Len(t, got.RecordsByDay, 3)
	assert.Equal(t, []DayCount{
		{Date: "2025-01-29", Count: 2},
		{Date: "2025-01-30", Count: 0},
		{Date: "2025-01-31", Count: 1},
	}, got.RecordsByDay)
}

func TestAggregate_ByDepartmentCountsEmployeesOnce(t *testing.T) {
	t.Parallel()

	records := []timerecord.TimeRecord{
		rec("r1", "emp-1", "2025-01-06", ts("2025-01-06T08:00:00Z"), ts("2025-01-06T16:00:00Z"), "Engenharia"),
		rec("r2", "emp-1", "2025-01-07", ts("2025-01-07T08:00:00Z"), ts("2025-01-07T16:00:00Z"), "Engenharia"),
		rec("r3", "emp-2", "2025-01-07", ts("2025-01-07T08:00:00Z"), ts("2025-01-07T16:00:00Z"), "Engenharia"),
		rec("r4", "emp-3", "2025-01-07", ts("2025-01-07T08:00:00Z"), nil, "Comercial"),
	}

	got, _, err := Aggregate(records, Range{Start: day("2025-01-01"), End: day("2025-01-10")}, Options{})
	require.NoError(t, err)

	assert.Equal(t, map[string]int{"Engenharia": 2, "Comercial": 1}, got.ByDepartment)
}

func TestAggregate_RoundingHalfUp(t *testing.T) {
	t.Parallel()

	// 7h45m + 15m = 8h00m exactly; 7h + 3m = 7.05h rounds up to 7.1.
	records := []timerecord.TimeRecord{
		rec("r1", "emp-1", "2025-01-06", ts("2025-01-06T08:00:00Z"), ts("2025-01-06T15:03:00Z"), "Engenharia"),
	}

	got, _, err := Aggregate(records, Range{Start: day("2025-01-01"), End: day("2025-01-10")}, Options{})
	require.NoError(t, err)
	assert.Equal(t, 7.1, got.TotalHours)
}

func TestAggregate_PlaceholderMetricsExplicit(t *testing.T) {
	t.Parallel()

	got, _, err := Aggregate(nil, Range{Start: day("2025-01-01"), End: day("2025-01-07")}, Options{})
	require.NoError(t, err)

	// Zero with Computed=false signals "no lateness policy yet", not
	// "computed as zero".
	assert.Equal(t, CountMetric{Value: 0, Computed: false}, got.Delays)
	assert.Equal(t, CountMetric{Value: 0, Computed: false}, got.Absences)
}
