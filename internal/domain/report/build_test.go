package report

import (
	"testing"
	"time"

	"github.com/pontohq/ponto-backend-go/internal/domain/stats"
	"github.com/pontohq/ponto-backend-go/internal/domain/timerecord"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustTime(s string) time.Time {
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		panic(err)
	}
	return t
}

func tp(s string) *time.Time {
	t := mustTime(s)
	return &t
}

func TestBuildExportTable(t *testing.T) {
	t.Parallel()

	records := []timerecord.TimeRecord{
		{
			ID:       "r2",
			Date:     mustTime("2025-01-07T00:00:00Z"),
			ClockIn:  tp("2025-01-07T08:00:00Z"),
			ClockOut: tp("2025-01-07T17:00:00Z"),
		},
		{
			ID:      "r3",
			Date:    mustTime("2025-01-08T00:00:00Z"),
			ClockIn: tp("2025-01-08T09:00:00Z"),
		},
		{
			ID:       "r1",
			Date:     mustTime("2025-01-06T00:00:00Z"),
			ClockIn:  tp("2025-01-06T08:00:00Z"),
			ClockOut: tp("2025-01-06T16:30:00Z"),
		},
		{
			ID:       "bad",
			Date:     mustTime("2025-01-09T00:00:00Z"),
			ClockIn:  tp("2025-01-09T17:00:00Z"),
			ClockOut: tp("2025-01-09T08:00:00Z"),
		},
	}

	statistics := stats.Statistics{
		TotalHours: 17.5,
		DaysWorked: 2,
		Delays:     stats.CountMetric{Value: 0, Computed: false},
		Absences:   stats.CountMetric{Value: 0, Computed: false},
	}

	meta := Metadata{
		PeriodStart: mustTime("2025-01-01T00:00:00Z"),
		PeriodEnd:   mustTime("2025-01-31T00:00:00Z"),
		Scope:       "All employees",
		GeneratedAt: mustTime("2025-02-01T12:00:00Z"),
	}

	table := BuildExportTable(statistics, records, meta)

	assert.Equal(t, "2025-01-01", table.Header.PeriodStart)
	assert.Equal(t, "2025-01-31", table.Header.PeriodEnd)
	assert.Equal(t, "All employees", table.Header.Scope)

	assert.Equal(t, "17h 30m", table.Totals.TotalHoursFormatted)
	assert.Equal(t, 2, table.Totals.DaysWorked)
	assert.False(t, table.Totals.DelaysComputed)
	assert.False(t, table.Totals.AbsencesComputed)

	require.Len(t, table.Rows, 4)

	// Ordered by date regardless of input order.
	assert.Equal(t, "2025-01-06", table.Rows[0].Date)
	assert.Equal(t, "2025-01-07", table.Rows[1].Date)
	assert.Equal(t, "2025-01-08", table.Rows[2].Date)
	assert.Equal(t, "2025-01-09", table.Rows[3].Date)

	assert.Equal(t, Row{
		Date:                "2025-01-06",
		ClockIn:             "08:00",
		ClockOut:            "16:30",
		TotalHoursFormatted: "8h 30m",
		StatusLabel:         StatusLabelComplete,
	}, table.Rows[0])

	// Incomplete pair: no hours, explicit placeholder.
	assert.Equal(t, "-", table.Rows[2].ClockOut)
	assert.Equal(t, "-", table.Rows[2].TotalHoursFormatted)
	assert.Equal(t, StatusLabelIncomplete, table.Rows[2].StatusLabel)

	// Malformed pair keeps both timestamps but is labeled invalid.
	assert.Equal(t, StatusLabelInvalid, table.Rows[3].StatusLabel)
	assert.Equal(t, "-", table.Rows[3].TotalHoursFormatted)
}
