package export

import (
	"bytes"
	"strings"
	"testing"

	"github.com/pontohq/ponto-backend-go/internal/domain/report"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleTable() report.ExportTable {
	return report.ExportTable{
		Header: report.Header{
			PeriodStart: "2025-01-01",
			PeriodEnd:   "2025-01-31",
			Scope:       "Maria Silva",
			GeneratedAt: "2025-02-01T09:00:00Z",
		},
		Totals: report.Totals{
			TotalHoursFormatted: "176h 30m",
			DaysWorked:          22,
			Delays:              0,
			DelaysComputed:      false,
			Absences:            0,
			AbsencesComputed:    false,
		},
		Rows: []report.Row{
			{Date: "2025-01-02", ClockIn: "09:00", ClockOut: "17:30", TotalHoursFormatted: "8h 30m", StatusLabel: report.StatusLabelComplete},
			{Date: "2025-01-03", ClockIn: "09:05", ClockOut: "-", TotalHoursFormatted: "-", StatusLabel: report.StatusLabelIncomplete},
		},
	}
}

func TestWriteCSV(t *testing.T) {
	var buf bytes.Buffer
	err := WriteCSV(&buf, sampleTable())
	require.NoError(t, err)

	out := buf.String()
	assert.Contains(t, out, "period_start,2025-01-01")
	assert.Contains(t, out, "total_hours,176h 30m")
	assert.Contains(t, out, "delays,-")
	assert.Contains(t, out, "date,clock_in,clock_out,total_hours,status")
	assert.Contains(t, out, "2025-01-02,09:00,17:30,8h 30m,Complete")
	assert.Contains(t, out, "2025-01-03,09:05,-,-,Incomplete")

	// table rows come after the summary block
	assert.Less(t, strings.Index(out, "scope,Maria Silva"), strings.Index(out, "2025-01-02"))
}

func TestWritePDF(t *testing.T) {
	var buf bytes.Buffer
	err := WritePDF(&buf, sampleTable())
	require.NoError(t, err)

	// %PDF magic marker
	assert.True(t, bytes.HasPrefix(buf.Bytes(), []byte("%PDF")))
	assert.Greater(t, buf.Len(), 500)
}

func TestTotalOrDash(t *testing.T) {
	assert.Equal(t, "3", totalOrDash(3, true))
	assert.Equal(t, "0", totalOrDash(0, true))
	assert.Equal(t, "-", totalOrDash(5, false))
}
