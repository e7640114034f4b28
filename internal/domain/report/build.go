package report

import (
	"sort"
	"time"

	"github.com/pontohq/ponto-backend-go/internal/domain/stats"
	"github.com/pontohq/ponto-backend-go/internal/domain/timerecord"
)

const (
	dateLayout = "2006-01-02"
	timeLayout = "15:04"
)

// BuildExportTable normalizes a statistics value and the records it was
// computed from into the tabular contract consumed by the rendering
// collaborators. Pure: no I/O, no clock (GeneratedAt comes from meta).
func BuildExportTable(statistics stats.Statistics, records []timerecord.TimeRecord, meta Metadata) ExportTable {
	rows := make([]Row, 0, len(records))
	for _, rec := range records {
		rows = append(rows, buildRow(rec))
	}

	// Rows ordered by date, then clock-in.
	sort.SliceStable(rows, func(i, j int) bool {
		if rows[i].Date != rows[j].Date {
			return rows[i].Date < rows[j].Date
		}
		return rows[i].ClockIn < rows[j].ClockIn
	})

	return ExportTable{
		Header: Header{
			PeriodStart: meta.PeriodStart.Format(dateLayout),
			PeriodEnd:   meta.PeriodEnd.Format(dateLayout),
			Scope:       meta.Scope,
			GeneratedAt: meta.GeneratedAt.Format(time.RFC3339),
		},
		Totals: Totals{
			TotalHoursFormatted: FormatHours(statistics.TotalHours),
			DaysWorked:          statistics.DaysWorked,
			Delays:              statistics.Delays.Value,
			DelaysComputed:      statistics.Delays.Computed,
			Absences:            statistics.Absences.Value,
			AbsencesComputed:    statistics.Absences.Computed,
		},
		Rows: rows,
	}
}

func buildRow(rec timerecord.TimeRecord) Row {
	row := Row{
		Date:                rec.Date.Format(dateLayout),
		ClockIn:             "-",
		ClockOut:            "-",
		TotalHoursFormatted: "-",
		StatusLabel:         StatusLabelIncomplete,
	}

	if rec.ClockIn != nil {
		row.ClockIn = rec.ClockIn.Format(timeLayout)
	}
	if rec.ClockOut != nil {
		row.ClockOut = rec.ClockOut.Format(timeLayout)
	}

	switch {
	case rec.Malformed():
		row.StatusLabel = StatusLabelInvalid
	case rec.Complete():
		row.StatusLabel = StatusLabelComplete
		hours := rec.ClockOut.Sub(*rec.ClockIn).Hours()
		if rec.TotalHours != nil {
			hours = *rec.TotalHours
		}
		row.TotalHoursFormatted = FormatHours(hours)
	}

	return row
}
