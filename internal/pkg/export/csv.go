package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"github.com/pontohq/ponto-backend-go/internal/domain/report"
)

var csvHeader = []string{"date", "clock_in", "clock_out", "total_hours", "status"}

// WriteCSV renders the attendance table as UTF-8 CSV. The summary block is
// written as comment-style leading rows so a single file carries both the
// headline numbers and the day-by-day table.
func WriteCSV(w io.Writer, table report.ExportTable) error {
	cw := csv.NewWriter(w)

	summary := [][]string{
		{"period_start", table.Header.PeriodStart},
		{"period_end", table.Header.PeriodEnd},
		{"scope", table.Header.Scope},
		{"generated_at", table.Header.GeneratedAt},
		{"total_hours", table.Totals.TotalHoursFormatted},
		{"days_worked", strconv.Itoa(table.Totals.DaysWorked)},
		{"delays", totalOrDash(table.Totals.Delays, table.Totals.DelaysComputed)},
		{"absences", totalOrDash(table.Totals.Absences, table.Totals.AbsencesComputed)},
		{},
	}
	for _, record := range summary {
		if len(record) == 0 {
			// blank separator row
			if err := cw.Write([]string{""}); err != nil {
				return fmt.Errorf("failed to write CSV summary: %w", err)
			}
			continue
		}
		if err := cw.Write(record); err != nil {
			return fmt.Errorf("failed to write CSV summary: %w", err)
		}
	}

	if err := cw.Write(csvHeader); err != nil {
		return fmt.Errorf("failed to write CSV header: %w", err)
	}

	for _, row := range table.Rows {
		record := []string{row.Date, row.ClockIn, row.ClockOut, row.TotalHoursFormatted, row.StatusLabel}
		if err := cw.Write(record); err != nil {
			return fmt.Errorf("failed to write CSV row: %w", err)
		}
	}

	cw.Flush()
	if err := cw.Error(); err != nil {
		return fmt.Errorf("failed to flush CSV: %w", err)
	}
	return nil
}
