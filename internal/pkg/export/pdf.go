package export

import (
	"fmt"
	"io"

	"github.com/jung-kurt/gofpdf"
	"github.com/pontohq/ponto-backend-go/internal/domain/report"
)

// column widths in mm, tuned for A4 portrait with default margins
var pdfColWidths = [5]float64{35, 35, 35, 45, 40}

var pdfColTitles = [5]string{"Date", "Clock In", "Clock Out", "Total Hours", "Status"}

// WritePDF renders the attendance table as an A4 portrait PDF.
func WritePDF(w io.Writer, table report.ExportTable) error {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 16)
	pdf.Cell(40, 10, "Attendance Report")
	pdf.Ln(12)

	pdf.SetFont("Helvetica", "", 11)
	pdf.Cell(0, 7, fmt.Sprintf("Period: %s to %s", table.Header.PeriodStart, table.Header.PeriodEnd))
	pdf.Ln(6)
	pdf.Cell(0, 7, fmt.Sprintf("Scope: %s", table.Header.Scope))
	pdf.Ln(6)
	pdf.Cell(0, 7, fmt.Sprintf("Generated at: %s", table.Header.GeneratedAt))
	pdf.Ln(10)

	pdf.SetFont("Helvetica", "B", 11)
	pdf.Cell(0, 7, fmt.Sprintf("Total hours: %s", table.Totals.TotalHoursFormatted))
	pdf.Ln(6)
	pdf.Cell(0, 7, fmt.Sprintf("Days worked: %d", table.Totals.DaysWorked))
	pdf.Ln(6)
	pdf.Cell(0, 7, fmt.Sprintf("Delays: %s", totalOrDash(table.Totals.Delays, table.Totals.DelaysComputed)))
	pdf.Ln(6)
	pdf.Cell(0, 7, fmt.Sprintf("Absences: %s", totalOrDash(table.Totals.Absences, table.Totals.AbsencesComputed)))
	pdf.Ln(10)

	pdf.SetFont("Helvetica", "B", 10)
	pdf.SetFillColor(230, 230, 230)
	for i, title := range pdfColTitles {
		pdf.CellFormat(pdfColWidths[i], 8, title, "1", 0, "L", true, 0, "")
	}
	pdf.Ln(-1)

	pdf.SetFont("Helvetica", "", 10)
	for _, row := range table.Rows {
		cells := [5]string{row.Date, row.ClockIn, row.ClockOut, row.TotalHoursFormatted, row.StatusLabel}
		for i, cell := range cells {
			pdf.CellFormat(pdfColWidths[i], 7, cell, "1", 0, "L", false, 0, "")
		}
		pdf.Ln(-1)
	}

	if err := pdf.Output(w); err != nil {
		return fmt.Errorf("failed to render PDF: %w", err)
	}
	return nil
}

func totalOrDash(value int, computed bool) string {
	if !computed {
		return "-"
	}
	return fmt.Sprintf("%d", value)
}
