package report

import (
	"time"

	"github.com/pontohq/ponto-backend-go/internal/pkg/validator"
)

// The ExportTable field names and the hour format produced by FormatHours are
// a stable contract with the rendering collaborators (PDF/CSV writers);
// changing either breaks the column layout of every exported file.

// Row is one line of the normalized attendance table.
type Row struct {
	Date                string `json:"date"` // YYYY-MM-DD
	ClockIn             string `json:"clock_in"`
	ClockOut            string `json:"clock_out"`
	TotalHoursFormatted string `json:"total_hours_formatted"`
	StatusLabel         string `json:"status_label"`
}

// Status labels carried on each row.
const (
	StatusLabelComplete   = "Complete"
	StatusLabelIncomplete = "Incomplete"
	StatusLabelInvalid    = "Invalid"
)

// Header is the metadata block rendered above the table.
type Header struct {
	PeriodStart string `json:"period_start"`
	PeriodEnd   string `json:"period_end"`
	Scope       string `json:"scope"` // e.g. "All employees" or one employee's name
	GeneratedAt string `json:"generated_at"`
}

// Totals are the four headline numbers of the report.
type Totals struct {
	TotalHoursFormatted string `json:"total_hours_formatted"`
	DaysWorked          int    `json:"days_worked"`
	Delays              int    `json:"delays"`
	DelaysComputed      bool   `json:"delays_computed"`
	Absences            int    `json:"absences"`
	AbsencesComputed    bool   `json:"absences_computed"`
}

// ExportTable is handed unchanged to a rendering collaborator. Building it
// performs no I/O.
type ExportTable struct {
	Header Header `json:"header"`
	Totals Totals `json:"totals"`
	Rows   []Row  `json:"rows"`
}

// Metadata describes the report being built.
type Metadata struct {
	PeriodStart time.Time
	PeriodEnd   time.Time
	Scope       string
	GeneratedAt time.Time
}

// AttendanceReportRequest is the transport-facing query.
type AttendanceReportRequest struct {
	CompanyID  *string `json:"company_id,omitempty"` // admin only
	EmployeeID *string `json:"employee_id,omitempty"`
	Month      int     `json:"month"`
	Year       int     `json:"year"`
}

func (r *AttendanceReportRequest) Validate() error {
	var errs validator.ValidationErrors

	if r.Month < 1 || r.Month > 12 {
		errs = append(errs, validator.ValidationError{
			Field:   "month",
			Message: "month must be between 1 and 12",
		})
	}

	if r.Year < 2000 || r.Year > time.Now().Year()+1 {
		errs = append(errs, validator.ValidationError{
			Field:   "year",
			Message: "year is out of range",
		})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}
