package report

import (
	"context"
	"fmt"
	"time"

	"github.com/pontohq/ponto-backend-go/internal/domain/employee"
	"github.com/pontohq/ponto-backend-go/internal/domain/report"
	"github.com/pontohq/ponto-backend-go/internal/domain/stats"
	"github.com/pontohq/ponto-backend-go/internal/domain/timerecord"
	"github.com/pontohq/ponto-backend-go/internal/domain/user"
)

type ReportServiceImpl struct {
	recordRepo   timerecord.TimeRecordRepository
	employeeRepo employee.EmployeeRepository
	now          func() time.Time
}

func NewReportService(recordRepo timerecord.TimeRecordRepository, employeeRepo employee.EmployeeRepository) report.ReportService {
	return &ReportServiceImpl{
		recordRepo:   recordRepo,
		employeeRepo: employeeRepo,
		now:          time.Now,
	}
}

// GenerateAttendanceReport implements report.ReportService. Aggregates one
// calendar month and normalizes it into the export contract; rendering is the
// handler's concern.
func (s *ReportServiceImpl) GenerateAttendanceReport(ctx context.Context, req report.AttendanceReportRequest) (report.ExportTable, error) {
	scope, err := user.ScopeFromContext(ctx)
	if err != nil {
		return report.ExportTable{}, err
	}
	if !scope.Can(user.PermissionReportsExport) {
		return report.ExportTable{}, user.ErrInsufficientPermissions
	}

	if err := req.Validate(); err != nil {
		return report.ExportTable{}, err
	}

	companyID, err := scope.ResolveCompany(req.CompanyID)
	if err != nil {
		return report.ExportTable{}, err
	}

	start := time.Date(req.Year, time.Month(req.Month), 1, 0, 0, 0, 0, time.UTC)
	end := start.AddDate(0, 1, -1)

	records, err := s.recordRepo.ListForRange(ctx, companyID, start, end, req.EmployeeID)
	if err != nil {
		return report.ExportTable{}, fmt.Errorf("failed to load records: %w", err)
	}
	if len(records) == 0 {
		return report.ExportTable{}, report.ErrNothingToExport
	}

	statistics, _, err := stats.Aggregate(records, stats.Range{Start: start, End: end}, stats.Options{})
	if err != nil {
		return report.ExportTable{}, err
	}

	scopeLabel := "All employees"
	if req.EmployeeID != nil && *req.EmployeeID != "" {
		emp, err := s.employeeRepo.GetByID(ctx, *req.EmployeeID, companyID)
		if err != nil {
			return report.ExportTable{}, err
		}
		scopeLabel = emp.Name
	}

	return report.BuildExportTable(statistics, records, report.Metadata{
		PeriodStart: start,
		PeriodEnd:   end,
		Scope:       scopeLabel,
		GeneratedAt: s.now(),
	}), nil
}
