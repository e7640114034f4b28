package report

import "context"

// ReportService assembles exportable attendance reports. The returned
// ExportTable is handed unchanged to a rendering collaborator; the service
// itself performs no file I/O.
type ReportService interface {
	GenerateAttendanceReport(ctx context.Context, req AttendanceReportRequest) (ExportTable, error)
}
