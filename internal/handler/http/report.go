package http

import (
	"fmt"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/pontohq/ponto-backend-go/internal/domain/report"
	"github.com/pontohq/ponto-backend-go/internal/handler/http/response"
	"github.com/pontohq/ponto-backend-go/internal/pkg/export"
)

type ReportHandler interface {
	// GetAttendanceReport handles GET /reports/attendance. The format query
	// parameter selects the rendering: json (default), pdf or csv.
	GetAttendanceReport(w http.ResponseWriter, r *http.Request)
}

type reportHandlerImpl struct {
	reportService report.ReportService
}

func NewReportHandler(reportService report.ReportService) ReportHandler {
	return &reportHandlerImpl{
		reportService: reportService,
	}
}

// GetAttendanceReport implements ReportHandler
func (h *reportHandlerImpl) GetAttendanceReport(w http.ResponseWriter, r *http.Request) {
	month, err := strconv.Atoi(r.URL.Query().Get("month"))
	if err != nil {
		response.BadRequest(w, "invalid month parameter", nil)
		return
	}

	year, err := strconv.Atoi(r.URL.Query().Get("year"))
	if err != nil {
		response.BadRequest(w, "invalid year parameter", nil)
		return
	}

	req := report.AttendanceReportRequest{
		Month: month,
		Year:  year,
	}
	if companyID := r.URL.Query().Get("company_id"); companyID != "" {
		req.CompanyID = &companyID
	}
	if employeeID := r.URL.Query().Get("employee_id"); employeeID != "" {
		req.EmployeeID = &employeeID
	}

	if err := req.Validate(); err != nil {
		response.HandleError(w, err)
		return
	}

	table, err := h.reportService.GenerateAttendanceReport(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	format := r.URL.Query().Get("format")
	filename := fmt.Sprintf("attendance-%04d-%02d", year, month)

	switch format {
	case "pdf":
		w.Header().Set("Content-Type", "application/pdf")
		w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename+".pdf"))
		if err := export.WritePDF(w, table); err != nil {
			slog.Error("attendance report PDF rendering failed", "error", err)
		}
	case "csv":
		w.Header().Set("Content-Type", "text/csv; charset=utf-8")
		w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename+".csv"))
		if err := export.WriteCSV(w, table); err != nil {
			slog.Error("attendance report CSV rendering failed", "error", err)
		}
	case "", "json":
		response.Success(w, table)
	default:
		response.BadRequest(w, "format must be one of json, pdf, csv", nil)
	}
}
