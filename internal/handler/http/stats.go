package http

import (
	"net/http"
	"strconv"

	"github.com/pontohq/ponto-backend-go/internal/domain/stats"
	"github.com/pontohq/ponto-backend-go/internal/handler/http/response"
)

type StatsHandler interface {
	GetStatistics(w http.ResponseWriter, r *http.Request)
}

type statsHandlerImpl struct {
	statsService stats.StatsService
}

func NewStatsHandler(statsService stats.StatsService) StatsHandler {
	return &statsHandlerImpl{statsService: statsService}
}

// GetStatistics implements StatsHandler
func (h *statsHandlerImpl) GetStatistics(w http.ResponseWriter, r *http.Request) {
	req := stats.StatisticsRequest{
		StartDate: r.URL.Query().Get("start_date"),
		EndDate:   r.URL.Query().Get("end_date"),
	}

	if companyID := r.URL.Query().Get("company_id"); companyID != "" {
		req.CompanyID = &companyID
	}
	if employeeID := r.URL.Query().Get("employee_id"); employeeID != "" {
		req.EmployeeID = &employeeID
	}
	if trailing := r.URL.Query().Get("trailing_days"); trailing != "" {
		if days, err := strconv.Atoi(trailing); err == nil && days > 0 {
			req.TrailingDays = days
		}
	}

	if err := req.Validate(); err != nil {
		response.HandleError(w, err)
		return
	}

	result, err := h.statsService.GetStatistics(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}
