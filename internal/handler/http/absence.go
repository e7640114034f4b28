package http

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/jwtauth/v5"
	"github.com/pontohq/ponto-backend-go/internal/domain/absence"
	"github.com/pontohq/ponto-backend-go/internal/handler/http/response"
	"github.com/pontohq/ponto-backend-go/internal/service/file"
)

type AbsenceHandler interface {
	CreateAbsence(w http.ResponseWriter, r *http.Request)
	GetAbsence(w http.ResponseWriter, r *http.Request)
	ListAbsences(w http.ResponseWriter, r *http.Request)
	ApproveAbsence(w http.ResponseWriter, r *http.Request)
	RejectAbsence(w http.ResponseWriter, r *http.Request)
	UploadAttachment(w http.ResponseWriter, r *http.Request)
}

type absenceHandlerImpl struct {
	absenceService absence.AbsenceService
	fileService    file.FileService
}

func NewAbsenceHandler(absenceService absence.AbsenceService, fileService file.FileService) AbsenceHandler {
	return &absenceHandlerImpl{
		absenceService: absenceService,
		fileService:    fileService,
	}
}

// CreateAbsence implements AbsenceHandler
func (h *absenceHandlerImpl) CreateAbsence(w http.ResponseWriter, r *http.Request) {
	var req absence.CreateAbsenceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	if err := req.Validate(); err != nil {
		response.HandleError(w, err)
		return
	}

	result, err := h.absenceService.Create(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Absence submitted", result)
}

// GetAbsence implements AbsenceHandler
func (h *absenceHandlerImpl) GetAbsence(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		response.BadRequest(w, "Absence ID is required", nil)
		return
	}

	result, err := h.absenceService.Get(r.Context(), id)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// ListAbsences implements AbsenceHandler
func (h *absenceHandlerImpl) ListAbsences(w http.ResponseWriter, r *http.Request) {
	filter := absence.AbsenceFilter{}

	if companyID := r.URL.Query().Get("company_id"); companyID != "" {
		filter.CompanyID = &companyID
	}
	if employeeID := r.URL.Query().Get("employee_id"); employeeID != "" {
		filter.EmployeeID = &employeeID
	}
	if status := r.URL.Query().Get("status"); status != "" {
		filter.Status = &status
	}
	if startDate := r.URL.Query().Get("start_date"); startDate != "" {
		filter.StartDate = &startDate
	}
	if endDate := r.URL.Query().Get("end_date"); endDate != "" {
		filter.EndDate = &endDate
	}

	page := 1
	if p := r.URL.Query().Get("page"); p != "" {
		if pageNum, err := strconv.Atoi(p); err == nil && pageNum > 0 {
			page = pageNum
		}
	}
	filter.Page = page

	limit := 20
	if l := r.URL.Query().Get("limit"); l != "" {
		if limitNum, err := strconv.Atoi(l); err == nil && limitNum > 0 {
			limit = limitNum
		}
	}
	filter.Limit = limit

	if err := filter.Validate(); err != nil {
		response.HandleError(w, err)
		return
	}

	results, err := h.absenceService.List(r.Context(), filter)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, results)
}

// ApproveAbsence implements AbsenceHandler
func (h *absenceHandlerImpl) ApproveAbsence(w http.ResponseWriter, r *http.Request) {
	h.review(w, r, h.absenceService.Approve, "Absence approved")
}

// RejectAbsence implements AbsenceHandler
func (h *absenceHandlerImpl) RejectAbsence(w http.ResponseWriter, r *http.Request) {
	h.review(w, r, h.absenceService.Reject, "Absence rejected")
}

// UploadAttachment implements AbsenceHandler. The returned path goes into
// attachment_url when the absence is filed.
func (h *absenceHandlerImpl) UploadAttachment(w http.ResponseWriter, r *http.Request) {
	// Parse multipart form (max 5MB)
	if err := r.ParseMultipartForm(5 << 20); err != nil {
		response.BadRequest(w, "Failed to parse form data", nil)
		return
	}

	formFile, fileHeader, err := r.FormFile("file")
	if err != nil {
		if err == http.ErrMissingFile {
			response.BadRequest(w, "Attachment file is required", nil)
			return
		}
		response.BadRequest(w, "Invalid file upload", nil)
		return
	}
	defer formFile.Close()

	_, claims, _ := jwtauth.FromContext(r.Context())
	employeeID, ok := claims["employee_id"].(string)
	if !ok || employeeID == "" {
		response.Unauthorized(w, "Employee ID not found in token")
		return
	}

	path, err := h.fileService.UploadAbsenceAttachment(r.Context(), employeeID, formFile, fileHeader.Filename)
	if err != nil {
		response.BadRequest(w, err.Error(), nil)
		return
	}

	response.Created(w, "Attachment uploaded", map[string]string{
		"attachment_url":  path,
		"attachment_name": fileHeader.Filename,
	})
}

func (h *absenceHandlerImpl) review(
	w http.ResponseWriter,
	r *http.Request,
	decide func(ctx context.Context, req absence.ReviewAbsenceRequest) (absence.AbsenceResponse, error),
	message string,
) {
	id := chi.URLParam(r, "id")
	if id == "" {
		response.BadRequest(w, "Absence ID is required", nil)
		return
	}

	var req absence.ReviewAbsenceRequest
	if r.Body != nil && r.ContentLength != 0 {
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			response.BadRequest(w, "Invalid request format", nil)
			return
		}
	}
	req.ID = id

	if err := req.Validate(); err != nil {
		response.HandleError(w, err)
		return
	}

	result, err := decide(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, message, result)
}
