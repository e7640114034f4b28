package absence

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/pontohq/ponto-backend-go/internal/domain/absence"
	"github.com/pontohq/ponto-backend-go/internal/domain/employee"
	"github.com/pontohq/ponto-backend-go/internal/domain/user"
	"github.com/pontohq/ponto-backend-go/internal/pkg/email"
)

type AbsenceServiceImpl struct {
	absenceRepo  absence.AbsenceRepository
	employeeRepo employee.EmployeeRepository
	emailService email.EmailService
	now          func() time.Time
}

func NewAbsenceService(absenceRepo absence.AbsenceRepository, employeeRepo employee.EmployeeRepository, emailService email.EmailService) absence.AbsenceService {
	return &AbsenceServiceImpl{
		absenceRepo:  absenceRepo,
		employeeRepo: employeeRepo,
		emailService: emailService,
		now:          time.Now,
	}
}

// Create implements absence.AbsenceService. Employees file for themselves;
// hr/admin may file on behalf of someone in the same company.
func (s *AbsenceServiceImpl) Create(ctx context.Context, req absence.CreateAbsenceRequest) (absence.AbsenceResponse, error) {
	scope, err := user.ScopeFromContext(ctx)
	if err != nil {
		return absence.AbsenceResponse{}, err
	}

	if err := req.Validate(); err != nil {
		return absence.AbsenceResponse{}, err
	}

	employeeID := scope.EmployeeID
	if req.EmployeeID != nil && *req.EmployeeID != "" && *req.EmployeeID != scope.EmployeeID {
		if !scope.Can(user.PermissionEmployeeManage) {
			return absence.AbsenceResponse{}, user.ErrInsufficientPermissions
		}
		employeeID = *req.EmployeeID
	}

	date, err := time.Parse("2006-01-02", req.Date)
	if err != nil {
		return absence.AbsenceResponse{}, fmt.Errorf("invalid date: %w", err)
	}

	created, err := s.absenceRepo.Create(ctx, absence.Absence{
		CompanyID:      scope.CompanyID,
		EmployeeID:     employeeID,
		Date:           date,
		Reason:         req.Reason,
		Type:           absence.AbsenceType(req.Type),
		AttachmentURL:  req.AttachmentURL,
		AttachmentName: req.AttachmentName,
	})
	if err != nil {
		return absence.AbsenceResponse{}, fmt.Errorf("failed to create absence: %w", err)
	}

	slog.Info("absence submitted", "absence_id", created.ID, "employee_id", employeeID)

	return toAbsenceResponse(created), nil
}

// Get implements absence.AbsenceService. Employees only see their own.
func (s *AbsenceServiceImpl) Get(ctx context.Context, id string) (absence.AbsenceResponse, error) {
	scope, err := user.ScopeFromContext(ctx)
	if err != nil {
		return absence.AbsenceResponse{}, err
	}

	found, err := s.absenceRepo.GetByID(ctx, id, scope.CompanyID)
	if err != nil {
		return absence.AbsenceResponse{}, err
	}

	if !scope.Can(user.PermissionAbsenceViewAll) && found.EmployeeID != scope.EmployeeID {
		return absence.AbsenceResponse{}, absence.ErrAbsenceNotFound
	}

	return toAbsenceResponse(found), nil
}

// List implements absence.AbsenceService.
func (s *AbsenceServiceImpl) List(ctx context.Context, filter absence.AbsenceFilter) (absence.ListAbsenceResponse, error) {
	scope, err := user.ScopeFromContext(ctx)
	if err != nil {
		return absence.ListAbsenceResponse{}, err
	}

	companyID, err := scope.ResolveCompany(filter.CompanyID)
	if err != nil {
		return absence.ListAbsenceResponse{}, err
	}

	if !scope.Can(user.PermissionAbsenceViewAll) {
		filter.EmployeeID = &scope.EmployeeID
	}

	if err := filter.Validate(); err != nil {
		return absence.ListAbsenceResponse{}, err
	}

	absences, total, err := s.absenceRepo.List(ctx, filter, companyID)
	if err != nil {
		return absence.ListAbsenceResponse{}, fmt.Errorf("failed to list absences: %w", err)
	}

	counts, err := s.absenceRepo.CountByStatus(ctx, companyID)
	if err != nil {
		return absence.ListAbsenceResponse{}, fmt.Errorf("failed to count absences: %w", err)
	}

	responses := make([]absence.AbsenceResponse, 0, len(absences))
	for _, a := range absences {
		responses = append(responses, toAbsenceResponse(a))
	}

	return absence.ListAbsenceResponse{
		Absences:   responses,
		TotalItems: total,
		Counts:     counts,
	}, nil
}

// Approve implements absence.AbsenceService.
func (s *AbsenceServiceImpl) Approve(ctx context.Context, req absence.ReviewAbsenceRequest) (absence.AbsenceResponse, error) {
	return s.review(ctx, req, absence.StatusApproved)
}

// Reject implements absence.AbsenceService.
func (s *AbsenceServiceImpl) Reject(ctx context.Context, req absence.ReviewAbsenceRequest) (absence.AbsenceResponse, error) {
	return s.review(ctx, req, absence.StatusRejected)
}

// review performs the pending -> terminal transition. Zero affected rows
// means the record is missing or already terminal; a follow-up read decides
// which error to surface.
func (s *AbsenceServiceImpl) review(ctx context.Context, req absence.ReviewAbsenceRequest, to absence.Status) (absence.AbsenceResponse, error) {
	scope, err := user.ScopeFromContext(ctx)
	if err != nil {
		return absence.AbsenceResponse{}, err
	}
	if !scope.CanReview() {
		return absence.AbsenceResponse{}, absence.ErrReviewerRoleRequired
	}

	if err := req.Validate(); err != nil {
		return absence.AbsenceResponse{}, err
	}

	affected, err := s.absenceRepo.Review(ctx, req.ID, scope.CompanyID, to, scope.EmployeeID, req.Notes, s.now())
	if err != nil {
		return absence.AbsenceResponse{}, fmt.Errorf("failed to review absence: %w", err)
	}

	if affected == 0 {
		// missing row or terminal state; GetByID distinguishes
		if _, err := s.absenceRepo.GetByID(ctx, req.ID, scope.CompanyID); err != nil {
			return absence.AbsenceResponse{}, err
		}
		return absence.AbsenceResponse{}, absence.ErrAlreadyReviewed
	}

	reviewed, err := s.absenceRepo.GetByID(ctx, req.ID, scope.CompanyID)
	if err != nil {
		return absence.AbsenceResponse{}, err
	}

	slog.Info("absence reviewed", "absence_id", req.ID, "status", to, "reviewer_id", scope.EmployeeID)

	// notification failures never undo the decision
	if owner, err := s.employeeRepo.GetByID(ctx, reviewed.EmployeeID, scope.CompanyID); err != nil {
		slog.Error("failed to load employee for review notification", "error", err, "absence_id", req.ID)
	} else if err := s.emailService.SendAbsenceReviewed(owner.Email, owner.Name, string(to), req.Notes); err != nil {
		slog.Error("failed to send review notification", "error", err, "absence_id", req.ID)
	}

	return toAbsenceResponse(reviewed), nil
}

func toAbsenceResponse(a absence.Absence) absence.AbsenceResponse {
	resp := absence.AbsenceResponse{
		ID:             a.ID,
		EmployeeID:     a.EmployeeID,
		EmployeeName:   a.EmployeeName,
		Date:           a.Date.Format("2006-01-02"),
		Reason:         a.Reason,
		Type:           string(a.Type),
		Status:         string(a.Status),
		AttachmentURL:  a.AttachmentURL,
		AttachmentName: a.AttachmentName,
		ReviewNotes:    a.ReviewNotes,
		ReviewedBy:     a.ReviewedBy,
		CreatedAt:      a.CreatedAt.Format(time.RFC3339),
		UpdatedAt:      a.UpdatedAt.Format(time.RFC3339),
	}
	if a.ReviewedAt != nil {
		v := a.ReviewedAt.Format(time.RFC3339)
		resp.ReviewedAt = &v
	}
	return resp
}
