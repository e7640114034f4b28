package response

import (
	"errors"
	"net/http"

	"github.com/pontohq/ponto-backend-go/internal/domain/absence"
	"github.com/pontohq/ponto-backend-go/internal/domain/auth"
	"github.com/pontohq/ponto-backend-go/internal/domain/company"
	"github.com/pontohq/ponto-backend-go/internal/domain/employee"
	"github.com/pontohq/ponto-backend-go/internal/domain/report"
	"github.com/pontohq/ponto-backend-go/internal/domain/stats"
	"github.com/pontohq/ponto-backend-go/internal/domain/ticket"
	"github.com/pontohq/ponto-backend-go/internal/domain/timerecord"
	"github.com/pontohq/ponto-backend-go/internal/domain/user"
	"github.com/pontohq/ponto-backend-go/internal/pkg/validator"
)

// HandleError maps domain errors to HTTP responses
func HandleError(w http.ResponseWriter, err error) {
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		ValidationError(w, validationErrs.ToMap())
		return
	}

	switch {
	// Auth domain errors
	case errors.Is(err, auth.ErrInvalidCredentials):
		Unauthorized(w, err.Error())
	case errors.Is(err, auth.ErrInvalidToken):
		Unauthorized(w, "Invalid token")
	case errors.Is(err, auth.ErrTokenExpired):
		Unauthorized(w, "Token expired")
	case errors.Is(err, auth.ErrRefreshTokenRevoked):
		Unauthorized(w, "Refresh token revoked")
	case errors.Is(err, auth.ErrAccountInactive):
		Forbidden(w, "Account is inactive")
	case errors.Is(err, auth.ErrOAuthEmailUnknown):
		NotFound(w, "No account matches this Google email")

	// Scope errors
	case errors.Is(err, user.ErrCompanyForbidden):
		Forbidden(w, "Access to another company is not allowed")
	case errors.Is(err, user.ErrAdminPrivilegeRequired):
		Forbidden(w, "Admin privilege required")
	case errors.Is(err, user.ErrReviewerRoleRequired):
		Forbidden(w, "Reviewer role required")
	case errors.Is(err, user.ErrInsufficientPermissions):
		Forbidden(w, "Insufficient permissions")
	case errors.Is(err, user.ErrCompanyIDRequired), errors.Is(err, user.ErrInvalidRole):
		Unauthorized(w, "Invalid session")

	// Company domain errors
	case errors.Is(err, company.ErrCompanyNotFound):
		NotFound(w, "Company not found")
	case errors.Is(err, company.ErrCNPJExists):
		Conflict(w, "CNPJ already registered")
	case errors.Is(err, company.ErrEmailDomainExists):
		Conflict(w, "Email domain already registered")
	case errors.Is(err, company.ErrCompanyInactive):
		Forbidden(w, "Company is inactive")

	// Employee domain errors
	case errors.Is(err, employee.ErrEmployeeNotFound):
		NotFound(w, "Employee not found")
	case errors.Is(err, employee.ErrEmailExists):
		Conflict(w, "Email already registered in this company")
	case errors.Is(err, employee.ErrCPFExists):
		Conflict(w, "CPF already registered")
	case errors.Is(err, employee.ErrEmployeeInactive):
		Forbidden(w, "Employee is inactive")

	// Time record domain errors
	case errors.Is(err, timerecord.ErrRecordNotFound):
		NotFound(w, "Time record not found")
	case errors.Is(err, timerecord.ErrAlreadyClockedIn):
		Conflict(w, "Already clocked in today")
	case errors.Is(err, timerecord.ErrNotClockedIn):
		Conflict(w, "No open clock-in for today")
	case errors.Is(err, timerecord.ErrAlreadyClockedOut):
		Conflict(w, "Already clocked out today")
	case errors.Is(err, timerecord.ErrClockOutBeforeIn):
		BadRequest(w, "Clock-out cannot be earlier than clock-in", nil)

	// Absence domain errors
	case errors.Is(err, absence.ErrAbsenceNotFound):
		NotFound(w, "Absence not found")
	case errors.Is(err, absence.ErrAlreadyReviewed):
		Conflict(w, "Absence has already been reviewed")
	case errors.Is(err, absence.ErrReviewerRoleRequired):
		Forbidden(w, "Reviewer role required")

	// Ticket domain errors
	case errors.Is(err, ticket.ErrTicketNotFound):
		NotFound(w, "Ticket not found")
	case errors.Is(err, ticket.ErrNotReviewable):
		Conflict(w, "Ticket can only move to in_review from open")

	// Stats / report errors
	case errors.Is(err, stats.ErrInvalidRange):
		BadRequest(w, "End date must not be before start date", nil)
	case errors.Is(err, report.ErrNothingToExport):
		NotFound(w, "No records in the requested period")

	// Default
	default:
		InternalServerError(w, "An unexpected error occurred")
	}
}
