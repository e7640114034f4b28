package ticket

import (
	"github.com/pontohq/ponto-backend-go/internal/pkg/validator"
)

type CreateTicketRequest struct {
	Subject     string `json:"subject"`
	Description string `json:"description"`
	Priority    string `json:"priority"`
}

func (r *CreateTicketRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.Subject) {
		errs = append(errs, validator.ValidationError{
			Field:   "subject",
			Message: "subject is required",
		})
	}

	if validator.IsEmpty(r.Description) {
		errs = append(errs, validator.ValidationError{
			Field:   "description",
			Message: "description is required",
		})
	}

	if !Priority(r.Priority).IsValid() {
		errs = append(errs, validator.ValidationError{
			Field:   "priority",
			Message: "priority must be one of: low, medium, high",
		})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type AppendResponseRequest struct {
	TicketID string `json:"-"`
	Message  string `json:"message"`
}

func (r *AppendResponseRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.TicketID) {
		errs = append(errs, validator.ValidationError{
			Field:   "ticket_id",
			Message: "ticket id is required",
		})
	}

	if validator.IsEmpty(r.Message) {
		errs = append(errs, validator.ValidationError{
			Field:   "message",
			Message: "message is required",
		})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type ResponseView struct {
	ID         string  `json:"id"`
	AuthorID   string  `json:"author_id"`
	AuthorName *string `json:"author_name,omitempty"`
	Message    string  `json:"message"`
	CreatedAt  string  `json:"created_at"`
}

type TicketResponse struct {
	ID           string         `json:"id"`
	EmployeeID   string         `json:"employee_id"`
	EmployeeName *string        `json:"employee_name,omitempty"`
	Subject      string         `json:"subject"`
	Description  string         `json:"description"`
	Priority     string         `json:"priority"`
	Status       string         `json:"status"`
	ResolvedAt   *string        `json:"resolved_at,omitempty"`
	Responses    []ResponseView `json:"responses"`
	CreatedAt    string         `json:"created_at"`
	UpdatedAt    string         `json:"updated_at"`
}

type TicketFilter struct {
	CompanyID  *string `json:"company_id,omitempty"` // admin only
	EmployeeID *string `json:"employee_id,omitempty"`
	Status     *string `json:"status,omitempty"`
	Priority   *string `json:"priority,omitempty"`

	Page  int `json:"page"`
	Limit int `json:"limit"`
}

func (f *TicketFilter) Validate() error {
	var errs validator.ValidationErrors

	if f.Status != nil && !Status(*f.Status).IsValid() {
		errs = append(errs, validator.ValidationError{
			Field:   "status",
			Message: "status must be one of: open, in_review, resolved",
		})
	}

	if f.Priority != nil && !Priority(*f.Priority).IsValid() {
		errs = append(errs, validator.ValidationError{
			Field:   "priority",
			Message: "priority must be one of: low, medium, high",
		})
	}

	if f.Page < 0 {
		errs = append(errs, validator.ValidationError{
			Field:   "page",
			Message: "page must be a positive number",
		})
	}
	if f.Page == 0 {
		f.Page = 1
	}

	if f.Limit < 0 {
		errs = append(errs, validator.ValidationError{
			Field:   "limit",
			Message: "limit must be a positive number",
		})
	}
	if f.Limit == 0 {
		f.Limit = 20
	}
	if f.Limit > 100 {
		errs = append(errs, validator.ValidationError{
			Field:   "limit",
			Message: "limit must not exceed 100",
		})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type ListTicketResponse struct {
	Tickets    []TicketResponse `json:"tickets"`
	TotalItems int64            `json:"total_items"`
}
