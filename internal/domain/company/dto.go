package company

import (
	"strings"

	"github.com/pontohq/ponto-backend-go/internal/pkg/validator"
)

type CreateCompanyRequest struct {
	Name        string  `json:"name"`
	CNPJ        string  `json:"cnpj"`
	Email       string  `json:"email"`
	EmailDomain string  `json:"email_domain"`
	Address     *string `json:"address,omitempty"`
}

func (r *CreateCompanyRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.Name) {
		errs = append(errs, validator.ValidationError{
			Field:   "name",
			Message: "name is required",
		})
	}

	if !validator.IsValidCNPJ(r.CNPJ) {
		errs = append(errs, validator.ValidationError{
			Field:   "cnpj",
			Message: "cnpj must have 14 digits",
		})
	}

	if !validator.IsValidEmail(r.Email) {
		errs = append(errs, validator.ValidationError{
			Field:   "email",
			Message: "email must be a valid address",
		})
	}

	if !validator.IsValidEmailDomain(r.EmailDomain) {
		errs = append(errs, validator.ValidationError{
			Field:   "email_domain",
			Message: "email_domain must be a valid domain like empresa.com.br",
		})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// UpdateCompanyRequest deliberately has no CNPJ field: the tax id is immutable
// after creation.
type UpdateCompanyRequest struct {
	ID          string  `json:"-"`
	Name        *string `json:"name,omitempty"`
	Email       *string `json:"email,omitempty"`
	EmailDomain *string `json:"email_domain,omitempty"`
	Address     *string `json:"address,omitempty"`
}

func (r *UpdateCompanyRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.ID) {
		errs = append(errs, validator.ValidationError{
			Field:   "id",
			Message: "company id is required",
		})
	}

	if r.Name != nil && validator.IsEmpty(*r.Name) {
		errs = append(errs, validator.ValidationError{
			Field:   "name",
			Message: "name must not be empty",
		})
	}

	if r.Email != nil && !validator.IsValidEmail(*r.Email) {
		errs = append(errs, validator.ValidationError{
			Field:   "email",
			Message: "email must be a valid address",
		})
	}

	if r.EmailDomain != nil && !validator.IsValidEmailDomain(*r.EmailDomain) {
		errs = append(errs, validator.ValidationError{
			Field:   "email_domain",
			Message: "email_domain must be a valid domain like empresa.com.br",
		})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type CompanyResponse struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	CNPJ        string  `json:"cnpj"`
	Email       string  `json:"email"`
	EmailDomain string  `json:"email_domain"`
	Address     *string `json:"address,omitempty"`
	IsActive    bool    `json:"is_active"`
	CreatedAt   string  `json:"created_at"`
	UpdatedAt   string  `json:"updated_at"`
}

type CompanyFilter struct {
	Search *string `json:"search,omitempty"`
	Page   int     `json:"page"`
	Limit  int     `json:"limit"`
}

func (f *CompanyFilter) Validate() error {
	var errs validator.ValidationErrors

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

	if f.Search != nil {
		trimmed := strings.TrimSpace(*f.Search)
		f.Search = &trimmed
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type ListCompanyResponse struct {
	Companies  []CompanyResponse `json:"companies"`
	TotalItems int64             `json:"total_items"`
}
