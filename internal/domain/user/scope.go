package user

import (
	"context"
	"fmt"

	"github.com/go-chi/jwtauth/v5"
)

// Scope is the caller's tenant and role, resolved once per request from the
// JWT claims. Services receive it explicitly instead of reading global state,
// and repositories only ever see the company ID it resolves to.
type Scope struct {
	CompanyID  string
	EmployeeID string
	Role       Role
}

// ScopeFromContext builds the caller's scope from jwtauth claims.
func ScopeFromContext(ctx context.Context) (Scope, error) {
	_, claims, err := jwtauth.FromContext(ctx)
	if err != nil {
		return Scope{}, fmt.Errorf("failed to extract claims from context: %w", err)
	}

	companyID, ok := claims["company_id"].(string)
	if !ok || companyID == "" {
		return Scope{}, ErrCompanyIDRequired
	}

	employeeID, _ := claims["employee_id"].(string)

	roleStr, ok := claims["role"].(string)
	role := Role(roleStr)
	if !ok || !role.IsValid() {
		return Scope{}, ErrInvalidRole
	}

	return Scope{
		CompanyID:  companyID,
		EmployeeID: employeeID,
		Role:       role,
	}, nil
}

// ResolveCompany decides which company a query may target. A nil or empty
// request means the caller's own company. Admins may target any company;
// everyone else gets ErrCompanyForbidden when asking for a different one.
func (s Scope) ResolveCompany(requested *string) (string, error) {
	if requested == nil || *requested == "" || *requested == s.CompanyID {
		return s.CompanyID, nil
	}
	if s.Role != RoleAdmin {
		return "", ErrCompanyForbidden
	}
	return *requested, nil
}

// CanReview reports whether the caller may approve or reject absences.
func (s Scope) CanReview() bool {
	return s.Role.IsReviewer()
}

// Can checks a single permission for the caller's role.
func (s Scope) Can(p Permission) bool {
	return HasPermission(s.Role, p)
}
