package employee

import "context"

// EmployeeService defines business logic for employee management.
type EmployeeService interface {
	// Create registers an employee (admin/hr), deriving the corporate email
	// from the company domain and generating a one-time temporary password.
	Create(ctx context.Context, req CreateEmployeeRequest) (CreatedEmployeeResponse, error)
	Get(ctx context.Context, id string) (EmployeeResponse, error)
	List(ctx context.Context, filter EmployeeFilter) (ListEmployeeResponse, error)
	Update(ctx context.Context, req UpdateEmployeeRequest) (EmployeeResponse, error)
	// Deactivate flips is_active to false; never a hard delete.
	Deactivate(ctx context.Context, id string) error
}
