package employee

import "context"

// EmployeeRepository defines data access methods for employees.
// Every read takes a companyID so cross-company lookups are unrepresentable;
// GetByEmail is the exception because login happens before a tenant is known.
type EmployeeRepository interface {
	Create(ctx context.Context, e Employee) (Employee, error)
	GetByID(ctx context.Context, id string, companyID string) (Employee, error)
	GetByEmail(ctx context.Context, email string) (*Employee, error)
	// GetByIDUnscoped loads an employee without a tenant filter; only the
	// auth flow uses it, for refresh tokens that carry just the subject id.
	GetByIDUnscoped(ctx context.Context, id string) (*Employee, error)
	GetByCPF(ctx context.Context, cpf string, companyID string) (*Employee, error)
	List(ctx context.Context, filter EmployeeFilter, companyID string) ([]Employee, int64, error)
	Update(ctx context.Context, e Employee) error
	UpdatePassword(ctx context.Context, id, passwordHash string, mustChange bool) error
	// Deactivate soft-deletes: historical records keep referencing the row.
	Deactivate(ctx context.Context, id string, companyID string) error
	// CountEmailPrefix counts corporate emails starting with the given local
	// part, used to suffix colliding derived addresses.
	CountEmailPrefix(ctx context.Context, localPart, domain string) (int, error)
}
