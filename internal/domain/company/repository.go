package company

import "context"

// CompanyRepository defines data access methods for companies.
// The UPDATE statement never touches the cnpj column.
type CompanyRepository interface {
	Create(ctx context.Context, c Company) (Company, error)
	GetByID(ctx context.Context, id string) (Company, error)
	GetByCNPJ(ctx context.Context, cnpj string) (*Company, error)
	GetByEmailDomain(ctx context.Context, domain string) (*Company, error)
	List(ctx context.Context, filter CompanyFilter) ([]Company, int64, error)
	Update(ctx context.Context, c Company) error
	// Deactivate flips is_active to false; companies are never hard-deleted.
	Deactivate(ctx context.Context, id string) error
}
