package company

import "context"

// CompanyService defines business logic for company management (admin only).
type CompanyService interface {
	Create(ctx context.Context, req CreateCompanyRequest) (CompanyResponse, error)
	Get(ctx context.Context, id string) (CompanyResponse, error)
	List(ctx context.Context, filter CompanyFilter) (ListCompanyResponse, error)
	Update(ctx context.Context, req UpdateCompanyRequest) (CompanyResponse, error)
	Deactivate(ctx context.Context, id string) error
}
