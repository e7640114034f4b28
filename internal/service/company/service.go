package company

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/pontohq/ponto-backend-go/internal/domain/company"
	"github.com/pontohq/ponto-backend-go/internal/domain/user"
)

type CompanyServiceImpl struct {
	companyRepo company.CompanyRepository
}

func NewCompanyService(companyRepo company.CompanyRepository) company.CompanyService {
	return &CompanyServiceImpl{companyRepo: companyRepo}
}

// Create implements company.CompanyService. Admin only; CNPJ and email
// domain must be unique across all tenants.
func (s *CompanyServiceImpl) Create(ctx context.Context, req company.CreateCompanyRequest) (company.CompanyResponse, error) {
	scope, err := user.ScopeFromContext(ctx)
	if err != nil {
		return company.CompanyResponse{}, err
	}
	if scope.Role != user.RoleAdmin {
		return company.CompanyResponse{}, user.ErrAdminPrivilegeRequired
	}

	if err := req.Validate(); err != nil {
		return company.CompanyResponse{}, err
	}

	existing, err := s.companyRepo.GetByCNPJ(ctx, req.CNPJ)
	if err != nil {
		return company.CompanyResponse{}, fmt.Errorf("failed to check cnpj: %w", err)
	}
	if existing != nil {
		return company.CompanyResponse{}, company.ErrCNPJExists
	}

	byDomain, err := s.companyRepo.GetByEmailDomain(ctx, req.EmailDomain)
	if err != nil {
		return company.CompanyResponse{}, fmt.Errorf("failed to check email domain: %w", err)
	}
	if byDomain != nil {
		return company.CompanyResponse{}, company.ErrEmailDomainExists
	}

	created, err := s.companyRepo.Create(ctx, company.Company{
		Name:        req.Name,
		CNPJ:        req.CNPJ,
		Email:       req.Email,
		EmailDomain: req.EmailDomain,
		Address:     req.Address,
	})
	if err != nil {
		return company.CompanyResponse{}, fmt.Errorf("failed to create company: %w", err)
	}

	slog.Info("company created", "company_id", created.ID, "name", created.Name)

	return toCompanyResponse(created), nil
}

// Get implements company.CompanyService. Admin can fetch any company;
// everyone else only their own.
func (s *CompanyServiceImpl) Get(ctx context.Context, id string) (company.CompanyResponse, error) {
	scope, err := user.ScopeFromContext(ctx)
	if err != nil {
		return company.CompanyResponse{}, err
	}
	if _, err := scope.ResolveCompany(&id); err != nil {
		return company.CompanyResponse{}, err
	}

	found, err := s.companyRepo.GetByID(ctx, id)
	if err != nil {
		return company.CompanyResponse{}, err
	}
	return toCompanyResponse(found), nil
}

// List implements company.CompanyService. Admin only.
func (s *CompanyServiceImpl) List(ctx context.Context, filter company.CompanyFilter) (company.ListCompanyResponse, error) {
	scope, err := user.ScopeFromContext(ctx)
	if err != nil {
		return company.ListCompanyResponse{}, err
	}
	if scope.Role != user.RoleAdmin {
		return company.ListCompanyResponse{}, user.ErrAdminPrivilegeRequired
	}

	if err := filter.Validate(); err != nil {
		return company.ListCompanyResponse{}, err
	}

	companies, total, err := s.companyRepo.List(ctx, filter)
	if err != nil {
		return company.ListCompanyResponse{}, fmt.Errorf("failed to list companies: %w", err)
	}

	responses := make([]company.CompanyResponse, 0, len(companies))
	for _, c := range companies {
		responses = append(responses, toCompanyResponse(c))
	}

	return company.ListCompanyResponse{
		Companies:  responses,
		TotalItems: total,
	}, nil
}

// Update implements company.CompanyService. The CNPJ is immutable; the
// request type carries no field for it.
func (s *CompanyServiceImpl) Update(ctx context.Context, req company.UpdateCompanyRequest) (company.CompanyResponse, error) {
	scope, err := user.ScopeFromContext(ctx)
	if err != nil {
		return company.CompanyResponse{}, err
	}
	if scope.Role != user.RoleAdmin {
		return company.CompanyResponse{}, user.ErrAdminPrivilegeRequired
	}

	if err := req.Validate(); err != nil {
		return company.CompanyResponse{}, err
	}

	current, err := s.companyRepo.GetByID(ctx, req.ID)
	if err != nil {
		return company.CompanyResponse{}, err
	}

	if req.Name != nil {
		current.Name = *req.Name
	}
	if req.Email != nil {
		current.Email = *req.Email
	}
	if req.EmailDomain != nil && *req.EmailDomain != current.EmailDomain {
		byDomain, err := s.companyRepo.GetByEmailDomain(ctx, *req.EmailDomain)
		if err != nil {
			return company.CompanyResponse{}, fmt.Errorf("failed to check email domain: %w", err)
		}
		if byDomain != nil {
			return company.CompanyResponse{}, company.ErrEmailDomainExists
		}
		current.EmailDomain = *req.EmailDomain
	}
	if req.Address != nil {
		current.Address = req.Address
	}

	if err := s.companyRepo.Update(ctx, current); err != nil {
		return company.CompanyResponse{}, err
	}

	updated, err := s.companyRepo.GetByID(ctx, req.ID)
	if err != nil {
		return company.CompanyResponse{}, err
	}
	return toCompanyResponse(updated), nil
}

// Deactivate implements company.CompanyService.
func (s *CompanyServiceImpl) Deactivate(ctx context.Context, id string) error {
	scope, err := user.ScopeFromContext(ctx)
	if err != nil {
		return err
	}
	if scope.Role != user.RoleAdmin {
		return user.ErrAdminPrivilegeRequired
	}

	if err := s.companyRepo.Deactivate(ctx, id); err != nil {
		return err
	}

	slog.Info("company deactivated", "company_id", id)
	return nil
}

func toCompanyResponse(c company.Company) company.CompanyResponse {
	return company.CompanyResponse{
		ID:          c.ID,
		Name:        c.Name,
		CNPJ:        c.CNPJ,
		Email:       c.Email,
		EmailDomain: c.EmailDomain,
		Address:     c.Address,
		IsActive:    c.IsActive,
		CreatedAt:   c.CreatedAt.Format(time.RFC3339),
		UpdatedAt:   c.UpdatedAt.Format(time.RFC3339),
	}
}
