package postgresql

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/pontohq/ponto-backend-go/internal/domain/company"
	"github.com/pontohq/ponto-backend-go/internal/pkg/database"
)

type companyRepositoryImpl struct {
	db *database.DB
}

func NewCompanyRepository(db *database.DB) company.CompanyRepository {
	return &companyRepositoryImpl{db: db}
}

const companyColumns = `id, name, cnpj, email, email_domain, address, is_active, created_at, updated_at`

func scanCompany(row pgx.Row) (company.Company, error) {
	var c company.Company
	err := row.Scan(
		&c.ID,
		&c.Name,
		&c.CNPJ,
		&c.Email,
		&c.EmailDomain,
		&c.Address,
		&c.IsActive,
		&c.CreatedAt,
		&c.UpdatedAt,
	)
	return c, err
}

// Create implements company.CompanyRepository.
func (r *companyRepositoryImpl) Create(ctx context.Context, newCompany company.Company) (company.Company, error) {
	q := GetQuerier(ctx, r.db)

	if newCompany.ID == "" {
		newCompany.ID = uuid.New().String()
	}

	query := `
		INSERT INTO companies (id, name, cnpj, email, email_domain, address, is_active)
		VALUES ($1, $2, $3, $4, $5, $6, true)
		RETURNING ` + companyColumns

	created, err := scanCompany(q.QueryRow(ctx, query,
		newCompany.ID,
		newCompany.Name,
		newCompany.CNPJ,
		newCompany.Email,
		newCompany.EmailDomain,
		newCompany.Address,
	))
	if err != nil {
		return company.Company{}, fmt.Errorf("failed to create company: %w", err)
	}
	return created, nil
}

// GetByID implements company.CompanyRepository.
func (r *companyRepositoryImpl) GetByID(ctx context.Context, id string) (company.Company, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + companyColumns + `
		FROM companies
		WHERE id = $1
	`

	found, err := scanCompany(q.QueryRow(ctx, query, id))
	if err != nil {
		if err == pgx.ErrNoRows {
			return company.Company{}, company.ErrCompanyNotFound
		}
		return company.Company{}, fmt.Errorf("failed to get company with id %s: %w", id, err)
	}
	return found, nil
}

// GetByCNPJ implements company.CompanyRepository.
func (r *companyRepositoryImpl) GetByCNPJ(ctx context.Context, cnpj string) (*company.Company, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + companyColumns + `
		FROM companies
		WHERE cnpj = $1
	`

	found, err := scanCompany(q.QueryRow(ctx, query, cnpj))
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get company by cnpj: %w", err)
	}
	return &found, nil
}

// GetByEmailDomain implements company.CompanyRepository.
func (r *companyRepositoryImpl) GetByEmailDomain(ctx context.Context, domain string) (*company.Company, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + companyColumns + `
		FROM companies
		WHERE email_domain = $1
	`

	found, err := scanCompany(q.QueryRow(ctx, query, domain))
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get company by email domain: %w", err)
	}
	return &found, nil
}

// List implements company.CompanyRepository.
func (r *companyRepositoryImpl) List(ctx context.Context, filter company.CompanyFilter) ([]company.Company, int64, error) {
	q := GetQuerier(ctx, r.db)

	conditions := []string{"is_active = true"}
	args := []interface{}{}
	argIdx := 1

	if filter.Search != nil && *filter.Search != "" {
		conditions = append(conditions, fmt.Sprintf("(name ILIKE $%d OR cnpj LIKE $%d)", argIdx, argIdx))
		args = append(args, "%"+*filter.Search+"%")
		argIdx++
	}

	where := "WHERE " + strings.Join(conditions, " AND ")

	var total int64
	countQuery := "SELECT COUNT(*) FROM companies " + where
	if err := q.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count companies: %w", err)
	}

	query := fmt.Sprintf(`
		SELECT %s
		FROM companies
		%s
		ORDER BY name ASC
		LIMIT $%d OFFSET $%d
	`, companyColumns, where, argIdx, argIdx+1)
	args = append(args, filter.Limit, (filter.Page-1)*filter.Limit)

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list companies: %w", err)
	}
	defer rows.Close()

	companies := make([]company.Company, 0)
	for rows.Next() {
		c, err := scanCompany(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to scan company: %w", err)
		}
		companies = append(companies, c)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("failed to iterate companies: %w", err)
	}

	return companies, total, nil
}

// Update implements company.CompanyRepository. The cnpj column is immutable
// and never part of the SET clause.
func (r *companyRepositoryImpl) Update(ctx context.Context, c company.Company) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE companies
		SET name = $1, email = $2, email_domain = $3, address = $4, updated_at = $5
		WHERE id = $6
		RETURNING id
	`

	var updatedID string
	if err := q.QueryRow(ctx, query, c.Name, c.Email, c.EmailDomain, c.Address, time.Now(), c.ID).Scan(&updatedID); err != nil {
		if err == pgx.ErrNoRows {
			return company.ErrCompanyNotFound
		}
		return fmt.Errorf("failed to update company with id %s: %w", c.ID, err)
	}
	return nil
}

// Deactivate implements company.CompanyRepository.
func (r *companyRepositoryImpl) Deactivate(ctx context.Context, id string) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE companies
		SET is_active = false, updated_at = $1
		WHERE id = $2 AND is_active = true
		RETURNING id
	`

	var deactivatedID string
	if err := q.QueryRow(ctx, query, time.Now(), id).Scan(&deactivatedID); err != nil {
		if err == pgx.ErrNoRows {
			return company.ErrCompanyNotFound
		}
		return fmt.Errorf("failed to deactivate company with id %s: %w", id, err)
	}
	return nil
}
