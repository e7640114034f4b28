package employee

import (
	"context"
	"crypto/rand"
	"fmt"
	"log/slog"
	"math/big"
	"strings"
	"time"

	"github.com/pontohq/ponto-backend-go/internal/domain/company"
	"github.com/pontohq/ponto-backend-go/internal/domain/employee"
	"github.com/pontohq/ponto-backend-go/internal/domain/user"
	"github.com/pontohq/ponto-backend-go/internal/pkg/email"
	"golang.org/x/crypto/bcrypt"
)

const tempPasswordLength = 12

const tempPasswordAlphabet = "abcdefghijkmnpqrstuvwxyzABCDEFGHJKLMNPQRSTUVWXYZ23456789"

type EmployeeServiceImpl struct {
	employeeRepo employee.EmployeeRepository
	companyRepo  company.CompanyRepository
	emailService email.EmailService
}

func NewEmployeeService(
	employeeRepo employee.EmployeeRepository,
	companyRepo company.CompanyRepository,
	emailService email.EmailService,
) employee.EmployeeService {
	return &EmployeeServiceImpl{
		employeeRepo: employeeRepo,
		companyRepo:  companyRepo,
		emailService: emailService,
	}
}

// Create implements employee.EmployeeService. The corporate email is derived
// from the name and the company domain; a one-time temporary password is
// returned exactly once in the response.
func (s *EmployeeServiceImpl) Create(ctx context.Context, req employee.CreateEmployeeRequest) (employee.CreatedEmployeeResponse, error) {
	scope, err := user.ScopeFromContext(ctx)
	if err != nil {
		return employee.CreatedEmployeeResponse{}, err
	}
	if !scope.Can(user.PermissionEmployeeManage) {
		return employee.CreatedEmployeeResponse{}, user.ErrInsufficientPermissions
	}

	if err := req.Validate(); err != nil {
		return employee.CreatedEmployeeResponse{}, err
	}

	companyID, err := scope.ResolveCompany(req.CompanyID)
	if err != nil {
		return employee.CreatedEmployeeResponse{}, err
	}

	comp, err := s.companyRepo.GetByID(ctx, companyID)
	if err != nil {
		return employee.CreatedEmployeeResponse{}, err
	}
	if !comp.IsActive {
		return employee.CreatedEmployeeResponse{}, company.ErrCompanyInactive
	}

	if existing, err := s.employeeRepo.GetByCPF(ctx, req.CPF, companyID); err != nil {
		return employee.CreatedEmployeeResponse{}, fmt.Errorf("failed to check cpf: %w", err)
	} else if existing != nil {
		return employee.CreatedEmployeeResponse{}, employee.ErrCPFExists
	}

	corporateEmail, err := s.deriveCorporateEmail(ctx, req.Name, comp.EmailDomain)
	if err != nil {
		return employee.CreatedEmployeeResponse{}, err
	}

	tempPassword, err := generateTempPassword()
	if err != nil {
		return employee.CreatedEmployeeResponse{}, fmt.Errorf("failed to generate temporary password: %w", err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(tempPassword), bcrypt.DefaultCost)
	if err != nil {
		return employee.CreatedEmployeeResponse{}, fmt.Errorf("failed to hash password: %w", err)
	}

	created, err := s.employeeRepo.Create(ctx, employee.Employee{
		CompanyID:          companyID,
		Name:               req.Name,
		Email:              corporateEmail,
		Department:         req.Department,
		Position:           req.Position,
		Phone:              req.Phone,
		CPF:                req.CPF,
		Role:               user.Role(req.Role),
		PasswordHash:       string(hash),
		MustChangePassword: true,
	})
	if err != nil {
		return employee.CreatedEmployeeResponse{}, fmt.Errorf("failed to create employee: %w", err)
	}

	slog.Info("employee created", "employee_id", created.ID, "company_id", companyID, "email", corporateEmail)

	if s.emailService != nil {
		if err := s.emailService.SendWelcome(corporateEmail, created.Name, comp.Name, corporateEmail, tempPassword); err != nil {
			slog.Error("failed to send welcome email", "employee_id", created.ID, "error", err)
		}
	}

	return employee.CreatedEmployeeResponse{
		EmployeeResponse:  toEmployeeResponse(created),
		TemporaryPassword: tempPassword,
	}, nil
}

// Get implements employee.EmployeeService.
func (s *EmployeeServiceImpl) Get(ctx context.Context, id string) (employee.EmployeeResponse, error) {
	scope, err := user.ScopeFromContext(ctx)
	if err != nil {
		return employee.EmployeeResponse{}, err
	}

	found, err := s.employeeRepo.GetByID(ctx, id, scope.CompanyID)
	if err != nil {
		return employee.EmployeeResponse{}, err
	}
	return toEmployeeResponse(found), nil
}

// List implements employee.EmployeeService.
func (s *EmployeeServiceImpl) List(ctx context.Context, filter employee.EmployeeFilter) (employee.ListEmployeeResponse, error) {
	scope, err := user.ScopeFromContext(ctx)
	if err != nil {
		return employee.ListEmployeeResponse{}, err
	}

	companyID, err := scope.ResolveCompany(filter.CompanyID)
	if err != nil {
		return employee.ListEmployeeResponse{}, err
	}

	if err := filter.Validate(); err != nil {
		return employee.ListEmployeeResponse{}, err
	}

	employees, total, err := s.employeeRepo.List(ctx, filter, companyID)
	if err != nil {
		return employee.ListEmployeeResponse{}, fmt.Errorf("failed to list employees: %w", err)
	}

	responses := make([]employee.EmployeeResponse, 0, len(employees))
	for _, e := range employees {
		responses = append(responses, toEmployeeResponse(e))
	}

	return employee.ListEmployeeResponse{
		Employees:  responses,
		TotalItems: total,
	}, nil
}

// Update implements employee.EmployeeService.
func (s *EmployeeServiceImpl) Update(ctx context.Context, req employee.UpdateEmployeeRequest) (employee.EmployeeResponse, error) {
	scope, err := user.ScopeFromContext(ctx)
	if err != nil {
		return employee.EmployeeResponse{}, err
	}
	if !scope.Can(user.PermissionEmployeeManage) {
		return employee.EmployeeResponse{}, user.ErrInsufficientPermissions
	}

	if err := req.Validate(); err != nil {
		return employee.EmployeeResponse{}, err
	}

	current, err := s.employeeRepo.GetByID(ctx, req.ID, scope.CompanyID)
	if err != nil {
		return employee.EmployeeResponse{}, err
	}

	if req.Name != nil {
		current.Name = *req.Name
	}
	if req.Department != nil {
		current.Department = *req.Department
	}
	if req.Position != nil {
		current.Position = *req.Position
	}
	if req.Phone != nil {
		current.Phone = req.Phone
	}
	if req.Role != nil {
		current.Role = user.Role(*req.Role)
	}

	if err := s.employeeRepo.Update(ctx, current); err != nil {
		return employee.EmployeeResponse{}, err
	}

	updated, err := s.employeeRepo.GetByID(ctx, req.ID, scope.CompanyID)
	if err != nil {
		return employee.EmployeeResponse{}, err
	}
	return toEmployeeResponse(updated), nil
}

// Deactivate implements employee.EmployeeService.
func (s *EmployeeServiceImpl) Deactivate(ctx context.Context, id string) error {
	scope, err := user.ScopeFromContext(ctx)
	if err != nil {
		return err
	}
	if !scope.Can(user.PermissionEmployeeManage) {
		return user.ErrInsufficientPermissions
	}

	if err := s.employeeRepo.Deactivate(ctx, id, scope.CompanyID); err != nil {
		return err
	}

	slog.Info("employee deactivated", "employee_id", id, "company_id", scope.CompanyID)
	return nil
}

// deriveCorporateEmail builds first.last@domain from the employee name,
// lowercased and accent-stripped. Collisions get a numeric suffix:
// maria.silva, maria.silva2, maria.silva3, ...
func (s *EmployeeServiceImpl) deriveCorporateEmail(ctx context.Context, name, domain string) (string, error) {
	localPart := emailLocalPart(name)

	count, err := s.employeeRepo.CountEmailPrefix(ctx, localPart, domain)
	if err != nil {
		return "", fmt.Errorf("failed to check email collisions: %w", err)
	}
	if count > 0 {
		localPart = fmt.Sprintf("%s%d", localPart, count+1)
	}

	return localPart + "@" + domain, nil
}

var accentReplacer = strings.NewReplacer(
	"á", "a", "à", "a", "â", "a", "ã", "a", "ä", "a",
	"é", "e", "è", "e", "ê", "e", "ë", "e",
	"í", "i", "ì", "i", "î", "i", "ï", "i",
	"ó", "o", "ò", "o", "ô", "o", "õ", "o", "ö", "o",
	"ú", "u", "ù", "u", "û", "u", "ü", "u",
	"ç", "c", "ñ", "n",
)

// emailLocalPart reduces a display name to first.last in ASCII.
func emailLocalPart(name string) string {
	normalized := accentReplacer.Replace(strings.ToLower(strings.TrimSpace(name)))

	fields := strings.Fields(normalized)
	parts := make([]string, 0, 2)
	if len(fields) > 0 {
		parts = append(parts, fields[0])
	}
	if len(fields) > 1 {
		parts = append(parts, fields[len(fields)-1])
	}

	local := strings.Join(parts, ".")

	// Keep only characters valid for the local part.
	var b strings.Builder
	for _, r := range local {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') || r == '.' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

func generateTempPassword() (string, error) {
	var b strings.Builder
	for i := 0; i < tempPasswordLength; i++ {
		n, err := rand.Int(rand.Reader, big.NewInt(int64(len(tempPasswordAlphabet))))
		if err != nil {
			return "", err
		}
		b.WriteByte(tempPasswordAlphabet[n.Int64()])
	}
	return b.String(), nil
}

func toEmployeeResponse(e employee.Employee) employee.EmployeeResponse {
	return employee.EmployeeResponse{
		ID:          e.ID,
		CompanyID:   e.CompanyID,
		Name:        e.Name,
		Email:       e.Email,
		Department:  e.Department,
		Position:    e.Position,
		Phone:       e.Phone,
		CPF:         e.CPF,
		Role:        string(e.Role),
		IsActive:    e.IsActive,
		CreatedAt:   e.CreatedAt.Format(time.RFC3339),
		UpdatedAt:   e.UpdatedAt.Format(time.RFC3339),
		CompanyName: e.CompanyName,
	}
}
