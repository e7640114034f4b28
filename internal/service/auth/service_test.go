package auth

import (
	"context"
	"strings"
	"testing"

	"github.com/go-chi/jwtauth/v5"
	"github.com/pontohq/ponto-backend-go/internal/domain/auth"
	"github.com/pontohq/ponto-backend-go/internal/domain/employee"
	"github.com/pontohq/ponto-backend-go/internal/domain/user"
	"github.com/pontohq/ponto-backend-go/internal/pkg/jwt"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

type memEmployeeRepo struct {
	employees map[string]*employee.Employee
}

func newMemEmployeeRepo() *memEmployeeRepo {
	return &memEmployeeRepo{employees: map[string]*employee.Employee{}}
}

func (m *memEmployeeRepo) Create(ctx context.Context, e employee.Employee) (employee.Employee, error) {
	stored := e
	m.employees[e.ID] = &stored
	return e, nil
}

func (m *memEmployeeRepo) GetByID(ctx context.Context, id string, companyID string) (employee.Employee, error) {
	e, ok := m.employees[id]
	if !ok || e.CompanyID != companyID {
		return employee.Employee{}, employee.ErrEmployeeNotFound
	}
	return *e, nil
}

func (m *memEmployeeRepo) GetByEmail(ctx context.Context, email string) (*employee.Employee, error) {
	for _, e := range m.employees {
		if strings.EqualFold(e.Email, email) {
			found := *e
			return &found, nil
		}
	}
	return nil, nil
}

func (m *memEmployeeRepo) GetByIDUnscoped(ctx context.Context, id string) (*employee.Employee, error) {
	e, ok := m.employees[id]
	if !ok {
		return nil, nil
	}
	found := *e
	return &found, nil
}

func (m *memEmployeeRepo) GetByCPF(ctx context.Context, cpf string, companyID string) (*employee.Employee, error) {
	return nil, nil
}

func (m *memEmployeeRepo) List(ctx context.Context, filter employee.EmployeeFilter, companyID string) ([]employee.Employee, int64, error) {
	return nil, 0, nil
}

func (m *memEmployeeRepo) Update(ctx context.Context, e employee.Employee) error {
	return nil
}

func (m *memEmployeeRepo) UpdatePassword(ctx context.Context, id, passwordHash string, mustChange bool) error {
	e, ok := m.employees[id]
	if !ok {
		return employee.ErrEmployeeNotFound
	}
	e.PasswordHash = passwordHash
	e.MustChangePassword = mustChange
	return nil
}

func (m *memEmployeeRepo) Deactivate(ctx context.Context, id string, companyID string) error {
	return nil
}

func (m *memEmployeeRepo) CountEmailPrefix(ctx context.Context, localPart, domain string) (int, error) {
	return 0, nil
}

func newTestAuthService(t *testing.T) (auth.AuthService, *memEmployeeRepo, jwt.Service) {
	t.Helper()
	repo := newMemEmployeeRepo()
	jwtSvc := jwt.NewJWTService("test-secret-key", "1h", "168h")
	return NewAuthService(repo, jwtSvc), repo, jwtSvc
}

func seedAccount(repo *memEmployeeRepo, id, email, password string, active bool) {
	hash, _ := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	repo.employees[id] = &employee.Employee{
		ID:           id,
		CompanyID:    "company-1",
		Name:         "Maria Silva",
		Email:        email,
		PasswordHash: string(hash),
		Role:         user.RoleEmployee,
		IsActive:     active,
	}
}

func TestLogin(t *testing.T) {
	svc, repo, _ := newTestAuthService(t)
	seedAccount(repo, "emp-1", "maria.silva@acme.com.br", "senha-forte", true)

	resp, refreshToken, refreshExpiresAt, err := svc.Login(context.Background(), auth.LoginRequest{
		Email:    "maria.silva@acme.com.br",
		Password: "senha-forte",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, resp.AccessToken)
	assert.NotEmpty(t, refreshToken)
	assert.Greater(t, refreshExpiresAt, int64(0))
	assert.Equal(t, "emp-1", resp.EmployeeID)
	assert.Equal(t, "company-1", resp.CompanyID)
}

func TestLoginInvalidCredentials(t *testing.T) {
	svc, repo, _ := newTestAuthService(t)
	seedAccount(repo, "emp-1", "maria.silva@acme.com.br", "senha-forte", true)

	// wrong password and unknown email must be indistinguishable
	_, _, _, err := svc.Login(context.Background(), auth.LoginRequest{
		Email:    "maria.silva@acme.com.br",
		Password: "errada",
	})
	assert.ErrorIs(t, err, auth.ErrInvalidCredentials)

	_, _, _, err = svc.Login(context.Background(), auth.LoginRequest{
		Email:    "ninguem@acme.com.br",
		Password: "senha-forte",
	})
	assert.ErrorIs(t, err, auth.ErrInvalidCredentials)
}

func TestLoginInactiveAccount(t *testing.T) {
	svc, repo, _ := newTestAuthService(t)
	seedAccount(repo, "emp-1", "maria.silva@acme.com.br", "senha-forte", false)

	_, _, _, err := svc.Login(context.Background(), auth.LoginRequest{
		Email:    "maria.silva@acme.com.br",
		Password: "senha-forte",
	})
	assert.ErrorIs(t, err, auth.ErrAccountInactive)
}

func TestRefreshRotation(t *testing.T) {
	svc, repo, _ := newTestAuthService(t)
	seedAccount(repo, "emp-1", "maria.silva@acme.com.br", "senha-forte", true)

	_, refreshToken, _, err := svc.Login(context.Background(), auth.LoginRequest{
		Email:    "maria.silva@acme.com.br",
		Password: "senha-forte",
	})
	require.NoError(t, err)

	resp, newRefreshToken, _, err := svc.Refresh(context.Background(), refreshToken)
	require.NoError(t, err)
	assert.NotEmpty(t, resp.AccessToken)
	assert.NotEqual(t, refreshToken, newRefreshToken)

	// the rotated-out token is dead
	_, _, _, err = svc.Refresh(context.Background(), refreshToken)
	assert.ErrorIs(t, err, auth.ErrRefreshTokenRevoked)

	// the new one still works
	_, _, _, err = svc.Refresh(context.Background(), newRefreshToken)
	assert.NoError(t, err)
}

func TestRefreshRejectsAccessToken(t *testing.T) {
	svc, repo, jwtSvc := newTestAuthService(t)
	seedAccount(repo, "emp-1", "maria.silva@acme.com.br", "senha-forte", true)

	accessToken, _, err := jwtSvc.GenerateAccessToken("emp-1", "maria.silva@acme.com.br", "company-1", user.RoleEmployee)
	require.NoError(t, err)

	_, _, _, err = svc.Refresh(context.Background(), accessToken)
	assert.ErrorIs(t, err, auth.ErrInvalidToken)
}

func TestLogoutRevokesRefreshToken(t *testing.T) {
	svc, repo, _ := newTestAuthService(t)
	seedAccount(repo, "emp-1", "maria.silva@acme.com.br", "senha-forte", true)

	_, refreshToken, _, err := svc.Login(context.Background(), auth.LoginRequest{
		Email:    "maria.silva@acme.com.br",
		Password: "senha-forte",
	})
	require.NoError(t, err)

	require.NoError(t, svc.Logout(context.Background(), refreshToken))

	_, _, _, err = svc.Refresh(context.Background(), refreshToken)
	assert.ErrorIs(t, err, auth.ErrRefreshTokenRevoked)

	// logging out without a cookie is fine
	assert.NoError(t, svc.Logout(context.Background(), ""))
}

func TestChangePassword(t *testing.T) {
	svc, repo, _ := newTestAuthService(t)
	seedAccount(repo, "emp-1", "maria.silva@acme.com.br", "senha-forte", true)
	repo.employees["emp-1"].MustChangePassword = true

	ctx := authTestContext(t, "emp-1", "company-1", "employee")

	err := svc.ChangePassword(ctx, auth.ChangePasswordRequest{
		CurrentPassword: "errada",
		NewPassword:     "nova-senha-123",
	})
	assert.ErrorIs(t, err, auth.ErrInvalidCredentials)

	err = svc.ChangePassword(ctx, auth.ChangePasswordRequest{
		CurrentPassword: "senha-forte",
		NewPassword:     "nova-senha-123",
	})
	require.NoError(t, err)

	assert.False(t, repo.employees["emp-1"].MustChangePassword)
	assert.NoError(t, bcrypt.CompareHashAndPassword(
		[]byte(repo.employees["emp-1"].PasswordHash), []byte("nova-senha-123")))
}

func authTestContext(t *testing.T, employeeID, companyID, role string) context.Context {
	t.Helper()

	ta := jwtauth.New("HS256", []byte("test-secret"), nil)
	token, _, err := ta.Encode(map[string]interface{}{
		"employee_id": employeeID,
		"company_id":  companyID,
		"role":        role,
	})
	require.NoError(t, err)

	return jwtauth.NewContext(context.Background(), token, nil)
}
