package auth

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/pontohq/ponto-backend-go/internal/domain/auth"
	"github.com/pontohq/ponto-backend-go/internal/domain/employee"
	"github.com/pontohq/ponto-backend-go/internal/domain/user"
	"github.com/pontohq/ponto-backend-go/internal/pkg/jwt"
	"golang.org/x/crypto/bcrypt"
)

type AuthServiceImpl struct {
	employeeRepo employee.EmployeeRepository
	jwtService   jwt.Service
}

func NewAuthService(employeeRepo employee.EmployeeRepository, jwtService jwt.Service) auth.AuthService {
	return &AuthServiceImpl{
		employeeRepo: employeeRepo,
		jwtService:   jwtService,
	}
}

// Login implements auth.AuthService. ErrInvalidCredentials covers both the
// unknown-email and wrong-password cases so responses don't leak which one
// failed.
func (s *AuthServiceImpl) Login(ctx context.Context, req auth.LoginRequest) (auth.LoginResponse, string, int64, error) {
	if err := req.Validate(); err != nil {
		return auth.LoginResponse{}, "", 0, err
	}

	found, err := s.employeeRepo.GetByEmail(ctx, req.Email)
	if err != nil {
		return auth.LoginResponse{}, "", 0, fmt.Errorf("failed to look up account: %w", err)
	}
	if found == nil {
		return auth.LoginResponse{}, "", 0, auth.ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(found.PasswordHash), []byte(req.Password)); err != nil {
		return auth.LoginResponse{}, "", 0, auth.ErrInvalidCredentials
	}

	if !found.IsActive {
		return auth.LoginResponse{}, "", 0, auth.ErrAccountInactive
	}

	return s.issueTokens(*found)
}

// LoginWithGoogle implements auth.AuthService. The OAuth handler has already
// verified the Google identity; only accounts that exist may log in.
func (s *AuthServiceImpl) LoginWithGoogle(ctx context.Context, email string) (auth.LoginResponse, string, int64, error) {
	found, err := s.employeeRepo.GetByEmail(ctx, email)
	if err != nil {
		return auth.LoginResponse{}, "", 0, fmt.Errorf("failed to look up account: %w", err)
	}
	if found == nil {
		return auth.LoginResponse{}, "", 0, auth.ErrOAuthEmailUnknown
	}
	if !found.IsActive {
		return auth.LoginResponse{}, "", 0, auth.ErrAccountInactive
	}

	return s.issueTokens(*found)
}

// Refresh implements auth.AuthService. Rotation: the presented refresh token
// is revoked and a new one is issued alongside the access token.
func (s *AuthServiceImpl) Refresh(ctx context.Context, refreshToken string) (auth.RefreshResponse, string, int64, error) {
	if s.jwtService.IsTokenRevoked(refreshToken) {
		return auth.RefreshResponse{}, "", 0, auth.ErrRefreshTokenRevoked
	}

	employeeID, err := s.jwtService.ParseRefreshToken(refreshToken)
	if err != nil {
		return auth.RefreshResponse{}, "", 0, auth.ErrInvalidToken
	}

	account, err := s.employeeRepo.GetByIDUnscoped(ctx, employeeID)
	if err != nil {
		return auth.RefreshResponse{}, "", 0, fmt.Errorf("failed to look up account: %w", err)
	}
	if account == nil {
		return auth.RefreshResponse{}, "", 0, auth.ErrInvalidToken
	}
	if !account.IsActive {
		return auth.RefreshResponse{}, "", 0, auth.ErrAccountInactive
	}

	accessToken, accessExpiresAt, err := s.jwtService.GenerateAccessToken(account.ID, account.Email, account.CompanyID, account.Role)
	if err != nil {
		return auth.RefreshResponse{}, "", 0, fmt.Errorf("failed to generate access token: %w", err)
	}

	newRefreshToken, refreshExpiresAt, err := s.jwtService.GenerateRefreshToken(account.ID)
	if err != nil {
		return auth.RefreshResponse{}, "", 0, fmt.Errorf("failed to generate refresh token: %w", err)
	}

	s.jwtService.RevokeToken(refreshToken)

	return auth.RefreshResponse{
		AccessToken: accessToken,
		ExpiresAt:   accessExpiresAt,
	}, newRefreshToken, refreshExpiresAt, nil
}

// Logout implements auth.AuthService.
func (s *AuthServiceImpl) Logout(ctx context.Context, refreshToken string) error {
	if refreshToken == "" {
		return nil
	}
	s.jwtService.RevokeToken(refreshToken)
	return nil
}

// ChangePassword implements auth.AuthService. Clears the must-change flag set
// by onboarding.
func (s *AuthServiceImpl) ChangePassword(ctx context.Context, req auth.ChangePasswordRequest) error {
	scope, err := user.ScopeFromContext(ctx)
	if err != nil {
		return err
	}

	if err := req.Validate(); err != nil {
		return err
	}

	account, err := s.employeeRepo.GetByIDUnscoped(ctx, scope.EmployeeID)
	if err != nil {
		return fmt.Errorf("failed to look up account: %w", err)
	}
	if account == nil {
		return auth.ErrInvalidToken
	}

	if err := bcrypt.CompareHashAndPassword([]byte(account.PasswordHash), []byte(req.CurrentPassword)); err != nil {
		return auth.ErrInvalidCredentials
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.NewPassword), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}

	if err := s.employeeRepo.UpdatePassword(ctx, account.ID, string(hash), false); err != nil {
		return err
	}

	slog.Info("password changed", "employee_id", account.ID)
	return nil
}

func (s *AuthServiceImpl) issueTokens(account employee.Employee) (auth.LoginResponse, string, int64, error) {
	accessToken, accessExpiresAt, err := s.jwtService.GenerateAccessToken(account.ID, account.Email, account.CompanyID, account.Role)
	if err != nil {
		return auth.LoginResponse{}, "", 0, fmt.Errorf("failed to generate access token: %w", err)
	}

	refreshToken, refreshExpiresAt, err := s.jwtService.GenerateRefreshToken(account.ID)
	if err != nil {
		return auth.LoginResponse{}, "", 0, fmt.Errorf("failed to generate refresh token: %w", err)
	}

	return auth.LoginResponse{
		AccessToken:        accessToken,
		ExpiresAt:          accessExpiresAt,
		MustChangePassword: account.MustChangePassword,
		EmployeeID:         account.ID,
		CompanyID:          account.CompanyID,
		Name:               account.Name,
		Email:              account.Email,
		Role:               string(account.Role),
	}, refreshToken, refreshExpiresAt, nil
}
