package auth

import "context"

// AuthService authenticates employees and manages token pairs. The refresh
// token travels in an HttpOnly cookie; Login/Refresh return the new refresh
// token alongside the response so the handler can set it.
type AuthService interface {
	Login(ctx context.Context, req LoginRequest) (LoginResponse, string, int64, error)
	LoginWithGoogle(ctx context.Context, email string) (LoginResponse, string, int64, error)
	Refresh(ctx context.Context, refreshToken string) (RefreshResponse, string, int64, error)
	Logout(ctx context.Context, refreshToken string) error
	ChangePassword(ctx context.Context, req ChangePasswordRequest) error
}
