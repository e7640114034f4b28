package user

import "errors"

var (
	ErrCompanyForbidden        = errors.New("caller is not allowed to access this company's data")
	ErrCompanyIDRequired       = errors.New("company ID is required")
	ErrAdminPrivilegeRequired  = errors.New("admin privilege required")
	ErrReviewerRoleRequired    = errors.New("hr, manager or admin role required")
	ErrInsufficientPermissions = errors.New("insufficient permissions")
	ErrInvalidRole             = errors.New("invalid role")
)
