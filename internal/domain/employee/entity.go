package employee

import (
	"time"

	"github.com/pontohq/ponto-backend-go/internal/domain/user"
)

// Employee is both the HR record and the login account. Rows are never hard
// deleted: deactivation keeps historical time records, absences and tickets
// pointing at a valid employee.
type Employee struct {
	ID           string
	CompanyID    string
	Name         string
	Email        string
	Department   string
	Position     string
	Phone        *string
	CPF          string
	Role         user.Role
	IsActive     bool
	PasswordHash string
	// MustChangePassword is set while the one-time temporary credential from
	// onboarding is still in use.
	MustChangePassword bool
	CreatedAt          time.Time
	UpdatedAt          time.Time

	// DTO
	CompanyName *string
}
