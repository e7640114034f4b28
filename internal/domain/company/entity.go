package company

import "time"

// Company is a tenant. Every employee, time record, absence and ticket belongs
// to exactly one company; the CNPJ is immutable after creation.
type Company struct {
	ID          string
	Name        string
	CNPJ        string
	Email       string
	EmailDomain string
	Address     *string
	IsActive    bool
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
