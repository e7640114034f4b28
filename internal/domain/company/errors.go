package company

import "errors"

var (
	ErrCompanyNotFound   = errors.New("company not found")
	ErrCNPJExists        = errors.New("CNPJ already registered")
	ErrEmailDomainExists = errors.New("email domain already registered")
	ErrCompanyInactive   = errors.New("company is inactive")
)
