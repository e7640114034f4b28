package employee

import "errors"

var (
	ErrEmployeeNotFound = errors.New("employee not found")
	ErrEmailExists      = errors.New("email already registered in this company")
	ErrCPFExists        = errors.New("CPF already registered")
	ErrEmployeeInactive = errors.New("employee is inactive")
)
