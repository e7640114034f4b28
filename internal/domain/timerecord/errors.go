package timerecord

import "errors"

var (
	ErrRecordNotFound    = errors.New("time record not found")
	ErrAlreadyClockedIn  = errors.New("already clocked in today")
	ErrNotClockedIn      = errors.New("no open clock-in for today")
	ErrAlreadyClockedOut = errors.New("already clocked out today")
	ErrClockOutBeforeIn  = errors.New("clock-out cannot be earlier than clock-in")
	ErrEmployeeMismatch  = errors.New("time record belongs to another employee")
)
