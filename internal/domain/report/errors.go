package report

import "errors"

var (
	ErrNothingToExport = errors.New("no records in the requested period")
)
