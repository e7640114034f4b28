package dashboard

import (
	"context"
	"time"
)

// Counters is the single-query snapshot behind the headline cards.
type Counters struct {
	TotalEmployees  int
	PendingAbsences int
	OpenTickets     int
	HighPriority    int
}

type ActivityRow struct {
	EmployeeName string
	Action       string
	OccurredAt   time.Time
}

// DashboardRepository aggregates headline numbers for one company.
type DashboardRepository interface {
	GetCounters(ctx context.Context, companyID string) (Counters, error)

	// GetPresenceRate returns the share (0-100) of active employees with at
	// least one completed clock pair since the given date.
	GetPresenceRate(ctx context.Context, companyID string, since time.Time) (float64, error)

	GetRecentActivity(ctx context.Context, companyID string, limit int) ([]ActivityRow, error)
}
