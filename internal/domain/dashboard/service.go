package dashboard

import "context"

// DashboardService builds the overview for hr/manager/admin screens.
type DashboardService interface {
	GetDashboard(ctx context.Context, req DashboardRequest) (DashboardResponse, error)
}
