package dashboard

import (
	"context"
	"fmt"
	"time"

	"github.com/pontohq/ponto-backend-go/internal/domain/dashboard"
	"github.com/pontohq/ponto-backend-go/internal/domain/user"
)

const presenceWindowDays = 30

const recentActivityLimit = 10

type DashboardServiceImpl struct {
	dashboardRepo dashboard.DashboardRepository
	now           func() time.Time
}

func NewDashboardService(dashboardRepo dashboard.DashboardRepository) dashboard.DashboardService {
	return &DashboardServiceImpl{
		dashboardRepo: dashboardRepo,
		now:           time.Now,
	}
}

// GetDashboard implements dashboard.DashboardService.
func (s *DashboardServiceImpl) GetDashboard(ctx context.Context, req dashboard.DashboardRequest) (dashboard.DashboardResponse, error) {
	scope, err := user.ScopeFromContext(ctx)
	if err != nil {
		return dashboard.DashboardResponse{}, err
	}
	if !scope.Can(user.PermissionReportsView) {
		return dashboard.DashboardResponse{}, user.ErrInsufficientPermissions
	}

	companyID, err := scope.ResolveCompany(req.CompanyID)
	if err != nil {
		return dashboard.DashboardResponse{}, err
	}

	counters, err := s.dashboardRepo.GetCounters(ctx, companyID)
	if err != nil {
		return dashboard.DashboardResponse{}, fmt.Errorf("failed to load counters: %w", err)
	}

	since := s.now().AddDate(0, 0, -presenceWindowDays)
	presenceRate, err := s.dashboardRepo.GetPresenceRate(ctx, companyID, since)
	if err != nil {
		return dashboard.DashboardResponse{}, fmt.Errorf("failed to load presence rate: %w", err)
	}

	rows, err := s.dashboardRepo.GetRecentActivity(ctx, companyID, recentActivityLimit)
	if err != nil {
		return dashboard.DashboardResponse{}, fmt.Errorf("failed to load recent activity: %w", err)
	}

	activity := make([]dashboard.Activity, 0, len(rows))
	for _, row := range rows {
		activity = append(activity, dashboard.Activity{
			EmployeeName: row.EmployeeName,
			Action:       row.Action,
			OccurredAt:   row.OccurredAt.Format(time.RFC3339),
		})
	}

	return dashboard.DashboardResponse{
		TotalEmployees:  counters.TotalEmployees,
		PendingAbsences: counters.PendingAbsences,
		OpenTickets:     counters.OpenTickets,
		HighPriority:    counters.HighPriority,
		PresenceRate:    presenceRate,
		RecentActivity:  activity,
	}, nil
}
