package postgresql

import (
	"context"
	"fmt"
	"time"

	"github.com/pontohq/ponto-backend-go/internal/domain/dashboard"
	"github.com/pontohq/ponto-backend-go/internal/pkg/database"
)

type dashboardRepositoryImpl struct {
	db *database.DB
}

func NewDashboardRepository(db *database.DB) dashboard.DashboardRepository {
	return &dashboardRepositoryImpl{db: db}
}

// GetCounters implements dashboard.DashboardRepository. One round-trip for
// all four cards so they come from the same snapshot.
func (r *dashboardRepositoryImpl) GetCounters(ctx context.Context, companyID string) (dashboard.Counters, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT
			(SELECT COUNT(*) FROM employees WHERE company_id = $1 AND is_active = true),
			(SELECT COUNT(*) FROM absences WHERE company_id = $1 AND status = 'pending'),
			(SELECT COUNT(*) FROM tickets WHERE company_id = $1 AND status <> 'resolved'),
			(SELECT COUNT(*) FROM tickets WHERE company_id = $1 AND status <> 'resolved' AND priority = 'high')
	`

	var c dashboard.Counters
	err := q.QueryRow(ctx, query, companyID).Scan(
		&c.TotalEmployees,
		&c.PendingAbsences,
		&c.OpenTickets,
		&c.HighPriority,
	)
	if err != nil {
		return dashboard.Counters{}, fmt.Errorf("failed to get dashboard counters: %w", err)
	}
	return c, nil
}

// GetPresenceRate implements dashboard.DashboardRepository.
func (r *dashboardRepositoryImpl) GetPresenceRate(ctx context.Context, companyID string, since time.Time) (float64, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT
			COUNT(*) FILTER (WHERE present.employee_id IS NOT NULL),
			COUNT(*)
		FROM employees e
		LEFT JOIN (
			SELECT DISTINCT employee_id
			FROM time_records
			WHERE company_id = $1 AND date >= $2 AND clock_in IS NOT NULL AND clock_out IS NOT NULL
		) present ON present.employee_id = e.id
		WHERE e.company_id = $1 AND e.is_active = true
	`

	var withRecords, totalActive int
	if err := q.QueryRow(ctx, query, companyID, since).Scan(&withRecords, &totalActive); err != nil {
		return 0, fmt.Errorf("failed to get presence rate: %w", err)
	}
	if totalActive == 0 {
		return 0, nil
	}
	return float64(withRecords) * 100 / float64(totalActive), nil
}

// GetRecentActivity implements dashboard.DashboardRepository. Clock events,
// absence submissions and ticket openings merged into one feed.
func (r *dashboardRepositoryImpl) GetRecentActivity(ctx context.Context, companyID string, limit int) ([]dashboard.ActivityRow, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT e.name, ev.action, ev.occurred_at
		FROM (
			SELECT employee_id, 'clock_in' AS action, clock_in AS occurred_at
			FROM time_records
			WHERE company_id = $1 AND clock_in IS NOT NULL
			UNION ALL
			SELECT employee_id, 'absence_submitted', created_at
			FROM absences
			WHERE company_id = $1
			UNION ALL
			SELECT employee_id, 'ticket_opened', created_at
			FROM tickets
			WHERE company_id = $1
		) ev
		JOIN employees e ON e.id = ev.employee_id
		ORDER BY ev.occurred_at DESC
		LIMIT $2
	`

	rows, err := q.Query(ctx, query, companyID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to get recent activity: %w", err)
	}
	defer rows.Close()

	activity := make([]dashboard.ActivityRow, 0)
	for rows.Next() {
		var row dashboard.ActivityRow
		if err := rows.Scan(&row.EmployeeName, &row.Action, &row.OccurredAt); err != nil {
			return nil, fmt.Errorf("failed to scan activity row: %w", err)
		}
		activity = append(activity, row)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate activity rows: %w", err)
	}

	return activity, nil
}
