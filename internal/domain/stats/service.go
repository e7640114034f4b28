package stats

import "context"

// StatsService resolves the caller's scope, fetches the scoped records and
// aggregates them. Read-only path; safe under unbounded concurrency.
type StatsService interface {
	GetStatistics(ctx context.Context, req StatisticsRequest) (StatisticsResponse, error)
}
