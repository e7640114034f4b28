package stats

import (
	"context"
	"fmt"
	"time"

	"github.com/pontohq/ponto-backend-go/internal/domain/stats"
	"github.com/pontohq/ponto-backend-go/internal/domain/timerecord"
	"github.com/pontohq/ponto-backend-go/internal/domain/user"
)

type StatsServiceImpl struct {
	recordRepo timerecord.TimeRecordRepository
}

func NewStatsService(recordRepo timerecord.TimeRecordRepository) stats.StatsService {
	return &StatsServiceImpl{recordRepo: recordRepo}
}

// GetStatistics implements stats.StatsService. Scope resolution happens here;
// the aggregation itself is pure and receives already-scoped records.
func (s *StatsServiceImpl) GetStatistics(ctx context.Context, req stats.StatisticsRequest) (stats.StatisticsResponse, error) {
	scope, err := user.ScopeFromContext(ctx)
	if err != nil {
		return stats.StatisticsResponse{}, err
	}

	if err := req.Validate(); err != nil {
		return stats.StatisticsResponse{}, err
	}

	companyID, err := scope.ResolveCompany(req.CompanyID)
	if err != nil {
		return stats.StatisticsResponse{}, err
	}

	employeeID := req.EmployeeID
	if !scope.Can(user.PermissionTimeRecordViewAll) {
		// employees only ever see their own numbers
		employeeID = &scope.EmployeeID
	}

	start, err := time.Parse("2006-01-02", req.StartDate)
	if err != nil {
		return stats.StatisticsResponse{}, fmt.Errorf("invalid start_date: %w", err)
	}
	end, err := time.Parse("2006-01-02", req.EndDate)
	if err != nil {
		return stats.StatisticsResponse{}, fmt.Errorf("invalid end_date: %w", err)
	}

	rng := stats.Range{Start: start, End: end}
	if rng.End.Before(rng.Start) {
		return stats.StatisticsResponse{}, stats.ErrInvalidRange
	}

	records, err := s.recordRepo.ListForRange(ctx, companyID, start, end, employeeID)
	if err != nil {
		return stats.StatisticsResponse{}, fmt.Errorf("failed to load records: %w", err)
	}

	statistics, warnings, err := stats.Aggregate(records, rng, stats.Options{TrailingDays: req.TrailingDays})
	if err != nil {
		return stats.StatisticsResponse{}, err
	}

	return stats.StatisticsResponse{
		PeriodStart: req.StartDate,
		PeriodEnd:   req.EndDate,
		Statistics:  statistics,
		Warnings:    warnings,
	}, nil
}
