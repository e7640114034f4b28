package timerecord

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/pontohq/ponto-backend-go/internal/domain/timerecord"
	"github.com/pontohq/ponto-backend-go/internal/domain/user"
)

type TimeRecordServiceImpl struct {
	recordRepo timerecord.TimeRecordRepository
	now        func() time.Time
}

func NewTimeRecordService(recordRepo timerecord.TimeRecordRepository) timerecord.TimeRecordService {
	return &TimeRecordServiceImpl{
		recordRepo: recordRepo,
		now:        time.Now,
	}
}

// ClockIn implements timerecord.TimeRecordService. One record per employee
// per calendar day; a second clock-in on the same day fails.
func (s *TimeRecordServiceImpl) ClockIn(ctx context.Context, req timerecord.ClockInRequest) (timerecord.TimeRecordResponse, error) {
	scope, err := user.ScopeFromContext(ctx)
	if err != nil {
		return timerecord.TimeRecordResponse{}, err
	}

	if err := req.Validate(); err != nil {
		return timerecord.TimeRecordResponse{}, err
	}

	at := s.now()
	if req.Timestamp != nil {
		at, err = time.Parse(time.RFC3339, *req.Timestamp)
		if err != nil {
			return timerecord.TimeRecordResponse{}, fmt.Errorf("invalid timestamp: %w", err)
		}
	}
	day := truncateToDay(at)

	existing, err := s.recordRepo.GetByEmployeeAndDate(ctx, scope.EmployeeID, day, scope.CompanyID)
	if err != nil {
		return timerecord.TimeRecordResponse{}, fmt.Errorf("failed to check today's record: %w", err)
	}
	if existing != nil {
		return timerecord.TimeRecordResponse{}, timerecord.ErrAlreadyClockedIn
	}

	created, err := s.recordRepo.Create(ctx, timerecord.TimeRecord{
		CompanyID:  scope.CompanyID,
		EmployeeID: scope.EmployeeID,
		Date:       day,
		ClockIn:    &at,
	})
	if err != nil {
		return timerecord.TimeRecordResponse{}, fmt.Errorf("failed to clock in: %w", err)
	}

	slog.Info("clock in", "employee_id", scope.EmployeeID, "record_id", created.ID)

	return toTimeRecordResponse(created), nil
}

// ClockOut implements timerecord.TimeRecordService. Completes today's open
// record; total hours are derived, never supplied by the caller.
func (s *TimeRecordServiceImpl) ClockOut(ctx context.Context, req timerecord.ClockOutRequest) (timerecord.TimeRecordResponse, error) {
	scope, err := user.ScopeFromContext(ctx)
	if err != nil {
		return timerecord.TimeRecordResponse{}, err
	}

	if err := req.Validate(); err != nil {
		return timerecord.TimeRecordResponse{}, err
	}

	at := s.now()
	if req.Timestamp != nil {
		at, err = time.Parse(time.RFC3339, *req.Timestamp)
		if err != nil {
			return timerecord.TimeRecordResponse{}, fmt.Errorf("invalid timestamp: %w", err)
		}
	}
	day := truncateToDay(at)

	existing, err := s.recordRepo.GetByEmployeeAndDate(ctx, scope.EmployeeID, day, scope.CompanyID)
	if err != nil {
		return timerecord.TimeRecordResponse{}, fmt.Errorf("failed to check today's record: %w", err)
	}
	if existing == nil || existing.ClockIn == nil {
		return timerecord.TimeRecordResponse{}, timerecord.ErrNotClockedIn
	}
	if existing.ClockOut != nil {
		return timerecord.TimeRecordResponse{}, timerecord.ErrAlreadyClockedOut
	}
	if at.Before(*existing.ClockIn) {
		return timerecord.TimeRecordResponse{}, timerecord.ErrClockOutBeforeIn
	}

	totalHours := at.Sub(*existing.ClockIn).Hours()

	affected, err := s.recordRepo.CloseRecord(ctx, existing.ID, scope.CompanyID, at, totalHours)
	if err != nil {
		return timerecord.TimeRecordResponse{}, fmt.Errorf("failed to clock out: %w", err)
	}
	if affected == 0 {
		// lost the race against a concurrent clock-out
		return timerecord.TimeRecordResponse{}, timerecord.ErrAlreadyClockedOut
	}

	closed, err := s.recordRepo.GetByID(ctx, existing.ID, scope.CompanyID)
	if err != nil {
		return timerecord.TimeRecordResponse{}, err
	}

	slog.Info("clock out", "employee_id", scope.EmployeeID, "record_id", closed.ID, "total_hours", totalHours)

	return toTimeRecordResponse(closed), nil
}

// GetMyRecords implements timerecord.TimeRecordService.
func (s *TimeRecordServiceImpl) GetMyRecords(ctx context.Context, filter timerecord.TimeRecordFilter) (timerecord.ListTimeRecordResponse, error) {
	scope, err := user.ScopeFromContext(ctx)
	if err != nil {
		return timerecord.ListTimeRecordResponse{}, err
	}

	// own records only, whatever the filter says
	filter.EmployeeID = &scope.EmployeeID
	filter.CompanyID = nil

	return s.list(ctx, filter, scope.CompanyID)
}

// List implements timerecord.TimeRecordService. Requires view-all permission;
// admins may target another company.
func (s *TimeRecordServiceImpl) List(ctx context.Context, filter timerecord.TimeRecordFilter) (timerecord.ListTimeRecordResponse, error) {
	scope, err := user.ScopeFromContext(ctx)
	if err != nil {
		return timerecord.ListTimeRecordResponse{}, err
	}
	if !scope.Can(user.PermissionTimeRecordViewAll) {
		return timerecord.ListTimeRecordResponse{}, user.ErrInsufficientPermissions
	}

	companyID, err := scope.ResolveCompany(filter.CompanyID)
	if err != nil {
		return timerecord.ListTimeRecordResponse{}, err
	}

	return s.list(ctx, filter, companyID)
}

func (s *TimeRecordServiceImpl) list(ctx context.Context, filter timerecord.TimeRecordFilter, companyID string) (timerecord.ListTimeRecordResponse, error) {
	if err := filter.Validate(); err != nil {
		return timerecord.ListTimeRecordResponse{}, err
	}

	records, total, err := s.recordRepo.List(ctx, filter, companyID)
	if err != nil {
		return timerecord.ListTimeRecordResponse{}, fmt.Errorf("failed to list time records: %w", err)
	}

	responses := make([]timerecord.TimeRecordResponse, 0, len(records))
	for _, rec := range records {
		responses = append(responses, toTimeRecordResponse(rec))
	}

	return timerecord.ListTimeRecordResponse{
		Records:    responses,
		TotalItems: total,
	}, nil
}

func truncateToDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

func toTimeRecordResponse(rec timerecord.TimeRecord) timerecord.TimeRecordResponse {
	resp := timerecord.TimeRecordResponse{
		ID:           rec.ID,
		EmployeeID:   rec.EmployeeID,
		EmployeeName: rec.EmployeeName,
		Department:   rec.EmployeeDepartment,
		Date:         rec.Date.Format("2006-01-02"),
		TotalHours:   rec.TotalHours,
		Complete:     rec.Complete(),
		CreatedAt:    rec.CreatedAt.Format(time.RFC3339),
		UpdatedAt:    rec.UpdatedAt.Format(time.RFC3339),
	}
	if rec.ClockIn != nil {
		v := rec.ClockIn.Format(time.RFC3339)
		resp.ClockIn = &v
	}
	if rec.ClockOut != nil {
		v := rec.ClockOut.Format(time.RFC3339)
		resp.ClockOut = &v
	}
	return resp
}
