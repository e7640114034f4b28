package timerecord

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/go-chi/jwtauth/v5"
	"github.com/pontohq/ponto-backend-go/internal/domain/timerecord"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func clockTestContext(t *testing.T, employeeID, companyID, role string) context.Context {
	t.Helper()

	ta := jwtauth.New("HS256", []byte("test-secret"), nil)
	token, _, err := ta.Encode(map[string]interface{}{
		"employee_id": employeeID,
		"company_id":  companyID,
		"role":        role,
	})
	require.NoError(t, err)

	return jwtauth.NewContext(context.Background(), token, nil)
}

// memTimeRecordRepo mirrors the guarded-update semantics of the real
// repository: CloseRecord only affects a row still missing clock_out.
type memTimeRecordRepo struct {
	records map[string]*timerecord.TimeRecord
	nextID  int
}

func newMemTimeRecordRepo() *memTimeRecordRepo {
	return &memTimeRecordRepo{records: map[string]*timerecord.TimeRecord{}}
}

func (m *memTimeRecordRepo) Create(ctx context.Context, rec timerecord.TimeRecord) (timerecord.TimeRecord, error) {
	m.nextID++
	rec.ID = fmt.Sprintf("rec-%d", m.nextID)
	rec.CreatedAt = time.Now()
	rec.UpdatedAt = rec.CreatedAt
	stored := rec
	m.records[rec.ID] = &stored
	return rec, nil
}

func (m *memTimeRecordRepo) GetByID(ctx context.Context, id string, companyID string) (timerecord.TimeRecord, error) {
	rec, ok := m.records[id]
	if !ok || rec.CompanyID != companyID {
		return timerecord.TimeRecord{}, timerecord.ErrRecordNotFound
	}
	return *rec, nil
}

func (m *memTimeRecordRepo) GetByEmployeeAndDate(ctx context.Context, employeeID string, date time.Time, companyID string) (*timerecord.TimeRecord, error) {
	for _, rec := range m.records {
		if rec.EmployeeID == employeeID && rec.CompanyID == companyID && rec.Date.Equal(date) {
			found := *rec
			return &found, nil
		}
	}
	return nil, nil
}

func (m *memTimeRecordRepo) CloseRecord(ctx context.Context, id string, companyID string, clockOut time.Time, totalHours float64) (int64, error) {
	rec, ok := m.records[id]
	if !ok || rec.CompanyID != companyID || rec.ClockOut != nil {
		return 0, nil
	}
	out := clockOut
	rec.ClockOut = &out
	rec.TotalHours = &totalHours
	rec.UpdatedAt = time.Now()
	return 1, nil
}

func (m *memTimeRecordRepo) List(ctx context.Context, filter timerecord.TimeRecordFilter, companyID string) ([]timerecord.TimeRecord, int64, error) {
	out := []timerecord.TimeRecord{}
	for _, rec := range m.records {
		if rec.CompanyID != companyID {
			continue
		}
		if filter.EmployeeID != nil && rec.EmployeeID != *filter.EmployeeID {
			continue
		}
		out = append(out, *rec)
	}
	return out, int64(len(out)), nil
}

func (m *memTimeRecordRepo) ListForRange(ctx context.Context, companyID string, start, end time.Time, employeeID *string) ([]timerecord.TimeRecord, error) {
	return nil, nil
}

func newTestService(repo *memTimeRecordRepo, now time.Time) *TimeRecordServiceImpl {
	return &TimeRecordServiceImpl{
		recordRepo: repo,
		now:        func() time.Time { return now },
	}
}

func TestClockInTwiceSameDay(t *testing.T) {
	repo := newMemTimeRecordRepo()
	svc := newTestService(repo, time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC))
	ctx := clockTestContext(t, "emp-1", "company-1", "employee")

	first, err := svc.ClockIn(ctx, timerecord.ClockInRequest{})
	require.NoError(t, err)
	assert.Equal(t, "2026-03-10", first.Date)
	require.NotNil(t, first.ClockIn)
	assert.False(t, first.Complete)

	_, err = svc.ClockIn(ctx, timerecord.ClockInRequest{})
	assert.ErrorIs(t, err, timerecord.ErrAlreadyClockedIn)
}

func TestClockInNextDayAllowed(t *testing.T) {
	repo := newMemTimeRecordRepo()
	ctx := clockTestContext(t, "emp-1", "company-1", "employee")

	_, err := newTestService(repo, time.Date(2026, 3, 10, 22, 0, 0, 0, time.UTC)).ClockIn(ctx, timerecord.ClockInRequest{})
	require.NoError(t, err)

	_, err = newTestService(repo, time.Date(2026, 3, 11, 8, 0, 0, 0, time.UTC)).ClockIn(ctx, timerecord.ClockInRequest{})
	assert.NoError(t, err)
}

func TestClockOutDerivesTotalHours(t *testing.T) {
	repo := newMemTimeRecordRepo()
	ctx := clockTestContext(t, "emp-1", "company-1", "employee")

	_, err := newTestService(repo, time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)).ClockIn(ctx, timerecord.ClockInRequest{})
	require.NoError(t, err)

	resp, err := newTestService(repo, time.Date(2026, 3, 10, 17, 30, 0, 0, time.UTC)).ClockOut(ctx, timerecord.ClockOutRequest{})
	require.NoError(t, err)
	require.NotNil(t, resp.TotalHours)
	assert.InDelta(t, 8.5, *resp.TotalHours, 1e-9)
	assert.True(t, resp.Complete)
}

func TestClockOutWithoutClockIn(t *testing.T) {
	repo := newMemTimeRecordRepo()
	svc := newTestService(repo, time.Date(2026, 3, 10, 17, 0, 0, 0, time.UTC))
	ctx := clockTestContext(t, "emp-1", "company-1", "employee")

	_, err := svc.ClockOut(ctx, timerecord.ClockOutRequest{})
	assert.ErrorIs(t, err, timerecord.ErrNotClockedIn)
}

func TestClockOutTwice(t *testing.T) {
	repo := newMemTimeRecordRepo()
	ctx := clockTestContext(t, "emp-1", "company-1", "employee")

	_, err := newTestService(repo, time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)).ClockIn(ctx, timerecord.ClockInRequest{})
	require.NoError(t, err)

	svc := newTestService(repo, time.Date(2026, 3, 10, 17, 0, 0, 0, time.UTC))
	_, err = svc.ClockOut(ctx, timerecord.ClockOutRequest{})
	require.NoError(t, err)

	_, err = svc.ClockOut(ctx, timerecord.ClockOutRequest{})
	assert.ErrorIs(t, err, timerecord.ErrAlreadyClockedOut)
}

func TestClockOutBeforeClockIn(t *testing.T) {
	repo := newMemTimeRecordRepo()
	ctx := clockTestContext(t, "emp-1", "company-1", "employee")

	ts := "2026-03-10T09:00:00Z"
	_, err := newTestService(repo, time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)).ClockIn(ctx, timerecord.ClockInRequest{Timestamp: &ts})
	require.NoError(t, err)

	earlier := "2026-03-10T08:00:00Z"
	_, err = newTestService(repo, time.Date(2026, 3, 10, 9, 30, 0, 0, time.UTC)).ClockOut(ctx, timerecord.ClockOutRequest{Timestamp: &earlier})
	assert.ErrorIs(t, err, timerecord.ErrClockOutBeforeIn)
}

func TestGetMyRecordsIgnoresForeignFilter(t *testing.T) {
	repo := newMemTimeRecordRepo()
	ctxMine := clockTestContext(t, "emp-1", "company-1", "employee")
	ctxOther := clockTestContext(t, "emp-2", "company-1", "employee")

	_, err := newTestService(repo, time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)).ClockIn(ctxMine, timerecord.ClockInRequest{})
	require.NoError(t, err)
	_, err = newTestService(repo, time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)).ClockIn(ctxOther, timerecord.ClockInRequest{})
	require.NoError(t, err)

	svc := newTestService(repo, time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC))

	otherID := "emp-2"
	resp, err := svc.GetMyRecords(ctxMine, timerecord.TimeRecordFilter{EmployeeID: &otherID, Page: 1, Limit: 20})
	require.NoError(t, err)
	require.Len(t, resp.Records, 1)
	assert.Equal(t, "emp-1", resp.Records[0].EmployeeID)
}

func TestListRequiresViewAllPermission(t *testing.T) {
	repo := newMemTimeRecordRepo()
	svc := newTestService(repo, time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC))

	_, err := svc.List(clockTestContext(t, "emp-1", "company-1", "employee"), timerecord.TimeRecordFilter{Page: 1, Limit: 20})
	assert.Error(t, err)

	_, err = svc.List(clockTestContext(t, "emp-9", "company-1", "hr"), timerecord.TimeRecordFilter{Page: 1, Limit: 20})
	assert.NoError(t, err)
}
