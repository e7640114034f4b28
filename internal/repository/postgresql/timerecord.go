package postgresql

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/pontohq/ponto-backend-go/internal/domain/timerecord"
	"github.com/pontohq/ponto-backend-go/internal/pkg/database"
)

type timeRecordRepositoryImpl struct {
	db *database.DB
}

func NewTimeRecordRepository(db *database.DB) timerecord.TimeRecordRepository {
	return &timeRecordRepositoryImpl{db: db}
}

const timeRecordColumns = `id, company_id, employee_id, date, clock_in, clock_out, total_hours, created_at, updated_at`

func scanTimeRecord(row pgx.Row) (timerecord.TimeRecord, error) {
	var rec timerecord.TimeRecord
	err := row.Scan(
		&rec.ID,
		&rec.CompanyID,
		&rec.EmployeeID,
		&rec.Date,
		&rec.ClockIn,
		&rec.ClockOut,
		&rec.TotalHours,
		&rec.CreatedAt,
		&rec.UpdatedAt,
	)
	return rec, err
}

// Create implements timerecord.TimeRecordRepository.
func (r *timeRecordRepositoryImpl) Create(ctx context.Context, rec timerecord.TimeRecord) (timerecord.TimeRecord, error) {
	q := GetQuerier(ctx, r.db)

	if rec.ID == "" {
		rec.ID = uuid.New().String()
	}

	query := `
		INSERT INTO time_records (id, company_id, employee_id, date, clock_in, clock_out, total_hours)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING ` + timeRecordColumns

	created, err := scanTimeRecord(q.QueryRow(ctx, query,
		rec.ID,
		rec.CompanyID,
		rec.EmployeeID,
		rec.Date,
		rec.ClockIn,
		rec.ClockOut,
		rec.TotalHours,
	))
	if err != nil {
		return timerecord.TimeRecord{}, fmt.Errorf("failed to create time record: %w", err)
	}
	return created, nil
}

// GetByID implements timerecord.TimeRecordRepository.
func (r *timeRecordRepositoryImpl) GetByID(ctx context.Context, id string, companyID string) (timerecord.TimeRecord, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + timeRecordColumns + `
		FROM time_records
		WHERE id = $1 AND company_id = $2
	`

	found, err := scanTimeRecord(q.QueryRow(ctx, query, id, companyID))
	if err != nil {
		if err == pgx.ErrNoRows {
			return timerecord.TimeRecord{}, timerecord.ErrRecordNotFound
		}
		return timerecord.TimeRecord{}, fmt.Errorf("failed to get time record with id %s: %w", id, err)
	}
	return found, nil
}

// GetByEmployeeAndDate implements timerecord.TimeRecordRepository.
func (r *timeRecordRepositoryImpl) GetByEmployeeAndDate(ctx context.Context, employeeID string, date time.Time, companyID string) (*timerecord.TimeRecord, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + timeRecordColumns + `
		FROM time_records
		WHERE employee_id = $1 AND date = $2 AND company_id = $3
	`

	found, err := scanTimeRecord(q.QueryRow(ctx, query, employeeID, date, companyID))
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get time record for employee %s: %w", employeeID, err)
	}
	return &found, nil
}

// CloseRecord implements timerecord.TimeRecordRepository. The clock_out IS
// NULL guard makes concurrent clock-outs race-free: only one update reports
// an affected row.
func (r *timeRecordRepositoryImpl) CloseRecord(ctx context.Context, id string, companyID string, clockOut time.Time, totalHours float64) (int64, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE time_records
		SET clock_out = $1, total_hours = $2, updated_at = $3
		WHERE id = $4 AND company_id = $5 AND clock_out IS NULL
	`

	tag, err := q.Exec(ctx, query, clockOut, totalHours, time.Now(), id, companyID)
	if err != nil {
		return 0, fmt.Errorf("failed to close time record %s: %w", id, err)
	}
	return tag.RowsAffected(), nil
}

// List implements timerecord.TimeRecordRepository.
func (r *timeRecordRepositoryImpl) List(ctx context.Context, filter timerecord.TimeRecordFilter, companyID string) ([]timerecord.TimeRecord, int64, error) {
	q := GetQuerier(ctx, r.db)

	conditions := []string{"tr.company_id = $1"}
	args := []interface{}{companyID}
	argIdx := 2

	if filter.EmployeeID != nil && *filter.EmployeeID != "" {
		conditions = append(conditions, fmt.Sprintf("tr.employee_id = $%d", argIdx))
		args = append(args, *filter.EmployeeID)
		argIdx++
	}
	if filter.StartDate != nil && *filter.StartDate != "" {
		conditions = append(conditions, fmt.Sprintf("tr.date >= $%d", argIdx))
		args = append(args, *filter.StartDate)
		argIdx++
	}
	if filter.EndDate != nil && *filter.EndDate != "" {
		conditions = append(conditions, fmt.Sprintf("tr.date <= $%d", argIdx))
		args = append(args, *filter.EndDate)
		argIdx++
	}

	where := "WHERE " + strings.Join(conditions, " AND ")

	var total int64
	countQuery := "SELECT COUNT(*) FROM time_records tr " + where
	if err := q.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count time records: %w", err)
	}

	query := fmt.Sprintf(`
		SELECT tr.id, tr.company_id, tr.employee_id, tr.date, tr.clock_in, tr.clock_out, tr.total_hours, tr.created_at, tr.updated_at,
		       e.name, e.department
		FROM time_records tr
		JOIN employees e ON e.id = tr.employee_id
		%s
		ORDER BY tr.date DESC, tr.clock_in DESC NULLS LAST
		LIMIT $%d OFFSET $%d
	`, where, argIdx, argIdx+1)
	args = append(args, filter.Limit, (filter.Page-1)*filter.Limit)

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list time records: %w", err)
	}
	defer rows.Close()

	records := make([]timerecord.TimeRecord, 0)
	for rows.Next() {
		var rec timerecord.TimeRecord
		err := rows.Scan(
			&rec.ID,
			&rec.CompanyID,
			&rec.EmployeeID,
			&rec.Date,
			&rec.ClockIn,
			&rec.ClockOut,
			&rec.TotalHours,
			&rec.CreatedAt,
			&rec.UpdatedAt,
			&rec.EmployeeName,
			&rec.EmployeeDepartment,
		)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to scan time record: %w", err)
		}
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("failed to iterate time records: %w", err)
	}

	return records, total, nil
}

// ListForRange implements timerecord.TimeRecordRepository. The result is
// already company-scoped; the aggregator never re-filters.
func (r *timeRecordRepositoryImpl) ListForRange(ctx context.Context, companyID string, start, end time.Time, employeeID *string) ([]timerecord.TimeRecord, error) {
	q := GetQuerier(ctx, r.db)

	conditions := []string{"tr.company_id = $1", "tr.date >= $2", "tr.date <= $3"}
	args := []interface{}{companyID, start, end}
	if employeeID != nil && *employeeID != "" {
		conditions = append(conditions, "tr.employee_id = $4")
		args = append(args, *employeeID)
	}

	query := fmt.Sprintf(`
		SELECT tr.id, tr.company_id, tr.employee_id, tr.date, tr.clock_in, tr.clock_out, tr.total_hours, tr.created_at, tr.updated_at,
		       e.name, e.department
		FROM time_records tr
		JOIN employees e ON e.id = tr.employee_id
		WHERE %s
		ORDER BY tr.date ASC
	`, strings.Join(conditions, " AND "))

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list time records for range: %w", err)
	}
	defer rows.Close()

	records := make([]timerecord.TimeRecord, 0)
	for rows.Next() {
		var rec timerecord.TimeRecord
		err := rows.Scan(
			&rec.ID,
			&rec.CompanyID,
			&rec.EmployeeID,
			&rec.Date,
			&rec.ClockIn,
			&rec.ClockOut,
			&rec.TotalHours,
			&rec.CreatedAt,
			&rec.UpdatedAt,
			&rec.EmployeeName,
			&rec.EmployeeDepartment,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan time record: %w", err)
		}
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate time records: %w", err)
	}

	return records, nil
}
