package postgresql

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/pontohq/ponto-backend-go/internal/domain/absence"
	"github.com/pontohq/ponto-backend-go/internal/pkg/database"
)

type absenceRepositoryImpl struct {
	db *database.DB
}

func NewAbsenceRepository(db *database.DB) absence.AbsenceRepository {
	return &absenceRepositoryImpl{db: db}
}

const absenceColumns = `id, company_id, employee_id, date, reason, type, status, attachment_url, attachment_name, review_notes, reviewed_by, reviewed_at, created_at, updated_at`

func scanAbsence(row pgx.Row) (absence.Absence, error) {
	var a absence.Absence
	err := row.Scan(
		&a.ID,
		&a.CompanyID,
		&a.EmployeeID,
		&a.Date,
		&a.Reason,
		&a.Type,
		&a.Status,
		&a.AttachmentURL,
		&a.AttachmentName,
		&a.ReviewNotes,
		&a.ReviewedBy,
		&a.ReviewedAt,
		&a.CreatedAt,
		&a.UpdatedAt,
	)
	return a, err
}

// Create implements absence.AbsenceRepository.
func (r *absenceRepositoryImpl) Create(ctx context.Context, a absence.Absence) (absence.Absence, error) {
	q := GetQuerier(ctx, r.db)

	if a.ID == "" {
		a.ID = uuid.New().String()
	}

	query := `
		INSERT INTO absences (id, company_id, employee_id, date, reason, type, status, attachment_url, attachment_name)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING ` + absenceColumns

	created, err := scanAbsence(q.QueryRow(ctx, query,
		a.ID,
		a.CompanyID,
		a.EmployeeID,
		a.Date,
		a.Reason,
		a.Type,
		absence.StatusPending,
		a.AttachmentURL,
		a.AttachmentName,
	))
	if err != nil {
		return absence.Absence{}, fmt.Errorf("failed to create absence: %w", err)
	}
	return created, nil
}

// GetByID implements absence.AbsenceRepository.
func (r *absenceRepositoryImpl) GetByID(ctx context.Context, id string, companyID string) (absence.Absence, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT a.id, a.company_id, a.employee_id, a.date, a.reason, a.type, a.status, a.attachment_url, a.attachment_name, a.review_notes, a.reviewed_by, a.reviewed_at, a.created_at, a.updated_at,
		       e.name
		FROM absences a
		JOIN employees e ON e.id = a.employee_id
		WHERE a.id = $1 AND a.company_id = $2
	`

	var a absence.Absence
	err := q.QueryRow(ctx, query, id, companyID).Scan(
		&a.ID,
		&a.CompanyID,
		&a.EmployeeID,
		&a.Date,
		&a.Reason,
		&a.Type,
		&a.Status,
		&a.AttachmentURL,
		&a.AttachmentName,
		&a.ReviewNotes,
		&a.ReviewedBy,
		&a.ReviewedAt,
		&a.CreatedAt,
		&a.UpdatedAt,
		&a.EmployeeName,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			return absence.Absence{}, absence.ErrAbsenceNotFound
		}
		return absence.Absence{}, fmt.Errorf("failed to get absence with id %s: %w", id, err)
	}
	return a, nil
}

// List implements absence.AbsenceRepository.
func (r *absenceRepositoryImpl) List(ctx context.Context, filter absence.AbsenceFilter, companyID string) ([]absence.Absence, int64, error) {
	q := GetQuerier(ctx, r.db)

	conditions := []string{"a.company_id = $1"}
	args := []interface{}{companyID}
	argIdx := 2

	if filter.EmployeeID != nil && *filter.EmployeeID != "" {
		conditions = append(conditions, fmt.Sprintf("a.employee_id = $%d", argIdx))
		args = append(args, *filter.EmployeeID)
		argIdx++
	}
	if filter.Status != nil && *filter.Status != "" {
		conditions = append(conditions, fmt.Sprintf("a.status = $%d", argIdx))
		args = append(args, *filter.Status)
		argIdx++
	}
	if filter.StartDate != nil && *filter.StartDate != "" {
		conditions = append(conditions, fmt.Sprintf("a.date >= $%d", argIdx))
		args = append(args, *filter.StartDate)
		argIdx++
	}
	if filter.EndDate != nil && *filter.EndDate != "" {
		conditions = append(conditions, fmt.Sprintf("a.date <= $%d", argIdx))
		args = append(args, *filter.EndDate)
		argIdx++
	}

	where := "WHERE " + strings.Join(conditions, " AND ")

	var total int64
	countQuery := "SELECT COUNT(*) FROM absences a " + where
	if err := q.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count absences: %w", err)
	}

	query := fmt.Sprintf(`
		SELECT a.id, a.company_id, a.employee_id, a.date, a.reason, a.type, a.status, a.attachment_url, a.attachment_name, a.review_notes, a.reviewed_by, a.reviewed_at, a.created_at, a.updated_at,
		       e.name
		FROM absences a
		JOIN employees e ON e.id = a.employee_id
		%s
		ORDER BY a.date DESC, a.created_at DESC
		LIMIT $%d OFFSET $%d
	`, where, argIdx, argIdx+1)
	args = append(args, filter.Limit, (filter.Page-1)*filter.Limit)

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list absences: %w", err)
	}
	defer rows.Close()

	absences := make([]absence.Absence, 0)
	for rows.Next() {
		var a absence.Absence
		err := rows.Scan(
			&a.ID,
			&a.CompanyID,
			&a.EmployeeID,
			&a.Date,
			&a.Reason,
			&a.Type,
			&a.Status,
			&a.AttachmentURL,
			&a.AttachmentName,
			&a.ReviewNotes,
			&a.ReviewedBy,
			&a.ReviewedAt,
			&a.CreatedAt,
			&a.UpdatedAt,
			&a.EmployeeName,
		)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to scan absence: %w", err)
		}
		absences = append(absences, a)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("failed to iterate absences: %w", err)
	}

	return absences, total, nil
}

// Review implements absence.AbsenceRepository. The status = 'pending' guard
// makes the transition race-free: of two concurrent reviews exactly one sees
// an affected row.
func (r *absenceRepositoryImpl) Review(ctx context.Context, id, companyID string, to absence.Status, reviewerID string, notes *string, reviewedAt time.Time) (int64, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE absences
		SET status = $1, reviewed_by = $2, review_notes = $3, reviewed_at = $4, updated_at = $4
		WHERE id = $5 AND company_id = $6 AND status = 'pending'
	`

	tag, err := q.Exec(ctx, query, to, reviewerID, notes, reviewedAt, id, companyID)
	if err != nil {
		return 0, fmt.Errorf("failed to review absence %s: %w", id, err)
	}
	return tag.RowsAffected(), nil
}

// CountByStatus implements absence.AbsenceRepository.
func (r *absenceRepositoryImpl) CountByStatus(ctx context.Context, companyID string) (absence.StatusCounts, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT status, COUNT(*)
		FROM absences
		WHERE company_id = $1
		GROUP BY status
	`

	rows, err := q.Query(ctx, query, companyID)
	if err != nil {
		return absence.StatusCounts{}, fmt.Errorf("failed to count absences by status: %w", err)
	}
	defer rows.Close()

	var counts absence.StatusCounts
	for rows.Next() {
		var status absence.Status
		var count int
		if err := rows.Scan(&status, &count); err != nil {
			return absence.StatusCounts{}, fmt.Errorf("failed to scan status count: %w", err)
		}
		switch status {
		case absence.StatusPending:
			counts.Pending = count
		case absence.StatusApproved:
			counts.Approved = count
		case absence.StatusRejected:
			counts.Rejected = count
		}
	}
	if err := rows.Err(); err != nil {
		return absence.StatusCounts{}, fmt.Errorf("failed to iterate status counts: %w", err)
	}

	return counts, nil
}
