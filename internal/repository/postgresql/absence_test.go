package postgresql

import (
	"context"
	"regexp"
	"testing"
	"time"

	pgxmock "github.com/pashagolub/pgxmock/v3"
	"github.com/pontohq/ponto-backend-go/internal/domain/absence"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newAbsenceRepoWithMock(t *testing.T) (absence.AbsenceRepository, pgxmock.PgxPoolIface, context.Context) {
	t.Helper()

	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	t.Cleanup(mock.Close)

	repo := NewAbsenceRepository(nil)
	ctx := WithQuerier(context.Background(), mock)
	return repo, mock, ctx
}

func TestAbsenceRepository_Review_PendingRow(t *testing.T) {
	repo, mock, ctx := newAbsenceRepoWithMock(t)

	reviewedAt := time.Date(2025, 3, 10, 14, 0, 0, 0, time.UTC)
	notes := "atestado válido"

	mock.ExpectExec(regexp.QuoteMeta(`
		UPDATE absences
		SET status = $1, reviewed_by = $2, review_notes = $3, reviewed_at = $4, updated_at = $4
		WHERE id = $5 AND company_id = $6 AND status = 'pending'
	`)).
		WithArgs(absence.StatusApproved, "reviewer-1", &notes, reviewedAt, "absence-1", "company-1").
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))

	affected, err := repo.Review(ctx, "absence-1", "company-1", absence.StatusApproved, "reviewer-1", &notes, reviewedAt)
	require.NoError(t, err)
	assert.Equal(t, int64(1), affected)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAbsenceRepository_Review_AlreadyTerminal(t *testing.T) {
	repo, mock, ctx := newAbsenceRepoWithMock(t)

	reviewedAt := time.Date(2025, 3, 10, 14, 0, 0, 0, time.UTC)

	// status guard filters the row out: zero rows affected, no error
	mock.ExpectExec(regexp.QuoteMeta(`UPDATE absences`)).
		WithArgs(absence.StatusRejected, "reviewer-2", (*string)(nil), reviewedAt, "absence-1", "company-1").
		WillReturnResult(pgxmock.NewResult("UPDATE", 0))

	affected, err := repo.Review(ctx, "absence-1", "company-1", absence.StatusRejected, "reviewer-2", nil, reviewedAt)
	require.NoError(t, err)
	assert.Equal(t, int64(0), affected)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAbsenceRepository_CountByStatus(t *testing.T) {
	repo, mock, ctx := newAbsenceRepoWithMock(t)

	rows := pgxmock.NewRows([]string{"status", "count"}).
		AddRow(absence.StatusPending, 3).
		AddRow(absence.StatusApproved, 7)

	mock.ExpectQuery(regexp.QuoteMeta(`
		SELECT status, COUNT(*)
		FROM absences
		WHERE company_id = $1
		GROUP BY status
	`)).
		WithArgs("company-1").
		WillReturnRows(rows)

	counts, err := repo.CountByStatus(ctx, "company-1")
	require.NoError(t, err)
	assert.Equal(t, absence.StatusCounts{Pending: 3, Approved: 7, Rejected: 0}, counts)
	assert.NoError(t, mock.ExpectationsWereMet())
}
