package postgresql

import (
	"context"
	"regexp"
	"testing"
	"time"

	pgxmock "github.com/pashagolub/pgxmock/v3"
	"github.com/pontohq/ponto-backend-go/internal/domain/ticket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTicketRepoWithMock(t *testing.T) (ticket.TicketRepository, pgxmock.PgxPoolIface, context.Context) {
	t.Helper()

	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	t.Cleanup(mock.Close)

	repo := NewTicketRepository(nil)
	ctx := WithQuerier(context.Background(), mock)
	return repo, mock, ctx
}

func TestTicketRepository_MarkResolved_FirstResolve(t *testing.T) {
	repo, mock, ctx := newTicketRepoWithMock(t)

	resolvedAt := time.Date(2025, 4, 2, 16, 30, 0, 0, time.UTC)

	mock.ExpectExec(regexp.QuoteMeta(`
		UPDATE tickets
		SET status = 'resolved', resolved_at = $1, updated_at = $1
		WHERE id = $2 AND company_id = $3 AND status <> 'resolved'
	`)).
		WithArgs(resolvedAt, "ticket-1", "company-1").
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))

	affected, err := repo.MarkResolved(ctx, "ticket-1", "company-1", resolvedAt)
	require.NoError(t, err)
	assert.Equal(t, int64(1), affected)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTicketRepository_MarkResolved_SecondResolveIsNoOp(t *testing.T) {
	repo, mock, ctx := newTicketRepoWithMock(t)

	resolvedAt := time.Date(2025, 4, 3, 9, 0, 0, 0, time.UTC)

	// the guard keeps resolved_at at its first value
	mock.ExpectExec(regexp.QuoteMeta(`UPDATE tickets`)).
		WithArgs(resolvedAt, "ticket-1", "company-1").
		WillReturnResult(pgxmock.NewResult("UPDATE", 0))

	affected, err := repo.MarkResolved(ctx, "ticket-1", "company-1", resolvedAt)
	require.NoError(t, err)
	assert.Equal(t, int64(0), affected)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTicketRepository_MarkInReview_OnlyFromOpen(t *testing.T) {
	repo, mock, ctx := newTicketRepoWithMock(t)

	mock.ExpectExec(regexp.QuoteMeta(`
		UPDATE tickets
		SET status = 'in_review', updated_at = NOW()
		WHERE id = $1 AND company_id = $2 AND status = 'open'
	`)).
		WithArgs("ticket-2", "company-1").
		WillReturnResult(pgxmock.NewResult("UPDATE", 0))

	affected, err := repo.MarkInReview(ctx, "ticket-2", "company-1")
	require.NoError(t, err)
	assert.Equal(t, int64(0), affected)
	assert.NoError(t, mock.ExpectationsWereMet())
}
