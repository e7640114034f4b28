package postgresql

import (
	"context"
	"regexp"
	"testing"
	"time"

	pgxmock "github.com/pashagolub/pgxmock/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTimeRecordRepository_CloseRecord_OpenRecord(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := NewTimeRecordRepository(nil)
	ctx := WithQuerier(context.Background(), mock)

	clockOut := time.Date(2025, 1, 15, 17, 30, 0, 0, time.UTC)

	mock.ExpectExec(regexp.QuoteMeta(`
		UPDATE time_records
		SET clock_out = $1, total_hours = $2, updated_at = $3
		WHERE id = $4 AND company_id = $5 AND clock_out IS NULL
	`)).
		WithArgs(clockOut, 8.5, pgxmock.AnyArg(), "record-1", "company-1").
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))

	affected, err := repo.CloseRecord(ctx, "record-1", "company-1", clockOut, 8.5)
	require.NoError(t, err)
	assert.Equal(t, int64(1), affected)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTimeRecordRepository_CloseRecord_AlreadyClosed(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := NewTimeRecordRepository(nil)
	ctx := WithQuerier(context.Background(), mock)

	clockOut := time.Date(2025, 1, 15, 18, 0, 0, 0, time.UTC)

	// clock_out IS NULL guard: a closed record is never updated twice
	mock.ExpectExec(regexp.QuoteMeta(`UPDATE time_records`)).
		WithArgs(clockOut, 9.0, pgxmock.AnyArg(), "record-1", "company-1").
		WillReturnResult(pgxmock.NewResult("UPDATE", 0))

	affected, err := repo.CloseRecord(ctx, "record-1", "company-1", clockOut, 9.0)
	require.NoError(t, err)
	assert.Equal(t, int64(0), affected)
	assert.NoError(t, mock.ExpectationsWereMet())
}
