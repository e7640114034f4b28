package postgresql

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/pontohq/ponto-backend-go/internal/pkg/database"
)

type querierKey struct{}

// WithQuerier returns a context that routes repository calls through q instead
// of the pool. WithTransaction uses it to carry the open transaction; tests
// use it to inject a mock.
func WithQuerier(ctx context.Context, q database.Querier) context.Context {
	return context.WithValue(ctx, querierKey{}, q)
}

// WithTransaction executes fn inside a database transaction
func WithTransaction(ctx context.Context, db *database.DB, fn func(ctx context.Context) error) error {
	tx, err := db.BeginTx(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() {
		if p := recover(); p != nil {
			if rbErr := tx.Rollback(ctx); rbErr != nil {
				fmt.Printf("rollback error during panic recovery: %v\n", rbErr)
			}
			panic(p)
		}
	}()

	if err := fn(WithQuerier(ctx, tx)); err != nil {
		if rbErr := tx.Rollback(ctx); rbErr != nil {
			return fmt.Errorf("rollback error: %v (original error: %w)", rbErr, err)
		}
		return err
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}

	return nil
}

// GetQuerier returns either the context-carried querier (transaction or test
// mock) or the pool. Used in repositories to support both transactional and
// non-transactional operations.
func GetQuerier(ctx context.Context, db *database.DB) database.Querier {
	if q, ok := ctx.Value(querierKey{}).(database.Querier); ok {
		return q
	}
	return db.Pool
}

var _ database.Querier = (pgx.Tx)(nil)
