package postgres

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/heartmarshall/lingua-assistant-backend/internal/domain"
)

// TxManager manages database transactions using the context pattern.
// Nested RunInTx calls are not supported: calling RunInTx inside a RunInTx
// callback will create a second independent transaction, which is a bug.
type TxManager struct {
	pool       *pgxpool.Pool
	maxRetries int
	log        *slog.Logger
}

// NewTxManager creates a new TxManager. A transaction that fails on a
// serialization conflict or deadlock is re-run up to maxRetries times.
func NewTxManager(pool *pgxpool.Pool, maxRetries int, log *slog.Logger) *TxManager {
	if log == nil {
		log = slog.Default()
	}
	return &TxManager{
		pool:       pool,
		maxRetries: max(0, maxRetries),
		log:        log.With("component", "tx_manager"),
	}
}

// RunInTx executes fn within a database transaction.
// Isolation level: Read Committed (PostgreSQL default).
// On success: commits.
// On error from fn: rolls back and returns the error.
// On panic from fn: rolls back and re-panics.
// fn may run more than once and must not keep side effects outside the tx.
func (m *TxManager) RunInTx(ctx context.Context, fn func(ctx context.Context) error) error {
	var err error
	for attempt := 0; ; attempt++ {
		err = m.runOnce(ctx, fn)
		if err == nil || !isRetryable(err) {
			return err
		}
		if attempt >= m.maxRetries || ctx.Err() != nil {
			break
		}
		m.log.WarnContext(ctx, "retrying transaction",
			slog.Int("attempt", attempt+1),
			slog.String("error", err.Error()),
		)
	}
	return fmt.Errorf("transaction retries exhausted: %w: %w", domain.ErrUnavailable, err)
}

func (m *TxManager) runOnce(ctx context.Context, fn func(ctx context.Context) error) (err error) {
	tx, err := m.pool.Begin(ctx)
	if err != nil {
		if ctx.Err() != nil {
			return fmt.Errorf("begin transaction: %w", err)
		}
		return fmt.Errorf("begin transaction: %w: %w", domain.ErrUnavailable, err)
	}

	defer func() {
		if r := recover(); r != nil {
			_ = tx.Rollback(ctx)
			panic(r)
		}
	}()

	txCtx := withTx(ctx, tx)

	if err := fn(txCtx); err != nil {
		if rbErr := tx.Rollback(ctx); rbErr != nil && !errors.Is(rbErr, context.Canceled) {
			return fmt.Errorf("rollback failed: %w (original error: %w)", rbErr, err)
		}
		return err
	}

	if err := tx.Commit(ctx); err != nil {
		if isRetryable(err) {
			return fmt.Errorf("commit transaction: %w", err)
		}
		return fmt.Errorf("commit transaction: %w: %w", domain.ErrUnavailable, err)
	}

	return nil
}
