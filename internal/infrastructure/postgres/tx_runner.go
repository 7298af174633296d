package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/nexahost/portal-api/internal/application/requests"
	"github.com/nexahost/portal-api/internal/domain/repository"
)

var _ requests.TxRunner = (*TxRunner)(nil)

// TxRunner executes callbacks inside a PostgreSQL transaction.
type TxRunner struct {
	pool *pgxpool.Pool
}

// NewTxRunner builds the runner over the pool.
func NewTxRunner(pool *pgxpool.Pool) *TxRunner {
	return &TxRunner{pool: pool}
}

// RunApproval begins a transaction, runs fn with tx-bound repos, and commits
// or rolls back. The review workflow locks the request row inside fn, so the
// PENDING check and every write are atomic with respect to concurrent
// reviews of the same request.
func (r *TxRunner) RunApproval(ctx context.Context, fn func(
	requestRepo repository.ServiceRequestRepository,
	userRepo repository.UserRepository,
	purchaseRepo repository.PurchaseRepository,
) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	requestRepo := NewServiceRequestRepository(tx)
	userRepo := NewUserRepository(tx)
	purchaseRepo := NewPurchaseRepository(tx)

	if err := fn(requestRepo, userRepo, purchaseRepo); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}
