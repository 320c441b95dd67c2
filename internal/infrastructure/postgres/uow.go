package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/bankhub/banking-api/internal/domain/repository"
)

// UnitOfWork runs a function inside a single pgx transaction, handing it
// repositories bound to that transaction. Read committed plus the FOR UPDATE
// row locks taken by the repositories is enough for the ledger's
// check-and-write invariants.
type UnitOfWork struct {
	pool *pgxpool.Pool
}

func NewUnitOfWork(pool *pgxpool.Pool) *UnitOfWork {
	return &UnitOfWork{pool: pool}
}

func (u *UnitOfWork) Do(ctx context.Context, fn func(r repository.Repositories) error) error {
	tx, err := u.pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	repos := repository.Repositories{
		Users:    NewUserRepository(tx),
		Accounts: NewAccountRepository(tx),
	}
	if err := fn(repos); err != nil {
		return err
	}
	return tx.Commit(ctx)
}

var _ repository.UnitOfWork = (*UnitOfWork)(nil)
