package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"

	"github.com/bankhub/banking-api/internal/domain/entity"
	"github.com/bankhub/banking-api/internal/domain/repository"
)

const accountColumns = `id, user_id, currency, balance, created_at, updated_at`

type AccountRepository struct {
	db DBTX
}

func NewAccountRepository(db DBTX) *AccountRepository {
	return &AccountRepository{db: db}
}

func (r *AccountRepository) Create(ctx context.Context, a *entity.Account) error {
	row := r.db.QueryRow(ctx, `
		INSERT INTO accounts (user_id, currency, balance)
		VALUES ($1, $2, $3)
		RETURNING id, created_at, updated_at
	`, a.UserID, a.Currency, a.Balance)
	return row.Scan(&a.ID, &a.CreatedAt, &a.UpdatedAt)
}

func (r *AccountRepository) GetByID(ctx context.Context, id int64) (*entity.Account, error) {
	return r.scanOne(r.db.QueryRow(ctx, `
		SELECT `+accountColumns+`
		FROM accounts
		WHERE id = $1
	`, id))
}

func (r *AccountRepository) GetByUserAndID(ctx context.Context, userID, id int64) (*entity.Account, error) {
	return r.scanOne(r.db.QueryRow(ctx, `
		SELECT `+accountColumns+`
		FROM accounts
		WHERE user_id = $1 AND id = $2
	`, userID, id))
}

// GetByIDForUpdate locks the account row until the surrounding
// transaction commits or rolls back.
func (r *AccountRepository) GetByIDForUpdate(ctx context.Context, id int64) (*entity.Account, error) {
	return r.scanOne(r.db.QueryRow(ctx, `
		SELECT `+accountColumns+`
		FROM accounts
		WHERE id = $1
		FOR UPDATE
	`, id))
}

func (r *AccountRepository) GetByUserAndIDForUpdate(ctx context.Context, userID, id int64) (*entity.Account, error) {
	return r.scanOne(r.db.QueryRow(ctx, `
		SELECT `+accountColumns+`
		FROM accounts
		WHERE user_id = $1 AND id = $2
		FOR UPDATE
	`, userID, id))
}

func (r *AccountRepository) ListByUser(ctx context.Context, userID int64) ([]*entity.Account, error) {
	rows, err := r.db.Query(ctx, `
		SELECT `+accountColumns+`
		FROM accounts
		WHERE user_id = $1
		ORDER BY id
	`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var accounts []*entity.Account
	for rows.Next() {
		a := &entity.Account{}
		if err := rows.Scan(&a.ID, &a.UserID, &a.Currency, &a.Balance, &a.CreatedAt, &a.UpdatedAt); err != nil {
			return nil, err
		}
		accounts = append(accounts, a)
	}
	return accounts, rows.Err()
}

func (r *AccountRepository) UpdateBalance(ctx context.Context, id int64, balance int64) error {
	res, err := r.db.Exec(ctx, `
		UPDATE accounts
		SET balance = $1, updated_at = now()
		WHERE id = $2
	`, balance, id)
	if err != nil {
		return err
	}
	if res.RowsAffected() == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func (r *AccountRepository) UpdateCurrency(ctx context.Context, id int64, currency entity.Currency) error {
	res, err := r.db.Exec(ctx, `
		UPDATE accounts
		SET currency = $1, updated_at = now()
		WHERE id = $2
	`, currency, id)
	if err != nil {
		return err
	}
	if res.RowsAffected() == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func (r *AccountRepository) scanOne(row pgx.Row) (*entity.Account, error) {
	a := &entity.Account{}
	if err := row.Scan(&a.ID, &a.UserID, &a.Currency, &a.Balance, &a.CreatedAt, &a.UpdatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return a, nil
}

var _ repository.AccountRepository = (*AccountRepository)(nil)
