package repository

import (
	"context"

	"github.com/bankhub/banking-api/internal/domain/entity"
)

// AccountRepository defines the interface for account-related database operations.
//
// The ForUpdate variants acquire a row-level lock and are only meaningful
// inside a UnitOfWork; every balance check-and-write must go through them so
// concurrent mutators cannot both observe a balance that permits overdraft.
type AccountRepository interface {
	Create(ctx context.Context, a *entity.Account) error
	GetByID(ctx context.Context, id int64) (*entity.Account, error)
	GetByUserAndID(ctx context.Context, userID, id int64) (*entity.Account, error)
	GetByIDForUpdate(ctx context.Context, id int64) (*entity.Account, error)
	GetByUserAndIDForUpdate(ctx context.Context, userID, id int64) (*entity.Account, error)
	ListByUser(ctx context.Context, userID int64) ([]*entity.Account, error)
	UpdateBalance(ctx context.Context, id int64, balance int64) error
	UpdateCurrency(ctx context.Context, id int64, currency entity.Currency) error
}
