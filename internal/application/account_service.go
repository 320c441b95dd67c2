package application

import (
	"context"
	"errors"

	"github.com/sirupsen/logrus"

	"github.com/bankhub/banking-api/internal/domain/entity"
	"github.com/bankhub/banking-api/internal/domain/repository"
)

// AccountService is the ledger: every balance-changing operation goes
// through it. Mutations run inside a unit of work with row locks on the
// affected accounts, so a balance check and the write that follows it
// are atomic with respect to concurrent mutators.
type AccountService struct {
	Repos  repository.Repositories
	UoW    repository.UnitOfWork
	Logger *logrus.Logger
}

// TransferRequest is the canonical transfer shape. It is validated and
// discarded within one Transfer call, never persisted.
type TransferRequest struct {
	FromAccountID int64
	ToUserID      int64
	ToAccountID   int64
	Amount        int64
}

func NewAccountService(repos repository.Repositories, uow repository.UnitOfWork, logger *logrus.Logger) *AccountService {
	return &AccountService{Repos: repos, UoW: uow, Logger: logger}
}

// GetAccount resolves an account only when it belongs to ownerID.
// A foreign account id yields ErrAccountNotFound, not a forbidden error,
// so account existence is never leaked across users.
func (s *AccountService) GetAccount(ctx context.Context, ownerID, accountID int64) (*entity.Account, error) {
	acc, err := s.Repos.Accounts.GetByUserAndID(ctx, ownerID, accountID)
	if err != nil {
		return nil, asAccountErr(err)
	}
	return acc, nil
}

// Deposit adds amount to the owned account and returns the updated account.
func (s *AccountService) Deposit(ctx context.Context, ownerID, accountID, amount int64) (*entity.Account, error) {
	if amount < 0 {
		return nil, ErrInvalidAmount
	}
	var out *entity.Account
	err := s.UoW.Do(ctx, func(r repository.Repositories) error {
		acc, err := r.Accounts.GetByUserAndIDForUpdate(ctx, ownerID, accountID)
		if err != nil {
			return asAccountErr(err)
		}
		acc.Balance += amount
		if err := r.Accounts.UpdateBalance(ctx, acc.ID, acc.Balance); err != nil {
			return err
		}
		out = acc
		return nil
	})
	if err != nil {
		return nil, err
	}
	s.Logger.WithFields(logrus.Fields{"account_id": accountID, "amount": amount}).Info("deposit applied")
	return out, nil
}

// Withdraw subtracts amount from the owned account, failing with
// InsufficientFundsError when the balance does not cover it.
func (s *AccountService) Withdraw(ctx context.Context, ownerID, accountID, amount int64) (*entity.Account, error) {
	if amount < 0 {
		return nil, ErrInvalidAmount
	}
	var out *entity.Account
	err := s.UoW.Do(ctx, func(r repository.Repositories) error {
		acc, err := r.Accounts.GetByUserAndIDForUpdate(ctx, ownerID, accountID)
		if err != nil {
			return asAccountErr(err)
		}
		if acc.Balance < amount {
			return &InsufficientFundsError{Amount: amount, Currency: acc.Currency}
		}
		acc.Balance -= amount
		if err := r.Accounts.UpdateBalance(ctx, acc.ID, acc.Balance); err != nil {
			return err
		}
		out = acc
		return nil
	})
	if err != nil {
		return nil, err
	}
	s.Logger.WithFields(logrus.Fields{"account_id": accountID, "amount": amount}).Info("withdrawal applied")
	return out, nil
}

// ValidateCurrency checks that two accounts, resolved by id alone,
// are denominated in the same currency. Ownership is deliberately not
// required here; it is a pre-transfer cross-check.
func (s *AccountService) ValidateCurrency(ctx context.Context, accountIDA, accountIDB int64) error {
	a, err := s.Repos.Accounts.GetByID(ctx, accountIDA)
	if err != nil {
		return asAccountErr(err)
	}
	b, err := s.Repos.Accounts.GetByID(ctx, accountIDB)
	if err != nil {
		return asAccountErr(err)
	}
	if a.Currency != b.Currency {
		return ErrWrongCurrency
	}
	return nil
}

// Transfer moves amount from the caller's source account to the
// destination user's account as one atomic unit: currency check first,
// then the ownership-scoped withdrawal, then the deposit. Both rows are
// locked in ascending id order so concurrent transfers cannot deadlock,
// and any failure rolls the whole operation back.
func (s *AccountService) Transfer(ctx context.Context, callerID int64, req TransferRequest) error {
	if req.Amount < 0 {
		return ErrInvalidAmount
	}
	err := s.UoW.Do(ctx, func(r repository.Repositories) error {
		firstID, secondID := req.FromAccountID, req.ToAccountID
		if firstID > secondID {
			firstID, secondID = secondID, firstID
		}
		first, err := r.Accounts.GetByIDForUpdate(ctx, firstID)
		if err != nil {
			return asAccountErr(err)
		}
		second := first
		if secondID != firstID {
			second, err = r.Accounts.GetByIDForUpdate(ctx, secondID)
			if err != nil {
				return asAccountErr(err)
			}
		}
		src, dst := first, second
		if src.ID != req.FromAccountID {
			src, dst = dst, src
		}

		if src.Currency != dst.Currency {
			return ErrWrongCurrency
		}
		if src.UserID != callerID {
			return ErrAccountNotFound
		}
		if dst.UserID != req.ToUserID {
			return ErrAccountNotFound
		}
		if src.Balance < req.Amount {
			return &InsufficientFundsError{Amount: req.Amount, Currency: src.Currency, FromAccountID: src.ID}
		}
		src.Balance -= req.Amount
		dst.Balance += req.Amount
		if err := r.Accounts.UpdateBalance(ctx, src.ID, src.Balance); err != nil {
			return err
		}
		return r.Accounts.UpdateBalance(ctx, dst.ID, dst.Balance)
	})
	if err != nil {
		return err
	}
	s.Logger.WithFields(logrus.Fields{
		"from_account_id": req.FromAccountID,
		"to_account_id":   req.ToAccountID,
		"amount":          req.Amount,
	}).Info("transfer committed")
	return nil
}

// CreateDefaultAccounts creates one account per supported currency with
// balance 1 for a freshly created user. It runs on the caller's
// repositories so it shares the user-creation transaction.
func (s *AccountService) CreateDefaultAccounts(ctx context.Context, r repository.Repositories, user *entity.User) ([]*entity.Account, error) {
	accounts := make([]*entity.Account, 0, len(entity.Currencies()))
	for _, currency := range entity.Currencies() {
		acc := &entity.Account{UserID: user.ID, Currency: currency, Balance: 1}
		if err := r.Accounts.Create(ctx, acc); err != nil {
			return nil, err
		}
		accounts = append(accounts, acc)
	}
	return accounts, nil
}

// CreateAccount is a provisioning entry point used by seeding and tests,
// not reachable from the request-facing routes.
func (s *AccountService) CreateAccount(ctx context.Context, userID, initialBalance int64) (*entity.Account, error) {
	var out *entity.Account
	err := s.UoW.Do(ctx, func(r repository.Repositories) error {
		if _, err := r.Users.GetByID(ctx, userID); err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				return ErrUserNotFound
			}
			return err
		}
		acc := &entity.Account{UserID: userID, Currency: entity.CurrencyUSD, Balance: initialBalance}
		if err := r.Accounts.Create(ctx, acc); err != nil {
			return err
		}
		out = acc
		return nil
	})
	return out, err
}

// ChangeAccountCurrency is a provisioning helper, paired with CreateAccount.
func (s *AccountService) ChangeAccountCurrency(ctx context.Context, accountID int64, currency entity.Currency) error {
	return s.UoW.Do(ctx, func(r repository.Repositories) error {
		if err := r.Accounts.UpdateCurrency(ctx, accountID, currency); err != nil {
			return asAccountErr(err)
		}
		return nil
	})
}

func asAccountErr(err error) error {
	if errors.Is(err, repository.ErrNotFound) {
		return ErrAccountNotFound
	}
	return err
}
