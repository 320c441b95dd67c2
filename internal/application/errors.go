package application

import (
	"errors"
	"fmt"

	"github.com/bankhub/banking-api/internal/domain/entity"
)

var (
	ErrAccountNotFound    = errors.New("account not found")
	ErrUserNotFound       = errors.New("user not found")
	ErrUserAlreadyExists  = errors.New("user already exists")
	ErrInvalidAmount      = errors.New("amount should be more than 0")
	ErrWrongCurrency      = errors.New("account currencies should be same")
	ErrInvalidCredentials = errors.New("invalid credentials")
)

// InsufficientFundsError names the requested amount and currency, and the
// source account when raised by a transfer.
type InsufficientFundsError struct {
	Amount        int64
	Currency      entity.Currency
	FromAccountID int64
}

func (e *InsufficientFundsError) Error() string {
	if e.FromAccountID != 0 {
		return fmt.Sprintf("cannot transfer %d %s from account %d", e.Amount, e.Currency, e.FromAccountID)
	}
	return fmt.Sprintf("cannot withdraw %d %s", e.Amount, e.Currency)
}
