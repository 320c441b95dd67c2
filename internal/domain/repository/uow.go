package repository

import (
	"context"
	"errors"
)

var (
	// ErrNotFound is returned by repositories when a row does not exist.
	ErrNotFound = errors.New("not found")
	// ErrConflict is returned when a uniqueness constraint is violated.
	ErrConflict = errors.New("conflict")
)

// Repositories bundles the repositories bound to one database session,
// so multi-row work (transfers, user creation with default accounts)
// always runs against the same transaction.
type Repositories struct {
	Users    UserRepository
	Accounts AccountRepository
}

// UnitOfWork executes a function inside a transaction boundary.
// If fn returns an error the transaction is rolled back and the
// error is returned unchanged; no partial effect stays observable.
type UnitOfWork interface {
	Do(ctx context.Context, fn func(r Repositories) error) error
}
