package entity

import "time"

// Account holds a single-currency balance owned by one user.
// Balance is an integer in the currency's smallest unit and never
// goes below zero. UserID is a foreign key, not an object reference;
// the owner never changes after creation.
type Account struct {
	ID        int64
	UserID    int64
	Currency  Currency
	Balance   int64
	CreatedAt time.Time
	UpdatedAt time.Time
}
