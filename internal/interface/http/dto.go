package handlers

import (
	"github.com/bankhub/banking-api/internal/domain/entity"
)

// AccountView is the public projection of an account.
type AccountView struct {
	ID       int64  `json:"id"`
	Amount   int64  `json:"amount"`
	Currency string `json:"currency"`
}

// UserView is the public projection of a user, accounts included.
// Password material never leaves the service layer.
type UserView struct {
	ID       int64         `json:"id"`
	Username string        `json:"username"`
	Accounts []AccountView `json:"accounts"`
}

// UserSummaryView is the listing projection: id and username only.
type UserSummaryView struct {
	ID       int64  `json:"id"`
	Username string `json:"username"`
}

func toAccountView(a *entity.Account) AccountView {
	return AccountView{ID: a.ID, Amount: a.Balance, Currency: string(a.Currency)}
}

func toUserView(u *entity.User, accounts []*entity.Account) UserView {
	views := make([]AccountView, 0, len(accounts))
	for _, a := range accounts {
		views = append(views, toAccountView(a))
	}
	return UserView{ID: u.ID, Username: u.Username, Accounts: views}
}
