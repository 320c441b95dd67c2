package memory

import (
	"context"
	"sort"
	"time"

	"github.com/bankhub/banking-api/internal/domain/entity"
	"github.com/bankhub/banking-api/internal/domain/repository"
)

type accountRepo struct {
	s    *Store
	inTx bool
}

func (r *accountRepo) lock() func() {
	if r.inTx {
		return func() {}
	}
	r.s.mu.Lock()
	return r.s.mu.Unlock
}

func (r *accountRepo) Create(ctx context.Context, a *entity.Account) error {
	defer r.lock()()
	r.s.nextAccountID++
	a.ID = r.s.nextAccountID
	now := time.Now()
	a.CreatedAt = now
	a.UpdatedAt = now
	cp := *a
	r.s.accounts[a.ID] = &cp
	return nil
}

func (r *accountRepo) GetByID(ctx context.Context, id int64) (*entity.Account, error) {
	defer r.lock()()
	a, ok := r.s.accounts[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	cp := *a
	return &cp, nil
}

func (r *accountRepo) GetByUserAndID(ctx context.Context, userID, id int64) (*entity.Account, error) {
	defer r.lock()()
	a, ok := r.s.accounts[id]
	if !ok || a.UserID != userID {
		return nil, repository.ErrNotFound
	}
	cp := *a
	return &cp, nil
}

// The store mutex already serializes mutators, so the ForUpdate
// variants are plain lookups here.
func (r *accountRepo) GetByIDForUpdate(ctx context.Context, id int64) (*entity.Account, error) {
	return r.GetByID(ctx, id)
}

func (r *accountRepo) GetByUserAndIDForUpdate(ctx context.Context, userID, id int64) (*entity.Account, error) {
	return r.GetByUserAndID(ctx, userID, id)
}

func (r *accountRepo) ListByUser(ctx context.Context, userID int64) ([]*entity.Account, error) {
	defer r.lock()()
	var accounts []*entity.Account
	for _, a := range r.s.accounts {
		if a.UserID == userID {
			cp := *a
			accounts = append(accounts, &cp)
		}
	}
	sort.Slice(accounts, func(i, j int) bool { return accounts[i].ID < accounts[j].ID })
	return accounts, nil
}

func (r *accountRepo) UpdateBalance(ctx context.Context, id int64, balance int64) error {
	defer r.lock()()
	a, ok := r.s.accounts[id]
	if !ok {
		return repository.ErrNotFound
	}
	a.Balance = balance
	a.UpdatedAt = time.Now()
	return nil
}

func (r *accountRepo) UpdateCurrency(ctx context.Context, id int64, currency entity.Currency) error {
	defer r.lock()()
	a, ok := r.s.accounts[id]
	if !ok {
		return repository.ErrNotFound
	}
	a.Currency = currency
	a.UpdatedAt = time.Now()
	return nil
}

var _ repository.AccountRepository = (*accountRepo)(nil)
