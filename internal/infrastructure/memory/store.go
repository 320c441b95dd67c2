// Package memory provides in-memory implementations of the repository
// interfaces. They back the test suites and keep the same observable
// semantics as the postgres implementations: unit-of-work atomicity
// (rollback on error) and serialized balance check-and-write.
package memory

import (
	"context"
	"sync"

	"github.com/bankhub/banking-api/internal/domain/entity"
	"github.com/bankhub/banking-api/internal/domain/repository"
)

type Store struct {
	mu sync.Mutex

	users         map[int64]*entity.User
	usersByName   map[string]int64
	accounts      map[int64]*entity.Account
	nextUserID    int64
	nextAccountID int64
}

func NewStore() *Store {
	return &Store{
		users:       make(map[int64]*entity.User),
		usersByName: make(map[string]int64),
		accounts:    make(map[int64]*entity.Account),
	}
}

// Repositories returns repositories that lock the store per call,
// the counterpart of pool-bound repositories in postgres.
func (s *Store) Repositories() repository.Repositories {
	return repository.Repositories{
		Users:    &userRepo{s: s},
		Accounts: &accountRepo{s: s},
	}
}

// UnitOfWork returns a unit of work that holds the store lock for the
// whole function and restores a snapshot when the function fails.
func (s *Store) UnitOfWork() repository.UnitOfWork {
	return &unitOfWork{s: s}
}

// Reset drops all data, for test isolation.
func (s *Store) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.users = make(map[int64]*entity.User)
	s.usersByName = make(map[string]int64)
	s.accounts = make(map[int64]*entity.Account)
	s.nextUserID = 0
	s.nextAccountID = 0
}

type unitOfWork struct {
	s *Store
}

func (u *unitOfWork) Do(ctx context.Context, fn func(r repository.Repositories) error) error {
	u.s.mu.Lock()
	defer u.s.mu.Unlock()

	snapshot := u.s.snapshot()
	repos := repository.Repositories{
		Users:    &userRepo{s: u.s, inTx: true},
		Accounts: &accountRepo{s: u.s, inTx: true},
	}
	if err := fn(repos); err != nil {
		u.s.restore(snapshot)
		return err
	}
	return nil
}

type state struct {
	users         map[int64]*entity.User
	usersByName   map[string]int64
	accounts      map[int64]*entity.Account
	nextUserID    int64
	nextAccountID int64
}

func (s *Store) snapshot() state {
	st := state{
		users:         make(map[int64]*entity.User, len(s.users)),
		usersByName:   make(map[string]int64, len(s.usersByName)),
		accounts:      make(map[int64]*entity.Account, len(s.accounts)),
		nextUserID:    s.nextUserID,
		nextAccountID: s.nextAccountID,
	}
	for id, u := range s.users {
		cp := *u
		st.users[id] = &cp
	}
	for name, id := range s.usersByName {
		st.usersByName[name] = id
	}
	for id, a := range s.accounts {
		cp := *a
		st.accounts[id] = &cp
	}
	return st
}

func (s *Store) restore(st state) {
	s.users = st.users
	s.usersByName = st.usersByName
	s.accounts = st.accounts
	s.nextUserID = st.nextUserID
	s.nextAccountID = st.nextAccountID
}

var _ repository.UnitOfWork = (*unitOfWork)(nil)
