package memory

import (
	"context"
	"sort"
	"time"

	"github.com/bankhub/banking-api/internal/domain/entity"
	"github.com/bankhub/banking-api/internal/domain/repository"
)

type userRepo struct {
	s    *Store
	inTx bool
}

func (r *userRepo) lock() func() {
	if r.inTx {
		return func() {}
	}
	r.s.mu.Lock()
	return r.s.mu.Unlock
}

func (r *userRepo) Create(ctx context.Context, u *entity.User) error {
	defer r.lock()()
	if _, taken := r.s.usersByName[u.Username]; taken {
		return repository.ErrConflict
	}
	r.s.nextUserID++
	u.ID = r.s.nextUserID
	now := time.Now()
	u.CreatedAt = now
	u.UpdatedAt = now
	cp := *u
	r.s.users[u.ID] = &cp
	r.s.usersByName[u.Username] = u.ID
	return nil
}

func (r *userRepo) GetByID(ctx context.Context, id int64) (*entity.User, error) {
	defer r.lock()()
	u, ok := r.s.users[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	cp := *u
	return &cp, nil
}

func (r *userRepo) GetByUsername(ctx context.Context, username string) (*entity.User, error) {
	defer r.lock()()
	id, ok := r.s.usersByName[username]
	if !ok {
		return nil, repository.ErrNotFound
	}
	cp := *r.s.users[id]
	return &cp, nil
}

func (r *userRepo) List(ctx context.Context) ([]*entity.User, error) {
	defer r.lock()()
	users := make([]*entity.User, 0, len(r.s.users))
	for _, u := range r.s.users {
		cp := *u
		users = append(users, &cp)
	}
	sort.Slice(users, func(i, j int) bool { return users[i].ID < users[j].ID })
	return users, nil
}

var _ repository.UserRepository = (*userRepo)(nil)
