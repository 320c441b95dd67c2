package application

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bankhub/banking-api/internal/domain/entity"
	"github.com/bankhub/banking-api/internal/infrastructure/memory"
)

func newUserService(t *testing.T) (*UserService, *memory.Store) {
	t.Helper()
	store := memory.NewStore()
	logger := testLogger()
	accounts := NewAccountService(store.Repositories(), store.UnitOfWork(), logger)
	svc := NewUserService(store.Repositories(), store.UnitOfWork(), accounts, logger)
	return svc, store
}

func TestCreateUserProvisionsDefaultAccounts(t *testing.T) {
	svc, _ := newUserService(t)
	ctx := context.Background()

	u, accounts, err := svc.CreateUser(ctx, "alice", "password123", entity.RoleUser)
	require.NoError(t, err)
	assert.NotZero(t, u.ID)
	assert.Equal(t, "alice", u.Username)
	assert.NotEqual(t, "password123", u.Password)

	require.Len(t, accounts, len(entity.Currencies()))
	seen := make(map[entity.Currency]bool)
	for _, a := range accounts {
		assert.Equal(t, u.ID, a.UserID)
		assert.Equal(t, int64(1), a.Balance)
		seen[a.Currency] = true
	}
	for _, c := range entity.Currencies() {
		assert.True(t, seen[c], "missing default account for %s", c)
	}
}

func TestCreateUserDuplicateUsername(t *testing.T) {
	svc, store := newUserService(t)
	ctx := context.Background()

	_, _, err := svc.CreateUser(ctx, "carol", "password123", entity.RoleUser)
	require.NoError(t, err)

	_, _, err = svc.CreateUser(ctx, "carol", "otherpassword", entity.RoleUser)
	assert.ErrorIs(t, err, ErrUserAlreadyExists)

	users, err := store.Repositories().Users.List(ctx)
	require.NoError(t, err)
	assert.Len(t, users, 1)

	// the failed registration must not leave orphan accounts behind
	u, err := store.Repositories().Users.GetByUsername(ctx, "carol")
	require.NoError(t, err)
	accounts, err := store.Repositories().Accounts.ListByUser(ctx, u.ID)
	require.NoError(t, err)
	assert.Len(t, accounts, len(entity.Currencies()))
}

func TestGetUser(t *testing.T) {
	svc, _ := newUserService(t)
	ctx := context.Background()

	created, _, err := svc.CreateUser(ctx, "alice", "password123", entity.RoleUser)
	require.NoError(t, err)

	u, accounts, err := svc.GetUser(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "alice", u.Username)
	assert.Len(t, accounts, len(entity.Currencies()))

	_, _, err = svc.GetUser(ctx, 999)
	assert.ErrorIs(t, err, ErrUserNotFound)
}

func TestListUsers(t *testing.T) {
	svc, _ := newUserService(t)
	ctx := context.Background()

	_, _, err := svc.CreateUser(ctx, "alice", "password123", entity.RoleUser)
	require.NoError(t, err)
	_, _, err = svc.CreateUser(ctx, "bob", "password123", entity.RoleUser)
	require.NoError(t, err)

	users, err := svc.ListUsers(ctx)
	require.NoError(t, err)
	require.Len(t, users, 2)
	assert.Equal(t, "alice", users[0].Username)
	assert.Equal(t, "bob", users[1].Username)
}

func TestAuthenticate(t *testing.T) {
	svc, _ := newUserService(t)
	ctx := context.Background()

	created, _, err := svc.CreateUser(ctx, "alice", "password123", entity.RoleUser)
	require.NoError(t, err)

	u, err := svc.Authenticate(ctx, "alice", "password123")
	require.NoError(t, err)
	assert.Equal(t, created.ID, u.ID)

	_, err = svc.Authenticate(ctx, "alice", "wrongpassword")
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, err = svc.Authenticate(ctx, "nobody", "password123")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}
