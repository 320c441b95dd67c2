package application

import (
	"context"
	"errors"

	"github.com/sirupsen/logrus"

	"github.com/bankhub/banking-api/internal/domain/entity"
	"github.com/bankhub/banking-api/internal/domain/repository"
	"github.com/bankhub/banking-api/pkg/helpers"
)

// UserService owns user records: registration with default accounts,
// read-only projections, and credential resolution for the access gate.
type UserService struct {
	Repos    repository.Repositories
	UoW      repository.UnitOfWork
	Accounts *AccountService
	Logger   *logrus.Logger
}

func NewUserService(repos repository.Repositories, uow repository.UnitOfWork, accounts *AccountService, logger *logrus.Logger) *UserService {
	return &UserService{Repos: repos, UoW: uow, Accounts: accounts, Logger: logger}
}

// CreateUser registers a user and its default accounts in one transaction;
// the operation is not complete until the accounts exist. The username must
// be free (case-sensitive exact match), otherwise ErrUserAlreadyExists.
func (s *UserService) CreateUser(ctx context.Context, username, password string, role entity.Role) (*entity.User, []*entity.Account, error) {
	hash, err := helpers.HashPassword(password)
	if err != nil {
		return nil, nil, err
	}

	var (
		user     *entity.User
		accounts []*entity.Account
	)
	err = s.UoW.Do(ctx, func(r repository.Repositories) error {
		if _, err := r.Users.GetByUsername(ctx, username); err == nil {
			return ErrUserAlreadyExists
		} else if !errors.Is(err, repository.ErrNotFound) {
			return err
		}

		user = &entity.User{Username: username, Password: hash, Role: role}
		if err := r.Users.Create(ctx, user); err != nil {
			// concurrent registration can still hit the unique constraint
			if errors.Is(err, repository.ErrConflict) {
				return ErrUserAlreadyExists
			}
			return err
		}
		accounts, err = s.Accounts.CreateDefaultAccounts(ctx, r, user)
		return err
	})
	if err != nil {
		return nil, nil, err
	}
	s.Logger.WithFields(logrus.Fields{"user_id": user.ID, "username": username}).Info("user created")
	return user, accounts, nil
}

// GetUser returns the user together with its accounts.
func (s *UserService) GetUser(ctx context.Context, id int64) (*entity.User, []*entity.Account, error) {
	u, err := s.Repos.Users.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, nil, ErrUserNotFound
		}
		return nil, nil, err
	}
	accounts, err := s.Repos.Accounts.ListByUser(ctx, id)
	if err != nil {
		return nil, nil, err
	}
	return u, accounts, nil
}

// ListUsers returns all users in insertion order.
func (s *UserService) ListUsers(ctx context.Context) ([]*entity.User, error) {
	return s.Repos.Users.List(ctx)
}

// Authenticate resolves username+password credentials to a user identity.
// Unknown username and wrong password are indistinguishable to the caller.
func (s *UserService) Authenticate(ctx context.Context, username, password string) (*entity.User, error) {
	u, err := s.Repos.Users.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}
	if !helpers.CompareHashAndPassword(u.Password, password) {
		return nil, ErrInvalidCredentials
	}
	return u, nil
}
