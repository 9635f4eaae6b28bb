package users

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/rs/zerolog"
	"github.com/spendlog/server/internal/auth"
)

// TxRunner executes fn against a transactional view of the user store.
// A nil runner degrades to running fn on the service's repository directly.
type TxRunner func(ctx context.Context, fn func(context.Context, Repository) error) error

type Service struct {
	repo   Repository
	tx     TxRunner
	logger zerolog.Logger
}

func NewService(repo Repository, tx TxRunner, logger zerolog.Logger) *Service {
	return &Service{
		repo:   repo,
		tx:     tx,
		logger: logger.With().Str("component", "users").Logger(),
	}
}

// Register creates a user with a bcrypt-hashed password. The uniqueness
// pre-check and the insert share a transaction; the store's unique
// constraint remains the authority under concurrent registration, and the
// repository maps its violation to ErrUsernameTaken.
func (s *Service) Register(ctx context.Context, username, password string) (*User, error) {
	username = strings.TrimSpace(username)
	if username == "" {
		return nil, ErrUsernameRequired
	}

	// Hash before opening the transaction; bcrypt is slow on purpose.
	hash, err := auth.HashPassword(password)
	if err != nil {
		return nil, err
	}

	var user *User
	create := func(ctx context.Context, repo Repository) error {
		if existing, err := repo.GetByUsername(ctx, username); err == nil && existing != nil {
			return ErrUsernameTaken
		} else if err != nil && !errors.Is(err, ErrNotFound) {
			return fmt.Errorf("check username: %w", err)
		}

		created, err := repo.Create(ctx, CreateParams{Username: username, PasswordHash: hash})
		if err != nil {
			if errors.Is(err, ErrUsernameTaken) {
				return ErrUsernameTaken
			}
			return fmt.Errorf("create user: %w", err)
		}
		user = created
		return nil
	}

	if s.tx != nil {
		err = s.tx(ctx, create)
	} else {
		err = create(ctx, s.repo)
	}
	if err != nil {
		return nil, err
	}

	s.logger.Info().Int64("user_id", user.ID).Str("username", user.Username).Msg("user registered")
	return user, nil
}

// Authenticate verifies credentials. A missing user and a wrong password are
// indistinguishable to the caller.
func (s *Service) Authenticate(ctx context.Context, username, password string) (*User, error) {
	user, err := s.repo.GetByUsername(ctx, strings.TrimSpace(username))
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("lookup user: %w", err)
	}

	if !auth.VerifyPassword(user.PasswordHash, password) {
		return nil, ErrInvalidCredentials
	}
	return user, nil
}

func (s *Service) Get(ctx context.Context, id int64) (*User, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *Service) Delete(ctx context.Context, id int64) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.logger.Info().Int64("user_id", id).Msg("user deleted")
	return nil
}
