package service

import (
	"context"
	"errors"
	"fmt"

	"wallet-service/internal/core/domain"
	"wallet-service/internal/core/ports"

	"github.com/rs/zerolog"
)

// Bootstrapper seeds the credential store with an initial user.
type Bootstrapper struct {
	userRepo ports.UserRepository
	hashSvc  ports.HashService
	log      zerolog.Logger
}

// NewBootstrapper creates a new Bootstrapper.
func NewBootstrapper(userRepo ports.UserRepository, hashSvc ports.HashService, log zerolog.Logger) *Bootstrapper {
	return &Bootstrapper{userRepo: userRepo, hashSvc: hashSvc, log: log}
}

// EnsureUser creates the user unless the email is already registered.
// created reports whether a new row was inserted.
func (b *Bootstrapper) EnsureUser(ctx context.Context, email, password string) (bool, error) {
	if email == "" || password == "" {
		return false, errors.New("bootstrap user requires both email and password")
	}

	existing, err := b.userRepo.GetByEmail(ctx, email)
	if err != nil {
		return false, fmt.Errorf("check existing user: %w", err)
	}
	if existing != nil {
		b.log.Info().Str("email", email).Msg("bootstrap user already exists")
		return false, nil
	}

	hash, err := b.hashSvc.Hash(password)
	if err != nil {
		return false, fmt.Errorf("hash password: %w", err)
	}

	user := &domain.User{Email: email, HashedPassword: hash}
	if err := b.userRepo.Create(ctx, user); err != nil {
		// Another instance won the race.
		if errors.Is(err, ports.ErrDuplicateEmail) {
			b.log.Info().Str("email", email).Msg("bootstrap user already exists")
			return false, nil
		}
		return false, fmt.Errorf("create user: %w", err)
	}

	b.log.Info().Str("email", email).Int64("user_id", user.ID).Msg("bootstrap user created")
	return true, nil
}
