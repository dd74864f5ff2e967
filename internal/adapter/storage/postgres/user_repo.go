package postgres

import (
	"context"
	"errors"
	"fmt"

	"wallet-service/internal/core/domain"
	"wallet-service/internal/core/ports"

	"github.com/jackc/pgx/v5"
)

// UserRepo implements ports.UserRepository.
type UserRepo struct {
	pool Pool
}

// NewUserRepo creates a new UserRepo.
func NewUserRepo(pool Pool) *UserRepo {
	return &UserRepo{pool: pool}
}

// Create inserts a new user and sets its generated ID.
func (r *UserRepo) Create(ctx context.Context, u *domain.User) error {
	query := `INSERT INTO users (email, hashed_password) VALUES ($1, $2) RETURNING id`

	if err := r.pool.QueryRow(ctx, query, u.Email, u.HashedPassword).Scan(&u.ID); err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("insert user %s: %w", u.Email, ports.ErrDuplicateEmail)
		}
		return fmt.Errorf("insert user: %w", err)
	}
	return nil
}

// GetByEmail fetches a user by email.
func (r *UserRepo) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	query := `SELECT id, email, hashed_password FROM users WHERE email = $1`

	u := &domain.User{}
	err := r.pool.QueryRow(ctx, query, email).Scan(&u.ID, &u.Email, &u.HashedPassword)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get user by email: %w", err)
	}
	return u, nil
}
