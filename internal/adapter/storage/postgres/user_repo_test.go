package postgres

import (
	"context"
	"testing"

	"wallet-service/internal/core/domain"
	"wallet-service/internal/core/ports"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testHash = "$2a$10$abcdefghijklmnopqrstuuJ0yQ6Sx1b8m2r0A5o2Q6pW9q1fQ5b3a"

func TestUserRepo_Create(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := NewUserRepo(mock)
	u := &domain.User{Email: "user@example.com", HashedPassword: testHash}

	mock.ExpectQuery("INSERT INTO users").
		WithArgs(u.Email, u.HashedPassword).
		WillReturnRows(pgxmock.NewRows([]string{"id"}).AddRow(int64(7)))

	err = repo.Create(context.Background(), u)
	require.NoError(t, err)
	assert.Equal(t, int64(7), u.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserRepo_Create_Duplicate(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := NewUserRepo(mock)
	u := &domain.User{Email: "user@example.com", HashedPassword: testHash}

	mock.ExpectQuery("INSERT INTO users").
		WithArgs(u.Email, u.HashedPassword).
		WillReturnError(&pgconn.PgError{Code: "23505", ConstraintName: "ix_users_email"})

	err = repo.Create(context.Background(), u)
	assert.ErrorIs(t, err, ports.ErrDuplicateEmail)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserRepo_GetByEmail(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := NewUserRepo(mock)

	mock.ExpectQuery("SELECT .+ FROM users WHERE email").
		WithArgs("user@example.com").
		WillReturnRows(pgxmock.NewRows([]string{"id", "email", "hashed_password"}).
			AddRow(int64(1), "user@example.com", testHash))

	u, err := repo.GetByEmail(context.Background(), "user@example.com")
	require.NoError(t, err)
	require.NotNil(t, u)
	assert.Equal(t, int64(1), u.ID)
	assert.Equal(t, testHash, u.HashedPassword)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserRepo_GetByEmail_NotFound(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := NewUserRepo(mock)

	mock.ExpectQuery("SELECT .+ FROM users WHERE email").
		WithArgs("ghost@example.com").
		WillReturnError(pgx.ErrNoRows)

	u, err := repo.GetByEmail(context.Background(), "ghost@example.com")
	assert.NoError(t, err)
	assert.Nil(t, u)
	assert.NoError(t, mock.ExpectationsWereMet())
}
