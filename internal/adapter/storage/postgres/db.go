package postgres

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"wallet-service/config"
	"wallet-service/internal/core/ports"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
)

// Pool is the subset of *pgxpool.Pool used by the repositories.
// pgxmock.PgxPoolIface satisfies it in tests.
type Pool interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Begin(ctx context.Context) (pgx.Tx, error)
	BeginTx(ctx context.Context, txOptions pgx.TxOptions) (pgx.Tx, error)
	Ping(ctx context.Context) error
}

// SQLSTATE codes returned when a row lock wait is cut short.
const (
	codeLockNotAvailable = "55P03"
	codeQueryCanceled    = "57014"
	codeUniqueViolation  = "23505"
)

// PoolConfig builds the pgxpool configuration from the database settings.
// Every session gets lock_timeout so a blocked FOR UPDATE fails instead of waiting forever.
func PoolConfig(cfg config.DatabaseConfig) (*pgxpool.Config, error) {
	poolCfg, err := pgxpool.ParseConfig(cfg.DSN())
	if err != nil {
		return nil, fmt.Errorf("parsing database config: %w", err)
	}

	if cfg.MaxConns > 0 {
		poolCfg.MaxConns = cfg.MaxConns
	}
	if cfg.MinConns > 0 {
		poolCfg.MinConns = cfg.MinConns
	}
	if cfg.ConnMaxLifetime > 0 {
		poolCfg.MaxConnLifetime = cfg.ConnMaxLifetime
	}
	if cfg.LockTimeout > 0 {
		poolCfg.ConnConfig.RuntimeParams["lock_timeout"] = strconv.FormatInt(cfg.LockTimeout.Milliseconds(), 10)
	}

	return poolCfg, nil
}

// NewPool creates a PostgreSQL connection pool using pgx.
func NewPool(ctx context.Context, cfg config.DatabaseConfig, log zerolog.Logger) (*pgxpool.Pool, error) {
	poolCfg, err := PoolConfig(cfg)
	if err != nil {
		return nil, err
	}

	pool, err := pgxpool.NewWithConfig(ctx, poolCfg)
	if err != nil {
		return nil, fmt.Errorf("creating connection pool: %w", err)
	}

	// Verify connectivity
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("pinging database: %w", err)
	}

	log.Info().
		Str("host", poolCfg.ConnConfig.Host).
		Uint16("port", poolCfg.ConnConfig.Port).
		Str("dbname", poolCfg.ConnConfig.Database).
		Int32("max_conns", poolCfg.MaxConns).
		Dur("lock_timeout", cfg.LockTimeout).
		Msg("PostgreSQL connection pool established")

	return pool, nil
}

// isLockTimeout reports whether err means the row lock was not acquired in time.
func isLockTimeout(err error) bool {
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == codeLockNotAvailable || pgErr.Code == codeQueryCanceled
	}
	return false
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == codeUniqueViolation
}

// lockError wraps err with ports.ErrLockTimeout when it stems from a lock wait.
func lockError(op string, err error) error {
	if isLockTimeout(err) {
		return fmt.Errorf("%s: %w: %w", op, ports.ErrLockTimeout, err)
	}
	return fmt.Errorf("%s: %w", op, err)
}
