package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
)

// ledgerTxOptions is used for every balance mutation. Under read committed a
// FOR UPDATE that waited on another writer re-reads the committed row.
var ledgerTxOptions = pgx.TxOptions{
	IsoLevel:   pgx.ReadCommitted,
	AccessMode: pgx.ReadWrite,
}

// Transactor implements ports.DBTransactor on top of the connection pool.
type Transactor struct {
	pool Pool
}

// NewTransactor creates a new Transactor wrapping the connection pool.
func NewTransactor(pool Pool) *Transactor {
	return &Transactor{pool: pool}
}

// Begin starts a read-write, read-committed transaction.
func (t *Transactor) Begin(ctx context.Context) (pgx.Tx, error) {
	tx, err := t.pool.BeginTx(ctx, ledgerTxOptions)
	if err != nil {
		return nil, fmt.Errorf("begin ledger tx: %w", err)
	}
	return tx, nil
}
