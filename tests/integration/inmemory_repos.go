package integration

import (
	"context"
	"fmt"
	"sync"

	"wallet-service/internal/core/domain"
	"wallet-service/internal/core/ports"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/shopspring/decimal"
)

// --- In-Memory User Repo ---

type inMemoryUserRepo struct {
	mu     sync.RWMutex
	nextID int64
	users  map[string]*domain.User
}

func newInMemoryUserRepo() *inMemoryUserRepo {
	return &inMemoryUserRepo{users: make(map[string]*domain.User)}
}

func (r *inMemoryUserRepo) Create(ctx context.Context, u *domain.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.users[u.Email]; ok {
		return fmt.Errorf("create user: %w", ports.ErrDuplicateEmail)
	}
	r.nextID++
	u.ID = r.nextID
	stored := *u
	r.users[u.Email] = &stored
	return nil
}

func (r *inMemoryUserRepo) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	u, ok := r.users[email]
	if !ok {
		return nil, nil
	}
	cp := *u
	return &cp, nil
}

// --- In-Memory Wallet Repo ---

// inMemoryWalletRepo keeps committed balances in a map. GetByIDForUpdate takes
// a per-wallet lock owned by the transaction; writes become visible on commit.
type inMemoryWalletRepo struct {
	mu      sync.RWMutex
	wallets map[uuid.UUID]decimal.Decimal
	rows    sync.Map // uuid.UUID -> chan struct{}
}

func newInMemoryWalletRepo() *inMemoryWalletRepo {
	return &inMemoryWalletRepo{wallets: make(map[uuid.UUID]decimal.Decimal)}
}

func (r *inMemoryWalletRepo) Create(ctx context.Context, w *domain.Wallet) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.wallets[w.ID]; ok {
		return fmt.Errorf("wallet %s already exists", w.ID)
	}
	r.wallets[w.ID] = w.Balance
	return nil
}

func (r *inMemoryWalletRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Wallet, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	balance, ok := r.wallets[id]
	if !ok {
		return nil, nil
	}
	return &domain.Wallet{ID: id, Balance: balance}, nil
}

func (r *inMemoryWalletRepo) GetByIDForUpdate(ctx context.Context, tx pgx.Tx, id uuid.UUID) (*domain.Wallet, error) {
	mtx, ok := tx.(*memTx)
	if !ok {
		return nil, fmt.Errorf("unexpected tx type %T", tx)
	}

	if w, err := r.GetByID(ctx, id); err != nil || w == nil {
		return w, err
	}

	row, _ := r.rows.LoadOrStore(id, make(chan struct{}, 1))
	lock := row.(chan struct{})
	select {
	case lock <- struct{}{}:
	case <-ctx.Done():
		return nil, fmt.Errorf("lock wallet %s: %w", id, ports.ErrLockTimeout)
	}
	mtx.onEnd(func() { <-lock })

	// Re-read under the lock so the caller sees the latest committed balance.
	return r.GetByID(ctx, id)
}

func (r *inMemoryWalletRepo) UpdateBalance(ctx context.Context, tx pgx.Tx, id uuid.UUID, balance decimal.Decimal) (*domain.Wallet, error) {
	mtx, ok := tx.(*memTx)
	if !ok {
		return nil, fmt.Errorf("unexpected tx type %T", tx)
	}
	if balance.IsNegative() {
		return nil, fmt.Errorf("update wallet %s: balance check violated", id)
	}

	mtx.onCommit(func() {
		r.mu.Lock()
		r.wallets[id] = balance
		r.mu.Unlock()
	})
	return &domain.Wallet{ID: id, Balance: balance}, nil
}

func (r *inMemoryWalletRepo) balance(id uuid.UUID) decimal.Decimal {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.wallets[id]
}

// --- In-Memory Transactor ---

type inMemoryTransactor struct{}

func newInMemoryTransactor() *inMemoryTransactor {
	return &inMemoryTransactor{}
}

func (t *inMemoryTransactor) Begin(ctx context.Context) (pgx.Tx, error) {
	return &memTx{}, nil
}

// memTx buffers writes until Commit and releases row locks on Commit or Rollback.
type memTx struct {
	noopTx

	mu      sync.Mutex
	done    bool
	commits []func()
	ends    []func()
}

func (t *memTx) onCommit(fn func()) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.commits = append(t.commits, fn)
}

func (t *memTx) onEnd(fn func()) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.ends = append(t.ends, fn)
}

func (t *memTx) finish(commit bool) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.done {
		return pgx.ErrTxClosed
	}
	t.done = true
	if commit {
		for _, fn := range t.commits {
			fn()
		}
	}
	for _, fn := range t.ends {
		fn()
	}
	return nil
}

func (t *memTx) Commit(ctx context.Context) error   { return t.finish(true) }
func (t *memTx) Rollback(ctx context.Context) error { return t.finish(false) }

// noopTx is a no-op pgx.Tx implementation for in-memory testing.
type noopTx struct{}

func (t *noopTx) Begin(ctx context.Context) (pgx.Tx, error) { return t, nil }
func (t *noopTx) Commit(ctx context.Context) error          { return nil }
func (t *noopTx) Rollback(ctx context.Context) error        { return nil }
func (t *noopTx) CopyFrom(ctx context.Context, tableName pgx.Identifier, columnNames []string, rowSrc pgx.CopyFromSource) (int64, error) {
	return 0, nil
}
func (t *noopTx) SendBatch(ctx context.Context, b *pgx.Batch) pgx.BatchResults { return nil }
func (t *noopTx) LargeObjects() pgx.LargeObjects                               { return pgx.LargeObjects{} }
func (t *noopTx) Prepare(ctx context.Context, name, sql string) (*pgconn.StatementDescription, error) {
	return nil, nil
}
func (t *noopTx) Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error) {
	return pgconn.NewCommandTag(""), nil
}
func (t *noopTx) Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error) {
	return nil, nil
}
func (t *noopTx) QueryRow(ctx context.Context, sql string, args ...any) pgx.Row {
	return nil
}
func (t *noopTx) Conn() *pgx.Conn { return nil }
