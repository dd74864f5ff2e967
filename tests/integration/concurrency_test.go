package integration

import (
	"net/http"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestConcurrentDeposits fires deposits at one wallet from many goroutines.
// The row lock serializes them, so no update is lost.
func TestConcurrentDeposits(t *testing.T) {
	app := newTestApp(t)
	tk := app.mustLogin(t)
	w := app.createWallet(t, tk.AccessToken)

	const concurrency = 50
	var (
		wg        sync.WaitGroup
		succeeded atomic.Int64
	)

	for i := 0; i < concurrency; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			resp, _ := app.operate(t, tk.AccessToken, w.UUID, "DEPOSIT", "10.01")
			if resp.StatusCode == http.StatusOK {
				succeeded.Add(1)
			}
		}()
	}
	wg.Wait()

	require.Equal(t, int64(concurrency), succeeded.Load())

	resp, data := app.request(t, http.MethodGet, "/api/v1/wallets/"+w.UUID, tk.AccessToken, "", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "500.50", decodeInto[walletBody](t, data).Balance)
}

// TestConcurrentWithdrawals_NoOverdraft funds a wallet for exactly half of the
// attempted withdrawals. Exactly that many succeed and the balance ends at zero.
func TestConcurrentWithdrawals_NoOverdraft(t *testing.T) {
	app := newTestApp(t)
	tk := app.mustLogin(t)
	w := app.createWallet(t, tk.AccessToken)

	resp, _ := app.operate(t, tk.AccessToken, w.UUID, "DEPOSIT", "250")
	require.Equal(t, http.StatusOK, resp.StatusCode)

	const concurrency = 50
	var (
		wg           sync.WaitGroup
		succeeded    atomic.Int64
		insufficient atomic.Int64
	)

	for i := 0; i < concurrency; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			resp, data := app.operate(t, tk.AccessToken, w.UUID, "WITHDRAW", "10")
			switch {
			case resp.StatusCode == http.StatusOK:
				succeeded.Add(1)
			case resp.StatusCode == http.StatusBadRequest && decodeInto[errorBody](t, data).ErrorCode == "WAL_003":
				insufficient.Add(1)
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, int64(25), succeeded.Load())
	assert.Equal(t, int64(25), insufficient.Load())
	assert.True(t, app.wallets.balance(uuid.MustParse(w.UUID)).IsZero())
}

// TestConcurrentMixedWallets runs deposits against several wallets at once;
// each wallet only sees its own operations.
func TestConcurrentMixedWallets(t *testing.T) {
	app := newTestApp(t)
	tk := app.mustLogin(t)

	const (
		walletCount = 4
		perWallet   = 20
	)
	ids := make([]string, walletCount)
	for i := range ids {
		ids[i] = app.createWallet(t, tk.AccessToken).UUID
	}

	var wg sync.WaitGroup
	for _, id := range ids {
		for j := 0; j < perWallet; j++ {
			wg.Add(1)
			go func(id string) {
				defer wg.Done()
				app.operate(t, tk.AccessToken, id, "DEPOSIT", "1.50")
			}(id)
		}
	}
	wg.Wait()

	want := decimal.RequireFromString("1.50").Mul(decimal.NewFromInt(perWallet))
	for _, id := range ids {
		got := app.wallets.balance(uuid.MustParse(id))
		assert.True(t, want.Equal(got), "wallet %s: want %s, got %s", id, want, got)
	}
}
