package service

import (
	"errors"
	"testing"

	"wallet-service/internal/core/domain"
	"wallet-service/pkg/apperror"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestLedgerMetrics_Observe(t *testing.T) {
	m := NewLedgerMetrics(prometheus.NewRegistry())

	m.Observe(domain.OperationDeposit, nil)
	m.Observe(domain.OperationDeposit, nil)
	m.Observe(domain.OperationWithdraw, apperror.ErrLockTimeout(errors.New("55P03")))
	m.Observe("TRANSFER", apperror.ErrInvalidOperation())
	m.Observe(domain.OperationWithdraw, errors.New("plain"))

	assert.Equal(t, 2.0, testutil.ToFloat64(m.operations.WithLabelValues("DEPOSIT", "success")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.operations.WithLabelValues("WITHDRAW", "SYS_002")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.operations.WithLabelValues("UNKNOWN", "WAL_002")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.operations.WithLabelValues("WITHDRAW", "error")))
}

func TestLedgerMetrics_NilIsNoop(t *testing.T) {
	var m *LedgerMetrics
	assert.NotPanics(t, func() { m.Observe(domain.OperationDeposit, nil) })
}
