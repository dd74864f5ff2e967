package service

import (
	"errors"

	"wallet-service/internal/core/domain"
	"wallet-service/pkg/apperror"

	"github.com/prometheus/client_golang/prometheus"
)

// LedgerMetrics counts balance operations by kind and outcome.
// A nil *LedgerMetrics records nothing.
type LedgerMetrics struct {
	operations *prometheus.CounterVec
}

// NewLedgerMetrics creates the ledger counters and registers them with reg.
func NewLedgerMetrics(reg prometheus.Registerer) *LedgerMetrics {
	m := &LedgerMetrics{
		operations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "wallet",
			Name:      "operations_total",
			Help:      "Wallet balance operations by kind and outcome.",
		}, []string{"operation", "outcome"}),
	}
	reg.MustRegister(m.operations)
	return m
}

// Observe records one operation. The outcome is "success" or the error code.
func (m *LedgerMetrics) Observe(kind domain.OperationType, err error) {
	if m == nil {
		return
	}
	m.operations.WithLabelValues(operationLabel(kind), outcome(err)).Inc()
}

func operationLabel(kind domain.OperationType) string {
	if kind.IsValid() {
		return string(kind)
	}
	return "UNKNOWN"
}

func outcome(err error) string {
	if err == nil {
		return "success"
	}
	var appErr *apperror.AppError
	if errors.As(err, &appErr) {
		return appErr.Code
	}
	return "error"
}
