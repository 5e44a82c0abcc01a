// Package metrics exposes Prometheus instruments for ledger operations.
package metrics

import (
	"errors"
	"time"

	"microfinance-backoffice/internal/domain/apperr"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/shopspring/decimal"
)

const namespace = "ledger"

var (
	Operations = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "operations_total",
		Help:      "Ledger operations by name and outcome.",
	}, []string{"operation", "outcome"})

	Duration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "operation_duration_seconds",
		Help:      "Wall time of ledger operations, including the database transaction.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"operation"})

	Amount = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "amount_total",
		Help:      "Money moved by successful operations (disbursed principal, repayments).",
	}, []string{"operation"})

	LoansDefaulted = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "loans_defaulted_total",
		Help:      "Loans moved to DEFAULTED by the delinquency sweep.",
	})
)

// Outcome labels err by its apperr kind.
func Outcome(err error) string {
	switch {
	case err == nil:
		return "ok"
	case errors.Is(err, apperr.ErrValidation):
		return "validation"
	case errors.Is(err, apperr.ErrNotFound):
		return "not_found"
	case errors.Is(err, apperr.ErrConflict):
		return "conflict"
	case errors.Is(err, apperr.ErrConsistency):
		return "consistency"
	default:
		return "error"
	}
}

// Observe records one finished operation. Use with defer:
//
//	defer func(start time.Time) { metrics.Observe("disburse", start, err) }(time.Now())
func Observe(op string, start time.Time, err error) {
	Operations.WithLabelValues(op, Outcome(err)).Inc()
	Duration.WithLabelValues(op).Observe(time.Since(start).Seconds())
}

func AddAmount(op string, amount decimal.Decimal) {
	f, _ := amount.Float64()
	Amount.WithLabelValues(op).Add(f)
}
