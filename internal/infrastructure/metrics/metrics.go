// Package metrics exposes the service's Prometheus collectors. Every method
// is safe on a nil *Recorder so use cases can run without metrics in tests.
package metrics

import (
	"errors"
	"strconv"
	"time"

	"p2p-lending-ledger/internal/domain/errs"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/shopspring/decimal"
)

const namespace = "lending"

type Recorder struct {
	disbursements *prometheus.CounterVec
	repayments    *prometheus.CounterVec
	lateFees      prometheus.Counter
	overdueMarked prometheus.Counter
	httpDuration  *prometheus.HistogramVec
}

// New registers all collectors on reg.
func New(reg prometheus.Registerer) *Recorder {
	r := &Recorder{
		disbursements: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "disbursements_total",
			Help:      "Loan disbursement attempts by outcome.",
		}, []string{"outcome"}),
		repayments: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "repayments_total",
			Help:      "Installment repayment attempts by outcome.",
		}, []string{"outcome"}),
		lateFees: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "late_fees_charged_total",
			Help:      "Sum of late fees charged, in currency units.",
		}),
		overdueMarked: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "schedule_rows_marked_overdue_total",
			Help:      "Schedule rows flipped from PENDING to OVERDUE.",
		}),
		httpDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request latency by route and status.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method", "route", "status"}),
	}
	reg.MustRegister(r.disbursements, r.repayments, r.lateFees, r.overdueMarked, r.httpDuration)
	return r
}

// Outcome labels a use-case result: "ok" or the error kind.
type Outcome string

const (
	OutcomeOK                Outcome = "ok"
	OutcomeNotFound          Outcome = "not_found"
	OutcomeInvalidState      Outcome = "invalid_state"
	OutcomeUnauthorized      Outcome = "unauthorized"
	OutcomeInsufficientFunds Outcome = "insufficient_funds"
	OutcomeInvalidInput      Outcome = "invalid_input"
	OutcomeError             Outcome = "error"
)

func OutcomeOf(err error) Outcome {
	switch {
	case err == nil:
		return OutcomeOK
	case errors.Is(err, errs.ErrNotFound):
		return OutcomeNotFound
	case errors.Is(err, errs.ErrInvalidState):
		return OutcomeInvalidState
	case errors.Is(err, errs.ErrUnauthorized):
		return OutcomeUnauthorized
	case errors.Is(err, errs.ErrInsufficientFunds):
		return OutcomeInsufficientFunds
	case errors.Is(err, errs.ErrInvalidInput):
		return OutcomeInvalidInput
	}
	return OutcomeError
}

func (r *Recorder) Disbursement(o Outcome) {
	if r == nil {
		return
	}
	r.disbursements.WithLabelValues(string(o)).Inc()
}

func (r *Recorder) Repayment(o Outcome, lateFee decimal.Decimal) {
	if r == nil {
		return
	}
	r.repayments.WithLabelValues(string(o)).Inc()
	if lateFee.IsPositive() {
		r.lateFees.Add(lateFee.InexactFloat64())
	}
}

func (r *Recorder) OverdueMarked(n int64) {
	if r == nil || n <= 0 {
		return
	}
	r.overdueMarked.Add(float64(n))
}

// Middleware observes request latency per matched route.
func (r *Recorder) Middleware() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if r == nil {
				return next(c)
			}
			start := time.Now()
			err := next(c)
			if err != nil {
				c.Error(err)
			}
			r.httpDuration.
				WithLabelValues(c.Request().Method, c.Path(), strconv.Itoa(c.Response().Status)).
				Observe(time.Since(start).Seconds())
			return nil
		}
	}
}
