package oracle

// Package oracle defines the period-finding collaborator of the classical
// Shor driver and two simulated backends. A PeriodFinder stands in for a
// quantum execution service: given a modulus N and a coprime base a it
// reports the multiplicative order r of a modulo N. Everything upstream of
// r (circuits, phase estimation, continued fractions) lives behind this
// interface and is never modeled here.

import (
	"context"
	"errors"
	"math/big"
)

// PeriodFinder supplies a candidate period r with a^r ≡ 1 (mod N).
type PeriodFinder interface {
	FindPeriod(ctx context.Context, N, a *big.Int) (uint64, error)
}

var (
	// ErrBackendUnavailable means the underlying execution service could
	// not be reached or is not configured. Retryable.
	ErrBackendUnavailable = errors.New("oracle: backend unavailable")

	// ErrNoResult means the backend ran but produced no usable period
	// estimate within its configured budget. Retryable.
	ErrNoResult = errors.New("oracle: no usable period estimate")
)
