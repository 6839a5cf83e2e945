package factor

import (
	"context"
	"errors"
	"fmt"
	"log"
	"math/big"
	"time"

	"shor-factoring/oracle"
	"shor-factoring/prof"
)

// DefaultMaxAttempts bounds the driver's retry loop when Config leaves it
// unset. Each attempt is an independent random base, and roughly half of
// all coprime bases yield a usable even period, so 20 attempts push the
// miss probability below one in a million.
const DefaultMaxAttempts = 20

// TrackOracleCall is the prof label under which the driver records every
// oracle round trip.
const TrackOracleCall = "oracle.find_period"

// Config carries the driver knobs. The zero value is usable: defaults are
// filled in by Factor.
type Config struct {
	// MaxAttempts bounds the number of random bases tried before the
	// driver gives up with ErrExhausted. Zero means DefaultMaxAttempts.
	MaxAttempts int

	// PerAttempt, when positive, wraps each oracle call in a deadline so
	// a stalled backend costs one attempt instead of the whole run.
	PerAttempt time.Duration

	// Rand drives base selection. Nil means a crypto-seeded stream;
	// tests pass NewRNG(seed) for reproducibility.
	Rand *RNG

	// Verbose logs per-attempt telemetry (base, period, failure reason).
	Verbose bool
}

func (c Config) withDefaults() Config {
	if c.MaxAttempts <= 0 {
		c.MaxAttempts = DefaultMaxAttempts
	}
	if c.Rand == nil {
		c.Rand = NewRandomRNG()
	}
	return c
}

// Factor runs the classical Shor driver: validate N, then repeatedly pick
// a random base, ask the oracle for its period, and reduce the period to a
// divisor pair. Oracle failures (ErrNoResult, ErrBackendUnavailable, a
// per-attempt deadline) are retryable and consume an attempt; odd periods
// and trivial square roots likewise. When the attempt budget runs out the
// driver fails with ErrExhausted. Cancelling ctx aborts with ctx.Err().
func Factor(ctx context.Context, N *big.Int, pf oracle.PeriodFinder, cfg Config) (*FactorPair, error) {
	if err := ValidateModulus(N); err != nil {
		return nil, err
	}
	// Even composites split classically; the oracle is never consulted.
	if N.Bit(0) == 0 {
		return newPair(N, bigTwo), nil
	}
	cfg = cfg.withDefaults()

	for attempt := 1; attempt <= cfg.MaxAttempts; attempt++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		a := cfg.Rand.randBase(N)

		// A base sharing a factor with N is already a win.
		if g := gcd(a, N); g.Cmp(bigOne) != 0 {
			if cfg.Verbose {
				log.Printf("factor: attempt %d: base %s shares factor %s with N", attempt, a, g)
			}
			return newPair(N, g), nil
		}

		r, err := findPeriod(ctx, pf, N, a, cfg.PerAttempt)
		if err != nil {
			if retryable(err) {
				if cfg.Verbose {
					log.Printf("factor: attempt %d: base %s: %v", attempt, a, err)
				}
				continue
			}
			if ctx.Err() != nil {
				return nil, ctx.Err()
			}
			return nil, fmt.Errorf("factor: find period of %s mod %s: %w", a, N, err)
		}

		if pair, ok := Reduce(N, a, r); ok {
			if cfg.Verbose {
				log.Printf("factor: attempt %d: base %s period %d -> %s", attempt, a, r, pair)
			}
			return pair, nil
		}
		if cfg.Verbose {
			log.Printf("factor: attempt %d: base %s period %d unusable", attempt, a, r)
		}
	}
	return nil, fmt.Errorf("factor: %d attempts on N=%s: %w", cfg.MaxAttempts, N, ErrExhausted)
}

// findPeriod performs one timed, optionally deadlined oracle round trip.
func findPeriod(ctx context.Context, pf oracle.PeriodFinder, N, a *big.Int, budget time.Duration) (uint64, error) {
	callCtx := ctx
	if budget > 0 {
		var cancel context.CancelFunc
		callCtx, cancel = context.WithTimeout(ctx, budget)
		defer cancel()
	}
	start := time.Now()
	r, err := pf.FindPeriod(callCtx, N, a)
	prof.Track(start, TrackOracleCall)
	return r, err
}

// retryable reports whether an oracle failure should cost an attempt
// rather than abort the run. A deadline on the per-attempt context is
// retryable; cancellation of the parent is not and is rechecked by the
// caller.
func retryable(err error) bool {
	return errors.Is(err, oracle.ErrNoResult) ||
		errors.Is(err, oracle.ErrBackendUnavailable) ||
		errors.Is(err, context.DeadlineExceeded)
}
