package oracle

import (
	"context"
	"fmt"
	"math/big"
)

// DefaultOrderCutoff bounds the exact-order search. Orders divide the
// Carmichael function of N, so for the modulus sizes this repo targets
// 2^20 multiplications is far past any reachable order.
const DefaultOrderCutoff = 1 << 20

// ctxCheckStride is how many multiplications pass between context polls.
const ctxCheckStride = 1024

var oneBig = big.NewInt(1)

// Order is the deterministic reference backend: it computes the exact
// multiplicative order of a modulo N by iterated modular multiplication.
// The zero value is ready to use.
type Order struct {
	// Cutoff aborts the search with ErrNoResult once r exceeds it.
	// Zero means DefaultOrderCutoff.
	Cutoff uint64
}

func (o Order) cutoff() uint64 {
	if o.Cutoff == 0 {
		return DefaultOrderCutoff
	}
	return o.Cutoff
}

// FindPeriod returns the smallest r > 0 with a^r ≡ 1 (mod N).
func (o Order) FindPeriod(ctx context.Context, N, a *big.Int) (uint64, error) {
	if err := checkBase(N, a); err != nil {
		return 0, err
	}
	cutoff := o.cutoff()
	x := new(big.Int).Mod(a, N)
	var r uint64 = 1
	for x.Cmp(oneBig) != 0 {
		x.Mul(x, a)
		x.Mod(x, N)
		r++
		if r > cutoff {
			return 0, fmt.Errorf("order of %s mod %s exceeds cutoff %d: %w", a, N, cutoff, ErrNoResult)
		}
		if r%ctxCheckStride == 0 {
			if err := ctx.Err(); err != nil {
				return 0, err
			}
		}
	}
	return r, nil
}

// checkBase rejects bases the order is undefined for. gcd(a, N) > 1 is a
// caller bug here: the driver short-circuits such bases before calling.
func checkBase(N, a *big.Int) error {
	if N.Cmp(big.NewInt(2)) < 0 {
		return fmt.Errorf("oracle: modulus %s out of range", N)
	}
	if a.Cmp(big.NewInt(2)) < 0 || a.Cmp(N) >= 0 {
		return fmt.Errorf("oracle: base %s outside [2, N-1] for N=%s", a, N)
	}
	if g := new(big.Int).GCD(nil, nil, a, N); g.Cmp(oneBig) != 0 {
		return fmt.Errorf("oracle: base %s shares factor %s with modulus %s", a, g, N)
	}
	return nil
}
