package factor

import (
	"math/big"
)

// FactorPair is a validated nontrivial divisor pair of a modulus N,
// normalized so that P <= Q and P*Q = N.
type FactorPair struct {
	P *big.Int
	Q *big.Int
}

func (fp *FactorPair) String() string {
	return fp.P.String() + " * " + fp.Q.String()
}

// newPair builds the normalized pair (f, N/f) for a known divisor f of N.
func newPair(N, f *big.Int) *FactorPair {
	other := new(big.Int).Quo(N, f)
	p := new(big.Int).Set(f)
	if p.Cmp(other) > 0 {
		p, other = other, p
	}
	return &FactorPair{P: p, Q: other}
}

// Reduce turns a candidate period r of a modulo N into a divisor pair.
// It trusts the oracle's claim a^r ≡ 1 (mod N) but re-derives everything
// else, so a bogus r degrades to a retry signal instead of a wrong answer:
//
//	r odd                          -> no pair, retry with a new base
//	x = a^(r/2) ≡ -1 (mod N)       -> trivial square root, retry
//	gcd(N, x±1) ∈ {1, N}           -> degenerate split, retry
//
// Otherwise gcd(N, x-1) is a nontrivial divisor and (f1, N/f1) is returned.
// Pure function; no side effects.
func Reduce(N, a *big.Int, r uint64) (*FactorPair, bool) {
	if r == 0 || r%2 != 0 {
		return nil, false
	}
	x := new(big.Int).Exp(a, new(big.Int).SetUint64(r/2), N)

	nMinusOne := new(big.Int).Sub(N, bigOne)
	if x.Cmp(nMinusOne) == 0 || x.Cmp(bigOne) == 0 {
		return nil, false
	}

	f1 := gcd(N, new(big.Int).Sub(x, bigOne))
	f2 := gcd(N, new(big.Int).Add(x, bigOne))
	if f1.Cmp(bigOne) == 0 || f1.Cmp(N) == 0 {
		return nil, false
	}
	if f2.Cmp(bigOne) == 0 || f2.Cmp(N) == 0 {
		return nil, false
	}
	return newPair(N, f1), true
}
