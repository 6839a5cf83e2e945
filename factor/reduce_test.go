package factor

import (
	"math/big"
	"testing"
)

// bruteOrder is the reference multiplicative order used to feed Reduce
// with true periods.
func bruteOrder(t *testing.T, N, a int64) uint64 {
	t.Helper()
	n := big.NewInt(N)
	x := big.NewInt(a)
	x.Mod(x, n)
	var r uint64 = 1
	for x.Cmp(big.NewInt(1)) != 0 {
		x.Mul(x, big.NewInt(a))
		x.Mod(x, n)
		r++
		if r > 1<<20 {
			t.Fatalf("order of %d mod %d did not terminate", a, N)
		}
	}
	return r
}

func TestReduceKnownScenarios(t *testing.T) {
	cases := []struct {
		n, a   int64
		r      uint64
		p, q   int64
	}{
		// 2^3 mod 21 = 8, gcd(21,7)=7, gcd(21,9)=3
		{21, 2, 6, 3, 7},
		// 7^2 mod 15 = 4, gcd(15,3)=3, gcd(15,5)=5
		{15, 7, 4, 3, 5},
		{15, 2, 4, 3, 5},
	}
	for _, c := range cases {
		pair, ok := Reduce(big.NewInt(c.n), big.NewInt(c.a), c.r)
		if !ok {
			t.Fatalf("Reduce(%d, %d, %d): expected pair", c.n, c.a, c.r)
		}
		if pair.P.Cmp(big.NewInt(c.p)) != 0 || pair.Q.Cmp(big.NewInt(c.q)) != 0 {
			t.Fatalf("Reduce(%d, %d, %d) = %s, want %d * %d", c.n, c.a, c.r, pair, c.p, c.q)
		}
	}
}

func TestReduceOddOrZeroPeriod(t *testing.T) {
	cases := []struct {
		n, a int64
		r    uint64
	}{
		{21, 4, 3},
		{21, 16, 3},
		{15, 2, 5},
		{15, 2, 0},
	}
	for _, c := range cases {
		if pair, ok := Reduce(big.NewInt(c.n), big.NewInt(c.a), c.r); ok {
			t.Fatalf("Reduce(%d, %d, %d) = %s, want none", c.n, c.a, c.r, pair)
		}
	}
}

func TestReduceTrivialSquareRoot(t *testing.T) {
	// 14^1 ≡ -1 (mod 15) and 20^1 ≡ -1 (mod 21): trivial roots, no pair.
	cases := []struct {
		n, a int64
		r    uint64
	}{
		{15, 14, 2},
		{21, 20, 2},
		// 4^2 ≡ 1 (mod 15): r is a multiple of the true order, x = 1.
		{15, 4, 4},
	}
	for _, c := range cases {
		if pair, ok := Reduce(big.NewInt(c.n), big.NewInt(c.a), c.r); ok {
			t.Fatalf("Reduce(%d, %d, %d) = %s, want none", c.n, c.a, c.r, pair)
		}
	}
}

func TestReduceBogusPeriodIsRetry(t *testing.T) {
	// 2 has order 4 mod 15; r=6 violates the oracle contract. Reduce must
	// degrade to a retry signal, never a wrong pair.
	if pair, ok := Reduce(big.NewInt(15), big.NewInt(2), 6); ok {
		t.Fatalf("Reduce(15, 2, 6) = %s, want none", pair)
	}
}

func TestReduceTruePeriodsProduceValidPairs(t *testing.T) {
	composites := map[int64][2]int64{
		15: {3, 5},
		21: {3, 7},
		33: {3, 11},
		35: {5, 7},
		55: {5, 11},
		91: {7, 13},
	}
	one := big.NewInt(1)
	for n, want := range composites {
		N := big.NewInt(n)
		successes := 0
		for a := int64(2); a < n; a++ {
			A := big.NewInt(a)
			if new(big.Int).GCD(nil, nil, A, N).Cmp(one) != 0 {
				continue
			}
			r := bruteOrder(t, n, a)
			pair, ok := Reduce(N, A, r)
			if !ok {
				continue // odd order or trivial root, a retry in the driver
			}
			successes++
			prod := new(big.Int).Mul(pair.P, pair.Q)
			if prod.Cmp(N) != 0 {
				t.Fatalf("N=%d a=%d r=%d: %s * %s != N", n, a, r, pair.P, pair.Q)
			}
			if pair.P.Cmp(one) <= 0 || pair.Q.Cmp(N) >= 0 {
				t.Fatalf("N=%d a=%d r=%d: trivial pair %s", n, a, r, pair)
			}
			if pair.P.Cmp(big.NewInt(want[0])) != 0 || pair.Q.Cmp(big.NewInt(want[1])) != 0 {
				t.Fatalf("N=%d a=%d r=%d: pair %s, want %d * %d", n, a, r, pair, want[0], want[1])
			}
		}
		if successes == 0 {
			t.Fatalf("N=%d: no coprime base produced a pair", n)
		}
	}
}
