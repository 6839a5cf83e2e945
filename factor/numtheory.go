package factor

import (
	"math/big"
	"strconv"
)

var (
	bigOne = big.NewInt(1)
	bigTwo = big.NewInt(2)
)

// primeCertainty is the number of Miller-Rabin rounds used by modulus
// validation. ProbablyPrime(20) is exact below 3.3e24 and leaves a
// < 4^-20 error beyond, which is enough for input screening.
const primeCertainty = 20

// gcd returns gcd(a, b) as a fresh big.Int.
func gcd(a, b *big.Int) *big.Int {
	return new(big.Int).GCD(nil, nil, a, b)
}

// kthRoot returns floor(N^(1/k)) for N >= 1 and k >= 1, by binary search
// on the bit length of the root.
func kthRoot(N *big.Int, k uint) *big.Int {
	if k == 1 {
		return new(big.Int).Set(N)
	}
	// Root has at most ceil(bitlen(N)/k) bits.
	hiBits := (uint(N.BitLen()) + k - 1) / k
	lo := new(big.Int).SetUint64(1)
	hi := new(big.Int).Lsh(bigOne, hiBits) // 2^hiBits >= N^(1/k)
	kk := big.NewInt(int64(k))
	for lo.Cmp(hi) < 0 {
		// mid = ceil((lo+hi)/2) so the loop always tightens.
		mid := new(big.Int).Add(lo, hi)
		mid.Add(mid, bigOne)
		mid.Rsh(mid, 1)
		if new(big.Int).Exp(mid, kk, nil).Cmp(N) <= 0 {
			lo.Set(mid)
		} else {
			hi.Sub(mid, bigOne)
		}
	}
	return lo
}

// perfectPower reports whether N = b^k for some b >= 2, k >= 2, returning
// the smallest such base and its exponent.
func perfectPower(N *big.Int) (base *big.Int, exp uint, ok bool) {
	if N.Cmp(bigTwo) < 0 {
		return nil, 0, false
	}
	maxK := uint(N.BitLen()) // 2^BitLen > N, so k < BitLen suffices
	for k := maxK; k >= 2; k-- {
		root := kthRoot(N, k)
		if root.Cmp(bigTwo) < 0 {
			continue
		}
		if new(big.Int).Exp(root, big.NewInt(int64(k)), nil).Cmp(N) == 0 {
			return root, k, true
		}
	}
	return nil, 0, false
}

// ValidateModulus checks the classical preconditions of the reduction:
// N must be a composite that is neither prime nor a prime power. A
// composite perfect power such as 225 = 15^2 carries two distinct prime
// factors and is admitted; the reduction handles it like any other
// composite. Violations come back as *InvalidInputError; the caller must
// not invoke the period oracle on an invalid modulus.
func ValidateModulus(N *big.Int) error {
	if N == nil || N.Cmp(bigTwo) < 0 {
		return &InvalidInputError{N: N, Reason: "must be an integer >= 2"}
	}
	if N.ProbablyPrime(primeCertainty) {
		return &InvalidInputError{N: N, Reason: "prime"}
	}
	// perfectPower yields the minimal base, so N is a prime power exactly
	// when that base is prime.
	if base, exp, ok := perfectPower(N); ok && base.ProbablyPrime(primeCertainty) {
		return &InvalidInputError{N: N, Reason: "prime power " + base.String() + "^" + strconv.FormatUint(uint64(exp), 10)}
	}
	return nil
}
