package factor

import (
	crand "crypto/rand"
	"encoding/binary"
	"math/big"
	"math/rand"
	"time"
)

// RNG wraps a deterministic rand.Rand so that base selection is
// reproducible in tests and sweeps while defaulting to a crypto-seeded
// stream in production use.
type RNG struct {
	r *rand.Rand
}

// NewRNG creates a new RNG with the given seed.
func NewRNG(seed int64) *RNG {
	return &RNG{r: rand.New(rand.NewSource(seed))}
}

// NewRandomRNG creates an RNG seeded from crypto/rand, falling back to
// the wall clock if the system source is unreadable.
func NewRandomRNG() *RNG {
	var seed int64
	if err := binary.Read(crand.Reader, binary.LittleEndian, &seed); err != nil {
		seed = time.Now().UnixNano()
	}
	return NewRNG(seed)
}

// Intn returns a random int in [0,n).
func (r *RNG) Intn(n int) int {
	return r.r.Intn(n)
}

// RandBigInt returns a random big.Int uniformly in [0,mod).
func (r *RNG) RandBigInt(mod *big.Int) *big.Int {
	res := new(big.Int)
	res.Rand(r.r, mod)
	return res
}

// randBase returns a uniform base a in [2, N-1]. Requires N >= 4.
func (r *RNG) randBase(N *big.Int) *big.Int {
	span := new(big.Int).Sub(N, bigTwo) // |{2, ..., N-1}|
	a := r.RandBigInt(span)
	return a.Add(a, bigTwo)
}
