package oracle

import (
	"context"
	"encoding/binary"
	"fmt"
	"math/big"

	"github.com/tuneinsight/lattigo/v4/utils"
	"golang.org/x/crypto/sha3"
)

// DefaultShots is the per-request measurement budget of the Sampled backend.
const DefaultShots = 64

const shotKeyLabel = "shor/sampled/shot-key/v1"

// Sampled emulates the statistics a phase-estimation backend presents to
// the driver, without modeling any quantum state. The true order r of a is
// computed exactly, then each "shot" draws k uniform in [0, r) from a keyed
// PRNG and yields the estimate r/gcd(k, r), the period recovered from a
// measurement of the k-th eigenphase. Estimates are combined by lcm and
// accepted once a^r' ≡ 1 (mod N) verifies; if the shot budget runs out
// first the request fails with ErrNoResult, exactly as a real backend does
// when every measurement lands on a degenerate phase.
type Sampled struct {
	// Shots is the measurement budget per request. Zero or negative
	// models an unconfigured service: every call fails with
	// ErrBackendUnavailable.
	Shots int

	// Seed is extra key material for the shot stream. Requests with the
	// same (N, a, Seed) draw identical shot sequences.
	Seed []byte

	// Cutoff bounds the internal exact-order computation, as in Order.
	Cutoff uint64
}

// FindPeriod returns a verified period of a modulo N or ErrNoResult.
func (s Sampled) FindPeriod(ctx context.Context, N, a *big.Int) (uint64, error) {
	if s.Shots <= 0 {
		return 0, fmt.Errorf("shot budget %d: %w", s.Shots, ErrBackendUnavailable)
	}
	if err := checkBase(N, a); err != nil {
		return 0, err
	}

	// The simulated service knows the exact order; the driver never sees
	// it directly, only the per-shot estimates below.
	r0, err := Order{Cutoff: s.Cutoff}.FindPeriod(ctx, N, a)
	if err != nil {
		return 0, err
	}

	prng, err := utils.NewKeyedPRNG(shotKey(N, a, s.Seed))
	if err != nil {
		return 0, fmt.Errorf("oracle: keyed prng: %w", err)
	}

	acc := uint64(1)
	for shot := 0; shot < s.Shots; shot++ {
		if err := ctx.Err(); err != nil {
			return 0, err
		}
		k, err := uniformUint64(prng, r0)
		if err != nil {
			return 0, fmt.Errorf("oracle: shot %d: %w", shot, err)
		}
		est := r0 / utils.GCD(k, r0) // gcd(0, r0) = r0, so k=0 estimates 1
		acc = lcm(acc, est)
		// acc divides r0, so the verification below passes iff acc == r0.
		pow := new(big.Int).Exp(a, new(big.Int).SetUint64(acc), N)
		if acc > 1 && pow.Cmp(oneBig) == 0 {
			return acc, nil
		}
	}
	return 0, fmt.Errorf("no verified period in %d shots: %w", s.Shots, ErrNoResult)
}

// shotKey expands (N, a, seed) into PRNG key material with SHAKE-256.
// Fields are length-prefixed so distinct inputs never collide.
func shotKey(N, a *big.Int, seed []byte) []byte {
	h := sha3.NewShake256()
	h.Write([]byte(shotKeyLabel))
	for _, part := range [][]byte{N.Bytes(), a.Bytes(), seed} {
		var ln [8]byte
		binary.BigEndian.PutUint64(ln[:], uint64(len(part)))
		h.Write(ln[:])
		h.Write(part)
	}
	key := make([]byte, 32)
	h.Read(key)
	return key
}

// uniformUint64 draws a uniform value in [0, bound) from the PRNG by
// rejection sampling, so small bounds carry no modulo bias.
func uniformUint64(prng utils.PRNG, bound uint64) (uint64, error) {
	if bound == 0 {
		return 0, fmt.Errorf("oracle: zero sampling bound")
	}
	limit := ^uint64(0) - (^uint64(0) % bound)
	var buf [8]byte
	for {
		if _, err := prng.Read(buf[:]); err != nil {
			return 0, err
		}
		u := binary.LittleEndian.Uint64(buf[:])
		if u < limit {
			return u % bound, nil
		}
	}
}

func lcm(a, b uint64) uint64 {
	if a == 0 || b == 0 {
		return 0
	}
	return a / utils.GCD(a, b) * b
}
