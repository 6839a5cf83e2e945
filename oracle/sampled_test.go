package oracle

import (
	"context"
	"errors"
	"math/big"
	"testing"
)

func TestSampledFindsExactOrder(t *testing.T) {
	cases := []struct {
		n, a int64
		want uint64
	}{
		{21, 2, 6},
		{15, 7, 4},
		{35, 2, 12},
	}
	backend := Sampled{Shots: 64, Seed: []byte("vector-a")}
	for _, c := range cases {
		r, err := backend.FindPeriod(context.Background(), big.NewInt(c.n), big.NewInt(c.a))
		if err != nil {
			t.Fatalf("sampled period of %d mod %d: %v", c.a, c.n, err)
		}
		if r != c.want {
			t.Fatalf("sampled period of %d mod %d = %d, want %d", c.a, c.n, r, c.want)
		}
	}
}

func TestSampledIsDeterministicPerSeed(t *testing.T) {
	N, a := big.NewInt(21), big.NewInt(2)
	b1 := Sampled{Shots: 64, Seed: []byte("seed-1")}
	b2 := Sampled{Shots: 64, Seed: []byte("seed-1")}
	r1, err1 := b1.FindPeriod(context.Background(), N, a)
	r2, err2 := b2.FindPeriod(context.Background(), N, a)
	if err1 != nil || err2 != nil {
		t.Fatalf("sampled calls failed: %v, %v", err1, err2)
	}
	if r1 != r2 {
		t.Fatalf("same seed diverged: %d vs %d", r1, r2)
	}
}

func TestSampledUnavailableWithoutShots(t *testing.T) {
	for _, shots := range []int{0, -1} {
		_, err := Sampled{Shots: shots}.FindPeriod(context.Background(), big.NewInt(21), big.NewInt(2))
		if !errors.Is(err, ErrBackendUnavailable) {
			t.Fatalf("shots=%d: got %v, want ErrBackendUnavailable", shots, err)
		}
	}
}

func TestSampledNoResultWhenOrderExceedsCutoff(t *testing.T) {
	_, err := Sampled{Shots: 8, Cutoff: 2}.FindPeriod(context.Background(), big.NewInt(21), big.NewInt(2))
	if !errors.Is(err, ErrNoResult) {
		t.Fatalf("got %v, want ErrNoResult", err)
	}
}

func TestSampledRejectsBadBase(t *testing.T) {
	if _, err := (Sampled{Shots: 8}).FindPeriod(context.Background(), big.NewInt(21), big.NewInt(7)); err == nil {
		t.Fatal("expected error for base sharing a factor")
	}
}
