package oracle

import (
	"context"
	"errors"
	"math/big"
	"testing"
)

func TestOrderKnownValues(t *testing.T) {
	cases := []struct {
		n, a int64
		want uint64
	}{
		{15, 2, 4},
		{15, 4, 2},
		{15, 7, 4},
		{15, 14, 2},
		{21, 2, 6},
		{21, 5, 6},
		{21, 8, 2},
		{21, 13, 2},
		{35, 2, 12},
	}
	for _, c := range cases {
		r, err := Order{}.FindPeriod(context.Background(), big.NewInt(c.n), big.NewInt(c.a))
		if err != nil {
			t.Fatalf("order of %d mod %d: %v", c.a, c.n, err)
		}
		if r != c.want {
			t.Fatalf("order of %d mod %d = %d, want %d", c.a, c.n, r, c.want)
		}
	}
}

func TestOrderCutoff(t *testing.T) {
	_, err := Order{Cutoff: 3}.FindPeriod(context.Background(), big.NewInt(15), big.NewInt(2))
	if !errors.Is(err, ErrNoResult) {
		t.Fatalf("got %v, want ErrNoResult", err)
	}
}

func TestOrderRejectsBadBases(t *testing.T) {
	cases := []struct{ n, a int64 }{
		{15, 5},  // shares a factor
		{15, 1},  // below range
		{15, 15}, // at N
		{15, 20}, // above range
	}
	for _, c := range cases {
		if _, err := (Order{}).FindPeriod(context.Background(), big.NewInt(c.n), big.NewInt(c.a)); err == nil {
			t.Fatalf("order of %d mod %d: expected error", c.a, c.n)
		}
	}
}

func TestOrderContextCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	// Order of 2 modulo a large semiprime runs long enough to hit a poll.
	N := new(big.Int).Mul(big.NewInt(999983), big.NewInt(1000003))
	_, err := Order{}.FindPeriod(ctx, N, big.NewInt(2))
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("got %v, want context.Canceled", err)
	}
}
