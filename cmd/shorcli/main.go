package main

import (
	"context"
	"encoding/hex"
	"flag"
	"fmt"
	"log"
	"math/big"
	"os"
	"time"

	"shor-factoring/factor"
	"shor-factoring/oracle"
	"shor-factoring/prof"
)

func usage() {
	fmt.Println(`usage: shorcli <factor|order|sweep> [options]

Subcommands:
  factor   Factor a composite N with the classical Shor driver
           Flags:
             -N        <int>              modulus to factor (required)
             -attempts <int>              max random bases tried (default: 20)
             -backend  <order|sampled>    period oracle (default: order)
             -shots    <int>              sampled backend shot budget (default: 64)
             -seed     <hex>              sampled backend seed material
             -cutoff   <int>              order search cutoff (default: 2^20)
             -timeout  <duration>         per-attempt oracle deadline
             -v                           verbose: per-attempt telemetry + timings
           Output (stdout): N = p * q

  order    Print the multiplicative order of a base
           Flags:
             -N        <int>              modulus (required)
             -a        <int>              base coprime with N (required)
             -cutoff   <int>              order search cutoff (default: 2^20)

  sweep    Factor a builtin semiprime grid with both backends and print a
           summary table; see cmd/factor_sweep for JSONL/CSV reports`)
	os.Exit(1)
}

func main() {
	if len(os.Args) < 2 {
		usage()
	}
	switch os.Args[1] {
	case "factor":
		runFactor(os.Args[2:])
	case "order":
		runOrder(os.Args[2:])
	case "sweep":
		runSweep(os.Args[2:])
	default:
		usage()
	}
}

func parseBigFlag(fs *flag.FlagSet, raw, name string) *big.Int {
	if raw == "" {
		fs.Usage()
		os.Exit(2)
	}
	n, ok := new(big.Int).SetString(raw, 10)
	if !ok {
		log.Fatalf("invalid %s %q", name, raw)
	}
	return n
}

func runFactor(args []string) {
	fs := flag.NewFlagSet("factor", flag.ExitOnError)
	rawN := fs.String("N", "", "modulus to factor")
	attempts := fs.Int("attempts", factor.DefaultMaxAttempts, "max random bases tried")
	backend := fs.String("backend", "order", "period oracle: order|sampled")
	shots := fs.Int("shots", oracle.DefaultShots, "sampled backend shot budget")
	seedHex := fs.String("seed", "", "sampled backend seed material (hex)")
	cutoff := fs.Uint64("cutoff", oracle.DefaultOrderCutoff, "order search cutoff")
	timeout := fs.Duration("timeout", 0, "per-attempt oracle deadline")
	verbose := fs.Bool("v", false, "verbose telemetry")
	fs.Parse(args)

	N := parseBigFlag(fs, *rawN, "modulus")
	pf, err := buildBackend(*backend, *shots, *seedHex, *cutoff)
	if err != nil {
		log.Fatalf("backend: %v", err)
	}

	pair, err := factor.Factor(context.Background(), N, pf, factor.Config{
		MaxAttempts: *attempts,
		PerAttempt:  *timeout,
		Verbose:     *verbose,
	})
	if err != nil {
		log.Fatalf("factor: %v", err)
	}
	fmt.Printf("N = %s = %s\n", N, pair)

	if *verbose {
		printTimings()
	}
}

func runOrder(args []string) {
	fs := flag.NewFlagSet("order", flag.ExitOnError)
	rawN := fs.String("N", "", "modulus")
	rawA := fs.String("a", "", "base coprime with N")
	cutoff := fs.Uint64("cutoff", oracle.DefaultOrderCutoff, "order search cutoff")
	fs.Parse(args)

	N := parseBigFlag(fs, *rawN, "modulus")
	a := parseBigFlag(fs, *rawA, "base")
	r, err := oracle.Order{Cutoff: *cutoff}.FindPeriod(context.Background(), N, a)
	if err != nil {
		log.Fatalf("order: %v", err)
	}
	fmt.Printf("order of %s mod %s = %d\n", a, N, r)
}

// sweepGrid is the builtin semiprime list shared with cmd/factor_sweep.
var sweepGrid = []int64{15, 21, 33, 35, 39, 51, 55, 57, 65, 77, 85, 91}

func runSweep(args []string) {
	fs := flag.NewFlagSet("sweep", flag.ExitOnError)
	attempts := fs.Int("attempts", factor.DefaultMaxAttempts, "max random bases per modulus")
	shots := fs.Int("shots", oracle.DefaultShots, "sampled backend shot budget")
	fs.Parse(args)

	backends := []struct {
		name string
		pf   oracle.PeriodFinder
	}{
		{"order", oracle.Order{}},
		{"sampled", oracle.Sampled{Shots: *shots}},
	}
	for _, b := range backends {
		for _, n := range sweepGrid {
			N := big.NewInt(n)
			start := time.Now()
			pair, err := factor.Factor(context.Background(), N, b.pf, factor.Config{MaxAttempts: *attempts})
			elapsed := time.Since(start)
			if err != nil {
				fmt.Printf("%-8s N=%-6d error=%v\n", b.name, n, err)
				continue
			}
			fmt.Printf("%-8s N=%-6d %s  (%s)\n", b.name, n, pair, elapsed.Round(time.Microsecond))
		}
	}
}

func buildBackend(name string, shots int, seedHex string, cutoff uint64) (oracle.PeriodFinder, error) {
	switch name {
	case "order":
		return oracle.Order{Cutoff: cutoff}, nil
	case "sampled":
		var seed []byte
		if seedHex != "" {
			b, err := hex.DecodeString(seedHex)
			if err != nil {
				return nil, fmt.Errorf("invalid seed hex: %w", err)
			}
			seed = b
		}
		return oracle.Sampled{Shots: shots, Seed: seed, Cutoff: cutoff}, nil
	default:
		return nil, fmt.Errorf("unknown backend %q", name)
	}
}

func printTimings() {
	for _, s := range prof.Summarize(prof.SnapshotAndReset()) {
		fmt.Printf("%-24s calls=%d total=%s mean=%s max=%s\n",
			s.Label, s.Count, s.Total, s.Mean(), s.Max)
	}
}
