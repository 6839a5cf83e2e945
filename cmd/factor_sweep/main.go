package main

import (
	"bufio"
	"context"
	"encoding/csv"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"math/big"
	"os"
	"strconv"
	"strings"

	"shor-factoring/factor"
	"shor-factoring/oracle"
	"shor-factoring/prof"
)

const (
	defaultModuliSpec = "15,21,33,35,39,51,55,57,65,77,85,91"
	defaultBackends   = "order,sampled"
	defaultJSONLPath  = "Additionnals/factor_sweep.jsonl"
	defaultCSVPath    = "Additionnals/factor_sweep.csv"
)

// Report is one modulus/backend trial; consumed by
// Additionnals/plot_factor_sweep.go.
type Report struct {
	N       string `json:"N"`
	Backend string `json:"Backend"`
	// Attempts is the number of oracle round trips the driver made; zero
	// means the run short-circuited classically (even N or shared factor).
	Attempts int `json:"Attempts"`
	// RefPeriod is the multiplicative order of 2 modulo N, recomputed per
	// trial so plots can relate period magnitude to N.
	RefPeriod uint64           `json:"RefPeriod,omitempty"`
	FactorP   string           `json:"FactorP,omitempty"`
	FactorQ   string           `json:"FactorQ,omitempty"`
	Err       string           `json:"Err,omitempty"`
	TimingsUS map[string]int64 `json:"TimingsUS"`
}

type record struct {
	Stage  string `json:"stage"`
	Report Report `json:"report"`
}

type Runner struct {
	jsonFile         *os.File
	jsonBuf          *bufio.Writer
	jsonEnc          *json.Encoder
	csvFile          *os.File
	csvWriter        *csv.Writer
	csvHeaderWritten bool
}

func newRunner(jsonlPath, csvPath string) (*Runner, error) {
	jf, err := os.Create(jsonlPath)
	if err != nil {
		return nil, fmt.Errorf("create %s: %w", jsonlPath, err)
	}
	cf, err := os.Create(csvPath)
	if err != nil {
		jf.Close()
		return nil, fmt.Errorf("create %s: %w", csvPath, err)
	}
	buf := bufio.NewWriter(jf)
	return &Runner{
		jsonFile:  jf,
		jsonBuf:   buf,
		jsonEnc:   json.NewEncoder(buf),
		csvFile:   cf,
		csvWriter: csv.NewWriter(cf),
	}, nil
}

func (r *Runner) emit(rep Report) error {
	if err := r.jsonEnc.Encode(record{Stage: "trial", Report: rep}); err != nil {
		return err
	}
	if !r.csvHeaderWritten {
		if err := r.csvWriter.Write([]string{"N", "backend", "attempts", "period", "p", "q", "err", "oracle_us"}); err != nil {
			return err
		}
		r.csvHeaderWritten = true
	}
	return r.csvWriter.Write([]string{
		rep.N,
		rep.Backend,
		strconv.Itoa(rep.Attempts),
		strconv.FormatUint(rep.RefPeriod, 10),
		rep.FactorP,
		rep.FactorQ,
		rep.Err,
		strconv.FormatInt(rep.TimingsUS[factor.TrackOracleCall], 10),
	})
}

func (r *Runner) Close() error {
	r.csvWriter.Flush()
	if err := r.csvWriter.Error(); err != nil {
		return err
	}
	if err := r.csvFile.Close(); err != nil {
		return err
	}
	if err := r.jsonBuf.Flush(); err != nil {
		return err
	}
	return r.jsonFile.Close()
}

func parseModuli(spec string) ([]*big.Int, error) {
	var out []*big.Int
	for _, tok := range strings.Split(spec, ",") {
		tok = strings.TrimSpace(tok)
		if tok == "" {
			continue
		}
		n, ok := new(big.Int).SetString(tok, 10)
		if !ok {
			return nil, fmt.Errorf("invalid modulus %q", tok)
		}
		out = append(out, n)
	}
	if len(out) == 0 {
		return nil, fmt.Errorf("empty modulus list")
	}
	return out, nil
}

type backend struct {
	name string
	pf   oracle.PeriodFinder
}

func buildBackends(spec string, shots int, seed string) ([]backend, error) {
	var out []backend
	for _, tok := range strings.Split(spec, ",") {
		switch strings.TrimSpace(tok) {
		case "order":
			out = append(out, backend{"order", oracle.Order{}})
		case "sampled":
			out = append(out, backend{"sampled", oracle.Sampled{Shots: shots, Seed: []byte(seed)}})
		case "":
		default:
			return nil, fmt.Errorf("unknown backend %q", tok)
		}
	}
	if len(out) == 0 {
		return nil, fmt.Errorf("empty backend list")
	}
	return out, nil
}

func main() {
	moduliSpec := flag.String("moduli", defaultModuliSpec, "comma-separated list of moduli")
	backendSpec := flag.String("backends", defaultBackends, "comma-separated backends: order,sampled")
	attempts := flag.Int("attempts", factor.DefaultMaxAttempts, "max random bases per trial")
	shots := flag.Int("shots", oracle.DefaultShots, "sampled backend shot budget")
	seed := flag.String("seed", "sweep", "sampled backend seed material")
	rngSeed := flag.Int64("rng-seed", 1, "base selection seed, for reproducible sweeps")
	jsonlPath := flag.String("out", defaultJSONLPath, "JSONL output path")
	csvPath := flag.String("csv", defaultCSVPath, "CSV output path")
	flag.Parse()

	moduli, err := parseModuli(*moduliSpec)
	if err != nil {
		log.Fatalf("moduli: %v", err)
	}
	backends, err := buildBackends(*backendSpec, *shots, *seed)
	if err != nil {
		log.Fatalf("backends: %v", err)
	}
	runner, err := newRunner(*jsonlPath, *csvPath)
	if err != nil {
		log.Fatalf("open outputs: %v", err)
	}

	trials := 0
	for _, b := range backends {
		for _, N := range moduli {
			rep := runTrial(N, b.name, b.pf, *attempts, *rngSeed)
			if err := runner.emit(rep); err != nil {
				log.Fatalf("emit: %v", err)
			}
			trials++
		}
	}
	if err := runner.Close(); err != nil {
		log.Fatalf("close outputs: %v", err)
	}
	fmt.Printf("wrote %d trials to %s and %s\n", trials, *jsonlPath, *csvPath)
}

func runTrial(N *big.Int, backendName string, pf oracle.PeriodFinder, attempts int, rngSeed int64) Report {
	prof.SnapshotAndReset() // drop entries from previous trials
	rep := Report{N: N.String(), Backend: backendName, TimingsUS: map[string]int64{}}

	pair, err := factor.Factor(context.Background(), N, pf, factor.Config{
		MaxAttempts: attempts,
		Rand:        factor.NewRNG(rngSeed),
	})

	stats := prof.Summarize(prof.SnapshotAndReset())
	for _, s := range stats {
		rep.TimingsUS[s.Label] = s.Total.Microseconds()
		if s.Label == factor.TrackOracleCall {
			rep.Attempts = s.Count
		}
	}
	if err != nil {
		rep.Err = err.Error()
		return rep
	}
	rep.FactorP = pair.P.String()
	rep.FactorQ = pair.Q.String()
	if N.Bit(0) == 1 {
		if r, oerr := (oracle.Order{}).FindPeriod(context.Background(), N, big.NewInt(2)); oerr == nil {
			rep.RefPeriod = r
		}
	}
	return rep
}
