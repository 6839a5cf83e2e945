package main

import (
	"bufio"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"sort"
	"strconv"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/components"
	"github.com/go-echarts/go-echarts/v2/opts"
)

// Mirrors cmd/factor_sweep Report.
type sweepReport struct {
	N         string           `json:"N"`
	Backend   string           `json:"Backend"`
	Attempts  int              `json:"Attempts"`
	RefPeriod uint64           `json:"RefPeriod"`
	FactorP   string           `json:"FactorP"`
	FactorQ   string           `json:"FactorQ"`
	Err       string           `json:"Err"`
	TimingsUS map[string]int64 `json:"TimingsUS"`
}

type sweepRecord struct {
	Stage  string      `json:"stage"`
	Report sweepReport `json:"report"`
}

func readSweep(path string) ([]sweepReport, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var rows []sweepReport
	sc := bufio.NewScanner(f)
	for sc.Scan() {
		line := sc.Bytes()
		if len(line) == 0 {
			continue
		}
		var rec sweepRecord
		if err := json.Unmarshal(line, &rec); err != nil {
			return nil, fmt.Errorf("decode sweep line: %w", err)
		}
		rows = append(rows, rec.Report)
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}
	return rows, nil
}

func attemptsScatter(rows []sweepReport) *charts.Scatter {
	sc := charts.NewScatter()
	sc.SetGlobalOptions(
		charts.WithTitleOpts(opts.Title{
			Title: "Oracle attempts per modulus",
		}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true), Trigger: "item"}),
		charts.WithLegendOpts(opts.Legend{Show: opts.Bool(true)}),
		charts.WithXAxisOpts(opts.XAxis{
			Name: "N",
			Type: "value",
		}),
		charts.WithYAxisOpts(opts.YAxis{
			Name: "oracle round trips",
			Type: "value",
		}),
	)

	byBackend := make(map[string][]opts.ScatterData)
	for _, r := range rows {
		if r.Err != "" {
			continue
		}
		n, err := strconv.ParseFloat(r.N, 64)
		if err != nil {
			continue
		}
		byBackend[r.Backend] = append(byBackend[r.Backend], opts.ScatterData{
			Value: []interface{}{n, r.Attempts},
		})
	}
	names := make([]string, 0, len(byBackend))
	for name := range byBackend {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		sc.AddSeries(name, byBackend[name],
			charts.WithScatterChartOpts(opts.ScatterChart{Symbol: "circle", SymbolSize: 8}),
		)
	}
	return sc
}

func periodBar(rows []sweepReport) *charts.Bar {
	bar := charts.NewBar()
	bar.SetGlobalOptions(
		charts.WithTitleOpts(opts.Title{
			Title:    "Reference period (order of 2 mod N)",
			Subtitle: "larger periods mean more work for the period oracle",
		}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true)}),
	)

	seen := make(map[string]uint64)
	var labels []string
	for _, r := range rows {
		if r.RefPeriod == 0 {
			continue
		}
		if _, ok := seen[r.N]; !ok {
			labels = append(labels, r.N)
		}
		seen[r.N] = r.RefPeriod
	}
	sort.Slice(labels, func(i, j int) bool {
		a, _ := strconv.ParseInt(labels[i], 10, 64)
		b, _ := strconv.ParseInt(labels[j], 10, 64)
		return a < b
	})
	items := make([]opts.BarData, 0, len(labels))
	for _, l := range labels {
		items = append(items, opts.BarData{Value: seen[l]})
	}
	bar.SetXAxis(labels).AddSeries("period", items)
	return bar
}

func main() {
	in := flag.String("in", "Additionnals/factor_sweep.jsonl", "sweep JSONL input")
	out := flag.String("out", "Additionnals/factor_sweep.html", "HTML output")
	flag.Parse()

	rows, err := readSweep(*in)
	if err != nil {
		fmt.Fprintf(os.Stderr, "read sweep: %v\n", err)
		os.Exit(1)
	}
	if len(rows) == 0 {
		fmt.Fprintf(os.Stderr, "no sweep rows in %s\n", *in)
		os.Exit(1)
	}

	page := components.NewPage().SetPageTitle("Factor sweep")
	page.AddCharts(attemptsScatter(rows), periodBar(rows))

	f, err := os.Create(*out)
	if err != nil {
		fmt.Fprintf(os.Stderr, "create %s: %v\n", *out, err)
		os.Exit(1)
	}
	defer f.Close()
	if err := page.Render(f); err != nil {
		fmt.Fprintf(os.Stderr, "render: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("wrote %s (%d rows)\n", *out, len(rows))
}
