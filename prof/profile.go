package prof

import (
	"sort"
	"sync"
	"time"
)

// Entry represents a single timing measurement.
type Entry struct {
	Label string
	Dur   time.Duration
}

// Stat aggregates the entries recorded under one label.
type Stat struct {
	Label string
	Count int
	Total time.Duration
	Max   time.Duration
}

// Mean returns the average duration per recorded entry.
func (s Stat) Mean() time.Duration {
	if s.Count == 0 {
		return 0
	}
	return s.Total / time.Duration(s.Count)
}

var (
	mu     sync.Mutex
	record []Entry
)

// Track logs the duration since start with the given name.
func Track(start time.Time, name string) {
	elapsed := time.Since(start)
	mu.Lock()
	record = append(record, Entry{Label: name, Dur: elapsed})
	mu.Unlock()
}

// SnapshotAndReset returns the collected timing entries and clears them.
func SnapshotAndReset() []Entry {
	mu.Lock()
	defer mu.Unlock()
	out := make([]Entry, len(record))
	copy(out, record)
	record = nil
	return out
}

// Summarize folds entries into per-label stats, sorted by label.
func Summarize(entries []Entry) []Stat {
	byLabel := make(map[string]*Stat)
	for _, e := range entries {
		s, ok := byLabel[e.Label]
		if !ok {
			s = &Stat{Label: e.Label}
			byLabel[e.Label] = s
		}
		s.Count++
		s.Total += e.Dur
		if e.Dur > s.Max {
			s.Max = e.Dur
		}
	}
	out := make([]Stat, 0, len(byLabel))
	for _, s := range byLabel {
		out = append(out, *s)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Label < out[j].Label })
	return out
}
