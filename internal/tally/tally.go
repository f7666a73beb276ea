// Package tally counts error signatures across a regression and renders the
// frequency report.
package tally

import "sort"

// Entry is one signature's line in the report.
type Entry struct {
	Signature string
	Count     int
	Runs      int // distinct runs the signature appeared in
	Configs   int // distinct configurations the signature appeared in
}

type counter struct {
	count     int
	firstSeen int
	runs      map[runKey]struct{}
	configs   map[string]struct{}
}

type runKey struct{ config, seed string }

// Tally maps signatures to occurrence counts, remembering first-seen order
// for deterministic tie-breaks. Not safe for concurrent use.
type Tally struct {
	bySig map[string]*counter
	total int
}

// New returns an empty Tally.
func New() *Tally {
	return &Tally{bySig: make(map[string]*counter)}
}

// Add records one occurrence of sig in the given configuration and run.
func (t *Tally) Add(config, seed, sig string) {
	c, ok := t.bySig[sig]
	if !ok {
		c = &counter{
			firstSeen: len(t.bySig),
			runs:      make(map[runKey]struct{}),
			configs:   make(map[string]struct{}),
		}
		t.bySig[sig] = c
	}
	c.count++
	c.runs[runKey{config, seed}] = struct{}{}
	c.configs[config] = struct{}{}
	t.total++
}

// Count returns the occurrences recorded for sig.
func (t *Tally) Count(sig string) int {
	if c, ok := t.bySig[sig]; ok {
		return c.count
	}
	return 0
}

// Total returns the occurrences recorded across all signatures.
func (t *Tally) Total() int { return t.total }

// Len returns the number of distinct signatures.
func (t *Tally) Len() int { return len(t.bySig) }

// Entries returns signatures by descending count, ties by first-seen order.
func (t *Tally) Entries() []Entry {
	type ranked struct {
		Entry
		firstSeen int
	}
	rows := make([]ranked, 0, len(t.bySig))
	for sig, c := range t.bySig {
		rows = append(rows, ranked{
			Entry:     Entry{Signature: sig, Count: c.count, Runs: len(c.runs), Configs: len(c.configs)},
			firstSeen: c.firstSeen,
		})
	}
	sort.Slice(rows, func(i, j int) bool {
		if rows[i].Count != rows[j].Count {
			return rows[i].Count > rows[j].Count
		}
		return rows[i].firstSeen < rows[j].firstSeen
	})
	out := make([]Entry, len(rows))
	for i, r := range rows {
		out[i] = r.Entry
	}
	return out
}
