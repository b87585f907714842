// Package analytics computes the ballot-level analytic tables defined in
// spec.md §4.4-4.5 (components D, E): pairwise preferences, first
// alternate, first-to-final, and ranking-depth distribution. All three
// pairwise-style tables are computed from the canonical ballot set, not
// the round trace, with the single exception of first-to-final, which
// additionally needs the trace's cumulative eliminated set.
package analytics

import (
	"encoding/json"
	"sort"

	"github.com/opencount/rcvcore/ballot"
)

// Cell is one entry of a pairwise-style table: a numerator, a
// denominator, and their ratio (0 when the denominator is 0; no
// smoothing, per spec.md §4.4).
type Cell struct {
	Numerator   int
	Denominator int
	Fraction    float64
}

func newCell(num, denom int) Cell {
	c := Cell{Numerator: num, Denominator: denom}
	if denom > 0 {
		c.Fraction = float64(num) / float64(denom)
	}

	return c
}

// buildRow backfills one AllocateeTable row for first-choice candidate
// self: every other candidate index plus Exhausted gets a Cell, even
// when counts holds no entry for it, so denom is uniformly `denom`
// across the whole row (spec.md §8 Q9) rather than only across the
// columns that happened to receive a ballot.
func buildRow(denom int, counts map[ballot.Allocatee]int, candidates []ballot.Candidate, self int) map[ballot.Allocatee]Cell {
	row := make(map[ballot.Allocatee]Cell, len(candidates))
	for _, c := range candidates {
		if c.Index == self {
			continue
		}
		col := ballot.Elect(c.Index)
		row[col] = newCell(counts[col], denom)
	}
	row[ballot.Exhausted] = newCell(counts[ballot.Exhausted], denom)

	return row
}

// PairwiseTable holds P[A][B] for every ordered pair of distinct
// candidate indices (spec.md §4.4). It is not symmetric: both P[A][B]
// and P[B][A] can be nonzero relative to their shared denominator, but
// neither counts ballots that rank neither A nor B.
type PairwiseTable struct {
	cells map[[2]int]Cell
}

// At returns the Cell for (a, b); the zero Cell if a == b or the pair
// was never populated (no ballot ranked either).
func (t PairwiseTable) At(a, b int) Cell {
	return t.cells[[2]int{a, b}]
}

// AllocateeTable holds rows indexed by a first-choice candidate index
// and columns indexed by Allocatee (every other candidate plus
// Exhausted), used for both the first-alternate and first-to-final
// tables (spec.md §4.4).
type AllocateeTable struct {
	cells map[int]map[ballot.Allocatee]Cell
}

// At returns the Cell for row candidate `from` and column `to`; the
// zero Cell if `from` never had a first-choice ballot or `to` was never
// populated in that row.
func (t AllocateeTable) At(from int, to ballot.Allocatee) Cell {
	row := t.cells[from]
	if row == nil {
		return Cell{}
	}

	return row[to]
}

// Columns reports the set of Allocatee columns present for row `from`
// — every other candidate plus Exhausted once the row exists at all
// (FirstAlternate/FirstToFinal backfill every column so denom stays
// uniform per spec.md §8 Q9) — for callers that want to iterate a row
// without guessing its column set in advance.
func (t AllocateeTable) Columns(from int) []ballot.Allocatee {
	row := t.cells[from]
	out := make([]ballot.Allocatee, 0, len(row))
	for col := range row {
		out = append(out, col)
	}

	return out
}

// pairwiseEntry is one populated (A, B) pair of a PairwiseTable, flattened
// for JSON since a [2]int map key has no direct JSON object-key encoding.
type pairwiseEntry struct {
	A    int  `json:"a"`
	B    int  `json:"b"`
	Cell Cell `json:"cell"`
}

// MarshalJSON flattens the table to a slice of entries sorted by (A asc, B
// asc), so the wire form is stable across runs (spec.md §8 Q6).
func (t PairwiseTable) MarshalJSON() ([]byte, error) {
	entries := make([]pairwiseEntry, 0, len(t.cells))
	for pair, cell := range t.cells {
		entries = append(entries, pairwiseEntry{A: pair[0], B: pair[1], Cell: cell})
	}
	sort.Slice(entries, func(i, j int) bool {
		if entries[i].A != entries[j].A {
			return entries[i].A < entries[j].A
		}

		return entries[i].B < entries[j].B
	})

	return json.Marshal(entries)
}

// allocateeEntry is one populated (from, to) row/column pair of an
// AllocateeTable, flattened for JSON the same way pairwiseEntry is.
type allocateeEntry struct {
	From int              `json:"from"`
	To   ballot.Allocatee `json:"to"`
	Cell Cell             `json:"cell"`
}

// MarshalJSON flattens the table to a slice of entries sorted by (From asc,
// To asc).
func (t AllocateeTable) MarshalJSON() ([]byte, error) {
	entries := make([]allocateeEntry, 0)
	for from, row := range t.cells {
		for to, cell := range row {
			entries = append(entries, allocateeEntry{From: from, To: to, Cell: cell})
		}
	}
	sort.Slice(entries, func(i, j int) bool {
		if entries[i].From != entries[j].From {
			return entries[i].From < entries[j].From
		}

		return entries[i].To < entries[j].To
	})

	return json.Marshal(entries)
}
