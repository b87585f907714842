package analytics

import (
	"github.com/opencount/rcvcore/ballot"
	"github.com/opencount/rcvcore/roundtrace"
)

// FirstAlternate computes F (spec.md §4.4): rows are first-choice
// candidates; for first-choice A, num[A][c] counts ballots whose second
// rank is c, and num[A][Exhausted] counts ballots with no resolvable
// second rank. denom[A][·] is uniform across every column in row A,
// equal to A's first-choice count (spec.md §8 Q9) — every other
// candidate plus Exhausted gets a row entry, zero-numerator or not.
func FirstAlternate(candidates []ballot.Candidate, ballots []ballot.Ballot) AllocateeTable {
	firstCount := map[int]int{}
	secondCount := map[int]map[ballot.Allocatee]int{}

	for _, b := range ballots {
		if len(b.Sequence) == 0 {
			continue
		}
		first := b.Sequence[0]
		firstCount[first] += b.Multiplicity

		second := ballot.Exhausted
		if len(b.Sequence) > 1 {
			second = ballot.Elect(b.Sequence[1])
		}
		if secondCount[first] == nil {
			secondCount[first] = map[ballot.Allocatee]int{}
		}
		secondCount[first][second] += b.Multiplicity
	}

	cells := make(map[int]map[ballot.Allocatee]Cell, len(firstCount))
	for first, denom := range firstCount {
		cells[first] = buildRow(denom, secondCount[first], candidates, first)
	}

	return AllocateeTable{cells: cells}
}

// FirstToFinal computes T (spec.md §4.4): rows are first-choice
// candidates; a ballot's "final" allocatee is the earliest rank on the
// ballot whose candidate was never eliminated across the full trace, or
// Exhausted if every ranked candidate was eliminated. This is the one
// pairwise-style table that consults the round trace rather than only
// the canonical ballot set. Like FirstAlternate, every row is backfilled
// with a uniform denominator across every column (spec.md §8 Q9).
func FirstToFinal(candidates []ballot.Candidate, ballots []ballot.Ballot, trace *roundtrace.Trace) AllocateeTable {
	eliminated := map[int]bool{}
	for _, r := range trace.Rounds {
		for _, idx := range r.Eliminated {
			eliminated[idx] = true
		}
	}

	firstCount := map[int]int{}
	finalCount := map[int]map[ballot.Allocatee]int{}

	for _, b := range ballots {
		if len(b.Sequence) == 0 {
			continue
		}
		first := b.Sequence[0]
		firstCount[first] += b.Multiplicity

		final := ballot.Exhausted
		for _, idx := range b.Sequence {
			if !eliminated[idx] {
				final = ballot.Elect(idx)
				break
			}
		}
		if finalCount[first] == nil {
			finalCount[first] = map[ballot.Allocatee]int{}
		}
		finalCount[first][final] += b.Multiplicity
	}

	cells := make(map[int]map[ballot.Allocatee]Cell, len(firstCount))
	for first, denom := range firstCount {
		cells[first] = buildRow(denom, finalCount[first], candidates, first)
	}

	return AllocateeTable{cells: cells}
}
