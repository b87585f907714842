package ballot

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
)

// Canonicalize groups raw, possibly duplicate-laden rank sequences into
// the canonical ballot form of spec.md §4.1: identical sequences are
// collapsed into one Ballot with a summed Multiplicity. Sequences with no
// valid rankings are dropped. The relative order of rank indices within
// each sequence is preserved untouched; only the set of distinct
// sequences and their counts matter, so the returned slice is sorted by
// sequence key for determinism (Q6) rather than by input order.
//
// Contract (§4.1): (a) two physically identical raw sequences are
// indistinguishable in the result; (b) the multiset of sequences is
// preserved; (c) empty sequences are dropped.
func Canonicalize(rawSequences [][]int) []Ballot {
	counts := make(map[string]int, len(rawSequences))
	sequences := make(map[string][]int, len(rawSequences))

	for _, seq := range rawSequences {
		if len(seq) == 0 {
			continue
		}
		key := sequenceKey(seq)
		if _, seen := sequences[key]; !seen {
			// Copy so later mutation of the caller's slice can't corrupt state.
			cp := make([]int, len(seq))
			copy(cp, seq)
			sequences[key] = cp
		}
		counts[key]++
	}

	keys := make([]string, 0, len(counts))
	for key := range counts {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	ballots := make([]Ballot, 0, len(keys))
	for _, key := range keys {
		ballots = append(ballots, Ballot{
			Sequence:     sequences[key],
			Multiplicity: counts[key],
		})
	}

	return ballots
}

// sequenceKey renders a rank sequence into a string suitable as a map key,
// distinguishing e.g. [1, 23] from [12, 3].
func sequenceKey(seq []int) string {
	var b strings.Builder
	for i, idx := range seq {
		if i > 0 {
			b.WriteByte(',')
		}
		b.WriteString(strconv.Itoa(idx))
	}

	return b.String()
}

// Validate checks that every rank sequence references only candidate
// indices present in candidateCount (the number of candidates in the
// contest, indices [0, candidateCount)). Returns an error wrapping
// ErrCandidateIndexOutOfRange that carries the offending index, on the
// first violation.
func Validate(ballots []Ballot, candidateCount int) error {
	for _, b := range ballots {
		for _, idx := range b.Sequence {
			if idx < 0 || idx >= candidateCount {
				return fmt.Errorf("%w: index %d", ErrCandidateIndexOutOfRange, idx)
			}
		}
	}

	return nil
}

// Expand allocates one RuntimeBallot per physical ballot represented by
// ballots, per spec.md §4.1's "one-time allocation at the start of
// tabulation". Every RuntimeBallot sharing a Ballot's Sequence points at
// the same backing slice (read-only during tabulation) but owns distinct
// Weight/Cursor state.
func Expand(ballots []Ballot) []*RuntimeBallot {
	total := 0
	for _, b := range ballots {
		total += b.Multiplicity
	}

	runtime := make([]*RuntimeBallot, 0, total)
	for _, b := range ballots {
		for i := 0; i < b.Multiplicity; i++ {
			runtime = append(runtime, &RuntimeBallot{
				Sequence: b.Sequence,
				Weight:   1.0,
				Cursor:   0,
			})
		}
	}

	return runtime
}

// TotalMultiplicity sums Multiplicity across ballots — the N of spec.md's
// Droop quota formula when quotaBallotCount is not overridden.
func TotalMultiplicity(ballots []Ballot) int {
	n := 0
	for _, b := range ballots {
		n += b.Multiplicity
	}

	return n
}
