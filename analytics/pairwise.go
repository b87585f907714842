package analytics

import "github.com/opencount/rcvcore/ballot"

// PairwisePreferences computes P (spec.md §4.4): for every ordered pair
// of distinct candidates (A, B), the denominator counts ballots ranking
// at least one of A, B, and the numerator counts, within that set, the
// ballots on which A is preferred over B (A ranked and B not, or both
// ranked with A's position lower).
func PairwisePreferences(candidates []ballot.Candidate, ballots []ballot.Ballot) PairwiseTable {
	numer := map[[2]int]int{}
	denom := map[[2]int]int{}

	for _, b := range ballots {
		rank := rankPositions(b.Sequence)

		for _, ca := range candidates {
			for _, cb := range candidates {
				if ca.Index == cb.Index {
					continue
				}

				posA, rankedA := rank[ca.Index]
				posB, rankedB := rank[cb.Index]
				if !rankedA && !rankedB {
					continue
				}

				key := [2]int{ca.Index, cb.Index}
				denom[key] += b.Multiplicity

				preferred := (rankedA && !rankedB) || (rankedA && rankedB && posA < posB)
				if preferred {
					numer[key] += b.Multiplicity
				}
			}
		}
	}

	cells := make(map[[2]int]Cell, len(denom))
	for key, d := range denom {
		cells[key] = newCell(numer[key], d)
	}

	return PairwiseTable{cells: cells}
}

func rankPositions(seq []int) map[int]int {
	positions := make(map[int]int, len(seq))
	for pos, idx := range seq {
		positions[idx] = pos
	}

	return positions
}
