package analytics

import "github.com/opencount/rcvcore/ballot"

// RankingDepth is the ranking-depth distribution of spec.md §4.5: how
// many ballots rank exactly k distinct candidates, overall and per
// first-choice candidate.
type RankingDepth struct {
	Overall           map[int]int
	PerCandidate      map[int]map[int]int
	TotalPerCandidate map[int]int
	TotalBallots      int
}

// ComputeRankingDepth builds the distribution from the canonical ballot
// set. k is len(Sequence): the loader already drops duplicate ranks
// within one ballot, so sequence length equals the count of distinct
// valid candidates.
func ComputeRankingDepth(ballots []ballot.Ballot) RankingDepth {
	d := RankingDepth{
		Overall:           map[int]int{},
		PerCandidate:      map[int]map[int]int{},
		TotalPerCandidate: map[int]int{},
	}

	for _, b := range ballots {
		k := len(b.Sequence)
		if k == 0 {
			continue
		}
		d.Overall[k] += b.Multiplicity
		d.TotalBallots += b.Multiplicity

		first := b.Sequence[0]
		if d.PerCandidate[first] == nil {
			d.PerCandidate[first] = map[int]int{}
		}
		d.PerCandidate[first][k] += b.Multiplicity
		d.TotalPerCandidate[first] += b.Multiplicity
	}

	return d
}
