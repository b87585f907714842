package analytics_test

import (
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"

	"github.com/opencount/rcvcore/analytics"
	"github.com/opencount/rcvcore/ballot"
)

// AnalyticsSuite exercises the pairwise, first-alternate, first-to-final
// and ranking-depth computations against spec.md's literal scenarios.
type AnalyticsSuite struct {
	suite.Suite
}

func candidates(names ...string) []ballot.Candidate {
	out := make([]ballot.Candidate, len(names))
	for i, n := range names {
		out[i] = ballot.Candidate{Index: i, Name: n}
	}

	return out
}

func raw(seq []int, times int) [][]int {
	out := make([][]int, times)
	for i := range out {
		out[i] = seq
	}

	return out
}

func s1Ballots() []ballot.Ballot {
	var all [][]int
	all = append(all, raw([]int{0, 1}, 40)...)    // Alice > Bob
	all = append(all, raw([]int{1, 0}, 35)...)    // Bob > Alice
	all = append(all, raw([]int{2, 0, 1}, 25)...) // Carol > Alice > Bob

	return ballot.Canonicalize(all)
}

// TestScenarioS5FirstAlternate is spec.md §8 Scenario S5.
func (s *AnalyticsSuite) TestScenarioS5FirstAlternate() {
	ballots := s1Ballots()
	f := analytics.FirstAlternate(candidates("Alice", "Bob", "Carol"), ballots)

	alice := f.At(0, ballot.Elect(1))
	require.Equal(s.T(), 40, alice.Denominator)
	require.Equal(s.T(), 40, alice.Numerator)
	require.Equal(s.T(), 0, f.At(0, ballot.Exhausted).Numerator)
	require.Equal(s.T(), 40, f.At(0, ballot.Exhausted).Denominator, "unpopulated column must still carry row A's denominator")

	bob := f.At(1, ballot.Elect(0))
	require.Equal(s.T(), 35, bob.Denominator)
	require.Equal(s.T(), 35, bob.Numerator)

	carol := f.At(2, ballot.Elect(0))
	require.Equal(s.T(), 25, carol.Denominator)
	require.Equal(s.T(), 25, carol.Numerator)
	require.Equal(s.T(), 0, f.At(2, ballot.Elect(1)).Numerator)
	require.Equal(s.T(), 25, f.At(2, ballot.Elect(1)).Denominator, "Bob never occurs as Carol's second choice but still carries Carol's denominator")
	require.Equal(s.T(), 0, f.At(2, ballot.Exhausted).Numerator)
	require.Equal(s.T(), 25, f.At(2, ballot.Exhausted).Denominator)
}

// TestScenarioS6Pairwise is spec.md §8 Scenario S6.
func (s *AnalyticsSuite) TestScenarioS6Pairwise() {
	ballots := s1Ballots()
	p := analytics.PairwisePreferences(candidates("Alice", "Bob", "Carol"), ballots)

	aliceOverBob := p.At(0, 1)
	require.Equal(s.T(), 100, aliceOverBob.Denominator)
	require.Equal(s.T(), 65, aliceOverBob.Numerator)
	require.InDelta(s.T(), 0.65, aliceOverBob.Fraction, 1e-9)

	bobOverAlice := p.At(1, 0)
	require.Equal(s.T(), 100, bobOverAlice.Denominator)
	require.Equal(s.T(), 35, bobOverAlice.Numerator)
}

// TestQ8PairwiseTotality is spec.md §8 Q8: for every ballot ranking both
// A and B, exactly one of A>B or B>A is counted.
func (s *AnalyticsSuite) TestQ8PairwiseTotality() {
	ballots := s1Ballots()
	p := analytics.PairwisePreferences(candidates("Alice", "Bob", "Carol"), ballots)

	ab := p.At(0, 1)
	ba := p.At(1, 0)
	require.Equal(s.T(), ab.Denominator, ba.Denominator)
	require.Equal(s.T(), ab.Denominator, ab.Numerator+ba.Numerator)
}

// TestQ9FirstAlternateDenomUniform is spec.md §8 Q9: denom is identical
// across every column in a row, equal to the first-choice count — this
// must hold for every (first, candidate-or-Exhausted) column, including
// ones no ballot actually transitioned into.
func (s *AnalyticsSuite) TestQ9FirstAlternateDenomUniform() {
	ballots := s1Ballots()
	cands := candidates("Alice", "Bob", "Carol")
	f := analytics.FirstAlternate(cands, ballots)

	firstCount := map[int]int{0: 40, 1: 35, 2: 25}
	for row, want := range firstCount {
		for _, c := range cands {
			if c.Index == row {
				continue
			}
			require.Equal(s.T(), want, f.At(row, ballot.Elect(c.Index)).Denominator)
		}
		require.Equal(s.T(), want, f.At(row, ballot.Exhausted).Denominator)
	}
}

// TestQ10RankingDepthTotals is spec.md §8 Q10: Σ_k overall[k] ==
// totalBallots.
func (s *AnalyticsSuite) TestQ10RankingDepthTotals() {
	ballots := s1Ballots()
	d := analytics.ComputeRankingDepth(ballots)

	sum := 0
	for _, count := range d.Overall {
		sum += count
	}
	require.Equal(s.T(), d.TotalBallots, sum)
	require.Equal(s.T(), 100, d.TotalBallots)
	require.Equal(s.T(), 75, d.Overall[2]) // Alice>Bob (40) + Bob>Alice (35), depth 2
	require.Equal(s.T(), 25, d.Overall[3]) // Carol>Alice>Bob, depth 3
	require.Equal(s.T(), 25, d.TotalPerCandidate[2])
	require.Equal(s.T(), 25, d.PerCandidate[2][3])
}

func TestAnalyticsSuite(t *testing.T) {
	suite.Run(t, new(AnalyticsSuite))
}
