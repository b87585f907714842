package contest_test

import (
	"reflect"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"

	"github.com/opencount/rcvcore/ballot"
	"github.com/opencount/rcvcore/contest"
)

// ContestSuite exercises contest.Tabulate end to end against spec.md's
// golden scenarios and quantified invariants.
type ContestSuite struct {
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

func s1Input() contest.ContestInput {
	var all [][]int
	all = append(all, raw([]int{0, 1}, 40)...)
	all = append(all, raw([]int{1, 0}, 35)...)
	all = append(all, raw([]int{2, 0, 1}, 25)...)

	return contest.ContestInput{
		Candidates: candidates("Alice", "Bob", "Carol"),
		Ballots:    ballot.Canonicalize(all),
		Seats:      1,
		Variant:    contest.VariantIRV,
	}
}

// TestScenarioS1 checks the full pipeline (engine + analytics) on
// spec.md Scenario S1.
func (s *ContestSuite) TestScenarioS1() {
	report, err := contest.Tabulate(s1Input(), contest.DefaultOptions())
	require.NoError(s.T(), err)
	require.Equal(s.T(), []int{0}, report.Winners)
	require.Equal(s.T(), 2, len(report.Trace.Rounds))
	require.NotEqual(s.T(), report.RunID.String(), "")

	aliceOverBob := report.Pairwise.At(0, 1)
	require.Equal(s.T(), 65, aliceOverBob.Numerator)
	require.Equal(s.T(), 100, aliceOverBob.Denominator)
}

// TestScenarioS2 is spec.md Scenario S2 through the full pipeline.
func (s *ContestSuite) TestScenarioS2() {
	ballots := ballot.Canonicalize(raw([]int{0, 1, 2, 3}, 10))
	in := contest.ContestInput{
		Candidates: candidates("A", "B", "C", "D"),
		Ballots:    ballots,
		Seats:      2,
		Variant:    contest.VariantWholeBallotSTV,
	}

	report, err := contest.Tabulate(in, contest.DefaultOptions())
	require.NoError(s.T(), err)
	require.Equal(s.T(), []int{0, 1}, report.Winners)
	require.Equal(s.T(), 4, report.Quota)
}

// TestScenarioS4 is spec.md Scenario S4 through the full pipeline.
func (s *ContestSuite) TestScenarioS4() {
	var all [][]int
	all = append(all, raw([]int{0, 1}, 6)...)
	all = append(all, raw([]int{0, 2}, 6)...)
	all = append(all, raw([]int{2, 1}, 3)...)
	in := contest.ContestInput{
		Candidates: candidates("A", "B", "C"),
		Ballots:    ballot.Canonicalize(all),
		Seats:      2,
		Variant:    contest.VariantFractionalSTV,
	}

	report, err := contest.Tabulate(in, contest.DefaultOptions())
	require.NoError(s.T(), err)
	require.Equal(s.T(), []int{0, 2}, report.Winners)
	require.Equal(s.T(), 6, report.Quota)
}

// TestBoundaryB1 is spec.md Boundary B1: strict first-round majority,
// one round, no transfers.
func (s *ContestSuite) TestBoundaryB1() {
	var all [][]int
	all = append(all, raw([]int{0}, 60)...)
	all = append(all, raw([]int{1}, 40)...)
	in := contest.ContestInput{
		Candidates: candidates("A", "B"),
		Ballots:    ballot.Canonicalize(all),
		Seats:      1,
		Variant:    contest.VariantIRV,
	}

	report, err := contest.Tabulate(in, contest.DefaultOptions())
	require.NoError(s.T(), err)
	require.Equal(s.T(), []int{0}, report.Winners)
	require.Len(s.T(), report.Trace.Rounds, 1)
	require.Empty(s.T(), report.Trace.Rounds[0].Transfers)
}

// TestBoundaryB3 is spec.md Boundary B3: all ballots identical A>B>C,
// seats=2. A is elected round 1 with full surplus to B; B elected round
// 2 with exactly Q; C never elected.
func (s *ContestSuite) TestBoundaryB3() {
	in := contest.ContestInput{
		Candidates: candidates("A", "B", "C"),
		Ballots:    ballot.Canonicalize(raw([]int{0, 1, 2}, 20)),
		Seats:      2,
		Variant:    contest.VariantWholeBallotSTV,
	}

	report, err := contest.Tabulate(in, contest.DefaultOptions())
	require.NoError(s.T(), err)
	require.Equal(s.T(), []int{0, 1}, report.Winners)
	for _, sum := range report.Summaries {
		if sum.CandidateIndex == 2 {
			require.False(s.T(), sum.Winner)
			require.Nil(s.T(), sum.RoundElected)
		}
	}
}

// TestQ1Droop checks spec.md §8 Q1 against the report's Quota field.
func (s *ContestSuite) TestQ1Droop() {
	in := contest.ContestInput{
		Candidates: candidates("A", "B", "C"),
		Ballots:    ballot.Canonicalize(raw([]int{0, 1, 2}, 12)),
		Seats:      2,
		Variant:    contest.VariantWholeBallotSTV,
	}

	report, err := contest.Tabulate(in, contest.DefaultOptions())
	require.NoError(s.T(), err)
	require.Equal(s.T(), 12/3+1, report.Quota)
}

// TestQ2ConservationWholeBallot checks spec.md §8 Q2: every round's
// allocations (incl. Exhausted) sum to N exactly.
func (s *ContestSuite) TestQ2ConservationWholeBallot() {
	report, err := contest.Tabulate(s1Input(), contest.DefaultOptions())
	require.NoError(s.T(), err)

	for _, r := range report.Trace.Rounds {
		sum := 0.0
		for _, a := range r.Allocations {
			sum += a.Votes
		}
		require.Equal(s.T(), 100.0, sum)
	}
}

// TestQ4MonotoneExhaustion checks spec.md §8 Q4.
func (s *ContestSuite) TestQ4MonotoneExhaustion() {
	report, err := contest.Tabulate(s1Input(), contest.DefaultOptions())
	require.NoError(s.T(), err)

	prev := 0.0
	for _, r := range report.Trace.Rounds {
		cur := r.AllocationFor(ballot.Exhausted)
		require.GreaterOrEqual(s.T(), cur, prev)
		prev = cur
	}
}

// TestQ5ElectedPin checks spec.md §8 Q5: once elected, a whole-ballot
// candidate's allocation is pinned at Q in every later round. A round's
// allocations are taken before that round's election, so the electing
// round itself still shows the pre-election total.
func (s *ContestSuite) TestQ5ElectedPin() {
	ballots := ballot.Canonicalize(raw([]int{0, 1, 2, 3}, 10))
	in := contest.ContestInput{
		Candidates: candidates("A", "B", "C", "D"),
		Ballots:    ballots,
		Seats:      2,
		Variant:    contest.VariantWholeBallotSTV,
	}

	report, err := contest.Tabulate(in, contest.DefaultOptions())
	require.NoError(s.T(), err)

	electedRound := map[int]int{}
	for _, sum := range report.Summaries {
		if sum.RoundElected != nil {
			electedRound[sum.CandidateIndex] = *sum.RoundElected
		}
	}
	for _, r := range report.Trace.Rounds {
		for idx, electedAt := range electedRound {
			if r.Index <= electedAt {
				continue
			}
			require.Equal(s.T(), float64(report.Quota), r.AllocationFor(ballot.Elect(idx)))
		}
	}
}

// TestQ6Determinism checks spec.md §8 Q6: running tabulation twice on
// the same input yields byte-identical reports (modulo RunID).
func (s *ContestSuite) TestQ6Determinism() {
	in := s1Input()

	r1, err1 := contest.Tabulate(in, contest.DefaultOptions())
	require.NoError(s.T(), err1)
	r2, err2 := contest.Tabulate(in, contest.DefaultOptions())
	require.NoError(s.T(), err2)

	r1.RunID = r2.RunID
	require.True(s.T(), reflect.DeepEqual(r1, r2))
}

// TestQ7Multiplicity checks spec.md §8 Q7: scaling every canonical
// multiplicity by k scales every round's allocations by k and leaves
// round_elected/round_eliminated unchanged. The quota is not compared:
// Droop's +1 offset does not scale with k (see DESIGN.md).
func (s *ContestSuite) TestQ7Multiplicity() {
	const k = 3
	base := s1Input()
	scaled := base
	scaled.Ballots = make([]ballot.Ballot, len(base.Ballots))
	for i, b := range base.Ballots {
		scaled.Ballots[i] = ballot.Ballot{Sequence: b.Sequence, Multiplicity: b.Multiplicity * k}
	}

	baseReport, err := contest.Tabulate(base, contest.DefaultOptions())
	require.NoError(s.T(), err)
	scaledReport, err := contest.Tabulate(scaled, contest.DefaultOptions())
	require.NoError(s.T(), err)

	require.Equal(s.T(), len(baseReport.Trace.Rounds), len(scaledReport.Trace.Rounds))
	for i := range baseReport.Trace.Rounds {
		for j, a := range baseReport.Trace.Rounds[i].Allocations {
			require.Equal(s.T(), a.Votes*k, scaledReport.Trace.Rounds[i].Allocations[j].Votes)
		}
	}
	for i, sum := range baseReport.Summaries {
		other := scaledReport.Summaries[i]
		require.Equal(s.T(), sum.RoundElected, other.RoundElected)
		require.Equal(s.T(), sum.RoundEliminated, other.RoundEliminated)
	}
}

// TestInconsistentBallot checks spec.md §7's InconsistentBallot kind.
func (s *ContestSuite) TestInconsistentBallot() {
	in := contest.ContestInput{
		Candidates: candidates("A", "B"),
		Ballots:    []ballot.Ballot{{Sequence: []int{0, 5}, Multiplicity: 1}},
		Seats:      1,
		Variant:    contest.VariantIRV,
	}

	_, err := contest.Tabulate(in, contest.DefaultOptions())
	require.ErrorIs(s.T(), err, contest.ErrInconsistentBallot)
}

// TestInvalidContest checks spec.md §7's InvalidContest kind (IRV with
// seats > 1).
func (s *ContestSuite) TestInvalidContest() {
	in := contest.ContestInput{
		Candidates: candidates("A", "B"),
		Ballots:    ballot.Canonicalize(raw([]int{0, 1}, 10)),
		Seats:      2,
		Variant:    contest.VariantIRV,
	}

	_, err := contest.Tabulate(in, contest.DefaultOptions())
	require.ErrorIs(s.T(), err, contest.ErrInvalidContest)
}

func TestContestSuite(t *testing.T) {
	suite.Run(t, new(ContestSuite))
}
