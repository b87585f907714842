// Package contest orchestrates one contest's tabulation end to end
// (spec.md §6): it accepts a ContestInput bundle, dispatches to the
// wholeballot or fractional round engine per Variant, runs the
// analytics package over the same canonical ballots and the resulting
// trace, and assembles a ContestReport.
package contest

import (
	"github.com/google/uuid"

	"github.com/opencount/rcvcore/analytics"
	"github.com/opencount/rcvcore/ballot"
	"github.com/opencount/rcvcore/roundtrace"
)

// Variant selects the tabulation rule. Variant selection is external
// per spec.md §9 — callers must not infer it from seat count alone.
type Variant int

const (
	// VariantIRV is single-winner Instant-Runoff Voting.
	VariantIRV Variant = iota
	// VariantWholeBallotSTV is Cambridge/Scotland-style multi-winner STV
	// with integer ballot piles.
	VariantWholeBallotSTV
	// VariantFractionalSTV is Portland-style multi-winner STV with
	// weighted inclusive Gregory surplus transfer.
	VariantFractionalSTV
)

// String renders a Variant the way it appears in logs and reports.
func (v Variant) String() string {
	switch v {
	case VariantIRV:
		return "irv"
	case VariantWholeBallotSTV:
		return "wbv-stv"
	case VariantFractionalSTV:
		return "frac-stv"
	default:
		return "unknown"
	}
}

// ContestInput is the bundle consumed from upstream loaders (spec.md
// §6.1). Ballots is already in canonical form (§3). QuotaBallotCount
// overrides the default ballot count used for the Droop quota when the
// CVR includes ballots belonging to other contests (§3, Portland);
// zero means "use ballot.TotalMultiplicity(Ballots)".
type ContestInput struct {
	Candidates       []ballot.Candidate
	Ballots          []ballot.Ballot
	Seats            int
	Variant          Variant
	QuotaBallotCount int

	// InvalidBallots is a pass-through count the upstream loader
	// supplies: ballots it rejected before handing the core a
	// ContestInput. The core never sees these ballots and never
	// computes this value; it is carried onto ContestReport purely
	// for downstream reporting (SPEC_FULL.md §4).
	InvalidBallots int
}

// CandidateSummary is the per-candidate vote summary of spec.md §3,
// generalized over both engines: FirstRoundVotes/TransferVotes are
// integral for whole-ballot variants and genuinely fractional for
// VariantFractionalSTV.
type CandidateSummary struct {
	CandidateIndex  int
	FirstRoundVotes float64
	TransferVotes   float64
	RoundElected    *int
	RoundEliminated *int
	Winner          bool
}

// ContestReport is the bundle produced for downstream reporting
// (spec.md §6.2).
type ContestReport struct {
	RunID   uuid.UUID
	Variant Variant

	Trace     *roundtrace.Trace
	Winners   []int
	Quota     int
	Summaries []CandidateSummary

	Pairwise       analytics.PairwiseTable
	FirstAlternate analytics.AllocateeTable
	FirstToFinal   analytics.AllocateeTable
	RankingDepth   analytics.RankingDepth

	InvalidBallots int
}
