// Package roundtrace defines the shared round-by-round trace model that
// bridges the whole-ballot and fractional STV engines to downstream
// reporting (spec.md §3, component F). Both engines emit the same
// Round/Allocation/Transfer shapes; only how the numbers are computed
// differs between them.
package roundtrace

import "github.com/opencount/rcvcore/ballot"

// Allocation is the current vote count held by one Allocatee at the
// start of a round's action. Votes is integer-valued (stored as float64)
// for the whole-ballot engine and genuinely fractional for the
// fractional engine.
type Allocation struct {
	Allocatee ballot.Allocatee
	Votes     float64
}

// TransferKind distinguishes the two ways ballots move between piles.
type TransferKind int

const (
	// TransferElimination tags ballots redistributed because their
	// current candidate was eliminated.
	TransferElimination TransferKind = iota
	// TransferSurplus tags ballots (or ballot-weight) redistributed
	// because their current candidate was elected with more than quota.
	TransferSurplus
)

// String renders a TransferKind the way it appears in reports.
func (k TransferKind) String() string {
	switch k {
	case TransferElimination:
		return "elimination"
	case TransferSurplus:
		return "surplus"
	default:
		return "unknown"
	}
}

// Transfer is one (from, to) vote movement produced by a round's action.
type Transfer struct {
	From  int // candidate index the votes left
	To    ballot.Allocatee
	Count float64
	Kind  TransferKind
}

// Round is one round of tabulation: a snapshot of allocations at the
// start of the round's action, the transfers that action produced, and
// which candidates newly changed status this round.
//
// Per spec.md §3/§4.2: Allocations is the state at the start of this
// round's action; Transfers are produced by this round's own action and
// are visible as the delta in the next round's Allocations (see
// DESIGN.md's "Round→Transfer attribution" decision).
type Round struct {
	Index           int
	Allocations     []Allocation
	Transfers       []Transfer
	Elected         []int
	Eliminated      []int
	ContinuingTotal float64
}

// Trace is the ordered sequence of Round records for one tabulation.
// Round trace order is the authoritative ordering for all downstream
// consumers (spec.md §5).
type Trace struct {
	Rounds []Round
}

// AllocationFor returns the Votes credited to allocatee in this round, or
// 0 if allocatee has no row (e.g. a candidate eliminated in an earlier
// round).
func (r Round) AllocationFor(a ballot.Allocatee) float64 {
	for _, alloc := range r.Allocations {
		if alloc.Allocatee == a {
			return alloc.Votes
		}
	}

	return 0
}
