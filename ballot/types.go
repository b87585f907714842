// Package ballot defines the canonical ballot representation consumed by
// every round engine and analytics routine in rcvcore, and the one-time
// expansion step that turns a canonical, multiplicity-bearing ballot set
// into per-ballot runtime state for engines that need individual ballot
// identity (the fractional engine's per-ballot weight and cursor).
//
// Errors:
//
//	ErrCandidateIndexOutOfRange - a rank sequence references a candidate
//	                               index outside the contest's candidate table.
package ballot

import "errors"

// ErrCandidateIndexOutOfRange indicates a ballot's rank sequence referenced
// a candidate index that is not present in the contest's candidate table.
// Per spec.md §7 this is treated as a loader bug and the contest aborts.
var ErrCandidateIndexOutOfRange = errors.New("ballot: candidate index out of range")

// Allocatee is either a candidate index or the distinguished Exhausted
// sentinel. Every vote at every round belongs to exactly one Allocatee.
type Allocatee int

// Exhausted is the sentinel Allocatee representing a ballot whose ranked
// preferences have all been applied without reaching a still-active
// candidate.
const Exhausted Allocatee = -1

// Elect wraps a candidate index as an Allocatee.
func Elect(candidateIndex int) Allocatee {
	return Allocatee(candidateIndex)
}

// IsExhausted reports whether this Allocatee is the Exhausted sentinel.
func (a Allocatee) IsExhausted() bool {
	return a == Exhausted
}

// Candidate is rcvcore's view of a ranked-choice candidate. Index is the
// stable, 0-based identity assigned by the upstream loader; the engine
// consumes only Index, and carries Name/WriteIn/Party for reporting.
type Candidate struct {
	Index   int
	Name    string
	WriteIn bool
	Party   string
}

// Ballot is the canonical form: an ordered rank sequence of candidate
// indices (no duplicates within one ballot) plus the integer count of
// physically identical ballots it represents. Two canonical ballots in
// the same contest never share a Sequence.
type Ballot struct {
	Sequence     []int
	Multiplicity int
}

// RuntimeBallot is the mutable, per-physical-ballot state used by the
// round engines during tabulation. The whole-ballot engine (wholeballot)
// only ever moves a RuntimeBallot between candidate piles, reading
// Sequence and advancing Cursor; Weight stays implicitly 1 and is never
// consulted. The
// fractional engine (fractional) mutates both Weight and Cursor on every
// round.
type RuntimeBallot struct {
	Sequence []int
	Weight   float64
	Cursor   int
}
