// Package fractional implements the weighted inclusive Gregory round
// engine for fractional Single Transferable Vote (spec.md §4.3,
// component C), used where a jurisdiction's official rule mandates
// fractional surplus transfer rather than Cambridge-style whole-ballot
// transfer.
//
// Errors:
//
//	ErrTooFewCandidates - fewer candidates than seats to fill.
//	ErrRoundCapExceeded - the 2*|candidates| safety limit tripped.
//	ErrNumericInconsistency - the end-of-tabulation conservation check
//	failed beyond Config.Epsilon * N (spec.md §8 Q3).
package fractional

import (
	"errors"

	"github.com/opencount/rcvcore/rcvconfig"
	"github.com/opencount/rcvcore/rcvlog"
)

// ErrTooFewCandidates indicates fewer candidates were supplied than
// seats to fill.
var ErrTooFewCandidates = errors.New("fractional: fewer candidates than seats")

// ErrRoundCapExceeded indicates the safety limit was exceeded without
// terminating. The caller receives the partial trace for debugging.
var ErrRoundCapExceeded = errors.New("fractional: round cap exceeded")

// ErrNumericInconsistency indicates the end-of-tabulation conservation
// check (spec.md §8 Q3) found |Σ allocations - N| >= Config.Epsilon * N.
var ErrNumericInconsistency = errors.New("fractional: numeric inconsistency")

// Options configures a Tabulate call.
type Options struct {
	Logger rcvlog.Logger
	Config rcvconfig.Config
}

// DefaultOptions returns Options with a disabled logger and spec-default
// tunables.
func DefaultOptions() Options {
	return Options{
		Logger: rcvlog.Noop(),
		Config: rcvconfig.Default(),
	}
}

type candidateStatus int

const (
	statusActive candidateStatus = iota
	statusElected
	statusEliminated
)

// Summary is the per-candidate vote summary of spec.md §3, fractional
// variant.
type Summary struct {
	CandidateIndex  int
	FirstRoundVotes float64
	TransferVotes   float64
	RoundElected    *int
	RoundEliminated *int
	Winner          bool
}
