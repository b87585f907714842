// Package wholeballot implements the integer-pile round engine for
// Instant-Runoff Voting and Cambridge-style whole-ballot Single
// Transferable Vote (spec.md §4.2, component B).
//
// Errors:
//
//	ErrTooFewCandidates - fewer candidates than seats to fill.
//	ErrRoundCapExceeded - the 2*|candidates| safety limit tripped.
package wholeballot

import (
	"errors"

	"github.com/opencount/rcvcore/rcvconfig"
	"github.com/opencount/rcvcore/rcvlog"
)

// ErrTooFewCandidates indicates fewer candidates were supplied than
// seats to fill.
var ErrTooFewCandidates = errors.New("wholeballot: fewer candidates than seats")

// ErrRoundCapExceeded indicates the safety limit of spec.md §4.2 step 6
// (RoundCapMultiplier * len(candidates) rounds) was exceeded without
// terminating. The caller receives the partial trace for debugging.
var ErrRoundCapExceeded = errors.New("wholeballot: round cap exceeded")

// Rule selects the per-round election check: quota-based (STV) or
// strict-majority-of-continuing (IRV). Variant selection is external
// per spec.md §9 — callers must not infer Rule from seat count.
type Rule int

const (
	// RuleSTV elects every active candidate whose votes >= quota.
	RuleSTV Rule = iota
	// RuleIRV elects the single active candidate whose votes exceed a
	// strict majority of the current continuing total, and stops
	// tabulation immediately upon election.
	RuleIRV
)

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

// Summary is the per-candidate vote summary of spec.md §3.
type Summary struct {
	CandidateIndex  int
	FirstRoundVotes int
	TransferVotes   int
	RoundElected    *int
	RoundEliminated *int
	Winner          bool
}
