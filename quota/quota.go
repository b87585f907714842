// Package quota computes the Droop quota shared by the whole-ballot and
// fractional STV engines.
package quota

// Droop returns the Droop quota Q = ⌊N/(S+1)⌋ + 1, the smallest vote
// total guaranteed to elect exactly seats candidates out of n ballots.
//
// n is the quota ballot count (spec.md §3): the total canonical ballot
// count for most jurisdictions, or the count of ballots ranking at least
// one candidate in this contest for CVRs that bundle multiple contests
// (Portland). seats must be >= 1.
func Droop(n, seats int) int {
	return n/(seats+1) + 1
}
