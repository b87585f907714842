package wholeballot

import (
	"sort"

	"github.com/opencount/rcvcore/ballot"
	"github.com/opencount/rcvcore/quota"
	"github.com/opencount/rcvcore/roundtrace"
)

type candidateState struct {
	index           int
	name            string
	status          candidateStatus
	votes           int
	firstRoundSet   bool
	firstRoundVotes int
	transferVotes   int
	roundElected    *int
	roundEliminated *int
	pile            []*ballot.RuntimeBallot
}

// Tabulate runs the whole-ballot (integer-pile) round engine over
// ballots for the given candidates, seats and Rule. quotaBallotCount is
// the N used for the Droop quota (spec.md §3); pass
// ballot.TotalMultiplicity(ballots) unless the contest's CVR bundles
// other contests.
//
// It returns the round trace, the winners in election order, the Droop
// quota actually used, and the per-candidate summary.
func Tabulate(
	candidates []ballot.Candidate,
	ballots []ballot.Ballot,
	seats int,
	rule Rule,
	quotaBallotCount int,
	opts Options,
) (*roundtrace.Trace, []int, int, []Summary, error) {
	if len(candidates) < seats {
		return nil, nil, 0, nil, ErrTooFewCandidates
	}

	q := quota.Droop(quotaBallotCount, seats)
	states := make([]*candidateState, len(candidates))
	for i, c := range candidates {
		states[i] = &candidateState{index: c.Index, name: c.Name, status: statusActive}
	}

	runtime := ballot.Expand(ballots)
	statusOf := func() map[int]candidateStatus {
		m := make(map[int]candidateStatus, len(states))
		for _, s := range states {
			m[s.index] = s.status
		}

		return m
	}

	exhaustedVotes := 0

	// Initial allocation: every ballot goes to its first active
	// preference (all candidates are active at round 1).
	for _, rb := range runtime {
		allocatee := firstChoice(rb, statusOf())
		if allocatee.IsExhausted() {
			exhaustedVotes++
			continue
		}
		cs := byIndex(states, int(allocatee))
		cs.pile = append(cs.pile, rb)
	}
	for _, cs := range states {
		cs.votes = len(cs.pile)
		cs.firstRoundVotes = cs.votes
		cs.firstRoundSet = true
	}

	trace := &roundtrace.Trace{}
	winners := []int{}
	roundCap := opts.Config.RoundCapMultiplier * len(candidates)
	if roundCap <= 0 {
		roundCap = 2 * len(candidates)
	}

	seatsRemaining := seats
	rIdx := 0
	for {
		rIdx++
		if rIdx > roundCap {
			return trace, winners, q, summarize(states, winners), ErrRoundCapExceeded
		}

		round := roundtrace.Round{Index: rIdx}
		round.Allocations = snapshot(states, exhaustedVotes)
		round.ContinuingTotal = continuingTotal(states)

		if rule == RuleIRV {
			winner, elected := findIRVWinner(states, round.ContinuingTotal)
			if elected {
				winner.status = statusElected
				winner.roundElected = intPtr(rIdx)
				winners = append(winners, winner.index)
				round.Elected = []int{winner.index}
				trace.Rounds = append(trace.Rounds, round)
				opts.Logger.RoundAction(rIdx, "elect-majority", winner.index, float64(winner.votes))
				break
			}

			loser := lowestActive(states)
			loser.status = statusEliminated
			loser.roundEliminated = intPtr(rIdx)
			round.Eliminated = []int{loser.index}
			opts.Logger.RoundAction(rIdx, "eliminate", loser.index, float64(loser.votes))

			transfers := redistributePile(loser, states, &exhaustedVotes, roundtrace.TransferElimination)
			round.Transfers = finalizeTransfers(transfers)
			logTransfers(opts, rIdx, round.Transfers)
			trace.Rounds = append(trace.Rounds, round)
			continue
		}

		// RuleSTV.
		//
		// Check acclamation first: if the number of remaining active
		// candidates no longer exceeds the remaining seats, this round's
		// only action is to seat them all by descending votes, with no
		// transfers (spec.md §4.2 step 6). This must run before the
		// ordinary quota/elimination check, not after it, so that a
		// contest that already satisfies the condition at round 1 (e.g.
		// candidate count equals seat count) seats everyone in round 1
		// instead of spending a round on an elimination nobody asked for.
		remainingActive := activeCandidates(states)
		if len(remainingActive) > 0 && len(remainingActive) <= seatsRemaining {
			sort.SliceStable(remainingActive, func(i, j int) bool {
				if remainingActive[i].votes != remainingActive[j].votes {
					return remainingActive[i].votes > remainingActive[j].votes
				}

				return remainingActive[i].name < remainingActive[j].name
			})
			for _, c := range remainingActive {
				c.status = statusElected
				c.roundElected = intPtr(rIdx)
				winners = append(winners, c.index)
				round.Elected = append(round.Elected, c.index)
				opts.Logger.RoundAction(rIdx, "elect-default", c.index, float64(c.votes))
			}
			trace.Rounds = append(trace.Rounds, round)
			break
		}

		overQuota := activeOverQuota(states, q)
		if len(overQuota) > 0 {
			var allTransfers []rawTransfer
			for _, elect := range overQuota {
				elect.status = statusElected
				elect.roundElected = intPtr(rIdx)
				winners = append(winners, elect.index)
				round.Elected = append(round.Elected, elect.index)
				seatsRemaining--
				opts.Logger.RoundAction(rIdx, "elect-quota", elect.index, float64(elect.votes))
			}
			// Every over-quota candidate is elected before any surplus
			// moves, so surplus ballots skip all of this round's electees.
			for _, elect := range overQuota {
				surplus := elect.votes - q
				if surplus > 0 {
					transfers := transferSurplus(elect, surplus, states, &exhaustedVotes)
					allTransfers = append(allTransfers, transfers...)
				}
				elect.votes = q
			}
			round.Transfers = finalizeTransfers(allTransfers)
			logTransfers(opts, rIdx, round.Transfers)
			trace.Rounds = append(trace.Rounds, round)

			if seatsRemaining <= 0 {
				break
			}
		} else {
			loser := lowestActive(states)
			loser.status = statusEliminated
			loser.roundEliminated = intPtr(rIdx)
			round.Eliminated = []int{loser.index}
			opts.Logger.RoundAction(rIdx, "eliminate", loser.index, float64(loser.votes))

			transfers := redistributePile(loser, states, &exhaustedVotes, roundtrace.TransferElimination)
			round.Transfers = finalizeTransfers(transfers)
			logTransfers(opts, rIdx, round.Transfers)
			trace.Rounds = append(trace.Rounds, round)
		}
	}

	return trace, winners, q, summarize(states, winners), nil
}

func intPtr(v int) *int { return &v }

func byIndex(states []*candidateState, idx int) *candidateState {
	for _, s := range states {
		if s.index == idx {
			return s
		}
	}

	return nil
}

// firstChoice scans rb.Sequence starting at its current Cursor (without
// pre-advancing) for the first still-active candidate.
func firstChoice(rb *ballot.RuntimeBallot, status map[int]candidateStatus) ballot.Allocatee {
	for rb.Cursor < len(rb.Sequence) {
		idx := rb.Sequence[rb.Cursor]
		if status[idx] == statusActive {
			return ballot.Elect(idx)
		}
		rb.Cursor++
	}

	return ballot.Exhausted
}

// nextChoice advances rb past its current position and returns the next
// still-active candidate, skipping both elected and eliminated entries.
func nextChoice(rb *ballot.RuntimeBallot, status map[int]candidateStatus) ballot.Allocatee {
	rb.Cursor++

	return firstChoice(rb, status)
}

type rawTransfer struct {
	from  int
	to    ballot.Allocatee
	count float64
	kind  roundtrace.TransferKind
}

// redistributePile moves every ballot on loser's pile to its next active
// preference (or Exhausted), clearing loser's pile and votes.
func redistributePile(loser *candidateState, states []*candidateState, exhausted *int, kind roundtrace.TransferKind) []rawTransfer {
	status := statusMap(states)
	transfers := make([]rawTransfer, 0, len(loser.pile))
	for _, rb := range loser.pile {
		dest := nextChoice(rb, status)
		if dest.IsExhausted() {
			*exhausted++
		} else {
			destCS := byIndex(states, int(dest))
			destCS.pile = append(destCS.pile, rb)
			destCS.votes = len(destCS.pile)
			destCS.transferVotes++
		}
		transfers = append(transfers, rawTransfer{from: loser.index, to: dest, count: 1, kind: kind})
	}
	loser.pile = nil
	loser.votes = 0

	return transfers
}

// transferSurplus takes the top `surplus` ballots (most-recently-received
// = end of pile, Cambridge convention) from elect's pile and redistributes
// each to its next active preference.
func transferSurplus(elect *candidateState, surplus int, states []*candidateState, exhausted *int) []rawTransfer {
	status := statusMap(states)
	n := len(elect.pile)
	moving := elect.pile[n-surplus:]
	elect.pile = elect.pile[:n-surplus]

	transfers := make([]rawTransfer, 0, len(moving))
	for _, rb := range moving {
		dest := nextChoice(rb, status)
		if dest.IsExhausted() {
			*exhausted++
		} else {
			destCS := byIndex(states, int(dest))
			destCS.pile = append(destCS.pile, rb)
			destCS.votes = len(destCS.pile)
			destCS.transferVotes++
		}
		transfers = append(transfers, rawTransfer{from: elect.index, to: dest, count: 1, kind: roundtrace.TransferSurplus})
	}

	return transfers
}

// logTransfers emits one debug line per finalized transfer (spec.md §2's
// "log one line per round action" extends to surplus/elimination
// transfers, not just elect/eliminate decisions).
func logTransfers(opts Options, rIdx int, transfers []roundtrace.Transfer) {
	for _, t := range transfers {
		opts.Logger.Transfer(rIdx, t.From, int(t.To), t.To.IsExhausted(), t.Count, t.Kind.String())
	}
}

func finalizeTransfers(raw []rawTransfer) []roundtrace.Transfer {
	agg := make(map[[2]int]*roundtrace.Transfer)
	order := make([][2]int, 0, len(raw))
	for _, t := range raw {
		to := int(t.to)
		key := [2]int{t.from, to}
		if existing, ok := agg[key]; ok {
			existing.Count += t.count
			continue
		}
		nt := &roundtrace.Transfer{From: t.from, To: t.to, Count: t.count, Kind: t.kind}
		agg[key] = nt
		order = append(order, key)
	}

	out := make([]roundtrace.Transfer, 0, len(order))
	for _, key := range order {
		out = append(out, *agg[key])
	}
	roundtrace.SortTransfers(out)

	return out
}

func statusMap(states []*candidateState) map[int]candidateStatus {
	m := make(map[int]candidateStatus, len(states))
	for _, s := range states {
		m[s.index] = s.status
	}

	return m
}

func snapshot(states []*candidateState, exhaustedVotes int) []roundtrace.Allocation {
	allocations := make([]roundtrace.Allocation, 0, len(states)+1)
	for _, s := range states {
		if s.status == statusEliminated {
			continue
		}
		allocations = append(allocations, roundtrace.Allocation{Allocatee: ballot.Elect(s.index), Votes: float64(s.votes)})
	}
	allocations = append(allocations, roundtrace.Allocation{Allocatee: ballot.Exhausted, Votes: float64(exhaustedVotes)})
	roundtrace.SortAllocations(allocations)

	return allocations
}

func continuingTotal(states []*candidateState) float64 {
	total := 0
	for _, s := range states {
		if s.status != statusEliminated {
			total += s.votes
		}
	}

	return float64(total)
}

func activeCandidates(states []*candidateState) []*candidateState {
	out := make([]*candidateState, 0, len(states))
	for _, s := range states {
		if s.status == statusActive {
			out = append(out, s)
		}
	}

	return out
}

func activeOverQuota(states []*candidateState, q int) []*candidateState {
	out := activeCandidates(states)
	filtered := out[:0:0]
	for _, s := range out {
		if s.votes >= q {
			filtered = append(filtered, s)
		}
	}
	sort.SliceStable(filtered, func(i, j int) bool {
		if filtered[i].votes != filtered[j].votes {
			return filtered[i].votes > filtered[j].votes
		}

		return filtered[i].name < filtered[j].name
	})

	return filtered
}

func lowestActive(states []*candidateState) *candidateState {
	active := activeCandidates(states)
	sort.SliceStable(active, func(i, j int) bool {
		if active[i].votes != active[j].votes {
			return active[i].votes < active[j].votes
		}

		return active[i].name < active[j].name
	})

	return active[0]
}

// findIRVWinner returns the active candidate whose votes exceed a strict
// majority of continuingTotal, if any.
func findIRVWinner(states []*candidateState, continuingTotal float64) (*candidateState, bool) {
	for _, s := range activeCandidates(states) {
		if float64(s.votes)*2 > continuingTotal {
			return s, true
		}
	}

	return nil, false
}

func summarize(states []*candidateState, winners []int) []Summary {
	winnerSet := make(map[int]bool, len(winners))
	for _, w := range winners {
		winnerSet[w] = true
	}

	out := make([]Summary, 0, len(states))
	for _, s := range states {
		out = append(out, Summary{
			CandidateIndex:  s.index,
			FirstRoundVotes: s.firstRoundVotes,
			TransferVotes:   s.transferVotes,
			RoundElected:    s.roundElected,
			RoundEliminated: s.roundEliminated,
			Winner:          winnerSet[s.index],
		})
	}

	return out
}
