package fractional

import (
	"math"
	"sort"

	"github.com/opencount/rcvcore/ballot"
	"github.com/opencount/rcvcore/quota"
	"github.com/opencount/rcvcore/roundtrace"
)

type candidateState struct {
	index           int
	name            string
	status          candidateStatus
	votes           float64
	firstRoundVotes float64
	transferVotes   float64
	roundElected    *int
	roundEliminated *int
	pile            []*ballot.RuntimeBallot
}

// Tabulate runs the fractional (weighted inclusive Gregory) round engine
// over ballots for the given candidates and seats. quotaBallotCount is
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
	quotaBallotCount int,
	opts Options,
) (*roundtrace.Trace, []int, int, []Summary, error) {
	if len(candidates) < seats {
		return nil, nil, 0, nil, ErrTooFewCandidates
	}

	q := float64(quota.Droop(quotaBallotCount, seats))
	states := make([]*candidateState, len(candidates))
	for i, c := range candidates {
		states[i] = &candidateState{index: c.Index, name: c.Name, status: statusActive}
	}

	runtime := ballot.Expand(ballots)
	total := float64(ballot.TotalMultiplicity(ballots))
	exhaustedVotes := 0.0

	for _, rb := range runtime {
		dest := currentChoice(rb, statusMap(states))
		if dest.IsExhausted() {
			exhaustedVotes += rb.Weight
			continue
		}
		cs := byIndex(states, int(dest))
		cs.pile = append(cs.pile, rb)
		cs.votes += rb.Weight
	}
	for _, cs := range states {
		cs.firstRoundVotes = cs.votes
	}

	trace := &roundtrace.Trace{}
	winners := []int{}
	roundCap := opts.Config.RoundCapMultiplier * len(candidates)
	if roundCap <= 0 {
		roundCap = 2 * len(candidates)
	}
	tol := opts.Config.FractionalTieTolerance

	seatsRemaining := seats
	rIdx := 0
	for {
		rIdx++
		if rIdx > roundCap {
			return trace, winners, int(q), summarize(states, winners), ErrRoundCapExceeded
		}

		round := roundtrace.Round{Index: rIdx}
		round.Allocations = snapshot(states, exhaustedVotes)
		round.ContinuingTotal = continuingTotal(states)

		// Acclamation check first, same reasoning as the whole-ballot
		// engine: a contest where the candidate count already equals
		// the remaining seats must seat everyone in round 1 without a
		// spurious quota/elimination step.
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
				opts.Logger.RoundAction(rIdx, "elect-default", c.index, c.votes)
			}
			trace.Rounds = append(trace.Rounds, round)
			break
		}

		winner, ok := highestOverQuota(states, q, tol)
		if ok {
			winner.status = statusElected
			winner.roundElected = intPtr(rIdx)
			winners = append(winners, winner.index)
			round.Elected = []int{winner.index}
			seatsRemaining--
			opts.Logger.RoundAction(rIdx, "elect-quota", winner.index, winner.votes)

			surplus := winner.votes - q
			if surplus > 0 {
				transfers := transferSurplus(winner, surplus, states, &exhaustedVotes)
				round.Transfers = finalizeTransfers(transfers)
				logTransfers(opts, rIdx, round.Transfers)
			}
			winner.votes = q
			trace.Rounds = append(trace.Rounds, round)

			if seatsRemaining <= 0 {
				break
			}
			continue
		}

		loser := lowestActive(states, tol)
		loser.status = statusEliminated
		loser.roundEliminated = intPtr(rIdx)
		round.Eliminated = []int{loser.index}
		opts.Logger.RoundAction(rIdx, "eliminate", loser.index, loser.votes)

		transfers := redistributePile(loser, states, &exhaustedVotes)
		round.Transfers = finalizeTransfers(transfers)
		logTransfers(opts, rIdx, round.Transfers)
		trace.Rounds = append(trace.Rounds, round)
	}

	conserved := exhaustedVotes
	for _, s := range states {
		conserved += s.votes
	}
	if math.Abs(conserved-total) >= opts.Config.Epsilon*total {
		return trace, winners, int(q), summarize(states, winners), ErrNumericInconsistency
	}

	return trace, winners, int(q), summarize(states, winners), nil
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

func statusMap(states []*candidateState) map[int]candidateStatus {
	m := make(map[int]candidateStatus, len(states))
	for _, s := range states {
		m[s.index] = s.status
	}

	return m
}

// currentChoice returns rb's current rank without pre-advancing,
// skipping both elected and eliminated candidates.
func currentChoice(rb *ballot.RuntimeBallot, status map[int]candidateStatus) ballot.Allocatee {
	for rb.Cursor < len(rb.Sequence) {
		idx := rb.Sequence[rb.Cursor]
		if status[idx] == statusActive {
			return ballot.Elect(idx)
		}
		rb.Cursor++
	}

	return ballot.Exhausted
}

// nextChoice advances rb past its current rank and returns the next
// still-active one, skipping both elected and eliminated candidates.
func nextChoice(rb *ballot.RuntimeBallot, status map[int]candidateStatus) ballot.Allocatee {
	rb.Cursor++

	return currentChoice(rb, status)
}

type rawTransfer struct {
	from   int
	to     ballot.Allocatee
	amount float64
	kind   roundtrace.TransferKind
}

// transferSurplus moves `surplus` worth of weight off winner's pile,
// proportionally across every ballot currently credited there, per the
// weighted inclusive Gregory rule (spec.md §4.3 step 2).
func transferSurplus(winner *candidateState, surplus float64, states []*candidateState, exhausted *float64) []rawTransfer {
	status := statusMap(states)
	transferFraction := surplus / winner.votes

	transfers := make([]rawTransfer, 0, len(winner.pile))
	for _, rb := range winner.pile {
		transferred := rb.Weight * transferFraction
		rb.Weight -= transferred

		dest := nextChoice(rb, status)
		if dest.IsExhausted() {
			*exhausted += transferred
		} else {
			destCS := byIndex(states, int(dest))
			destCS.pile = append(destCS.pile, rb)
			destCS.votes += transferred
			destCS.transferVotes += transferred
		}
		transfers = append(transfers, rawTransfer{from: winner.index, to: dest, amount: transferred, kind: roundtrace.TransferSurplus})
	}

	return transfers
}

// redistributePile moves every ballot currently credited to loser, at
// full current weight, to its next active preference (spec.md §4.3 step
// 3).
func redistributePile(loser *candidateState, states []*candidateState, exhausted *float64) []rawTransfer {
	status := statusMap(states)
	transfers := make([]rawTransfer, 0, len(loser.pile))
	for _, rb := range loser.pile {
		weight := rb.Weight
		dest := nextChoice(rb, status)
		if dest.IsExhausted() {
			*exhausted += weight
		} else {
			destCS := byIndex(states, int(dest))
			destCS.pile = append(destCS.pile, rb)
			destCS.votes += weight
			destCS.transferVotes += weight
		}
		transfers = append(transfers, rawTransfer{from: loser.index, to: dest, amount: weight, kind: roundtrace.TransferElimination})
	}
	loser.pile = nil
	loser.votes = 0

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
		key := [2]int{t.from, int(t.to)}
		if existing, ok := agg[key]; ok {
			existing.Count += t.amount
			continue
		}
		nt := &roundtrace.Transfer{From: t.from, To: t.to, Count: t.amount, Kind: t.kind}
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

func snapshot(states []*candidateState, exhaustedVotes float64) []roundtrace.Allocation {
	allocations := make([]roundtrace.Allocation, 0, len(states)+1)
	for _, s := range states {
		if s.status == statusEliminated {
			continue
		}
		allocations = append(allocations, roundtrace.Allocation{Allocatee: ballot.Elect(s.index), Votes: s.votes})
	}
	allocations = append(allocations, roundtrace.Allocation{Allocatee: ballot.Exhausted, Votes: exhaustedVotes})
	roundtrace.SortAllocations(allocations)

	return allocations
}

func continuingTotal(states []*candidateState) float64 {
	total := 0.0
	for _, s := range states {
		if s.status != statusEliminated {
			total += s.votes
		}
	}

	return total
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

// highestOverQuota returns the single active candidate with the highest
// votes, if it is at or above q; ties within tol are broken
// alphabetically by name (spec.md §9).
func highestOverQuota(states []*candidateState, q, tol float64) (*candidateState, bool) {
	active := activeCandidates(states)
	over := active[:0:0]
	for _, s := range active {
		if s.votes >= q {
			over = append(over, s)
		}
	}
	if len(over) == 0 {
		return nil, false
	}

	sort.SliceStable(over, func(i, j int) bool {
		if math.Abs(over[i].votes-over[j].votes) < tol {
			return over[i].name < over[j].name
		}

		return over[i].votes > over[j].votes
	})

	return over[0], true
}

// lowestActive returns the active candidate with the fewest votes, ties
// within tol broken alphabetically by name (spec.md §9).
func lowestActive(states []*candidateState, tol float64) *candidateState {
	active := activeCandidates(states)
	sort.SliceStable(active, func(i, j int) bool {
		if math.Abs(active[i].votes-active[j].votes) < tol {
			return active[i].name < active[j].name
		}

		return active[i].votes < active[j].votes
	})

	return active[0]
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
