package contest

import (
	"encoding/json"

	"github.com/shopspring/decimal"

	"github.com/opencount/rcvcore/analytics"
	"github.com/opencount/rcvcore/roundtrace"
)

// MarshalJSON rounds every vote-count float at the wire boundary to two
// decimal places (spec.md §6.2), using shopspring/decimal rather than
// naive float formatting to avoid binary artifacts like
// 5.999999999999999. round_elected/round_eliminated stay integers. The
// internal engine state (the Trace this report was built from) is left
// untouched — only the copy that gets marshaled is rounded.
func (r ContestReport) MarshalJSON() ([]byte, error) {
	type alias struct {
		RunID          string                  `json:"run_id"`
		Variant        string                  `json:"variant"`
		Trace          *roundtrace.Trace       `json:"trace"`
		Winners        []int                   `json:"winners"`
		Quota          int                     `json:"quota"`
		Summaries      []CandidateSummary      `json:"summaries"`
		Pairwise       analytics.PairwiseTable `json:"pairwise"`
		FirstAlternate analytics.AllocateeTable `json:"first_alternate"`
		FirstToFinal   analytics.AllocateeTable `json:"first_to_final"`
		RankingDepth   analytics.RankingDepth  `json:"ranking_depth"`
		InvalidBallots int                     `json:"invalid_ballots"`
	}

	return json.Marshal(alias{
		RunID:          r.RunID.String(),
		Variant:        r.Variant.String(),
		Trace:          roundTwoDecimals(r.Trace),
		Winners:        r.Winners,
		Quota:          r.Quota,
		Summaries:      roundSummaries(r.Summaries),
		Pairwise:       r.Pairwise,
		FirstAlternate: r.FirstAlternate,
		FirstToFinal:   r.FirstToFinal,
		RankingDepth:   r.RankingDepth,
		InvalidBallots: r.InvalidBallots,
	})
}

func round2(v float64) float64 {
	d, _ := decimal.NewFromFloat(v).Round(2).Float64()

	return d
}

func roundTwoDecimals(trace *roundtrace.Trace) *roundtrace.Trace {
	if trace == nil {
		return nil
	}

	out := &roundtrace.Trace{Rounds: make([]roundtrace.Round, len(trace.Rounds))}
	for i, r := range trace.Rounds {
		rr := r
		rr.Allocations = make([]roundtrace.Allocation, len(r.Allocations))
		for j, a := range r.Allocations {
			rr.Allocations[j] = roundtrace.Allocation{Allocatee: a.Allocatee, Votes: round2(a.Votes)}
		}
		rr.Transfers = make([]roundtrace.Transfer, len(r.Transfers))
		for j, t := range r.Transfers {
			rr.Transfers[j] = roundtrace.Transfer{From: t.From, To: t.To, Count: round2(t.Count), Kind: t.Kind}
		}
		rr.ContinuingTotal = round2(r.ContinuingTotal)
		out.Rounds[i] = rr
	}

	return out
}

func roundSummaries(in []CandidateSummary) []CandidateSummary {
	out := make([]CandidateSummary, len(in))
	for i, s := range in {
		out[i] = s
		out[i].FirstRoundVotes = round2(s.FirstRoundVotes)
		out[i].TransferVotes = round2(s.TransferVotes)
	}

	return out
}
