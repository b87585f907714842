package contest

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	pkgerrors "github.com/pkg/errors"

	"github.com/opencount/rcvcore/analytics"
	"github.com/opencount/rcvcore/ballot"
	"github.com/opencount/rcvcore/fractional"
	"github.com/opencount/rcvcore/rcvconfig"
	"github.com/opencount/rcvcore/rcvlog"
	"github.com/opencount/rcvcore/rcvmetrics"
	"github.com/opencount/rcvcore/roundtrace"
	"github.com/opencount/rcvcore/wholeballot"
)

// Options configures a Tabulate call.
type Options struct {
	Logger  rcvlog.Logger
	Config  rcvconfig.Config
	Metrics rcvmetrics.Recorder
}

// DefaultOptions returns Options with a disabled logger, spec-default
// tunables, and a no-op metrics recorder.
func DefaultOptions() Options {
	return Options{
		Logger:  rcvlog.Noop(),
		Config:  rcvconfig.Default(),
		Metrics: rcvmetrics.Noop(),
	}
}

// Tabulate runs one contest end to end (spec.md §6): it validates in,
// dispatches to the round engine named by in.Variant, runs the
// analytics package over the same canonical ballots and the resulting
// trace, and assembles a ContestReport.
func Tabulate(in ContestInput, opts Options) (*ContestReport, error) {
	if err := validate(in); err != nil {
		opts.Metrics.Aborted("invalid_contest")
		return nil, err
	}
	if err := ballot.Validate(in.Ballots, len(in.Candidates)); err != nil {
		opts.Metrics.Aborted("inconsistent_ballot")
		return nil, pkgerrors.WithStack(fmt.Errorf("%w: %w", ErrInconsistentBallot, err))
	}

	quotaBallotCount := in.QuotaBallotCount
	if quotaBallotCount <= 0 {
		quotaBallotCount = ballot.TotalMultiplicity(in.Ballots)
	}

	start := time.Now()
	trace, winners, q, summaries, err := dispatch(in, quotaBallotCount, opts)
	if err != nil {
		switch {
		case err == wholeballot.ErrRoundCapExceeded || err == fractional.ErrRoundCapExceeded:
			opts.Metrics.Aborted("round_cap_exceeded")
			return nil, wrapf(ErrRoundCapExceeded, "variant %s exceeded %d rounds", in.Variant, opts.Config.RoundCapMultiplier*len(in.Candidates))
		case err == fractional.ErrNumericInconsistency:
			opts.Metrics.Aborted("numeric_inconsistency")
			return nil, wrapf(ErrNumericInconsistency, "conservation check failed beyond epsilon %g", opts.Config.Epsilon)
		case err == wholeballot.ErrTooFewCandidates || err == fractional.ErrTooFewCandidates:
			opts.Metrics.Aborted("invalid_contest")
			return nil, wrapf(ErrInvalidContest, "fewer candidates (%d) than seats (%d)", len(in.Candidates), in.Seats)
		default:
			return nil, err
		}
	}
	duration := time.Since(start)
	opts.Metrics.ContestTabulated(in.Variant.String(), len(trace.Rounds), duration)

	report := &ContestReport{
		RunID:          uuid.New(),
		Variant:        in.Variant,
		Trace:          trace,
		Winners:        winners,
		Quota:          q,
		Summaries:      summaries,
		Pairwise:       analytics.PairwisePreferences(in.Candidates, in.Ballots),
		FirstAlternate: analytics.FirstAlternate(in.Candidates, in.Ballots),
		FirstToFinal:   analytics.FirstToFinal(in.Candidates, in.Ballots, trace),
		RankingDepth:   analytics.ComputeRankingDepth(in.Ballots),
		InvalidBallots: in.InvalidBallots,
	}

	return report, nil
}

func validate(in ContestInput) error {
	if in.Seats < 1 {
		return wrapf(ErrInvalidContest, "seats must be >= 1, got %d", in.Seats)
	}
	if len(in.Candidates) == 0 {
		return wrapf(ErrInvalidContest, "candidates must be non-empty")
	}
	if in.Variant == VariantIRV && in.Seats > 1 {
		return wrapf(ErrInvalidContest, "IRV requires seats == 1, got %d", in.Seats)
	}

	return nil
}

func dispatch(in ContestInput, quotaBallotCount int, opts Options) (*roundtrace.Trace, []int, int, []CandidateSummary, error) {
	switch in.Variant {
	case VariantIRV:
		wbOpts := wholeballot.Options{Logger: opts.Logger, Config: opts.Config}
		trace, winners, q, summaries, err := wholeballot.Tabulate(
			in.Candidates, in.Ballots, in.Seats, wholeballot.RuleIRV, quotaBallotCount, wbOpts)
		return trace, winners, q, adaptWholeBallotSummaries(summaries), err

	case VariantWholeBallotSTV:
		if in.Seats == 1 {
			opts.Logger.Warn("whole-ballot STV with seats=1 is equivalent to IRV without majority short-circuit")
		}
		wbOpts := wholeballot.Options{Logger: opts.Logger, Config: opts.Config}
		trace, winners, q, summaries, err := wholeballot.Tabulate(
			in.Candidates, in.Ballots, in.Seats, wholeballot.RuleSTV, quotaBallotCount, wbOpts)
		return trace, winners, q, adaptWholeBallotSummaries(summaries), err

	case VariantFractionalSTV:
		if in.Seats == 1 {
			opts.Logger.Warn("fractional STV with seats=1 is a degenerate single-winner case")
		}
		fracOpts := fractional.Options{Logger: opts.Logger, Config: opts.Config}
		trace, winners, q, summaries, err := fractional.Tabulate(
			in.Candidates, in.Ballots, in.Seats, quotaBallotCount, fracOpts)
		return trace, winners, q, adaptFractionalSummaries(summaries), err

	default:
		return nil, nil, 0, nil, wrapf(ErrInvalidContest, "unsupported variant %d", in.Variant)
	}
}

func adaptWholeBallotSummaries(in []wholeballot.Summary) []CandidateSummary {
	out := make([]CandidateSummary, len(in))
	for i, s := range in {
		out[i] = CandidateSummary{
			CandidateIndex:  s.CandidateIndex,
			FirstRoundVotes: float64(s.FirstRoundVotes),
			TransferVotes:   float64(s.TransferVotes),
			RoundElected:    s.RoundElected,
			RoundEliminated: s.RoundEliminated,
			Winner:          s.Winner,
		}
	}

	return out
}

func adaptFractionalSummaries(in []fractional.Summary) []CandidateSummary {
	out := make([]CandidateSummary, len(in))
	for i, s := range in {
		out[i] = CandidateSummary{
			CandidateIndex:  s.CandidateIndex,
			FirstRoundVotes: s.FirstRoundVotes,
			TransferVotes:   s.TransferVotes,
			RoundElected:    s.RoundElected,
			RoundEliminated: s.RoundEliminated,
			Winner:          s.Winner,
		}
	}

	return out
}
