package contest

import (
	"errors"
	"fmt"

	pkgerrors "github.com/pkg/errors"
)

// The four error kinds spec.md §7 requires callers be able to
// distinguish. Each is wrapped with github.com/pkg/errors at the point
// of return so an abort carries a stack trace for post-mortem
// debugging; errors.Is against these sentinels still works since
// pkgerrors.Wrap preserves Unwrap.
var (
	// ErrInvalidContest: seats < 1, candidates empty, or a variant
	// unsupported for the given seat count (IRV with seats > 1).
	ErrInvalidContest = errors.New("contest: invalid contest configuration")

	// ErrInconsistentBallot: a ballot references a candidate index
	// outside the candidate table. Treated as a loader bug.
	ErrInconsistentBallot = errors.New("contest: ballot references out-of-range candidate index")

	// ErrRoundCapExceeded: the round engine's safety limit tripped.
	ErrRoundCapExceeded = errors.New("contest: round cap exceeded")

	// ErrNumericInconsistency: the fractional engine's end-of-tabulation
	// conservation check failed beyond Config.Epsilon.
	ErrNumericInconsistency = errors.New("contest: numeric inconsistency")
)

func wrapf(sentinel error, format string, args ...any) error {
	return pkgerrors.Wrap(sentinel, fmt.Sprintf(format, args...))
}
