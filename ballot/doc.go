// Package ballot is the canonical ballot layer of rcvcore: see types.go
// for Candidate, Allocatee, Ballot, RuntimeBallot and canonicalize.go for
// Canonicalize, Validate, Expand.
package ballot
