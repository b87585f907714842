// Package roundtrace is the shared trace model; see types.go for the
// Round/Allocation/Transfer shapes and builder.go for the canonical
// within-round ordering helpers.
package roundtrace
