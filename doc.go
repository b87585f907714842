// Package rcvcore (rcvcore) is your in-memory engine for tabulating
// ranked-choice contests and reconstructing how every vote moved round
// by round.
//
// 🚀 What is rcvcore?
//
//	A deterministic, thread-free library that brings together:
//
//	  • Canonical ballots: collapse raw rank sequences into a
//	    multiplicity-bearing canonical form once, reuse it everywhere
//	  • Two round engines: single-winner IRV / Cambridge-style
//	    whole-ballot STV (integer piles) and Portland-style fractional
//	    STV (weighted inclusive Gregory surplus transfer)
//	  • A shared round trace: every engine emits the same
//	    allocation/transfer shape, ready for a Sankey diagram
//	  • Ballot-level analytics: pairwise preferences, first-alternate,
//	    first-to-final, and ranking-depth distribution
//
// ✨ Why choose rcvcore?
//
//   - Deterministic — same input, same RunID aside, byte-identical report
//   - No I/O in the core — callers own loading and persistence
//   - Engine-agnostic reporting — one Trace shape for both STV variants
//   - Pure Go — the only non-stdlib surface is the ambient stack
//     (logging, metrics, config, CLI), never the tabulation math itself
//
// Under the hood, everything is organized under a handful of
// subpackages:
//
//	ballot/      — canonical ballot model, dedup, runtime expansion
//	quota/       — Droop quota
//	wholeballot/ — IRV + Cambridge/Scotland-style whole-ballot STV
//	fractional/  — Portland-style weighted inclusive Gregory STV
//	roundtrace/  — shared round-by-round trace model
//	analytics/   — pairwise, first-alternate, first-to-final, ranking depth
//	contest/     — end-to-end orchestration, error kinds, report JSON
//	rcvlog/      — structured per-round logging
//	rcvmetrics/  — prometheus counters and histograms
//	rcvconfig/   — tunable constants (epsilon, tie tolerance, round cap)
//	cmd/rcvtab/  — a demonstration CLI that exercises the library end to end
//
// Quick shape, for a single-winner IRV contest:
//
//	in := contest.ContestInput{
//	    Candidates: candidates,
//	    Ballots:    ballot.Canonicalize(rawRankings),
//	    Seats:      1,
//	    Variant:    contest.VariantIRV,
//	}
//	report, err := contest.Tabulate(in, contest.DefaultOptions())
//
// See SPEC_FULL.md and DESIGN.md at the module root for the full
// specification this engine implements and the grounding behind every
// package's design.
package rcvcore
