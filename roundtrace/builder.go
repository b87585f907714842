package roundtrace

import "sort"

// SortTransfers orders transfers by (from_index ascending, to_index
// ascending) per spec.md §5's canonical within-round ordering, with
// Exhausted (-1) sorting before any candidate index as the "to" column.
// The elimination/surplus tag on each transfer is preserved untouched.
func SortTransfers(transfers []Transfer) {
	sort.SliceStable(transfers, func(i, j int) bool {
		if transfers[i].From != transfers[j].From {
			return transfers[i].From < transfers[j].From
		}

		return transfers[i].To < transfers[j].To
	})
}

// SortAllocations orders allocation rows by Allocatee ascending, so
// Exhausted (-1) sorts first, matching SortTransfers' "to" ordering and
// giving byte-identical trace output across runs (Q6).
func SortAllocations(allocations []Allocation) {
	sort.SliceStable(allocations, func(i, j int) bool {
		return allocations[i].Allocatee < allocations[j].Allocatee
	})
}
