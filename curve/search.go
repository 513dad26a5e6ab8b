package curve

import "sort"

// searchKnot finds the first knot time >= t using binary search.
// exact reports whether times[idx] == t.
func searchKnot(times []float64, t float64) (idx int, exact bool) {
	idx = sort.SearchFloat64s(times, t)
	return idx, idx < len(times) && times[idx] == t
}

// bracketOrBoundary returns the index of the lower knot of the segment containing t.
// If t is outside the knot range, the nearest boundary segment is returned.
//
// It assumes at least two knots.
func bracketOrBoundary(times []float64, t float64) int {
	idx := sort.SearchFloat64s(times, t)
	if idx <= 0 {
		return 0
	}
	if idx >= len(times) {
		return len(times) - 2
	}
	return idx - 1
}
