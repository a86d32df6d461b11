package splitter

import "sort"

// pairSlice sorts a float64 slice and an int slice in lockstep through
// sort.Interface, carrying the sample-index permutation along with the
// feature values it indexes. Grounded in wlattner-rf/tree/sort.go's
// paired-sort need (the threshold sweep must keep X and P in the same
// order) but routed through the standard library's own introsort
// (sort.Sort) rather than hand-porting one, since a Swap that moves both
// slices is all sort.Interface requires.
type pairSlice struct {
	x   []float64
	idx []int
}

func (p pairSlice) Len() int           { return len(p.x) }
func (p pairSlice) Less(i, j int) bool { return p.x[i] < p.x[j] }
func (p pairSlice) Swap(i, j int) {
	p.x[i], p.x[j] = p.x[j], p.x[i]
	p.idx[i], p.idx[j] = p.idx[j], p.idx[i]
}

// pairedSort sorts x[lo:hi] ascending, carrying the same permutation through
// idx. Both slices must have equal length.
func pairedSort(x []float64, idx []int, lo, hi int) {
	sort.Sort(pairSlice{x: x[lo:hi], idx: idx[lo:hi]})
}
