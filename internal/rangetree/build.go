package rangetree

import (
	"math"

	"github.com/mibar/covmerge/internal/coverage"
)

// FromSortedRanges builds the range tree for one function from its ranges,
// which must already be in V8's pre-order (by StartOffset ascending, then
// EndOffset descending). It returns nil for an empty slice.
//
// The slice is consumed as a cursor: the root takes the first range, and
// then, recursively, while the next range starts strictly before the
// current node's end, it is consumed as a child (which in turn consumes its
// own children the same way). Callers pass the ranges of a single function,
// so exactly one tree comes out.
func FromSortedRanges(a *Arena, ranges []coverage.RangeCov) *Node {
	idx := 0
	return fromSortedRanges(a, ranges, &idx, math.MaxInt)
}

func fromSortedRanges(a *Arena, ranges []coverage.RangeCov, idx *int, parentEnd int) *Node {
	if *idx >= len(ranges) || ranges[*idx].StartOffset >= parentEnd {
		return nil
	}
	r := ranges[*idx]
	*idx++

	var children []*Node
	for {
		child := fromSortedRanges(a, ranges, idx, r.EndOffset)
		if child == nil {
			break
		}
		children = append(children, child)
	}
	return a.New(r.StartOffset, r.EndOffset, r.Count, children)
}
