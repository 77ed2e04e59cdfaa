// Package mergecov implements the three nested V8 coverage merge layers —
// Function, Script, and Process — described in SPEC_FULL.md §2.
//
// Function merge is the core: it sums a forest of properly-nested coverage
// range trees for one function into a single normalized tree, introducing
// synthetic boundaries wherever two inputs partition the same interval
// differently. Script and Process merge are mechanical group-and-delegate
// layers on top of it.
//
// All three merges are pure functions of their inputs: no logging, no I/O,
// no persisted state. internal/rangetree holds the range-tree data
// structure; internal/eventqueue holds the sweep's offset-ordered event
// source.
package mergecov

import (
	"sort"

	"github.com/mibar/covmerge/internal/coverage"
	"github.com/mibar/covmerge/internal/eventqueue"
	"github.com/mibar/covmerge/internal/rangetree"
)

// MergeFunctions merges a list of FunctionCov sharing the same root
// (StartOffset, EndOffset) into one FunctionCov whose ranges are the
// normalized pointwise sum. It returns (nil, nil) for an empty input and a
// clone of the single input for a single-element input.
func MergeFunctions(funcs []coverage.FunctionCov) (*coverage.FunctionCov, error) {
	switch len(funcs) {
	case 0:
		return nil, nil
	case 1:
		clone := funcs[0].Clone()
		return &clone, nil
	}

	arena := rangetree.NewArenaWithCapacity(totalRanges(funcs))
	trees := make([]*rangetree.Node, 0, len(funcs))
	for _, f := range funcs {
		ranges := f.Ranges
		if len(ranges) == 0 {
			return nil, &MalformedInputError{
				FunctionName: f.FunctionName,
				Reason:       "function has no ranges",
			}
		}
		tree := rangetree.FromSortedRanges(arena, ranges)
		trees = append(trees, tree)
	}

	root := trees[0]
	for _, t := range trees[1:] {
		if t.Start != root.Start || t.End != root.End {
			return nil, &MalformedInputError{
				FunctionName: funcs[0].FunctionName,
				Range:        coverage.RangeCov{StartOffset: t.Start, EndOffset: t.End},
				Reason:       "root range does not match the other inputs",
			}
		}
	}

	merged := mergeNodes(arena, trees)
	merged = rangetree.Normalize(arena, merged)
	ranges := rangetree.ToRanges(merged)

	return &coverage.FunctionCov{
		FunctionName:    funcs[0].FunctionName,
		Ranges:          ranges,
		IsBlockCoverage: !isSingleZeroRange(ranges),
	}, nil
}

func totalRanges(funcs []coverage.FunctionCov) int {
	n := 0
	for _, f := range funcs {
		n += len(f.Ranges)
	}
	return n
}

func isSingleZeroRange(ranges []coverage.RangeCov) bool {
	return len(ranges) == 1 && ranges[0].Count == 0
}

// mergeNodes merges a non-empty set of RangeTree nodes that all share the
// same [Start, End): it sums their Count and merges their Children via the
// sweep (sweepChildren). Every recursive call inside the sweep maintains
// this same-bounds precondition by construction (see sweepChildren).
func mergeNodes(a *rangetree.Arena, nodes []*rangetree.Node) *rangetree.Node {
	var count int64
	for _, n := range nodes {
		count += n.Count
	}
	children := sweepChildren(a, nodes)
	return a.New(nodes[0].Start, nodes[0].End, count, children)
}

// childEvent is one child beginning at some offset, labelled by which
// parent (index into the `parents` slice passed to sweepChildren) it came
// from.
type childEvent struct {
	parent int
	tree   *rangetree.Node
}

// openRange is the interval currently being grouped by the sweep: some
// parents' children span exactly [start, end) (the "flat" case), others
// would have ended before `end` and must be wrapped to align with it.
type openRange struct {
	start, end int
}

// sweepChildren implements SPEC_FULL.md §4.5.1: it merges the children of
// `parents` (nodes sharing one [Start, End)) into the single disjoint,
// properly-nested sibling forest that is `parents`' pointwise sum at the
// next level down.
//
// Different inputs partition [Start, End) into children differently. The
// sweep walks child-start events in offset order, and whenever one parent's
// child would end before another's still-open child, it "wraps" the
// shorter-lived parent's pieces in a synthetic node spanning the longer
// interval — so that by the time two parents are compared at the same
// offset, they always cover the same span, and the recursive merge in the
// "final per-offset merge" below is always well-formed.
func sweepChildren(a *rangetree.Arena, parents []*rangetree.Node) []*rangetree.Node {
	n := len(parents)
	parentCount := make([]int64, n)
	for i, p := range parents {
		parentCount[i] = p.Count
	}

	queue := eventqueue.New[childEvent]()
	for i, p := range parents {
		for _, c := range p.Children {
			queue.Push(c.Start, childEvent{parent: i, tree: c})
		}
	}

	flat := make([][]*rangetree.Node, n)
	wrapped := make([][]*rangetree.Node, n)
	var open *openRange
	nested := make(map[int][]*rangetree.Node)

	closeOpen := func() {
		if open == nil {
			return
		}
		for i, ns := range nested {
			if len(ns) == 0 {
				continue
			}
			wrapped[i] = append(wrapped[i], a.New(open.start, open.end, parentCount[i], ns))
		}
		nested = make(map[int][]*rangetree.Node)
		open = nil
	}

	for {
		ev, ok := queue.Pop()
		if !ok {
			break
		}
		offset := ev.Offset

		if open != nil && open.end <= offset {
			closeOpen()
		}

		if open != nil {
			for _, it := range ev.Values {
				i, child := it.parent, it.tree
				if child.End > open.end {
					left, right := rangetree.Split(a, child, open.end)
					queue.Push(open.end, childEvent{parent: i, tree: right})
					nested[i] = append(nested[i], left)
				} else {
					nested[i] = append(nested[i], child)
				}
			}
			continue
		}

		openEnd := 0
		for _, it := range ev.Values {
			if it.tree.End > openEnd {
				openEnd = it.tree.End
			}
		}
		for _, it := range ev.Values {
			i, child := it.parent, it.tree
			if child.End == openEnd {
				flat[i] = append(flat[i], child)
			} else {
				nested[i] = append(nested[i], child)
			}
		}
		open = &openRange{start: offset, end: openEnd}
	}
	closeOpen()

	siblings := make([][]*rangetree.Node, n)
	for i := range siblings {
		siblings[i] = mergeByStart(flat[i], wrapped[i])
	}

	return finalMerge(a, siblings, parentCount)
}

// mergeByStart two-way merges a and b, both already sorted by Start, into
// one sorted slice.
func mergeByStart(a, b []*rangetree.Node) []*rangetree.Node {
	out := make([]*rangetree.Node, 0, len(a)+len(b))
	i, j := 0, 0
	for i < len(a) && j < len(b) {
		if a[i].Start <= b[j].Start {
			out = append(out, a[i])
			i++
		} else {
			out = append(out, b[j])
			j++
		}
	}
	out = append(out, a[i:]...)
	out = append(out, b[j:]...)
	return out
}

// finalMerge walks every distinct Start offset across all parents' sibling
// forests. At each offset, it collects the node starting there from each
// parent that has one; a parent with no node there contributes its own
// Count as an "extra" background count (it covers this offset uniformly,
// just without a dedicated child). The collected nodes, which by
// construction all share the same [Start, End) (see sweepChildren's
// wrapping), are merged recursively.
func finalMerge(a *rangetree.Arena, siblings [][]*rangetree.Node, parentCount []int64) []*rangetree.Node {
	offsetSet := make(map[int]struct{})
	for _, s := range siblings {
		for _, node := range s {
			offsetSet[node.Start] = struct{}{}
		}
	}
	offsets := make([]int, 0, len(offsetSet))
	for o := range offsetSet {
		offsets = append(offsets, o)
	}
	sort.Ints(offsets)

	cursors := make([]int, len(siblings))
	out := make([]*rangetree.Node, 0, len(offsets))

	for _, offset := range offsets {
		var collected []*rangetree.Node
		var extra int64
		for i, s := range siblings {
			if cursors[i] < len(s) && s[cursors[i]].Start == offset {
				collected = append(collected, s[cursors[i]])
				cursors[i]++
			} else {
				extra += parentCount[i]
			}
		}
		merged := mergeNodes(a, collected)
		if extra != 0 {
			rangetree.AddCount(merged, extra)
		}
		out = append(out, merged)
	}
	return out
}
