package rangetree

import "github.com/mibar/covmerge/internal/coverage"

// Node is an in-memory, arena-owned range tree node: a half-open interval
// [Start, End) with an execution Count and a sorted, pairwise-disjoint,
// contained forest of Children.
//
// Outside Split and the intermediate state inside normalize, every
// reachable Node satisfies:
//   - Start < End
//   - Children are sorted by Start and pairwise disjoint
//   - for every child c: Start <= c.Start and c.End <= End
type Node struct {
	Start    int
	End      int
	Count    int64
	Children []*Node
}

// Split cuts tree at offset, which must lie strictly inside
// (tree.Start, tree.End), into two trees of tree's Count: one covering
// [tree.Start, offset) and one covering [offset, tree.End). Children
// entirely on one side are moved there as-is; a child straddling offset is
// itself recursively split and its pieces placed on both sides.
func Split(a *Arena, tree *Node, offset int) (left, right *Node) {
	var leftChildren, rightChildren []*Node
	for _, c := range tree.Children {
		switch {
		case c.End <= offset:
			leftChildren = append(leftChildren, c)
		case offset <= c.Start:
			rightChildren = append(rightChildren, c)
		default:
			lc, rc := Split(a, c, offset)
			leftChildren = append(leftChildren, lc)
			rightChildren = append(rightChildren, rc)
		}
	}
	left = a.New(tree.Start, offset, tree.Count, leftChildren)
	right = a.New(offset, tree.End, tree.Count, rightChildren)
	return left, right
}

// AddCount adds delta to tree's Count and recursively to every descendant.
// Used to fold in the count of an "open" parent tree that contributes no
// native child at a given sweep offset (see internal/mergecov).
func AddCount(tree *Node, delta int64) {
	if delta == 0 {
		return
	}
	tree.Count += delta
	for _, c := range tree.Children {
		AddCount(c, delta)
	}
}

// ToRanges flattens tree into pre-order RangeCov, the inverse of
// FromSortedRanges.
func ToRanges(tree *Node) []coverage.RangeCov {
	ranges := make([]coverage.RangeCov, 0)
	stack := []*Node{tree}
	for len(stack) > 0 {
		cur := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		ranges = append(ranges, coverage.RangeCov{
			StartOffset: cur.Start,
			EndOffset:   cur.End,
			Count:       cur.Count,
		})
		for i := len(cur.Children) - 1; i >= 0; i-- {
			stack = append(stack, cur.Children[i])
		}
	}
	return ranges
}
