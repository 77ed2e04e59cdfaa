package rangetree

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/mibar/covmerge/internal/coverage"
)

func rng(start, end int, count int64) coverage.RangeCov {
	return coverage.RangeCov{StartOffset: start, EndOffset: end, Count: count}
}

func TestFromSortedRangesEmpty(t *testing.T) {
	a := NewArena()
	if got := FromSortedRanges(a, nil); got != nil {
		t.Fatalf("expected nil, got %+v", got)
	}
}

func TestFromSortedRangesFlat(t *testing.T) {
	a := NewArena()
	tree := FromSortedRanges(a, []coverage.RangeCov{rng(0, 9, 1)})
	if tree.Start != 0 || tree.End != 9 || tree.Count != 1 || len(tree.Children) != 0 {
		t.Fatalf("unexpected tree: %+v", tree)
	}
}

func TestFromSortedRangesNested(t *testing.T) {
	a := NewArena()
	ranges := []coverage.RangeCov{
		rng(0, 9, 10),
		rng(1, 8, 6),
		rng(1, 5, 5),
		rng(5, 8, 7),
	}
	tree := FromSortedRanges(a, ranges)
	if tree.Start != 0 || tree.End != 9 || tree.Count != 10 {
		t.Fatalf("root mismatch: %+v", tree)
	}
	if len(tree.Children) != 1 {
		t.Fatalf("expected one child, got %d", len(tree.Children))
	}
	mid := tree.Children[0]
	if mid.Start != 1 || mid.End != 8 || mid.Count != 6 || len(mid.Children) != 2 {
		t.Fatalf("mid mismatch: %+v", mid)
	}
	if mid.Children[0].Start != 1 || mid.Children[0].End != 5 || mid.Children[0].Count != 5 {
		t.Fatalf("left child mismatch: %+v", mid.Children[0])
	}
	if mid.Children[1].Start != 5 || mid.Children[1].End != 8 || mid.Children[1].Count != 7 {
		t.Fatalf("right child mismatch: %+v", mid.Children[1])
	}
}

func TestToRangesRoundTrip(t *testing.T) {
	a := NewArena()
	ranges := []coverage.RangeCov{
		rng(0, 9, 10),
		rng(1, 8, 6),
		rng(1, 5, 5),
		rng(5, 8, 7),
	}
	tree := FromSortedRanges(a, ranges)
	got := ToRanges(tree)
	if diff := cmp.Diff(ranges, got); diff != "" {
		t.Fatalf("round trip mismatch (-want +got):\n%s", diff)
	}
}

func TestSplitPartitionsChildren(t *testing.T) {
	a := NewArena()
	ranges := []coverage.RangeCov{
		rng(0, 9, 1),
		rng(1, 4, 2),
		rng(4, 7, 3),
	}
	tree := FromSortedRanges(a, ranges)

	left, right := Split(a, tree, 5)
	if left.Start != 0 || left.End != 5 || left.Count != 1 {
		t.Fatalf("left mismatch: %+v", left)
	}
	if right.Start != 5 || right.End != 9 || right.Count != 1 {
		t.Fatalf("right mismatch: %+v", right)
	}

	// [1,4) lies fully left, [4,7) straddles 5 and must be split itself.
	if len(left.Children) != 2 || len(right.Children) != 1 {
		t.Fatalf("unexpected child split: left=%d right=%d", len(left.Children), len(right.Children))
	}
	if left.Children[0].Start != 1 || left.Children[0].End != 4 {
		t.Fatalf("left child 0 mismatch: %+v", left.Children[0])
	}
	straddleLeft := left.Children[1]
	straddleRight := right.Children[0]
	if straddleLeft.Start != 4 || straddleLeft.End != 5 || straddleLeft.Count != 3 {
		t.Fatalf("straddling left half mismatch: %+v", straddleLeft)
	}
	if straddleRight.Start != 5 || straddleRight.End != 7 || straddleRight.Count != 3 {
		t.Fatalf("straddling right half mismatch: %+v", straddleRight)
	}
}

func TestAddCountRecurses(t *testing.T) {
	a := NewArena()
	tree := FromSortedRanges(a, []coverage.RangeCov{rng(0, 9, 1), rng(2, 5, 2)})
	AddCount(tree, 10)
	if tree.Count != 11 {
		t.Fatalf("root count = %d, want 11", tree.Count)
	}
	if tree.Children[0].Count != 12 {
		t.Fatalf("child count = %d, want 12", tree.Children[0].Count)
	}
}

func TestNormalizeCollapsesEqualCountTouchingSiblings(t *testing.T) {
	a := NewArena()
	// [1,5) and [5,8), both count 7, touch at 5: should collapse into [1,8).
	tree := a.New(0, 9, 5, []*Node{
		a.New(1, 5, 7, nil),
		a.New(5, 8, 7, nil),
	})
	got := Normalize(a, tree)
	if len(got.Children) != 1 {
		t.Fatalf("expected one collapsed child, got %d: %+v", len(got.Children), got.Children)
	}
	c := got.Children[0]
	if c.Start != 1 || c.End != 8 || c.Count != 7 {
		t.Fatalf("collapsed child mismatch: %+v", c)
	}
}

func TestNormalizeDoesNotCollapseDifferentCounts(t *testing.T) {
	a := NewArena()
	tree := a.New(0, 9, 5, []*Node{
		a.New(1, 5, 7, nil),
		a.New(5, 8, 9, nil),
	})
	got := Normalize(a, tree)
	if len(got.Children) != 2 {
		t.Fatalf("expected two children, got %d", len(got.Children))
	}
}

func TestNormalizePromotesSingleFullSpanChild(t *testing.T) {
	a := NewArena()
	tree := a.New(0, 9, 1, []*Node{
		a.New(0, 9, 5, []*Node{a.New(0, 4, 5, nil)}),
	})
	got := Normalize(a, tree)
	if got.Count != 5 {
		t.Fatalf("count = %d, want 5 (promoted)", got.Count)
	}
	if len(got.Children) != 1 || got.Children[0].Start != 0 || got.Children[0].End != 4 {
		t.Fatalf("unexpected children after promotion: %+v", got.Children)
	}
}
