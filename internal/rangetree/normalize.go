package rangetree

// Normalize rewrites tree in place into the canonical form required of
// merge output: no child spans its parent's full interval, and no two
// adjacent siblings share both a Count and a touching boundary. It returns
// tree for chaining.
//
// Processing is post-order. At each node, adjacent children are grouped
// into maximal chains where left.End == right.Start && left.Count ==
// right.Count; each chain collapses into one node spanning the chain (its
// children are the concatenation of the chain members' children, itself
// then normalized recursively). Finally, if exactly one child remains and
// it spans the node's whole [Start, End), the child is promoted: the node
// adopts its Count and Children, and the wrapper disappears.
func Normalize(a *Arena, tree *Node) *Node {
	collapsed := make([]*Node, 0, len(tree.Children))
	chain := tree.Children[:0:0]

	flush := func() {
		if len(chain) == 0 {
			return
		}
		head := chain[0]
		for _, n := range chain[1:] {
			head.End = n.End
			head.Children = append(head.Children, n.Children...)
		}
		collapsed = append(collapsed, Normalize(a, head))
		chain = chain[:0]
	}

	for _, child := range tree.Children {
		if len(chain) > 0 {
			last := chain[len(chain)-1]
			if !(last.Count == child.Count && last.End == child.Start) {
				flush()
			}
		}
		chain = append(chain, child)
	}
	flush()

	tree.Children = collapsed

	if len(collapsed) == 1 && collapsed[0].Start == tree.Start && collapsed[0].End == tree.End {
		only := collapsed[0]
		tree.Count = only.Count
		tree.Children = only.Children
	}

	return tree
}
