package rangetree

// Arena owns every Node created during one Function merge invocation.
// Nodes are allocated in fixed-capacity blocks so that pointers handed out
// by New stay valid for the arena's lifetime — a slice growing past its
// capacity would otherwise relocate already-issued *Node pointers.
//
// This mirrors the typed_arena-backed RangeTreeArena in the reference
// implementation (demurgos/v8-coverage, rs/src/range_tree.rs): splitting and
// re-parenting nodes during the sweep is cheap when allocation is a bump
// pointer and teardown is "drop the whole arena", rather than tracking
// individual node lifetimes.
//
// An Arena is not safe for concurrent use; callers that parallelize Script
// or Function merges (see internal/mergecov) give each goroutine its own
// Arena.
type Arena struct {
	blockSize int
	blocks    [][]Node
}

const defaultBlockSize = 64

// NewArena returns an empty Arena with a default block size.
func NewArena() *Arena {
	return &Arena{blockSize: defaultBlockSize}
}

// NewArenaWithCapacity returns an empty Arena sized for roughly n nodes,
// useful when the caller can estimate the input range count up front.
func NewArenaWithCapacity(n int) *Arena {
	if n < 1 {
		n = 1
	}
	return &Arena{blockSize: n}
}

// New allocates a Node with the given fields and returns a stable pointer
// to it, owned by the arena.
func (a *Arena) New(start, end int, count int64, children []*Node) *Node {
	n := a.alloc()
	n.Start = start
	n.End = end
	n.Count = count
	n.Children = children
	return n
}

func (a *Arena) alloc() *Node {
	if len(a.blocks) == 0 {
		a.blocks = append(a.blocks, make([]Node, 0, a.blockSize))
	}
	last := a.blocks[len(a.blocks)-1]
	if len(last) == cap(last) {
		a.blocks = append(a.blocks, make([]Node, 0, a.blockSize))
		last = a.blocks[len(a.blocks)-1]
	}
	last = last[:len(last)+1]
	a.blocks[len(a.blocks)-1] = last
	return &last[len(last)-1]
}
