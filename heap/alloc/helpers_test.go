package alloc

import (
	"sort"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/joshuapare/buddyheap/heap/arena"
	"github.com/joshuapare/buddyheap/internal/format"
	"github.com/joshuapare/buddyheap/internal/list"
)

// newTestAllocator builds an allocator over a fully-committable in-memory
// arena of 1<<maxLog2 bytes.
func newTestAllocator(t *testing.T, maxLog2 uint) (*Allocator, *arena.Fixed) {
	t.Helper()

	mem := arena.NewFixed(make([]byte, int64(1)<<maxLog2))
	a, err := New(mem, &Config{MinAllocLog2: 4, MaxAllocLog2: maxLog2})
	require.NoError(t, err)
	return a, mem
}

// freeSets collects the free-list contents per bucket.
func freeSets(a *Allocator) []map[int64]bool {
	sets := make([]map[int64]bool, a.buckets)
	for b := 0; b < a.buckets; b++ {
		sets[b] = make(map[int64]bool)
		a.free.Each(a.free.Head(b), func(e list.Ref) {
			sets[b][e] = true
		})
	}
	return sets
}

// splitAllZero reports whether no node is marked split.
func splitAllZero(a *Allocator) bool {
	for _, b := range a.split {
		if b != 0 {
			return false
		}
	}
	return true
}

// state captures everything that must be byte-identical across a failed call.
type state struct {
	split []byte
	lists [][]int64
	brk   int64
}

func captureState(a *Allocator) state {
	s := state{
		split: append([]byte(nil), a.split...),
		lists: make([][]int64, a.buckets),
		brk:   a.mem.Break(),
	}
	for b := 0; b < a.buckets; b++ {
		a.free.Each(a.free.Head(b), func(e list.Ref) {
			s.lists[b] = append(s.lists[b], e)
		})
	}
	return s
}

// checkInvariants validates the universal invariants that must hold between
// calls: free-entry alignment, the live/free partition of the arena, and the
// split bit of every internal node against the XOR of its children's UNUSED
// flags. live maps payload refs to their request sizes.
func checkInvariants(t *testing.T, a *Allocator, live map[Ref]int64) {
	t.Helper()

	// Free entries aligned to their class, in range, no duplicates.
	free := make([]map[int64]bool, a.buckets)
	for b := 0; b < a.buckets; b++ {
		free[b] = make(map[int64]bool)
		size := a.blockSize(b)
		a.free.Each(a.free.Head(b), func(e list.Ref) {
			require.GreaterOrEqual(t, e, int64(0), "bucket %d entry out of range", b)
			require.Less(t, e, a.size, "bucket %d entry out of range", b)
			require.Zero(t, e&(size-1), "bucket %d entry %d not aligned to %d", b, e, size)
			require.False(t, free[b][e], "bucket %d entry %d duplicated", b, e)
			free[b][e] = true
		})
	}

	// Live and free blocks must partition the arena exactly.
	type span struct{ off, size int64 }
	var spans []span
	for ref, req := range live {
		b := a.bucketFor(req + format.HeaderSize)
		spans = append(spans, span{ref - format.HeaderSize, a.blockSize(b)})
	}
	for b := range free {
		for off := range free[b] {
			spans = append(spans, span{off, a.blockSize(b)})
		}
	}
	sort.Slice(spans, func(i, j int) bool { return spans[i].off < spans[j].off })
	var cursor int64
	for _, s := range spans {
		require.Equal(t, cursor, s.off, "blocks overlap or leave a gap at %d", s.off)
		cursor += s.size
	}
	require.Equal(t, a.size, cursor, "blocks do not cover the arena")

	// Split bits: a node is UNUSED when it sits on its bucket's free list or
	// is wholly covered by UNUSED descendants.
	var unused func(i int64, b int) bool
	unused = func(i int64, b int) bool {
		if free[b][a.offsetFor(i, b)] {
			return true
		}
		if b == a.buckets-1 {
			return false
		}
		return unused(2*i+1, b+1) && unused(2*i+2, b+1)
	}
	var walk func(i int64, b int)
	walk = func(i int64, b int) {
		if b >= a.buckets-1 {
			return
		}
		l := unused(2*i+1, b+1)
		r := unused(2*i+2, b+1)
		require.Equal(t, l != r, a.split.get(i),
			"split bit of node %d (bucket %d) disagrees with children", i, b)
		walk(2*i+1, b+1)
		walk(2*i+2, b+1)
	}
	walk(0, 0)
}
