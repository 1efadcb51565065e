package alloc

import (
	"fmt"
	"os"

	"github.com/joshuapare/buddyheap/heap/arena"
	"github.com/joshuapare/buddyheap/internal/format"
	"github.com/joshuapare/buddyheap/internal/list"
)

// Runtime debug flag for allocation logging - controlled by BUDDY_LOG_ALLOC env var.
var logAlloc = os.Getenv("BUDDY_LOG_ALLOC") != ""

// Ref is the address of an allocation: the byte offset of its payload within
// the arena. The 8 bytes immediately before it hold the block header.
type Ref = int64

// Allocator carves a reserved arena into power-of-two blocks tracked by an
// implicit binary tree. Not safe for concurrent use.
type Allocator struct {
	mem  arena.Arena
	data []byte
	cfg  Config

	buckets  int
	maxLog2  uint
	minAlloc int64
	size     int64

	// Bucketed free lists threaded through the free blocks, one circular
	// list per size class.
	free *list.Space

	// One bit per internal node: XOR of the children's UNUSED flags.
	split splitBits

	stats Stats
}

// New initializes an allocator over mem. A nil cfg uses DefaultConfig. The
// arena must be at least cfg.ArenaSize() bytes; the allocator manages the
// first cfg.ArenaSize() of them.
func New(mem arena.Arena, cfg *Config) (*Allocator, error) {
	if cfg == nil {
		cfg = &DefaultConfig
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	size := cfg.ArenaSize()
	if mem.Size() < size {
		return nil, fmt.Errorf("alloc: arena is %d bytes, config needs %d", mem.Size(), size)
	}

	a := &Allocator{
		mem:      mem,
		data:     mem.Bytes()[:size],
		cfg:      *cfg,
		buckets:  cfg.BucketCount(),
		maxLog2:  cfg.MaxAllocLog2,
		minAlloc: cfg.MinAlloc(),
		size:     size,
	}
	a.free = list.NewSpace(a.data, a.buckets)
	a.split = newSplitBits(a.buckets)

	// A single free block spanning the whole arena seeds bucket 0. Its
	// free-list links are the only bytes written before the first Alloc, so
	// only one entry's worth of memory needs to be committed up front.
	if err := mem.Commit(list.EntrySize); err != nil {
		return nil, fmt.Errorf("alloc: commit initial free-list entry: %w", err)
	}
	a.free.PushBack(a.free.Head(0), 0)

	return a, nil
}

// Alloc allocates at least request bytes and returns the payload address
// along with the payload byte slice. The request is rounded up internally to
// the next size class; the stored header keeps the original request.
func (a *Allocator) Alloc(request int64) (Ref, []byte, error) {
	a.stats.AllocCalls++

	if request < 0 {
		a.stats.FailedAllocs++
		return 0, nil, ErrBadRequest
	}
	if request > a.size-format.HeaderSize {
		a.stats.FailedAllocs++
		return 0, nil, ErrTooLarge
	}
	target := a.bucketFor(request + format.HeaderSize)

	// Search from the target class toward the root for a non-empty free
	// list. A block from a larger class gets split down to size.
	for bucket := target; bucket >= 0; bucket-- {
		off, ok := a.free.PopBack(a.free.Head(bucket))
		if !ok {
			continue
		}

		// Expand the committed range before any write. A block that will be
		// split only needs its left half plus one free-list entry committed;
		// an exact fit needs the whole block.
		size := a.blockSize(bucket)
		needed := size
		if bucket < target {
			needed = size/2 + list.EntrySize
		}
		if err := a.mem.Commit(off + needed); err != nil {
			// Out of backing memory. Restore the block so the allocator is
			// left exactly as it was before the call.
			a.free.PushBack(a.free.Head(bucket), off)
			a.stats.FailedAllocs++
			if logAlloc {
				fmt.Fprintf(os.Stderr, "[ALLOC] commit to %d refused: %v\n", off+needed, err)
			}
			return 0, nil, ErrCommitFail
		}

		// The popped node goes UNUSED -> USED, which flips the XOR-encoded
		// split bit of its parent. The grandparent never needs a flip: the
		// buddy is not UNUSED (otherwise the parent would never have been split),
		// so the parent was already not-UNUSED.
		i := a.nodeFor(off, bucket)
		if i != 0 {
			a.split.flipParent(i)
		}

		// Split down to the target class: descend into the left child and
		// push each right sibling onto the free list of the new class.
		for bucket < target {
			i = 2*i + 1
			bucket++
			a.split.flipParent(i)
			a.free.PushBack(a.free.Head(bucket), a.offsetFor(i+1, bucket))
			a.stats.SplitCount++
		}

		// The header stores the original request, not the rounded class
		// size; Free recomputes the class from it.
		format.PutU64(a.data, off, uint64(request))
		a.stats.BytesRequested += request

		ref := off + format.HeaderSize
		return ref, a.data[ref : ref+request], nil
	}

	a.stats.FailedAllocs++
	if logAlloc {
		fmt.Fprintf(os.Stderr, "[ALLOC] no free block for %d bytes (target bucket %d)\n",
			request, target)
	}
	return 0, nil, ErrNoSpace
}

// Free releases an allocation made by Alloc. Only cheap structural checks
// are performed; passing an address that is not an outstanding allocation,
// or modifying the 8 header bytes before it, corrupts the allocator.
func (a *Allocator) Free(ref Ref) error {
	a.stats.FreeCalls++

	off := ref - format.HeaderSize
	if off < 0 || off > a.size-format.EntrySize {
		return ErrBadRef
	}
	request := int64(format.ReadU64(a.data, off))
	if request < 0 || request > a.size-format.HeaderSize {
		return ErrBadRef
	}
	bucket := a.bucketFor(request + format.HeaderSize)
	if off&(a.blockSize(bucket)-1) != 0 {
		return ErrBadRef
	}
	i := a.nodeFor(off, bucket)

	// Walk toward the root merging with UNUSED buddies. Flipping the
	// parent's bit to 1 means the buddy is still in use: stop there. A flip
	// to 0 means the buddy is free; unlink it and ascend, deferring the
	// merged node's own enlistment until the walk ends.
	for i != 0 {
		if a.split.flipParent(i) {
			break
		}
		a.free.Remove(a.offsetFor(buddyOf(i), bucket))
		i = parentOf(i)
		bucket--
		a.stats.MergeCount++
	}

	// Push at the back: Alloc also pops from the back, so a release followed
	// by an allocation of the same class reuses the same address.
	a.free.PushBack(a.free.Head(bucket), a.offsetFor(i, bucket))
	a.stats.BytesFreed += request

	return nil
}

// Break returns the committed high-water mark of the backing arena.
func (a *Allocator) Break() int64 {
	return a.mem.Break()
}

// Config returns the geometry the allocator was built with.
func (a *Allocator) Config() Config {
	return a.cfg
}
