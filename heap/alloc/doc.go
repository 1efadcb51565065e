// Package alloc implements a buddy allocator over a single contiguous arena.
//
// # Overview
//
// The allocator spans the arena with an implicit complete binary tree that
// tracks free space. Size classes are the powers of two from the minimum
// block (16 bytes, header included) up to the whole arena; each class has a
// bucket holding a free list of exactly the currently free blocks of that
// size. Both Alloc and Free are O(log N) in the number of size classes.
//
// When a request has no free block of its own class, a larger block is split
// recursively; every split produces two buddies. When a block is freed and
// its buddy is also free, the two merge back into their parent, making the
// memory available for larger allocations again.
//
// # State encoding
//
// A node in the tree is UNUSED, SPLIT, or USED. Only one bit per internal
// node is stored: the XOR of its two children's UNUSED flags, which is 1
// exactly when the node is SPLIT. A node's own UNUSED-ness is known from
// context at each use site (Alloc pops blocks that are free, Free is handed
// blocks that are used), so every state transition reduces to a single bit
// flip on the parent. Free lists are intrusive: the links live in the first
// 16 bytes of each free block, so the metadata costs nothing beyond the bit
// array.
//
// # Backing memory
//
// The arena is reserved address space, not committed memory. Before writing
// into previously untouched bytes the allocator extends the committed prefix
// through the arena's Commit; the committed mark only ever grows. A refused
// commit surfaces as ErrCommitFail with the allocator state unchanged.
//
// # Usage
//
//	mem, err := arena.Reserve(1 << 31)
//	if err != nil {
//	    return err
//	}
//	a, err := alloc.New(mem, nil)
//	if err != nil {
//	    return err
//	}
//
//	ref, buf, err := a.Alloc(100)
//	if err != nil {
//	    return err
//	}
//	// Write into buf...
//
//	err = a.Free(ref)
//
// # Thread safety
//
// Allocator instances are not thread-safe. Callers must serialize Alloc,
// Free, and New externally.
package alloc
