// Package arena provides the backing memory for the allocator: a contiguous
// reservation of address space whose committed prefix grows on demand.
//
// The allocator never touches a byte at or beyond Break(). Commit extends the
// committed prefix before the allocator writes into fresh memory; the mark is
// monotone and committed pages are never returned to the host.
//
// Reserve gives a real lazy reservation where the platform supports one
// (PROT_NONE mmap on unix, MEM_RESERVE VirtualAlloc on windows). Fixed wraps
// a caller-supplied slice for tests and embedders that pre-commit their whole
// range; its Commit is a bounds check, optionally capped to exercise
// commit-refusal paths.
package arena

// Arena is a contiguous span of reserved address space with explicit commit.
type Arena interface {
	// Bytes returns the full reserved span. Only bytes below Break() may be
	// read or written.
	Bytes() []byte

	// Size returns the reservation size in bytes.
	Size() int64

	// Break returns the committed high-water mark. It starts at zero and
	// never decreases.
	Break() int64

	// Commit extends the committed prefix to cover at least upTo bytes.
	// A request at or below the current mark is a no-op success. On failure
	// the mark is unchanged.
	Commit(upTo int64) error
}
