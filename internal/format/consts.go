// Package format houses the low-level byte layout shared by the allocator
// packages: header and link sizes, alignment rules, and little-endian
// accessors. The goal is to keep the byte plumbing focused and independent
// from the public API so higher-level packages can orchestrate the data in a
// more ergonomic form.
package format

const (
	// HeaderSize is the number of bytes reserved immediately before every
	// address handed to a caller. The header stores the caller's original
	// request size as a little-endian uint64, which is what makes release
	// possible with only the returned address.
	HeaderSize = 8

	// EntrySize is the size of a free-list entry: two 8-byte link words
	// threaded through the first bytes of a free block. Every free block
	// must be able to hold one, which is why the minimum block size is
	// 16 bytes.
	EntrySize = 16

	// Alignment is the required alignment of every returned address and of
	// all block sizes. Matches the 8-byte header so payloads stay aligned.
	Alignment = 8

	// AlignmentMask is the bitmask used for aligning to 8-byte boundaries.
	AlignmentMask = Alignment - 1
)
