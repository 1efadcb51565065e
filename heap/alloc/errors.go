package alloc

import "errors"

var (
	// ErrTooLarge indicates a request that cannot fit in the arena even when
	// it is completely empty.
	ErrTooLarge = errors.New("alloc: request exceeds arena size")

	// ErrNoSpace indicates that no free block large enough exists.
	ErrNoSpace = errors.New("alloc: no free block large enough")

	// ErrCommitFail indicates the backing arena refused to extend the
	// committed region. The allocator state is unchanged.
	ErrCommitFail = errors.New("alloc: commit failed")

	// ErrBadRef indicates an invalid or out-of-range block reference.
	ErrBadRef = errors.New("alloc: bad block reference")

	// ErrBadRequest indicates a negative request size.
	ErrBadRequest = errors.New("alloc: negative request size")
)
