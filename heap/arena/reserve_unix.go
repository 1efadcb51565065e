//go:build unix

package arena

import (
	"errors"
	"fmt"
	"os"

	"golang.org/x/sys/unix"
)

// Mapped is a lazy reservation backed by an anonymous private mapping. The
// whole span is mapped PROT_NONE up front; Commit flips the prefix to
// read/write page by page, so untouched memory costs address space only.
type Mapped struct {
	data []byte
	brk  int64
	page int64
}

// Reserve maps size bytes of address space without committing any of it.
func Reserve(size int64) (*Mapped, error) {
	if size <= 0 {
		return nil, fmt.Errorf("arena: invalid reservation size %d", size)
	}
	if size > int64(^uint(0)>>1) {
		return nil, fmt.Errorf("arena: reservation too large to map (%d bytes)", size)
	}
	data, err := unix.Mmap(-1, 0, int(size), unix.PROT_NONE,
		unix.MAP_PRIVATE|unix.MAP_ANON)
	if err != nil {
		return nil, fmt.Errorf("arena: reserve %d bytes: %w", size, err)
	}
	return &Mapped{data: data, page: int64(os.Getpagesize())}, nil
}

// Bytes returns the full reserved span.
func (m *Mapped) Bytes() []byte { return m.data }

// Size returns the reservation size.
func (m *Mapped) Size() int64 { return int64(len(m.data)) }

// Break returns the committed mark: a page multiple, or the reservation size
// once Commit reaches the end of the span.
func (m *Mapped) Break() int64 { return m.brk }

// Commit makes [0, upTo) readable and writable, rounding up to a whole page.
func (m *Mapped) Commit(upTo int64) error {
	if upTo <= m.brk {
		return nil
	}
	if upTo > int64(len(m.data)) {
		return ErrOutOfRange
	}
	end := (upTo + m.page - 1) &^ (m.page - 1)
	if end > int64(len(m.data)) {
		end = int64(len(m.data))
	}
	if err := unix.Mprotect(m.data[m.brk:end], unix.PROT_READ|unix.PROT_WRITE); err != nil {
		return fmt.Errorf("%w: %v", ErrCommitDenied, err)
	}
	m.brk = end
	return nil
}

// Close unmaps the reservation. The arena must not be used afterwards.
func (m *Mapped) Close() error {
	if m.data == nil {
		return nil
	}
	err := unix.Munmap(m.data)
	m.data = nil
	if errors.Is(err, unix.EINVAL) {
		// Treat double-unmap as no-op for callers.
		return nil
	}
	return err
}
