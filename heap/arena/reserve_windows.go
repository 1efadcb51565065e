//go:build windows

package arena

import (
	"fmt"
	"unsafe"

	"golang.org/x/sys/windows"
)

// Page granularity of VirtualAlloc commits.
const pageSize = 4096

// Mapped is a lazy reservation backed by VirtualAlloc: the span is reserved
// with MEM_RESERVE and pages are committed on demand with MEM_COMMIT.
type Mapped struct {
	base uintptr
	data []byte
	brk  int64
}

// Reserve reserves size bytes of address space without committing any of it.
func Reserve(size int64) (*Mapped, error) {
	if size <= 0 {
		return nil, fmt.Errorf("arena: invalid reservation size %d", size)
	}
	base, err := windows.VirtualAlloc(0, uintptr(size), windows.MEM_RESERVE, windows.PAGE_NOACCESS)
	if err != nil {
		return nil, fmt.Errorf("arena: reserve %d bytes: %w", size, err)
	}
	data := unsafe.Slice((*byte)(unsafe.Pointer(base)), size)
	return &Mapped{base: base, data: data}, nil
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
	end := (upTo + pageSize - 1) &^ int64(pageSize-1)
	if end > int64(len(m.data)) {
		end = int64(len(m.data))
	}
	_, err := windows.VirtualAlloc(m.base+uintptr(m.brk), uintptr(end-m.brk),
		windows.MEM_COMMIT, windows.PAGE_READWRITE)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrCommitDenied, err)
	}
	m.brk = end
	return nil
}

// Close releases the reservation. The arena must not be used afterwards.
func (m *Mapped) Close() error {
	if m.base == 0 {
		return nil
	}
	err := windows.VirtualFree(m.base, 0, windows.MEM_RELEASE)
	m.base = 0
	m.data = nil
	return err
}
