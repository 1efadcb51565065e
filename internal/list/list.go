// Package list implements the intrusive circular doubly-linked list used to
// thread free blocks together. Entries are not Go objects: an entry is 16
// bytes of arena memory holding two little-endian link words (prev at +0,
// next at +8), written in place inside the block it describes.
//
// Sentinel heads cannot live inside the arena (the arena belongs entirely to
// caller allocations), so a Space resolves refs in two ranges: refs below the
// arena size address arena bytes, refs at or above it address a dedicated
// heads slab in ordinary Go memory. Links can therefore point at heads and
// blocks uniformly, which keeps push and remove branch-free.
//
// An empty list is a head whose two links point to itself. Remove never needs
// the owning head: the list is fully addressable through any entry.
package list

import "github.com/joshuapare/buddyheap/internal/format"

// EntrySize is the number of bytes an entry occupies at the front of a free
// block. Equal to format.EntrySize; re-exported so callers sizing commits do
// not need to import format.
const EntrySize = format.EntrySize

// Ref identifies an entry: a byte offset into the arena, or a sentinel slot
// at Space.Head(i) for i-th list.
type Ref = int64

const (
	prevOff = 0
	nextOff = 8
)

// Space is a set of circular lists threaded through one arena. It owns the
// sentinel slab; the arena bytes are shared with the caller.
type Space struct {
	data  []byte
	heads []byte
	size  int64
}

// NewSpace creates a Space over data with nheads sentinel heads, all
// initialized to empty.
func NewSpace(data []byte, nheads int) *Space {
	s := &Space{
		data:  data,
		heads: make([]byte, nheads*EntrySize),
		size:  int64(len(data)),
	}
	for i := 0; i < nheads; i++ {
		s.Init(s.Head(i))
	}
	return s
}

// Head returns the ref of the i-th sentinel head.
func (s *Space) Head(i int) Ref {
	return s.size + int64(i)*EntrySize
}

// buf resolves a ref to the byte slab holding its entry.
func (s *Space) buf(r Ref) ([]byte, int64) {
	if r >= s.size {
		return s.heads, r - s.size
	}
	return s.data, r
}

func (s *Space) prev(r Ref) Ref {
	b, off := s.buf(r)
	return Ref(format.ReadU64(b, off+prevOff))
}

func (s *Space) next(r Ref) Ref {
	b, off := s.buf(r)
	return Ref(format.ReadU64(b, off+nextOff))
}

func (s *Space) setPrev(r, v Ref) {
	b, off := s.buf(r)
	format.PutU64(b, off+prevOff, uint64(v))
}

func (s *Space) setNext(r, v Ref) {
	b, off := s.buf(r)
	format.PutU64(b, off+nextOff, uint64(v))
}

// Init resets an entry to an empty list: both links point to itself.
func (s *Space) Init(h Ref) {
	s.setPrev(h, h)
	s.setNext(h, h)
}

// PushBack appends e to the end of the list headed by h. Assumes e is not
// currently on any list; its links are overwritten.
func (s *Space) PushBack(h, e Ref) {
	p := s.prev(h)
	s.setPrev(e, p)
	s.setNext(e, h)
	s.setNext(p, e)
	s.setPrev(h, e)
}

// Remove unlinks e from whichever list it is on. Assumes e is on a list.
func (s *Space) Remove(e Ref) {
	p := s.prev(e)
	n := s.next(e)
	s.setNext(p, n)
	s.setPrev(n, p)
}

// PopBack removes and returns the last entry of the list headed by h.
// Returns ok=false if the list is empty.
func (s *Space) PopBack(h Ref) (Ref, bool) {
	b := s.prev(h)
	if b == h {
		return 0, false
	}
	s.Remove(b)
	return b, true
}

// Empty reports whether the list headed by h has no entries.
func (s *Space) Empty(h Ref) bool {
	return s.next(h) == h
}

// Each calls fn for every entry of the list headed by h, front to back.
// fn must not mutate the list.
func (s *Space) Each(h Ref, fn func(Ref)) {
	for e := s.next(h); e != h; e = s.next(e) {
		fn(e)
	}
}

// Len counts the entries of the list headed by h. O(n); used by tests and
// introspection, not by the allocation paths.
func (s *Space) Len(h Ref) int {
	n := 0
	for e := s.next(h); e != h; e = s.next(e) {
		n++
	}
	return n
}
