package alloc

import (
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// Stats holds internal allocator counters.
type Stats struct {
	AllocCalls     int   // Total Alloc() calls
	FreeCalls      int   // Total Free() calls
	FailedAllocs   int   // Alloc() calls that returned an error
	SplitCount     int   // Number of block splits
	MergeCount     int   // Number of buddy merges
	BytesRequested int64 // Sum of request sizes handed out
	BytesFreed     int64 // Sum of request sizes released
}

// Stats returns a copy of the current counters.
func (a *Allocator) Stats() Stats {
	return a.stats
}

// Report renders the counters for humans, with grouped digits.
func (s Stats) Report() string {
	p := message.NewPrinter(language.English)
	return p.Sprintf("allocs: %d (%d failed) | frees: %d | splits: %d | merges: %d | bytes out: %d | bytes back: %d",
		s.AllocCalls, s.FailedAllocs, s.FreeCalls, s.SplitCount, s.MergeCount,
		s.BytesRequested, s.BytesFreed)
}
