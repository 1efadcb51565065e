package alloc

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func Test_Stats_Counters(t *testing.T) {
	a, _ := newTestAllocator(t, 16)

	ref, _, err := a.Alloc(8)
	require.NoError(t, err)
	_, _, err = a.Alloc(a.size)
	require.ErrorIs(t, err, ErrTooLarge)
	require.NoError(t, a.Free(ref))

	s := a.Stats()
	require.Equal(t, 2, s.AllocCalls)
	require.Equal(t, 1, s.FailedAllocs)
	require.Equal(t, 1, s.FreeCalls)
	require.Equal(t, a.buckets-1, s.SplitCount, "one split per class from root to minimum")
	require.Equal(t, a.buckets-1, s.MergeCount, "full coalesce undoes every split")
	require.Equal(t, int64(8), s.BytesRequested)
	require.Equal(t, int64(8), s.BytesFreed)
}

func Test_Stats_Report_GroupsDigits(t *testing.T) {
	s := Stats{
		AllocCalls:     1234567,
		FreeCalls:      7654321,
		BytesRequested: 1048576,
	}
	out := s.Report()
	require.Contains(t, out, "1,234,567")
	require.Contains(t, out, "7,654,321")
	require.Contains(t, out, "1,048,576")
}
