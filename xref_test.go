package blend

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestFindInboundRefsToPtr(t *testing.T) {
	f := buildSceneFixture(t)
	recs, err := FindInboundRefsToPtr(f.Dna, f.Pointers, f.IDs, 0x2000, DefaultXrefOptions(f.DefaultRefScanOptions()))
	require.NoError(t, err)
	require.Len(t, recs, 1)
	require.Equal(t, uint64(0x1000), recs[0].FromCanonical)
	require.Equal(t, "world", recs[0].Field)
	require.True(t, recs[0].Resolved)
}

func TestFindInboundRefsToPtrNoneFound(t *testing.T) {
	f := buildSceneFixture(t)
	// Camera is never referenced by "camera" from anything other than Scene;
	// asking for refs to Scene itself should find no owners pointing to it.
	recs, err := FindInboundRefsToPtr(f.Dna, f.Pointers, f.IDs, 0x1000, DefaultXrefOptions(f.DefaultRefScanOptions()))
	require.NoError(t, err)
	require.Empty(t, recs)
}
