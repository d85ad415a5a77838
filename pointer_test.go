package blend

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestBuildPointerIndexAddressRangesRegime(t *testing.T) {
	f := buildSceneFixture(t)
	require.Equal(t, RegimeAddressRanges, f.Pointers.Regime())
}

func TestBuildPointerIndexDetectsStableIdsOnOverlap(t *testing.T) {
	// Two blocks whose legacy "old" values, read as [start, start+len)
	// address ranges, would overlap -- impossible for real process
	// addresses, so the regime must be reclassified as stable ids.
	a := buildLegacyBlock("ND", fixtureSDNANr("Node"), 0x1000, 1, buildNodePayload(0))
	b := buildLegacyBlock("ND", fixtureSDNANr("Node"), 0x1004, 1, buildNodePayload(0))
	f := openFixture(t, a, b)
	require.Equal(t, RegimeStableIds, f.Pointers.Regime())
}

func TestResolveTypedElementIndex(t *testing.T) {
	f := buildSceneFixture(t)
	tr, ok := f.Pointers.ResolveTyped(f.Dna, 0x3000)
	require.True(t, ok)
	require.NotNil(t, tr.ElementIndex)
	require.Equal(t, 0, *tr.ElementIndex)
	canonical, ok := tr.Canonical()
	require.True(t, ok)
	require.Equal(t, uint64(0x3000), canonical)
}

// TestResolveTypedElementIndexArrayBlock mirrors §6 E6: a block holding
// two Node instances (nr=2) must canonicalize a pointer into the second
// instance to element_index=1, distinct from the first instance, while
// both instances still resolve into the same underlying block.
func TestResolveTypedElementIndexArrayBlock(t *testing.T) {
	payload := append(buildNodePayload(0), buildNodePayload(0)...)
	arr := buildLegacyBlock("ND", fixtureSDNANr("Node"), 0x4000, 2, payload)
	f := openFixture(t, arr)

	first, ok := f.Pointers.ResolveTyped(f.Dna, 0x4000)
	require.True(t, ok)
	require.NotNil(t, first.ElementIndex)
	require.Equal(t, 0, *first.ElementIndex)
	firstCanonical, ok := first.Canonical()
	require.True(t, ok)
	require.Equal(t, uint64(0x4000), firstCanonical)

	second, ok := f.Pointers.ResolveTyped(f.Dna, 0x4008)
	require.True(t, ok)
	require.NotNil(t, second.ElementIndex)
	require.Equal(t, 1, *second.ElementIndex)
	secondCanonical, ok := second.Canonical()
	require.True(t, ok)
	require.Equal(t, uint64(0x4008), secondCanonical)

	require.NotEqual(t, firstCanonical, secondCanonical)
	require.Equal(t, first.Entry.Block.Head.Old, second.Entry.Block.Head.Old)
}

func TestResolveUnknownPointerFails(t *testing.T) {
	f := buildSceneFixture(t)
	_, _, ok := f.Pointers.Resolve(0xDEAD)
	require.False(t, ok)
}
