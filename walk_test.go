package blend

import (
	"testing"

	"github.com/stretchr/testify/require"
)

// TestWalkPtrChainThreeNodeChain mirrors §6 E4: a synthetic chain
// 0x1000 -> 0x2000 -> 0x3000 -> 0 yields exactly three items and stops
// with a null-pointer reason at step 2.
func TestWalkPtrChainThreeNodeChain(t *testing.T) {
	a := buildLegacyBlock("ND", fixtureSDNANr("Node"), 0x1000, 1, buildNodePayload(0x2000))
	b := buildLegacyBlock("ND", fixtureSDNANr("Node"), 0x2000, 1, buildNodePayload(0x3000))
	c := buildLegacyBlock("ND", fixtureSDNANr("Node"), 0x3000, 1, buildNodePayload(0))
	f := openFixture(t, a, b, c)

	opts := DefaultWalkOptions(f.DefaultRefScanOptions())
	result, err := WalkPtrChain(f.Dna, f.Pointers, f.IDs, 0x1000, opts)
	require.NoError(t, err)

	require.Len(t, result.Items, 3)
	require.Equal(t, uint64(0x1000), result.Items[0].Canonical)
	require.Equal(t, uint64(0x2000), result.Items[1].Canonical)
	require.Equal(t, uint64(0x3000), result.Items[2].Canonical)
	require.NotNil(t, result.Stop)
	require.Equal(t, StopNullPtr, result.Stop.Reason)
	require.Equal(t, 2, result.Stop.Step)
}

func TestWalkPtrChainMaxSteps(t *testing.T) {
	a := buildLegacyBlock("ND", fixtureSDNANr("Node"), 0x1000, 1, buildNodePayload(0x2000))
	b := buildLegacyBlock("ND", fixtureSDNANr("Node"), 0x2000, 1, buildNodePayload(0x1000))
	f := openFixture(t, a, b)

	opts := DefaultWalkOptions(f.DefaultRefScanOptions())
	opts.MaxSteps = 2
	opts.OnCycle = ModeError

	result, err := WalkPtrChain(f.Dna, f.Pointers, f.IDs, 0x1000, opts)
	require.NoError(t, err)
	require.Len(t, result.Items, 2)
	require.NotNil(t, result.Stop)
	require.Equal(t, StopMaxSteps, result.Stop.Reason)
}
