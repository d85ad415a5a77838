package blend

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func buildNodeCycleFixture(t *testing.T) *BlendFile {
	a := buildLegacyBlock("ND", fixtureSDNANr("Node"), 0x1000, 1, buildNodePayload(0x2000))
	b := buildLegacyBlock("ND", fixtureSDNANr("Node"), 0x2000, 1, buildNodePayload(0x1000))
	return openFixture(t, a, b)
}

// TestChaseDetectsCycle mirrors §6 E5: two nodes referencing each other
// via "next"; chasing "next.next.next" with OnCycle=Stop records exactly
// two hops before stopping.
func TestChaseDetectsCycle(t *testing.T) {
	f := buildNodeCycleFixture(t)
	policy := DefaultChasePolicy()

	result, err := ChaseFromPtr(f.Dna, f.Pointers, 0x1000, "next.next.next", f.DefaultDecodeOptions(), policy)
	require.NoError(t, err)
	require.NotNil(t, result.Stop)
	require.Equal(t, StopCycle, result.Stop.Reason)
	require.Len(t, result.Hops, 2)
}

func TestChaseFollowsSimplePath(t *testing.T) {
	f := buildSceneFixture(t)
	policy := DefaultChasePolicy()

	result, err := ChaseFromPtr(f.Dna, f.Pointers, 0x1000, "world", f.DefaultDecodeOptions(), policy)
	require.NoError(t, err)
	require.Nil(t, result.Stop)
	require.Equal(t, ValStruct, result.Value.Kind)
	require.Equal(t, "World", result.Value.Struct.TypeName)
}

func TestChaseNullPointerStops(t *testing.T) {
	a := buildLegacyBlock("ND", fixtureSDNANr("Node"), 0x1000, 1, buildNodePayload(0))
	f := openFixture(t, a)
	policy := DefaultChasePolicy()

	result, err := ChaseFromPtr(f.Dna, f.Pointers, 0x1000, "next", f.DefaultDecodeOptions(), policy)
	require.NoError(t, err)
	require.NotNil(t, result.Stop)
	require.Equal(t, StopNullPtr, result.Stop.Reason)
}
