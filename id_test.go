package blend

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestScanIDBlocksDetectsIDRootedStructsOnly(t *testing.T) {
	f := buildSceneFixture(t)
	require.Len(t, f.IDs.Records, 3)
	for _, rec := range f.IDs.Records {
		require.NotEmpty(t, rec.IDName)
	}

	node := buildLegacyBlock("ND", fixtureSDNANr("Node"), 0x9000, 1, buildNodePayload(0))
	f2 := openFixture(t, node)
	require.Empty(t, f2.IDs.Records)
}

func TestBuildIDIndexFirstWinsOnDuplicateName(t *testing.T) {
	first := buildLegacyBlock("WO", fixtureSDNANr("World"), 0x2000, 1, buildWorldPayload("Dup"))
	second := buildLegacyBlock("WO", fixtureSDNANr("World"), 0x5000, 1, buildWorldPayload("Dup"))
	f := openFixture(t, first, second)

	require.Len(t, f.IDs.Records, 2)
	rec, ok := f.IDs.ByIDName["Dup"]
	require.True(t, ok)
	require.Equal(t, uint64(0x2000), rec.Canonical)
}
