package blend

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestScanIDLinkProvenanceNoSignal(t *testing.T) {
	f := buildSceneFixture(t)
	links := ScanIDLinkProvenance(f.Dna, f.IDs)
	require.Len(t, links, 3)
	for _, l := range links {
		require.False(t, l.Linked)
		require.Equal(t, ConfidenceNone, l.Confidence)
	}
}

func TestScanIDLinkProvenanceHighConfidenceWhenLibSet(t *testing.T) {
	world := buildLegacyBlock("WO", fixtureSDNANr("World"), 0x2000, 1, buildIDPayload("LinkedWorld", 0, 0, 0x9000))
	f := openFixture(t, world)

	links := ScanIDLinkProvenance(f.Dna, f.IDs)
	require.Len(t, links, 1)
	require.True(t, links[0].Linked)
	require.Equal(t, ConfidenceHigh, links[0].Confidence)
}
