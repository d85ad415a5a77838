package blend

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParseDNARoundTrip(t *testing.T) {
	dna, err := parseDNA(buildFixtureDNA1Payload(), LittleEndian)
	require.NoError(t, err)

	require.Len(t, dna.Structs, 5)

	sceneIdx, ok := dna.FindStructIdxByTypeName("Scene")
	require.True(t, ok)
	require.Equal(t, "Scene", dna.Types[dna.Structs[sceneIdx].TypeIdx])

	size, err := dna.TypeSize(dna.Structs[sceneIdx].TypeIdx)
	require.NoError(t, err)
	require.Equal(t, 106, size)

	require.True(t, isIDRootedStruct(dna, sceneIdx))

	nodeIdx, ok := dna.FindStructIdxByTypeName("Node")
	require.True(t, ok)
	require.False(t, isIDRootedStruct(dna, nodeIdx))
}

func TestParseDNARejectsBadTag(t *testing.T) {
	payload := buildFixtureDNA1Payload()
	payload[0] = 'X'
	_, err := parseDNA(payload, LittleEndian)
	require.Error(t, err)
}
