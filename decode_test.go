package blend

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func buildSceneFixture(t *testing.T) *BlendFile {
	world := buildLegacyBlock("WO", fixtureSDNANr("World"), 0x2000, 1, buildWorldPayload("World"))
	camera := buildLegacyBlock("CA", fixtureSDNANr("Camera"), 0x3000, 1, buildCameraPayload("Cam"))
	scene := buildLegacyBlock("SC", fixtureSDNANr("Scene"), 0x1000, 1, buildScenePayload("Scene", 0x2000, 0x3000))
	return openFixture(t, world, camera, scene)
}

func TestOpenBytesBuildsIndices(t *testing.T) {
	f := buildSceneFixture(t)
	require.Equal(t, FormatLegacy, f.Header.Format)
	require.Len(t, f.IDs.Records, 3)
	require.Contains(t, f.IDs.ByIDName, "Scene")
	require.Contains(t, f.IDs.ByIDName, "World")
	require.Contains(t, f.IDs.ByIDName, "Cam")
}

func TestDecodeBlockInstances(t *testing.T) {
	f := buildSceneFixture(t)
	sceneBlk, _, ok := f.Pointers.Resolve(0x1000)
	require.True(t, ok)

	val, err := DecodeBlockInstances(f.Dna, sceneBlk.Block, f.DefaultDecodeOptions())
	require.NoError(t, err)
	require.Equal(t, ValStruct, val.Kind)

	idField, ok := val.Field("id")
	require.True(t, ok)
	name, ok := idField.Field("name")
	require.True(t, ok)
	require.Equal(t, "Scene", name.Str)

	worldField, ok := val.Field("world")
	require.True(t, ok)
	require.Equal(t, ValPtr, worldField.Kind)
	require.Equal(t, uint64(0x2000), worldField.PtrVal)
}

func TestDecodePtrInstanceResolvesCanonical(t *testing.T) {
	f := buildSceneFixture(t)
	canonical, sv, err := DecodePtrInstance(f.Dna, f.Pointers, 0x3000, f.DefaultDecodeOptions())
	require.NoError(t, err)
	require.Equal(t, uint64(0x3000), canonical)
	require.Equal(t, "Camera", sv.TypeName)
}
