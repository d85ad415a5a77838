package blend

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestScanRefsFromPtrScene(t *testing.T) {
	f := buildSceneFixture(t)
	refs, err := ScanRefsFromPtr(f.Dna, f.Pointers, f.IDs, 0x1000, f.DefaultRefScanOptions())
	require.NoError(t, err)

	byField := map[string]RefRecord{}
	for _, r := range refs {
		byField[r.Field] = r
	}

	require.Contains(t, byField, "id.next")
	require.Equal(t, uint64(0), byField["id.next"].Ptr)

	require.Contains(t, byField, "world")
	require.Equal(t, uint64(0x2000), byField["world"].Ptr)
	require.NotNil(t, byField["world"].Resolved)
	require.Equal(t, "World", byField["world"].Resolved.TypeName)
	require.Equal(t, "World", byField["world"].Resolved.IDName)

	require.Contains(t, byField, "camera")
	require.Equal(t, uint64(0x3000), byField["camera"].Ptr)
}

func TestScanRefsFromPtrUnresolvedRoot(t *testing.T) {
	f := buildSceneFixture(t)
	_, err := ScanRefsFromPtr(f.Dna, f.Pointers, f.IDs, 0xDEAD, f.DefaultRefScanOptions())
	require.Error(t, err)
}
