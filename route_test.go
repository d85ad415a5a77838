package blend

import (
	"testing"

	"github.com/stretchr/testify/require"
)

// TestSceneToWorldDirectEdge mirrors the scenario of a scene and a world
// connected by a single "world" pointer field (§6 E1): the shortest
// route has length 1 with field "world".
func TestSceneToWorldDirectEdge(t *testing.T) {
	f := buildSceneFixture(t)
	refOpts := f.DefaultRefScanOptions()

	result, err := FindRouteBetweenPtrs(f.Dna, f.Pointers, 0x1000, 0x2000, DefaultRouteOptions(refOpts))
	require.NoError(t, err)
	require.True(t, result.Found)
	require.Len(t, result.Path, 1)
	require.Equal(t, "world", result.Path[0].Field)
	require.Equal(t, uint64(0x1000), result.Path[0].From)
	require.Equal(t, uint64(0x2000), result.Path[0].To)
}

func TestRouteZeroLengthWhenFromEqualsTo(t *testing.T) {
	f := buildSceneFixture(t)
	result, err := FindRouteBetweenPtrs(f.Dna, f.Pointers, 0x1000, 0x1000, DefaultRouteOptions(f.DefaultRefScanOptions()))
	require.NoError(t, err)
	require.True(t, result.Found)
	require.Empty(t, result.Path)
}

func TestRouteNotFound(t *testing.T) {
	f := buildSceneFixture(t)
	// Camera's only pointer fields (id.next/prev/lib) are null, so there is no route from it.
	result, err := FindRouteBetweenPtrs(f.Dna, f.Pointers, 0x3000, 0x2000, DefaultRouteOptions(f.DefaultRefScanOptions()))
	require.NoError(t, err)
	require.False(t, result.Found)
}

func TestBuildGraphFromPtrScene(t *testing.T) {
	f := buildSceneFixture(t)
	opts := DefaultGraphOptions(f.DefaultRefScanOptions())
	result, err := BuildGraphFromPtr(f.Dna, f.Pointers, f.IDs, 0x1000, opts)
	require.NoError(t, err)

	require.Len(t, result.Nodes, 3)
	require.Len(t, result.Edges, 2)
	require.Equal(t, TruncNone, result.Truncation)
}

func TestBuildIDGraph(t *testing.T) {
	f := buildSceneFixture(t)
	opts := DefaultGraphOptions(f.DefaultRefScanOptions())
	result, err := BuildIDGraph(f.Dna, f.Pointers, f.IDs, opts, "", "")
	require.NoError(t, err)
	require.Len(t, result.Nodes, 3)
	require.Len(t, result.Edges, 2)
}
