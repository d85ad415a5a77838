package blend

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParsePath(t *testing.T) {
	steps, err := parsePath("scene.objects[0].data")
	require.NoError(t, err)
	require.Equal(t, []PathStep{
		{Kind: StepField, Name: "scene"},
		{Kind: StepField, Name: "objects"},
		{Kind: StepIndex, Index: 0},
		{Kind: StepField, Name: "data"},
	}, steps)
}

func TestParsePathErrors(t *testing.T) {
	_, err := parsePath("")
	require.Error(t, err)

	_, err = parsePath("foo[")
	require.Error(t, err)

	_, err = parsePath("foo.")
	require.Error(t, err)

	_, err = parsePath(".foo")
	require.Error(t, err)
}
