package blend

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestDetectCompressionNone(t *testing.T) {
	kind, err := detectCompression([]byte("BLENDER-v280"))
	require.NoError(t, err)
	require.Equal(t, CompressionNone, kind)
}

func TestDetectCompressionZstd(t *testing.T) {
	kind, err := detectCompression([]byte{0x28, 0xB5, 0x2F, 0xFD, 0x00})
	require.NoError(t, err)
	require.Equal(t, CompressionZstd, kind)
}

func TestDetectCompressionUnrecognized(t *testing.T) {
	_, err := detectCompression([]byte("garbage"))
	require.Error(t, err)
}

func TestDecompressPassesThroughUncompressed(t *testing.T) {
	raw := []byte("BLENDER-v280hello")
	out, kind, err := decompress(raw)
	require.NoError(t, err)
	require.Equal(t, CompressionNone, kind)
	require.Equal(t, raw, out)
}
