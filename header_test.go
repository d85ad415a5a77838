package blend

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParseLegacyHeader(t *testing.T) {
	hdr, err := parseHeader([]byte("BLENDER-v280" + "padding"))
	require.NoError(t, err)
	require.Equal(t, FormatLegacy, hdr.Format)
	require.Equal(t, 12, hdr.HeaderSize)
	require.Equal(t, 8, hdr.PointerSize)
	require.Equal(t, LittleEndian, hdr.Endian)
	require.Equal(t, 280, hdr.Version)
}

func TestParseLegacyHeader32BitBigEndian(t *testing.T) {
	hdr, err := parseHeader([]byte("BLENDER_V279" + "padding"))
	require.NoError(t, err)
	require.Equal(t, 4, hdr.PointerSize)
	require.Equal(t, BigEndian, hdr.Endian)
	require.Equal(t, 279, hdr.Version)
}

func TestParseModernHeader(t *testing.T) {
	hdr, err := parseHeader([]byte("BLENDER17-01v0500" + "padding"))
	require.NoError(t, err)
	require.Equal(t, FormatModern, hdr.Format)
	require.Equal(t, 17, hdr.HeaderSize)
	require.Equal(t, 8, hdr.PointerSize)
	require.Equal(t, 500, hdr.Version)
}

func TestParseHeaderMissingMagic(t *testing.T) {
	_, err := parseHeader([]byte("NOTBLEND"))
	require.Error(t, err)
}

func TestParseHeaderTruncated(t *testing.T) {
	_, err := parseHeader([]byte("BLENDER"))
	require.Error(t, err)
}
