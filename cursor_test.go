package blend

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestCursorReadsLittleEndian(t *testing.T) {
	buf := []byte{0x01, 0x00, 0x02, 0x00, 0x00, 0x00, 0xEF, 0xBE}
	c := NewCursor(buf)

	u16, err := c.ReadU16(LittleEndian)
	require.NoError(t, err)
	require.Equal(t, uint16(1), u16)

	u32, err := c.ReadU32(LittleEndian)
	require.NoError(t, err)
	require.Equal(t, uint32(2), u32)

	rest, err := c.ReadExact(2)
	require.NoError(t, err)
	require.Equal(t, []byte{0xEF, 0xBE}, rest)

	require.Equal(t, 0, c.Remaining())
}

func TestCursorReadExactPastEndFails(t *testing.T) {
	c := NewCursor([]byte{1, 2, 3})
	_, err := c.ReadExact(4)
	require.Error(t, err)
}

func TestCursorReadCStringBytes(t *testing.T) {
	c := NewCursor([]byte("hello\x00world"))
	s, err := c.ReadCStringBytes()
	require.NoError(t, err)
	require.Equal(t, "hello", string(s))
	require.Equal(t, 6, c.Pos())
}

func TestCursorAlign4(t *testing.T) {
	c := NewCursor(make([]byte, 10))
	c.Seek(3)
	require.NoError(t, c.Align4())
	require.Equal(t, 4, c.Pos())
	require.NoError(t, c.Align4())
	require.Equal(t, 4, c.Pos())
}

func TestCursorReadPtrUnsupportedSize(t *testing.T) {
	c := NewCursor(make([]byte, 8))
	_, err := c.ReadPtr(2, LittleEndian)
	require.Error(t, err)
}
