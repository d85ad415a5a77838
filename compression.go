package blend

import (
	"bytes"
	"io"

	"github.com/klauspost/compress/zstd"
)

// Compression identifies the outer container wrapping the BLENDER bytes.
type Compression int

const (
	CompressionNone Compression = iota
	CompressionZstd
)

// MaxDecompressedSize is the hard ceiling on bytes produced by zstd
// decompression, guarding against decompression-bomb inputs (§5).
const MaxDecompressedSize = 512 * 1024 * 1024

var (
	magicBlender = []byte("BLENDER")
	magicZstd    = []byte{0x28, 0xB5, 0x2F, 0xFD}
)

// detectCompression inspects the leading bytes of raw to determine which
// container wrapping, if any, is present.
func detectCompression(raw []byte) (Compression, error) {
	switch {
	case bytes.HasPrefix(raw, magicBlender):
		return CompressionNone, nil
	case bytes.HasPrefix(raw, magicZstd):
		return CompressionZstd, nil
	default:
		return 0, errf(KindContainer, "compression.detect", 0, "unrecognized magic bytes")
	}
}

// decompress returns the inner BLENDER-headed byte stream, decoding a
// zstd wrapper when present and verifying the decoded magic. Decoded
// size is bounded by MaxDecompressedSize.
func decompress(raw []byte) ([]byte, Compression, error) {
	kind, err := detectCompression(raw)
	if err != nil {
		return nil, 0, err
	}
	if kind == CompressionNone {
		return raw, CompressionNone, nil
	}

	dec, err := zstd.NewReader(bytes.NewReader(raw))
	if err != nil {
		return nil, 0, wrap(KindContainer, "compression.zstd_reader", err)
	}
	defer dec.Close()

	limited := io.LimitReader(dec, MaxDecompressedSize+1)
	out, err := io.ReadAll(limited)
	if err != nil {
		return nil, 0, wrap(KindContainer, "compression.zstd_decode", err)
	}
	if len(out) > MaxDecompressedSize {
		return nil, 0, errf(KindContainer, "compression.zstd_decode", 0,
			"decompressed size exceeds ceiling of %d bytes", MaxDecompressedSize)
	}
	if !bytes.HasPrefix(out, magicBlender) {
		return nil, 0, errf(KindContainer, "compression.zstd_decode", 0,
			"decompressed stream does not start with BLENDER magic")
	}
	return out, CompressionZstd, nil
}
