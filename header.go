package blend

import (
	"bytes"
	"strconv"
)

// HeaderFormat distinguishes the two header shapes a .blend file may use.
type HeaderFormat int

const (
	FormatLegacy HeaderFormat = 0
	FormatModern HeaderFormat = 1
)

// Header is the fixed leading block of a decompressed .blend stream.
type Header struct {
	HeaderSize  int
	Format      HeaderFormat
	Version     int
	PointerSize int
	Endian      Endianness
}

// parseHeader determines header shape from byte 7 (the first byte after
// "BLENDER"): an ASCII digit selects the modern 17-byte form, anything
// else selects the legacy 12-byte form.
func parseHeader(buf []byte) (Header, error) {
	if !bytes.HasPrefix(buf, magicBlender) {
		return Header{}, errf(KindHeader, "header.parse", 0, "missing BLENDER magic")
	}
	if len(buf) < 8 {
		return Header{}, eod(KindHeader, "header.parse", 0, 8, len(buf))
	}
	if isASCIIDigit(buf[7]) {
		return parseModernHeader(buf)
	}
	return parseLegacyHeader(buf)
}

func isASCIIDigit(b byte) bool { return b >= '0' && b <= '9' }

// parseModernHeader parses the "BLENDER17-01v0500"-shaped header.
func parseModernHeader(buf []byte) (Header, error) {
	const size = 17
	if len(buf) < size {
		return Header{}, eod(KindHeader, "header.parse_modern", 0, size, len(buf))
	}
	if string(buf[7:9]) != "17" {
		return Header{}, errf(KindHeader, "header.parse_modern", 7, "unsupported header size marker %q", buf[7:9])
	}
	if buf[9] != '-' {
		return Header{}, errf(KindHeader, "header.parse_modern", 9, "invalid header shape, expected '-'")
	}
	if string(buf[10:12]) != "01" {
		return Header{}, errf(KindHeader, "header.parse_modern", 10, "unsupported format version marker %q", buf[10:12])
	}
	endian, err := parseEndianByte(buf[12])
	if err != nil {
		return Header{}, err
	}
	ver, err := strconv.Atoi(string(buf[13:17]))
	if err != nil {
		return Header{}, errf(KindHeader, "header.parse_modern", 13, "invalid version digits %q", buf[13:17])
	}
	return Header{
		HeaderSize:  size,
		Format:      FormatModern,
		Version:     ver,
		PointerSize: 8,
		Endian:      endian,
	}, nil
}

// parseLegacyHeader parses the classic "BLENDER_v280"-shaped header.
func parseLegacyHeader(buf []byte) (Header, error) {
	const size = 12
	if len(buf) < size {
		return Header{}, eod(KindHeader, "header.parse_legacy", 0, size, len(buf))
	}
	var ptrSize int
	switch buf[7] {
	case '_':
		ptrSize = 4
	case '-':
		ptrSize = 8
	default:
		return Header{}, errf(KindHeader, "header.parse_legacy", 7, "unsupported pointer size marker %q", buf[7])
	}
	endian, err := parseEndianByte(buf[8])
	if err != nil {
		return Header{}, err
	}
	ver, err := strconv.Atoi(string(buf[9:12]))
	if err != nil {
		return Header{}, errf(KindHeader, "header.parse_legacy", 9, "invalid version digits %q", buf[9:12])
	}
	return Header{
		HeaderSize:  size,
		Format:      FormatLegacy,
		Version:     ver,
		PointerSize: ptrSize,
		Endian:      endian,
	}, nil
}

func parseEndianByte(b byte) (Endianness, error) {
	switch b {
	case 'v':
		return LittleEndian, nil
	case 'V':
		return BigEndian, nil
	default:
		return 0, errf(KindHeader, "header.parse_endian", 0, "invalid endianness marker %q", b)
	}
}
